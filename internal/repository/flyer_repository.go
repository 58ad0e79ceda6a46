package repository

import (
	"context"
	"fmt"

	"b1-flyer/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const flyerColumns = "id, user_id, title, description, template, layout, business_info, products, status, published_at, created_at, updated_at"

// flyerRepository implements the FlyerRepository interface using PostgreSQL.
// Layout, business info and snapshots are stored as JSONB documents.
type flyerRepository struct {
	pool   *pgxpool.Pool
	flyers ownedTable
	logger zerolog.Logger
}

// NewFlyerRepository creates a new PostgreSQL-backed flyer repository.
func NewFlyerRepository(pool *pgxpool.Pool, logger zerolog.Logger) FlyerRepository {
	return &flyerRepository{
		pool:   pool,
		flyers: ownedTable{pool: pool, name: "flyers", columns: flyerColumns},
		logger: logger.With().Str("repository", "flyer").Str("store", "postgres").Logger(),
	}
}

func scanFlyer(row pgx.Row) (*model.Flyer, error) {
	var f model.Flyer
	err := row.Scan(&f.ID, &f.UserID, &f.Title, &f.Description, &f.Template, &f.Layout,
		&f.BusinessInfo, &f.Products, &f.Status, &f.PublishedAt, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if f.Products == nil {
		f.Products = []model.ProductSnapshot{}
	}
	return &f, nil
}

// Create inserts a new flyer.
func (r *flyerRepository) Create(ctx context.Context, flyer *model.Flyer) error {
	if flyer.Products == nil {
		flyer.Products = []model.ProductSnapshot{}
	}

	query := `
		INSERT INTO flyers (id, user_id, title, description, template, layout, business_info, products, status, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		flyer.ID, flyer.UserID, flyer.Title, flyer.Description, flyer.Template, flyer.Layout,
		flyer.BusinessInfo, flyer.Products, flyer.Status, flyer.PublishedAt, flyer.CreatedAt, flyer.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("flyer_id", flyer.ID).Msg("failed to create flyer")
		return fmt.Errorf("failed to create flyer: %w", err)
	}

	r.logger.Debug().
		Str("flyer_id", flyer.ID).
		Int("products", len(flyer.Products)).
		Msg("flyer created successfully")
	return nil
}

// GetAll retrieves the owner's flyers, optionally filtered by status.
func (r *flyerRepository) GetAll(ctx context.Context, ownerID string, filter model.FlyerFilter) ([]model.Flyer, error) {
	lim, off := limitOffset(filter.Limit, filter.Offset)

	var (
		rows pgx.Rows
		err  error
	)
	if filter.Status != "" {
		rows, err = r.flyers.query(ctx, ownerID, "status = $2", "ORDER BY created_at DESC, id LIMIT $3 OFFSET $4",
			filter.Status, lim, off)
	} else {
		rows, err = r.flyers.query(ctx, ownerID, "", "ORDER BY created_at DESC, id LIMIT $2 OFFSET $3", lim, off)
	}
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", ownerID).Msg("failed to query flyers")
		return nil, fmt.Errorf("failed to query flyers: %w", err)
	}
	defer rows.Close()

	flyers := []model.Flyer{}
	for rows.Next() {
		f, err := scanFlyer(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan flyer row")
			return nil, fmt.Errorf("failed to scan flyer: %w", err)
		}
		flyers = append(flyers, *f)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating flyer rows")
		return nil, fmt.Errorf("error iterating flyers: %w", err)
	}

	return flyers, nil
}

// GetByID retrieves a single flyer by its ID.
func (r *flyerRepository) GetByID(ctx context.Context, ownerID, id string) (*model.Flyer, error) {
	f, err := scanFlyer(r.flyers.queryRow(ctx, ownerID, "id = $2", id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("flyer_id", id).Msg("flyer not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("flyer_id", id).Msg("failed to query flyer")
		return nil, fmt.Errorf("failed to query flyer: %w", err)
	}
	return f, nil
}

// Update replaces the flyer row.
func (r *flyerRepository) Update(ctx context.Context, flyer *model.Flyer) error {
	if flyer.Products == nil {
		flyer.Products = []model.ProductSnapshot{}
	}

	set := `title = $3, description = $4, template = $5, layout = $6, business_info = $7,
		products = $8, status = $9, published_at = $10, updated_at = $11`
	found, err := r.flyers.update(ctx, flyer.UserID, flyer.ID, set,
		flyer.Title, flyer.Description, flyer.Template, flyer.Layout, flyer.BusinessInfo,
		flyer.Products, flyer.Status, flyer.PublishedAt, flyer.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("flyer_id", flyer.ID).Msg("failed to update flyer")
		return fmt.Errorf("failed to update flyer: %w", err)
	}
	if !found {
		return model.ErrFlyerNotFound
	}
	return nil
}

// Delete removes a flyer.
func (r *flyerRepository) Delete(ctx context.Context, ownerID, id string) error {
	found, err := r.flyers.delete(ctx, ownerID, id)
	if err != nil {
		r.logger.Error().Err(err).Str("flyer_id", id).Msg("failed to delete flyer")
		return fmt.Errorf("failed to delete flyer: %w", err)
	}
	if !found {
		return model.ErrFlyerNotFound
	}
	return nil
}
