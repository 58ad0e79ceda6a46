package repository

import (
	"context"
	"fmt"

	"b1-flyer/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const productColumns = "id, user_id, name, description, price, barcode, category, image_url, created_at, updated_at"

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool     *pgxpool.Pool
	products ownedTable
	logger   zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:     pool,
		products: ownedTable{pool: pool, name: "products", columns: productColumns},
		logger:   logger.With().Str("repository", "product").Str("store", "postgres").Logger(),
	}
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	var barcode *string
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.Price, &barcode,
		&p.Category, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if barcode != nil {
		p.Barcode = *barcode
	}
	return &p, nil
}

func (r *productRepository) collect(rows pgx.Rows) ([]model.Product, error) {
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Create inserts a new product.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (id, user_id, name, description, price, barcode, category, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		product.ID, product.UserID, product.Name, product.Description, product.Price,
		nullable(product.Barcode), product.Category, product.ImageURL, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrDuplicateBarcode
		}
		r.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Str("product_id", product.ID).Msg("product created successfully")
	return nil
}

// GetAll retrieves the owner's products with pagination support.
func (r *productRepository) GetAll(ctx context.Context, ownerID string, limit, offset int) ([]model.Product, error) {
	lim, off := limitOffset(limit, offset)
	rows, err := r.products.query(ctx, ownerID, "", "ORDER BY created_at DESC, id LIMIT $2 OFFSET $3", lim, off)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", ownerID).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	return r.collect(rows)
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, ownerID, id string) (*model.Product, error) {
	p, err := scanProduct(r.products.queryRow(ctx, ownerID, "id = $2", id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	return p, nil
}

// GetByIDs retrieves multiple products by their IDs in one round trip.
func (r *productRepository) GetByIDs(ctx context.Context, ownerID string, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	rows, err := r.products.query(ctx, ownerID, "id = ANY($2)", "", ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query products by IDs")
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}
	return r.collect(rows)
}

// Update replaces a product's fields.
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	set := `name = $3, description = $4, price = $5, barcode = $6, category = $7, image_url = $8, updated_at = $9`
	found, err := r.products.update(ctx, product.UserID, product.ID, set,
		product.Name, product.Description, product.Price, nullable(product.Barcode),
		product.Category, product.ImageURL, product.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrDuplicateBarcode
		}
		r.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}
	if !found {
		return model.ErrProductNotFound
	}
	return nil
}

// Delete removes a product.
func (r *productRepository) Delete(ctx context.Context, ownerID, id string) error {
	found, err := r.products.delete(ctx, ownerID, id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !found {
		return model.ErrProductNotFound
	}
	return nil
}

// Search matches query against name, description and barcode.
func (r *productRepository) Search(ctx context.Context, ownerID, query string, limit int) ([]model.Product, error) {
	lim, _ := limitOffset(limit, 0)
	rows, err := r.products.query(ctx, ownerID,
		"name ILIKE $2 OR description ILIKE $2 OR barcode ILIKE $2",
		"ORDER BY created_at DESC, id LIMIT $3",
		likePattern(query), lim)
	if err != nil {
		r.logger.Error().Err(err).Str("query", query).Msg("failed to search products")
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return r.collect(rows)
}

// BarcodeExists reports whether another product of the owner uses barcode.
func (r *productRepository) BarcodeExists(ctx context.Context, ownerID, barcode, excludeID string) (bool, error) {
	exists, err := r.products.exists(ctx, ownerID, "barcode = $2 AND id <> $3", barcode, excludeID)
	if err != nil {
		r.logger.Error().Err(err).Str("barcode", barcode).Msg("failed to check barcode")
		return false, fmt.Errorf("failed to check barcode: %w", err)
	}
	return exists, nil
}
