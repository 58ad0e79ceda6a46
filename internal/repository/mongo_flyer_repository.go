package repository

import (
	"context"
	"fmt"

	"b1-flyer/internal/model"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// mongoFlyerRepository implements the FlyerRepository interface using MongoDB.
// Snapshots are stored embedded in the flyer document.
type mongoFlyerRepository struct {
	flyers ownedCollection
	logger zerolog.Logger
}

// NewMongoFlyerRepository creates a new MongoDB-backed flyer repository.
func NewMongoFlyerRepository(db *mongo.Database, logger zerolog.Logger) FlyerRepository {
	return &mongoFlyerRepository{
		flyers: ownedCollection{coll: db.Collection("flyers")},
		logger: logger.With().Str("repository", "flyer").Str("store", "mongo").Logger(),
	}
}

// Create inserts a new flyer.
func (r *mongoFlyerRepository) Create(ctx context.Context, flyer *model.Flyer) error {
	if flyer.Products == nil {
		flyer.Products = []model.ProductSnapshot{}
	}
	if err := r.flyers.insert(ctx, flyer); err != nil {
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
func (r *mongoFlyerRepository) GetAll(ctx context.Context, ownerID string, filter model.FlyerFilter) ([]model.Flyer, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	flyers := []model.Flyer{}
	if err := r.flyers.find(ctx, ownerID, query, pageOptions(filter.Limit, filter.Offset), &flyers); err != nil {
		r.logger.Error().Err(err).Str("user_id", ownerID).Msg("failed to query flyers")
		return nil, fmt.Errorf("failed to query flyers: %w", err)
	}
	return flyers, nil
}

// GetByID retrieves a single flyer by its ID.
func (r *mongoFlyerRepository) GetByID(ctx context.Context, ownerID, id string) (*model.Flyer, error) {
	var f model.Flyer
	found, err := r.flyers.findOne(ctx, ownerID, bson.M{"_id": id}, &f)
	if err != nil {
		r.logger.Error().Err(err).Str("flyer_id", id).Msg("failed to query flyer")
		return nil, fmt.Errorf("failed to query flyer: %w", err)
	}
	if !found {
		r.logger.Debug().Str("flyer_id", id).Msg("flyer not found")
		return nil, nil
	}
	if f.Products == nil {
		f.Products = []model.ProductSnapshot{}
	}
	return &f, nil
}

// Update replaces the flyer document.
func (r *mongoFlyerRepository) Update(ctx context.Context, flyer *model.Flyer) error {
	if flyer.Products == nil {
		flyer.Products = []model.ProductSnapshot{}
	}
	found, err := r.flyers.replace(ctx, flyer.UserID, flyer.ID, flyer)
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
func (r *mongoFlyerRepository) Delete(ctx context.Context, ownerID, id string) error {
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
