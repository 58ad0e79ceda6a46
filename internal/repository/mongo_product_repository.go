package repository

import (
	"context"
	"fmt"
	"regexp"

	"b1-flyer/internal/model"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// mongoProductRepository implements the ProductRepository interface using MongoDB.
type mongoProductRepository struct {
	products ownedCollection
	logger   zerolog.Logger
}

// NewMongoProductRepository creates a new MongoDB-backed product repository.
func NewMongoProductRepository(db *mongo.Database, logger zerolog.Logger) ProductRepository {
	return &mongoProductRepository{
		products: ownedCollection{coll: db.Collection("products")},
		logger:   logger.With().Str("repository", "product").Str("store", "mongo").Logger(),
	}
}

// Create inserts a new product.
func (r *mongoProductRepository) Create(ctx context.Context, product *model.Product) error {
	if err := r.products.insert(ctx, product); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			r.logger.Debug().
				Str("user_id", product.UserID).
				Str("barcode", product.Barcode).
				Msg("barcode already in use")
			return model.ErrDuplicateBarcode
		}
		r.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Str("product_id", product.ID).Msg("product created successfully")
	return nil
}

// GetAll retrieves the owner's products with pagination support.
func (r *mongoProductRepository) GetAll(ctx context.Context, ownerID string, limit, offset int) ([]model.Product, error) {
	products := []model.Product{}
	if err := r.products.find(ctx, ownerID, bson.M{}, pageOptions(limit, offset), &products); err != nil {
		r.logger.Error().Err(err).
			Str("user_id", ownerID).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *mongoProductRepository) GetByID(ctx context.Context, ownerID, id string) (*model.Product, error) {
	var p model.Product
	found, err := r.products.findOne(ctx, ownerID, bson.M{"_id": id}, &p)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	if !found {
		r.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, nil
	}
	return &p, nil
}

// GetByIDs retrieves multiple products by their IDs in one round trip.
func (r *mongoProductRepository) GetByIDs(ctx context.Context, ownerID string, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	products := []model.Product{}
	filter := bson.M{"_id": bson.M{"$in": ids}}
	if err := r.products.find(ctx, ownerID, filter, nil, &products); err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query products by IDs")
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}
	return products, nil
}

// Update replaces a product's fields.
func (r *mongoProductRepository) Update(ctx context.Context, product *model.Product) error {
	found, err := r.products.replace(ctx, product.UserID, product.ID, product)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
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
func (r *mongoProductRepository) Delete(ctx context.Context, ownerID, id string) error {
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
func (r *mongoProductRepository) Search(ctx context.Context, ownerID, query string, limit int) ([]model.Product, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{
		"$or": bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
			bson.M{"barcode": pattern},
		},
	}

	products := []model.Product{}
	if err := r.products.find(ctx, ownerID, filter, pageOptions(limit, 0), &products); err != nil {
		r.logger.Error().Err(err).Str("query", query).Msg("failed to search products")
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

// BarcodeExists reports whether another product of the owner uses barcode.
func (r *mongoProductRepository) BarcodeExists(ctx context.Context, ownerID, barcode, excludeID string) (bool, error) {
	filter := bson.M{"barcode": barcode}
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}

	exists, err := r.products.exists(ctx, ownerID, filter)
	if err != nil {
		r.logger.Error().Err(err).Str("barcode", barcode).Msg("failed to check barcode")
		return false, fmt.Errorf("failed to check barcode: %w", err)
	}
	return exists, nil
}
