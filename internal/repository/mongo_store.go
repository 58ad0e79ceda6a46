package repository

import (
	"context"
	"fmt"

	"b1-flyer/internal/database"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewMongoStore wires the MongoDB repositories.
func NewMongoStore(db *mongo.Database, logger zerolog.Logger) *Store {
	return &Store{
		Users:    NewMongoUserRepository(db, logger),
		Products: NewMongoProductRepository(db, logger),
		Flyers:   NewMongoFlyerRepository(db, logger),
		Pinger:   database.MongoPinger{DB: db},
	}
}

// EnsureMongoIndexes creates the indexes the repositories rely on, including
// the per-owner barcode uniqueness constraint.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		"users": {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		"products": {
			{
				Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			},
			{
				Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "barcode", Value: 1}},
				Options: options.Index().
					SetUnique(true).
					SetPartialFilterExpression(bson.M{"barcode": bson.M{"$type": "string"}}),
			},
		},
		"flyers": {
			{
				Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			},
			{
				Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}},
			},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}

	return nil
}
