package database

import (
	"context"
	"fmt"
	"time"

	"b1-flyer/internal/config"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// NewMongo connects to MongoDB and returns the configured database handle.
func NewMongo(ctx context.Context, cfg config.MongoConfig, logger zerolog.Logger) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(uint64(cfg.MaxPoolSize)).
		SetMinPoolSize(uint64(cfg.MinPoolSize))

	logger.Info().
		Str("database", cfg.Database).
		Int("max_pool_size", cfg.MaxPoolSize).
		Int("min_pool_size", cfg.MinPoolSize).
		Msg("connecting to MongoDB")

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Verify connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Info().Msg("MongoDB connection established")

	return client.Database(cfg.Database), nil
}

// MongoPinger adapts a MongoDB database handle to the health check.
type MongoPinger struct {
	DB *mongo.Database
}

// Ping checks that the primary is reachable.
func (p MongoPinger) Ping(ctx context.Context) error {
	return p.DB.Client().Ping(ctx, readpref.Primary())
}
