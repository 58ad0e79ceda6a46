// Command migrate prepares the configured store: it applies PostgreSQL
// migrations or creates the MongoDB indexes.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"b1-flyer/internal/config"
	"b1-flyer/internal/database"
	"b1-flyer/internal/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	switch cfg.Store.Driver {
	case config.DriverPostgres:
		if err := database.Migrate(cfg.Database.ConnectionString(), logger); err != nil {
			return err
		}

	default:
		db, err := database.NewMongo(ctx, cfg.Mongo, logger)
		if err != nil {
			return err
		}
		defer func() { _ = db.Client().Disconnect(context.Background()) }()

		if err := repository.EnsureMongoIndexes(ctx, db); err != nil {
			return fmt.Errorf("failed to create MongoDB indexes: %w", err)
		}
		logger.Info().Str("database", cfg.Mongo.Database).Msg("MongoDB indexes ensured")
	}

	return nil
}
