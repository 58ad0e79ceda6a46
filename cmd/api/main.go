package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"b1-flyer/internal/auth"
	"b1-flyer/internal/config"
	"b1-flyer/internal/database"
	"b1-flyer/internal/handler"
	"b1-flyer/internal/media"
	"b1-flyer/internal/repository"
	"b1-flyer/internal/router"
	"b1-flyer/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Str("store_driver", cfg.Store.Driver).Msg("starting b1-flyer API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	mediaStore, err := newMediaStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize media store: %w", err)
	}

	// Initialize services
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := service.NewAuthService(store.Users, tokens, logger)
	productService := service.NewProductService(store.Products, logger)
	resolver := service.NewSnapshotResolver(store.Products, logger)
	flyerService := service.NewFlyerService(store.Flyers, resolver, logger)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Auth:    handler.NewAuthHandler(authService, logger),
		Product: handler.NewProductHandler(productService, logger),
		Flyer:   handler.NewFlyerHandler(flyerService, logger),
		Upload:  handler.NewUploadHandler(mediaStore, cfg.Uploads.MaxBytes, logger),
		Health:  handler.NewHealthHandler(store.Pinger, logger),
	}

	opts := router.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestTimeout: cfg.Server.RequestTimeout,
		UploadDir:      cfg.Uploads.Dir,
		UploadPath:     cfg.Uploads.MountPath,
	}

	// Initialize router
	mux := router.New(handlers, authService, opts, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Server.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// openStore connects the configured backend, prepares its schema and returns
// its repositories with a release function.
func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*repository.Store, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		connString := cfg.Database.ConnectionString()
		if err := database.Migrate(connString, logger); err != nil {
			return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
		}

		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return repository.NewPostgresStore(pool, logger), pool.Close, nil

	default:
		db, err := database.NewMongo(ctx, cfg.Mongo, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		release := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := db.Client().Disconnect(disconnectCtx); err != nil {
				logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
			}
		}

		if err := repository.EnsureMongoIndexes(ctx, db); err != nil {
			release()
			return nil, nil, fmt.Errorf("failed to create MongoDB indexes: %w", err)
		}
		return repository.NewMongoStore(db, logger), release, nil
	}
}

// newMediaStore builds the image store: local disk, with S3 in front when enabled.
func newMediaStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (media.Store, error) {
	fileStore, err := media.NewFileStore(cfg.Uploads.Dir, cfg.Uploads.BaseURL, logger)
	if err != nil {
		return nil, err
	}

	if !cfg.S3.Enabled {
		logger.Info().Msg("using local file system for uploads (S3 disabled)")
		return fileStore, nil
	}

	s3Store, err := media.NewS3Store(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.PublicBaseURL, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 store, falling back to local file system only")
		return fileStore, nil
	}

	return media.NewFallbackStore(s3Store, fileStore, cfg.S3.Prefix, true, logger), nil
}
