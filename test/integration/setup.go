package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"b1-flyer/internal/config"
	"b1-flyer/internal/database"
	"b1-flyer/internal/repository"

	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
)

// TestStore is a backend under test together with a way to empty it.
type TestStore struct {
	Name  string
	Store *repository.Store
	Reset func(t *testing.T)
}

// SetupPostgresStore starts a PostgreSQL container, applies the migrations
// and returns the PostgreSQL-backed store.
func SetupPostgresStore(t *testing.T) *TestStore {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	logger := zerolog.Nop()
	if err := database.Migrate(connStr, logger); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		Host:            "localhost",
		Database:        "testdb",
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}
	pool, err := database.NewPoolFromURL(ctx, connStr, dbConfig, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestStore{
		Name:  "postgres",
		Store: repository.NewPostgresStore(pool, logger),
		Reset: func(t *testing.T) {
			t.Helper()
			// Children first, users are referenced by both
			for _, table := range []string{"flyers", "products", "users"} {
				if _, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
					t.Logf("failed to clean table %s: %v", table, err)
				}
			}
		},
	}
}

// SetupMongoStore starts a MongoDB container, creates the indexes and returns
// the MongoDB-backed store.
func SetupMongoStore(t *testing.T) *TestStore {
	t.Helper()

	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		t.Fatalf("failed to start mongo container: %v", err)
	}

	uri, err := mongoContainer.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	logger := zerolog.Nop()
	db, err := database.NewMongo(ctx, config.MongoConfig{
		URI:         uri,
		Database:    "testdb",
		MaxPoolSize: 10,
		MinPoolSize: 1,
	}, logger)
	if err != nil {
		t.Fatalf("failed to connect to mongo: %v", err)
	}

	if err := repository.EnsureMongoIndexes(ctx, db); err != nil {
		t.Fatalf("failed to create indexes: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Client().Disconnect(ctx)
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestStore{
		Name:  "mongo",
		Store: repository.NewMongoStore(db, logger),
		Reset: func(t *testing.T) {
			t.Helper()
			// Documents only, the indexes stay in place
			for _, coll := range []string{"flyers", "products", "users"} {
				if _, err := db.Collection(coll).DeleteMany(ctx, bson.M{}); err != nil {
					t.Logf("failed to clean collection %s: %v", coll, err)
				}
			}
		},
	}
}
