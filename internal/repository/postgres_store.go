package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// NewPostgresStore wires the PostgreSQL repositories.
func NewPostgresStore(pool *pgxpool.Pool, logger zerolog.Logger) *Store {
	return &Store{
		Users:    NewUserRepository(pool, logger),
		Products: NewProductRepository(pool, logger),
		Flyers:   NewFlyerRepository(pool, logger),
		Pinger:   pool,
	}
}
