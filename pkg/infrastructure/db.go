package infrastructure

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4/pgxpool"
)

// NewPool connects to Postgres. An empty DSN is an error so callers can fall
// back to the in-memory store.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, errors.New("DATABASE_URL not set")
	}
	pool, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
