// Package db provides PostgreSQL persistence for job offers, applications
// and project analysis requests.
package db

import (
	"context"
	_ "embed"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/LukhazD/germany-const-landing/internal/errs"
)

//go:embed schema.sql
var schemaSQL string

// DB wraps a lazily established PostgreSQL connection pool. The pool is
// created on first use and shared by every request for the rest of the
// process lifetime; if establishment fails the cached state is cleared
// so a later call may retry.
type DB struct {
	databaseURL string

	mu   sync.Mutex
	pool *pgxpool.Pool
}

// New creates a DB handle. No connection is attempted until the first query.
func New(databaseURL string) *DB {
	return &DB{databaseURL: databaseURL}
}

// acquire returns the shared pool, connecting on first use.
func (d *DB) acquire(ctx context.Context) (*pgxpool.Pool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pool != nil {
		return d.pool, nil
	}

	pool, err := pgxpool.New(ctx, d.databaseURL)
	if err != nil {
		return nil, &errs.ConnectionError{Err: err}
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, &errs.ConnectionError{Err: err}
	}

	d.pool = pool
	return d.pool, nil
}

// EnsureSchema applies the embedded DDL. Statements are idempotent, so
// repeated startups are safe.
func (d *DB) EnsureSchema(ctx context.Context) error {
	pool, err := d.acquire(ctx)
	if err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return &errs.ConnectionError{Err: err}
	}
	return nil
}

// Close closes the connection pool if one was established.
func (d *DB) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pool != nil {
		d.pool.Close()
		d.pool = nil
	}
}
