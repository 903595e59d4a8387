package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"gatepass/internal/platform/config"
)

// Connect opens a pgx pool and verifies connectivity before the server
// starts taking traffic.
func Connect(ctx context.Context, cfg config.Postgres) (*pgxpool.Pool, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("POSTGRES_URL is required for the postgres backend")
	}
	pool, err := pgxpool.New(ctx, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return pool, nil
}

// Schema creates the two collections when they don't exist yet. Column
// names are the stable contract with the durable store; renaming one is a
// breaking change for deployed spreadsheet-to-postgres migrations.
const Schema = `
CREATE TABLE IF NOT EXISTS attendees (
	id            UUID PRIMARY KEY,
	token         TEXT NOT NULL UNIQUE,
	name          TEXT NOT NULL,
	organization  TEXT NOT NULL DEFAULT '',
	fee_category  TEXT NOT NULL DEFAULT '',
	email         TEXT NOT NULL DEFAULT '',
	phone         TEXT NOT NULL DEFAULT '',
	default_venue TEXT NOT NULL DEFAULT '',
	registered_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS checkins (
	id          UUID PRIMARY KEY,
	token       TEXT NOT NULL,
	venue       TEXT NOT NULL,
	outcome     TEXT NOT NULL,
	source      TEXT NOT NULL DEFAULT '',
	occurred_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS checkins_token_venue_idx ON checkins (token, venue);
`

// EnsureSchema applies Schema. Idempotent; called at startup for the
// postgres backend.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
