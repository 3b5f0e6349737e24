package main

import (
	"context"
	"database/sql"
	"fmt"
)

// migrate applies the schema idempotently at startup. The deployment target
// is a single managed Postgres, so CREATE IF NOT EXISTS is sufficient; a
// versioned migration tool can replace this once the schema starts churning.
func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            UUID PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role          TEXT NOT NULL DEFAULT 'user',
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS listings (
			id          UUID PRIMARY KEY,
			kind        TEXT NOT NULL CHECK (kind IN ('place', 'restaurant')),
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			location    TEXT NOT NULL,
			image       TEXT NOT NULL DEFAULT '',
			rating      DOUBLE PRECISION NOT NULL DEFAULT 0,
			owner_id    UUID NOT NULL REFERENCES users(id),
			created_at  TIMESTAMPTZ NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_listings_kind ON listings (kind)`,
		`CREATE INDEX IF NOT EXISTS idx_listings_owner ON listings (owner_id)`,
		`CREATE TABLE IF NOT EXISTS comments (
			id         UUID PRIMARY KEY,
			listing_id UUID NOT NULL REFERENCES listings(id) ON DELETE CASCADE,
			author_id  UUID NOT NULL REFERENCES users(id),
			text       TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_comments_listing ON comments (listing_id)`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
