package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaFS embed.FS

func Open(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("db path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// SQLite keeps a separate database per connection for :memory:, and
	// file databases allow a single writer. One connection covers both.
	db.SetMaxOpenConns(1)

	if err := EnsureSchema(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema applies the embedded schema and seeds the preferences
// singleton. Safe to call repeatedly; the read paths call it again after a
// storage failure to heal a corrupted or missing table.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}

	if _, err := db.ExecContext(ctx, string(schemaSQL)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	// The fixed key makes the seed idempotent: after this, exactly one
	// preferences row exists and replace always has a target.
	if _, err := db.ExecContext(ctx, "INSERT OR IGNORE INTO preferences (id) VALUES (1)"); err != nil {
		return fmt.Errorf("seed preferences: %w", err)
	}

	return nil
}
