// Package postgres provides a PostgreSQL-backed preference store.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store implements preference.Store with PostgreSQL.
type Store struct {
	pool      *pgxpool.Pool
	tableName string
}

// Option configures the store.
type Option func(*Store)

// WithTableName sets a custom table name.
func WithTableName(name string) Option {
	return func(s *Store) {
		s.tableName = name
	}
}

// New creates a new PostgreSQL preference store.
func New(pool *pgxpool.Pool, opts ...Option) *Store {
	s := &Store{
		pool:      pool,
		tableName: "language_preferences",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the stored preference, or defaultValue when no row exists.
func (s *Store) Get(ctx context.Context, scopeKey, defaultValue string) (string, error) {
	query := fmt.Sprintf(`
		SELECT language
		FROM %s
		WHERE scope_key = $1
	`, s.tableName)

	var language string
	err := s.pool.QueryRow(ctx, query, scopeKey).Scan(&language)
	if errors.Is(err, pgx.ErrNoRows) {
		return defaultValue, nil
	}
	if err != nil {
		return "", fmt.Errorf("reading preference: %w", err)
	}

	return language, nil
}

// Set stores the preference, inserting or updating the row for scopeKey.
func (s *Store) Set(ctx context.Context, scopeKey, value string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (scope_key, language, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (scope_key) DO UPDATE SET
			language = EXCLUDED.language,
			updated_at = EXCLUDED.updated_at
	`, s.tableName)

	if _, err := s.pool.Exec(ctx, query, scopeKey, value, time.Now()); err != nil {
		return fmt.Errorf("saving preference: %w", err)
	}

	return nil
}

// Migration returns the SQL to create the preferences table.
func Migration(tableName string) string {
	if tableName == "" {
		tableName = "language_preferences"
	}
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			scope_key TEXT PRIMARY KEY,
			language TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`, tableName)
}
