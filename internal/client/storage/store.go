// Package storage persists the client's small local state — the bearer token
// and the cached profile snapshot — in a sqlite key/value table. It fills the
// role browser local storage plays for the web client: both keys are written
// on login and cleared together on logout or 401.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Store is a key/value store over a local sqlite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the store at dsn and ensures the schema.
// The caller must import a database/sql driver registered as "sqlite"
// (modernc.org/sqlite).
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening local store: %w", err)
	}

	_, err = db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS local_state (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing local store: %w", err)
	}
	return &Store{db: db}, nil
}

// NewWithDB wraps an already-open database. Used by tests.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// Get returns the stored value, or nil when the key is absent.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM local_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get local_state[%s]: %w", key, err)
	}
	return value, nil
}

// Set inserts or replaces the value for key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO local_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set local_state[%s]: %w", key, err)
	}
	return nil
}

// Delete removes one key. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM local_state WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete local_state[%s]: %w", key, err)
	}
	return nil
}

// Clear wipes every key.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM local_state`)
	if err != nil {
		return fmt.Errorf("failed to clear local_state: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
