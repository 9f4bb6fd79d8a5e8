// Package db provides the Postgres-backed storage port for the notes blob.
// The blob occupies a single row; every write replaces it wholesale, so the
// last writer wins just as it does for the file-backed port.
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

const blobKey = "git-scope-notes"

// PostgresStore holds the notes blob in a single-row table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection and verifies it with a ping.
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Migrate runs the goose migrations.
func (s *PostgresStore) Migrate() error {
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := goose.Up(s.db, "internal/db/migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Read returns the current notes blob, or nil when none has been written.
func (s *PostgresStore) Read() ([]byte, error) {
	var blob []byte
	err := s.db.QueryRow(`
		SELECT blob FROM note_blobs WHERE key = $1
	`, blobKey).Scan(&blob)

	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read notes blob: %w", err)
	}

	return blob, nil
}

// Write replaces the notes blob.
func (s *PostgresStore) Write(data []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO note_blobs (key, blob, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (key) DO UPDATE SET
			blob = EXCLUDED.blob,
			updated_at = NOW()
	`, blobKey, data)

	if err != nil {
		return fmt.Errorf("failed to write notes blob: %w", err)
	}

	return nil
}

// Close closes the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
