// pkg/kv/postgres.go
package kv

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// PostgresStore keeps the namespace in a single kv_store table.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a Store backed by the given database connection
// and ensures the kv_store table exists.
func NewPostgresStore(db *sqlx.DB) (*PostgresStore, error) {
	schema := `CREATE TABLE IF NOT EXISTS kv_store (
        key   TEXT PRIMARY KEY,
        value TEXT NOT NULL
    )`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to ensure kv_store table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Get(key string) (string, bool, error) {
	var value string
	err := s.db.Get(&value, `SELECT value FROM kv_store WHERE key = $1`, key)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, true, nil
}

func (s *PostgresStore) Set(key, value string) error {
	query := `INSERT INTO kv_store (key, value) VALUES ($1, $2)
              ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	if _, err := s.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv_store WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}
