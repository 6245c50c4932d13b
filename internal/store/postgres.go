package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fact-check-board/internal/database"
)

// PostgresStore keeps each collection as a JSONB row in the collections table
type PostgresStore struct {
	db *database.DB
}

// NewPostgresStore creates a store on an already migrated database
func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, c Collection) ([]byte, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx, "SELECT blob FROM collections WHERE name = $1", string(c)).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get collection %s: %w", c, err)
	}
	return blob, nil
}

func (s *PostgresStore) Put(ctx context.Context, c Collection, blob []byte) error {
	query := `
		INSERT INTO collections (name, blob, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET blob = EXCLUDED.blob, updated_at = EXCLUDED.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, string(c), string(blob)); err != nil {
		return fmt.Errorf("put collection %s: %w", c, err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.HealthCheck(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
