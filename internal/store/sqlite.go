package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps collections in an embedded database file
type SQLiteStore struct {
	conn *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and initializes the schema
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// a single writer keeps sqlite away from SQLITE_BUSY
	conn.SetMaxOpenConns(1)

	s := &SQLiteStore{conn: conn}
	if err := s.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY,
		blob BLOB NOT NULL,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`
	_, err := s.conn.Exec(schema)
	return err
}

func (s *SQLiteStore) Get(ctx context.Context, c Collection) ([]byte, error) {
	var blob []byte
	err := s.conn.QueryRowContext(ctx, "SELECT blob FROM collections WHERE name = ?", string(c)).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get collection %s: %w", c, err)
	}
	return blob, nil
}

func (s *SQLiteStore) Put(ctx context.Context, c Collection, blob []byte) error {
	query := `
		INSERT INTO collections (name, blob, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET blob = excluded.blob, updated_at = excluded.updated_at
	`
	if _, err := s.conn.ExecContext(ctx, query, string(c), blob); err != nil {
		return fmt.Errorf("put collection %s: %w", c, err)
	}
	return nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
