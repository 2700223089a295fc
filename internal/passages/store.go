//-------------------------------------------------------------------------
//
// AyurGPT Server
//
// Portions copyright (c) 2025 - 2026, the AyurGPT authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package passages provides id-to-text lookup against the SQLite database
// produced by the offline index build. The index only stores vectors and
// sentence ids; the full source text lives here.
package passages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// ErrNotFound is returned when a passage id has no stored text. The index
// and the text store are built separately and can drift, so callers skip
// missing ids instead of failing.
var ErrNotFound = errors.New("passage not found")

// Store is a read-only passage text store.
//
// database/sql maintains its own connection pool, so concurrent retrievals
// never share a cursor.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens the passage store at the given path. The file must already
// exist; this process never creates or writes it.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("passage store not found: %s", path)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open passage store: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// GetText looks up the full text for a passage id.
func (s *Store) GetText(ctx context.Context, id int64) (string, error) {
	var text string
	err := s.db.QueryRowContext(ctx,
		`SELECT full_text FROM sentences WHERE id = ?`, id).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read passage %d: %w", id, err)
	}
	return text, nil
}

// Count returns the number of stored passages.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM sentences`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count passages: %w", err)
	}
	return n, nil
}

// Path returns the store's file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}
