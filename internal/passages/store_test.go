//-------------------------------------------------------------------------
//
// AyurGPT Server
//
// Portions copyright (c) 2025 - 2026, the AyurGPT authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package passages

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

// newTestStore builds a throwaway passage database and opens a Store on it.
func newTestStore(t *testing.T, texts map[int64]string) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sentences.db")

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	_, err = db.Exec(`CREATE TABLE sentences (id INTEGER PRIMARY KEY, full_text TEXT NOT NULL)`)
	if err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	for id, text := range texts {
		if _, err := db.Exec(`INSERT INTO sentences (id, full_text) VALUES (?, ?)`, id, text); err != nil {
			t.Fatalf("failed to insert passage: %v", err)
		}
	}

	if err := db.Close(); err != nil {
		t.Fatalf("failed to close test database: %v", err)
	}

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestStore_GetText(t *testing.T) {
	store := newTestStore(t, map[int64]string{
		5: "Ginger stimulates agni and aids digestion.",
		9: "Warm water soothes the stomach.",
	})

	text, err := store.GetText(context.Background(), 5)
	if err != nil {
		t.Fatalf("GetText failed: %v", err)
	}
	if text != "Ginger stimulates agni and aids digestion." {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestStore_GetText_NotFound(t *testing.T) {
	store := newTestStore(t, map[int64]string{5: "Ginger aids digestion."})

	_, err := store.GetText(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Count(t *testing.T) {
	store := newTestStore(t, map[int64]string{
		1: "one",
		2: "two",
		3: "three",
	})

	n, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 passages, got %d", n)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "does-not-exist.db"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
