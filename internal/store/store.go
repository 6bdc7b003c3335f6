// Package store keeps a small exploration history in SQLite: one row per
// guideline per run, so earlier results remain inspectable after the console
// output scrolls away.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;

CREATE TABLE IF NOT EXISTS explorations (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    guideline   TEXT NOT NULL,
    source      TEXT NOT NULL,  -- dak, html, none
    source_url  TEXT,
    title       TEXT,
    version     TEXT,
    explored_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_explorations_guideline ON explorations(guideline);
`

type Store struct {
	db   *sql.DB
	path string
}

type Entry struct {
	Guideline  string
	Source     string
	SourceURL  string
	Title      string
	Version    string
	ExploredAt time.Time
}

// Open opens or creates the history database at path and ensures the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

func (s *Store) Path() string { return s.path }

func (s *Store) Close() error { return s.db.Close() }

// Record appends one exploration result.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.ExploredAt.IsZero() {
		e.ExploredAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO explorations (guideline, source, source_url, title, version, explored_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Guideline, e.Source, e.SourceURL, e.Title, e.Version,
		e.ExploredAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record exploration: %w", err)
	}
	return nil
}

// Recent returns the newest entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT guideline, source, source_url, title, version, explored_at
		 FROM explorations ORDER BY explored_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list explorations: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var exploredAt string
		if err := rows.Scan(&e.Guideline, &e.Source, &e.SourceURL, &e.Title, &e.Version, &exploredAt); err != nil {
			return nil, fmt.Errorf("scan exploration: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339, exploredAt); err == nil {
			e.ExploredAt = ts
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
