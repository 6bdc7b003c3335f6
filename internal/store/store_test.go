package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"smart_scout/internal/store"
)

func openTemp(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	entries := []store.Entry{
		{Guideline: "anc", Source: "dak", SourceURL: "http://a", Title: "ANC", Version: "1.0.0", ExploredAt: base},
		{Guideline: "base", Source: "html", SourceURL: "http://b", Title: "Base", ExploredAt: base.Add(time.Minute)},
		{Guideline: "trust", Source: "none", ExploredAt: base.Add(2 * time.Minute)},
	}
	for _, e := range entries {
		if err := s.Record(ctx, e); err != nil {
			t.Fatalf("record %s: %v", e.Guideline, err)
		}
	}

	recent, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("got %d entries, want 3", len(recent))
	}
	// Newest first.
	if recent[0].Guideline != "trust" || recent[2].Guideline != "anc" {
		t.Errorf("order = %s, %s, %s", recent[0].Guideline, recent[1].Guideline, recent[2].Guideline)
	}
	if recent[2].Title != "ANC" || recent[2].Version != "1.0.0" {
		t.Errorf("oldest entry = %+v", recent[2])
	}
	if !recent[2].ExploredAt.Equal(base) {
		t.Errorf("timestamp round-trip: got %v, want %v", recent[2].ExploredAt, base)
	}
}

func TestRecent_Limit(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		entry := store.Entry{Guideline: "anc", Source: "dak", ExploredAt: base.Add(time.Duration(i) * time.Minute)}
		if err := s.Record(ctx, entry); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	recent, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("got %d entries, want 2", len(recent))
	}
}

func TestRecent_EmptyStore(t *testing.T) {
	s := openTemp(t)
	recent, err := s.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 0 {
		t.Fatalf("got %d entries, want 0", len(recent))
	}
}

func TestOpen_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	s, err := store.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	if s.Path() != path {
		t.Errorf("path = %q", s.Path())
	}
}
