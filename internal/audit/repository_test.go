package audit

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := `
		CREATE TABLE attribute_writes (
			id TEXT PRIMARY KEY,
			attribute TEXT NOT NULL,
			value TEXT NOT NULL,
			outcome TEXT NOT NULL,
			detail TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT 'api',
			created_at TEXT NOT NULL
		);`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	return db
}

func TestRecordGeneratesIdentity(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	entry := &Entry{
		Attribute: "shift_mode",
		Value:     "sport",
		Outcome:   OutcomeApplied,
	}
	if err := repo.Record(ctx, entry); err != nil {
		t.Fatalf("Record: %v", err)
	}

	if !strings.HasPrefix(entry.ID, "wr-") {
		t.Errorf("ID = %q, want wr- prefix", entry.ID)
	}
	if entry.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
	if entry.Source != "api" {
		t.Errorf("Source = %q, want api default", entry.Source)
	}
}

func TestListFiltersAndPaginates(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []Entry{
		{Attribute: "shift_mode", Value: "eco", Outcome: OutcomeApplied},
		{Attribute: "shift_mode", Value: "bogus", Outcome: OutcomeRejected},
		{Attribute: "cooler_boost", Value: "on", Outcome: OutcomeApplied},
		{Attribute: "shift_mode", Value: "sport", Outcome: OutcomeApplied},
	}
	for i := range entries {
		entries[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := repo.Record(ctx, &entries[i]); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	// Unfiltered: everything, most recent first.
	result, err := repo.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if result.Total != 4 {
		t.Errorf("Total = %d, want 4", result.Total)
	}
	if result.Entries[0].Value != "sport" {
		t.Errorf("first entry = %q, want most recent (sport)", result.Entries[0].Value)
	}

	// Attribute filter.
	result, err = repo.List(ctx, Filter{Attribute: "shift_mode"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if result.Total != 3 {
		t.Errorf("shift_mode Total = %d, want 3", result.Total)
	}

	// Combined attribute and outcome filter.
	result, err = repo.List(ctx, Filter{Attribute: "shift_mode", Outcome: OutcomeRejected})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if result.Total != 1 || result.Entries[0].Value != "bogus" {
		t.Errorf("rejected shift_mode = %+v, want the bogus entry", result.Entries)
	}

	// Pagination.
	result, err = repo.List(ctx, Filter{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(result.Entries) != 2 {
		t.Errorf("page size = %d, want 2", len(result.Entries))
	}
	if result.Total != 4 {
		t.Errorf("paged Total = %d, want 4", result.Total)
	}
}

func TestListClampsLimit(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	result, err := repo.List(ctx, Filter{Limit: 10000})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if result.Limit > 200 {
		t.Errorf("Limit = %d, want clamped to 200", result.Limit)
	}
}

func TestRoundTripTimestamps(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	when := time.Date(2026, 7, 14, 9, 30, 0, 0, time.UTC)
	entry := &Entry{
		Attribute: "charge_control_end_threshold",
		Value:     "80",
		Outcome:   OutcomeApplied,
		CreatedAt: when,
	}
	if err := repo.Record(ctx, entry); err != nil {
		t.Fatalf("Record: %v", err)
	}

	result, err := repo.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got := result.Entries[0].CreatedAt; !got.Equal(when) {
		t.Errorf("CreatedAt = %v, want %v", got, when)
	}
}
