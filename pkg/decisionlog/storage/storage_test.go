package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func sampleRecord(seq int64, scenarioID, outcome string, ts time.Time) *Record {
	return &Record{
		SequenceID:    seq,
		RecordID:      fmt.Sprintf("rec-%s-%d", scenarioID, seq),
		Timestamp:     ts,
		Action:        "add_item",
		Outcome:       outcome,
		ScenarioID:    scenarioID,
		ConstraintIDs: []string{"capacity", "dependency"},
		Violations:    1,
		Warnings:      0,
		DurationMs:    4,
	}
}

func testBackend(t *testing.T, store Storage) {
	t.Helper()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []*Record{
		sampleRecord(1, "s1", "approved", base),
		sampleRecord(2, "s1", "rejected", base.Add(time.Minute)),
		sampleRecord(3, "s2", "approved", base.Add(2*time.Minute)),
	}
	for _, r := range records {
		if err := store.Store(ctx, r); err != nil {
			t.Fatalf("Store: %v", err)
		}
	}

	all, err := store.Query(ctx, &Query{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Query returned %d records, want 3", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].SequenceID < all[i-1].SequenceID {
			t.Error("records not ordered by sequence id")
		}
	}

	byScenario, err := store.Query(ctx, &Query{ScenarioID: "s1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(byScenario) != 2 {
		t.Errorf("scenario filter returned %d, want 2", len(byScenario))
	}

	byOutcome, err := store.Query(ctx, &Query{Outcome: "rejected"})
	if err != nil {
		t.Fatal(err)
	}
	if len(byOutcome) != 1 || byOutcome[0].SequenceID != 2 {
		t.Errorf("outcome filter = %+v, want sequence 2 only", byOutcome)
	}

	cutoff := base.Add(30 * time.Second)
	byTime, err := store.Query(ctx, &Query{StartTime: &cutoff})
	if err != nil {
		t.Fatal(err)
	}
	if len(byTime) != 2 {
		t.Errorf("time filter returned %d, want 2", len(byTime))
	}

	limited, err := store.Query(ctx, &Query{Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Errorf("limit 1 returned %d records", len(limited))
	}

	count, err := store.Count(ctx, &Query{ScenarioID: "s1"})
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("Count = %d, want 2", count)
	}

	// Round trip preserves payload fields.
	got := all[0]
	if got.Action != "add_item" || len(got.ConstraintIDs) != 2 || got.Violations != 1 {
		t.Errorf("round-tripped record = %+v", got)
	}
	if !got.Timestamp.Equal(base) {
		t.Errorf("timestamp = %v, want %v", got.Timestamp, base)
	}
}

func TestMemoryStorage(t *testing.T) {
	store := NewMemoryStorage()
	defer store.Close()

	testBackend(t, store)
}

func TestSQLiteStorage(t *testing.T) {
	config := DefaultSQLiteConfig()
	config.Path = filepath.Join(t.TempDir(), "decisions.db")

	store, err := NewSQLiteStorage(config)
	if err != nil {
		t.Fatalf("NewSQLiteStorage: %v", err)
	}
	defer store.Close()

	testBackend(t, store)
}

func TestSQLiteStorageReopen(t *testing.T) {
	config := DefaultSQLiteConfig()
	config.Path = filepath.Join(t.TempDir(), "decisions.db")

	store, err := NewSQLiteStorage(config)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := store.Store(ctx, sampleRecord(1, "s1", "approved", time.Now().UTC())); err != nil {
		t.Fatal(err)
	}
	store.Close()

	// Reopening preserves data and schema version.
	reopened, err := NewSQLiteStorage(config)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	count, err := reopened.Count(ctx, &Query{})
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("Count after reopen = %d, want 1", count)
	}
}
