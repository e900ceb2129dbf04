package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreQueryTopOrdering(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []struct {
		initials string
		score    int
	}{
		{"AAA", 5}, {"BBB", 20}, {"CCC", 20}, {"DDD", 1},
	} {
		if err := store.Record(r.initials, r.score); err != nil {
			t.Fatalf("Record(%s) failed: %v", r.initials, err)
		}
	}

	top, err := store.QueryTop(3)
	if err != nil {
		t.Fatalf("QueryTop() failed: %v", err)
	}

	want := []string{"BBB 20", "CCC 20", "AAA 5"}
	if len(top) != len(want) {
		t.Fatalf("len(top) = %d, want %d", len(top), len(want))
	}
	for i, e := range top {
		if e.String() != want[i] {
			t.Errorf("top[%d] = %q, want %q", i, e.String(), want[i])
		}
	}
}

func TestStoreKeepsDuplicates(t *testing.T) {
	store := openTestStore(t)

	for range 3 {
		if err := store.Record("ABC", 7); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}

	top, err := store.QueryTop(10)
	if err != nil {
		t.Fatalf("QueryTop() failed: %v", err)
	}
	if len(top) != 3 {
		t.Errorf("len(top) = %d, want 3", len(top))
	}
}

func TestStoreDefaultLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 15 {
		store.Record("XYZ", i)
	}

	top, err := store.QueryTop(0)
	if err != nil {
		t.Fatalf("QueryTop() failed: %v", err)
	}
	if len(top) != DefaultLimit {
		t.Errorf("len(top) = %d, want %d", len(top), DefaultLimit)
	}
	if top[0].Score != 14 {
		t.Errorf("top[0].Score = %d, want 14", top[0].Score)
	}
}

func TestStorePlayedAt(t *testing.T) {
	store := openTestStore(t)
	fixed := time.Date(2024, 3, 9, 17, 30, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	if err := store.Record("TIM", 42); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	top, err := store.QueryTop(1)
	if err != nil {
		t.Fatalf("QueryTop() failed: %v", err)
	}
	if !top[0].PlayedAt.Equal(fixed) {
		t.Errorf("PlayedAt = %v, want %v", top[0].PlayedAt, fixed)
	}
}

func TestStoreHighScoreAndStats(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty ledger, got %d", high)
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Games != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	store.Record("AAA", 100)
	store.Record("BBB", 300)
	store.Record("CCC", 200)

	high, err = store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Games != 3 || stats.HighScore != 300 || stats.AvgScore != 200 {
		t.Errorf("stats = %+v, want 3 games, high 300, avg 200", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}
}

func TestStoreClear(t *testing.T) {
	store := openTestStore(t)
	store.Record("AAA", 1)
	store.Record("BBB", 2)

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}

	top, _ := store.QueryTop(10)
	if len(top) != 0 {
		t.Errorf("Expected empty ledger after clear, got %d entries", len(top))
	}
}

func TestStorePersistenceError(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.Close()

	err = store.Record("ABC", 1)
	var perr *PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("Record() after Close error = %v, want *PersistenceError", err)
	}
	if perr.Op != "record" {
		t.Errorf("Op = %q, want record", perr.Op)
	}

	if _, err := store.QueryTop(5); !errors.As(err, &perr) {
		t.Errorf("QueryTop() after Close error = %v, want *PersistenceError", err)
	}
}

func TestStoreReopenKeepsEntries(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.Record("OLD", 9)
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	top, err := store.QueryTop(5)
	if err != nil {
		t.Fatalf("QueryTop() failed: %v", err)
	}
	if len(top) != 1 || top[0].Initials != "OLD" {
		t.Errorf("top = %v, want [OLD 9]", top)
	}
}
