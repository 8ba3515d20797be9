package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-concentration/internal/core"
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

func TestStoreReopenKeepsResults(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveResult(Result{GameID: "concentration", MatchedPairs: 12, TotalPairs: 12, Completed: true}); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	results, err := store.RecentResults("concentration", 10)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Expected 1 result after reopen, got %d", len(results))
	}
}

func TestStoreSaveAndRecent(t *testing.T) {
	store := openTestStore(t)

	saved := []Result{
		{GameID: "concentration", MatchedPairs: 3, TotalPairs: 12, Flips: 14, Duration: 40 * time.Second},
		{GameID: "concentration", MatchedPairs: 12, TotalPairs: 12, Flips: 38, Duration: 95 * time.Second, Completed: true},
		{GameID: "other", MatchedPairs: 1, TotalPairs: 2, Duration: time.Second},
	}
	for _, r := range saved {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	results, err := store.RecentResults("concentration", 10)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	// Newest first
	got := results[0]
	if !got.Completed || got.MatchedPairs != 12 || got.Flips != 38 || got.Duration != 95*time.Second {
		t.Errorf("Unexpected newest result: %+v", got)
	}
	if results[1].Completed {
		t.Error("Abandoned session should not be marked completed")
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}
}

func TestStoreSaveResultValidation(t *testing.T) {
	store := openTestStore(t)

	tests := []struct {
		name string
		r    Result
	}{
		{"missing game id", Result{MatchedPairs: 1, TotalPairs: 12}},
		{"negative matches", Result{GameID: "concentration", MatchedPairs: -1, TotalPairs: 12}},
		{"too many matches", Result{GameID: "concentration", MatchedPairs: 13, TotalPairs: 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.SaveResult(tt.r); err == nil {
				t.Error("SaveResult() should fail")
			}
		})
	}
}

func TestStoreFastestCompletions(t *testing.T) {
	store := openTestStore(t)

	for _, secs := range []int{90, 45, 120, 60} {
		store.SaveResult(Result{GameID: "concentration", MatchedPairs: 12, TotalPairs: 12, Duration: time.Duration(secs) * time.Second, Completed: true})
	}
	// Faster but abandoned, must not be listed.
	store.SaveResult(Result{GameID: "concentration", MatchedPairs: 2, TotalPairs: 12, Duration: 5 * time.Second})

	results, err := store.FastestCompletions("concentration", 3)
	if err != nil {
		t.Fatalf("FastestCompletions() failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 results with limit, got %d", len(results))
	}

	want := []time.Duration{45 * time.Second, 60 * time.Second, 90 * time.Second}
	for i, r := range results {
		if r.Duration != want[i] {
			t.Errorf("results[%d].Duration = %v, want %v", i, r.Duration, want[i])
		}
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("concentration")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty != (Stats{}) {
		t.Errorf("Expected zero stats for empty game, got %+v", empty)
	}

	store.SaveResult(Result{GameID: "concentration", MatchedPairs: 12, TotalPairs: 12, Duration: 60 * time.Second, Completed: true})
	store.SaveResult(Result{GameID: "concentration", MatchedPairs: 12, TotalPairs: 12, Duration: 80 * time.Second, Completed: true})
	store.SaveResult(Result{GameID: "concentration", MatchedPairs: 4, TotalPairs: 12, Duration: 10 * time.Second})

	st, err := store.Stats("concentration")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Played != 3 || st.Completed != 2 {
		t.Errorf("Played/Completed = %d/%d, want 3/2", st.Played, st.Completed)
	}
	if st.Fastest != 60*time.Second {
		t.Errorf("Fastest = %v, want 1m0s", st.Fastest)
	}
	if st.Average != 70*time.Second {
		t.Errorf("Average = %v, want 1m10s", st.Average)
	}
}

func TestStoreClearResults(t *testing.T) {
	store := openTestStore(t)

	store.SaveResult(Result{GameID: "concentration", MatchedPairs: 1, TotalPairs: 12})
	store.SaveResult(Result{GameID: "other", MatchedPairs: 1, TotalPairs: 2})

	if err := store.ClearResults("concentration"); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}

	results, _ := store.RecentResults("concentration", 10)
	if len(results) != 0 {
		t.Errorf("Expected 0 results after clear, got %d", len(results))
	}
	other, _ := store.RecentResults("other", 10)
	if len(other) != 1 {
		t.Error("Other games should not be affected by clearing")
	}
}

func TestNewResultFromSummary(t *testing.T) {
	sum := core.SessionSummary{Score: 5, MaxScore: 12, Moves: 17, Elapsed: 42 * time.Second}

	r := NewResult("concentration", sum)
	if r.GameID != "concentration" || r.MatchedPairs != 5 || r.TotalPairs != 12 ||
		r.Flips != 17 || r.Duration != 42*time.Second || r.Completed {
		t.Errorf("NewResult() = %+v", r)
	}
}
