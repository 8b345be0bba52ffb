package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
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
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{12, 5, 20} {
		if _, err := store.SaveScore("bugtap", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("bugtap_timed", 40); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("bugtap", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 20 || scores[1].Score != 12 || scores[2].Score != 5 {
		t.Errorf("Scores not sorted descending: %v", scores)
	}

	timed, err := store.TopScores("bugtap_timed", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(timed) != 1 {
		t.Errorf("Expected 1 timed score, got %d", len(timed))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("bugtap")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("bugtap", 100)
	store.SaveScore("bugtap", 300)
	store.SaveScore("bugtap", 200)

	high, err = store.HighScore("bugtap")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("bugtap", 100)
	store.SaveScore("bugtap", 200)
	store.SaveScore("bugtap_timed", 300)
	if _, err := store.StartRun("bugtap"); err != nil {
		t.Fatalf("StartRun() failed: %v", err)
	}

	if err := store.ClearScores("bugtap"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("bugtap", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if runs, _ := store.RecentRuns("bugtap", 10); len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
	if scores, _ := store.TopScores("bugtap_timed", 10); len(scores) != 1 {
		t.Errorf("Other modes should not be affected by clearing bugtap")
	}
}

func TestStoreRunLifecycle(t *testing.T) {
	store := openTestStore(t)

	id, err := store.StartRun("bugtap_timed")
	if err != nil {
		t.Fatalf("StartRun() failed: %v", err)
	}

	if err := store.UpdateRun(id, 3, 1); err != nil {
		t.Fatalf("UpdateRun() failed: %v", err)
	}
	if err := store.UpdateRun(id, 8, 2); err != nil {
		t.Fatalf("UpdateRun() failed: %v", err)
	}

	run, err := store.Run(id)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if run.Score != 8 || run.Elapsed != 2 || run.Finished {
		t.Errorf("live run = %+v, want score 8 elapsed 2 unfinished", run)
	}

	if err := store.FinishRun(id, 11, 60, true); err != nil {
		t.Fatalf("FinishRun() failed: %v", err)
	}
	// Late updates and a second finish do not change the result.
	if err := store.UpdateRun(id, 99, 99); err != nil {
		t.Fatalf("UpdateRun() after finish failed: %v", err)
	}
	if err := store.FinishRun(id, 0, 0, false); err != nil {
		t.Fatalf("second FinishRun() failed: %v", err)
	}

	run, err = store.Run(id)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if run.Score != 11 || run.Elapsed != 60 || !run.Finished || !run.Won {
		t.Errorf("finished run = %+v, want score 11 elapsed 60 won", run)
	}
}

func TestStoreRunNotFound(t *testing.T) {
	store := openTestStore(t)

	if err := store.UpdateRun(42, 1, 1); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("UpdateRun() error = %v, want ErrRunNotFound", err)
	}
	if err := store.FinishRun(42, 1, 1, false); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("FinishRun() error = %v, want ErrRunNotFound", err)
	}
	if _, err := store.Run(42); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Run() error = %v, want ErrRunNotFound", err)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	var ids []int64
	for i := 0; i < 4; i++ {
		id, err := store.StartRun("bugtap")
		if err != nil {
			t.Fatalf("StartRun() failed: %v", err)
		}
		ids = append(ids, id)
	}
	store.StartRun("bugtap_timed")

	runs, err := store.RecentRuns("bugtap", 3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	if runs[0].ID != ids[3] || runs[2].ID != ids[1] {
		t.Errorf("runs not newest first: %v", runs)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("bugtap_timed", 10)
	store.SaveScore("bugtap_timed", 30)
	won, _ := store.StartRun("bugtap_timed")
	store.FinishRun(won, 30, 60, true)
	lost, _ := store.StartRun("bugtap_timed")
	store.FinishRun(lost, 10, 20, false)

	stats, err := store.GetGameStats("bugtap_timed")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 30 || stats.TotalScore != 40 || stats.AvgScore != 20 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.Wins != 1 {
		t.Errorf("wins = %d, want 1", stats.Wins)
	}

	empty, err := store.GetGameStats("bugtap")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
