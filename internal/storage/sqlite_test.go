package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func run(mode string, score int) RunRecord {
	return RunRecord{
		Mode:     mode,
		Score:    score,
		Coins:    score / 10,
		Distance: float64(score) * 1.5,
		Duration: 42.5,
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save some runs
	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveRun(run("classic", score)); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	// Different mode
	if _, err := store.SaveRun(run("timetrial", 500)); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	// Retrieve top runs for classic
	runs, err := store.TopRuns("classic", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}

	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	// Should be sorted descending
	if runs[0].Score != 200 || runs[1].Score != 100 || runs[2].Score != 50 {
		t.Errorf("Runs not in expected order: %v", runs)
	}

	// The extra columns round-trip
	if runs[0].Coins != 20 || runs[0].Distance != 300 || runs[0].Duration != 42.5 {
		t.Errorf("Run details lost: %+v", runs[0])
	}

	// Retrieve top runs for timetrial
	trialRuns, err := store.TopRuns("timetrial", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}

	if len(trialRuns) != 1 {
		t.Errorf("Expected 1 timetrial run, got %d", len(trialRuns))
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save 5 runs
	for i := 0; i < 5; i++ {
		store.SaveRun(run("classic", (i+1)*100))
	}

	// Request only top 3
	runs, err := store.TopRuns("classic", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}

	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}

	// Should be 500, 400, 300 (top 3)
	if runs[0].Score != 500 || runs[1].Score != 400 || runs[2].Score != 300 {
		t.Errorf("Runs not in expected order: %v", runs)
	}
}

func TestStoreBestScore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// No runs yet
	best, err := store.BestScore("classic")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected best score of 0 for empty mode, got %d", best)
	}

	// Add runs
	store.SaveRun(run("classic", 100))
	store.SaveRun(run("classic", 300))
	store.SaveRun(run("classic", 200))

	best, err = store.BestScore("classic")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 300 {
		t.Errorf("Expected best score of 300, got %d", best)
	}
}

func TestStoreIsHighScore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// First run of a mode is always a high score, even a zero
	high, err := store.IsHighScore("classic", 0)
	if err != nil {
		t.Fatalf("IsHighScore() failed: %v", err)
	}
	if !high {
		t.Error("First run should count as a high score")
	}

	store.SaveRun(run("classic", 300))

	cases := []struct {
		score int
		want  bool
	}{
		{299, false},
		{300, false}, // Ties do not beat the record
		{301, true},
	}
	for _, c := range cases {
		got, err := store.IsHighScore("classic", c.score)
		if err != nil {
			t.Fatalf("IsHighScore(%d) failed: %v", c.score, err)
		}
		if got != c.want {
			t.Errorf("IsHighScore(%d) = %v, want %v", c.score, got, c.want)
		}
	}

	// Other modes keep their own records
	high, err = store.IsHighScore("timetrial", 1)
	if err != nil {
		t.Fatalf("IsHighScore() failed: %v", err)
	}
	if !high {
		t.Error("Modes should not share high scores")
	}
}

func TestStoreClearRuns(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveRun(run("classic", 100))
	store.SaveRun(run("classic", 200))
	store.SaveRun(run("timetrial", 300))

	// Clear only classic runs
	err = store.ClearRuns("classic")
	if err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	// Classic should be empty
	classicRuns, _ := store.TopRuns("classic", 10)
	if len(classicRuns) != 0 {
		t.Errorf("Expected 0 classic runs after clear, got %d", len(classicRuns))
	}

	// Timetrial should still have runs
	trialRuns, _ := store.TopRuns("timetrial", 10)
	if len(trialRuns) != 1 {
		t.Errorf("Timetrial runs should not be affected by clearing classic")
	}
}

func TestStoreAllRuns(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Add many runs
	for i := 0; i < 20; i++ {
		store.SaveRun(run("classic", i*10))
	}

	runs, err := store.AllRuns("classic")
	if err != nil {
		t.Fatalf("AllRuns() failed: %v", err)
	}

	if len(runs) != 20 {
		t.Errorf("Expected 20 runs, got %d", len(runs))
	}
}

func TestStoreModeStats(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveRun(run("classic", 100))
	store.SaveRun(run("classic", 300))

	stats, err := store.GetModeStats("classic")
	if err != nil {
		t.Fatalf("GetModeStats() failed: %v", err)
	}

	if stats.RunsCount != 2 || stats.BestScore != 300 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("avg score = %v, want 200", stats.AvgScore)
	}
	if stats.TotalCoins != 40 {
		t.Errorf("total coins = %d, want 40", stats.TotalCoins)
	}

	all, err := store.GetAllModeStats()
	if err != nil {
		t.Fatalf("GetAllModeStats() failed: %v", err)
	}
	if len(all) != 1 || all["classic"] == nil {
		t.Errorf("all stats = %v", all)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	// Nested path creation without touching the real home directory
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
