package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

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
	for _, run := range []Run{
		{GameID: "breakout", Score: 100, Level: 1, Outcome: "gameover"},
		{GameID: "breakout", Score: 50, Level: 1, Outcome: "gameover"},
		{GameID: "breakout", Score: 200, Level: 3, Outcome: "won"},
		{GameID: "snake", Score: 500, Outcome: "gameover"}, // Different game
	} {
		if _, err := store.SaveRun(run); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	// Retrieve top scores for breakout
	scores, err := store.TopScores("breakout", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 {
		t.Errorf("Expected highest score to be 200, got %d", scores[0].Score)
	}
	if scores[1].Score != 100 {
		t.Errorf("Expected second score to be 100, got %d", scores[1].Score)
	}
	if scores[2].Score != 50 {
		t.Errorf("Expected third score to be 50, got %d", scores[2].Score)
	}

	// Retrieve top scores for snake
	snakeScores, err := store.TopScores("snake", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(snakeScores) != 1 {
		t.Errorf("Expected 1 snake score, got %d", len(snakeScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save 5 scores
	for i := 0; i < 5; i++ {
		saveScore(t, store, "test", (i+1)*100)
	}

	// Request only top 3
	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// No scores yet
	high, err := store.HighScore("breakout")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	// Add scores
	saveScore(t, store, "breakout", 100)
	saveScore(t, store, "breakout", 300)
	saveScore(t, store, "breakout", 200)

	high, err = store.HighScore("breakout")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	saveScore(t, store, "breakout", 100)
	saveScore(t, store, "breakout", 200)
	saveScore(t, store, "snake", 300)

	// Clear only breakout scores
	err = store.ClearScores("breakout")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	// Breakout should be empty
	breakoutScores, _ := store.TopScores("breakout", 10)
	if len(breakoutScores) != 0 {
		t.Errorf("Expected 0 breakout scores after clear, got %d", len(breakoutScores))
	}

	// Snake should still have scores
	snakeScores, _ := store.TopScores("snake", 10)
	if len(snakeScores) != 1 {
		t.Errorf("Snake scores should not be affected by clearing breakout")
	}
}

func TestStoreAllScores(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Add many scores
	for i := 0; i < 20; i++ {
		saveScore(t, store, "test", i*10)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	// Test that ~ expansion works (we won't actually write to home)
	// Just verify the function doesn't crash
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

func saveScore(t *testing.T, store *Store, gameID string, score int) {
	t.Helper()
	if _, err := store.SaveRun(Run{GameID: gameID, Score: score, Outcome: "gameover"}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
}

// putRaw writes a kv value as-is, bypassing the best-score guard.
func putRaw(t *testing.T, store *Store, key, value string) {
	t.Helper()
	if _, err := store.db.Exec("INSERT OR REPLACE INTO kv (key, value) VALUES (?, ?)", key, value); err != nil {
		t.Fatal(err)
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreSaveRun(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{GameID: "invaders", Score: 320, Level: 0, Outcome: "won"})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("run ID %q is not a UUID: %v", id, err)
	}

	run, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run == nil || run.Score != 320 || run.Outcome != "won" || run.GameID != "invaders" {
		t.Errorf("RunByID() = %+v", run)
	}

	missing, err := store.RunByID(uuid.NewString())
	if err != nil || missing != nil {
		t.Errorf("RunByID(unknown) = %+v, %v, expected nil, nil", missing, err)
	}

	// Explicit IDs are kept
	fixed := uuid.NewString()
	got, err := store.SaveRun(Run{ID: fixed, GameID: "breakout", Score: 10, Level: 2, Outcome: "gameover"})
	if err != nil || got != fixed {
		t.Errorf("SaveRun() = %q, %v, expected %q", got, err, fixed)
	}
}

func TestStoreKeyValue(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.Get("missing"); ok || err != nil {
		t.Errorf("Get(missing) ok=%v err=%v, expected absent", ok, err)
	}

	steps := []struct {
		value   int
		written bool
		stored  string
	}{
		{40, true, "40"},
		{90, true, "90"},
		{90, false, "90"}, // ties keep the record
		{60, false, "90"},
		{-1, false, "90"},
		{91, true, "91"},
	}
	for _, st := range steps {
		written, err := store.SetMax("snake-highscore", st.value)
		if err != nil {
			t.Fatalf("SetMax(%d) failed: %v", st.value, err)
		}
		if written != st.written {
			t.Errorf("SetMax(%d) written = %v, expected %v", st.value, written, st.written)
		}
		v, ok, err := store.Get("snake-highscore")
		if err != nil || !ok || v != st.stored {
			t.Errorf("after SetMax(%d) Get() = %q, %v, %v, expected %s", st.value, v, ok, err, st.stored)
		}
	}

	// A malformed record counts as 0 and is replaced
	putRaw(t, store, "snake-highscore", "12abc")
	if written, err := store.SetMax("snake-highscore", 5); err != nil || !written {
		t.Errorf("SetMax over malformed = %v, %v, expected a write", written, err)
	}
}

func TestHighScoreCellsShareOneRecord(t *testing.T) {
	store := openTestStore(t)
	putRaw(t, store, HighScoreKey("breakout"), "100")

	// Two sessions mount while the record is 100
	a := core.NewHighScore(NewHighScoreCell(store, "breakout", nil))
	b := core.NewHighScore(NewHighScoreCell(store, "breakout", nil))

	a.Offer(500)
	b.Offer(120) // beats b's stale best but not the stored record

	cell := NewHighScoreCell(store, "breakout", nil)
	if got := cell.Load(); got != 500 {
		t.Errorf("stored best = %d, expected 500", got)
	}

	b.Offer(650)
	if got := cell.Load(); got != 650 {
		t.Errorf("stored best = %d, expected 650", got)
	}
}

func TestHighScoreCell(t *testing.T) {
	store := openTestStore(t)
	cell := NewHighScoreCell(store, "breakout", nil)

	if got := cell.Load(); got != 0 {
		t.Errorf("Load() on empty store = %d, expected 0", got)
	}

	cell.Store(1250)
	if raw, _, _ := store.Get("breakout-highscore"); raw != "1250" {
		t.Errorf("stored value = %q, expected decimal string", raw)
	}
	if got := cell.Load(); got != 1250 {
		t.Errorf("Load() = %d, expected 1250", got)
	}

	// Clearing scores also clears the cell
	if err := store.ClearScores("breakout"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if got := cell.Load(); got != 0 {
		t.Errorf("Load() after clear = %d, expected 0", got)
	}
}

func TestHighScoreCellMalformed(t *testing.T) {
	store := openTestStore(t)
	cell := NewHighScoreCell(store, "invaders", nil)

	for _, raw := range []string{"", "abc", "12abc", "-5", "1e3"} {
		putRaw(t, store, HighScoreKey("invaders"), raw)
		if got := cell.Load(); got != 0 {
			t.Errorf("Load() with %q = %d, expected 0", raw, got)
		}
	}
}

type failingKV struct{}

func (failingKV) Get(string) (string, bool, error) { return "", false, errors.New("disk gone") }
func (failingKV) SetMax(string, int) (bool, error) { return false, errors.New("disk gone") }

func TestHighScoreCellErrorsAreNotFatal(t *testing.T) {
	cell := NewHighScoreCell(failingKV{}, "snake", nil)
	if got := cell.Load(); got != 0 {
		t.Errorf("Load() = %d, expected 0 on read error", got)
	}
	cell.Store(10) // must not panic
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"0", 0},
		{"42", 42},
		{" 17 ", 17},
		{"x", 0},
		{"-1", 0},
		{"+5", 0},
		{"1e3", 0},
	}
	for _, tt := range tests {
		if got := ParseScore(tt.in); got != tt.want {
			t.Errorf("ParseScore(%q) = %d, expected %d", tt.in, got, tt.want)
		}
	}
}

func TestStoreMigratesLegacySchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "legacy.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	_, err = db.Exec(`CREATE TABLE scores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id TEXT NOT NULL,
		score INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	); INSERT INTO scores (game_id, score) VALUES ('snake', 70);`)
	if err != nil {
		t.Fatal(err)
	}
	db.Close()

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() on legacy schema failed: %v", err)
	}
	defer store.Close()

	scores, err := store.TopScores("snake", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 70 || scores[0].RunID != "" {
		t.Errorf("legacy rows = %+v", scores)
	}

	if _, err := store.SaveRun(Run{GameID: "snake", Score: 80}); err != nil {
		t.Errorf("SaveRun() after migration failed: %v", err)
	}
}

func TestGameStats(t *testing.T) {
	store := openTestStore(t)
	saveScore(t, store, "breakout", 100)
	saveScore(t, store, "breakout", 300)
	saveScore(t, store, "snake", 50)

	stats, err := store.GetGameStats("breakout")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.AvgScore != 200 || stats.TotalScore != 400 {
		t.Errorf("GetGameStats() = %+v", stats)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["snake"].HighScore != 50 {
		t.Errorf("GetAllGamesStats() = %+v", all)
	}

	empty, err := store.GetGameStats("invaders")
	if err != nil || empty.GamesCount != 0 {
		t.Errorf("GetGameStats(unplayed) = %+v, %v", empty, err)
	}
}
