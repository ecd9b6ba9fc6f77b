package storage

import (
	"database/sql"
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

func mustSave(t *testing.T, store *Store, rec ScoreRecord) {
	t.Helper()
	if _, err := store.SaveScore(rec); err != nil {
		t.Fatalf("SaveScore(%+v) failed: %v", rec, err)
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

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, ScoreRecord{GameID: "tetris", Score: 100, Lines: 4, Level: 0})
	mustSave(t, store, ScoreRecord{GameID: "tetris", Score: 50, Lines: 2, Level: 0})
	mustSave(t, store, ScoreRecord{GameID: "tetris", Score: 2400, Lines: 31, Level: 3, Player: "alice"})
	mustSave(t, store, ScoreRecord{GameID: "tetris_endless", Score: 500})

	scores, err := store.TopScores("tetris", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 2400 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %+v", scores)
	}

	best := scores[0]
	if best.Lines != 31 || best.Level != 3 || best.Player != "alice" {
		t.Errorf("Stats not stored: %+v", best)
	}
	if best.CreatedAt.IsZero() {
		t.Error("CreatedAt not parsed")
	}
	if time.Since(best.CreatedAt) > 24*time.Hour {
		t.Errorf("CreatedAt looks wrong: %v", best.CreatedAt)
	}

	endless, err := store.TopScores("tetris_endless", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(endless) != 1 {
		t.Errorf("Expected 1 endless score, got %d", len(endless))
	}
}

func TestStoreSaveRejectsEmptyGame(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveScore(ScoreRecord{Score: 10}); err == nil {
		t.Error("Expected error for empty game id")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		mustSave(t, store, ScoreRecord{GameID: "tetris", Score: (i + 1) * 100})
	}

	scores, err := store.TopScores("tetris", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %+v", scores)
	}

	// Non-positive limit falls back to 10
	all, err := store.TopScores("tetris", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("Expected 5 scores with default limit, got %d", len(all))
	}
}

func TestStoreTopScoresTieOrder(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, ScoreRecord{GameID: "tetris", Score: 300, Player: "first"})
	mustSave(t, store, ScoreRecord{GameID: "tetris", Score: 300, Player: "second"})

	scores, err := store.TopScores("tetris", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if scores[0].Player != "first" {
		t.Errorf("Expected earlier score first on tie, got %q", scores[0].Player)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("tetris")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	mustSave(t, store, ScoreRecord{GameID: "tetris", Score: 100})
	mustSave(t, store, ScoreRecord{GameID: "tetris", Score: 300})
	mustSave(t, store, ScoreRecord{GameID: "tetris", Score: 200})

	high, err = store.HighScore("tetris")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, ScoreRecord{GameID: "tetris", Score: 100})
	mustSave(t, store, ScoreRecord{GameID: "tetris", Score: 200})
	mustSave(t, store, ScoreRecord{GameID: "tetris_endless", Score: 300})

	if err := store.ClearScores("tetris"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	marathon, _ := store.TopScores("tetris", 10)
	if len(marathon) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(marathon))
	}

	endless, _ := store.TopScores("tetris_endless", 10)
	if len(endless) != 1 {
		t.Errorf("Endless scores should not be affected by clearing marathon")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("tetris")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	mustSave(t, store, ScoreRecord{GameID: "tetris", Score: 100, Lines: 10, Level: 1})
	mustSave(t, store, ScoreRecord{GameID: "tetris", Score: 300, Lines: 5, Level: 4})

	stats, err := store.GetGameStats("tetris")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("Expected 2 games, got %d", stats.GamesCount)
	}
	if stats.HighScore != 300 || stats.AvgScore != 200 {
		t.Errorf("Unexpected score stats: %+v", stats)
	}
	if stats.MostLines != 10 || stats.BestLevel != 4 {
		t.Errorf("Unexpected line/level stats: %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not parsed")
	}
}

func TestStoreMigratesOldSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "old.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("sql.Open() failed: %v", err)
	}
	_, err = db.Exec(`CREATE TABLE scores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id TEXT NOT NULL,
		score INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	); INSERT INTO scores (game_id, score) VALUES ('tetris', 42);`)
	if err != nil {
		t.Fatalf("seed old schema failed: %v", err)
	}
	db.Close()

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() on old schema failed: %v", err)
	}
	defer store.Close()

	mustSave(t, store, ScoreRecord{GameID: "tetris", Score: 7, Lines: 1, Level: 2, Player: "bob"})

	scores, err := store.TopScores("tetris", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 2 || scores[0].Score != 42 || scores[0].Lines != 0 {
		t.Errorf("Old rows not preserved: %+v", scores)
	}
	if scores[1].Player != "bob" || scores[1].Level != 2 {
		t.Errorf("New columns not written: %+v", scores[1])
	}
}

func TestStoreNestedPath(t *testing.T) {
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

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want time.Time
	}{
		{"time", want, want},
		{"sqlite text", "2026-10-14 09:30:00", want},
		{"rfc3339", "2026-10-14T09:30:00Z", want},
		{"garbage", "yesterday", time.Time{}},
		{"nil", nil, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseTimestamp(tt.in); !got.Equal(tt.want) {
				t.Errorf("parseTimestamp(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
