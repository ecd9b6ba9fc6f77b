package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

func menuPress(m MenuModel, keys ...string) MenuModel {
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(MenuModel)
	}
	return m
}

func TestMenuListsModes(t *testing.T) {
	m := NewMenuModel(nil, testConfig())
	view := m.View()

	for _, title := range []string{"Tetris (Marathon)", "Tetris (Endless)"} {
		if !strings.Contains(view, title) {
			t.Errorf("Menu missing %q", title)
		}
	}
	if !strings.Contains(view, "Start level: < 0 >") {
		t.Error("Menu missing start level picker")
	}
}

func TestMenuStartLevelClamped(t *testing.T) {
	m := NewMenuModel(nil, testConfig())

	m = menuPress(m, "left")
	if m.StartLevel() != 0 {
		t.Errorf("Level went below zero: %d", m.StartLevel())
	}

	for _i := 0; _i < MaxStartLevel+3; _i++ {
		m = menuPress(m, "right")
	}
	if m.StartLevel() != MaxStartLevel {
		t.Errorf("Expected level %d, got %d", MaxStartLevel, m.StartLevel())
	}

	m = menuPress(m, "h")
	if m.StartLevel() != MaxStartLevel-1 {
		t.Errorf("Expected level %d, got %d", MaxStartLevel-1, m.StartLevel())
	}
}

func TestMenuSelectEndless(t *testing.T) {
	m := NewMenuModel(nil, testConfig())

	m = menuPress(m, "down", "down", "down", "enter")
	sel := m.Selected()
	if sel == nil {
		t.Fatal("Expected a selection")
	}
	if sel.GameID != tetris.IDEndless {
		t.Errorf("Expected %s, got %s", tetris.IDEndless, sel.GameID)
	}
}

func TestMenuShowsHighScore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	if _, err := store.SaveScore(storage.ScoreRecord{GameID: tetris.IDMarathon, Score: 4321}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	m := NewMenuModel(store, testConfig())
	if !strings.Contains(m.View(), "best 4321") {
		t.Error("Menu should show the best marathon score")
	}
}

func TestApplyStartLevel(t *testing.T) {
	g := tetris.New()
	ApplyStartLevel(g, 4)
	g.Reset(testConfig())
	if g.State().Level != 4 {
		t.Errorf("Expected level 4, got %d", g.State().Level)
	}

	g2 := tetris.New()
	ApplyStartLevel(g2, -1)
	g2.Reset(testConfig())
	if g2.State().Level != g2.Config().Levels.StartLevel {
		t.Errorf("A negative level should keep the configured start level")
	}
}

func TestMenuStartLevelFollowsPreset(t *testing.T) {
	tetris.SetDifficultyPreset("hard")
	defer tetris.SetDifficultyPreset("")

	m := NewMenuModel(nil, testConfig())
	if m.StartLevel() != 8 {
		t.Fatalf("Picker should open on the preset level 8, got %d", m.StartLevel())
	}
	if !strings.Contains(m.View(), "Start level: < 8 >") {
		t.Error("Menu should show the preset start level")
	}

	// Picking 0 must start at 0 even though the preset says 8
	for _i := 0; _i < 8; _i++ {
		m = menuPress(m, "left")
	}
	if m.StartLevel() != 0 {
		t.Fatalf("Expected level 0, got %d", m.StartLevel())
	}

	g := tetris.New()
	ApplyStartLevel(g, m.StartLevel())
	g.Reset(testConfig())
	if g.State().Level != 0 {
		t.Errorf("Picked level 0, game started at %d", g.State().Level)
	}
}

func TestMenuStartLevelAboveMax(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	if err := os.WriteFile(path, []byte("levels:\n  start_level: 12\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	tetris.SetConfigPath(path)
	defer tetris.SetConfigPath("")

	m := NewMenuModel(nil, testConfig())
	if m.StartLevel() != 12 {
		t.Fatalf("Picker should open on the configured level 12, got %d", m.StartLevel())
	}
	m = menuPress(m, "right")
	if m.StartLevel() != 12 {
		t.Errorf("Picker should not go past the configured level, got %d", m.StartLevel())
	}
	m = menuPress(m, "left")
	if m.StartLevel() != 11 {
		t.Errorf("Expected level 11, got %d", m.StartLevel())
	}
}

func sessionSend(t *testing.T, m SessionModel, msgs ...tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		sm, ok := next.(SessionModel)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
		m = sm
	}
	return m, cmd
}

func TestSessionFlow(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), "bob", nil)

	m, _ = sessionSend(t, m, keyMsg("tab"))
	if m.screen != screenScores {
		t.Fatal("tab should open the scoreboard")
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("Scoreboard view missing title")
	}

	m, _ = sessionSend(t, m, keyMsg("b"))
	if m.screen != screenMenu || m.quitting {
		t.Fatal("back should return to the menu")
	}

	m, cmd := sessionSend(t, m, keyMsg("enter"))
	if m.screen != screenGame {
		t.Fatal("enter should start a game")
	}
	if cmd == nil {
		t.Error("starting a game should start the tick loop")
	}

	m, _ = sessionSend(t, m, TickMsg{}, keyMsg("p"), TickMsg{}, keyMsg("b"))
	if m.screen != screenMenu {
		t.Fatal("back from a paused game should return to the menu")
	}

	m, _ = sessionSend(t, m, keyMsg("q"))
	if !m.quitting {
		t.Error("q should end the session")
	}
}
