package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bugtap/internal/config"
	"github.com/vovakirdan/bugtap/internal/core"
	"github.com/vovakirdan/bugtap/internal/registry"
)

func init() {
	registry.Register("stub", func() registry.Game { return &stubGame{} })
}

func TestMenuSelection(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveScore("stub", 30); err != nil {
		t.Fatalf("SaveScore: %v", err)
	}

	m := NewMenuModel(store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	if len(m.items) != 1 || m.items[0].Best != 30 {
		t.Fatalf("items = %+v", m.items)
	}
	if !strings.Contains(m.View(), "best 30") {
		t.Error("menu should show the best score")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(MenuModel)
	if m.Difficulty() != config.DifficultyHard {
		t.Errorf("difficulty = %s, want hard", m.Difficulty())
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	next, _ = next.(MenuModel).Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(MenuModel)
	if m.Difficulty() != config.DifficultyEasy {
		t.Errorf("difficulty = %s, want easy", m.Difficulty())
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if cmd == nil || m.Selected() == nil || m.Selected().GameID != "stub" {
		t.Errorf("selected = %+v", m.Selected())
	}
}

func TestScoreboardToggle(t *testing.T) {
	store := openTestStore(t)
	store.SaveScore("stub", 12)
	id, err := store.StartRun("stub")
	if err != nil {
		t.Fatalf("StartRun: %v", err)
	}
	if err := store.FinishRun(id, 12, 9, true); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	m := NewScoreboardModel(store, 100, 30)
	if !strings.Contains(m.View(), "HIGH SCORES - Stub") {
		t.Error("scoreboard should open on high scores")
	}
	if len(m.table.Rows()) != 1 {
		t.Errorf("score rows = %d, want 1", len(m.table.Rows()))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}})
	m = next.(ScoreboardModel)
	if !strings.Contains(m.View(), "RECENT RUNS - Stub") {
		t.Error("v should switch to recent runs")
	}
	rows := m.table.Rows()
	if len(rows) != 1 || rows[0][3] != "won" {
		t.Errorf("run rows = %v", rows)
	}
}

func TestNewGame(t *testing.T) {
	g, err := NewGame("stub", "", config.DifficultyNormal)
	if err != nil || g.ID() != "stub" {
		t.Fatalf("NewGame = %v, %v", g, err)
	}
	if _, err := NewGame("missing", "", ""); err == nil {
		t.Error("expected an error for an unknown game")
	}
}
