package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bugtap/internal/core"
	"github.com/vovakirdan/bugtap/internal/storage"
)

// stubGame ends after a fixed number of steps and echoes pointer input.
type stubGame struct {
	hooks    core.Hooks
	resets   int
	steps    int
	endAfter int
	score    int
	over     bool
	last     core.InputFrame
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.steps, g.score, g.over = 0, 0, false
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.last = in.Clone()
	if !g.over {
		g.steps++
		for _, p := range in.Pointer {
			if p.Kind == core.PointerDown {
				g.score += 10
				g.hooks.ReportScore(g.score)
			}
		}
		if g.endAfter > 0 && g.steps >= g.endAfter {
			g.over = true
			g.hooks.ReportGameOver(g.score, false)
		}
	}
	return core.StepResult{State: g.State()}
}

func (g *stubGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "stub") }

func (g *stubGame) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.over}
}

func (g *stubGame) SetHooks(h core.Hooks) { g.hooks = h }

func (g *stubGame) CellToPixel(cx, cy int) (float64, float64, bool) {
	if cy == 0 {
		return 0, 0, false
	}
	return float64(cx * 10), float64(cy * 10), true
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(t *testing.T, g *stubGame, store *storage.Store) GameModel {
	t.Helper()
	m := NewGameModel(g, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 1}, nil)
	if m.Init() == nil {
		t.Fatal("Init should start the tick loop")
	}
	return m
}

func update(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm
}

func TestGameModelMouseTap(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(t, g, nil)

	m = update(t, m, tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: 5, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: 4, Y: 4, Action: tea.MouseActionMotion})
	m = update(t, m, TickMsg{})

	if len(g.last.Pointer) != 2 {
		t.Fatalf("pointer events = %d, want 2 (HUD press dropped)", len(g.last.Pointer))
	}
	if p := g.last.Pointer[0]; p.Kind != core.PointerDown || p.X != 30 || p.Y != 20 {
		t.Errorf("first event = %+v", p)
	}
	if p := g.last.Pointer[1]; p.Kind != core.PointerMove {
		t.Errorf("second event = %+v", p)
	}
	if m.State().Score != 10 {
		t.Errorf("score = %d, want 10", m.State().Score)
	}

	// Input is cleared between ticks.
	update(t, m, TickMsg{})
	if len(g.last.Pointer) != 0 {
		t.Error("pointer events leaked into the next tick")
	}
}

func TestGameModelKeys(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(t, g, nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	m = update(t, m, TickMsg{})
	if !g.last.Has(core.ActionPause) {
		t.Error("p should map to pause")
	}
	if len(g.last.Keys) != 1 || g.last.Keys[0] != (core.KeyEvent{Key: "p", Down: true}) {
		t.Errorf("raw keys = %+v, want p down", g.last.Keys)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m = update(t, m, TickMsg{})
	if len(g.last.Keys) != 1 || g.last.Keys[0].Key != "x" || len(g.last.Actions) != 0 {
		t.Errorf("unbound key: keys = %+v, actions = %v", g.last.Keys, g.last.Actions)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Error("back must be ignored during play")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
}

func TestGameModelRecordsRun(t *testing.T) {
	store := openTestStore(t)
	g := &stubGame{endAfter: 2}
	m := newTestModel(t, g, store)

	m = update(t, m, tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	if !m.State().GameOver {
		t.Fatal("expected game over")
	}

	runs, err := store.RecentRuns("stub", 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 || !runs[0].Finished || runs[0].Score != 10 {
		t.Fatalf("runs = %+v", runs)
	}
	if best, _ := store.HighScore("stub"); best != 10 {
		t.Errorf("high score = %d, want 10", best)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back should leave a finished game")
	}

	// Restart opens a second run.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	update(t, m, TickMsg{})
	if g.resets != 2 {
		t.Errorf("resets = %d, want 2", g.resets)
	}
	runs, _ = store.RecentRuns("stub", 10)
	if len(runs) != 2 || runs[0].Finished {
		t.Errorf("runs after restart = %+v", runs)
	}
	scores, _ := store.TopScores("stub", 10)
	if len(scores) != 1 {
		t.Errorf("score entries = %d, want 1", len(scores))
	}
}

func TestGameModelResizeRestarts(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(t, g, nil)

	m = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 12})
	if g.resets != 1 {
		t.Errorf("same-size resize reset the game (resets = %d)", g.resets)
	}
	update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	if g.resets != 2 {
		t.Errorf("resets = %d, want 2", g.resets)
	}
}

func TestRecorderWithoutHooks(t *testing.T) {
	store := openTestStore(t)
	r := NewRecorder(store, nil)
	r.gameID = "plain"
	r.Begin()
	if r.RunID() == 0 {
		t.Fatal("expected a run id")
	}

	r.Finish(core.GameState{Score: 7, Elapsed: 3, GameOver: true, Won: true})
	r.Finish(core.GameState{Score: 99, GameOver: true})

	run, err := store.Run(r.RunID())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if run.Score != 7 || run.Elapsed != 3 || !run.Won || !run.Finished {
		t.Errorf("run = %+v", run)
	}
	if !r.Done() {
		t.Error("recorder should be done")
	}
}

func TestRecorderNilStore(t *testing.T) {
	r := NewRecorder(nil, nil)
	r.Begin()
	h := r.Hooks()
	h.ReportScore(5)
	h.ReportTime(1)
	h.ReportGameOver(5, false)
	if r.RunID() != 0 || !r.Done() {
		t.Errorf("run id = %d, done = %v", r.RunID(), r.Done())
	}
}
