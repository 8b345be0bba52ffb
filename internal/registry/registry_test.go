package registry

import (
	"testing"

	"github.com/vovakirdan/bugtap/internal/core"
)

type stubGame struct {
	id    string
	state core.GameState
}

func (g *stubGame) ID() string { return g.id }

func (g *stubGame) Title() string { return "Stub " + g.id }

func (g *stubGame) Reset(cfg core.RuntimeConfig) { g.state = core.GameState{} }

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.state.Score++
	return core.StepResult{State: g.state}
}

func (g *stubGame) Render(dst *core.Screen) {}

func (g *stubGame) State() core.GameState { return g.state }

func TestRegistryCreateAndList(t *testing.T) {
	r := New()
	r.Register("b", func() Game { return &stubGame{id: "b"} })
	r.Register("a", func() Game { return &stubGame{id: "a"} })

	list := r.List()
	if len(list) != 2 || list[0].ID != "a" || list[1].ID != "b" {
		t.Fatalf("List() = %v, want sorted [a b]", list)
	}
	if list[0].Title != "Stub a" {
		t.Errorf("title = %q", list[0].Title)
	}

	g1, err := r.Create("a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	g2, _ := r.Create("a")
	g1.Step(core.NewInputFrame())
	if g2.State().Score != 0 {
		t.Error("Create should return independent instances")
	}

	if _, err := r.Create("missing"); err == nil {
		t.Error("expected error for unknown game")
	}
	if !r.Exists("b") || r.Exists("missing") {
		t.Error("Exists mismatch")
	}
}

func TestRegistryDuplicatePanics(t *testing.T) {
	r := New()
	r.Register("a", func() Game { return &stubGame{id: "a"} })

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	r.Register("a", func() Game { return &stubGame{id: "a"} })
}
