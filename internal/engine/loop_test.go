package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/bugtap/internal/core"
)

// recorder collects the order of update and render calls across entities.
type recorder struct {
	updates []string
	renders []string
}

type probe struct {
	Base
	name      string
	rec       *recorder
	deleteAt  int // delete itself on this update count, 0 = never
	updateCnt int
}

func newProbe(rec *recorder, name string, priority int) *probe {
	return &probe{Base: NewBase(priority), name: name, rec: rec}
}

func (p *probe) Update() {
	p.updateCnt++
	p.rec.updates = append(p.rec.updates, p.name)
	if p.deleteAt > 0 && p.updateCnt == p.deleteAt {
		p.Delete()
	}
}

func (p *probe) Render(Surface) {
	p.rec.renders = append(p.rec.renders, p.name)
}

type nullSurface struct{}

func (nullSurface) Size() (float64, float64)                     { return 100, 100 }
func (nullSurface) ClearRect(core.BoundingBox)                   {}
func (nullSurface) FillRect(core.BoundingBox, Fill)              {}
func (nullSurface) FillText(float64, float64, string, TextStyle) {}

func (nullSurface) DrawImageRegion(Image, core.BoundingBox, core.BoundingBox, Transform) {}

type setupFunc func(l *Loop) error

func (f setupFunc) Setup(l *Loop) error { return f(l) }

func startedLoop(t *testing.T, setup func(l *Loop)) *Loop {
	t.Helper()
	l := NewLoop(60)
	l.Bind(setupFunc(func(l *Loop) error {
		setup(l)
		return nil
	}))
	require.NoError(t, l.Start())
	return l
}

func TestLoopStartWithoutGame(t *testing.T) {
	l := NewLoop(60)
	err := l.Start()
	assert.ErrorIs(t, err, ErrNoGame)
	assert.Equal(t, StateStopped, l.State())
	assert.False(t, l.Tick(), "stopped loop must not tick")
}

func TestLoopStartPropagatesSetupError(t *testing.T) {
	boom := errors.New("boom")
	l := NewLoop(60)
	l.Bind(setupFunc(func(l *Loop) error {
		l.Add(newProbe(&recorder{}, "x", 0))
		return boom
	}))

	err := l.Start()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StateStopped, l.State())
	assert.Equal(t, 0, l.Len(), "failed setup must not leave entities behind")
}

func TestLoopDeleteSweepOrdering(t *testing.T) {
	rec := &recorder{}
	var quitter *probe
	l := startedLoop(t, func(l *Loop) {
		quitter = newProbe(rec, "quitter", 0)
		quitter.deleteAt = 1
		l.Add(quitter)
		l.Add(newProbe(rec, "stayer", 0))
	})

	l.Tick()
	l.Render(nullSurface{})
	assert.Equal(t, []string{"quitter", "stayer"}, rec.updates)
	assert.Equal(t, []string{"stayer"}, rec.renders, "flagged entity must not render in the same tick")

	rec.updates = nil
	l.Tick()
	assert.Equal(t, []string{"stayer"}, rec.updates, "flagged entity must not update in the next tick")
	assert.Equal(t, 1, l.Len())
}

func TestLoopRenderOrder(t *testing.T) {
	rec := &recorder{}
	l := startedLoop(t, func(l *Loop) {
		l.Add(newProbe(rec, "p3", 3))
		l.Add(newProbe(rec, "p1a", 1))
		l.Add(newProbe(rec, "p2", 2))
		l.Add(newProbe(rec, "p1b", 1))
	})

	l.Render(nullSurface{})
	assert.Equal(t, []string{"p1a", "p1b", "p2", "p3"}, rec.renders)

	rec.renders = nil
	l.Render(nullSurface{})
	assert.Equal(t, []string{"p1a", "p1b", "p2", "p3"}, rec.renders, "ties keep insertion order on every pass")
}

func TestLoopPauseFreezesPausableEntities(t *testing.T) {
	rec := &recorder{}
	l := startedLoop(t, func(l *Loop) {
		l.Add(newProbe(rec, "sim", 0))
		cursor := newProbe(rec, "cursor", 9)
		cursor.SetPausable(false)
		l.Add(cursor)
	})

	fired := 0
	l.Scheduler().After(1, func() { fired++ })

	l.Pause()
	require.Equal(t, StatePaused, l.State())
	l.Tick()
	l.Tick()
	assert.Equal(t, []string{"cursor", "cursor"}, rec.updates)
	assert.Equal(t, 0, fired, "scheduler must not advance while paused")
	assert.Equal(t, uint64(0), l.Ticks())

	l.TogglePause()
	require.Equal(t, StateRunning, l.State())
	l.Tick()
	assert.Equal(t, 1, fired)
	assert.Equal(t, uint64(1), l.Ticks())
}

func TestLoopStopCancelsTimers(t *testing.T) {
	l := startedLoop(t, func(l *Loop) {})
	fired := false
	l.Scheduler().After(2, func() { fired = true })
	require.Equal(t, 1, l.Scheduler().Pending())

	l.Stop()
	assert.Equal(t, StateStopped, l.State())
	assert.Equal(t, 0, l.Scheduler().Pending())

	l.TogglePause()
	assert.Equal(t, StateStopped, l.State(), "pause toggle must not revive a stopped loop")
	for i := 0; i < 5; i++ {
		l.Tick()
	}
	assert.False(t, fired)
}

func TestLoopRestartRebuildsState(t *testing.T) {
	setups := 0
	l := NewLoop(30)
	l.Bind(setupFunc(func(l *Loop) error {
		setups++
		l.Add(newProbe(&recorder{}, "e", 0))
		return nil
	}))

	require.NoError(t, l.Start())
	l.Tick()
	l.Stop()
	require.NoError(t, l.Start())

	assert.Equal(t, 2, setups)
	assert.Equal(t, 1, l.Len(), "restart must drop the previous entities")
	assert.Equal(t, uint64(0), l.Ticks())
}

func TestLoopAddedDuringTickUpdatesNextTick(t *testing.T) {
	rec := &recorder{}
	spawner := &spawnOnce{rec: rec}
	l := startedLoop(t, func(lp *Loop) {
		spawner.Base = NewBase(0)
		spawner.loop = lp
		lp.Add(spawner)
	})

	l.Tick()
	assert.Empty(t, rec.updates, "child must not update in the tick it was spawned")
	l.Tick()
	assert.Equal(t, []string{"child"}, rec.updates)
}

type spawnOnce struct {
	Base
	loop *Loop
	rec  *recorder
	done bool
}

func (s *spawnOnce) Update() {
	if !s.done {
		s.done = true
		s.loop.Add(newProbe(s.rec, "child", 0))
	}
}

func (s *spawnOnce) Render(Surface) {}

func TestLoopDoubleOwnershipPanics(t *testing.T) {
	e := newProbe(&recorder{}, "e", 0)
	startedLoop(t, func(l *Loop) { l.Add(e) })
	b := NewLoop(60)
	assert.Panics(t, func() { b.Add(e) })
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "paused", StatePaused.String())
	assert.Equal(t, "stopped", StateStopped.String())
}
