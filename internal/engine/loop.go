package engine

import (
	"errors"
	"io"
	"sort"

	"github.com/charmbracelet/log"
)

// ErrNoGame is returned by Start when no game is bound to the loop.
var ErrNoGame = errors.New("engine: no game bound to loop")

// State is the run state of a Loop.
type State int

const (
	StateStopped State = iota
	StateRunning
	StatePaused
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Binder is the game a Loop drives. Setup is called on every Start, after the
// loop has been cleared, to (re)build the domain state.
type Binder interface {
	Setup(l *Loop) error
}

// Loop owns the live entities and drives update, delete-sweep and render.
// It is single-threaded: callers must not invoke it concurrently.
type Loop struct {
	fps       int
	state     State
	game      Binder
	entities  []Entity
	scheduler *Scheduler
	ticks     uint64
	logger    *log.Logger
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithLogger sets the logger used for state transitions.
func WithLogger(logger *log.Logger) LoopOption {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoop creates a stopped loop ticking at the given rate.
func NewLoop(fps int, opts ...LoopOption) *Loop {
	if fps <= 0 {
		fps = 60
	}
	l := &Loop{
		fps:       fps,
		scheduler: NewScheduler(),
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Bind connects the game that Start will set up.
func (l *Loop) Bind(g Binder) {
	l.game = g
}

// Start clears the loop, lets the bound game set itself up and enters the
// running state. Starting without a bound game is a configuration error.
func (l *Loop) Start() error {
	if l.game == nil {
		return ErrNoGame
	}

	l.clear()
	if err := l.game.Setup(l); err != nil {
		l.clear()
		l.state = StateStopped
		return err
	}

	l.setState(StateRunning)
	return nil
}

// Stop cancels all armed timers and freezes the entities in place.
func (l *Loop) Stop() {
	l.scheduler.Reset()
	l.setState(StateStopped)
}

// Pause suspends updates of pausable entities and the scheduler.
func (l *Loop) Pause() {
	if l.state == StateRunning {
		l.setState(StatePaused)
	}
}

// Resume continues a paused loop.
func (l *Loop) Resume() {
	if l.state == StatePaused {
		l.setState(StateRunning)
	}
}

// TogglePause flips between running and paused. Stopped loops are unaffected.
func (l *Loop) TogglePause() {
	switch l.state {
	case StateRunning:
		l.Pause()
	case StatePaused:
		l.Resume()
	}
}

// State returns the current run state.
func (l *Loop) State() State {
	return l.state
}

// FPS returns the configured tick rate.
func (l *Loop) FPS() int {
	return l.fps
}

// Ticks returns the number of running ticks since the last Start.
func (l *Loop) Ticks() uint64 {
	return l.ticks
}

// Scheduler returns the loop-owned scheduler.
func (l *Loop) Scheduler() *Scheduler {
	return l.scheduler
}

// Logger returns the loop logger.
func (l *Loop) Logger() *log.Logger {
	return l.logger
}

// Add hands an entity to the loop. An entity belongs to at most one loop and
// may be added only once; violating that is a programmer error.
func (l *Loop) Add(e Entity) {
	if o, ok := e.(owned); ok {
		b := o.base()
		if b.owner != nil {
			panic("engine: entity already owned by a loop")
		}
		b.owner = l
	}
	l.entities = append(l.entities, e)
}

// Len returns the number of live entities.
func (l *Loop) Len() int {
	return len(l.entities)
}

// Entities returns a copy of the live entity list in insertion order.
func (l *Loop) Entities() []Entity {
	return append([]Entity(nil), l.entities...)
}

// Tick runs one simulation step and reports whether anything was updated.
//
// Running: the scheduler advances, every live entity updates, then one
// delete-sweep removes every flagged entity. Paused: only non-pausable
// entities update. Stopped: nothing happens.
func (l *Loop) Tick() bool {
	switch l.state {
	case StateRunning:
		l.ticks++
		l.scheduler.Advance()
		l.update(false)
	case StatePaused:
		l.update(true)
	default:
		return false
	}
	l.sweep()
	return true
}

func (l *Loop) update(pausedOnly bool) {
	// Entities added during this pass get their first update next tick.
	n := len(l.entities)
	for i := 0; i < n; i++ {
		e := l.entities[i]
		if e.Deleted() {
			continue
		}
		if pausedOnly && e.Pausable() {
			continue
		}
		e.Update()
	}
}

func (l *Loop) sweep() {
	live := l.entities[:0]
	for _, e := range l.entities {
		if !e.Deleted() {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(l.entities); i++ {
		l.entities[i] = nil
	}
	l.entities = live
}

// Render draws every live entity in ascending draw priority.
// Entities sharing a priority draw in insertion order.
func (l *Loop) Render(dst Surface) {
	ordered := l.Entities()
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].DrawPriority() < ordered[j].DrawPriority()
	})
	for _, e := range ordered {
		if e.Deleted() {
			continue
		}
		e.Render(dst)
	}
}

func (l *Loop) clear() {
	for _, e := range l.entities {
		if o, ok := e.(owned); ok {
			o.base().owner = nil
		}
	}
	l.entities = nil
	l.scheduler.Reset()
	l.ticks = 0
}

func (l *Loop) setState(s State) {
	if l.state == s {
		return
	}
	l.logger.Debug("loop state", "from", l.state, "to", s, "ticks", l.ticks)
	l.state = s
}
