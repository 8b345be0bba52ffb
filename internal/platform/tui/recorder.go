package tui

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bugtap/internal/core"
	"github.com/vovakirdan/bugtap/internal/registry"
	"github.com/vovakirdan/bugtap/internal/storage"
)

// Recorder persists a game's progress. A run row is opened on every reset,
// kept current from the score and time hooks, and closed together with a
// high score entry at game over. A nil store turns it into a no-op.
type Recorder struct {
	store   *storage.Store
	logger  *log.Logger
	gameID  string
	runID   int64
	score   int
	elapsed int
	done    bool
}

// NewRecorder creates a recorder writing to store.
func NewRecorder(store *storage.Store, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{store: store, logger: logger}
}

// Attach binds the recorder to game and installs its hooks when the game
// reports progress itself.
func (r *Recorder) Attach(game registry.Game) {
	r.gameID = game.ID()
	if h, ok := game.(registry.Hooked); ok {
		h.SetHooks(r.Hooks())
	}
	if l, ok := game.(registry.Logged); ok {
		l.SetLogger(r.logger)
	}
}

// Hooks returns the sinks that feed the recorder.
func (r *Recorder) Hooks() core.Hooks {
	return core.Hooks{
		OnScore:    r.onScore,
		OnTime:     r.onTime,
		OnGameOver: r.onGameOver,
	}
}

// Begin opens a new run. Call it after every game reset.
func (r *Recorder) Begin() {
	r.runID = 0
	r.score, r.elapsed = 0, 0
	r.done = false
	if r.store == nil {
		return
	}

	id, err := r.store.StartRun(r.gameID)
	if err != nil {
		r.logger.Warn("could not start run", "game", r.gameID, "error", err)
		return
	}
	r.runID = id
}

// Finish closes the run from a final game state. It is a no-op once the
// game-over hook has fired, so games without hooks are still recorded.
func (r *Recorder) Finish(state core.GameState) {
	if r.done {
		return
	}
	r.elapsed = state.Elapsed
	r.onGameOver(state.Score, state.Won)
}

// RunID returns the id of the current run, 0 when none is open.
func (r *Recorder) RunID() int64 { return r.runID }

// Done reports whether the current run has been closed.
func (r *Recorder) Done() bool { return r.done }

func (r *Recorder) onScore(score int) {
	r.score = score
	r.sync()
}

func (r *Recorder) onTime(elapsed int) {
	r.elapsed = elapsed
	r.sync()
}

func (r *Recorder) sync() {
	if r.store == nil || r.runID == 0 || r.done {
		return
	}
	if err := r.store.UpdateRun(r.runID, r.score, r.elapsed); err != nil {
		r.logger.Warn("could not update run", "run", r.runID, "error", err)
	}
}

func (r *Recorder) onGameOver(score int, won bool) {
	if r.done {
		return
	}
	r.done = true
	r.score = score
	r.logger.Info("run finished", "game", r.gameID, "run", r.runID, "score", score, "won", won, "elapsed", r.elapsed)

	if r.store == nil {
		return
	}
	if r.runID != 0 {
		if err := r.store.FinishRun(r.runID, score, r.elapsed, won); err != nil {
			r.logger.Warn("could not finish run", "run", r.runID, "error", err)
		}
	}
	if score > 0 {
		if _, err := r.store.SaveScore(r.gameID, score); err != nil {
			r.logger.Warn("could not save score", "game", r.gameID, "error", err)
		}
	}
}
