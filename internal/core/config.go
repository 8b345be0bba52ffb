package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Elapsed  int  // Whole seconds of play
	GameOver bool // Whether the game has ended
	Won      bool // Meaningful only once GameOver is set
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

// Hooks are the sinks a game reports to. Any field may be nil.
type Hooks struct {
	// OnScore is called every time the score changes.
	OnScore func(score int)
	// OnTime is called every time the elapsed whole seconds change.
	OnTime func(elapsedSeconds int)
	// OnGameOver is called exactly once when the game reaches a terminal state.
	OnGameOver func(finalScore int, won bool)
}

// ReportScore forwards to OnScore when set.
func (h Hooks) ReportScore(score int) {
	if h.OnScore != nil {
		h.OnScore(score)
	}
}

// ReportTime forwards to OnTime when set.
func (h Hooks) ReportTime(elapsedSeconds int) {
	if h.OnTime != nil {
		h.OnTime(elapsedSeconds)
	}
}

// ReportGameOver forwards to OnGameOver when set.
func (h Hooks) ReportGameOver(finalScore int, won bool) {
	if h.OnGameOver != nil {
		h.OnGameOver(finalScore, won)
	}
}
