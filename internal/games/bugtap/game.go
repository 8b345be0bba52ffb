package bugtap

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bugtap/internal/config"
	"github.com/vovakirdan/bugtap/internal/core"
	"github.com/vovakirdan/bugtap/internal/engine"
	"github.com/vovakirdan/bugtap/internal/registry"
)

// hudRows is the number of screen rows above the playfield.
const hudRows = 1

// Mode selects the terminal condition.
type Mode int

const (
	// ModeClassic ends when the bugs have eaten all the food.
	ModeClassic Mode = iota
	// ModeTimed ends when the clock runs out; clearing the field of live
	// bugs at that moment wins.
	ModeTimed
)

// Game implements registry.Game for Bug Tap.
type Game struct {
	mode   Mode
	cfg    config.BugTapConfig
	logger *log.Logger
	hooks  core.Hooks

	runtime    core.RuntimeConfig
	initErr    error
	loop       *engine.Loop
	factory    *engine.Factory
	foods      *FoodManager
	bugs       *BugManager
	cursors    *CursorManager
	difficulty *config.DifficultyManager
	field      core.BoundingBox

	score    int
	kills    int
	elapsed  int
	gameOver bool
	won      bool
}

// New creates a classic-mode game with the default configuration.
func New() *Game {
	return &Game{
		mode:   ModeClassic,
		cfg:    config.DefaultBugTapConfig(),
		logger: log.New(io.Discard),
	}
}

// NewTimed creates a timed-mode game with the default configuration.
func NewTimed() *Game {
	g := New()
	g.mode = ModeTimed
	return g
}

// ID returns the unique identifier for this game mode.
func (g *Game) ID() string {
	if g.mode == ModeTimed {
		return "bugtap_timed"
	}
	return "bugtap"
}

// Title returns the display name for this game mode.
func (g *Game) Title() string {
	if g.mode == ModeTimed {
		return "Bug Tap (Timed)"
	}
	return "Bug Tap"
}

// Mode returns the game mode.
func (g *Game) Mode() Mode { return g.mode }

// LoadConfig loads the YAML config from path (or the usual search path
// when empty) and applies a difficulty preset.
func (g *Game) LoadConfig(path, difficulty string) error {
	cfg, err := config.LoadBugTap(path)
	if err != nil {
		return err
	}
	if preset := config.ParsePreset(difficulty); preset != "" {
		config.ApplyBugTapPreset(&cfg, preset)
	}
	g.cfg = cfg
	return nil
}

// Configure replaces the configuration used by the next Init.
func (g *Game) Configure(cfg config.BugTapConfig) {
	g.cfg = cfg
}

// Config returns the active configuration.
func (g *Game) Config() config.BugTapConfig { return g.cfg }

// SetHooks installs the score, time and game-over sinks.
func (g *Game) SetHooks(h core.Hooks) {
	g.hooks = h
}

// SetLogger sets the logger used by the game and its loop.
func (g *Game) SetLogger(l *log.Logger) {
	if l != nil {
		g.logger = l
	}
}

// Init builds a fresh session for the given screen. It fails with
// ErrInvalidSurface when the playfield is too small and leaves no loop
// running on any error.
func (g *Game) Init(runtime core.RuntimeConfig) error {
	if runtime.TickRate <= 0 {
		runtime.TickRate = 60
	}
	g.runtime = runtime
	g.loop = nil
	g.score, g.kills, g.elapsed = 0, 0, 0
	g.gameOver, g.won = false, false

	if err := g.cfg.Validate(); err != nil {
		return err
	}

	sc := g.cfg.Surface
	w, h := engine.SurfaceSize(runtime.ScreenW, runtime.ScreenH, sc.CellWidth, sc.CellHeight, hudRows)
	if w <= 0 || h <= 0 || w < sc.MinWidth || h < sc.MinHeight {
		return fmt.Errorf("%w: playfield %.0fx%.0f px, need %.0fx%.0f", ErrInvalidSurface, w, h, sc.MinWidth, sc.MinHeight)
	}
	g.field = core.NewBoundingBox(0, 0, w, h)

	resources, err := loadResources(g.cfg)
	if err != nil {
		return err
	}

	loop := engine.NewLoop(runtime.TickRate, engine.WithLogger(g.logger))
	g.factory = engine.NewFactory(loop, resources, core.NewRNG(runtime.Seed))
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.foods = NewFoodManager(g.factory, g.cfg.Food)
	g.bugs = NewBugManager(g.factory, g.cfg, g.foods, g.difficulty, g.field)
	g.bugs.SetProgress(func() (int, int) { return g.score, int(loop.Ticks()) })
	g.cursors = NewCursorManager(g.factory, g.cfg.Effects)

	loop.Bind(g)
	if err := loop.Start(); err != nil {
		return err
	}
	g.loop = loop

	g.logger.Debug("game started", "mode", g.ID(), "field", fmt.Sprintf("%.0fx%.0f", w, h), "seed", runtime.Seed)
	return nil
}

// Setup populates the loop: ground, food, cursor, and the first spawn timer.
func (g *Game) Setup(loop *engine.Loop) error {
	loop.Add(NewBackground(g.cfg.Background))

	fc := g.cfg.Food
	area := core.NewBoundingBox(fc.MarginX, fc.MarginY, g.field.W-2*fc.MarginX, g.field.H-2*fc.MarginY)
	if err := g.foods.Generate(fc.Count, area); err != nil {
		return err
	}

	g.cursors.Cursor()
	g.bugs.Arm()
	return nil
}

// Reset initializes or restarts the game. A screen too small to play on is
// reported by Render; any other Init error is a configuration defect and
// panics.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	err := g.Init(runtime)
	g.initErr = err
	if err != nil && !errors.Is(err, ErrInvalidSurface) {
		panic(err)
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.loop == nil {
		return core.StepResult{State: g.State()}
	}

	// Handle restart
	if in.Has(core.ActionRestart) && g.gameOver {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) && !g.gameOver {
		g.loop.TogglePause()
	}

	for _, ev := range in.Pointer {
		g.handlePointer(ev)
	}

	if g.loop.Tick() && g.loop.State() == engine.StateRunning {
		if secs := int(g.loop.Ticks()) / g.runtime.TickRate; secs != g.elapsed {
			g.elapsed = secs
			g.hooks.ReportTime(secs)
		}
		g.checkGameOver()
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) handlePointer(ev core.PointerEvent) {
	cursor := g.cursors.Cursor()
	switch ev.Kind {
	case core.PointerMove:
		cursor.MoveTo(ev.X, ev.Y)
	case core.PointerDown:
		cursor.MoveTo(ev.X, ev.Y)
		cursor.Press()
		if g.loop.State() == engine.StateRunning {
			g.tap(ev.X, ev.Y)
		}
	case core.PointerUp:
		cursor.MoveTo(ev.X, ev.Y)
		cursor.Release()
	}
}

// tap kills the bugs under (x, y) and awards their points.
func (g *Game) tap(x, y float64) {
	for _, b := range g.bugs.Tap(x, y) {
		g.kills++
		g.score += b.Points()
		bx, by := b.Position()
		g.cursors.SpawnPoints(bx, by, b.Points())
		g.hooks.ReportScore(g.score)
	}
}

// checkGameOver ends the game on its terminal condition.
func (g *Game) checkGameOver() {
	if g.gameOver {
		return
	}
	if g.foods.Remaining() == 0 {
		g.end(false)
		return
	}
	if g.mode == ModeTimed && g.TimeLeft() <= 0 {
		g.end(g.bugs.Alive() == 0)
	}
}

func (g *Game) end(won bool) {
	g.gameOver = true
	g.won = won
	g.loop.Stop()
	g.logger.Info("game over", "mode", g.ID(), "score", g.score, "won", won, "kills", g.kills, "elapsed", g.elapsed)
	g.hooks.ReportGameOver(g.score, won)
}

// TimeLeft returns the whole seconds left on the clock in timed mode.
func (g *Game) TimeLeft() int {
	if g.mode != ModeTimed || g.loop == nil {
		return 0
	}
	total := g.cfg.Timed.DurationSeconds * g.runtime.TickRate
	left := total - int(g.loop.Ticks())
	if left <= 0 {
		return 0
	}
	return (left + g.runtime.TickRate - 1) / g.runtime.TickRate
}

// CellToPixel converts a screen cell to the playfield pixel at its center.
func (g *Game) CellToPixel(cx, cy int) (float64, float64, bool) {
	return engine.CellToPixel(cx, cy, g.cfg.Surface.CellWidth, g.cfg.Surface.CellHeight, hudRows)
}

// Loop exposes the entity loop.
func (g *Game) Loop() *engine.Loop { return g.loop }

// Foods exposes the food manager.
func (g *Game) Foods() *FoodManager { return g.foods }

// Bugs exposes the bug manager.
func (g *Game) Bugs() *BugManager { return g.bugs }

// Field returns the playfield bounds in pixels.
func (g *Game) Field() core.BoundingBox { return g.field }

// Render draws the current game state into the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.loop == nil {
		msg := "Window too small"
		hint := "Enlarge the terminal"
		if g.initErr != nil && !errors.Is(g.initErr, ErrInvalidSurface) {
			msg = "Configuration error"
		} else {
			sc := g.cfg.Surface
			hint = fmt.Sprintf("Need %dx%d", int(sc.MinWidth/sc.CellWidth), int(sc.MinHeight/sc.CellHeight)+hudRows)
		}
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	g.loop.Render(engine.NewScreenSurface(dst, g.cfg.Surface.CellWidth, g.cfg.Surface.CellHeight, hudRows))
	g.renderHUD(dst)
	g.renderOverlay(dst)
}

// renderHUD draws score, food left and the clock on the top row.
func (g *Game) renderHUD(dst *core.Screen) {
	for x := 0; x < dst.Width(); x++ {
		dst.Set(x, 0, ' ')
	}

	dst.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", g.score), core.ColorBrightYellow)
	dst.DrawTextCentered(0, fmt.Sprintf("Food: %d/%d", g.foods.Remaining(), g.cfg.Food.Count))

	var clock string
	if g.mode == ModeTimed {
		clock = fmt.Sprintf("Time left: %d", g.TimeLeft())
	} else {
		clock = fmt.Sprintf("Time: %d", g.elapsed)
	}
	dst.DrawText(dst.Width()-len(clock)-1, 0, clock)
}

// renderOverlay draws pause and game over boxes.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch {
	case g.gameOver && g.won:
		g.drawCenteredBox(dst, "FIELD CLEARED!", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	case g.gameOver:
		g.drawCenteredBox(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	case g.loop.State() == engine.StatePaused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Elapsed:  g.elapsed,
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.loop != nil && g.loop.State() == engine.StatePaused,
	}
}

// Register the game modes with the registry
func init() {
	registry.Register("bugtap", func() registry.Game {
		return New()
	})
	registry.Register("bugtap_timed", func() registry.Game {
		return NewTimed()
	})
}
