// Package registry provides a registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bugtap/internal/core"
)

// Game is the core interface that all arcade games must implement.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier for this game mode (e.g., "bugtap").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the game state.
	// Called once at start and again when restarting after game over.
	// The RuntimeConfig provides screen dimensions and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	// Returns the result of this tick including current game state.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, paused).
	State() core.GameState
}

// Hooked is implemented by games that report score, time and game over.
type Hooked interface {
	SetHooks(h core.Hooks)
}

// Logged is implemented by games that accept a logger.
type Logged interface {
	SetLogger(l *log.Logger)
}

// Configurable is implemented by games that load a YAML config and accept
// a difficulty preset ("" keeps the config's own settings).
type Configurable interface {
	LoadConfig(path, difficulty string) error
}

// Pointed is implemented by games that take pointer input. CellToPixel maps
// a screen cell to the game's pointer coordinates; ok is false for cells
// outside the playfield.
type Pointed interface {
	CellToPixel(cx, cy int) (x, y float64, ok bool)
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

// Registry maps game ids to factories. The zero value is not usable; use New.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	titles    map[string]string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		titles:    make(map[string]string),
	}
}

// Register adds a game factory.
// Panics if a game with the same ID is already registered.
func (r *Registry) Register(id string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	r.factories[id] = f

	// Get title by creating a temporary instance
	r.titles[id] = f().Title()
}

// List returns information about all registered games, sorted by ID.
func (r *Registry) List() []GameInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]GameInfo, 0, len(r.factories))
	for id := range r.factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: r.titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func (r *Registry) Create(id string) (Game, error) {
	r.mu.RLock()
	f, ok := r.factories[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[id]
	return ok
}

var defaultRegistry = New()

// Default returns the process registry games add themselves to in init().
func Default() *Registry {
	return defaultRegistry
}

// Register adds a game factory to the default registry.
func Register(id string, f Factory) {
	defaultRegistry.Register(id, f)
}

// List returns the games of the default registry, sorted by ID.
func List() []GameInfo {
	return defaultRegistry.List()
}

// Create instantiates a game from the default registry.
func Create(id string) (Game, error) {
	return defaultRegistry.Create(id)
}

// Exists checks the default registry for id.
func Exists(id string) bool {
	return defaultRegistry.Exists(id)
}
