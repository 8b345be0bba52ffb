// Package config provides YAML-based game configuration loading and
// difficulty management for bug tap.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/bugtap/internal/core"
)

// BugTapConfig contains all configuration for the Bug Tap game.
// Distances are canvas pixels, intervals milliseconds, durations seconds.
type BugTapConfig struct {
	Surface    SurfaceConfig           `yaml:"surface"`
	Background BackgroundConfig        `yaml:"background"`
	Food       FoodConfig              `yaml:"food"`
	Bugs       []BugArchetype          `yaml:"bugs"`
	Spawn      SpawnConfig             `yaml:"spawn"`
	Effects    EffectsConfig           `yaml:"effects"`
	Timed      TimedConfig             `yaml:"timed"`
	Sprites    map[string]SpriteConfig `yaml:"sprites"`
	Difficulty DifficultyConfig        `yaml:"difficulty"`
}

// SurfaceConfig maps canvas pixels to terminal cells.
type SurfaceConfig struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
	MinWidth   float64 `yaml:"min_width"`  // smallest playable canvas width
	MinHeight  float64 `yaml:"min_height"` // smallest playable canvas height
}

// BackgroundConfig defines the ground pattern under everything else.
type BackgroundConfig struct {
	Pattern string `yaml:"pattern"`
	Color   string `yaml:"color"`
}

// FoodConfig defines food generation.
type FoodConfig struct {
	Count       int     `yaml:"count"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Spread      float64 `yaml:"spread"`   // minimum gap kept between placed items
	MarginX     float64 `yaml:"margin_x"` // keep-out band along the left/right canvas edges
	MarginY     float64 `yaml:"margin_y"` // keep-out band along the top/bottom canvas edges
	FadeSeconds float64 `yaml:"fade_seconds"`
	Sprite      string  `yaml:"sprite"`
}

// BugArchetype is one entry of the bug catalog.
type BugArchetype struct {
	ID              string  `yaml:"id"`
	Sprite          string  `yaml:"sprite"`
	Speed           float64 `yaml:"speed"`
	Points          int     `yaml:"points"`
	Weight          int     `yaml:"weight"`
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	FramesPerSecond int     `yaml:"frames_per_second"`
}

// SpawnConfig defines bug spawn cadence.
type SpawnConfig struct {
	FirstDelayMS  int `yaml:"first_delay_ms"`
	MinIntervalMS int `yaml:"min_interval_ms"`
	MaxIntervalMS int `yaml:"max_interval_ms"`
	BatchMin      int `yaml:"batch_min"`
	BatchMax      int `yaml:"batch_max"`
}

// EffectsConfig defines fades and floating text.
type EffectsConfig struct {
	BugFadeSeconds   float64 `yaml:"bug_fade_seconds"`
	PointFadeSeconds float64 `yaml:"point_fade_seconds"`
	PointDrift       float64 `yaml:"point_drift"` // pixels per tick upward
	PointColor       string  `yaml:"point_color"`
	PointOutline     string  `yaml:"point_outline"` // bracket color, "default" for none
	CursorGlyph      string  `yaml:"cursor_glyph"`
	CursorColor      string  `yaml:"cursor_color"`
}

// TimedConfig defines the countdown mode.
type TimedConfig struct {
	DurationSeconds int `yaml:"duration_seconds"`
}

// SpriteConfig defines a glyph strip.
type SpriteConfig struct {
	Glyphs     string  `yaml:"glyphs"`
	Color      string  `yaml:"color"`
	FrameWidth float64 `yaml:"frame_width"`
	Height     float64 `yaml:"height"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // Added to bug speed multiplier at max difficulty
	IntervalReduction float64 `yaml:"interval_reduction"` // Fraction of spawn interval removed at max difficulty
	BatchBonus        int     `yaml:"batch_bonus"`        // Extra bugs per batch at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset; unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Validate checks cross references and ranges. All problems are reported
// together.
func (c *BugTapConfig) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.Surface.CellWidth <= 0 || c.Surface.CellHeight <= 0 {
		fail("surface cell size must be positive")
	}
	if c.Food.Count < 1 {
		fail("food.count must be at least 1")
	}
	if c.Food.Width <= 0 || c.Food.Height <= 0 {
		fail("food size must be positive")
	}
	if _, ok := c.Sprites[c.Food.Sprite]; !ok {
		fail("food.sprite %q is not defined", c.Food.Sprite)
	}
	if len(c.Bugs) == 0 {
		fail("bugs catalog is empty")
	}
	seen := make(map[string]bool)
	totalWeight := 0
	for _, b := range c.Bugs {
		totalWeight += b.Weight
		if seen[b.ID] {
			fail("bug %q defined twice", b.ID)
		}
		seen[b.ID] = true
		if _, ok := c.Sprites[b.Sprite]; !ok {
			fail("bug %q uses undefined sprite %q", b.ID, b.Sprite)
		}
		if b.Speed <= 0 || b.Width <= 0 || b.Height <= 0 {
			fail("bug %q needs positive speed and size", b.ID)
		}
		if b.Weight < 0 {
			fail("bug %q has negative weight", b.ID)
		}
	}
	if len(c.Bugs) > 0 && totalWeight == 0 {
		fail("bug weights sum to zero")
	}
	if c.Spawn.MinIntervalMS <= 0 || c.Spawn.MaxIntervalMS < c.Spawn.MinIntervalMS {
		fail("spawn interval range [%d, %d] is invalid", c.Spawn.MinIntervalMS, c.Spawn.MaxIntervalMS)
	}
	if c.Spawn.BatchMin < 1 || c.Spawn.BatchMax < c.Spawn.BatchMin {
		fail("spawn batch range [%d, %d] is invalid", c.Spawn.BatchMin, c.Spawn.BatchMax)
	}
	for id, s := range c.Sprites {
		if len([]rune(s.Glyphs)) == 0 {
			fail("sprite %q has no glyphs", id)
		}
		if _, ok := core.ParseColor(s.Color); !ok {
			fail("sprite %q has unknown color %q", id, s.Color)
		}
	}
	for key, name := range map[string]string{
		"background.color":      c.Background.Color,
		"effects.point_color":   c.Effects.PointColor,
		"effects.point_outline": c.Effects.PointOutline,
		"effects.cursor_color":  c.Effects.CursorColor,
	} {
		if _, ok := core.ParseColor(name); !ok {
			fail("%s: unknown color %q", key, name)
		}
	}
	if len([]rune(c.Background.Pattern)) == 0 {
		fail("background.pattern is empty")
	}
	if len([]rune(c.Effects.CursorGlyph)) != 1 {
		fail("effects.cursor_glyph must be a single glyph")
	}
	if c.Food.FadeSeconds <= 0 || c.Effects.BugFadeSeconds <= 0 || c.Effects.PointFadeSeconds <= 0 {
		fail("fade durations must be positive")
	}
	if c.Timed.DurationSeconds <= 0 {
		fail("timed.duration_seconds must be positive")
	}

	return errors.Join(errs...)
}
