package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := DefaultBugTapConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("hardcoded defaults invalid: %v", err)
	}

	embedded, err := parseBugTap(GetDefaultYAML("bugtap"))
	if err != nil {
		t.Fatalf("embedded defaults invalid: %v", err)
	}
	if embedded.Food.Count != cfg.Food.Count {
		t.Errorf("embedded food count %d, hardcoded %d", embedded.Food.Count, cfg.Food.Count)
	}
	if len(embedded.Bugs) != len(cfg.Bugs) {
		t.Errorf("embedded bugs %d, hardcoded %d", len(embedded.Bugs), len(cfg.Bugs))
	}
	if len(embedded.Sprites) != len(cfg.Sprites) {
		t.Errorf("embedded sprites %d, hardcoded %d", len(embedded.Sprites), len(cfg.Sprites))
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BugTapConfig)
	}{
		{"unknown food sprite", func(c *BugTapConfig) { c.Food.Sprite = "pizza" }},
		{"unknown bug sprite", func(c *BugTapConfig) { c.Bugs[0].Sprite = "nope" }},
		{"empty catalog", func(c *BugTapConfig) { c.Bugs = nil }},
		{"duplicate bug", func(c *BugTapConfig) { c.Bugs = append(c.Bugs, c.Bugs[0]) }},
		{"zero weights", func(c *BugTapConfig) {
			for i := range c.Bugs {
				c.Bugs[i].Weight = 0
			}
		}},
		{"inverted interval", func(c *BugTapConfig) { c.Spawn.MinIntervalMS, c.Spawn.MaxIntervalMS = 3000, 1000 }},
		{"inverted batch", func(c *BugTapConfig) { c.Spawn.BatchMin, c.Spawn.BatchMax = 4, 2 }},
		{"empty sprite", func(c *BugTapConfig) { c.Sprites["food"] = SpriteConfig{Color: "green"} }},
		{"bad color", func(c *BugTapConfig) { c.Effects.PointColor = "ultraviolet" }},
		{"no food", func(c *BugTapConfig) { c.Food.Count = 0 }},
		{"zero cell", func(c *BugTapConfig) { c.Surface.CellWidth = 0 }},
		{"zero fade", func(c *BugTapConfig) { c.Effects.BugFadeSeconds = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultBugTapConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadBugTapCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bugtap.yaml")
	data := []byte("food:\n  count: 3\ntimed:\n  duration_seconds: 30\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBugTap(path)
	if err != nil {
		t.Fatalf("LoadBugTap: %v", err)
	}
	if cfg.Food.Count != 3 {
		t.Errorf("food count = %d, want 3", cfg.Food.Count)
	}
	if cfg.Timed.DurationSeconds != 30 {
		t.Errorf("duration = %d, want 30", cfg.Timed.DurationSeconds)
	}
	// Untouched keys keep their defaults.
	if cfg.Food.Width != DefaultBugTapConfig().Food.Width {
		t.Errorf("food width = %v, want default", cfg.Food.Width)
	}
}

func TestLoadBugTapCustomPathErrors(t *testing.T) {
	if _, err := LoadBugTap(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("food:\n  sprite: nope\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBugTap(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSpritesReplaceDefaults(t *testing.T) {
	data := []byte(`
food:
  sprite: apple
bugs:
  - id: moth
    sprite: moth
    speed: 2
    points: 2
    weight: 1
    width: 30
    height: 30
    frames_per_second: 6
sprites:
  apple:
    glyphs: "o"
    color: red
  moth:
    glyphs: "mM"
    color: gray
`)
	cfg, err := parseBugTap(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(cfg.Sprites) != 2 {
		t.Errorf("sprites = %d, want 2", len(cfg.Sprites))
	}
	if len(cfg.Bugs) != 1 || cfg.Bugs[0].ID != "moth" {
		t.Errorf("bugs = %+v, want only moth", cfg.Bugs)
	}
}

func TestApplyBugTapPreset(t *testing.T) {
	cfg := DefaultBugTapConfig()
	ApplyBugTapPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	cfg = DefaultBugTapConfig()
	ApplyBugTapPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset: %+v", cfg.Difficulty)
	}
	if cfg.Timed.DurationSeconds != 40 {
		t.Errorf("hard duration = %d, want 40", cfg.Timed.DurationSeconds)
	}

	if ParsePreset("bogus") != "" || ParsePreset("easy") != DifficultyEasy {
		t.Error("ParsePreset mismatch")
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:     ScalingConfig{SpeedMultiplier: 1.0, IntervalReduction: 0.5, BatchBonus: 2},
	}
	d := NewDifficultyManager(cfg)

	tests := []struct {
		score    int
		level    float64
		speed    float64
		interval int
		batch    int
	}{
		{0, 0, 5, 2000, 1},
		{50, 0.5, 7.5, 1500, 2},
		{100, 1, 10, 1000, 3},
		{500, 1, 10, 1000, 3},
	}
	for _, tt := range tests {
		if got := d.Level(tt.score, 0); got != tt.level {
			t.Errorf("Level(%d) = %v, want %v", tt.score, got, tt.level)
		}
		if got := d.Speed(5, tt.score, 0); got != tt.speed {
			t.Errorf("Speed(%d) = %v, want %v", tt.score, got, tt.speed)
		}
		if got := d.Interval(2000, tt.score, 0); got != tt.interval {
			t.Errorf("Interval(%d) = %v, want %v", tt.score, got, tt.interval)
		}
		if got := d.Batch(1, tt.score, 0); got != tt.batch {
			t.Errorf("Batch(%d) = %v, want %v", tt.score, got, tt.batch)
		}
	}

	d.SetEnabled(false)
	if d.Level(100, 0) != 0 {
		t.Error("disabled manager should stay at initial level")
	}
	if got := d.Interval(100, 100, 0); got != 100 {
		t.Errorf("Interval below floor = %d, want base 100", got)
	}
}
