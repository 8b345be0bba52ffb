package config

import (
	_ "embed"
)

//go:embed defaults/bugtap.yaml
var defaultBugTapYAML []byte

// DefaultBugTapConfig returns the default Bug Tap configuration.
func DefaultBugTapConfig() BugTapConfig {
	return BugTapConfig{
		Surface: SurfaceConfig{
			CellWidth:  8,
			CellHeight: 16,
			MinWidth:   320,
			MinHeight:  192,
		},
		Background: BackgroundConfig{
			Pattern: " .   '  ",
			Color:   "dark_gray",
		},
		Food: FoodConfig{
			Count:       5,
			Width:       56,
			Height:      56,
			Spread:      16,
			MarginX:     96,
			MarginY:     48,
			FadeSeconds: 1.0,
			Sprite:      "food",
		},
		Bugs: []BugArchetype{
			{ID: "beetle", Sprite: "beetle", Speed: 3, Points: 1, Weight: 6, Width: 45, Height: 50, FramesPerSecond: 4},
			{ID: "ant", Sprite: "ant", Speed: 5, Points: 3, Weight: 3, Width: 40, Height: 32, FramesPerSecond: 8},
			{ID: "wasp", Sprite: "wasp", Speed: 8, Points: 5, Weight: 1, Width: 40, Height: 32, FramesPerSecond: 12},
		},
		Spawn: SpawnConfig{
			FirstDelayMS:  1000,
			MinIntervalMS: 1500,
			MaxIntervalMS: 3000,
			BatchMin:      1,
			BatchMax:      3,
		},
		Effects: EffectsConfig{
			BugFadeSeconds:   1.0,
			PointFadeSeconds: 0.8,
			PointDrift:       0.5,
			PointColor:       "yellow",
			PointOutline:     "orange",
			CursorGlyph:      "+",
			CursorColor:      "bright_white",
		},
		Timed: TimedConfig{
			DurationSeconds: 60,
		},
		Sprites: map[string]SpriteConfig{
			"food":   {Glyphs: "@%&$", Color: "green", FrameWidth: 56, Height: 56},
			"beetle": {Glyphs: "Жж", Color: "brown", FrameWidth: 45, Height: 50},
			"ant":    {Glyphs: "ѫѪ", Color: "red", FrameWidth: 40, Height: 32},
			"wasp":   {Glyphs: "ѬѭѬ", Color: "yellow", FrameWidth: 40, Height: 32},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 100,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   1.0,
				IntervalReduction: 0.5,
				BatchBonus:        2,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "bugtap", "bugtap_timed":
		return defaultBugTapYAML
	default:
		return nil
	}
}
