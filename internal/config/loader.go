package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBugTap loads Bug Tap configuration.
// Search order: customPath -> ~/.bugtap/configs/bugtap.yaml -> ./configs/bugtap.yaml -> embedded default
//
// Files are decoded over DefaultBugTapConfig, so a partial YAML only
// overrides the keys it names. The result is validated.
func LoadBugTap(customPath string) (BugTapConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BugTapConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseBugTap(data)
		if err != nil {
			return BugTapConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("bugtap.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseBugTap(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "bugtap.yaml")); err == nil {
		if cfg, err := parseBugTap(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseBugTap(defaultBugTapYAML)
	if err != nil {
		return DefaultBugTapConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseBugTap decodes data over the hardcoded defaults and validates it.
func parseBugTap(data []byte) (BugTapConfig, error) {
	cfg := DefaultBugTapConfig()
	// yaml.v3 merges into existing maps; a sprites table in the file
	// replaces the default one instead.
	var probe struct {
		Sprites map[string]SpriteConfig `yaml:"sprites"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return cfg, err
	}
	if probe.Sprites != nil {
		cfg.Sprites = nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bugtap", "configs", filename)
}

// ApplyBugTapPreset modifies the config based on a difficulty preset.
func ApplyBugTapPreset(cfg *BugTapConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust the countdown based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Timed.DurationSeconds = cfg.Timed.DurationSeconds * 3 / 2
	case DifficultyHard:
		cfg.Timed.DurationSeconds = cfg.Timed.DurationSeconds * 2 / 3
	}
	if cfg.Timed.DurationSeconds < 1 {
		cfg.Timed.DurationSeconds = 1
	}
}
