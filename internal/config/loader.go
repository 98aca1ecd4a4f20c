package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadJewels loads the jewels configuration.
// Search order: customPath -> ~/.jewels/configs/jewels.yaml -> ./configs/jewels.yaml -> embedded default
func LoadJewels(customPath string) (JewelsConfig, error) {
	// Fields missing from a file keep their defaults.
	cfg := DefaultJewelsConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("jewels.yaml"); userCfgPath != "" {
		if found, ok := tryLoad(userCfgPath); ok {
			return found, nil
		}
	}

	// Try local configs directory
	if found, ok := tryLoad(filepath.Join("configs", "jewels.yaml")); ok {
		return found, nil
	}

	// Use embedded default YAML
	embedded := DefaultJewelsConfig()
	if err := yaml.Unmarshal(defaultJewelsYAML, &embedded); err != nil {
		return DefaultJewelsConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// tryLoad reads an optional config file. Unreadable, malformed and invalid
// files are skipped.
func tryLoad(path string) (JewelsConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return JewelsConfig{}, false
	}
	cfg := DefaultJewelsConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return JewelsConfig{}, false
	}
	if err := cfg.Validate(); err != nil {
		return JewelsConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to a config file in the user's home directory.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".jewels", "configs", filename)
}

// presetDrainMultiplier is the drain scaling a preset switches on when the
// config leaves it at zero.
const presetDrainMultiplier = 1.0

// ApplyJewelsPreset modifies the config based on a difficulty preset.
func ApplyJewelsPreset(cfg *JewelsConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
		if cfg.Difficulty.Scaling.DrainMultiplier == 0 {
			cfg.Difficulty.Scaling.DrainMultiplier = presetDrainMultiplier
		}
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Jewels.InitialCombos = max(cfg.Jewels.InitialCombos-1, 3)
		cfg.Bonus.StartFraction = 0.6
	case DifficultyHard:
		cfg.Jewels.InitialCombos = min(cfg.Jewels.InitialCombos+1, cfg.Jewels.MaxCombos)
		cfg.Bonus.StartFraction = 0.4
	}
}

// Marshal renders the config as YAML.
func Marshal(cfg JewelsConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}
