package config

import (
	_ "embed"
)

//go:embed defaults/jewels.yaml
var defaultJewelsYAML []byte

// DefaultJewelsConfig returns the default jewels configuration.
func DefaultJewelsConfig() JewelsConfig {
	return JewelsConfig{
		Grid: JewelsGrid{
			Columns:    8,
			Rows:       8,
			CellWidth:  64,
			CellHeight: 64,
		},
		Jewels: JewelsSet{
			Colors:        []string{"blue", "pink", "clear"},
			Ranks:         []int{1, 4, 5, 3},
			InitialCombos: 6,
			MaxCombos:     13,
			ColorScheme:   1,
		},
		Bonus: JewelsBonus{
			Max:           1000,
			StartFraction: 0.5,
			DrainPerMS:    0.01,
			DrainStep:     0.001,
		},
		Timing: JewelsTiming{
			FallMSPerPx:     4,
			SwapMSPerPx:     3.5,
			ReseatMSPerPx:   3,
			ReseatEasing:    "out_bounce",
			SoundStaggerMS:  250,
			ClickCooldownMS: 250,
			LabelMS:         1750,
			LabelRise:       20,
			ClearIntervalMS: 250,
			IconCycleMS:     200,
		},
		Scoring: JewelsScoring{
			MinMatch:     3,
			TargetBase:   2500,
			TargetLevels: 19,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 20,
			},
			Scaling: ScalingConfig{
				DrainMultiplier:     0,
				StartBonusReduction: 0.4,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "jewels":
		return defaultJewelsYAML
	default:
		return nil
	}
}
