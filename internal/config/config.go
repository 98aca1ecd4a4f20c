// Package config provides YAML-based game configuration loading and
// difficulty management for the jewels game.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-jewels/internal/tween"
)

// JewelsConfig contains all configuration for the jewels game.
type JewelsConfig struct {
	Grid       JewelsGrid       `yaml:"grid"`
	Jewels     JewelsSet        `yaml:"jewels"`
	Bonus      JewelsBonus      `yaml:"bonus"`
	Timing     JewelsTiming     `yaml:"timing"`
	Scoring    JewelsScoring    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// JewelsGrid defines board size and pixel layout.
type JewelsGrid struct {
	Columns    int `yaml:"columns"`
	Rows       int `yaml:"rows"`
	CellWidth  int `yaml:"cell_width"`
	CellHeight int `yaml:"cell_height"`
	OriginX    int `yaml:"origin_x"`
	OriginY    int `yaml:"origin_y"`
}

// JewelsSet defines the jewel palette and combo set growth.
type JewelsSet struct {
	Colors        []string `yaml:"colors"`
	Ranks         []int    `yaml:"ranks"`
	InitialCombos int      `yaml:"initial_combos"`
	MaxCombos     int      `yaml:"max_combos"`
	ColorScheme   int      `yaml:"color_scheme"`
}

// JewelsBonus defines the bonus meter.
type JewelsBonus struct {
	Max           float64 `yaml:"max"`
	StartFraction float64 `yaml:"start_fraction"`
	DrainPerMS    float64 `yaml:"drain_per_ms"`
	DrainStep     float64 `yaml:"drain_step"`
}

// JewelsTiming defines animation speeds and delays.
type JewelsTiming struct {
	FallMSPerPx     float64 `yaml:"fall_ms_per_px"`
	SwapMSPerPx     float64 `yaml:"swap_ms_per_px"`
	ReseatMSPerPx   float64 `yaml:"reseat_ms_per_px"`
	ReseatEasing    string  `yaml:"reseat_easing"`
	SoundStaggerMS  int     `yaml:"sound_stagger_ms"`
	ClickCooldownMS int     `yaml:"click_cooldown_ms"`
	LabelMS         int     `yaml:"label_ms"`
	LabelRise       float64 `yaml:"label_rise"`
	ClearIntervalMS int     `yaml:"clear_interval_ms"`
	IconCycleMS     int     `yaml:"icon_cycle_ms"`
}

// JewelsScoring defines match length and level targets.
type JewelsScoring struct {
	MinMatch     int `yaml:"min_match"`
	TargetBase   int `yaml:"target_base"`
	TargetLevels int `yaml:"target_levels"`
}

// Millis converts a millisecond count from the config into a Duration.
func Millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a game.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "level", or "none"
	MaxAt int    `yaml:"max_at"` // Score/level at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	DrainMultiplier     float64 `yaml:"drain_multiplier"`      // Added to the drain factor at max difficulty
	StartBonusReduction float64 `yaml:"start_bonus_reduction"` // Fraction of the start bonus removed at max difficulty
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Validate rejects configurations no board can be built from. Color names
// are checked by the game when it converts the config.
func (c JewelsConfig) Validate() error {
	g, j, b, t, s := c.Grid, c.Jewels, c.Bonus, c.Timing, c.Scoring
	switch {
	case s.MinMatch < 3:
		return fmt.Errorf("%w: scoring.min_match %d is below 3", ErrInvalidConfig, s.MinMatch)
	case g.Columns < s.MinMatch || g.Rows < s.MinMatch:
		return fmt.Errorf("%w: grid %dx%d is smaller than a match", ErrInvalidConfig, g.Columns, g.Rows)
	case g.CellWidth <= 0 || g.CellHeight <= 0:
		return fmt.Errorf("%w: grid cell %dx%d", ErrInvalidConfig, g.CellWidth, g.CellHeight)
	case len(j.Colors) == 0 || len(j.Ranks) == 0:
		return fmt.Errorf("%w: jewels need at least one color and one rank", ErrInvalidConfig)
	case j.InitialCombos < 1 || j.MaxCombos < j.InitialCombos:
		return fmt.Errorf("%w: combos %d..%d", ErrInvalidConfig, j.InitialCombos, j.MaxCombos)
	case b.Max <= 0:
		return fmt.Errorf("%w: bonus.max %.2f", ErrInvalidConfig, b.Max)
	case b.StartFraction <= 0 || b.StartFraction > 1:
		return fmt.Errorf("%w: bonus.start_fraction %.2f", ErrInvalidConfig, b.StartFraction)
	case b.DrainPerMS < 0 || b.DrainStep < 0:
		return fmt.Errorf("%w: negative bonus drain", ErrInvalidConfig)
	case t.FallMSPerPx < 0 || t.SwapMSPerPx < 0 || t.ReseatMSPerPx < 0:
		return fmt.Errorf("%w: negative animation speed", ErrInvalidConfig)
	case t.SoundStaggerMS < 0 || t.ClickCooldownMS < 0 || t.LabelMS < 0 || t.ClearIntervalMS < 0 || t.IconCycleMS < 0:
		return fmt.Errorf("%w: negative timing", ErrInvalidConfig)
	case s.TargetBase <= 0 || s.TargetLevels < 1:
		return fmt.Errorf("%w: scoring targets", ErrInvalidConfig)
	}
	for _, r := range j.Ranks {
		if r < 1 || r > 5 {
			return fmt.Errorf("%w: rank %d outside 1..5", ErrInvalidConfig, r)
		}
	}
	if t.ReseatEasing != "" {
		if _, ok := tween.Lookup(t.ReseatEasing); !ok {
			return fmt.Errorf("%w: unknown easing %q", ErrInvalidConfig, t.ReseatEasing)
		}
	}
	switch c.Difficulty.Progression.Type {
	case "", "none", "score", "level":
	default:
		return fmt.Errorf("%w: progression type %q", ErrInvalidConfig, c.Difficulty.Progression.Type)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyNormal, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
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

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
