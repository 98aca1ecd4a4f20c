package config

import "math"

// DifficultyManager calculates dynamic game parameters based on score/level.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) for a score and
// game level.
func (d *DifficultyManager) Level(score int, gameLevel int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "level":
		progress = float64(gameLevel-1) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Drain returns the bonus drain rate for the current difficulty. It grows
// from base to base * (1 + drainMultiplier); a zero multiplier keeps base.
func (d *DifficultyManager) Drain(base float64, score int, gameLevel int) float64 {
	level := d.Level(score, gameLevel)
	return base * (1.0 + level*d.cfg.Scaling.DrainMultiplier)
}

// StartBonus returns the starting bonus fraction for the initial difficulty.
func (d *DifficultyManager) StartBonus(base float64) float64 {
	result := base * (1.0 - d.initialLevel*d.cfg.Scaling.StartBonusReduction)
	if result < 0.1 { // Leave time to make a first move
		result = 0.1
	}
	return result
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
