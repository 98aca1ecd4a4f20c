package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-jewels/internal/tween"
)

// ErrInvalidSettings is wrapped by every Settings.Validate failure.
var ErrInvalidSettings = errors.New("jewels: invalid settings")

// Settings holds every tunable of a board. Distances are board pixels,
// speeds are milliseconds per pixel.
type Settings struct {
	Geometry Geometry
	MinMatch int

	Colors        []Color
	Ranks         []Rank
	InitialCombos int
	MaxCombos     int

	MaxBonus   float64
	StartBonus float64 // fraction of MaxBonus at the start of a game
	BonusDrain float64 // bonus lost per millisecond
	DrainStep  float64 // drain increase per level once combos are capped

	TargetBase   int
	TargetLevels int // levels with a precomputed target

	FallSpeed    float64
	SwapSpeed    float64
	ReseatSpeed  float64
	ReseatEasing tween.Easing

	SoundStagger  time.Duration
	LabelDuration time.Duration
	LabelRise     float64
	ClearInterval time.Duration

	ColorScheme int
}

// DefaultSettings returns the classic 8x8 board.
func DefaultSettings() Settings {
	return Settings{
		Geometry: Geometry{
			Cols: 8, Rows: 8,
			CellW: 64, CellH: 64,
		},
		MinMatch: 3,

		Colors:        []Color{ColorBlue, ColorPink, ColorClear},
		Ranks:         []Rank{1, 4, 5, 3},
		InitialCombos: 6,
		MaxCombos:     13,

		MaxBonus:   1000,
		StartBonus: 0.5,
		BonusDrain: 0.01,
		DrainStep:  0.001,

		TargetBase:   2500,
		TargetLevels: 19,

		FallSpeed:    4,
		SwapSpeed:    3.5,
		ReseatSpeed:  3,
		ReseatEasing: tween.OutBounce,

		SoundStagger:  250 * time.Millisecond,
		LabelDuration: 1750 * time.Millisecond,
		LabelRise:     20,
		ClearInterval: 250 * time.Millisecond,

		ColorScheme: 1,
	}
}

// Validate rejects settings a board cannot be built from.
func (s Settings) Validate() error {
	g := s.Geometry
	switch {
	case s.MinMatch < 3:
		return fmt.Errorf("%w: min match %d is below 3", ErrInvalidSettings, s.MinMatch)
	case g.Cols < s.MinMatch || g.Rows < s.MinMatch:
		return fmt.Errorf("%w: grid %dx%d is smaller than a match", ErrInvalidSettings, g.Cols, g.Rows)
	case g.CellW <= 0 || g.CellH <= 0:
		return fmt.Errorf("%w: cell size %dx%d", ErrInvalidSettings, g.CellW, g.CellH)
	case len(s.Colors) == 0:
		return fmt.Errorf("%w: no colors", ErrInvalidSettings)
	case len(s.Ranks) == 0:
		return fmt.Errorf("%w: no ranks", ErrInvalidSettings)
	case s.InitialCombos < 1:
		return fmt.Errorf("%w: initial combos %d", ErrInvalidSettings, s.InitialCombos)
	case s.MaxCombos < s.InitialCombos:
		return fmt.Errorf("%w: max combos %d below initial %d", ErrInvalidSettings, s.MaxCombos, s.InitialCombos)
	case s.MaxBonus <= 0:
		return fmt.Errorf("%w: max bonus %.2f", ErrInvalidSettings, s.MaxBonus)
	case s.StartBonus <= 0 || s.StartBonus > 1:
		return fmt.Errorf("%w: start bonus fraction %.2f", ErrInvalidSettings, s.StartBonus)
	case s.BonusDrain < 0 || s.DrainStep < 0:
		return fmt.Errorf("%w: negative bonus drain", ErrInvalidSettings)
	case s.TargetBase <= 0 || s.TargetLevels < 1:
		return fmt.Errorf("%w: level targets", ErrInvalidSettings)
	case s.FallSpeed < 0 || s.SwapSpeed < 0 || s.ReseatSpeed < 0:
		return fmt.Errorf("%w: negative animation speed", ErrInvalidSettings)
	}

	seenColor := make(map[Color]bool, len(s.Colors))
	for _, c := range s.Colors {
		if c == ColorNone || int(c) >= len(colorNames) {
			return fmt.Errorf("%w: color %v", ErrInvalidSettings, c)
		}
		if seenColor[c] {
			return fmt.Errorf("%w: duplicate color %v", ErrInvalidSettings, c)
		}
		seenColor[c] = true
	}
	seenRank := make(map[Rank]bool, len(s.Ranks))
	for _, r := range s.Ranks {
		if !r.Valid() {
			return fmt.Errorf("%w: rank %d outside %d..%d", ErrInvalidSettings, r, MinRank, MaxRank)
		}
		if seenRank[r] {
			return fmt.Errorf("%w: duplicate rank %d", ErrInvalidSettings, r)
		}
		seenRank[r] = true
	}

	// A fresh board is filled by re-rolling runs away, which needs at
	// least three identities to terminate.
	if n := DistinctCombos(len(s.Colors), len(s.Ranks), s.InitialCombos); n < 3 {
		return fmt.Errorf("%w: only %d distinct jewels from %d colors x %d ranks",
			ErrInvalidSettings, n, len(s.Colors), len(s.Ranks))
	}
	return nil
}
