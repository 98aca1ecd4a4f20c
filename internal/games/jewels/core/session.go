package core

import (
	"math"
	"time"
)

// Session is the scoring and progression state of one game.
type Session struct {
	Score      int
	Elapsed    time.Duration
	Bonus      float64
	MaxBonus   float64
	BonusDrain float64 // per millisecond
	Level      int
	NumCombos  int
	Combos     []Token
	Multiplier int

	settings *Settings
	targets  []int
}

func newSession(s *Settings, rng IntNSource) *Session {
	sess := &Session{
		MaxBonus:   s.MaxBonus,
		Bonus:      math.Floor(s.MaxBonus * s.StartBonus),
		BonusDrain: s.BonusDrain,
		Level:      1,
		NumCombos:  s.InitialCombos,
		Multiplier: 1,
		settings:   s,
	}
	sess.buildTargets()
	sess.Combos = MakeCombos(rng, s.Colors, s.Ranks, sess.NumCombos)
	return sess
}

func (s *Session) buildTargets() {
	s.targets = make([]int, s.settings.TargetLevels)
	for i := range s.targets {
		s.targets[i] = s.settings.TargetBase << i
	}
}

// Target returns the score needed to leave the given level:
// base * 2^(level-1).
func (s *Session) Target(level int) int {
	if level < 1 {
		level = 1
	}
	if level <= len(s.targets) {
		return s.targets[level-1]
	}
	shift := level - 1
	if shift > 40 {
		return math.MaxInt
	}
	return s.settings.TargetBase << shift
}

// NextTarget returns the target for the current level.
func (s *Session) NextTarget() int {
	return s.Target(s.Level)
}

// ReachedTarget reports whether the score has reached the current target.
func (s *Session) ReachedTarget() bool {
	return s.Score >= s.NextTarget()
}

// Award scores one cleared run of the given length and returns the points.
// The multiplier grows by one for every run scored.
func (s *Session) Award(length int) int {
	pointsPer := 10 * (length - 2)
	points := length * pointsPer * s.Multiplier * s.Level
	s.Score += points
	s.Bonus += float64(length * pointsPer)
	s.Multiplier++
	return points
}

// AddPoints adds flat points without touching bonus or multiplier.
func (s *Session) AddPoints(points int) {
	if points > 0 {
		s.Score += points
	}
}

// ResetMultiplier starts a new player move.
func (s *Session) ResetMultiplier() {
	s.Multiplier = 1
}

// Drain lowers the bonus meter for dt of play. The meter stops at zero.
func (s *Session) Drain(dt time.Duration) {
	ms := float64(dt) / float64(time.Millisecond)
	s.Bonus -= s.BonusDrain * ms
	if s.Bonus < 0 {
		s.Bonus = 0
	}
}

// BonusFull reports whether the meter reached its maximum.
func (s *Session) BonusFull() bool {
	return s.Bonus >= s.MaxBonus
}

// BonusEmpty reports whether the meter ran out.
func (s *Session) BonusEmpty() bool {
	return s.Bonus <= 0
}

// BonusFraction returns Bonus/MaxBonus clamped to [0, 1].
func (s *Session) BonusFraction() float64 {
	if s.MaxBonus <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, s.Bonus/s.MaxBonus))
}

// HalveBonus resets the meter to half of its maximum.
func (s *Session) HalveBonus() {
	s.Bonus = math.Floor(s.MaxBonus / 2)
}

// LevelUp advances the level. Until the combo cap is hit, odd levels add a
// jewel identity; past the cap the bonus drains faster instead. The combo
// set is regenerated either way.
func (s *Session) LevelUp(rng IntNSource) {
	s.Level++
	if s.NumCombos < s.settings.MaxCombos {
		if s.Level%2 == 1 {
			s.NumCombos++
		}
	} else {
		s.BonusDrain += s.settings.DrainStep
	}
	s.Combos = MakeCombos(rng, s.settings.Colors, s.settings.Ranks, s.NumCombos)
}

// PointsPerMinute returns the scoring rate over the elapsed play time.
func (s *Session) PointsPerMinute() float64 {
	minutes := s.Elapsed.Minutes()
	if minutes <= 0 {
		return 0
	}
	return float64(s.Score) / minutes
}
