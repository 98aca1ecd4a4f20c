package core

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestSession() *Session {
	s := DefaultSettings()
	return newSession(&s, newTestRand(3))
}

func TestSessionStart(t *testing.T) {
	s := newTestSession()

	assert.Equal(t, 1, s.Level)
	assert.Equal(t, 1, s.Multiplier)
	assert.Equal(t, 500.0, s.Bonus)
	assert.Equal(t, 1000.0, s.MaxBonus)
	assert.Len(t, s.Combos, 6)
	assert.Zero(t, s.Score)
}

func TestSessionTargets(t *testing.T) {
	s := newTestSession()

	assert.Equal(t, 2500, s.Target(1))
	assert.Equal(t, 5000, s.Target(2))
	assert.Equal(t, 2500<<18, s.Target(19))
	assert.Equal(t, 2500<<19, s.Target(20))
	assert.Equal(t, 2500, s.Target(0))
	assert.Equal(t, math.MaxInt, s.Target(100))

	s.Score = 2499
	assert.False(t, s.ReachedTarget())
	s.Score = 2500
	assert.True(t, s.ReachedTarget())
}

func TestSessionAward(t *testing.T) {
	s := newTestSession()
	s.Level = 3

	assert.Equal(t, 5*30*1*3, s.Award(5))
	assert.Equal(t, 2, s.Multiplier)
	assert.Equal(t, 500.0+150, s.Bonus)

	assert.Equal(t, 3*10*2*3, s.Award(3))
	assert.Equal(t, 450+180, s.Score)

	s.ResetMultiplier()
	assert.Equal(t, 1, s.Multiplier)
}

func TestSessionDrainClampsAtZero(t *testing.T) {
	s := newTestSession()

	s.Drain(10 * time.Second)
	assert.InDelta(t, 400, s.Bonus, 1e-9)
	assert.False(t, s.BonusEmpty())

	s.Drain(time.Hour)
	assert.Zero(t, s.Bonus)
	assert.True(t, s.BonusEmpty())
	assert.Zero(t, s.BonusFraction())
}

func TestSessionBonusFull(t *testing.T) {
	s := newTestSession()
	s.Bonus = 1200

	assert.True(t, s.BonusFull())
	assert.Equal(t, 1.0, s.BonusFraction())

	s.HalveBonus()
	assert.Equal(t, 500.0, s.Bonus)
}

func TestSessionLevelUpGrowsCombos(t *testing.T) {
	s := newTestSession()
	rng := newTestRand(9)

	s.LevelUp(rng)
	assert.Equal(t, 2, s.Level)
	assert.Equal(t, 6, s.NumCombos)

	s.LevelUp(rng)
	assert.Equal(t, 3, s.Level)
	assert.Equal(t, 7, s.NumCombos)
	assert.Len(t, s.Combos, 7)
	assert.Equal(t, 0.01, s.BonusDrain)

	s.NumCombos = 13
	s.LevelUp(rng)
	assert.Equal(t, 13, s.NumCombos)
	assert.InDelta(t, 0.011, s.BonusDrain, 1e-12)
}

func TestSessionPointsPerMinute(t *testing.T) {
	s := newTestSession()
	assert.Zero(t, s.PointsPerMinute())

	s.Score = 3000
	s.Elapsed = 2 * time.Minute
	assert.Equal(t, 1500.0, s.PointsPerMinute())
}

func TestMakeCombos(t *testing.T) {
	colors := []Color{ColorBlue, ColorPink, ColorClear}
	ranks := []Rank{1, 4, 5, 3}

	combos := MakeCombos(newTestRand(1), colors, ranks, 13)
	assert.Len(t, combos, 13)
	seen := map[Token]bool{}
	for i, c := range combos {
		assert.Equal(t, ranks[i%4], c.Rank)
		assert.Contains(t, colors, c.Color)
		seen[c] = true
	}
	assert.Len(t, seen, 12)
	assert.Equal(t, 12, DistinctCombos(3, 4, 13))
	assert.Equal(t, 6, DistinctCombos(3, 4, 6))
	assert.Equal(t, 2, DistinctCombos(2, 2, 6))
	assert.Nil(t, MakeCombos(newTestRand(1), nil, ranks, 3))
}
