package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	platformcore "github.com/vovakirdan/tui-jewels/internal/core"
)

func TestNewBoardStartsWithoutRuns(t *testing.T) {
	for seed := uint64(1); seed <= 25; seed++ {
		b, err := NewBoard(DefaultSettings(), newTestRand(seed), nil)
		require.NoError(t, err)

		assert.Empty(t, b.Grid().FindMatches(), "seed %d", seed)
		assert.False(t, hasEmpty(b.Grid()))
		assert.Equal(t, PhaseIdle, b.Phase())

		tokens := tokensOf(b.Grid())
		settle(t, b)
		assert.Equal(t, tokens, tokensOf(b.Grid()), "a clean board must not cascade")
		assert.Zero(t, b.Session().Score)
	}
}

func TestNewBoardRejectsInvalidSettings(t *testing.T) {
	s := DefaultSettings()
	s.Colors = []Color{ColorBlue}
	s.Ranks = []Rank{1}

	_, err := NewBoard(s, newTestRand(1), nil)
	assert.ErrorIs(t, err, ErrInvalidSettings)
}

func TestCascadeTerminates(t *testing.T) {
	for seed := uint64(1); seed <= 10; seed++ {
		b, err := NewBoard(DefaultSettings(), newTestRand(seed), nil)
		require.NoError(t, err)

		tok := b.Session().Combos[0]
		for col := 0; col < 4; col++ {
			b.Grid().Place(C(col, 7), tok)
		}
		require.NotEmpty(t, b.Grid().FindMatches())

		settle(t, b)
		assert.Empty(t, b.Grid().FindMatches(), "seed %d", seed)
		assert.False(t, hasEmpty(b.Grid()))
		assert.Positive(t, b.Session().Score)
		for _, c := range b.Grid().Cells() {
			assert.True(t, c.Seated(), "seed %d: %v not seated", seed, c.Coord)
		}
	}
}

func TestClearScoresShortestFirstWithMultiplier(t *testing.T) {
	sound := &recordingSound{}
	b := testBoard(t, sound,
		"aaabbbb",
		"cdefcde",
		"efcdefc",
	)

	b.Update(tick)

	// 3-run: 3*10*1 = 30, then 4-run: 4*20*2 = 160
	s := b.Session()
	assert.Equal(t, 190, s.Score)
	assert.Equal(t, 3, s.Multiplier)
	assert.InDelta(t, 500+30+80, s.Bonus, 1e-9)
	assert.Equal(t, ".......", layout(b.Grid())[0])
	assert.Equal(t, PhaseSettling, b.Phase())
	require.Len(t, b.Labels(), 2)
	assert.Equal(t, "30", b.Labels()[0].Text)
	assert.Equal(t, "160", b.Labels()[1].Text)
	assert.Empty(t, sound.played, "cues wait for the next tick")

	b.Update(time.Millisecond)
	assert.Equal(t, []platformcore.Sound{"match3"}, sound.played)
	assert.True(t, b.Animating(), "top row refills")

	b.Update(250 * time.Millisecond)
	assert.Equal(t, []platformcore.Sound{"match3", "match4"}, sound.played)
}

func TestScoreNeverDecreasesDuringResolution(t *testing.T) {
	b := testBoard(t, nil,
		"aaabbb",
		"cdefcd",
		"efcdef",
	)

	lastScore, lastBonus, lastMult := 0, b.Session().Bonus, 1
	for i := 0; i < 5000 && !(b.Stable() || b.NoMoves()); i++ {
		b.Update(tick)
		s := b.Session()
		assert.GreaterOrEqual(t, s.Score, lastScore)
		assert.GreaterOrEqual(t, s.Bonus, lastBonus)
		assert.GreaterOrEqual(t, s.Multiplier, lastMult)
		lastScore, lastBonus, lastMult = s.Score, s.Bonus, s.Multiplier
	}
	assert.GreaterOrEqual(t, lastMult, 3)
}

func TestResolverWaitsForMotion(t *testing.T) {
	b := testBoard(t, nil,
		"abc",
		"...",
		"cab",
	)

	b.Update(tick)
	assert.Equal(t, PhaseRefilling, b.Phase())
	assert.True(t, b.Animating())
	rows := layout(b.Grid())
	assert.Equal(t, "abc", rows[1], "pieces own their new cell while still falling")
	assert.Equal(t, "cab", rows[2])
	assert.False(t, hasEmpty(b.Grid()))

	phase := b.Phase()
	b.Update(time.Millisecond)
	assert.Equal(t, phase, b.Phase(), "no resolver step while pieces move")
}

func TestDeadlockedBoardReportsNoMoves(t *testing.T) {
	b := testBoard(t, nil, deadlocked...)

	b.Update(tick)
	assert.True(t, b.NoMoves())
	assert.False(t, b.Stable())
	_, ok := b.Hint()
	assert.False(t, ok)
	assert.False(t, b.Grab(32, 32), "no grabbing on a dead board")
}

func TestStableBoardOffersHint(t *testing.T) {
	b := testBoard(t, nil, oneMove...)

	b.Update(tick)
	require.True(t, b.Stable())
	hint, ok := b.Hint()
	require.True(t, ok)
	assert.Equal(t, Move{From: C(0, 2), Dir: DirRight}, hint)
}

func TestRelayoutProducesCleanBoard(t *testing.T) {
	b := testBoard(t, nil, deadlocked...)
	b.Update(tick)
	require.True(t, b.NoMoves())
	b.Session().Multiplier = 4

	b.Relayout()

	assert.Empty(t, b.Grid().FindMatches())
	assert.False(t, hasEmpty(b.Grid()))
	assert.Equal(t, 1, b.Session().Multiplier)
	assert.Equal(t, PhaseIdle, b.Phase())
	for _, tok := range tokensOf(b.Grid()) {
		assert.Contains(t, b.Session().Combos, tok)
	}
}

func TestLabelsFloatAndFade(t *testing.T) {
	b := testBoard(t, nil, deadlocked...)
	b.addLabel(100, 100, "30")
	l := b.Labels()[0]
	assert.Equal(t, 120.0, l.Y)

	b.Update(875 * time.Millisecond)
	assert.Equal(t, 100.0, l.Y)
	assert.InDelta(t, 0.75, l.Alpha, 1e-9)

	b.Update(875 * time.Millisecond)
	assert.Equal(t, 80.0, l.Y)
	assert.Empty(t, b.Labels())
	assert.True(t, b.EffectsDone())
}

func TestSpinPulse(t *testing.T) {
	b := testBoard(t, nil, deadlocked...)
	assert.Equal(t, idleSpinSpeed, b.SpinSpeed())

	b.spinUp(4)
	b.Update(350 * time.Millisecond)
	assert.Equal(t, 5, b.SpinSpeed())

	b.Update(3500 * time.Millisecond)
	assert.Equal(t, idleSpinSpeed, b.SpinSpeed())
	assert.GreaterOrEqual(t, b.SpinIndex(), 0)
	assert.Less(t, b.SpinIndex(), spinFrames)
}

func TestSpinSpeedForLength(t *testing.T) {
	assert.Equal(t, 10, spinSpeedFor(3))
	assert.Equal(t, 5, spinSpeedFor(4))
	assert.Equal(t, 2, spinSpeedFor(5))
	assert.Equal(t, 1, spinSpeedFor(6))
	assert.Equal(t, 1, spinSpeedFor(8))
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "stable", PhaseStable.String())
	assert.Equal(t, "no_moves", PhaseNoMoves.String())
	assert.Equal(t, "phase(42)", Phase(42).String())
}
