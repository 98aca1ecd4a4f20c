package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	platformcore "github.com/vovakirdan/tui-jewels/internal/core"
)

func TestBonusClearRemovesOneJewelPerInterval(t *testing.T) {
	sound := &recordingSound{}
	b := testBoard(t, sound, deadlocked...)
	b.Update(tick)
	require.True(t, b.NoMoves())

	target := letterTokens['a']
	n := 0
	for _, tok := range tokensOf(b.Grid()) {
		if tok == target {
			n++
		}
	}
	require.Positive(t, n)

	b.Session().Bonus = 1000
	b.Session().Level = 2
	b.StartBonusClear(target)
	assert.True(t, b.BonusClearing())
	assert.Equal(t, 500.0, b.Session().Bonus)
	assert.Equal(t, n, b.BonusClearRemaining())

	interval := b.Settings().ClearInterval
	b.Update(interval / 2)
	assert.Equal(t, n, b.BonusClearRemaining())

	for i := 1; i <= n; i++ {
		b.Update(interval)
	}
	assert.False(t, b.BonusClearing())
	assert.Zero(t, b.BonusClearRemaining())
	assert.Equal(t, 20*n, b.Session().Score)
	for _, c := range b.Grid().Cells() {
		if !c.Empty() {
			assert.NotEqual(t, target, c.Token())
		}
	}

	require.Len(t, sound.played, n)
	assert.Equal(t, platformcore.Sound("note1"), sound.played[0])
	assert.Equal(t, platformcore.NoteSound(n), sound.played[n-1])

	settle(t, b)
	assert.False(t, hasEmpty(b.Grid()))
}

func TestBonusClearWithNoTargets(t *testing.T) {
	b := testBoard(t, nil, deadlocked...)
	b.Update(tick)

	b.StartBonusClear(letterTokens['f'])
	b.Update(tick)

	assert.False(t, b.BonusClearing())
	assert.Zero(t, b.Session().Score)
}
