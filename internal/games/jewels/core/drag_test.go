package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cellCenter returns the pixel center of a cell on a default-geometry board.
func cellCenter(col, row int) (float64, float64) {
	return float64(col*64 + 32), float64(row*64 + 32)
}

func TestGrabRequiresStableBoard(t *testing.T) {
	b := testBoard(t, nil, oneMove...)
	x, y := cellCenter(0, 2)

	assert.False(t, b.Grab(x, y), "board has not been checked yet")

	b.Update(tick)
	require.True(t, b.Stable())
	assert.False(t, b.Grab(-5, y), "outside the grid")
	assert.True(t, b.Grab(x, y))
	assert.True(t, b.Dragging())
	assert.Equal(t, C(0, 2), b.Grabbed().Coord)
	assert.False(t, b.Grab(x, y), "already holding a jewel")
}

func TestGrabResetsMultiplier(t *testing.T) {
	b := testBoard(t, nil, oneMove...)
	b.Update(tick)
	b.Session().Multiplier = 7

	x, y := cellCenter(3, 3)
	require.True(t, b.Grab(x, y))
	assert.Equal(t, 1, b.Session().Multiplier)
}

func TestDragLocksToDominantAxis(t *testing.T) {
	b := testBoard(t, nil, oneMove...)
	b.Update(tick)
	x, y := cellCenter(2, 2)
	require.True(t, b.Grab(x, y))

	b.DragTo(x+10, y+30)
	p := b.Grabbed().Piece
	assert.Equal(t, 128.0, p.X)
	assert.Equal(t, 158.0, p.Y)
	below := b.Grid().Cell(C(2, 3)).Piece
	assert.Equal(t, 192.0-30, below.Y, "neighbor slides the other way")

	b.DragTo(x+500, y)
	assert.Equal(t, 192.0, p.X, "clamped to the neighbor")
	assert.Equal(t, 128.0, p.Y)
	assert.True(t, b.Grid().Cell(C(2, 3)).Seated(), "previous neighbor snaps back")
	assert.Equal(t, 128.0, b.Grid().Cell(C(3, 2)).Piece.X)
}

func TestDragStopsAtEdge(t *testing.T) {
	b := testBoard(t, nil, oneMove...)
	b.Update(tick)
	x, y := cellCenter(0, 0)
	require.True(t, b.Grab(x, y))

	b.DragTo(x-40, y)
	assert.True(t, b.Grabbed().Seated())
	assert.False(t, b.Release())
}

func TestDragReleaseSwaps(t *testing.T) {
	b := testBoard(t, nil, oneMove...)
	b.Update(tick)
	x, y := cellCenter(0, 2)
	require.True(t, b.Grab(x, y))

	b.DragTo(x+64, y)
	assert.True(t, b.Release())
	assert.False(t, b.Dragging())

	g := b.Grid()
	assert.Equal(t, letterTokens['a'], g.Cell(C(0, 2)).Token())
	assert.Equal(t, letterTokens['c'], g.Cell(C(1, 2)).Token())

	settle(t, b)
	assert.Positive(t, b.Session().Score)
	assert.Empty(t, g.FindMatches())
}

func TestDragReleaseRejectedBouncesBack(t *testing.T) {
	b := testBoard(t, nil, oneMove...)
	b.Update(tick)
	before := tokensOf(b.Grid())
	x, y := cellCenter(0, 0)
	require.True(t, b.Grab(x, y))

	b.DragTo(x, y+100)
	assert.False(t, b.Release())
	assert.Equal(t, before, tokensOf(b.Grid()))
	assert.False(t, b.Grid().Cell(C(0, 0)).Seated())
	assert.True(t, b.Animating())

	b.Update(time.Second)
	assert.True(t, b.Grid().Cell(C(0, 0)).Seated())
	assert.True(t, b.Grid().Cell(C(0, 1)).Seated())
	assert.Zero(t, b.Session().Score)
}

func TestCancelDrag(t *testing.T) {
	b := testBoard(t, nil, oneMove...)
	b.Update(tick)
	x, y := cellCenter(0, 2)
	require.True(t, b.Grab(x, y))
	b.DragTo(x+64, y)

	b.CancelDrag()
	b.Update(time.Second)

	assert.Equal(t, letterTokens['c'], b.Grid().Cell(C(0, 2)).Token())
	assert.True(t, b.Grid().Cell(C(0, 2)).Seated())
	assert.True(t, b.Grid().Cell(C(1, 2)).Seated())
}

func TestKeyboardSwap(t *testing.T) {
	b := testBoard(t, nil, oneMove...)
	b.Update(tick)
	b.Session().Multiplier = 3

	assert.False(t, b.Swap(C(0, 0), DirDown), "no match")
	assert.False(t, b.Swap(C(0, 0), DirLeft), "off the edge")
	assert.True(t, b.Swap(C(0, 2), DirRight))
	assert.Equal(t, 1, b.Session().Multiplier)
	assert.False(t, b.Swap(C(0, 2), DirRight), "board is moving")
}
