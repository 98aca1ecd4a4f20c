package core

import "math"

// drag tracks a grabbed jewel. off is the grab point relative to the
// piece's top-left corner.
type drag struct {
	cell       *Cell
	dest       *Cell
	offX, offY float64
}

// CanGrab reports whether the player may pick up a jewel.
func (b *Board) CanGrab() bool {
	return b.Stable()
}

// Dragging reports whether a jewel is held.
func (b *Board) Dragging() bool {
	return b.drag.cell != nil
}

// Grabbed returns the held cell, or nil.
func (b *Board) Grabbed() *Cell {
	return b.drag.cell
}

// Grab picks up the jewel under board pixel (px, py). Grabbing starts a new
// move, so the combo multiplier resets.
func (b *Board) Grab(px, py float64) bool {
	if !b.CanGrab() || b.Dragging() {
		return false
	}
	cell := b.grid.CellAt(int(math.Floor(px)), int(math.Floor(py)))
	if cell == nil || cell.Empty() {
		return false
	}
	b.session.ResetMultiplier()
	b.drag = drag{
		cell: cell,
		offX: px - cell.Piece.X,
		offY: py - cell.Piece.Y,
	}
	return true
}

// DragTo moves the held jewel toward board pixel (px, py). Motion is locked
// to the dominant axis and clamped to the neighboring cell; the neighbor's
// jewel slides the opposite way.
func (b *Board) DragTo(px, py float64) {
	g := b.drag.cell
	if g == nil || g.Piece == nil {
		b.drag = drag{}
		return
	}

	ox, oy := float64(g.Rect.X), float64(g.Rect.Y)
	x, y := px-b.drag.offX, py-b.drag.offY

	var dest *Cell
	if math.Abs(x-ox) >= math.Abs(y-oy) {
		y = oy
		x, dest = clampAxis(x, ox, g.Neighbor(DirLeft), g.Neighbor(DirRight), func(c *Cell) float64 { return float64(c.Rect.X) })
	} else {
		x = ox
		y, dest = clampAxis(y, oy, g.Neighbor(DirUp), g.Neighbor(DirDown), func(c *Cell) float64 { return float64(c.Rect.Y) })
	}

	g.Piece.X, g.Piece.Y = x, y

	if prev := b.drag.dest; prev != nil && prev != dest && prev.Piece != nil {
		prev.Piece.X, prev.Piece.Y = float64(prev.Rect.X), float64(prev.Rect.Y)
	}
	if dest != nil && dest.Piece != nil {
		dest.Piece.X = float64(dest.Rect.X) - (x - ox)
		dest.Piece.Y = float64(dest.Rect.Y) - (y - oy)
	}
	b.drag.dest = dest
}

// clampAxis limits v to the span between origin and the neighbor on the
// side v moved toward. It returns that neighbor, or nil at the edge or
// when v is back on origin.
func clampAxis(v, origin float64, lo, hi *Cell, pos func(*Cell) float64) (float64, *Cell) {
	switch {
	case v < origin:
		if lo == nil {
			return origin, nil
		}
		return math.Max(v, pos(lo)), lo
	case v > origin:
		if hi == nil {
			return origin, nil
		}
		return math.Min(v, pos(hi)), hi
	}
	return origin, nil
}

// Release drops the held jewel. A valid swap is committed and animated;
// anything else bounces the jewels back to their cells. It reports whether
// a swap happened.
func (b *Board) Release() bool {
	g, d := b.drag.cell, b.drag.dest
	b.drag = drag{}
	if g == nil {
		return false
	}

	if d != nil && !d.Empty() && b.grid.CheckMove(g, d) {
		b.swap(g, d)
		return true
	}
	b.reseat(g)
	if d != nil {
		b.reseat(d)
	}
	return false
}

// CancelDrag returns a held jewel to its cell without trying a swap.
func (b *Board) CancelDrag() {
	g, d := b.drag.cell, b.drag.dest
	b.drag = drag{}
	if g != nil {
		b.reseat(g)
	}
	if d != nil {
		b.reseat(d)
	}
}

// Swap exchanges the jewel at from with its neighbor in direction d if the
// swap creates a match. It is the keyboard counterpart of a drag.
func (b *Board) Swap(from Coord, d Dir) bool {
	if !b.CanGrab() || b.Dragging() {
		return false
	}
	a := b.grid.Cell(from)
	if a == nil {
		return false
	}
	other := a.Neighbor(d)
	if !b.grid.CheckMove(a, other) {
		return false
	}
	b.session.ResetMultiplier()
	b.swap(a, other)
	return true
}

func (b *Board) swap(a, d *Cell) {
	pa, pd := a.Piece, d.Piece
	a.Piece, d.Piece = pd, pa
	glide(pa, d.Rect, &b.moving, b.settings.SwapSpeed, nil)
	glide(pd, a.Rect, &b.moving, b.settings.SwapSpeed, nil)
	b.hasHint = false
	b.recheck = true
}

func (b *Board) reseat(c *Cell) {
	if c.Piece == nil {
		return
	}
	glide(c.Piece, c.Rect, &b.moving, b.settings.ReseatSpeed, b.settings.ReseatEasing)
}
