package core

// Move is a swap of the cell at From with its neighbor in direction Dir.
type Move struct {
	From Coord
	Dir  Dir
}

// To returns the coordinate of the swap partner.
func (m Move) To() Coord {
	return m.From.Step(m.Dir)
}

// CheckMove reports whether swapping a and b would create at least one
// match that is not already on the board. The board is left untouched.
// Nil, empty and non-adjacent cells never make a valid move.
func (g *Grid) CheckMove(a, b *Cell) bool {
	if a == nil || b == nil || a.Empty() || b.Empty() || !a.Coord.Adjacent(b.Coord) {
		return false
	}

	existing := g.FindMatches()
	a.Piece, b.Piece = b.Piece, a.Piece
	after := g.FindMatches()
	a.Piece, b.Piece = b.Piece, a.Piece

	for _, m := range after {
		if !containsMatch(existing, m) {
			return true
		}
	}
	return false
}

// FindMoves returns the first swap that creates a match, scanning columns
// left to right, each column top to bottom, and directions left, right,
// up, down. ok is false when the board is deadlocked.
func (g *Grid) FindMoves() (move Move, ok bool) {
	for col := 0; col < g.geom.Cols; col++ {
		for row := 0; row < g.geom.Rows; row++ {
			cell := g.Cell(C(col, row))
			for _, d := range Dirs {
				if g.CheckMove(cell, cell.Neighbor(d)) {
					return Move{From: cell.Coord, Dir: d}, true
				}
			}
		}
	}
	return Move{}, false
}
