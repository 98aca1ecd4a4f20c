package core

import (
	"math"
	"time"

	platformcore "github.com/vovakirdan/tui-jewels/internal/core"
	"github.com/vovakirdan/tui-jewels/internal/tween"
)

// Piece is a jewel sitting in (or travelling between) cells.
// X and Y are its top-left corner in board pixels; tweens move them.
type Piece struct {
	Token Token
	X, Y  float64
}

// Cell is a fixed grid slot that may hold a piece.
type Cell struct {
	Coord Coord
	Rect  platformcore.Rect
	Piece *Piece

	neighbors [4]*Cell
}

// Neighbor returns the adjacent cell in direction d, or nil at the edge.
func (c *Cell) Neighbor(d Dir) *Cell {
	return c.neighbors[d]
}

// Token returns the token held by the cell, or the zero Token if empty.
func (c *Cell) Token() Token {
	if c.Piece == nil {
		return Token{}
	}
	return c.Piece.Token
}

// Empty reports whether the cell holds no piece.
func (c *Cell) Empty() bool {
	return c.Piece == nil
}

// Seated reports whether the cell's piece rests exactly on the cell.
func (c *Cell) Seated() bool {
	return c.Piece != nil && c.Piece.X == float64(c.Rect.X) && c.Piece.Y == float64(c.Rect.Y)
}

// Geometry describes grid size and pixel layout.
type Geometry struct {
	Cols, Rows       int
	CellW, CellH     int
	OriginX, OriginY int
}

// Grid is a fixed rectangular array of cells with precomputed neighbor
// links and row/column views.
type Grid struct {
	geom     Geometry
	minMatch int
	cells    []*Cell // row-major
	rows     [][]*Cell
	cols     [][]*Cell
}

// NewGrid builds an empty grid.
func NewGrid(geom Geometry) *Grid {
	g := &Grid{
		geom:     geom,
		minMatch: 3,
		cells:    make([]*Cell, geom.Cols*geom.Rows),
		rows:     make([][]*Cell, geom.Rows),
		cols:     make([][]*Cell, geom.Cols),
	}

	for row := 0; row < geom.Rows; row++ {
		g.rows[row] = make([]*Cell, geom.Cols)
		for col := 0; col < geom.Cols; col++ {
			cell := &Cell{
				Coord: C(col, row),
				Rect: platformcore.NewRect(
					geom.OriginX+col*geom.CellW,
					geom.OriginY+row*geom.CellH,
					geom.CellW, geom.CellH,
				),
			}
			g.cells[row*geom.Cols+col] = cell
			g.rows[row][col] = cell
		}
	}
	for col := 0; col < geom.Cols; col++ {
		g.cols[col] = make([]*Cell, geom.Rows)
		for row := 0; row < geom.Rows; row++ {
			g.cols[col][row] = g.rows[row][col]
		}
	}
	for _, cell := range g.cells {
		for _, d := range Dirs {
			cell.neighbors[d] = g.Cell(cell.Coord.Step(d))
		}
	}
	return g
}

// Geometry returns the grid layout.
func (g *Grid) Geometry() Geometry { return g.geom }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.geom.Cols }

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.geom.Rows }

// InBounds reports whether c addresses a cell.
func (g *Grid) InBounds(c Coord) bool {
	return c.Col >= 0 && c.Col < g.geom.Cols && c.Row >= 0 && c.Row < g.geom.Rows
}

// Cell returns the cell at c, or nil when c is out of bounds.
func (g *Grid) Cell(c Coord) *Cell {
	if !g.InBounds(c) {
		return nil
	}
	return g.cells[c.Row*g.geom.Cols+c.Col]
}

// Cells returns all cells in row-major order.
func (g *Grid) Cells() []*Cell { return g.cells }

// Row returns the cells of row i ordered by column.
func (g *Grid) Row(i int) []*Cell { return g.rows[i] }

// Column returns the cells of column i ordered by row.
func (g *Grid) Column(i int) []*Cell { return g.cols[i] }

// Bounds returns the pixel rectangle covered by the grid.
func (g *Grid) Bounds() platformcore.Rect {
	return platformcore.NewRect(g.geom.OriginX, g.geom.OriginY,
		g.geom.Cols*g.geom.CellW, g.geom.Rows*g.geom.CellH)
}

// CellAt returns the cell containing pixel (x, y), or nil.
func (g *Grid) CellAt(x, y int) *Cell {
	b := g.Bounds()
	if !b.Contains(x, y) {
		return nil
	}
	return g.Cell(C((x-b.X)/g.geom.CellW, (y-b.Y)/g.geom.CellH))
}

// Place puts a new piece holding t at rest in cell c.
func (g *Grid) Place(c Coord, t Token) {
	cell := g.Cell(c)
	if cell == nil {
		return
	}
	if t.Empty() {
		cell.Piece = nil
		return
	}
	cell.Piece = &Piece{Token: t, X: float64(cell.Rect.X), Y: float64(cell.Rect.Y)}
}

// FindMatches returns every run of at least the minimum match length
// (three by default), rows first (top to bottom) and then columns (left
// to right).
func (g *Grid) FindMatches() []Match {
	minLength := g.minMatch
	var matches []Match
	tokens := make([]Token, g.geom.Cols)
	for row, cells := range g.rows {
		for i, c := range cells {
			tokens[i] = c.Token()
		}
		for _, run := range FindRepeats(tokens, minLength) {
			m := make(Match, len(run))
			for i, col := range run {
				m[i] = C(col, row)
			}
			matches = append(matches, m)
		}
	}

	tokens = make([]Token, g.geom.Rows)
	for col, cells := range g.cols {
		for i, c := range cells {
			tokens[i] = c.Token()
		}
		for _, run := range FindRepeats(tokens, minLength) {
			m := make(Match, len(run))
			for i, row := range run {
				m[i] = C(col, row)
			}
			matches = append(matches, m)
		}
	}
	return matches
}

// SendPiece moves from's piece into to. Ownership transfers immediately;
// the piece glides from its current position to to's rect over a
// duration proportional to the distance.
func (g *Grid) SendPiece(from, to *Cell, moving *tween.Group, msPerPixel float64) {
	p := from.Piece
	if p == nil {
		return
	}
	to.Piece = p
	from.Piece = nil
	glide(p, to.Rect, moving, msPerPixel, nil)
}

// glide tweens p to rect's top-left. It is a no-op when p is already there.
func glide(p *Piece, rect platformcore.Rect, moving *tween.Group, msPerPixel float64, easing tween.Easing) {
	tx, ty := float64(rect.X), float64(rect.Y)
	dist := math.Hypot(tx-p.X, ty-p.Y)
	if dist == 0 {
		return
	}
	moving.Add(tween.New(
		tween.Options{
			Duration: time.Duration(dist * msPerPixel * float64(time.Millisecond)),
			Easing:   easing,
			Round:    true,
		},
		tween.To(tween.Float(&p.X), tx),
		tween.To(tween.Float(&p.Y), ty),
	))
}
