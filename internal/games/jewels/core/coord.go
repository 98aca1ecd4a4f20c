package core

import "fmt"

// Coord addresses a grid cell. Col grows to the right, Row grows downward.
type Coord struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// C is a convenience constructor for Coord.
func C(col, row int) Coord {
	return Coord{Col: col, Row: row}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Step returns the neighboring coordinate in direction d.
func (c Coord) Step(d Dir) Coord {
	dc, dr := d.Delta()
	return Coord{Col: c.Col + dc, Row: c.Row + dr}
}

// Adjacent reports whether two coordinates share an edge.
func (c Coord) Adjacent(o Coord) bool {
	dc, dr := c.Col-o.Col, c.Row-o.Row
	return dc*dc+dr*dr == 1
}

// Dir is one of the four neighbor directions.
type Dir int

const (
	DirLeft Dir = iota
	DirRight
	DirUp
	DirDown
)

// Dirs lists directions in scan order.
var Dirs = [...]Dir{DirLeft, DirRight, DirUp, DirDown}

// Delta returns the (col, row) offset for the direction.
func (d Dir) Delta() (int, int) {
	switch d {
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	}
	return 0, 0
}

// Opposite returns the reverse direction.
func (d Dir) Opposite() Dir {
	switch d {
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	case DirUp:
		return DirDown
	default:
		return DirUp
	}
}

func (d Dir) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	}
	return "unknown"
}
