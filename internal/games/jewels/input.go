package jewels

import (
	"math"

	"github.com/vovakirdan/tui-jewels/internal/config"
	platformcore "github.com/vovakirdan/tui-jewels/internal/core"
	"github.com/vovakirdan/tui-jewels/internal/games/jewels/core"
)

// Each board cell is drawn as a block of cellChars x cellLines terminal cells.
const (
	cellChars = 4
	cellLines = 2
	hudWidth  = 26
)

// layout places the board on the terminal and converts between terminal
// cells and board pixels.
type layout struct {
	geom     core.Geometry
	screenW  int
	screenH  int
	boardX   int // terminal column of the board's left edge (inside the frame)
	boardY   int // terminal row of the board's top edge
	hudX     int
	tooSmall bool
}

func newLayout(w, h int, geom core.Geometry) layout {
	frameW := geom.Cols*cellChars + 2
	frameH := geom.Rows*cellLines + 2
	totalW := frameW + 2 + hudWidth

	l := layout{geom: geom, screenW: w, screenH: h}
	l.tooSmall = w < totalW || h < frameH+3
	left := max(0, (w-totalW)/2)
	l.boardX = left + 1
	l.boardY = 2
	l.hudX = left + frameW + 2
	return l
}

// Resize records a new terminal size. The board keeps its state.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
}

func (g *Game) lay() layout {
	return newLayout(g.screenW, g.screenH, g.board.Grid().Geometry())
}

// toBoard maps a terminal cell to the board pixel at its center. inside is
// false when the cell is outside the grid; the pixel is still returned so
// drags can follow the pointer past the edge.
func (l layout) toBoard(sx, sy int) (px, py float64, inside bool) {
	col, row := sx-l.boardX, sy-l.boardY
	px = float64(l.geom.OriginX) + (float64(col)+0.5)*float64(l.geom.CellW)/cellChars
	py = float64(l.geom.OriginY) + (float64(row)+0.5)*float64(l.geom.CellH)/cellLines
	inside = col >= 0 && col < l.geom.Cols*cellChars && row >= 0 && row < l.geom.Rows*cellLines
	return px, py, inside
}

// toScreen maps a board pixel to the terminal cell containing it.
func (l layout) toScreen(px, py float64) (sx, sy int) {
	sx = l.boardX + int(math.Round((px-float64(l.geom.OriginX))*cellChars/float64(l.geom.CellW)))
	sy = l.boardY + int(math.Round((py-float64(l.geom.OriginY))*cellLines/float64(l.geom.CellH)))
	return sx, sy
}

// menuTop is the terminal row of the first title menu entry.
func (l layout) menuTop() int {
	return l.boardY + l.geom.Rows*cellLines/2 + 1
}

// menuAt returns the title menu entry on terminal row sy.
func (l layout) menuAt(sy, n int) (int, bool) {
	off := sy - l.menuTop()
	if off < 0 || off%2 != 0 || off/2 >= n {
		return 0, false
	}
	return off / 2, true
}

var keyDirs = [...]struct {
	action platformcore.Action
	dir    core.Dir
}{
	{platformcore.ActionLeft, core.DirLeft},
	{platformcore.ActionRight, core.DirRight},
	{platformcore.ActionUp, core.DirUp},
	{platformcore.ActionDown, core.DirDown},
}

// handleInput applies one frame of pointer and keyboard input to the board.
// Pointer: press grabs, drag slides, release swaps or bounces back.
// Keyboard: arrows move a cursor; select arms it and the next arrow swaps.
func (g *Game) handleInput(in platformcore.InputFrame) {
	l := g.lay()
	cooldown := config.Millis(g.cfg.Timing.ClickCooldownMS)

	for _, ev := range in.Pointer {
		px, py, inside := l.toBoard(ev.X, ev.Y)
		switch ev.Kind {
		case platformcore.PointerDown:
			if !inside || g.sinceClick < cooldown {
				continue
			}
			if g.board.Grab(px, py) {
				g.sinceClick = 0
				g.armed = false
			}
		case platformcore.PointerDrag:
			if g.board.Dragging() {
				g.board.DragTo(px, py)
			}
		case platformcore.PointerUp:
			if g.board.Dragging() && g.board.Release() {
				g.idle = 0
			}
		}
	}

	for _, kd := range keyDirs {
		if !in.Has(kd.action) {
			continue
		}
		if g.armed {
			g.armed = false
			if g.board.Swap(g.cursor, kd.dir) {
				g.idle = 0
			}
			continue
		}
		if next := g.cursor.Step(kd.dir); g.board.Grid().InBounds(next) {
			g.cursor = next
		}
	}

	if in.Has(platformcore.ActionSelect) || in.Has(platformcore.ActionConfirm) {
		cell := g.board.Grid().Cell(g.cursor)
		g.armed = !g.armed && g.board.CanGrab() && cell != nil && !cell.Empty()
	}
	if in.Has(platformcore.ActionBack) {
		g.armed = false
	}
}
