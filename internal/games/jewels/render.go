package jewels

import (
	"fmt"
	"strings"
	"time"

	platformcore "github.com/vovakirdan/tui-jewels/internal/core"
	"github.com/vovakirdan/tui-jewels/internal/games/jewels/core"
)

// rankGlyphs are the two text rows of each gem cut, cellChars wide.
var rankGlyphs = map[core.Rank][cellLines]string{
	1: {" /\\ ", " \\/ "},
	2: {" ▄▄ ", " ▀▀ "},
	3: {"▗██▖", "▝██▘"},
	4: {" ◢◣ ", " ◥◤ "},
	5: {"◢██◣", "◥██◤"},
}

// colorSchemes map jewel colors to terminal colors. Scheme 1 is the
// default; unknown schemes fall back to it.
var colorSchemes = map[int]map[core.Color]platformcore.Color{
	1: {
		core.ColorBlue:   platformcore.ColorSapphire,
		core.ColorPink:   platformcore.ColorRose,
		core.ColorClear:  platformcore.ColorPearl,
		core.ColorGreen:  platformcore.ColorEmerald,
		core.ColorAmber:  platformcore.ColorTopaz,
		core.ColorViolet: platformcore.ColorAmethyst,
	},
	2: {
		core.ColorBlue:   platformcore.ColorAzure,
		core.ColorPink:   platformcore.ColorRuby,
		core.ColorClear:  platformcore.ColorIce,
		core.ColorGreen:  platformcore.ColorPeridot,
		core.ColorAmber:  platformcore.ColorAmber,
		core.ColorViolet: platformcore.ColorRose,
	},
}

var warningColors = [...]platformcore.Color{
	platformcore.ColorEmerald,
	platformcore.ColorTopaz,
	platformcore.ColorAmber,
	platformcore.ColorGarnet,
	platformcore.ColorAlert,
}

const (
	bonusBarWidth = hudWidth - 4
	highScoreRows = 5
	blinkPeriod   = 300 * time.Millisecond
)

func (g *Game) tokenColor(t core.Token) platformcore.Color {
	scheme, ok := colorSchemes[g.board.Settings().ColorScheme]
	if !ok {
		scheme = colorSchemes[1]
	}
	if c, ok := scheme[t.Color]; ok {
		return c
	}
	return platformcore.ColorDefault
}

func glyph(r core.Rank) [cellLines]string {
	if gl, ok := rankGlyphs[r]; ok {
		return gl
	}
	return rankGlyphs[1]
}

// Render draws the current screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	l := g.lay()
	if l.tooSmall {
		g.renderTooSmall(dst, l)
		return
	}

	g.renderFrame(dst, l)
	if g.flow.Is(stateTitle) {
		g.renderTitle(dst, l)
		g.renderHUD(dst, l)
		g.renderControls(dst)
		return
	}

	g.renderBoard(dst, l)
	g.renderLabels(dst, l)
	g.renderBanners(dst, l)
	g.renderBonusIcon(dst, l)
	if g.flow.Is(stateGameOver) {
		g.renderGameOver(dst, l)
	}
	g.renderHUD(dst, l)
	g.renderControls(dst)
}

func (g *Game) renderTooSmall(dst *platformcore.Screen, l layout) {
	y := l.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	need := fmt.Sprintf("need %dx%d", l.geom.Cols*cellChars+4+hudWidth, l.geom.Rows*cellLines+5)
	dst.DrawTextCenteredColor(y+1, need, platformcore.ColorMuted)
}

func (g *Game) renderFrame(dst *platformcore.Screen, l layout) {
	frame := platformcore.NewRect(l.boardX-1, l.boardY-1, l.geom.Cols*cellChars+2, l.geom.Rows*cellLines+2)
	c := platformcore.ColorMuted
	if g.warning > 0 && g.blink() {
		c = warningColors[g.warning]
	}
	dst.DrawBoxColor(frame, c)
}

// boardRow reports whether terminal row sy lies inside the board.
func (l layout) boardRow(sy int) bool {
	return sy >= l.boardY && sy < l.boardY+l.geom.Rows*cellLines
}

func (l layout) boardCol(sx int) bool {
	return sx >= l.boardX && sx < l.boardX+l.geom.Cols*cellChars
}

// drawClipped writes text, dropping runes outside the board.
func drawClipped(dst *platformcore.Screen, l layout, x, y int, text string, c platformcore.Color) {
	if !l.boardRow(y) {
		return
	}
	i := 0
	for _, r := range text {
		if l.boardCol(x + i) {
			dst.SetColor(x+i, y, r, c)
		}
		i++
	}
}

func (g *Game) renderBoard(dst *platformcore.Screen, l layout) {
	if g.cover >= 0.66 {
		return
	}
	dim := g.cover >= 0.33
	grid := g.board.Grid()
	grabbed := g.board.Grabbed()

	for _, cell := range grid.Cells() {
		if cell == grabbed {
			continue
		}
		g.drawPiece(dst, l, cell, dim)
	}

	if !dim {
		g.renderSparkle(dst, l)
		if mv, ok := g.hint(); ok {
			g.drawMarker(dst, l, mv.From, platformcore.ColorText)
			g.drawMarker(dst, l, mv.To(), platformcore.ColorText)
		}
		if g.flow.Is(statePlaying) && g.board.CanGrab() {
			c := platformcore.ColorMuted
			if g.armed {
				c = platformcore.ColorHighlight
			}
			g.drawMarker(dst, l, g.cursor, c)
		}
	}

	if grabbed != nil {
		g.drawPiece(dst, l, grabbed, dim)
	}
}

func (g *Game) drawPiece(dst *platformcore.Screen, l layout, cell *core.Cell, dim bool) {
	p := cell.Piece
	if p == nil || p.Token.Empty() {
		return
	}
	c := g.tokenColor(p.Token)
	if dim {
		c = platformcore.ColorMuted
	}
	sx, sy := l.toScreen(p.X, p.Y)
	for i, row := range glyph(p.Token.Rank) {
		drawClipped(dst, l, sx, sy+i, row, c)
	}
}

// drawMarker brackets a cell.
func (g *Game) drawMarker(dst *platformcore.Screen, l layout, at core.Coord, c platformcore.Color) {
	cell := g.board.Grid().Cell(at)
	if cell == nil {
		return
	}
	sx, sy := l.toScreen(float64(cell.Rect.X), float64(cell.Rect.Y))
	drawClipped(dst, l, sx, sy, "┌", c)
	drawClipped(dst, l, sx+cellChars-1, sy, "┐", c)
	drawClipped(dst, l, sx, sy+cellLines-1, "└", c)
	drawClipped(dst, l, sx+cellChars-1, sy+cellLines-1, "┘", c)
}

// renderSparkle glints one seated jewel per spin frame.
func (g *Game) renderSparkle(dst *platformcore.Screen, l layout) {
	cells := g.board.Grid().Cells()
	if len(cells) == 0 {
		return
	}
	cell := cells[(g.board.SpinIndex()*7)%len(cells)]
	if !cell.Seated() || cell.Empty() {
		return
	}
	sx, sy := l.toScreen(float64(cell.Rect.X), float64(cell.Rect.Y))
	drawClipped(dst, l, sx+cellChars-1, sy, "✦", platformcore.ColorText)
}

func (g *Game) renderLabels(dst *platformcore.Screen, l layout) {
	for _, lb := range g.board.Labels() {
		if lb.Alpha < 0.2 {
			continue
		}
		c := platformcore.ColorHighlight
		if lb.Alpha < 0.5 {
			c = platformcore.ColorMuted
		}
		sx, sy := l.toScreen(lb.X, lb.Y)
		drawClipped(dst, l, sx-len(lb.Text)/2, sy, lb.Text, c)
	}
}

func (g *Game) renderBanners(dst *platformcore.Screen, l layout) {
	mid := l.boardX + l.geom.Cols*cellChars/2
	for _, b := range g.banner {
		if b.Text == "" {
			continue
		}
		text := spaced(b.Text)
		_, sy := l.toScreen(0, b.Y)
		drawClipped(dst, l, mid-len([]rune(text))/2, sy, text, platformcore.ColorText)
	}
}

// spaced puts a space between letters so banner words read larger.
func spaced(s string) string {
	return strings.Join(strings.Split(s, ""), " ")
}

func (g *Game) renderBonusIcon(dst *platformcore.Screen, l layout) {
	t, ok := g.BonusIcon()
	if !ok {
		return
	}
	cx := l.boardX + (l.geom.Cols*cellChars-cellChars)/2
	cy := l.boardY + l.geom.Rows*cellLines/2
	for i, row := range glyph(t.Rank) {
		drawClipped(dst, l, cx, cy+i, row, g.tokenColor(t))
	}
	if !g.picked {
		msg := "pick: Enter"
		drawClipped(dst, l, l.boardX+(l.geom.Cols*cellChars-len(msg))/2, cy+cellLines+1, msg, platformcore.ColorMuted)
	}
}

func (g *Game) renderTitle(dst *platformcore.Screen, l layout) {
	mid := l.boardX + l.geom.Cols*cellChars/2
	title := spaced("JEWELS")
	drawClipped(dst, l, mid-len(title)/2, l.boardY+int(g.titleY), title, platformcore.ColorTitle)

	for i, item := range g.menu {
		text := "  " + item.Label + "  "
		c := platformcore.ColorMuted
		if i == g.menuSel {
			text = "> " + item.Label + " <"
			c = platformcore.ColorText
		}
		drawClipped(dst, l, mid-len(text)/2, l.menuTop()+2*i, text, c)
	}
}

func (g *Game) renderGameOver(dst *platformcore.Screen, l layout) {
	w := min(l.geom.Cols*cellChars-2, 24)
	h := 6
	x := l.boardX + (l.geom.Cols*cellChars-w)/2
	y := l.boardY + (l.geom.Rows*cellLines-h)/2
	box := platformcore.NewRect(x, y, w, h)
	dst.DrawRectColor(box, ' ', platformcore.ColorDefault)
	dst.DrawBoxColor(box, platformcore.ColorFrame)

	lines := []string{
		"GAME OVER",
		fmt.Sprintf("Score %d", g.board.Session().Score),
		"Enter: again",
	}
	for i, s := range lines {
		c := platformcore.ColorText
		if i == 0 {
			c = platformcore.ColorAlert
		}
		dst.DrawTextColor(x+(w-len(s))/2, y+1+i, s, c)
	}
}

func (g *Game) renderHUD(dst *platformcore.Screen, l layout) {
	x, y := l.hudX, l.boardY-1
	sess := g.board.Session()

	dst.DrawTextColor(x, y, "JEWELS", platformcore.ColorTitle)
	y += 2
	if !g.flow.Is(stateTitle) {
		dst.DrawText(x, y, fmt.Sprintf("Level   %d", sess.Level))
		dst.DrawText(x, y+1, fmt.Sprintf("Score   %d", sess.Score))
		dst.DrawTextColor(x, y+2, fmt.Sprintf("Target  %d", sess.NextTarget()), platformcore.ColorMuted)
		dst.DrawText(x, y+3, fmt.Sprintf("Combo   x%d", sess.Multiplier))
		dst.DrawTextColor(x, y+4, fmt.Sprintf("Pace    %d/min", int(sess.PointsPerMinute())), platformcore.ColorMuted)
		g.renderBonusBar(dst, x, y+6)
		y += 9
	}

	dst.DrawTextColor(x, y, "High scores", platformcore.ColorText)
	for i := 0; i < highScoreRows; i++ {
		text := fmt.Sprintf("%d.", i+1)
		if i < len(g.highs) {
			text = fmt.Sprintf("%d. %d", i+1, g.highs[i])
		}
		c := platformcore.ColorMuted
		if g.rank == i+1 {
			c = platformcore.ColorHighlight
			if !g.blink() {
				c = platformcore.ColorTopaz
			}
		}
		dst.DrawTextColor(x, y+1+i, text, c)
	}
}

func (g *Game) renderBonusBar(dst *platformcore.Screen, x, y int) {
	frac := platformcore.ClampF(g.board.Session().BonusFraction(), 0, 1)
	filled := int(frac*float64(bonusBarWidth) + 0.5)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", bonusBarWidth-filled)

	dst.DrawText(x, y, "Bonus")
	dst.DrawTextColor(x, y+1, "["+bar+"]", warningColors[g.warning])
}

func (g *Game) renderControls(dst *platformcore.Screen) {
	var help string
	switch g.flow.Current() {
	case stateTitle:
		help = "↑↓ choose  Enter start  Q quit"
	case statePaused:
		help = "P resume  M mute  Q quit"
	case stateBonus:
		help = "Enter pick jewel"
	case stateGameOver:
		help = "Enter/R again  Q quit"
	default:
		help = "mouse drag or arrows+Space swap  P pause  M mute  Q quit"
	}
	dst.DrawTextCenteredColor(dst.Height()-1, help, platformcore.ColorMuted)
}

// blink alternates every blinkPeriod of screen time.
func (g *Game) blink() bool {
	return (g.clock/blinkPeriod)%2 == 0
}
