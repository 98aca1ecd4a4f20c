package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-jewels/internal/core"
)

// paletteStyles holds one lipgloss style per palette entry, indexed by color.
var paletteStyles = buildPaletteStyles()

func buildPaletteStyles() []lipgloss.Style {
	styles := make([]lipgloss.Style, core.PaletteSize)
	for i := range styles {
		st := lipgloss.NewStyle()
		if code := core.Color(i).ANSI(); code != "" {
			st = st.Foreground(lipgloss.Color(code))
		}
		styles[i] = st
	}
	return styles
}

func styleFor(c core.Color) lipgloss.Style {
	if int(c) >= len(paletteStyles) {
		return paletteStyles[core.ColorDefault]
	}
	return paletteStyles[c]
}

// RenderScreen turns the cell buffer into terminal output, one escape
// sequence per run of same-colored cells.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			sb.WriteString(styleFor(color).Render(run.String()))
		}
	}
	return sb.String()
}
