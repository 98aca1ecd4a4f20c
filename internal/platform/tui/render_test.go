package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-jewels/internal/core"
)

func TestRenderScreenPlain(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "jewels")
	s.DrawText(1, 1, "go")
	assert.Equal(t, s.String(), RenderScreen(s))
}

func TestRenderScreenKeepsColoredRuns(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawTextColor(0, 0, "ruby", core.ColorRuby)
	s.DrawTextColor(5, 0, "ice", core.ColorIce)
	s.DrawTextColor(0, 2, "score", core.ColorText)

	out := RenderScreen(s)
	assert.Equal(t, 2, strings.Count(out, "\n"), "one line per row")
	for _, run := range []string{"ruby", "ice", "score"} {
		assert.Contains(t, out, run)
	}
}

func TestStyleForOutsidePalette(t *testing.T) {
	assert.Equal(t, "x", styleFor(core.Color(200)).Render("x"))
	assert.Len(t, paletteStyles, core.PaletteSize)
}

func TestTickInterval(t *testing.T) {
	assert.Equal(t, 50*time.Millisecond, tickInterval(20))
	want := time.Second / time.Duration(core.DefaultTickRate)
	assert.Equal(t, want, tickInterval(0))
	assert.Equal(t, want, tickInterval(-5))
}
