package core

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	platformcore "github.com/vovakirdan/tui-jewels/internal/core"
)

const tick = 16 * time.Millisecond

var letterTokens = map[rune]Token{
	'a': {Color: ColorBlue, Rank: 1},
	'b': {Color: ColorPink, Rank: 1},
	'c': {Color: ColorClear, Rank: 1},
	'd': {Color: ColorBlue, Rank: 4},
	'e': {Color: ColorPink, Rank: 4},
	'f': {Color: ColorClear, Rank: 4},
}

// tokensOf lists every cell's token in row-major order.
func tokensOf(g *Grid) []Token {
	out := make([]Token, len(g.cells))
	for i, c := range g.cells {
		out[i] = c.Token()
	}
	return out
}

func hasEmpty(g *Grid) bool {
	for _, c := range g.cells {
		if c.Empty() {
			return true
		}
	}
	return false
}

// deadlocked has no runs and no swap that makes one.
var deadlocked = []string{
	"abcabcab",
	"bcabcabc",
	"cabcabca",
	"abcabcab",
	"bcabcabc",
	"cabcabca",
	"abcabcab",
	"bcabcabc",
}

// oneMove has a single legal swap: (0,2) with its right neighbor, which
// completes a column of c in column 1.
var oneMove = []string{
	"accabcab",
	"bcabcabc",
	"cabcabca",
	"abcabcab",
	"bcabcabc",
	"cabcabca",
	"abcabcab",
	"bcabcabc",
}

func newTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

type recordingSound struct {
	played []platformcore.Sound
	looped platformcore.Sound
}

func (r *recordingSound) Play(s platformcore.Sound) { r.played = append(r.played, s) }
func (r *recordingSound) Loop(s platformcore.Sound) { r.looped = s }
func (r *recordingSound) StopLoop()                 { r.looped = "" }

// testBoard builds a board from a letter layout; '.' is an empty cell.
func testBoard(t *testing.T, sound platformcore.SoundPlayer, rows ...string) *Board {
	t.Helper()
	s := DefaultSettings()
	s.Geometry.Cols = len(rows[0])
	s.Geometry.Rows = len(rows)
	b := newBoard(s, newTestRand(1), sound)
	b.session = newSession(&b.settings, b.rng)
	for r, line := range rows {
		require.Len(t, line, s.Geometry.Cols, "row %d", r)
		for c, ch := range line {
			if ch == '.' {
				continue
			}
			tok, ok := letterTokens[ch]
			require.True(t, ok, "unknown token %q", ch)
			b.grid.Place(C(c, r), tok)
		}
	}
	return b
}

// layout renders the grid back into letters; unknown tokens print as '?'.
func layout(g *Grid) []string {
	out := make([]string, g.Rows())
	for r := range out {
		var sb strings.Builder
		for _, c := range g.Row(r) {
			sb.WriteRune(letterOf(c.Token()))
		}
		out[r] = sb.String()
	}
	return out
}

func letterOf(t Token) rune {
	if t.Empty() {
		return '.'
	}
	for ch, tok := range letterTokens {
		if tok == t {
			return ch
		}
	}
	return '?'
}

// settle ticks the board until it comes to rest.
func settle(t *testing.T, b *Board) {
	t.Helper()
	for i := 0; i < 20000; i++ {
		b.Update(tick)
		if b.Stable() || b.NoMoves() {
			return
		}
	}
	t.Fatalf("board did not come to rest, phase %s", b.Phase())
}

func pieceSnapshot(g *Grid) []*Piece {
	out := make([]*Piece, len(g.Cells()))
	for i, c := range g.Cells() {
		out[i] = c.Piece
	}
	return out
}
