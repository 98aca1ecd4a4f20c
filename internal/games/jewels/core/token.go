// Package core contains the jewel board engine: tokens, the cell grid,
// match finding, swap validation, the cascade resolver and session
// progression. It draws nothing and performs no I/O; callers drive it with
// Board.Update and read positions back for rendering.
package core

import (
	"fmt"
	"strings"
)

// Color is a jewel color. ColorNone is reserved for "no jewel".
type Color uint8

const (
	ColorNone Color = iota
	ColorBlue
	ColorPink
	ColorClear
	ColorGreen
	ColorAmber
	ColorViolet
)

var colorNames = [...]string{
	ColorNone:   "none",
	ColorBlue:   "blue",
	ColorPink:   "pink",
	ColorClear:  "clear",
	ColorGreen:  "green",
	ColorAmber:  "amber",
	ColorViolet: "violet",
}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("color(%d)", c)
}

// ParseColor converts a color name to a Color.
func ParseColor(name string) (Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range colorNames {
		if i > 0 && n == name {
			return Color(i), nil
		}
	}
	return ColorNone, fmt.Errorf("jewels: unknown color %q", name)
}

// MarshalText encodes the color by name.
func (c Color) MarshalText() ([]byte, error) {
	if int(c) >= len(colorNames) {
		return nil, fmt.Errorf("jewels: unknown color %d", c)
	}
	return []byte(colorNames[c]), nil
}

// UnmarshalText decodes a color name. "none" decodes to ColorNone.
func (c *Color) UnmarshalText(text []byte) error {
	if string(text) == colorNames[ColorNone] {
		*c = ColorNone
		return nil
	}
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Rank is a gem cut. Higher ranks have more facets.
type Rank int

const (
	MinRank Rank = 1
	MaxRank Rank = 5
)

// Valid reports whether r is a known gem cut.
func (r Rank) Valid() bool {
	return r >= MinRank && r <= MaxRank
}

// Token is a jewel identity. The zero Token means "no jewel" and never matches.
type Token struct {
	Color Color `json:"color"`
	Rank  Rank  `json:"rank"`
}

// Empty reports whether t is the zero token.
func (t Token) Empty() bool {
	return t.Color == ColorNone
}

func (t Token) String() string {
	if t.Empty() {
		return "-"
	}
	return fmt.Sprintf("%s/%d", t.Color, t.Rank)
}

// MakeCombos builds a combo set of n tokens by pairing a shuffled cycle of
// colors with the fixed cycle of ranks. Identities repeat once n exceeds
// the number of distinct pairs the two cycles produce.
func MakeCombos(rng IntNSource, colors []Color, ranks []Rank, n int) []Token {
	if len(colors) == 0 || len(ranks) == 0 || n <= 0 {
		return nil
	}

	shuffled := make([]Color, len(colors))
	copy(shuffled, colors)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	combos := make([]Token, n)
	for i := range combos {
		combos[i] = Token{
			Color: shuffled[i%len(shuffled)],
			Rank:  ranks[i%len(ranks)],
		}
	}
	return combos
}

// DistinctCombos returns how many distinct identities MakeCombos yields for
// the given palette sizes and combo count.
func DistinctCombos(numColors, numRanks, n int) int {
	if numColors == 0 || numRanks == 0 {
		return 0
	}
	period := numColors / gcd(numColors, numRanks) * numRanks
	if n < period {
		return n
	}
	return period
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
