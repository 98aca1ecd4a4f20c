package core

import "testing"

func TestPaletteCodes(t *testing.T) {
	if code := ColorDefault.ANSI(); code != "" {
		t.Errorf("default color code = %q, want terminal default", code)
	}
	seen := make(map[string]Color)
	for c := ColorDefault + 1; int(c) < PaletteSize; c++ {
		code := c.ANSI()
		if code == "" {
			t.Errorf("color %d has no code", c)
			continue
		}
		if prev, ok := seen[code]; ok {
			t.Errorf("colors %d and %d share code %s", prev, c, code)
		}
		seen[code] = c
	}
}

func TestColorOutsidePalette(t *testing.T) {
	if code := Color(PaletteSize).ANSI(); code != "" {
		t.Errorf("out of palette code = %q, want empty", code)
	}
}

func TestColorRoles(t *testing.T) {
	roles := map[Color]string{
		ColorText:      "15",
		ColorMuted:     "245",
		ColorTitle:     "14",
		ColorHighlight: "11",
		ColorAlert:     "9",
		ColorFrame:     "1",
	}
	for c, want := range roles {
		if got := c.ANSI(); got != want {
			t.Errorf("role %d code = %q, want %q", c, got, want)
		}
	}
}
