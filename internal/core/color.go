package core

// Color names a foreground color for a screen cell. The palette is built
// around gemstone hues so a color scheme can be read as a list of jewels;
// the interface roles below alias the same entries.
type Color uint8

// Palette entries.
const (
	ColorDefault Color = iota
	ColorGarnet
	ColorEmerald
	ColorTopaz
	ColorSapphire
	ColorRose
	ColorPearl
	ColorRuby
	ColorPeridot
	ColorCitrine
	ColorAzure
	ColorAmethyst
	ColorIce
	ColorDiamond
	ColorAmber
	ColorSlate

	PaletteSize = int(iota)
)

// Interface roles.
const (
	ColorText      = ColorDiamond
	ColorMuted     = ColorSlate
	ColorTitle     = ColorIce
	ColorHighlight = ColorCitrine
	ColorAlert     = ColorRuby
	ColorFrame     = ColorGarnet
)

// ansiCodes holds the ANSI 256-color code of every palette entry.
var ansiCodes = [PaletteSize]string{
	ColorGarnet:   "1",
	ColorEmerald:  "2",
	ColorTopaz:    "3",
	ColorSapphire: "4",
	ColorRose:     "5",
	ColorPearl:    "7",
	ColorRuby:     "9",
	ColorPeridot:  "10",
	ColorCitrine:  "11",
	ColorAzure:    "12",
	ColorAmethyst: "13",
	ColorIce:      "14",
	ColorDiamond:  "15",
	ColorAmber:    "208",
	ColorSlate:    "245",
}

// ANSI returns the terminal color code, or "" for the terminal default and
// anything outside the palette.
func (c Color) ANSI() string {
	if int(c) >= PaletteSize {
		return ""
	}
	return ansiCodes[c]
}
