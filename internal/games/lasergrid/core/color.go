package core

import (
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// Color represents a beam color.
type Color uint8

const (
	ColorNone Color = iota // Neutral tint of an idle splitter
	ColorWhite
	ColorRed
	ColorGreen
	ColorBlue
)

// String returns the string representation of a color.
func (c Color) String() string {
	switch c {
	case ColorNone:
		return "none"
	case ColorWhite:
		return "white"
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	default:
		return "unknown"
	}
}

// Char returns a single character representation of the color for ASCII rendering.
func (c Color) Char() rune {
	switch c {
	case ColorWhite:
		return 'W'
	case ColorRed:
		return 'R'
	case ColorGreen:
		return 'G'
	case ColorBlue:
		return 'B'
	default:
		return '.'
	}
}

// LowerChar returns a lowercase character, used for beams in ASCII rendering.
func (c Color) LowerChar() rune {
	switch c {
	case ColorWhite:
		return 'w'
	case ColorRed:
		return 'r'
	case ColorGreen:
		return 'g'
	case ColorBlue:
		return 'b'
	default:
		return '.'
	}
}

// Hex returns the palette hex code of the color.
func (c Color) Hex() string {
	switch c {
	case ColorWhite:
		return "#FFFFFF"
	case ColorRed:
		return "#D95952"
	case ColorGreen:
		return "#A8DAA7"
	case ColorBlue:
		return "#87C3E1"
	default:
		return ""
	}
}

// ParseColor converts a name, letter or hex code to a Color.
// Returns ColorNone and false if the string is not recognized.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w", "#ffffff", "#fff":
		return ColorWhite, true
	case "red", "r", "#d95952", "#ff0000", "#f00":
		return ColorRed, true
	case "green", "g", "#a8daa7", "#00ff00", "#0f0":
		return ColorGreen, true
	case "blue", "b", "#87c3e1", "#0000ff", "#00f":
		return ColorBlue, true
	default:
		return ColorNone, false
	}
}

// Primaries returns the colors a plain splitter emits, in emission order.
func Primaries() []Color {
	return []Color{ColorRed, ColorGreen, ColorBlue}
}

// AllColors returns a slice of all beam colors.
func AllColors() []Color {
	return []Color{ColorWhite, ColorRed, ColorGreen, ColorBlue}
}

// ColorSet is a set of distinct beam colors.
type ColorSet = mapset.Set[Color]

// NewColorSet builds a set from the given colors.
func NewColorSet(colors ...Color) ColorSet {
	return mapset.Of(colors...)
}

// SortedColors returns the members of s in AllColors order.
func SortedColors(s ColorSet) []Color {
	out := make([]Color, 0, s.Size())
	for _, c := range AllColors() {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// ColorsString renders a color set as "red+blue".
func ColorsString(s ColorSet) string {
	colors := SortedColors(s)
	if len(colors) == 0 {
		return "none"
	}
	parts := make([]string, len(colors))
	for i, c := range colors {
		parts[i] = c.String()
	}
	return strings.Join(parts, "+")
}
