package grid

import "strings"

// Color is a cell color. Black and White are the base colors that take part
// in movement and push rules; the grays are decorative.
type Color uint8

const (
	Black Color = iota
	White
	LightGray
	DarkGray
	ColorCount // Sentinel value for iteration
)

// String returns the name used in level files.
func (c Color) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	case LightGray:
		return "LightGray"
	case DarkGray:
		return "DarkGray"
	default:
		return "Unknown"
	}
}

// IsBase reports whether the color participates in push and collision rules.
func (c Color) IsBase() bool {
	return c == Black || c == White
}

// Inverted swaps the base colors. Decorative colors are returned unchanged.
func (c Color) Inverted() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return c
	}
}

// ParseColor converts a level-file color name to a Color.
// Returns Black and false if the name is not recognized.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "black":
		return Black, true
	case "white":
		return White, true
	case "lightgray", "light_gray", "grey", "gray":
		return LightGray, true
	case "darkgray", "dark_gray", "darkgrey":
		return DarkGray, true
	default:
		return Black, false
	}
}

// AllColors returns a slice of all valid colors.
func AllColors() []Color {
	return []Color{Black, White, LightGray, DarkGray}
}
