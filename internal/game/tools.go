package game

import (
	"github.com/vovakirdan/kiwi/internal/core"
	"github.com/vovakirdan/kiwi/internal/grid"
)

// PaintPreset is the color change applied by the paint tool.
type PaintPreset int

const (
	PaintWhiteNormal   PaintPreset = iota // White background, black glyphs
	PaintBlackNormal                      // Black background, white glyphs
	PaintInvert                           // Swap black and white, grays stay
	PaintTextLightGray                    // Light gray glyphs
	PaintTextDarkGray                     // Dark gray glyphs
	PaintBgLightGray                      // Light gray background
	PaintBgDarkGray                       // Dark gray background
)

var presetNames = map[PaintPreset]string{
	PaintWhiteNormal:   "WhiteNormal",
	PaintBlackNormal:   "BlackNormal",
	PaintInvert:        "Invert",
	PaintTextLightGray: "TextLightGray",
	PaintTextDarkGray:  "TextDarkGray",
	PaintBgLightGray:   "BgLightGray",
	PaintBgDarkGray:    "BgDarkGray",
}

// String returns the preset name.
func (p PaintPreset) String() string {
	if name, ok := presetNames[p]; ok {
		return name
	}
	return "Unknown"
}

// presetKeys maps the paint mode keys to presets.
var presetKeys = map[string]PaintPreset{
	"z": PaintWhiteNormal,
	"x": PaintBlackNormal,
	"c": PaintInvert,
	"v": PaintTextLightGray,
	"b": PaintTextDarkGray,
	"n": PaintBgLightGray,
	"m": PaintBgDarkGray,
}

// Apply returns c with the preset's colors. The glyph is kept.
func (p PaintPreset) Apply(c grid.Cell) grid.Cell {
	switch p {
	case PaintWhiteNormal:
		c.Bg, c.Fg = grid.White, grid.Black
	case PaintBlackNormal:
		c.Bg, c.Fg = grid.Black, grid.White
	case PaintInvert:
		c.Bg, c.Fg = c.Bg.Inverted(), c.Fg.Inverted()
	case PaintTextLightGray:
		c.Fg = grid.LightGray
	case PaintTextDarkGray:
		c.Fg = grid.DarkGray
	case PaintBgLightGray:
		c.Bg = grid.LightGray
	case PaintBgDarkGray:
		c.Bg = grid.DarkGray
	}
	return c
}

// PaintCell applies p to the cell at pos. Positions outside g are ignored.
func PaintCell(g *grid.Grid, pos core.Vec, p PaintPreset) {
	if !g.Contains(pos) {
		return
	}
	g.Set(pos, p.Apply(g.At(pos)))
}

// CopyRect copies the cells of src to the area starting at target. Cells are
// read from a snapshot, so overlapping areas copy correctly.
func CopyRect(g *grid.Grid, src core.Rect, target core.Vec) {
	copyFrom(g, g.Clone(), src.Normalized(), target)
}

// MoveRect copies src to target and leaves the source area painted with p
// and without glyphs.
func MoveRect(g *grid.Grid, src core.Rect, target core.Vec, p PaintPreset) {
	src = src.Normalized()
	snapshot := g.Clone()
	for y := src.Top(); y <= src.Bottom(); y++ {
		for x := src.Left(); x <= src.Right(); x++ {
			pos := core.V(x, y)
			PaintCell(g, pos, p)
			g.SetGlyph(pos, ' ')
		}
	}
	copyFrom(g, snapshot, src, target)
}

// FillRect sets every cell of r to the cell at r's top-left corner.
func FillRect(g *grid.Grid, r core.Rect) {
	r = r.Normalized()
	c := g.At(r.Pos)
	for y := r.Top(); y <= r.Bottom(); y++ {
		for x := r.Left(); x <= r.Right(); x++ {
			g.Set(core.V(x, y), c)
		}
	}
}

func copyFrom(g, snapshot *grid.Grid, src core.Rect, target core.Vec) {
	for y := src.Top(); y <= src.Bottom(); y++ {
		for x := src.Left(); x <= src.Right(); x++ {
			p := core.V(x, y)
			g.Set(p.Sub(src.Pos).Add(target), snapshot.At(p))
		}
	}
}
