// Package levels reads and writes level files and the level list.
// This package depends on grid but grid does not depend on levels.
package levels

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/kiwi/internal/core"
	"github.com/vovakirdan/kiwi/internal/grid"
	"gopkg.in/yaml.v3"
)

// ErrInvalidLevel is returned when a level file parses but its content is
// inconsistent (row counts, unknown colors, bad dimensions).
var ErrInvalidLevel = errors.New("invalid level")

// YAMLLevel represents the YAML structure of a level file.
type YAMLLevel struct {
	Width    int           `yaml:"width"`
	Height   int           `yaml:"height"`
	P0       YAMLPos       `yaml:"p0"`
	Triggers []YAMLTrigger `yaml:"triggers"`
	Data     [][]YAMLCell  `yaml:"data"`
}

// YAMLPos is a grid coordinate.
type YAMLPos struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// YAMLTrigger is a named grid position.
type YAMLTrigger struct {
	Pos YAMLPos `yaml:"pos"`
	ID  string  `yaml:"id"`
}

// YAMLCell represents a single cell. Letter holds one character; an empty
// string or "\0" means no glyph.
type YAMLCell struct {
	Letter     string `yaml:"letter"`
	Background string `yaml:"background"`
	Foreground string `yaml:"foreground"`
}

// Parse decodes a level from YAML and validates it.
func Parse(data []byte) (*grid.Grid, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return yl.toGrid()
}

func (yl *YAMLLevel) toGrid() (*grid.Grid, error) {
	if yl.Width <= 0 || yl.Height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidLevel, yl.Width, yl.Height)
	}
	if len(yl.Data) != yl.Height {
		return nil, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidLevel, yl.Height, len(yl.Data))
	}

	g := grid.New(yl.Width, yl.Height)
	for y, row := range yl.Data {
		if len(row) != yl.Width {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrInvalidLevel, y, len(row), yl.Width)
		}
		for x, yc := range row {
			c, err := yc.toCell()
			if err != nil {
				return nil, fmt.Errorf("%w: cell (%d,%d): %v", ErrInvalidLevel, x, y, err)
			}
			g.Set(core.V(x, y), c)
		}
	}

	g.Start = core.V(yl.P0.X, yl.P0.Y)
	for _, t := range yl.Triggers {
		g.Triggers = append(g.Triggers, grid.Trigger{Pos: core.V(t.Pos.X, t.Pos.Y), ID: t.ID})
	}
	return g, nil
}

func (yc YAMLCell) toCell() (grid.Cell, error) {
	bg, ok := grid.ParseColor(yc.Background)
	if !ok {
		return grid.Cell{}, fmt.Errorf("unknown background %q", yc.Background)
	}
	fg, ok := grid.ParseColor(yc.Foreground)
	if !ok {
		return grid.Cell{}, fmt.Errorf("unknown foreground %q", yc.Foreground)
	}

	var glyph rune
	if yc.Letter != "" {
		r, size := utf8.DecodeRuneInString(yc.Letter)
		if r == utf8.RuneError || size != len(yc.Letter) {
			return grid.Cell{}, fmt.Errorf("letter %q is not a single character", yc.Letter)
		}
		glyph = r
	}
	return grid.Cell{Glyph: glyph, Fg: fg, Bg: bg}, nil
}

// Marshal encodes a grid into level YAML.
func Marshal(g *grid.Grid) ([]byte, error) {
	yl := YAMLLevel{
		Width:    g.Width(),
		Height:   g.Height(),
		P0:       YAMLPos{X: g.Start.X, Y: g.Start.Y},
		Triggers: make([]YAMLTrigger, 0, len(g.Triggers)),
		Data:     make([][]YAMLCell, g.Height()),
	}
	for _, t := range g.Triggers {
		yl.Triggers = append(yl.Triggers, YAMLTrigger{Pos: YAMLPos{X: t.Pos.X, Y: t.Pos.Y}, ID: t.ID})
	}
	for y := 0; y < g.Height(); y++ {
		row := make([]YAMLCell, g.Width())
		for x := 0; x < g.Width(); x++ {
			c := g.At(core.V(x, y))
			row[x] = YAMLCell{
				Letter:     string(c.Glyph),
				Background: c.Bg.String(),
				Foreground: c.Fg.String(),
			}
		}
		yl.Data[y] = row
	}

	out, err := yaml.Marshal(&yl)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return out, nil
}
