// Package grid holds the level model: a fixed-size matrix of colored glyph
// cells, the actor start point and the named triggers.
package grid

import "github.com/vovakirdan/kiwi/internal/core"

// Cell is one grid position: a glyph and its two colors.
type Cell struct {
	Glyph rune
	Fg    Color
	Bg    Color
}

// EmptyCell is returned for every out-of-bounds read.
var EmptyCell = Cell{Glyph: 0, Fg: Black, Bg: Black}

// BlankCell is the cell a fresh editor canvas is filled with.
func BlankCell() Cell {
	return Cell{Glyph: 0, Fg: White, Bg: Black}
}

// Empty reports whether the cell holds no glyph. A space counts as empty.
func (c Cell) Empty() bool {
	return c.Glyph == 0 || c.Glyph == ' '
}

// Reserved trigger identifiers.
const (
	ExitFinish  = "exit0"
	ExitBranchA = "exit1"
	ExitBranchB = "exit2"
)

// Trigger is a named point of interest on the grid.
type Trigger struct {
	Pos core.Vec
	ID  string
}

// Grid is the level: cells stored in row-major order (index = y*width + x),
// the actor start position and the trigger list.
type Grid struct {
	width    int
	height   int
	cells    []Cell
	Start    core.Vec
	Triggers []Trigger
}

// New creates a grid with every cell set to EmptyCell.
func New(width, height int) *Grid {
	width = core.Max(width, 0)
	height = core.Max(height, 0)
	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i] = EmptyCell
	}
	return &Grid{width: width, height: height, cells: cells}
}

// NewBlank creates a grid filled with BlankCell, the editor's default canvas.
func NewBlank(width, height int) *Grid {
	g := New(width, height)
	g.Fill(BlankCell())
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Size returns the grid dimensions as a vector.
func (g *Grid) Size() core.Vec { return core.V(g.width, g.height) }

// Bounds returns the rectangle covering every cell.
func (g *Grid) Bounds() core.Rect {
	return core.Rect{Size: g.Size()}
}

// Contains returns true if the coordinate is within the grid boundaries.
func (g *Grid) Contains(p core.Vec) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

func (g *Grid) index(p core.Vec) int {
	return p.Y*g.width + p.X
}

// At returns the cell at p, or EmptyCell when p is out of bounds.
func (g *Grid) At(p core.Vec) Cell {
	if !g.Contains(p) {
		return EmptyCell
	}
	return g.cells[g.index(p)]
}

// Set stores c at p. Writes outside the grid are dropped.
func (g *Grid) Set(p core.Vec, c Cell) {
	if g.Contains(p) {
		g.cells[g.index(p)] = c
	}
}

// SetGlyph replaces only the glyph at p.
func (g *Grid) SetGlyph(p core.Vec, r rune) {
	if g.Contains(p) {
		g.cells[g.index(p)].Glyph = r
	}
}

// Fill sets every cell to c.
func (g *Grid) Fill(c Cell) {
	for i := range g.cells {
		g.cells[i] = c
	}
}

// Clone returns a deep copy of the grid, triggers included.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	var triggers []Trigger
	if g.Triggers != nil {
		triggers = make([]Trigger, len(g.Triggers))
		copy(triggers, g.Triggers)
	}
	return &Grid{
		width:    g.width,
		height:   g.height,
		cells:    cells,
		Start:    g.Start,
		Triggers: triggers,
	}
}

// MinResize is the smallest side length Resize accepts.
const MinResize = 5

// Resize changes the grid dimensions, keeping the overlapping content and
// padding new cells with EmptyCell. Sizes below MinResize on either axis are
// ignored. Returns whether the grid changed size.
func (g *Grid) Resize(size core.Vec) bool {
	if size.X < MinResize || size.Y < MinResize {
		return false
	}
	if size.X == g.width && size.Y == g.height {
		return false
	}
	resized := New(size.X, size.Y)
	copyW := core.Min(g.width, size.X)
	copyH := core.Min(g.height, size.Y)
	for y := 0; y < copyH; y++ {
		for x := 0; x < copyW; x++ {
			p := core.V(x, y)
			resized.Set(p, g.At(p))
		}
	}
	g.width = resized.width
	g.height = resized.height
	g.cells = resized.cells
	return true
}

// TriggerAt returns the first trigger placed at p.
func (g *Grid) TriggerAt(p core.Vec) (Trigger, bool) {
	for _, t := range g.Triggers {
		if t.Pos == p {
			return t, true
		}
	}
	return Trigger{}, false
}

// RemoveTriggersAt drops every trigger at p and returns how many were removed.
func (g *Grid) RemoveTriggersAt(p core.Vec) int {
	kept := g.Triggers[:0]
	removed := 0
	for _, t := range g.Triggers {
		if t.Pos == p {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	g.Triggers = kept
	return removed
}

// PlaceTrigger replaces any trigger at p with a new one named id.
func (g *Grid) PlaceTrigger(p core.Vec, id string) {
	g.RemoveTriggersAt(p)
	g.Triggers = append(g.Triggers, Trigger{Pos: p, ID: id})
}

// Equal returns true if two grids have the same dimensions, cells, start
// point and triggers (in order).
func (g *Grid) Equal(other *Grid) bool {
	if g.width != other.width || g.height != other.height || g.Start != other.Start {
		return false
	}
	for i, c := range g.cells {
		if c != other.cells[i] {
			return false
		}
	}
	if len(g.Triggers) != len(other.Triggers) {
		return false
	}
	for i, t := range g.Triggers {
		if t != other.Triggers[i] {
			return false
		}
	}
	return true
}
