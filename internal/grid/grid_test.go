package grid_test

import (
	"testing"

	"github.com/vovakirdan/kiwi/internal/core"
	"github.com/vovakirdan/kiwi/internal/grid"
)

func TestNewGrid(t *testing.T) {
	g := grid.New(5, 4)

	if g.Width() != 5 || g.Height() != 4 {
		t.Errorf("expected 5x4 grid, got %dx%d", g.Width(), g.Height())
	}
	if g.Bounds() != core.NewRect(0, 0, 5, 4) {
		t.Errorf("Bounds() = %+v", g.Bounds())
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			if c := g.At(core.V(x, y)); c != grid.EmptyCell {
				t.Fatalf("At(%d,%d) = %+v, expected EmptyCell", x, y, c)
			}
		}
	}
}

func TestNewGridNegativeSize(t *testing.T) {
	g := grid.New(-3, 2)
	if g.Width() != 0 || g.Height() != 2 {
		t.Errorf("expected 0x2 grid, got %dx%d", g.Width(), g.Height())
	}
	if g.Contains(core.V(0, 0)) {
		t.Error("zero-width grid should contain nothing")
	}
}

func TestGridContains(t *testing.T) {
	g := grid.New(5, 5)

	testCases := []struct {
		p        core.Vec
		expected bool
	}{
		{core.V(0, 0), true},
		{core.V(4, 4), true},
		{core.V(2, 2), true},
		{core.V(-1, 0), false},
		{core.V(0, -1), false},
		{core.V(5, 0), false},
		{core.V(0, 5), false},
		{core.V(5, 5), false},
	}

	for _, tc := range testCases {
		if got := g.Contains(tc.p); got != tc.expected {
			t.Errorf("Contains(%v): expected %v, got %v", tc.p, tc.expected, got)
		}
	}
}

func TestGridSetAndGetRoundTrip(t *testing.T) {
	g := grid.New(3, 3)
	c := grid.Cell{Glyph: 'x', Fg: grid.LightGray, Bg: grid.White}

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			p := core.V(x, y)
			want := c
			want.Glyph = rune('a' + y*3 + x)
			g.Set(p, want)
			if got := g.At(p); got != want {
				t.Errorf("At(%v) = %+v, expected %+v", p, got, want)
			}
		}
	}
}

func TestGridOutOfBounds(t *testing.T) {
	g := grid.New(3, 3)
	before := g.Clone()

	outside := []core.Vec{
		core.V(-1, 0), core.V(0, -1), core.V(3, 0), core.V(0, 3), core.V(100, 100),
	}
	for _, p := range outside {
		g.Set(p, grid.Cell{Glyph: '#', Fg: grid.White, Bg: grid.White})
		if got := g.At(p); got != grid.EmptyCell {
			t.Errorf("At(%v) = %+v, expected EmptyCell", p, got)
		}
	}

	if g.Width() != 3 || g.Height() != 3 {
		t.Errorf("grid grew to %dx%d", g.Width(), g.Height())
	}
	if !g.Equal(before) {
		t.Error("out-of-bounds Set modified the grid")
	}
}

func TestGridClone(t *testing.T) {
	g := grid.New(3, 3)
	g.Set(core.V(1, 1), grid.Cell{Glyph: 'o', Fg: grid.White, Bg: grid.Black})
	g.Start = core.V(2, 2)
	g.PlaceTrigger(core.V(0, 0), grid.ExitFinish)

	clone := g.Clone()
	if !clone.Equal(g) {
		t.Fatal("clone differs from original")
	}

	clone.Set(core.V(1, 1), grid.EmptyCell)
	clone.Triggers[0].ID = grid.ExitBranchA

	if g.At(core.V(1, 1)).Glyph != 'o' {
		t.Error("modifying clone cells changed the original")
	}
	if g.Triggers[0].ID != grid.ExitFinish {
		t.Error("modifying clone triggers changed the original")
	}
}

func TestGridResize(t *testing.T) {
	g := grid.New(6, 6)
	marked := grid.Cell{Glyph: 'k', Fg: grid.White, Bg: grid.Black}
	g.Set(core.V(1, 1), marked)
	g.Set(core.V(5, 5), marked)

	tests := []struct {
		name    string
		size    core.Vec
		changed bool
		w, h    int
	}{
		{"too narrow", core.V(4, 10), false, 6, 6},
		{"too short", core.V(10, 4), false, 6, 6},
		{"same size", core.V(6, 6), false, 6, 6},
		{"grow", core.V(8, 7), true, 8, 7},
		{"shrink", core.V(5, 5), true, 5, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.Resize(tc.size); got != tc.changed {
				t.Errorf("Resize(%v) = %v, expected %v", tc.size, got, tc.changed)
			}
			if g.Width() != tc.w || g.Height() != tc.h {
				t.Errorf("size = %dx%d, expected %dx%d", g.Width(), g.Height(), tc.w, tc.h)
			}
			if g.At(core.V(1, 1)) != marked {
				t.Error("Resize lost content inside the overlap")
			}
		})
	}

	if g.At(core.V(5, 5)) != grid.EmptyCell {
		t.Error("cell outside the shrunk grid should be gone")
	}
}

func TestGridResizePadsWithEmpty(t *testing.T) {
	g := grid.NewBlank(5, 5)
	g.Resize(core.V(7, 7))

	if got := g.At(core.V(6, 6)); got != grid.EmptyCell {
		t.Errorf("new cell = %+v, expected EmptyCell", got)
	}
	if got := g.At(core.V(4, 4)); got != grid.BlankCell() {
		t.Errorf("kept cell = %+v, expected BlankCell", got)
	}
}

func TestGridTriggers(t *testing.T) {
	g := grid.New(5, 5)
	p := core.V(3, 3)

	g.PlaceTrigger(p, grid.ExitBranchA)
	g.PlaceTrigger(core.V(1, 1), grid.ExitFinish)
	g.PlaceTrigger(p, grid.ExitBranchB)

	if len(g.Triggers) != 2 {
		t.Fatalf("expected 2 triggers, got %d", len(g.Triggers))
	}
	tr, ok := g.TriggerAt(p)
	if !ok || tr.ID != grid.ExitBranchB {
		t.Errorf("TriggerAt(%v) = %+v, %v; expected exit2", p, tr, ok)
	}

	if n := g.RemoveTriggersAt(p); n != 1 {
		t.Errorf("RemoveTriggersAt() = %d, expected 1", n)
	}
	if _, ok := g.TriggerAt(p); ok {
		t.Error("trigger still present after removal")
	}
	if _, ok := g.TriggerAt(core.V(1, 1)); !ok {
		t.Error("unrelated trigger was removed")
	}
}

func TestCellEmpty(t *testing.T) {
	tests := []struct {
		glyph    rune
		expected bool
	}{
		{0, true},
		{' ', true},
		{'o', false},
		{'@', false},
	}

	for _, tc := range tests {
		c := grid.Cell{Glyph: tc.glyph}
		if got := c.Empty(); got != tc.expected {
			t.Errorf("Cell{%q}.Empty() = %v, expected %v", tc.glyph, got, tc.expected)
		}
	}
}

func TestColorHelpers(t *testing.T) {
	for _, c := range grid.AllColors() {
		parsed, ok := grid.ParseColor(c.String())
		if !ok || parsed != c {
			t.Errorf("ParseColor(%q) = %v, %v", c.String(), parsed, ok)
		}
	}

	if _, ok := grid.ParseColor("magenta"); ok {
		t.Error("ParseColor should reject unknown names")
	}

	if !grid.Black.IsBase() || !grid.White.IsBase() {
		t.Error("Black and White should be base colors")
	}
	if grid.LightGray.IsBase() || grid.DarkGray.IsBase() {
		t.Error("grays should not be base colors")
	}

	if grid.Black.Inverted() != grid.White || grid.White.Inverted() != grid.Black {
		t.Error("Inverted should swap Black and White")
	}
	if grid.LightGray.Inverted() != grid.LightGray {
		t.Error("Inverted should leave grays alone")
	}
}
