package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/kiwi/internal/core"
	"github.com/vovakirdan/kiwi/internal/game"
	"github.com/vovakirdan/kiwi/internal/grid"
)

// previewColors maps grid colors to ANSI palette indices.
var previewColors = map[grid.Color]lipgloss.Color{
	grid.Black:     lipgloss.Color("0"),
	grid.White:     lipgloss.Color("15"),
	grid.LightGray: lipgloss.Color("7"),
	grid.DarkGray:  lipgloss.Color("8"),
}

type cellColors struct {
	fg, bg grid.Color
}

func cellStyle(c cellColors) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(previewColors[c.fg]).
		Background(previewColors[c.bg])
}

// RenderLevel draws the part of g that fits in a width x height box as a
// styled string. The box is scrolled so the start point is visible and the
// start is drawn as the actor. Adjacent cells with the same colors share one
// style run.
func RenderLevel(g *grid.Grid, width, height int) string {
	if g == nil || width <= 0 || height <= 0 {
		return ""
	}
	view := core.V(min(width, g.Width()), min(height, g.Height()))
	var corner core.Vec
	game.Follow(&corner, g.Start, view, 0)

	var sb strings.Builder
	sb.Grow(view.X*view.Y*2 + view.Y)

	for y := 0; y < view.Y; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < view.X {
			start := g.At(corner.Add(core.V(x, y)))
			colors := cellColors{start.Fg, start.Bg}

			var run strings.Builder
			for x < view.X {
				p := corner.Add(core.V(x, y))
				cell := g.At(p)
				if (cellColors{cell.Fg, cell.Bg}) != colors {
					break
				}
				run.WriteRune(previewGlyph(g, p, cell))
				x++
			}
			sb.WriteString(cellStyle(colors).Render(run.String()))
		}
	}
	return sb.String()
}

func previewGlyph(g *grid.Grid, p core.Vec, c grid.Cell) rune {
	if p == g.Start {
		return '@'
	}
	if c.Empty() {
		return ' '
	}
	return c.Glyph
}
