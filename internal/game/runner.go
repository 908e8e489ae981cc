// Package game holds the puzzle widgets: the level runner, the level editor
// and the sequencer that plays a list of levels.
package game

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"github.com/vovakirdan/kiwi/internal/core"
	"github.com/vovakirdan/kiwi/internal/grid"
	"github.com/vovakirdan/kiwi/internal/ui"
)

// DefaultRunnerMargin is the distance kept between the actor and the view
// edges.
const DefaultRunnerMargin = 5

// Runner plays one level. The actor walks, pushes glyphs and stops on
// triggers; exit triggers end the run with Ok or a branch Result.
type Runner struct {
	ui.Base

	grid   *grid.Grid
	backup *grid.Grid
	actor  core.Vec
	corner core.Vec
	view   core.Vec
	margin int
	moves  int
	name   string

	keys RunnerKeyMap
	help help.Model
}

// NewRunner creates a runner on a blank 10x10 level.
func NewRunner(ctx *ui.Context) *Runner {
	g := grid.New(10, 10)
	g.Start = core.V(2, 2)
	return NewRunnerWithGrid(ctx, g)
}

// NewRunnerWithGrid creates a runner that plays g. The runner takes
// ownership of g.
func NewRunnerWithGrid(ctx *ui.Context, g *grid.Grid) *Runner {
	r := &Runner{
		Base:   ui.NewBase(ctx),
		margin: DefaultRunnerMargin,
		keys:   DefaultRunnerKeyMap(),
		help:   newHelp(),
	}
	r.setView(ctx.Size())
	r.Load(g)
	return r
}

// Load replaces the level and places the actor on its start cell.
func (r *Runner) Load(g *grid.Grid) {
	r.grid = g
	r.Start()
}

// Start places the actor on the level start, resets the move counter and
// keeps the current level as the restart point.
func (r *Runner) Start() {
	r.actor = r.grid.Start
	r.backup = r.grid.Clone()
	r.moves = 0
	r.corner = core.Vec{}
	Follow(&r.corner, r.actor, r.view, r.margin)
	r.MarkRefresh(true)
}

// Restart reverts every push since the last Start.
func (r *Runner) Restart() {
	r.grid = r.backup.Clone()
	r.Start()
}

// SetActor moves the actor without any walk rules.
func (r *Runner) SetActor(p core.Vec) {
	r.actor = p
	Follow(&r.corner, r.actor, r.view, r.margin)
	r.MarkRefresh(true)
}

// SetMargin sets the follow margin. Negative values count as zero.
func (r *Runner) SetMargin(m int) {
	r.margin = core.Max(m, 0)
}

// SetName sets the level name shown in the status line.
func (r *Runner) SetName(name string) {
	r.name = name
	r.MarkRefresh(true)
}

// Grid returns the level being played.
func (r *Runner) Grid() *grid.Grid { return r.grid }

// Actor returns the actor position.
func (r *Runner) Actor() core.Vec { return r.actor }

// Corner returns the top-left level cell of the view.
func (r *Runner) Corner() core.Vec { return r.corner }

// ViewSize returns the number of level cells visible on screen.
func (r *Runner) ViewSize() core.Vec { return r.view }

// Moves returns the number of successful steps since the last Start.
func (r *Runner) Moves() int { return r.moves }

// Walk tries to move the actor one cell in dir and reports whether it moved.
//
// On the same background the actor enters empty cells and cells with a
// light gray glyph. A base-colored glyph is pushed one cell further if that
// cell is inside the level, has the same background and is empty. If that
// cell has a different background and holds the same glyph, both glyphs
// cancel out. Across backgrounds the actor only moves by swapping with an
// '@' glyph, and only when both backgrounds are base colors.
func (r *Runner) Walk(dir core.Vec) bool {
	target := r.actor.Add(dir)
	if !r.grid.Contains(target) {
		return false
	}
	here := r.grid.At(r.actor)
	to := r.grid.At(target)

	if to.Bg != here.Bg {
		if here.Bg.IsBase() && to.Bg.IsBase() && to.Glyph == actorGlyph {
			r.grid.SetGlyph(target, ' ')
			r.grid.SetGlyph(r.actor, actorGlyph)
			return r.step(target)
		}
		return false
	}

	if to.Empty() {
		return r.step(target)
	}
	if to.Fg.IsBase() {
		next := target.Add(dir)
		if r.grid.Contains(next) {
			beyond := r.grid.At(next)
			if beyond.Bg == to.Bg && beyond.Empty() {
				r.grid.SetGlyph(next, to.Glyph)
				r.grid.SetGlyph(target, ' ')
				return r.step(target)
			}
			if beyond.Bg != to.Bg && beyond.Glyph == to.Glyph {
				r.grid.SetGlyph(next, ' ')
				r.grid.SetGlyph(target, ' ')
				return r.step(target)
			}
		}
	}
	if to.Fg == grid.LightGray {
		return r.step(target)
	}
	return false
}

func (r *Runner) step(to core.Vec) bool {
	r.actor = to
	r.moves++
	return true
}

// Follow scrolls the view to keep the actor away from its edges.
func (r *Runner) Follow() bool {
	return Follow(&r.corner, r.actor, r.view, r.margin)
}

// Input handles movement and restart keys.
func (r *Runner) Input(ctx *ui.Context, in ui.Input) *ui.Event {
	k, ok := in.(ui.Key)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(k, r.keys.Up):
		r.walkAndFollow(core.Up)
	case key.Matches(k, r.keys.Down):
		r.walkAndFollow(core.Down)
	case key.Matches(k, r.keys.Left):
		r.walkAndFollow(core.Left)
	case key.Matches(k, r.keys.Right):
		r.walkAndFollow(core.Right)
	case key.Matches(k, r.keys.Restart):
		r.Restart()
	default:
		return nil
	}
	return r.Emit(ui.Changed)
}

func (r *Runner) walkAndFollow(dir core.Vec) {
	r.Walk(dir)
	r.Follow()
	r.MarkRefresh(true)
}

// Update reports an exit trigger under the actor, or a view scroll.
func (r *Runner) Update() *ui.Event {
	if t, ok := r.grid.TriggerAt(r.actor); ok {
		switch t.ID {
		case grid.ExitFinish:
			return r.Emit(ui.Ok)
		case grid.ExitBranchA:
			return r.EmitBranch(ui.BranchA)
		case grid.ExitBranchB:
			return r.EmitBranch(ui.BranchB)
		}
	}
	if r.Follow() {
		r.MarkRefresh(true)
		return r.Emit(ui.Changed)
	}
	return nil
}

// Resize recomputes the visible level area. The bottom row is kept for the
// status line when the screen has room for it.
func (r *Runner) Resize(area core.Rect) {
	r.setView(area.Size)
	r.MarkRefresh(true)
}

func (r *Runner) setView(screen core.Vec) {
	r.view = screen
	if screen.Y > 1 {
		r.view.Y--
	}
}

// Print draws the visible part of the level, the actor and the status line.
func (r *Runner) Print(ctx *ui.Context) error {
	if !r.NeedsRefresh() {
		return nil
	}
	d := ctx.Device()
	if d == nil {
		r.MarkRefresh(false)
		return nil
	}
	d.Clear()
	d.HideCursor()
	drawLevel(d, r.grid, r.corner, r.view)

	if p := r.actor.Sub(r.corner); core.NewRect(0, 0, r.view.X, r.view.Y).Contains(p) {
		ui.PutCell(d, p, actorGlyph, CellStyle(r.grid.At(r.actor)))
	}

	if w, h := d.Size(); h > r.view.Y {
		r.help.Width = w
		status := fmt.Sprintf("%s  moves: %d  ", r.name, r.moves)
		if r.name == "" {
			status = fmt.Sprintf("moves: %d  ", r.moves)
		}
		x := ui.DrawText(d, core.V(0, h-1), status, hudStyle)
		ui.DrawText(d, core.V(x, h-1), r.help.ShortHelpView(r.keys.ShortHelp()), hudStyle)
	}
	r.MarkRefresh(false)
	return nil
}

// drawLevel draws the cells of g that fall inside a view of the given size
// whose top-left cell is corner. Screen cells outside the level are left
// untouched.
func drawLevel(d ui.Device, g *grid.Grid, corner, view core.Vec) {
	for y := 0; y < view.Y; y++ {
		for x := 0; x < view.X; x++ {
			p := corner.Add(core.V(x, y))
			if !g.Contains(p) {
				continue
			}
			c := g.At(p)
			glyph := c.Glyph
			if c.Empty() {
				glyph = ' '
			}
			ui.PutCell(d, core.V(x, y), glyph, CellStyle(c))
		}
	}
}
