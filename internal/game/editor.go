package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/kiwi/internal/core"
	"github.com/vovakirdan/kiwi/internal/grid"
	"github.com/vovakirdan/kiwi/internal/levels"
	"github.com/vovakirdan/kiwi/internal/ui"
)

// ErrNoPath is returned by Save when the editor has no file to write to.
var ErrNoPath = errors.New("editor: no save path")

// Mode is the editor's input mode.
type Mode int

const (
	ModeView Mode = iota
	ModeWriteText
	ModePaint
	ModeSetMarkers
	ModeErrorMessage
	ModePlay
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeView:
		return "View"
	case ModeWriteText:
		return "WriteText"
	case ModePaint:
		return "Paint"
	case ModeSetMarkers:
		return "SetMarkers"
	case ModeErrorMessage:
		return "ErrorMessage"
	case ModePlay:
		return "Play"
	default:
		return "Unknown"
	}
}

// DefaultEditorMargin is the distance kept between the cursor and the view
// edges.
const DefaultEditorMargin = 2

// statusRows is the height of the status bar under the level view.
const statusRows = 2

// EditorOptions configure a new editor.
type EditorOptions struct {
	CanvasSize   core.Vec // Size of a new level
	Margin       int      // Cursor follow margin
	RunnerMargin int      // Actor follow margin in test runs
}

// DefaultEditorOptions returns a 250x250 canvas and the default margins.
func DefaultEditorOptions() EditorOptions {
	return EditorOptions{
		CanvasSize:   core.V(250, 250),
		Margin:       DefaultEditorMargin,
		RunnerMargin: DefaultRunnerMargin,
	}
}

// Editor edits a level in place. It is a modal widget: keys are routed by
// mode, and test runs are delegated to an embedded Runner playing a copy of
// the level.
type Editor struct {
	ui.Base

	logger *log.Logger
	path   string
	grid   *grid.Grid
	runner *Runner

	mode   Mode
	cursor core.Vec
	corner core.Vec
	view   core.Vec
	wrap   core.Vec
	margin int
	preset PaintPreset

	showTriggers bool
	selecting    bool
	selection    core.Rect

	message string // ErrorMessage overlay text
	notice  string // One-shot status bar text

	keys EditorKeyMap
	help help.Model
}

// NewEditor opens the level at path. A missing file starts a blank canvas
// that is written to path on save; an empty path starts a canvas that cannot
// be saved.
func NewEditor(ctx *ui.Context, path string, opts EditorOptions) (*Editor, error) {
	g, err := openCanvas(path, opts.CanvasSize)
	if err != nil {
		return nil, err
	}

	e := &Editor{
		Base:         ui.NewBase(ctx),
		logger:       ctx.Logger(),
		path:         path,
		grid:         g,
		runner:       NewRunner(ctx),
		margin:       core.Max(opts.Margin, 0),
		preset:       PaintWhiteNormal,
		showTriggers: true,
		selection:    core.NewRect(0, 0, 1, 1),
		keys:         DefaultEditorKeyMap(),
		help:         newHelp(),
	}
	e.runner.SetMargin(opts.RunnerMargin)
	e.setView(ctx.Size())
	return e, nil
}

func openCanvas(path string, size core.Vec) (*grid.Grid, error) {
	if size.X <= 0 || size.Y <= 0 {
		size = DefaultEditorOptions().CanvasSize
	}
	if path == "" {
		return grid.NewBlank(size.X, size.Y), nil
	}
	// Anything but a regular file starts blank; a bad path surfaces on save.
	if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() {
		return grid.NewBlank(size.X, size.Y), nil
	}
	return levels.Load(path)
}

// Grid returns the level being edited.
func (e *Editor) Grid() *grid.Grid { return e.grid }

// Path returns the file the level is saved to.
func (e *Editor) Path() string { return e.path }

// Mode returns the current input mode.
func (e *Editor) Mode() Mode { return e.mode }

// Cursor returns the cursor position in level coordinates.
func (e *Editor) Cursor() core.Vec { return e.cursor }

// Corner returns the top-left level cell of the view.
func (e *Editor) Corner() core.Vec { return e.corner }

// Preset returns the active paint preset.
func (e *Editor) Preset() PaintPreset { return e.preset }

// Selection returns the selected rectangle and whether it is still being
// dragged.
func (e *Editor) Selection() (core.Rect, bool) { return e.selection, e.selecting }

// Message returns the text of the message overlay.
func (e *Editor) Message() string { return e.message }

// Runner returns the runner used for test runs.
func (e *Editor) Runner() *Runner { return e.runner }

// Children returns the test runner.
func (e *Editor) Children() []ui.Widget { return []ui.Widget{e.runner} }

// Save writes the level to the editor's path.
func (e *Editor) Save() error {
	if e.path == "" {
		return ErrNoPath
	}
	return levels.Save(e.path, e.grid)
}

// Input routes one input by mode. The message overlay swallows the next key;
// test runs get every key except esc.
func (e *Editor) Input(ctx *ui.Context, in ui.Input) *ui.Event {
	e.MarkRefresh(true)

	switch e.mode {
	case ModeErrorMessage:
		if _, ok := in.(ui.Key); !ok {
			return nil
		}
		e.mode = ModeView
		e.message = ""
		return e.Emit(ui.Changed)
	case ModePlay:
		if k, ok := in.(ui.Key); ok && key.Matches(k, e.keys.Back) {
			e.stopPlay()
			return e.Emit(ui.Changed)
		}
		return e.fromRunner(e.runner.Input(ctx, in))
	}

	switch in := in.(type) {
	case ui.Click:
		e.cursor = e.corner.Add(in.Pos)
		e.follow()
		return e.Emit(ui.Changed)
	case ui.Key:
		e.notice = ""
		if e.globalKey(in) || e.panKey(in) || e.toggleKey(in) || e.modeKey(in) {
			return e.Emit(ui.Changed)
		}
	}
	return nil
}

// fromRunner turns runner events into editor events. A finished test run
// returns to editing.
func (e *Editor) fromRunner(ev *ui.Event) *ui.Event {
	if ev.Terminal() {
		e.logger.Debug("test run finished", "kind", ev.Kind, "branch", ev.Branch, "moves", e.runner.Moves())
		e.stopPlay()
		return e.Emit(ui.Changed)
	}
	if ev != nil {
		e.MarkRefresh(true)
		return e.Emit(ui.Changed)
	}
	return nil
}

func (e *Editor) globalKey(k ui.Key) bool {
	switch {
	case key.Matches(k, e.keys.CursorUp):
		e.moveCursor(core.Up)
	case key.Matches(k, e.keys.CursorDown):
		e.moveCursor(core.Down)
	case key.Matches(k, e.keys.CursorLeft):
		e.moveCursor(core.Left)
	case key.Matches(k, e.keys.CursorRight):
		e.moveCursor(core.Right)
	case key.Matches(k, e.keys.View):
		e.mode = ModeView
	case key.Matches(k, e.keys.Text):
		e.mode = ModeWriteText
		e.wrap = e.cursor
	case key.Matches(k, e.keys.Wrap):
		e.wrap = e.cursor
	case key.Matches(k, e.keys.Paint):
		e.mode = ModePaint
	case key.Matches(k, e.keys.Markers):
		e.mode = ModeSetMarkers
	case key.Matches(k, e.keys.Play):
		e.play(false)
	case key.Matches(k, e.keys.PlayHere):
		e.play(true)
	case key.Matches(k, e.keys.Save):
		e.save()
	default:
		return false
	}
	return true
}

func (e *Editor) panKey(k ui.Key) bool {
	if e.mode == ModeWriteText || e.mode == ModePaint {
		return false
	}
	switch {
	case key.Matches(k, e.keys.PanUp):
		e.corner = e.corner.Add(core.Up)
	case key.Matches(k, e.keys.PanDown):
		e.corner = e.corner.Add(core.Down)
	case key.Matches(k, e.keys.PanLeft):
		e.corner = e.corner.Add(core.Left)
	case key.Matches(k, e.keys.PanRight):
		e.corner = e.corner.Add(core.Right)
	default:
		return false
	}
	return true
}

func (e *Editor) toggleKey(k ui.Key) bool {
	if e.mode == ModeWriteText || !key.Matches(k, e.keys.ToggleTriggers) {
		return false
	}
	e.showTriggers = !e.showTriggers
	return true
}

func (e *Editor) modeKey(k ui.Key) bool {
	switch e.mode {
	case ModeView:
		return e.viewKey(k)
	case ModeWriteText:
		return e.textKey(k)
	case ModePaint:
		return e.paintKey(k)
	case ModeSetMarkers:
		return e.markerKey(k)
	}
	return false
}

func (e *Editor) viewKey(k ui.Key) bool {
	switch {
	case key.Matches(k, e.keys.Edit):
		e.mode = ModeWriteText
		e.wrap = e.cursor
	case key.Matches(k, e.keys.Resize):
		if e.grid.Resize(e.cursor) {
			e.logger.Info("level resized", "size", e.grid.Size())
		}
	case !e.selecting && key.Matches(k, e.keys.Select):
		e.selecting = true
		e.selection = core.Rect{Pos: e.cursor, Size: core.V(1, 1)}
	case e.selecting && key.Matches(k, e.keys.Commit):
		e.selecting = false
		e.selection = e.selection.Normalized()
	case key.Matches(k, e.keys.Copy):
		CopyRect(e.grid, e.selection, e.cursor)
	case key.Matches(k, e.keys.Move):
		MoveRect(e.grid, e.selection, e.cursor, e.preset)
	case key.Matches(k, e.keys.Fill):
		FillRect(e.grid, e.selection)
	default:
		return false
	}
	return true
}

func (e *Editor) textKey(k ui.Key) bool {
	switch {
	case key.Matches(k, e.keys.Newline):
		e.cursor = core.V(e.wrap.X, e.cursor.Y+1)
	case key.Matches(k, e.keys.Back):
		e.mode = ModeView
	case key.Matches(k, e.keys.Erase):
		e.cursor = e.cursor.Add(core.Left)
		e.grid.SetGlyph(e.cursor, 0)
	case printable(k):
		e.grid.SetGlyph(e.cursor, k.Rune)
		e.cursor = e.cursor.Add(core.Right)
	default:
		return false
	}
	return true
}

// printable reports whether k types a character: a non-control rune with
// no modifier other than shift.
func printable(k ui.Key) bool {
	if k.Code != tcell.KeyRune || unicode.IsControl(k.Rune) {
		return false
	}
	return k.Mod == tcell.ModNone || k.Mod == tcell.ModShift
}

func (e *Editor) paintKey(k ui.Key) bool {
	switch {
	case key.Matches(k, e.keys.Back):
		e.mode = ModeView
	case key.Matches(k, e.keys.PaintUp):
		e.moveAndPaint(core.Up)
	case key.Matches(k, e.keys.PaintDown):
		e.moveAndPaint(core.Down)
	case key.Matches(k, e.keys.PaintLeft):
		e.moveAndPaint(core.Left)
	case key.Matches(k, e.keys.PaintRight):
		e.moveAndPaint(core.Right)
	case key.Matches(k, e.keys.Presets):
		e.preset = presetKeys[k.String()]
	case key.Matches(k, e.keys.PaintHere):
		PaintCell(e.grid, e.cursor, e.preset)
	default:
		return false
	}
	return true
}

func (e *Editor) markerKey(k ui.Key) bool {
	switch {
	case key.Matches(k, e.keys.Back):
		e.mode = ModeView
	case key.Matches(k, e.keys.SetStart):
		e.grid.Start = e.cursor
	case key.Matches(k, e.keys.ClearTrigger):
		e.grid.RemoveTriggersAt(e.cursor)
	case key.Matches(k, e.keys.ExitA):
		e.grid.PlaceTrigger(e.cursor, grid.ExitBranchA)
	case key.Matches(k, e.keys.ExitB):
		e.grid.PlaceTrigger(e.cursor, grid.ExitBranchB)
	case key.Matches(k, e.keys.Finish):
		e.grid.PlaceTrigger(e.cursor, grid.ExitFinish)
	default:
		return false
	}
	return true
}

func (e *Editor) moveCursor(dir core.Vec) {
	e.cursor = e.cursor.Add(dir)
	e.follow()
}

func (e *Editor) moveAndPaint(dir core.Vec) {
	e.moveCursor(dir)
	PaintCell(e.grid, e.cursor, e.preset)
}

func (e *Editor) follow() bool {
	return Follow(&e.corner, e.cursor, e.view, e.margin)
}

// play starts a test run on a copy of the level, from the level start or
// from the cursor.
func (e *Editor) play(fromCursor bool) {
	e.runner.Load(e.grid.Clone())
	if fromCursor {
		e.runner.SetActor(e.cursor)
	}
	if e.path != "" {
		e.runner.SetName(filepath.Base(e.path))
	}
	e.mode = ModePlay
	e.logger.Debug("test run started", "from", e.runner.Actor())
}

func (e *Editor) stopPlay() {
	e.mode = ModeView
	e.MarkRefresh(true)
}

func (e *Editor) save() {
	err := e.Save()
	switch {
	case errors.Is(err, ErrNoPath):
		e.notice = "nothing to save to: start the editor with a file path"
		e.logger.Warn("save skipped", "err", err)
	case err != nil:
		e.showMessage("Failed to save: " + err.Error())
		e.logger.Error("save failed", "path", e.path, "err", err)
	default:
		e.showMessage("Saved!")
		e.logger.Info("level saved", "path", e.path)
	}
}

func (e *Editor) showMessage(msg string) {
	e.mode = ModeErrorMessage
	e.message = msg
}

// Update ticks the test run, or stretches a live selection to the cursor.
func (e *Editor) Update() *ui.Event {
	switch e.mode {
	case ModePlay:
		return e.fromRunner(e.runner.Update())
	case ModeView:
		if e.selecting && e.selection.BottomRight() != e.cursor {
			e.selection.Size = e.cursor.Sub(e.selection.Pos).Add(core.V(1, 1))
			e.MarkRefresh(true)
		}
	}
	return nil
}

// Resize recomputes the level view and forwards the area to the runner.
func (e *Editor) Resize(area core.Rect) {
	e.setView(area.Size)
	e.runner.Resize(area)
	e.MarkRefresh(true)
}

func (e *Editor) setView(screen core.Vec) {
	e.view = screen
	if screen.Y > statusRows {
		e.view.Y -= statusRows
	}
}

// visible returns the screen position of level cell p and whether it is
// inside the level view.
func (e *Editor) visible(p core.Vec) (core.Vec, bool) {
	s := p.Sub(e.corner)
	return s, core.NewRect(0, 0, e.view.X, e.view.Y).Contains(s)
}

// Print draws the test run, or the level with its markers and the status
// bar. The message overlay is drawn on top of the level.
func (e *Editor) Print(ctx *ui.Context) error {
	if e.mode == ModePlay {
		if e.NeedsRefresh() {
			e.runner.MarkRefresh(true)
			e.MarkRefresh(false)
		}
		return e.runner.Print(ctx)
	}
	if !e.NeedsRefresh() {
		return nil
	}
	d := ctx.Device()
	if d == nil {
		e.MarkRefresh(false)
		return nil
	}

	d.Clear()
	drawLevel(d, e.grid, e.corner, e.view)
	e.printFrame(d)
	if e.selecting {
		e.printSelection(d)
	}
	if e.showTriggers {
		e.printMarker(d, e.grid.Start, startGlyph, tcell.ColorGreen)
		for _, t := range e.grid.Triggers {
			e.printMarker(d, t.Pos, triggerGlyph, tcell.ColorRed)
		}
	}
	e.printStatus(d)

	if e.mode == ModeErrorMessage {
		ui.MessageBox(d, e.message+"\n\nPress any key to continue", messageStyle)
		d.HideCursor()
	} else if p, ok := e.visible(e.cursor); ok {
		d.ShowCursor(p.X, p.Y)
	} else {
		d.HideCursor()
	}
	e.MarkRefresh(false)
	return nil
}

// printFrame marks the cells just outside the level bounds.
func (e *Editor) printFrame(d ui.Device) {
	frame := e.grid.Bounds().Grow(1)
	for x := frame.Left(); x <= frame.Right(); x++ {
		e.putLevelCell(d, core.V(x, frame.Top()), ' ', frameStyle)
		e.putLevelCell(d, core.V(x, frame.Bottom()), ' ', frameStyle)
	}
	for y := frame.Top(); y <= frame.Bottom(); y++ {
		e.putLevelCell(d, core.V(frame.Left(), y), ' ', frameStyle)
		e.putLevelCell(d, core.V(frame.Right(), y), ' ', frameStyle)
	}
}

func (e *Editor) printSelection(d ui.Device) {
	r := e.selection.Normalized()
	for x := r.Left(); x <= r.Right(); x++ {
		e.putLevelCell(d, core.V(x, r.Top()), selectGlyph, frameStyle)
		e.putLevelCell(d, core.V(x, r.Bottom()), selectGlyph, frameStyle)
	}
	for y := r.Top(); y <= r.Bottom(); y++ {
		e.putLevelCell(d, core.V(r.Left(), y), selectGlyph, frameStyle)
		e.putLevelCell(d, core.V(r.Right(), y), selectGlyph, frameStyle)
	}
}

func (e *Editor) printMarker(d ui.Device, p core.Vec, glyph rune, fg tcell.Color) {
	e.putLevelCell(d, p, glyph, markerStyle(e.grid.At(p), fg))
}

func (e *Editor) putLevelCell(d ui.Device, p core.Vec, glyph rune, style tcell.Style) {
	if s, ok := e.visible(p); ok {
		ui.PutCell(d, s, glyph, style)
	}
}

// printStatus draws the mode line and the key hints below the level view.
func (e *Editor) printStatus(d ui.Device) {
	w, h := d.Size()
	if h <= statusRows {
		return
	}
	modeRow, helpRow := h-2, h-1
	ui.ClearLine(d, modeRow, statusStyle)
	ui.ClearLine(d, helpRow, statusStyle)

	status := fmt.Sprintf("mode: %s  cursor: %d,%d  size: %dx%d",
		e.mode, e.cursor.X, e.cursor.Y, e.grid.Width(), e.grid.Height())
	switch e.mode {
	case ModePaint:
		status += "  color: " + e.preset.String()
	case ModeSetMarkers:
		if t, ok := e.grid.TriggerAt(e.cursor); ok {
			status += "  here: " + t.ID
		}
		if e.grid.Start == e.cursor {
			status += "  here: start"
		}
	}
	x := ui.DrawText(d, core.V(0, modeRow), status, statusStyle)
	if e.notice != "" {
		ui.DrawText(d, core.V(x+2, modeRow), e.notice, noticeStyle)
	}

	e.help.Width = w
	ui.DrawText(d, core.V(0, helpRow), e.help.ShortHelpView(e.keys.HelpFor(e.mode)), statusStyle)
}
