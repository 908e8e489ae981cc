package ui_test

import (
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/kiwi/internal/core"
	"github.com/vovakirdan/kiwi/internal/ui"
	"github.com/vovakirdan/kiwi/internal/ui/uitest"
)

// probe records what the runtime does to it. It finishes when it sees the
// key "q" or after finishAfter updates.
type probe struct {
	ui.Base
	inputs      []string
	updates     int
	prints      int
	resizes     []core.Rect
	finishAfter int
	printErr    error
	emitForeign bool
}

func newProbe(ctx *ui.Context) *probe {
	return &probe{Base: ui.NewBase(ctx)}
}

func (p *probe) Print(*ui.Context) error {
	p.prints++
	p.MarkRefresh(false)
	return p.printErr
}

func (p *probe) Input(_ *ui.Context, in ui.Input) *ui.Event {
	k, ok := in.(ui.Key)
	if !ok {
		return nil
	}
	p.inputs = append(p.inputs, k.String())
	if p.emitForeign {
		return &ui.Event{ID: p.ID() + 100, Kind: ui.Ok}
	}
	if k.String() == "q" {
		return p.Emit(ui.Ok)
	}
	return p.Emit(ui.Changed)
}

func (p *probe) Update() *ui.Event {
	p.updates++
	if p.finishAfter > 0 && p.updates >= p.finishAfter {
		return p.EmitBranch(ui.BranchB)
	}
	return nil
}

func (p *probe) Resize(area core.Rect) {
	p.resizes = append(p.resizes, area)
	p.Base.Resize(area)
}

func TestNextIDMonotonicNonZero(t *testing.T) {
	ctx := uitest.NewContext(nil, nil)
	prev := ui.ID(0)
	for i := 0; i < 100; i++ {
		id := ctx.NextID()
		if id == 0 {
			t.Fatal("NextID() returned zero")
		}
		if id <= prev {
			t.Fatalf("NextID() = %d after %d, expected increasing", id, prev)
		}
		prev = id
	}
}

func TestEventTerminal(t *testing.T) {
	tests := []struct {
		kind     ui.Kind
		expected bool
	}{
		{ui.Ok, true},
		{ui.Canceled, true},
		{ui.Result, true},
		{ui.Changed, false},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			ev := &ui.Event{ID: 1, Kind: tc.kind}
			if got := ev.Terminal(); got != tc.expected {
				t.Errorf("Terminal() = %v, expected %v", got, tc.expected)
			}
		})
	}

	var none *ui.Event
	if none.Terminal() || none.From(1) {
		t.Error("nil event should be neither terminal nor from any widget")
	}
}

func TestRunDeliversInputsInOrder(t *testing.T) {
	screen := uitest.NewScreen(40, 10)
	defer screen.Fini()

	script := uitest.NewScript(
		uitest.Keys("a", "b", "c"),
		nil,
		uitest.Keys("d", "q", "never"),
	)
	ctx := uitest.NewContext(screen, script)
	root := newProbe(ctx)

	if err := ctx.Run(root); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := []string{"a", "b", "c", "d", "q"}
	if len(root.inputs) != len(want) {
		t.Fatalf("inputs = %v, expected %v", root.inputs, want)
	}
	for i := range want {
		if root.inputs[i] != want[i] {
			t.Errorf("inputs[%d] = %q, expected %q", i, root.inputs[i], want[i])
		}
	}
	if len(root.resizes) == 0 || root.resizes[0] != core.NewRect(0, 0, 40, 10) {
		t.Errorf("first Resize = %v, expected full screen", root.resizes)
	}
	if root.prints < 2 {
		t.Errorf("prints = %d, expected an initial print and per-frame prints", root.prints)
	}
}

func TestRunStopsOnCtrlC(t *testing.T) {
	screen := uitest.NewScreen(20, 5)
	defer screen.Fini()

	script := uitest.NewScript(uitest.Keys("a", "ctrl+c", "b"))
	ctx := uitest.NewContext(screen, script)
	root := newProbe(ctx)

	if err := ctx.Run(root); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(root.inputs) != 1 {
		t.Errorf("inputs = %v, expected only the key before ctrl+c", root.inputs)
	}
}

func TestRunStopsOnRootUpdate(t *testing.T) {
	screen := uitest.NewScreen(20, 5)
	defer screen.Fini()

	script := uitest.NewScript(nil, nil, nil, nil, nil, nil, nil, nil)
	ctx := uitest.NewContext(screen, script)
	root := newProbe(ctx)
	root.finishAfter = 2

	if err := ctx.Run(root); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if root.updates != 2 {
		t.Errorf("updates = %d, expected 2", root.updates)
	}
	// Two polls per frame with no input, two frames.
	if script.Polls != 4 {
		t.Errorf("polls = %d, expected 4", script.Polls)
	}
}

func TestRunIgnoresForeignTerminalEvents(t *testing.T) {
	screen := uitest.NewScreen(20, 5)
	defer screen.Fini()

	script := uitest.NewScript(uitest.Keys("x", "y"))
	ctx := uitest.NewContext(screen, script)
	root := newProbe(ctx)
	root.emitForeign = true

	if err := ctx.Run(root); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(root.inputs) != 2 {
		t.Errorf("inputs = %v, expected both keys despite foreign Ok events", root.inputs)
	}
}

func TestRunPropagatesPrintError(t *testing.T) {
	screen := uitest.NewScreen(20, 5)
	defer screen.Fini()

	boom := errors.New("device gone")
	ctx := uitest.NewContext(screen, uitest.NewScript())
	root := newProbe(ctx)
	root.printErr = boom

	err := ctx.Run(root)
	if !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, expected %v", err, boom)
	}
	if root.prints != 1 {
		t.Errorf("prints = %d, expected no retry after failure", root.prints)
	}
}

// resizingScript changes the screen size when its first batch is taken.
type resizingScript struct {
	screen tcell.SimulationScreen
	polls  int
}

func (r *resizingScript) Poll(timeout time.Duration) (ui.Input, bool) {
	if timeout == 0 {
		return nil, false
	}
	r.polls++
	switch r.polls {
	case 1:
		r.screen.SetSize(30, 8)
		return nil, false
	case 2:
		return uitest.Key("q"), true
	}
	return uitest.Key("ctrl+c"), true
}

func TestRunResizeBreaksPolling(t *testing.T) {
	screen := uitest.NewScreen(20, 5)
	defer screen.Fini()

	script := &resizingScript{screen: screen}
	ctx := uitest.NewContext(screen, script)
	root := newProbe(ctx)

	if err := ctx.Run(root); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(root.resizes) != 2 {
		t.Fatalf("resizes = %v, expected initial and one change", root.resizes)
	}
	if root.resizes[1] != core.NewRect(0, 0, 30, 8) {
		t.Errorf("second Resize = %+v, expected 30x8", root.resizes[1])
	}
	// The resize ended the first frame's polling early: update ran before "q".
	if root.updates != 1 {
		t.Errorf("updates = %d, expected 1", root.updates)
	}
}

func TestForwardUpdate(t *testing.T) {
	ctx := uitest.NewContext(nil, nil)
	a, b := newProbe(ctx), newProbe(ctx)
	parent := &container{Base: ui.NewBase(ctx), kids: []ui.Widget{a, b}}

	if ev := ui.ForwardUpdate(parent); ev != nil {
		t.Errorf("ForwardUpdate() = %+v, expected nil", ev)
	}
	if a.updates != 1 || b.updates != 1 {
		t.Errorf("child updates = %d, %d; expected 1, 1", a.updates, b.updates)
	}
}

type container struct {
	ui.Base
	kids []ui.Widget
}

func (c *container) Print(*ui.Context) error { return nil }

func (c *container) Input(*ui.Context, ui.Input) *ui.Event { return nil }

func (c *container) Update() *ui.Event { return ui.ForwardUpdate(c) }

func (c *container) Children() []ui.Widget { return c.kids }

func TestKeyString(t *testing.T) {
	tests := []struct {
		key      ui.Key
		expected string
	}{
		{ui.KeyRune('a'), "a"},
		{ui.KeyRune('R'), "R"},
		{ui.Key{Code: tcell.KeyRune, Rune: 'r', Mod: tcell.ModShift}, "R"},
		{ui.KeyRune(' '), " "},
		{ui.Key{Code: tcell.KeyRune, Rune: 'x', Mod: tcell.ModAlt}, "alt+x"},
		{ui.KeyCode(tcell.KeyUp), "up"},
		{ui.KeyCode(tcell.KeyEnter), "enter"},
		{ui.KeyCode(tcell.KeyEscape), "esc"},
		{ui.KeyCode(tcell.KeyBackspace), "backspace"},
		{ui.KeyCode(tcell.KeyBackspace2), "backspace"},
		{ui.KeyCode(tcell.KeyF8), "f8"},
		{ui.KeyCode(tcell.KeyF12), "f12"},
		{ui.Key{Code: tcell.KeyF8, Mod: tcell.ModShift}, "shift+f8"},
		{ui.KeyCode(tcell.KeyF20), "shift+f8"},
		{ui.KeyCode(tcell.KeyCtrlC), "ctrl+c"},
		{ui.Key{Code: tcell.KeyCtrlC, Mod: tcell.ModCtrl}, "ctrl+c"},
		{ui.Key{Code: tcell.KeyLeft, Mod: tcell.ModCtrl}, "ctrl+left"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			if got := tc.key.String(); got != tc.expected {
				t.Errorf("String() = %q, expected %q", got, tc.expected)
			}
		})
	}

	if !ui.IsInterrupt(ui.KeyCode(tcell.KeyCtrlC)) {
		t.Error("ctrl+c should be an interrupt")
	}
	if ui.IsInterrupt(ui.Click{}) {
		t.Error("a click is not an interrupt")
	}
}

func TestDrawText(t *testing.T) {
	screen := uitest.NewScreen(10, 3)
	defer screen.Fini()

	n := ui.DrawText(screen, core.V(6, 1), "hello", tcell.StyleDefault)
	if n != 4 {
		t.Errorf("DrawText() = %d columns, expected 4 (clipped)", n)
	}
	if got := uitest.Row(screen, 1); got != "      hell" {
		t.Errorf("row = %q", got)
	}

	if n := ui.DrawText(screen, core.V(0, 5), "off", tcell.StyleDefault); n != 0 {
		t.Errorf("DrawText() below the screen = %d, expected 0", n)
	}

	ui.DrawText(screen, core.V(0, 2), "日本x", tcell.StyleDefault)
	r, _, _, _ := screen.GetContent(2, 2)
	if r != '本' {
		t.Errorf("wide rune at column 2 = %q, expected 本", r)
	}
}

func TestDrawBoxAndFill(t *testing.T) {
	screen := uitest.NewScreen(6, 4)
	defer screen.Fini()

	ui.FillRect(screen, core.NewRect(0, 0, 6, 4), '.', tcell.StyleDefault)
	ui.DrawBox(screen, core.NewRect(1, 0, 4, 3), tcell.StyleDefault)

	want := []string{
		".┌──┐.",
		".│..│.",
		".└──┘.",
		"......",
	}
	for y, line := range want {
		if got := uitest.Row(screen, y); got != line {
			t.Errorf("row %d = %q, expected %q", y, got, line)
		}
	}

	ui.ClearLine(screen, 1, tcell.StyleDefault)
	if got := uitest.Row(screen, 1); got != "      " {
		t.Errorf("cleared row = %q", got)
	}
}

func TestMessageBox(t *testing.T) {
	screen := uitest.NewScreen(30, 9)
	defer screen.Fini()

	box := ui.MessageBox(screen, "Saved!", tcell.StyleDefault)
	if box.Width() != 10 || box.Height() != 3 {
		t.Errorf("box = %+v, expected 10x3", box)
	}
	if !uitest.Contains(screen, "Saved!") {
		t.Error("message not drawn")
	}
}

func TestTerminalPollsSimulatedKeys(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term, err := ui.NewTerminal(screen)
	if err != nil {
		t.Fatalf("NewTerminal() error: %v", err)
	}
	defer term.Close()

	screen.InjectKey(tcell.KeyRune, 'w', tcell.ModNone)
	screen.InjectKey(tcell.KeyF8, 0, tcell.ModShift)

	in, ok := term.Poll(time.Second)
	if !ok {
		t.Fatal("Poll() timed out")
	}
	if k, _ := in.(ui.Key); k.String() != "w" {
		t.Errorf("first input = %v, expected w", in)
	}

	in, ok = term.Poll(time.Second)
	if !ok {
		t.Fatal("second Poll() timed out")
	}
	if k, _ := in.(ui.Key); k.String() != "shift+f8" {
		t.Errorf("second input = %v, expected shift+f8", in)
	}

	if _, ok := term.Poll(0); ok {
		t.Error("Poll(0) on an empty queue should return nothing")
	}

	if err := term.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
	if err := term.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
}
