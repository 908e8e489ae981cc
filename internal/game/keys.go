package game

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// RunnerKeyMap defines the key bindings of a level run.
type RunnerKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Restart key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunnerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Restart}
}

// FullHelp returns key bindings for the full help view.
func (k RunnerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Restart},
	}
}

// DefaultRunnerKeyMap returns default key bindings.
func DefaultRunnerKeyMap() RunnerKeyMap {
	return RunnerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("w", "up"),
			key.WithHelp("w/up", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("s", "down"),
			key.WithHelp("s/down", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("a", "left"),
			key.WithHelp("a/left", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "right"),
			key.WithHelp("d/right", "right"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
	}
}

// EditorKeyMap defines the key bindings of the level editor. Some keys are
// bound more than once; which binding applies depends on the editor mode.
type EditorKeyMap struct {
	// Global
	CursorUp    key.Binding
	CursorDown  key.Binding
	CursorLeft  key.Binding
	CursorRight key.Binding
	View        key.Binding
	Text        key.Binding
	Wrap        key.Binding
	Paint       key.Binding
	Markers     key.Binding
	Play        key.Binding
	PlayHere    key.Binding
	Save        key.Binding

	// Everywhere except text and paint
	PanUp    key.Binding
	PanDown  key.Binding
	PanLeft  key.Binding
	PanRight key.Binding

	// Everywhere except text
	ToggleTriggers key.Binding

	// View
	Edit   key.Binding
	Resize key.Binding
	Select key.Binding
	Commit key.Binding
	Copy   key.Binding
	Move   key.Binding
	Fill   key.Binding

	// WriteText
	Newline key.Binding
	Erase   key.Binding

	// Shared by WriteText, Paint and SetMarkers
	Back key.Binding

	// Paint
	PaintUp    key.Binding
	PaintDown  key.Binding
	PaintLeft  key.Binding
	PaintRight key.Binding
	PaintHere  key.Binding
	Presets    key.Binding

	// SetMarkers
	SetStart     key.Binding
	ClearTrigger key.Binding
	ExitA        key.Binding
	ExitB        key.Binding
	Finish       key.Binding
}

// DefaultEditorKeyMap returns default key bindings.
func DefaultEditorKeyMap() EditorKeyMap {
	return EditorKeyMap{
		CursorUp:    key.NewBinding(key.WithKeys("up"), key.WithHelp("arrows", "cursor")),
		CursorDown:  key.NewBinding(key.WithKeys("down")),
		CursorLeft:  key.NewBinding(key.WithKeys("left")),
		CursorRight: key.NewBinding(key.WithKeys("right")),
		View:        key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "view")),
		Text:        key.NewBinding(key.WithKeys("f3"), key.WithHelp("f3", "text")),
		Wrap:        key.NewBinding(key.WithKeys("f4"), key.WithHelp("f4", "corner")),
		Paint:       key.NewBinding(key.WithKeys("f5"), key.WithHelp("f5", "paint")),
		Markers:     key.NewBinding(key.WithKeys("f6"), key.WithHelp("f6", "markers")),
		Play:        key.NewBinding(key.WithKeys("f8"), key.WithHelp("f8", "test")),
		PlayHere:    key.NewBinding(key.WithKeys("shift+f8"), key.WithHelp("S-f8", "test here")),
		Save:        key.NewBinding(key.WithKeys("f9"), key.WithHelp("f9", "save")),

		PanUp:    key.NewBinding(key.WithKeys("w"), key.WithHelp("wasd", "pan")),
		PanDown:  key.NewBinding(key.WithKeys("s")),
		PanLeft:  key.NewBinding(key.WithKeys("a")),
		PanRight: key.NewBinding(key.WithKeys("d")),

		ToggleTriggers: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "triggers")),

		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "text")),
		Resize: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "resize")),
		Select: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "select")),
		Commit: key.NewBinding(key.WithKeys("enter", "m", "esc"), key.WithHelp("m/enter", "done")),
		Copy:   key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "copy here")),
		Move:   key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "move here")),
		Fill:   key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "fill")),

		Newline: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next line")),
		Erase:   key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "erase")),

		Back: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),

		PaintUp:    key.NewBinding(key.WithKeys("w"), key.WithHelp("wasd", "paint along")),
		PaintDown:  key.NewBinding(key.WithKeys("s")),
		PaintLeft:  key.NewBinding(key.WithKeys("a")),
		PaintRight: key.NewBinding(key.WithKeys("d")),
		PaintHere:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "paint here")),
		Presets:    key.NewBinding(key.WithKeys("z", "x", "c", "v", "b", "n", "m"), key.WithHelp("zxcvbnm", "colors")),

		SetStart:     key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "start")),
		ClearTrigger: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "clear")),
		ExitA:        key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "exit1")),
		ExitB:        key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "exit2")),
		Finish:       key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "exit0")),
	}
}

// HelpFor returns the bindings shown in the status bar for a mode.
func (k EditorKeyMap) HelpFor(mode Mode) []key.Binding {
	switch mode {
	case ModeWriteText:
		return []key.Binding{k.Newline, k.Erase, k.Back, k.Wrap}
	case ModePaint:
		return []key.Binding{k.Presets, k.PaintHere, k.PaintUp, k.Back}
	case ModeSetMarkers:
		return []key.Binding{k.SetStart, k.Finish, k.ExitA, k.ExitB, k.ClearTrigger, k.ToggleTriggers, k.Back}
	default:
		return []key.Binding{
			k.CursorUp, k.View, k.Text, k.Wrap, k.Paint, k.Markers, k.Play, k.PlayHere, k.Save,
			k.PanUp, k.ToggleTriggers, k.Resize, k.Select, k.Copy, k.Move, k.Fill,
		}
	}
}

// newHelp returns a help model with unstyled output. Help text is drawn
// cell by cell, so it must not contain escape sequences.
func newHelp() help.Model {
	plain := lipgloss.NewStyle()
	h := help.New()
	h.Styles = help.Styles{
		Ellipsis:       plain,
		ShortKey:       plain,
		ShortDesc:      plain,
		ShortSeparator: plain,
		FullKey:        plain,
		FullDesc:       plain,
		FullSeparator:  plain,
	}
	h.ShortSeparator = "  "
	return h
}
