// Package ui is the widget runtime: identity, events, the input poll loop
// and the terminal device. Widgets form a tree; raw inputs go to the root,
// which routes them to its children, and results travel back up as events
// tagged with the emitting widget's ID.
package ui

import "github.com/vovakirdan/kiwi/internal/core"

// ID identifies a widget. IDs are non-zero and only compared for equality.
type ID uint64

// Kind is the type of a widget event.
type Kind int

const (
	Ok Kind = iota
	Canceled
	Result
	Changed
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Ok:
		return "Ok"
	case Canceled:
		return "Canceled"
	case Result:
		return "Result"
	case Changed:
		return "Changed"
	default:
		return "Unknown"
	}
}

// Branch is the payload of a Result event: which of two alternative outcomes
// was reached.
type Branch int

const (
	BranchNone Branch = iota
	BranchA
	BranchB
)

// String returns a human-readable name for the branch.
func (b Branch) String() string {
	switch b {
	case BranchA:
		return "A"
	case BranchB:
		return "B"
	default:
		return "none"
	}
}

// Event is the outcome of handling an input or an update tick.
// A nil *Event means nothing happened.
type Event struct {
	ID     ID
	Kind   Kind
	Branch Branch // Only set for Result
}

// Terminal reports whether the event ends the emitting widget's run.
func (e *Event) Terminal() bool {
	if e == nil {
		return false
	}
	return e.Kind == Ok || e.Kind == Canceled || e.Kind == Result
}

// From reports whether the event was emitted by the widget with the given ID.
func (e *Event) From(id ID) bool {
	return e != nil && e.ID == id
}

// Widget is a node in the UI tree.
type Widget interface {
	ID() ID
	// Print renders the widget if it needs refreshing, then clears the flag.
	Print(ctx *Context) error
	// Input handles one raw input.
	Input(ctx *Context, in Input) *Event
	// Update is called once per frame after input processing.
	Update() *Event
	Children() []Widget
	MarkRefresh(dirty bool)
	NeedsRefresh() bool
	Resize(area core.Rect)
}

// Base implements the bookkeeping shared by every widget. Embed it and call
// NewBase from the constructor.
type Base struct {
	id    ID
	dirty bool
}

// NewBase allocates an ID from ctx. New widgets start dirty.
func NewBase(ctx *Context) Base {
	return Base{id: ctx.NextID(), dirty: true}
}

// ID returns the widget's ID.
func (b *Base) ID() ID { return b.id }

// MarkRefresh sets the dirty flag.
func (b *Base) MarkRefresh(dirty bool) { b.dirty = dirty }

// NeedsRefresh reports whether the widget must be redrawn.
func (b *Base) NeedsRefresh() bool { return b.dirty }

// Resize marks the widget dirty.
func (b *Base) Resize(core.Rect) { b.dirty = true }

// Children returns no children.
func (b *Base) Children() []Widget { return nil }

// Emit creates an event of the given kind tagged with this widget's ID.
func (b *Base) Emit(kind Kind) *Event {
	return &Event{ID: b.id, Kind: kind}
}

// EmitBranch creates a Result event carrying branch.
func (b *Base) EmitBranch(branch Branch) *Event {
	return &Event{ID: b.id, Kind: Result, Branch: branch}
}

// ForwardUpdate ticks every child of w and discards their events.
// It is the default Update for container widgets.
func ForwardUpdate(w Widget) *Event {
	for _, child := range w.Children() {
		child.Update()
	}
	return nil
}

// ShouldExit reports whether ev ends a run rooted at the widget with rootID.
func ShouldExit(rootID ID, ev *Event) bool {
	return ev.From(rootID) && ev.Terminal()
}
