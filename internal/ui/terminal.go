package ui

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"
)

// ErrNotTerminal is returned by OpenTerminal when stdin or stdout is not a
// terminal.
var ErrNotTerminal = errors.New("not a terminal")

// Terminal owns the tcell screen for the lifetime of the program: raw mode,
// alternate screen, mouse capture and the input pump. Open it once and
// defer Close.
type Terminal struct {
	screen tcell.Screen
	events chan tcell.Event
	quit   chan struct{}
	done   chan struct{}
	once   sync.Once
}

// OpenTerminal takes over the controlling terminal.
func OpenTerminal() (*Terminal, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return nil, ErrNotTerminal
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: create screen: %w", err)
	}
	return NewTerminal(screen)
}

// NewTerminal initializes screen and starts the input pump. Tests pass a
// tcell simulation screen.
func NewTerminal(screen tcell.Screen) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("terminal: init screen: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault)
	screen.EnableMouse(tcell.MouseButtonEvents)
	screen.HideCursor()
	screen.Clear()

	t := &Terminal{
		screen: screen,
		events: make(chan tcell.Event, 100),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go t.pump()
	return t, nil
}

// pump forwards screen events until the screen is finalized.
func (t *Terminal) pump() {
	defer close(t.done)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.quit:
			return
		}
	}
}

// Screen returns the underlying tcell screen. It satisfies Device.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// Poll implements InputSource. Resize events resynchronize the screen and
// are otherwise ignored; the run loop notices size changes by querying.
func (t *Terminal) Poll(timeout time.Duration) (Input, bool) {
	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		var ev tcell.Event
		if deadline == nil {
			select {
			case ev = <-t.events:
			default:
				return nil, false
			}
		} else {
			select {
			case ev = <-t.events:
			case <-deadline:
				return nil, false
			}
		}
		if ev == nil {
			return nil, false
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			t.screen.Sync()
			continue
		}
		if in, ok := convertEvent(ev); ok {
			return in, true
		}
	}
}

// Close restores the terminal. It is safe to call more than once.
func (t *Terminal) Close() error {
	t.once.Do(func() {
		close(t.quit)
		t.screen.Fini()
		<-t.done
	})
	return nil
}
