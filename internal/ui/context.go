package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/kiwi/internal/core"
)

// Device is the drawing surface widgets print to. tcell.Screen satisfies it.
type Device interface {
	Size() (width, height int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Clear()
	Show()
	ShowCursor(x, y int)
	HideCursor()
}

// DefaultSize is reported by a context without a device.
var DefaultSize = core.V(80, 24)

// Options tune the input poll loop.
type Options struct {
	PollTimeout time.Duration // Wait per poll attempt
	PollRetries int           // Empty polls before a forced update and redraw
}

// DefaultOptions returns 25 polls of 100ms: widgets get an Update at least
// every 2.5 seconds without input.
func DefaultOptions() Options {
	return Options{
		PollTimeout: 100 * time.Millisecond,
		PollRetries: 25,
	}
}

// Context owns the device, the input source and the ID counter for one run.
// All widget calls happen on the goroutine that calls Run.
type Context struct {
	device Device
	input  InputSource
	logger *log.Logger
	opts   Options
	nextID ID
}

// NewContext creates a runtime context. A nil logger discards output; zero
// options fields take their defaults.
func NewContext(device Device, input InputSource, logger *log.Logger, opts Options) *Context {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	def := DefaultOptions()
	if opts.PollTimeout <= 0 {
		opts.PollTimeout = def.PollTimeout
	}
	if opts.PollRetries <= 0 {
		opts.PollRetries = def.PollRetries
	}
	return &Context{
		device: device,
		input:  input,
		logger: logger,
		opts:   opts,
		nextID: 1,
	}
}

// NextID returns a fresh widget ID.
func (c *Context) NextID() ID {
	id := c.nextID
	c.nextID++
	return id
}

// Device returns the drawing surface.
func (c *Context) Device() Device {
	return c.device
}

// Logger returns the context logger.
func (c *Context) Logger() *log.Logger {
	return c.logger
}

// Options returns the poll loop settings.
func (c *Context) Options() Options {
	return c.opts
}

// Size returns the current device size.
func (c *Context) Size() core.Vec {
	if c.device == nil {
		return DefaultSize
	}
	w, h := c.device.Size()
	return core.V(w, h)
}

// Run drives root until it emits a terminal event with its own ID or the
// user presses ctrl+c. Print failures end the run with an error.
//
// Each frame polls up to PollRetries times. When input arrives, every queued
// input is handed to root in arrival order before polling stops. A size
// change triggers Resize and ends polling early. Then root gets one Update
// and one Print, and the device is flushed.
func (c *Context) Run(root Widget) error {
	if c.input == nil {
		return fmt.Errorf("ui: run without input source")
	}

	size := c.Size()
	root.Resize(core.Rect{Size: size})
	if err := c.print(root); err != nil {
		return err
	}
	rootID := root.ID()
	c.logger.Debug("run started", "root", rootID, "size", size)

	for {
		hasInput := false
		for retry := c.opts.PollRetries; !hasInput && retry > 0; retry-- {
			in, ok := c.input.Poll(c.opts.PollTimeout)
			for ok {
				if IsInterrupt(in) {
					c.logger.Debug("run interrupted")
					return nil
				}
				if ev := root.Input(c, in); ShouldExit(rootID, ev) {
					c.logger.Debug("run finished", "kind", ev.Kind)
					return nil
				}
				hasInput = true
				in, ok = c.input.Poll(0)
			}

			if current := c.Size(); current != size {
				size = current
				root.Resize(core.Rect{Size: size})
				c.logger.Debug("resized", "size", size)
				break
			}
		}

		if ev := root.Update(); ShouldExit(rootID, ev) {
			c.logger.Debug("run finished", "kind", ev.Kind)
			return nil
		}

		if err := c.print(root); err != nil {
			return err
		}
	}
}

func (c *Context) print(root Widget) error {
	if err := root.Print(c); err != nil {
		return fmt.Errorf("ui: print: %w", err)
	}
	if c.device != nil {
		c.device.Show()
	}
	return nil
}
