package game

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/kiwi/internal/core"
	"github.com/vovakirdan/kiwi/internal/grid"
	"github.com/vovakirdan/kiwi/internal/levels"
	"github.com/vovakirdan/kiwi/internal/ui"
)

// FinishedMessage is shown after the last level.
const FinishedMessage = "Thank you for playing!"

// Loader reads a level file.
type Loader func(path string) (*grid.Grid, error)

// Recorder stores finished levels. storage.Store implements it.
type Recorder interface {
	RecordCompletion(levelPath, exitID string, moves int, elapsed time.Duration) error
}

// SequencerOptions configure a Sequencer. Zero fields take defaults.
type SequencerOptions struct {
	Loader   Loader   // levels.Load when nil
	Recorder Recorder // Completions are not stored when nil
	Margin   int      // Actor follow margin
}

// Sequencer plays a list of level files one after another. Any exit
// trigger finishes the current level. After the last level, or when a
// level fails to load, it shows a message and exits on the next key.
type Sequencer struct {
	ui.Base

	logger   *log.Logger
	paths    []string
	index    int
	runner   *Runner
	load     Loader
	recorder Recorder
	message  string
	latch    int
	started  time.Time
}

// NewSequencer creates a sequencer over paths. Call Start before running it.
func NewSequencer(ctx *ui.Context, paths []string, opts SequencerOptions) *Sequencer {
	load := opts.Loader
	if load == nil {
		load = levels.Load
	}
	s := &Sequencer{
		Base:     ui.NewBase(ctx),
		logger:   ctx.Logger(),
		paths:    paths,
		runner:   NewRunner(ctx),
		load:     load,
		recorder: opts.Recorder,
	}
	s.runner.SetMargin(opts.Margin)
	return s
}

// Start loads the first level.
func (s *Sequencer) Start() {
	s.index = 0
	s.latch = 0
	s.message = ""
	s.startNext()
}

// Running reports whether a level is being played.
func (s *Sequencer) Running() bool {
	return s.index < len(s.paths)
}

// CurrentLevel returns the index of the level being played.
func (s *Sequencer) CurrentLevel() int { return s.index }

// Message returns the final message, set once the sequence has ended.
func (s *Sequencer) Message() string { return s.message }

// Runner returns the runner playing the current level.
func (s *Sequencer) Runner() *Runner { return s.runner }

// Children returns the runner.
func (s *Sequencer) Children() []ui.Widget { return []ui.Widget{s.runner} }

func (s *Sequencer) startNext() {
	s.MarkRefresh(true)
	if !s.Running() {
		s.message = FinishedMessage
		s.logger.Info("sequence finished", "levels", len(s.paths))
		return
	}

	path := s.paths[s.index]
	g, err := s.load(path)
	if err != nil {
		cause := err
		if inner := errors.Unwrap(err); inner != nil {
			cause = inner
		}
		s.message = fmt.Sprintf("Failed to load level '%s': %v", path, cause)
		s.logger.Error("load level", "path", path, "err", err)
		s.index = len(s.paths)
		return
	}
	s.runner.Load(g)
	s.runner.SetName(LevelName(path))
	s.started = time.Now()
	s.logger.Info("level started", "path", path, "index", s.index)
}

// LevelName is the file name of a level without its extension.
func LevelName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// fromRunner advances the sequence when the runner finishes a level.
func (s *Sequencer) fromRunner(ev *ui.Event) *ui.Event {
	if ev == nil {
		return nil
	}
	if ev.From(s.runner.ID()) && ev.Terminal() {
		s.record(exitID(ev))
		s.index++
		s.startNext()
	}
	return s.Emit(ui.Changed)
}

func (s *Sequencer) record(exit string) {
	path := s.paths[s.index]
	moves := s.runner.Moves()
	elapsed := time.Since(s.started)
	s.logger.Info("level finished", "path", path, "exit", exit, "moves", moves, "elapsed", elapsed)
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordCompletion(path, exit, moves, elapsed); err != nil {
		s.logger.Warn("record completion", "path", path, "err", err)
	}
}

// exitID names the trigger that ended a run.
func exitID(ev *ui.Event) string {
	switch {
	case ev.Kind == ui.Ok:
		return grid.ExitFinish
	case ev.Kind == ui.Result && ev.Branch == ui.BranchA:
		return grid.ExitBranchA
	case ev.Kind == ui.Result && ev.Branch == ui.BranchB:
		return grid.ExitBranchB
	default:
		return strings.ToLower(ev.Kind.String())
	}
}

// Input forwards keys to the runner while playing. Once the sequence has
// ended, any key arms the exit.
func (s *Sequencer) Input(ctx *ui.Context, in ui.Input) *ui.Event {
	if s.Running() {
		return s.fromRunner(s.runner.Input(ctx, in))
	}
	if _, ok := in.(ui.Key); !ok {
		return nil
	}
	s.latch = core.Max(s.latch, 1)
	return s.Emit(ui.Changed)
}

// Update ticks the runner. After the sequence has ended it finishes with Ok
// one frame after the exit was armed, so the message stays on screen for at
// least one redraw.
func (s *Sequencer) Update() *ui.Event {
	if s.Running() {
		return s.fromRunner(s.runner.Update())
	}
	switch s.latch {
	case 2:
		return s.Emit(ui.Ok)
	case 1:
		s.latch = 2
		return s.Emit(ui.Changed)
	}
	return nil
}

// Resize forwards the area to the runner.
func (s *Sequencer) Resize(area core.Rect) {
	s.runner.Resize(area)
	s.MarkRefresh(true)
}

// Print draws the current level, or the final message box.
func (s *Sequencer) Print(ctx *ui.Context) error {
	if s.Running() {
		if s.NeedsRefresh() {
			s.runner.MarkRefresh(true)
			s.MarkRefresh(false)
		}
		return s.runner.Print(ctx)
	}
	if !s.NeedsRefresh() {
		return nil
	}
	if d := ctx.Device(); d != nil {
		d.Clear()
		d.HideCursor()
		ui.MessageBox(d, s.message+"\n\nPress any key to exit", messageStyle)
	}
	s.MarkRefresh(false)
	return nil
}
