package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/kiwi/internal/config"
	"github.com/vovakirdan/kiwi/internal/game"
	"github.com/vovakirdan/kiwi/internal/levels"
	"github.com/vovakirdan/kiwi/internal/storage"
	"github.com/vovakirdan/kiwi/internal/ui"
)

// app holds what every command shares: configuration, the file logger and
// the progress store.
type app struct {
	cfg     config.Config
	logger  *log.Logger
	logFile *os.File
	store   *storage.Store // nil when the database could not be opened
}

// newApp loads the configuration, applies flag overrides and opens the log
// and the progress store. A broken store is reported and play continues
// without recording.
func newApp(command string) (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagRoot != "" {
		cfg.Levels.Root = flagRoot
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogPath != "" {
		cfg.Log.Path = flagLogPath
	}

	a := &app{cfg: cfg}
	if err := a.openLog(); err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open progress database: %v\n", err)
		a.logger.Warn("progress disabled", "db", cfg.Storage.DBPath, "err", err)
	} else {
		if _, err := store.StartSession(command); err != nil {
			a.logger.Warn("cannot start session", "err", err)
		}
		a.store = store
	}
	return a, nil
}

// openLog sends diagnostics to the configured file. The terminal belongs to
// the game while it runs.
func (a *app) openLog() error {
	level, err := log.ParseLevel(strings.ToLower(a.cfg.Log.Level))
	if err != nil {
		level = log.InfoLevel
	}

	path := config.ExpandHome(a.cfg.Log.Path)
	if path == "" {
		a.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "kiwi", Level: log.ErrorLevel})
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log %s: %w", path, err)
	}
	a.logFile = f
	a.logger = log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "kiwi",
		Level:           level,
	})
	return nil
}

// Close releases the store and the log file.
func (a *app) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("closing progress database", "err", err)
		}
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}

// recorder returns the store as a completion recorder, or nil without one.
func (a *app) recorder() game.Recorder {
	if a.store == nil {
		return nil
	}
	return a.store
}

// levelList resolves the game root and reads the level list.
func (a *app) levelList() ([]string, string, error) {
	root := config.ExpandHome(a.cfg.Levels.Root)
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, "", fmt.Errorf("find game root: %w", err)
		}
		if root, err = levels.FindRoot(wd, a.cfg.Levels.List); err != nil {
			return nil, "", err
		}
	}
	paths, err := levels.LoadList(root, a.cfg.Levels.List)
	if err != nil {
		return nil, "", err
	}
	a.logger.Debug("level list loaded", "root", root, "levels", len(paths))
	return paths, root, nil
}

func (a *app) uiOptions() ui.Options {
	return ui.Options{
		PollTimeout: a.cfg.Runtime.PollTimeout(),
		PollRetries: a.cfg.Runtime.PollRetries,
	}
}

// runWidget takes over the terminal, builds the root widget and runs it until
// it finishes. The terminal is restored before returning.
func (a *app) runWidget(build func(ctx *ui.Context) (ui.Widget, error)) error {
	t, err := ui.OpenTerminal()
	if err != nil {
		return err
	}
	defer t.Close()

	ctx := ui.NewContext(t.Screen(), t, a.logger, a.uiOptions())
	root, err := build(ctx)
	if err != nil {
		return err
	}
	return ctx.Run(root)
}

// playSequence plays paths in order and prints the closing message once the
// terminal is back.
func (a *app) playSequence(paths []string) error {
	var seq *game.Sequencer
	err := a.runWidget(func(ctx *ui.Context) (ui.Widget, error) {
		seq = game.NewSequencer(ctx, paths, game.SequencerOptions{
			Recorder: a.recorder(),
			Margin:   a.cfg.Viewport.RunnerMargin,
		})
		seq.Start()
		return seq, nil
	})
	if err != nil {
		return err
	}
	if seq.Message() != "" {
		fmt.Println(seq.Message())
	}
	return nil
}

// edit opens the editor on path.
func (a *app) edit(path string) error {
	return a.runWidget(func(ctx *ui.Context) (ui.Widget, error) {
		return game.NewEditor(ctx, path, game.EditorOptions{
			CanvasSize:   editorCanvas(a.cfg),
			Margin:       a.cfg.Viewport.EditorMargin,
			RunnerMargin: a.cfg.Viewport.RunnerMargin,
		})
	})
}

// termWidth returns the width of stdout, or 80 when it is not a terminal.
func termWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

func termSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}
