// Package config provides YAML-based configuration loading for kiwi:
// where the levels live, runtime timings, viewport margins, editor canvas
// size, the progress database and logging.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config contains all kiwi configuration.
type Config struct {
	Levels   LevelsConfig   `yaml:"levels"`
	Runtime  RuntimeConfig  `yaml:"runtime"`
	Viewport ViewportConfig `yaml:"viewport"`
	Editor   EditorConfig   `yaml:"editor"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
}

// LevelsConfig locates the level list.
type LevelsConfig struct {
	Root string `yaml:"root"` // Empty means discover from the working directory
	List string `yaml:"list"` // Relative to Root
}

// RuntimeConfig controls the input polling loop.
type RuntimeConfig struct {
	PollTimeoutMS int `yaml:"poll_timeout_ms"`
	PollRetries   int `yaml:"poll_retries"`
}

// PollTimeout returns the poll timeout as a duration.
func (r RuntimeConfig) PollTimeout() time.Duration {
	return time.Duration(r.PollTimeoutMS) * time.Millisecond
}

// ViewportConfig defines the follow margins in cells.
type ViewportConfig struct {
	RunnerMargin int `yaml:"runner_margin"`
	EditorMargin int `yaml:"editor_margin"`
}

// EditorConfig defines the canvas created for a new level file.
type EditorConfig struct {
	NewWidth  int `yaml:"new_width"`
	NewHeight int `yaml:"new_height"`
}

// StorageConfig locates the progress database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LogConfig defines where diagnostics go. The terminal belongs to the game,
// so logs are written to a file.
type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"` // debug, info, warn, error
}

// Validate rejects values the runtime cannot work with.
func (c Config) Validate() error {
	var errs []error
	if c.Runtime.PollTimeoutMS <= 0 {
		errs = append(errs, fmt.Errorf("runtime.poll_timeout_ms must be positive, got %d", c.Runtime.PollTimeoutMS))
	}
	if c.Runtime.PollRetries <= 0 {
		errs = append(errs, fmt.Errorf("runtime.poll_retries must be positive, got %d", c.Runtime.PollRetries))
	}
	if c.Viewport.RunnerMargin < 0 || c.Viewport.EditorMargin < 0 {
		errs = append(errs, errors.New("viewport margins must not be negative"))
	}
	if c.Editor.NewWidth < 5 || c.Editor.NewHeight < 5 {
		errs = append(errs, fmt.Errorf("editor canvas must be at least 5x5, got %dx%d", c.Editor.NewWidth, c.Editor.NewHeight))
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
