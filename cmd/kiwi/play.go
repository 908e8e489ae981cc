package main

import (
	"path/filepath"

	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play <file>...",
	Short: "Play level files in order",
	Long: `Play the given level files one after another, as if they were the
level list. Any exit moves on to the next file.

Controls:
  w/a/s/d, arrows  - Walk
  r                - Restart the level
  Ctrl+C           - Quit

Examples:
  kiwi play levels/01.yaml
  kiwi play drafts/*.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	a, err := newApp("play")
	if err != nil {
		return err
	}
	defer a.Close()

	paths := make([]string, len(args))
	for i, p := range args {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		paths[i] = p
	}
	return a.playSequence(paths)
}
