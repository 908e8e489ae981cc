package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/kiwi/internal/config"
	"github.com/vovakirdan/kiwi/internal/core"
)

var editCmd = &cobra.Command{
	Use:   "edit [file]",
	Short: "Create or change a level",
	Long: `Open the level editor. A missing file starts as a blank canvas
(editor.new_width x editor.new_height) and is created on the first save.
Without a file the level can be built and tested but not saved.

Modes:
  F2  View        - move the cursor, select, copy, move and fill
  F3  Write text  - type glyphs at the cursor
  F5  Paint       - paint colors with w/a/s/d and the presets z..m
  F6  Markers     - set the start and the exits
  F8  Play        - test the level (Shift+F8 from the cursor)
  F9  Save

Examples:
  kiwi edit levels/04.yaml
  kiwi edit --config ./kiwi.yaml drafts/big.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func runEdit(_ *cobra.Command, args []string) error {
	a, err := newApp("edit")
	if err != nil {
		return err
	}
	defer a.Close()

	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	return a.edit(path)
}

func editorCanvas(cfg config.Config) core.Vec {
	return core.V(cfg.Editor.NewWidth, cfg.Editor.NewHeight)
}
