package main

import (
	"fmt"
	"path/filepath"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/kiwi/internal/game"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the levels of the game",
	Long:  `Shows the level list in play order, with completed levels marked.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	a, err := newApp("list")
	if err != nil {
		return err
	}
	defer a.Close()

	paths, root, err := a.levelList()
	if err != nil {
		return err
	}

	fmt.Printf("Levels in %s:\n", root)
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, p := range paths {
		maxNameLen = max(maxNameLen, runewidth.StringWidth(game.LevelName(p)))
	}
	fileWidth := max(termWidth()-maxNameLen-14, 8)

	// Print header
	fmt.Printf("  %3s  %-*s  %-4s  %s\n", "#", maxNameLen, "Name", "Done", "File")
	fmt.Printf("  %3s  %-*s  %-4s  %s\n", "-", maxNameLen, "----", "----", "----")

	for i, p := range paths {
		done := ""
		if a.store != nil {
			if st, err := a.store.GetLevelStats(p); err == nil && st != nil {
				done = "yes"
			}
		}
		file := p
		if rel, err := filepath.Rel(root, p); err == nil {
			file = rel
		}
		fmt.Printf("  %3d  %s  %-4s  %s\n", i+1,
			runewidth.FillRight(game.LevelName(p), maxNameLen), done,
			runewidth.Truncate(file, fileWidth, "..."))
	}

	fmt.Println()
	fmt.Println("Run 'kiwi' to play from the start or 'kiwi menu' to pick a level.")
	return nil
}
