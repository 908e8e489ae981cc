package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/kiwi/internal/levels"
	"github.com/vovakirdan/kiwi/internal/platform/tui"
	"github.com/vovakirdan/kiwi/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a level interactively",
	Long: `Start kiwi with a level picker. The selected level is previewed next
to the list.

After a run or an editing session you return to the picker.

Controls:
  Up/Down/j/k  - Navigate
  Enter        - Play from the selected level to the end of the list
  e            - Edit the selected level
  Tab          - Progress board
  Q/Esc        - Quit

Examples:
  kiwi menu
  kiwi menu --root ~/games/kiwi`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	a, err := newApp("menu")
	if err != nil {
		return err
	}
	defer a.Close()

	paths, _, err := a.levelList()
	if err != nil {
		return err
	}

	width, height := termSize()
	cursor := 0

	// Menu loop
	for {
		result, err := tui.RunPicker(a.menuItems(paths), levels.Load, cursor, width, height)
		if err != nil {
			return err
		}
		cursor = result.Index
		width, height = result.Width, result.Height
		a.logger.Debug("picker closed", "action", result.Action, "index", result.Index)

		switch result.Action {
		case tui.PickPlay:
			if err := a.playSequence(paths[cursor:]); err != nil {
				return err
			}

		case tui.PickEdit:
			if err := a.edit(paths[cursor]); err != nil {
				return err
			}

		case tui.PickStats:
			stats, err := a.allStats()
			if err != nil {
				return err
			}
			goBack, err := tui.RunStats(stats, width, height)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		default:
			return nil
		}
	}
}

// menuItems pairs each level with its recorded progress.
func (a *app) menuItems(paths []string) []tui.LevelItem {
	items := make([]tui.LevelItem, len(paths))
	for i, p := range paths {
		items[i].Path = p
		if a.store == nil {
			continue
		}
		st, err := a.store.GetLevelStats(p)
		if err != nil {
			a.logger.Warn("cannot read level stats", "path", p, "err", err)
			continue
		}
		items[i].Stats = st
	}
	return items
}

func (a *app) allStats() ([]storage.LevelStats, error) {
	if a.store == nil {
		return nil, errors.New("progress database is not available")
	}
	stats, err := a.store.GetAllLevelStats()
	if err != nil {
		return nil, fmt.Errorf("read progress: %w", err)
	}
	return stats, nil
}
