package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/kiwi/internal/game"
	"github.com/vovakirdan/kiwi/internal/platform/tui"
)

var (
	flagRecent int
	flagClear  bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recorded progress",
	Long: `Display per-level progress from the progress database: how often each
level was finished and the best moves and time.

Examples:
  kiwi stats
  kiwi stats --recent 20
  kiwi stats --clear`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagRecent, "recent", 0, "Also list the N most recent completions")
	statsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded progress")
}

func runStats(_ *cobra.Command, _ []string) error {
	a, err := newApp("stats")
	if err != nil {
		return err
	}
	defer a.Close()

	if a.store == nil {
		return fmt.Errorf("progress database %s is not available", a.cfg.Storage.DBPath)
	}

	if flagClear {
		if err := a.store.ClearProgress(); err != nil {
			return err
		}
		fmt.Println("Progress cleared.")
		return nil
	}

	stats, err := a.store.GetAllLevelStats()
	if err != nil {
		return err
	}
	fmt.Println("Progress")
	fmt.Println()
	fmt.Print(tui.RenderStats(stats, termWidth()))

	if flagRecent <= 0 {
		return nil
	}
	recent, err := a.store.RecentCompletions(flagRecent)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println("Recent completions")
	fmt.Println()
	for _, c := range recent {
		fmt.Printf("  %s  %-16s  %-6s  %4d moves  %s\n",
			c.CreatedAt.Local().Format("2006-01-02 15:04"),
			game.LevelName(c.LevelPath), c.ExitID, c.Moves, c.Duration.Round(100*time.Millisecond))
	}
	return nil
}
