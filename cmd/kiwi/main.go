// kiwi is a terminal push-puzzle with an in-place level editor.
//
// Usage:
//
//	kiwi                   - Play the level list from the start
//	kiwi play <file>...    - Play the given level files in order
//	kiwi edit [file]       - Open the level editor
//	kiwi list              - List the levels of the game
//	kiwi menu              - Pick a level interactively
//	kiwi stats             - Show recorded progress
//
// Global flags:
//
//	--config <path>  - Config file (default: ~/.kiwi/config.yaml)
//	--root <dir>     - Game root containing levels/list.yaml
//	--db <path>      - Progress database (default: ~/.kiwi/progress.db)
//	--log <path>     - Log file (default: ~/.kiwi/kiwi.log)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig  string
	flagRoot    string
	flagDBPath  string
	flagLogPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "kiwi",
	Short: "kiwi - a black and white push puzzle for the terminal",
	Long: `kiwi is a puzzle game played on a grid of black and white cells.
Walk the actor through the level, push white cells into black ones and
reach an exit. Every level is a plain YAML file made with the built-in editor.

Without a sub-command kiwi plays the level list from the start.

Available commands:
  play     - Play level files directly
  edit     - Create or change a level
  list     - Show the levels of the game
  menu     - Interactive level picker
  stats    - Show recorded progress

Examples:
  kiwi
  kiwi play levels/01.yaml levels/02.yaml
  kiwi edit levels/03.yaml
  kiwi menu --root ~/games/kiwi`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGame,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", "", "Game root directory (default: search upward for levels/list.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to progress database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Path to log file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(statsCmd)
}

func runGame(_ *cobra.Command, _ []string) error {
	a, err := newApp("kiwi")
	if err != nil {
		return err
	}
	defer a.Close()

	paths, _, err := a.levelList()
	if err != nil {
		return err
	}
	return a.playSequence(paths)
}
