// runner is a terminal endless-runner: dodge obstacles across three lanes,
// collect coins, and grab power-ups.
//
// Usage:
//
//	runner list              - List available modes
//	runner play <mode>       - Play a mode
//	runner menu              - Start menu to pick a mode interactively
//	runner serve             - Start SSH server for remote play
//	runner runs <mode>       - Show recorded runs for a mode
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.lanerunner/runs.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import modes to register them
	_ "github.com/vovakirdan/lane-runner/internal/games/runner"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Lane Runner - Endless runner in your terminal",
	Long: `Lane Runner is a terminal endless-runner. Switch lanes, jump and slide
past obstacles, collect coins, and chain power-ups for a high score.

Available commands:
  list     - Show all available modes
  play     - Play a specific mode directly
  menu     - Interactive mode picker menu
  serve    - Start SSH server for remote play
  runs     - View recorded runs

Examples:
  runner list
  runner play classic
  runner menu
  runner serve --ssh :2222
  runner runs classic`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.lanerunner/runs.db", "Path to runs database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
}
