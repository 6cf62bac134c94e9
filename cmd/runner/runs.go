package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-runner/internal/registry"
	"github.com/vovakirdan/lane-runner/internal/storage"
)

var runsCmd = &cobra.Command{
	Use:   "runs <mode>",
	Short: "Show recorded runs for a mode",
	Long: `Display the top 10 runs for the specified mode.

Examples:
  runner runs classic
  runner runs timetrial`,
	Args: cobra.ExactArgs(1),
	Run:  runRuns,
}

func runRuns(cmd *cobra.Command, args []string) {
	modeID := args[0]

	// Check if mode exists
	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'runner list' to see available modes.")
		os.Exit(1)
	}

	// Get mode title
	game, err := registry.Create(modeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating mode: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// Get top runs
	runs, err := store.TopRuns(modeID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	// Display runs
	fmt.Printf("Top Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'runner play %s' to set the first record!\n", modeID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-6s  %-8s  %-7s  %s\n", "Rank", "Score", "Coins", "Distance", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-8s  %-7s  %s\n", "----", "-----", "-----", "--------", "----", "----")

	// Print runs
	for i, entry := range runs {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-6d  %-8.0f  %-7s  %s\n",
			i+1, entry.Score, entry.Coins, entry.Distance,
			fmt.Sprintf("%.0fs", entry.Duration), dateStr)
	}

	// Show aggregate stats
	fmt.Println()
	stats, err := store.GetModeStats(modeID)
	if err == nil && stats.RunsCount > 0 {
		fmt.Printf("Best: %d  Runs: %d  Avg: %.0f\n", stats.BestScore, stats.RunsCount, stats.AvgScore)
	}
}
