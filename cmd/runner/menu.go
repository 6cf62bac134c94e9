package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/games/runner"
	"github.com/vovakirdan/lane-runner/internal/platform/tui"
	"github.com/vovakirdan/lane-runner/internal/registry"
	"github.com/vovakirdan/lane-runner/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the runner with a mode picker menu",
	Long: `Start the runner in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode.
After a run ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select mode
  Tab          - Browse past runs
  Q            - Quit

Examples:
  runner menu
  runner menu --fps 30
  runner menu --db ./runs.db`,
	Run: runMenu,
}

func init() {
	// Uses global flags from main.go (--fps, --seed, --db)
}

func runMenu(_ *cobra.Command, _ []string) {
	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		store = nil
	}

	// Get terminal size
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	// Create runtime config
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Menu loop
	for {
		// Show menu and get selection
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		// Check if user quit
		if menuResult.Quit {
			break
		}

		// Check if user wants the runs browser
		if menuResult.WantsRuns {
			goBack, runsErr := tui.RunRunsBrowser(store, cfg.ScreenW, cfg.ScreenH)
			if runsErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", runsErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from runs browser
		}

		modeID := menuResult.ModeID
		if modeID == "" {
			break
		}

		// Set config path and difficulty before creation
		runner.SetConfigPath(flagConfig)
		runner.SetDifficultyPreset(flagDifficulty)

		// Create game instance
		game, err := registry.Create(modeID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating mode: %v\n", err)
			continue
		}

		// Update seed for each run
		cfg.Seed = time.Now().UnixNano()

		// Run the game
		if err := tui.Run(game, store, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}

		// Loop back to menu
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}
