package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/events"
	"github.com/vovakirdan/lane-runner/internal/registry"
	"github.com/vovakirdan/lane-runner/internal/storage"
)

// runReporter is the extra surface the runner game exposes beyond the
// registry interface: the event bus and the end-of-run snapshot.
type runReporter interface {
	Bus() *events.Bus
	GameOver() *events.GameOverData
	SetHighScoreFunc(func(mode string, score int) bool)
}

// Model is the Bubble Tea model for running the game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	runSaved   bool // Whether the run has been saved for the current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
	}
	m.wireGame()
	return m
}

// wireGame connects the game's reporting surface to storage and logging.
func (m *Model) wireGame() {
	rr, ok := m.game.(runReporter)
	if !ok {
		return
	}
	if m.store != nil {
		store := m.store
		rr.SetHighScoreFunc(func(mode string, score int) bool {
			high, err := store.IsHighScore(mode, score)
			if err != nil {
				log.Warn("high score check failed", "mode", mode, "err", err)
				return false
			}
			return high
		})
	}
	// A panicking subscriber must not take the whole session down
	rr.Bus().SetPanicHandler(func(event string, recovered any) {
		log.Error("event handler panicked", "event", event, "panic", recovered)
	})
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	// Initialize the game
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	// The bus is cleared on Reset, so the panic handler survives but any
	// subscribers would not; rewire after every reset
	m.wireGame()

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit keys
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	// Map key to action
	switch msg.String() {
	case "a", "left", "h":
		m.inputFrame.Set(core.ActionLeft)
	case "d", "right", "l":
		m.inputFrame.Set(core.ActionRight)
	case " ", "up", "w", "k":
		m.inputFrame.Set(core.ActionJump)
	case "down", "s", "j":
		m.inputFrame.Set(core.ActionSlide)
	case "p", "esc":
		m.inputFrame.Set(core.ActionPause)
	case "r":
		if m.gameState.GameOver {
			m.inputFrame.Set(core.ActionRestart)
		}
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	// Update screen size
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// Reinitialize game with new dimensions if needed
	// Note: This resets the run - could be improved to preserve state
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
		m.wireGame()
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		// Reset seed for new run
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.wireGame()
		m.gameState = m.game.State()
		m.runSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	// Run game simulation
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save the run on game over (once)
	if m.gameState.GameOver && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// saveRun persists the finished run. Best effort: a failed save never stops
// the session.
func (m *Model) saveRun() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}

	record := storage.RunRecord{
		Mode:  m.game.ID(),
		Score: m.gameState.Score,
	}
	if rr, ok := m.game.(runReporter); ok {
		if data := rr.GameOver(); data != nil {
			record.Coins = data.CoinsCollected
			record.Distance = data.DistanceTraveled
			record.Duration = data.Duration
		}
	}

	if _, err := m.store.SaveRun(record); err != nil {
		log.Warn("failed to save run", "mode", record.Mode, "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	// Create screenshots directory
	dir := filepath.Join(os.Getenv("HOME"), ".lanerunner", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	// Save screenshot
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	// Convert screen to string
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
