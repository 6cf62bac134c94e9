package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lane-runner/internal/registry"
	"github.com/vovakirdan/lane-runner/internal/storage"
)

// Runs browser layout constants
const (
	minWidthForStats = 90  // Minimum width to show the stats sidebar
	statsWidth       = 26  // Width of the stats sidebar
	maxRuns          = 100 // Max runs to load per mode
)

// RunsKeyMap defines the key bindings for the runs browser.
type RunsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.PrevMode, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMode, k.PrevMode},
		{k.Back, k.Quit},
	}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev mode"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next mode"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel is the Bubble Tea model for the runs browser screen.
type RunsModel struct {
	modes      []registry.GameInfo // Available game modes
	modeCursor int                 // Currently selected mode index
	store      *storage.Store
	runs       []storage.RunRecord
	stats      *storage.ModeStats
	table      table.Model
	help       help.Model
	keys       RunsKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool // True if user pressed back (not quit)
	showStats  bool // Whether to show the stats sidebar
}

// NewRunsModel creates a new runs browser model.
func NewRunsModel(store *storage.Store, width, height int) RunsModel {
	keys := DefaultRunsKeyMap()
	h := help.New()
	h.ShowAll = false

	m := RunsModel{
		modes:     registry.List(),
		store:     store,
		keys:      keys,
		help:      h,
		width:     width,
		height:    height,
		showStats: width >= minWidthForStats,
	}

	// Initialize table
	m.table = m.createTable()

	// Load runs for the first mode
	if len(m.modes) > 0 {
		m.loadRuns(m.modes[0].ID)
	}

	return m
}

// createTable creates a new table with the runs columns.
func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 8},
		{Title: "Coins", Width: 6},
		{Title: "Dist", Width: 7},
		{Title: "Time", Width: 7},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(m.height-8), // Leave room for header, help, and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns loads runs and stats for the given mode ID.
func (m *RunsModel) loadRuns(modeID string) {
	m.runs = nil
	m.stats = nil
	if m.store != nil {
		if runs, err := m.store.TopRuns(modeID, maxRuns); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.GetModeStats(modeID); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (m *RunsModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Coins),
			fmt.Sprintf("%dm", int(r.Distance)),
			fmt.Sprintf("%.0fs", r.Duration),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// Init initializes the runs browser model.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the runs browser.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextMode), key.Matches(msg, m.keys.Right):
			if len(m.modes) > 0 {
				m.modeCursor = (m.modeCursor + 1) % len(m.modes)
				m.loadRuns(m.modes[m.modeCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevMode), key.Matches(msg, m.keys.Left):
			if len(m.modes) > 0 {
				m.modeCursor--
				if m.modeCursor < 0 {
					m.modeCursor = len(m.modes) - 1
				}
				m.loadRuns(m.modes[m.modeCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showStats = m.width >= minWidthForStats
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the runs browser.
func (m RunsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	// Title
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "BEST RUNS"
	if len(m.modes) > 0 {
		title = fmt.Sprintf("BEST RUNS - %s", m.modes[m.modeCursor].Title)
	}

	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showStats {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(centerText(m.renderTableBox(), m.width))
	}

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the runs table next to the mode stats sidebar.
func (m RunsModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(statsWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Mode stats\n")
	sidebar.WriteString(strings.Repeat("-", statsWidth-4))
	sidebar.WriteString("\n")

	if m.stats != nil && m.stats.RunsCount > 0 {
		fmt.Fprintf(&sidebar, "Runs      %d\n", m.stats.RunsCount)
		fmt.Fprintf(&sidebar, "Best      %d\n", m.stats.BestScore)
		fmt.Fprintf(&sidebar, "Average   %.0f\n", m.stats.AvgScore)
		fmt.Fprintf(&sidebar, "Coins     %d\n", m.stats.TotalCoins)
		fmt.Fprintf(&sidebar, "Distance  %.0fm\n", m.stats.TotalDistance)
		if !m.stats.LastPlayed.IsZero() {
			fmt.Fprintf(&sidebar, "Last      %s\n", m.stats.LastPlayed.Format("Jan 02"))
		}
	} else {
		sidebar.WriteString("No runs yet\n")
	}

	sidebarRendered := sidebarStyle.Render(sidebar.String())
	tableRendered := m.renderTableBox()

	// Join horizontally
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarRendered, "  ", tableRendered)
}

// renderTableBox renders the bordered table or an empty message.
func (m RunsModel) renderTableBox() string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return boxStyle.Render(emptyStyle.Render("No runs recorded yet.\nPlay to set a record!"))
	}

	return boxStyle.Render(m.table.View())
}

// IsGoingBack returns true if user wants to go back to the menu.
func (m RunsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RunsModel) IsQuitting() bool {
	return m.quitting
}

// RunRunsBrowser runs the runs browser screen.
// Returns true if user wants to go back to the menu, false if quitting.
func RunRunsBrowser(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewRunsModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(RunsModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
