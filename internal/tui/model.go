// Package tui is an interactive viewer for a rendered grid.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/timegrid/internal/grid"
	"github.com/julianstephens/timegrid/internal/logger"
	"github.com/julianstephens/timegrid/internal/present"
)

// Rows reserved below the grid for the details pane and help.
const chromeHeight = 9

type Model struct {
	grid     *grid.Grid
	cursor   grid.Ref
	keys     KeyMap
	help     help.Model
	viewport viewport.Model
	ready    bool
	noColor  bool
	quitting bool
	width    int
	height   int
}

// New returns a viewer over g with the cursor on the first coordinate.
func New(g *grid.Grid, noColor bool) Model {
	return Model{
		grid:    g,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		noColor: noColor,
	}
}

// Cursor returns the coordinate under the cursor.
func (m Model) Cursor() grid.Ref {
	return m.cursor
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right, m.keys.Help, m.keys.Quit}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right},
		{m.keys.Home, m.keys.End, m.keys.Origin},
		{m.keys.Help, m.keys.Quit},
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// table renders the grid with the cell under the cursor highlighted.
func (m Model) table() string {
	cursor := m.cursor
	out, err := present.Terminal(m.grid, present.TerminalOptions{NoColor: m.noColor, Cursor: &cursor})
	if err != nil {
		logger.Warn("Failed to render grid", "error", err)
		return err.Error()
	}
	return out
}

// Run starts the viewer on the terminal and blocks until it exits.
func Run(g *grid.Grid, noColor bool) error {
	_, err := tea.NewProgram(New(g, noColor), tea.WithAltScreen()).Run()
	return err
}
