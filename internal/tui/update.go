package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h := max(msg.Height-chromeHeight, 3)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, h)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = h
		}
		m.help.Width = msg.Width
		m.viewport.SetContent(m.table())
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Up):
			m.cursor.Day = max(m.cursor.Day-1, 0)
		case key.Matches(msg, m.keys.Down):
			m.cursor.Day = min(m.cursor.Day+1, m.grid.DayCount()-1)
		case key.Matches(msg, m.keys.Left):
			m.cursor.Slot = max(m.cursor.Slot-1, 0)
		case key.Matches(msg, m.keys.Right):
			m.cursor.Slot = min(m.cursor.Slot+1, m.grid.SlotCount()-1)
		case key.Matches(msg, m.keys.Home):
			m.cursor.Slot = 0
		case key.Matches(msg, m.keys.End):
			m.cursor.Slot = m.grid.SlotCount() - 1
		case key.Matches(msg, m.keys.Origin):
			m.cursor = m.grid.At(m.cursor.Day, m.cursor.Slot).Origin
		default:
			return m, nil
		}
		if m.ready {
			m.viewport.SetContent(m.table())
		}
		return m, nil
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}
