package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	title := m.grid.Caption()
	if title == "" {
		title = "Timetable"
	}

	body := m.table()
	if m.ready {
		body = m.viewport.View()
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(title),
		body,
		m.viewDetails(),
		m.help.View(m),
	))
}

// viewDetails describes the cell under the cursor. A covered coordinate names
// the origin it belongs to.
func (m Model) viewDetails() string {
	g := m.grid
	c := m.cursor
	e := g.At(c.Day, c.Slot)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s · %s\n", labelStyle.Render("At"), g.DayLabel(c.Day), g.SlotLabel(c.Slot))

	text := e.Cell.Text
	if text == "" {
		text = "(empty)"
	}
	fmt.Fprintf(&b, "%s %s", labelStyle.Render("Cell"), text)
	if e.Cell.Style != "" {
		fmt.Fprintf(&b, " [%s]", e.Cell.Style)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Span"), describeSpan(e.Cell.ColSpan, e.Cell.RowSpan))

	if e.IsOrigin {
		b.WriteString(labelStyle.Render("Origin cell"))
	} else {
		b.WriteString(coveredStyle.Render(fmt.Sprintf("Covered by %s · %s",
			g.DayLabel(e.Origin.Day), g.SlotLabel(e.Origin.Slot))))
	}

	return detailsStyle.Render(b.String())
}

func describeSpan(cols, rows int) string {
	return fmt.Sprintf("%s × %s", plural(cols, "slot"), plural(rows, "day"))
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
