// Package present turns a rendered grid into terminal, HTML, JSON and CSV output.
package present

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/timegrid/internal/constants"
	"github.com/julianstephens/timegrid/internal/grid"
)

// CoveredMarker fills coordinates that belong to a span started elsewhere.
const CoveredMarker = "·"

// TerminalOptions controls terminal rendering.
type TerminalOptions struct {
	Day     string    // render only this day; empty renders all days
	NoColor bool
	Cursor  *grid.Ref // highlight the cell covering this coordinate
}

type palette struct {
	header   lipgloss.Style
	day      lipgloss.Style
	cell     lipgloss.Style
	covered  lipgloss.Style
	lab      lipgloss.Style
	elective lipgloss.Style
	caption  lipgloss.Style
	border   lipgloss.Style
	cursor   lipgloss.Style
	subjects map[string]lipgloss.Style
}

// subject returns the style for an origin cell without a known style tag.
func (p palette) subject(text string) lipgloss.Style {
	color, ok := SubjectColor(text)
	if !ok {
		return p.cell
	}
	if st, ok := p.subjects[color]; ok {
		return st
	}
	return p.cell
}

func newPalette(noColor bool) palette {
	base := lipgloss.NewStyle().Padding(0, 1)
	if noColor {
		return palette{
			header:   base,
			day:      base,
			cell:     base,
			covered:  base,
			lab:      base,
			elective: base,
			caption:  lipgloss.NewStyle(),
			border:   lipgloss.NewStyle(),
			cursor:   base.Reverse(true),
		}
	}
	subjects := make(map[string]lipgloss.Style, len(subjectANSI))
	for name, color := range subjectANSI {
		subjects[name] = base.Foreground(color)
	}
	return palette{
		header:   base.Foreground(lipgloss.Color("205")).Bold(true),
		day:      base.Foreground(lipgloss.Color("252")).Bold(true),
		cell:     base.Foreground(lipgloss.Color("252")),
		covered:  base.Foreground(lipgloss.Color("240")),
		lab:      base.Foreground(lipgloss.Color("39")).Bold(true),
		elective: base.Foreground(lipgloss.Color("170")).Italic(true),
		caption:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		border:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		cursor:   base.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("205")).Bold(true),
		subjects: subjects,
	}
}

// Terminal renders g as a bordered table. Origin coordinates carry the cell
// text, coloured by style tag or else by subject; covered coordinates show
// CoveredMarker.
func Terminal(g *grid.Grid, opts TerminalOptions) (string, error) {
	days := make([]int, 0, g.DayCount())
	if opts.Day != "" {
		d, ok := g.FindDay(opts.Day)
		if !ok {
			return "", fmt.Errorf("no day named %q in timetable", opts.Day)
		}
		days = append(days, d)
	} else {
		for d := 0; d < g.DayCount(); d++ {
			days = append(days, d)
		}
	}

	p := newPalette(opts.NoColor)

	var selected *grid.Placement
	if opts.Cursor != nil {
		if pl, ok := g.PlacementAt(opts.Cursor.Day, opts.Cursor.Slot); ok {
			selected = &pl
		}
	}

	headers := append([]string{g.Corner()}, g.SlotLabels()...)
	rows := make([][]string, len(days))
	for i, d := range days {
		row := make([]string, 0, g.SlotCount()+1)
		row = append(row, g.DayLabel(d))
		for s := 0; s < g.SlotCount(); s++ {
			row = append(row, EntryText(g.At(d, s)))
		}
		rows[i] = row
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.header
			}
			if row < 0 || row >= len(days) {
				return p.cell
			}
			if col == 0 {
				return p.day
			}
			if selected != nil && selected.Covers(days[row], col-1) {
				return p.cursor
			}
			e := g.At(days[row], col-1)
			if !e.IsOrigin {
				return p.covered
			}
			switch e.Cell.Style {
			case constants.StyleLab:
				return p.lab
			case constants.StyleElective:
				return p.elective
			default:
				return p.subject(e.Cell.Text)
			}
		})

	out := t.String()
	if g.Caption() != "" {
		out = lipgloss.JoinVertical(lipgloss.Left, out, p.caption.Render(g.Caption()))
	}
	return out, nil
}

// EntryText is the text shown for one coordinate in terminal output.
func EntryText(e grid.Entry) string {
	if !e.IsOrigin {
		return CoveredMarker
	}
	return e.Cell.Text
}
