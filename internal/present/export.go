package present

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/julianstephens/timegrid/internal/constants"
	"github.com/julianstephens/timegrid/internal/grid"
)

// Entry is the JSON form of one resolved coordinate. Day and Slot locate the
// origin of the cell covering it.
type Entry struct {
	Origin  bool   `json:"origin"`
	Day     int    `json:"day"`
	Slot    int    `json:"slot"`
	Text    string `json:"text"`
	Style   string `json:"style,omitempty"`
	ColSpan int    `json:"col_span"`
	RowSpan int    `json:"row_span"`
}

// Document is the JSON form of a rendered grid.
type Document struct {
	Corner  string    `json:"corner"`
	Caption string    `json:"caption,omitempty"`
	Slots   []string  `json:"slots"`
	Days    []string  `json:"days"`
	Grid    [][]Entry `json:"grid"`
}

// NewDocument converts g to its JSON form; Grid[day][slot] holds every coordinate.
func NewDocument(g *grid.Grid) Document {
	doc := Document{
		Corner:  g.Corner(),
		Caption: g.Caption(),
		Slots:   g.SlotLabels(),
		Days:    g.DayLabels(),
		Grid:    make([][]Entry, g.DayCount()),
	}
	for d := 0; d < g.DayCount(); d++ {
		row := make([]Entry, g.SlotCount())
		for s, e := range g.Row(d) {
			row[s] = Entry{
				Origin:  e.IsOrigin,
				Day:     e.Origin.Day,
				Slot:    e.Origin.Slot,
				Text:    e.Cell.Text,
				Style:   e.Cell.Style,
				ColSpan: e.Cell.ColSpan,
				RowSpan: e.Cell.RowSpan,
			}
		}
		doc.Grid[d] = row
	}
	return doc
}

// JSON writes the dense grid as indented JSON.
func JSON(w io.Writer, g *grid.Grid) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(g)); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// CSV writes one record per day. Covered coordinates repeat their origin's text
// so the output reads correctly in a spreadsheet. The caption is the last record,
// padded to the same width as the others.
func CSV(w io.Writer, g *grid.Grid) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(append([]string{g.Corner()}, g.SlotLabels()...)); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for d := 0; d < g.DayCount(); d++ {
		record := []string{g.DayLabel(d)}
		for _, e := range g.Row(d) {
			record = append(record, e.Cell.Text)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", g.DayLabel(d), err)
		}
	}
	if g.Caption() != "" {
		record := make([]string, g.SlotCount()+1)
		record[0] = g.Caption()
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV caption: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Write renders g in the named format (html, json or csv).
func Write(w io.Writer, g *grid.Grid, format string) error {
	switch format {
	case constants.FormatHTML:
		return HTML(w, g, HTMLOptions{Standalone: true})
	case constants.FormatJSON:
		return JSON(w, g)
	case constants.FormatCSV:
		return CSV(w, g)
	default:
		return fmt.Errorf("unsupported output format %q (use html, json or csv)", format)
	}
}
