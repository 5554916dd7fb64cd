package present

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/julianstephens/timegrid/internal/grid"
)

// HTMLOptions controls HTML rendering.
type HTMLOptions struct {
	Standalone bool   // wrap the table in a complete document
	Title      string // document title when Standalone is set
}

type htmlCell struct {
	Text    string
	Class   string
	ColSpan int
	RowSpan int
}

type htmlRow struct {
	Label string
	Cells []htmlCell
}

type htmlPage struct {
	Options HTMLOptions
	Corner  string
	Slots   []string
	Rows    []htmlRow
	Caption string
	Width   int
}

var htmlTemplate = template.Must(template.New("timetable").Parse(`{{if .Options.Standalone}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Options.Title}}</title>
<style>
table.timetable { border-collapse: collapse; font-family: sans-serif; }
table.timetable th, table.timetable td { border: 1px solid #999; padding: 6px 10px; text-align: center; }
table.timetable td.lab { background: #dbeafe; }
table.timetable td.elective { background: #fae8ff; font-style: italic; }
table.timetable td.subject-blue { color: #1d4ed8; }
table.timetable td.subject-green { color: #15803d; }
table.timetable td.subject-orange { color: #c2410c; }
table.timetable td.subject-pink { color: #be185d; }
table.timetable td.subject-violet { color: #6d28d9; }
table.timetable tfoot td { font-style: italic; }
</style>
</head>
<body>
{{end}}<table class="timetable">
<thead>
<tr>
<th>{{.Corner}}</th>
{{- range .Slots}}
<th>{{.}}</th>
{{- end}}
</tr>
</thead>
<tbody>
{{- range .Rows}}
<tr>
<td>{{.Label}}</td>
{{- range .Cells}}
<td{{if .Class}} class="{{.Class}}"{{end}}{{if gt .RowSpan 1}} rowspan="{{.RowSpan}}"{{end}}{{if gt .ColSpan 1}} colspan="{{.ColSpan}}"{{end}}>{{.Text}}</td>
{{- end}}
</tr>
{{- end}}
</tbody>
{{- if .Caption}}
<tfoot>
<tr>
<td colspan="{{.Width}}">{{.Caption}}</td>
</tr>
</tfoot>
{{- end}}
</table>
{{if .Options.Standalone}}</body>
</html>
{{end}}`))

// HTML writes g as a <table>. Spans are reproduced with rowspan/colspan on the
// origin cell and covered coordinates are omitted, as a browser expects.
func HTML(w io.Writer, g *grid.Grid, opts HTMLOptions) error {
	page := htmlPage{
		Options: opts,
		Corner:  g.Corner(),
		Slots:   g.SlotLabels(),
		Rows:    make([]htmlRow, g.DayCount()),
		Caption: g.Caption(),
		Width:   g.SlotCount() + 1,
	}
	if page.Options.Title == "" {
		page.Options.Title = g.Caption()
	}

	for d := 0; d < g.DayCount(); d++ {
		row := htmlRow{Label: g.DayLabel(d)}
		for _, e := range g.Row(d) {
			if !e.IsOrigin {
				continue
			}
			row.Cells = append(row.Cells, htmlCell{
				Text:    e.Cell.Text,
				Class:   cellClass(e.Cell.Style, e.Cell.Text),
				ColSpan: e.Cell.ColSpan,
				RowSpan: e.Cell.RowSpan,
			})
		}
		page.Rows[d] = row
	}

	if err := htmlTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}
	return nil
}

// cellClass joins the style tag and the subject colour class.
func cellClass(style, text string) string {
	return strings.TrimSpace(style + " " + subjectClass(text))
}
