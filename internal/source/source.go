// Package source loads authored timetables from HCL and JSON files.
package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/julianstephens/timegrid/internal/logger"
	"github.com/julianstephens/timegrid/internal/models"
)

// hclFile is the top-level structure of a .hcl timetable for decoding.
type hclFile struct {
	Corner  string   `hcl:"corner,optional"`
	Caption string   `hcl:"caption,optional"`
	Slots   []string `hcl:"slots"`
	Days    []hclDay `hcl:"day,block"`
}

type hclDay struct {
	Label string    `hcl:"label,label"`
	Cells []hclCell `hcl:"cell,block"`
}

type hclCell struct {
	Text    string `hcl:"text"`
	Style   string `hcl:"style,optional"`
	ColSpan int    `hcl:"col_span,optional"`
	RowSpan int    `hcl:"row_span,optional"`
}

// Load reads the timetable at path. The format is chosen by extension (.hcl or .json).
func Load(path string) (models.Timetable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Timetable{}, fmt.Errorf("failed to read timetable %s: %w", path, err)
	}
	src, err := Parse(path, data)
	if err != nil {
		return models.Timetable{}, err
	}
	logger.Debug("Loaded timetable source", "path", path, "days", len(src.Days), "slots", len(src.Slots))
	return src, nil
}

// Parse decodes data; name is used to pick the format and in error messages.
func Parse(name string, data []byte) (models.Timetable, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".hcl":
		return parseHCL(name, data)
	case ".json":
		return parseJSON(name, data)
	default:
		return models.Timetable{}, fmt.Errorf("unsupported timetable format %q (use .hcl or .json)", filepath.Ext(name))
	}
}

func parseHCL(name string, data []byte) (models.Timetable, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, name)
	if diags.HasErrors() {
		return models.Timetable{}, fmt.Errorf("failed to parse HCL file %s: %w", name, diags)
	}

	var parsed hclFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return models.Timetable{}, fmt.Errorf("failed to decode HCL file %s: %w", name, diags)
	}

	src := models.Timetable{
		Corner:  parsed.Corner,
		Caption: parsed.Caption,
		Slots:   make([]models.TimeSlot, len(parsed.Slots)),
		Days:    make([]models.DayRow, len(parsed.Days)),
	}
	for i, label := range parsed.Slots {
		src.Slots[i] = models.TimeSlot{Label: label}
	}
	for i, day := range parsed.Days {
		cells := make([]models.Cell, len(day.Cells))
		for j, c := range day.Cells {
			cells[j] = models.Cell{Text: c.Text, Style: c.Style, ColSpan: c.ColSpan, RowSpan: c.RowSpan}
		}
		src.Days[i] = models.DayRow{Label: day.Label, Cells: cells}
	}
	return src, nil
}

func parseJSON(name string, data []byte) (models.Timetable, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var src models.Timetable
	if err := dec.Decode(&src); err != nil {
		return models.Timetable{}, fmt.Errorf("failed to parse JSON file %s: %w", name, err)
	}
	return src, nil
}
