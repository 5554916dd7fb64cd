package models

import (
	"encoding/json"
	"fmt"
)

// TimeSlot is one column of the timetable, e.g. "08:30 - 09:30".
type TimeSlot struct {
	Label string `json:"label"`
}

// Cell is an authored table cell. Zero spans are read as 1.
type Cell struct {
	Text    string `json:"text"`
	Style   string `json:"style,omitempty"` // e.g. "lab", "elective"
	ColSpan int    `json:"col_span,omitempty"`
	RowSpan int    `json:"row_span,omitempty"`
}

// Cols returns the number of slot columns the cell occupies.
func (c Cell) Cols() int {
	if c.ColSpan == 0 {
		return 1
	}
	return c.ColSpan
}

// Rows returns the number of day rows the cell occupies.
func (c Cell) Rows() int {
	if c.RowSpan == 0 {
		return 1
	}
	return c.RowSpan
}

// DayRow is a day label and its cells in left-to-right authoring order.
// Cells covered by a row span from an earlier day are not repeated here.
type DayRow struct {
	Label string `json:"label"`
	Cells []Cell `json:"cells"`
}

// Timetable is the authored form of a weekly timetable.
type Timetable struct {
	Corner  string     `json:"corner,omitempty"`
	Caption string     `json:"caption,omitempty"`
	Slots   []TimeSlot `json:"slots"`
	Days    []DayRow   `json:"days"`
}

// UnmarshalJSON accepts either a bare label string or {"label": "..."}.
func (s *TimeSlot) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		s.Label = label
		return nil
	}
	type plain TimeSlot
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("time slot must be a string or an object with a label: %w", err)
	}
	*s = TimeSlot(p)
	return nil
}

// MarshalJSON writes the slot as its bare label.
func (s TimeSlot) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Label)
}
