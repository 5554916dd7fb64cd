// Package timetable holds the validated, read-only form of an authored timetable.
package timetable

import (
	"strings"

	"github.com/julianstephens/timegrid/internal/constants"
	"github.com/julianstephens/timegrid/internal/logger"
	"github.com/julianstephens/timegrid/internal/models"
)

// Timetable is an immutable day × slot timetable. It is safe for concurrent readers.
type Timetable struct {
	corner  string
	caption string
	slots   []models.TimeSlot
	days    []models.DayRow
}

// Build validates src and returns a Timetable holding its own copy of the data.
// It fails with a *ValidationError when the slots are malformed, a day label is
// empty or repeated, or any day's cells, together with cells carried down from earlier days by a row span,
// do not exactly fill the slot columns.
func Build(src models.Timetable) (*Timetable, error) {
	if len(src.Slots) == 0 {
		return nil, &ValidationError{Kind: KindEmpty, DayIndex: -1, SlotIndex: -1, Reason: "timetable has no time slots"}
	}
	if len(src.Days) == 0 {
		return nil, &ValidationError{Kind: KindEmpty, DayIndex: -1, SlotIndex: -1, Reason: "timetable has no days"}
	}

	if errs := CheckSlots(src.Slots); len(errs) > 0 {
		return nil, errs[0]
	}
	if errs := CheckDays(src.Days); len(errs) > 0 {
		return nil, errs[0]
	}
	if errs := CheckRows(len(src.Slots), src.Days); len(errs) > 0 {
		return nil, errs[0]
	}

	corner := strings.TrimSpace(src.Corner)
	if corner == "" {
		corner = constants.DefaultCorner
	}

	tt := &Timetable{
		corner:  corner,
		caption: src.Caption,
		slots:   copySlots(src.Slots),
		days:    copyDays(src.Days),
	}
	logger.Debug("Built timetable", "days", tt.DayCount(), "slots", tt.SlotCount())
	return tt, nil
}

// CheckDays returns every empty or repeated day label. Labels are compared
// after trimming.
func CheckDays(days []models.DayRow) []*ValidationError {
	var errs []*ValidationError
	seen := make(map[string]int, len(days))

	for d, row := range days {
		label := strings.TrimSpace(row.Label)
		if label == "" {
			errs = append(errs, dayError(KindDayLabel, row.Label, d, "day label is empty"))
			continue
		}
		if first, ok := seen[label]; ok {
			errs = append(errs, dayError(KindDuplicateDay, label, d, "duplicate day label (first used by row %d)", first))
			continue
		}
		seen[label] = d
	}

	return errs
}

// CheckRows returns every day whose cells do not tile slotCount columns, counting
// the columns claimed by row spans that start on an earlier day. Negative spans
// are reported and counted as 1.
func CheckRows(slotCount int, days []models.DayRow) []*ValidationError {
	var errs []*ValidationError
	carried := make([]int, len(days))

	for d, row := range days {
		own := 0
		for i, cell := range row.Cells {
			if cell.ColSpan < 0 || cell.RowSpan < 0 {
				errs = append(errs, dayError(KindSpan, row.Label, d, "cell %d (%q) has a negative span (colspan=%d, rowspan=%d)",
					i, cell.Text, cell.ColSpan, cell.RowSpan))
			}
			cols, rows := spanOf(cell)
			own += cols
			for r := d + 1; r < d+rows && r < len(days); r++ {
				carried[r] += cols
			}
		}

		if total := own + carried[d]; total != slotCount {
			if carried[d] > 0 {
				errs = append(errs, dayError(KindRowWidth, row.Label, d, "cells span %d of %d slots (%d authored, %d carried from earlier rows)",
					total, slotCount, own, carried[d]))
			} else {
				errs = append(errs, dayError(KindRowWidth, row.Label, d, "cells span %d of %d slots", total, slotCount))
			}
		}
	}

	return errs
}

func spanOf(c models.Cell) (cols, rows int) {
	cols, rows = c.Cols(), c.Rows()
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// SlotCount returns the number of slot columns.
func (t *Timetable) SlotCount() int {
	return len(t.slots)
}

// DayCount returns the number of day rows.
func (t *Timetable) DayCount() int {
	return len(t.days)
}

// Slots returns a copy of the slot columns.
func (t *Timetable) Slots() []models.TimeSlot {
	return copySlots(t.slots)
}

// Days returns a copy of the day rows, spans normalised to at least 1.
func (t *Timetable) Days() []models.DayRow {
	return copyDays(t.days)
}

// Slot returns the slot at column i.
func (t *Timetable) Slot(i int) models.TimeSlot {
	return t.slots[i]
}

// Day returns a copy of the day at row i.
func (t *Timetable) Day(i int) models.DayRow {
	return copyDay(t.days[i])
}

func (t *Timetable) Caption() string {
	return t.caption
}

func (t *Timetable) Corner() string {
	return t.corner
}

func copySlots(slots []models.TimeSlot) []models.TimeSlot {
	out := make([]models.TimeSlot, len(slots))
	for i, s := range slots {
		out[i] = models.TimeSlot{Label: strings.TrimSpace(s.Label)}
	}
	return out
}

func copyDays(days []models.DayRow) []models.DayRow {
	out := make([]models.DayRow, len(days))
	for i, d := range days {
		out[i] = copyDay(d)
	}
	return out
}

func copyDay(d models.DayRow) models.DayRow {
	cells := make([]models.Cell, len(d.Cells))
	for i, c := range d.Cells {
		c.ColSpan, c.RowSpan = spanOf(c)
		cells[i] = c
	}
	return models.DayRow{Label: strings.TrimSpace(d.Label), Cells: cells}
}
