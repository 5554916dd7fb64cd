package grid

import (
	"fmt"

	"github.com/julianstephens/timegrid/internal/logger"
	"github.com/julianstephens/timegrid/internal/timetable"
)

// Render resolves every (day, slot) coordinate of tt to exactly one entry.
//
// Days are swept top to bottom and each day's cells left to right. Before a cell
// is placed, columns already claimed by a row span from an earlier day are
// skipped; the cell then claims its colspan × rowspan rectangle. Overlaps,
// spans running off the grid and unclaimed coordinates fail with *LayoutError.
func Render(tt *timetable.Timetable) (*Grid, error) {
	days := tt.Days()
	dayCount, slotCount := tt.DayCount(), tt.SlotCount()

	g := &Grid{
		corner:     tt.Corner(),
		caption:    tt.Caption(),
		dayLabels:  make([]string, dayCount),
		slotLabels: make([]string, slotCount),
		entries:    make([][]Entry, dayCount),
	}
	for s := 0; s < slotCount; s++ {
		g.slotLabels[s] = tt.Slot(s).Label
	}
	for d := range days {
		g.dayLabels[d] = days[d].Label
		g.entries[d] = make([]Entry, slotCount)
	}

	for d := range days {
		slot := 0
		for i := range days[d].Cells {
			cell := &days[d].Cells[i]

			for slot < slotCount && g.entries[d][slot].Cell != nil {
				slot++
			}
			if slot >= slotCount {
				return nil, g.rowError(d, "no free slot left for cell %d (%q)", i, cell.Text)
			}

			cols, rows := cell.ColSpan, cell.RowSpan
			if slot+cols > slotCount {
				return nil, g.layoutError(d, slot, "cell %q spans %d columns past the last slot", cell.Text, slot+cols-slotCount)
			}
			if d+rows > dayCount {
				return nil, g.layoutError(d, slot, "cell %q spans %d rows past the last day", cell.Text, d+rows-dayCount)
			}

			origin := Ref{Day: d, Slot: slot}
			for dd := d; dd < d+rows; dd++ {
				for ss := slot; ss < slot+cols; ss++ {
					if prev := g.entries[dd][ss]; prev.Cell != nil {
						return nil, g.layoutError(dd, ss, "cell %q from %s overlaps cell %q from %s",
							cell.Text, g.refName(origin), prev.Cell.Text, g.refName(prev.Origin))
					}
					g.entries[dd][ss] = Entry{
						IsOrigin: dd == d && ss == slot,
						Origin:   origin,
						Cell:     cell,
					}
				}
			}
			g.placements = append(g.placements, Placement{Origin: origin, Cell: cell, Cols: cols, Rows: rows})
			slot += cols
		}
	}

	for d := 0; d < dayCount; d++ {
		for s := 0; s < slotCount; s++ {
			if g.entries[d][s].Cell == nil {
				return nil, g.layoutError(d, s, "slot is not claimed by any cell")
			}
		}
	}

	logger.Debug("Rendered grid", "days", dayCount, "slots", slotCount, "cells", len(g.placements))
	return g, nil
}

func (g *Grid) layoutError(day, slot int, format string, args ...interface{}) *LayoutError {
	return &LayoutError{
		Day:       g.dayLabels[day],
		DayIndex:  day,
		Slot:      g.slotLabels[slot],
		SlotIndex: slot,
		Reason:    fmt.Sprintf(format, args...),
	}
}

func (g *Grid) rowError(day int, format string, args ...interface{}) *LayoutError {
	return &LayoutError{
		Day:       g.dayLabels[day],
		DayIndex:  day,
		SlotIndex: -1,
		Reason:    fmt.Sprintf(format, args...),
	}
}

func (g *Grid) refName(r Ref) string {
	return fmt.Sprintf("%s %s", g.dayLabels[r.Day], g.slotLabels[r.Slot])
}
