// Package grid resolves a timetable's spanning cells into a dense day × slot grid.
package grid

import (
	"github.com/julianstephens/timegrid/internal/models"
)

// Ref addresses one coordinate of the grid.
type Ref struct {
	Day  int `json:"day"`
	Slot int `json:"slot"`
}

// Entry is the resolved content of one coordinate. Cell points at the authored
// cell placed at Origin; every coordinate covered by the same span shares it.
type Entry struct {
	IsOrigin bool
	Origin   Ref
	Cell     *models.Cell
}

// Placement is an authored cell together with the rectangle it claims.
type Placement struct {
	Origin Ref
	Cell   *models.Cell
	Cols   int
	Rows   int
}

// Covers reports whether the placement's rectangle contains (day, slot).
func (p Placement) Covers(day, slot int) bool {
	return day >= p.Origin.Day && day < p.Origin.Day+p.Rows &&
		slot >= p.Origin.Slot && slot < p.Origin.Slot+p.Cols
}

// Grid is the dense rendering of a timetable. It is read-only once rendered.
type Grid struct {
	corner     string
	caption    string
	dayLabels  []string
	slotLabels []string
	entries    [][]Entry
	placements []Placement
}

func (g *Grid) DayCount() int {
	return len(g.dayLabels)
}

func (g *Grid) SlotCount() int {
	return len(g.slotLabels)
}

func (g *Grid) DayLabel(day int) string {
	return g.dayLabels[day]
}

func (g *Grid) SlotLabel(slot int) string {
	return g.slotLabels[slot]
}

// DayLabels returns a copy of the row labels.
func (g *Grid) DayLabels() []string {
	return append([]string(nil), g.dayLabels...)
}

// SlotLabels returns a copy of the column labels.
func (g *Grid) SlotLabels() []string {
	return append([]string(nil), g.slotLabels...)
}

func (g *Grid) Caption() string {
	return g.caption
}

func (g *Grid) Corner() string {
	return g.corner
}

// At returns the entry at (day, slot).
func (g *Grid) At(day, slot int) Entry {
	return g.entries[day][slot]
}

// Row returns a copy of the entries for one day.
func (g *Grid) Row(day int) []Entry {
	return append([]Entry(nil), g.entries[day]...)
}

// OriginOf returns the origin entry that e belongs to.
func (g *Grid) OriginOf(e Entry) Entry {
	return g.entries[e.Origin.Day][e.Origin.Slot]
}

// PlacementAt returns the placement covering (day, slot).
func (g *Grid) PlacementAt(day, slot int) (Placement, bool) {
	origin := g.entries[day][slot].Origin
	for _, p := range g.placements {
		if p.Origin == origin {
			return p, true
		}
	}
	return Placement{}, false
}

// Placements returns every authored cell in row-major placement order.
func (g *Grid) Placements() []Placement {
	return append([]Placement(nil), g.placements...)
}

// FindDay returns the row index of the day with the given label.
func (g *Grid) FindDay(label string) (int, bool) {
	for i, l := range g.dayLabels {
		if l == label {
			return i, true
		}
	}
	return -1, false
}

// Equal reports whether both grids resolve to the same labels and entries.
// Cells are compared by value.
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.corner != other.corner || g.caption != other.caption {
		return false
	}
	if !equalStrings(g.dayLabels, other.dayLabels) || !equalStrings(g.slotLabels, other.slotLabels) {
		return false
	}
	for d := range g.entries {
		for s := range g.entries[d] {
			a, b := g.entries[d][s], other.entries[d][s]
			if a.IsOrigin != b.IsOrigin || a.Origin != b.Origin {
				return false
			}
			if (a.Cell == nil) != (b.Cell == nil) {
				return false
			}
			if a.Cell != nil && *a.Cell != *b.Cell {
				return false
			}
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
