package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/timegrid/internal/grid"
	"github.com/julianstephens/timegrid/internal/models"
	"github.com/julianstephens/timegrid/internal/timetable"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvalidSlotLabel   ConflictType = "invalid_slot_label"
	ConflictDuplicateSlotLabel ConflictType = "duplicate_slot_label"
	ConflictSlotOrder          ConflictType = "slot_order"
	ConflictEmptyDayLabel      ConflictType = "empty_day_label"
	ConflictDuplicateDayLabel  ConflictType = "duplicate_day_label"
	ConflictInvalidSpan        ConflictType = "invalid_span"
	ConflictRowWidth           ConflictType = "row_width"
	ConflictLayout             ConflictType = "layout"
	ConflictEmpty              ConflictType = "empty"
)

var conflictTypes = map[timetable.Kind]ConflictType{
	timetable.KindEmpty:         ConflictEmpty,
	timetable.KindSlotLabel:     ConflictInvalidSlotLabel,
	timetable.KindDuplicateSlot: ConflictDuplicateSlotLabel,
	timetable.KindSlotOrder:     ConflictSlotOrder,
	timetable.KindDayLabel:      ConflictEmptyDayLabel,
	timetable.KindDuplicateDay:  ConflictDuplicateDayLabel,
	timetable.KindSpan:          ConflictInvalidSpan,
	timetable.KindRowWidth:      ConflictRowWidth,
}

// Conflict represents a detected problem in an authored timetable
type Conflict struct {
	Type        ConflictType
	Description string
	Day         string // Day label (if applicable)
	Slot        string // Slot label (if applicable)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Count returns the number of conflicts of the given type
func (vr *ValidationResult) Count(t ConflictType) int {
	n := 0
	for _, c := range vr.Conflicts {
		if c.Type == t {
			n++
		}
	}
	return n
}

// Validator validates authored timetables
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateSource checks an authored timetable and reports every problem found,
// rather than stopping at the first one as timetable.Build does. The layout sweep
// only runs when no other conflict was found.
func (v *Validator) ValidateSource(src models.Timetable) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	if len(src.Slots) == 0 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictEmpty,
			Description: "Timetable has no time slots",
		})
	}
	if len(src.Days) == 0 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictEmpty,
			Description: "Timetable has no days",
		})
	}

	for _, err := range timetable.CheckSlots(src.Slots) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        conflictTypes[err.Kind],
			Description: fmt.Sprintf("Slot %d (%q): %s", err.SlotIndex, err.Slot, err.Reason),
			Slot:        err.Slot,
		})
	}

	for _, err := range timetable.CheckDays(src.Days) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        conflictTypes[err.Kind],
			Description: fmt.Sprintf("Day %d (%q): %s", err.DayIndex, err.Day, err.Reason),
			Day:         strings.TrimSpace(err.Day),
		})
	}

	rowErrs := timetable.CheckRows(len(src.Slots), src.Days)
	for _, err := range rowErrs {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        conflictTypes[err.Kind],
			Description: fmt.Sprintf("Day %q: %s", err.Day, err.Reason),
			Day:         err.Day,
		})
	}

	if result.HasConflicts() {
		return result
	}

	tt, err := timetable.Build(src)
	if err != nil {
		// Every Build check has already been reported above
		return result
	}
	if _, err := grid.Render(tt); err != nil {
		var layoutErr *grid.LayoutError
		if errors.As(err, &layoutErr) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictLayout,
				Description: layoutErr.Error(),
				Day:         layoutErr.Day,
				Slot:        layoutErr.Slot,
			})
		} else {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictLayout,
				Description: err.Error(),
			})
		}
	}

	return result
}
