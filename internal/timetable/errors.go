package timetable

import "fmt"

// Kind classifies a ValidationError.
type Kind string

const (
	KindEmpty         Kind = "empty"
	KindSlotLabel     Kind = "slot_label"
	KindDuplicateSlot Kind = "duplicate_slot"
	KindSlotOrder     Kind = "slot_order"
	KindDayLabel      Kind = "day_label"
	KindDuplicateDay  Kind = "duplicate_day"
	KindSpan          Kind = "span"
	KindRowWidth      Kind = "row_width"
)

// ValidationError reports authored data that cannot form a timetable,
// most commonly a day whose cells do not tile the slot columns.
// DayIndex and SlotIndex are -1 when the problem is not tied to one.
type ValidationError struct {
	Kind      Kind
	Day       string
	DayIndex  int
	Slot      string
	SlotIndex int
	Reason    string
}

func (e *ValidationError) Error() string {
	switch {
	case e.DayIndex >= 0 && e.SlotIndex >= 0:
		return fmt.Sprintf("invalid timetable: day %q (row %d), slot %q: %s", e.Day, e.DayIndex, e.Slot, e.Reason)
	case e.DayIndex >= 0:
		return fmt.Sprintf("invalid timetable: day %q (row %d): %s", e.Day, e.DayIndex, e.Reason)
	case e.SlotIndex >= 0:
		return fmt.Sprintf("invalid timetable: slot %d (%q): %s", e.SlotIndex, e.Slot, e.Reason)
	default:
		return "invalid timetable: " + e.Reason
	}
}

func dayError(kind Kind, day string, index int, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Kind:      kind,
		Day:       day,
		DayIndex:  index,
		SlotIndex: -1,
		Reason:    fmt.Sprintf(format, args...),
	}
}

func slotError(kind Kind, slot string, index int, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Kind:      kind,
		DayIndex:  -1,
		Slot:      slot,
		SlotIndex: index,
		Reason:    fmt.Sprintf(format, args...),
	}
}
