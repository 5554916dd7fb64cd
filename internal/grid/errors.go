package grid

import "fmt"

// LayoutError reports a span overlap, overflow or gap found while resolving the grid.
// SlotIndex is -1 when the problem concerns a whole row.
type LayoutError struct {
	Day       string
	DayIndex  int
	Slot      string
	SlotIndex int
	Reason    string
}

func (e *LayoutError) Error() string {
	if e.SlotIndex < 0 {
		return fmt.Sprintf("layout error: day %q (row %d): %s", e.Day, e.DayIndex, e.Reason)
	}
	return fmt.Sprintf("layout error: day %q (row %d), slot %q (column %d): %s",
		e.Day, e.DayIndex, e.Slot, e.SlotIndex, e.Reason)
}
