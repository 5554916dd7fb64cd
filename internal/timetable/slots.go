package timetable

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/timegrid/internal/constants"
	"github.com/julianstephens/timegrid/internal/models"
)

const halfDayMinutes = 12 * 60

// ParseSlotStart returns the start of a slot label such as "08:30 - 09:30"
// in minutes after midnight, read on a 12-hour clock.
func ParseSlotStart(label string) (int, error) {
	parts := splitSlotLabel(label)
	if len(parts) == 0 {
		return 0, fmt.Errorf("empty slot label")
	}
	start, err := parseClock(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid start time in slot label %q: expected HH:MM", label)
	}
	return start, nil
}

// parseSlotEnd returns the end of a slot label in minutes after midnight, or
// false when the label has no readable end time.
func parseSlotEnd(label string) (int, bool) {
	parts := splitSlotLabel(label)
	if len(parts) < 2 {
		return 0, false
	}
	end, err := parseClock(parts[1])
	if err != nil {
		return 0, false
	}
	return end, true
}

func splitSlotLabel(label string) []string {
	return strings.FieldsFunc(label, func(r rune) bool {
		return r == '-' || r == '–' || r == '—'
	})
}

func parseClock(s string) (int, error) {
	t, err := time.Parse(constants.SlotTimeFormat, strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// CheckSlots returns every problem with the slot labels: empty, duplicate,
// unparseable or out of order. Labels may be written on a 12-hour clock without a
// meridiem. A morning-looking start that goes backwards is read as afternoon only
// once the timeline has reached noon and the previous label is itself 12-hour
// time, so "12:45 - 01:30" followed by "01:30 - 02:30" is in order while
// "10:00" followed by "09:00" is not.
func CheckSlots(slots []models.TimeSlot) []*ValidationError {
	var errs []*ValidationError
	seen := make(map[string]int, len(slots))
	prev, prevRaw, prevEnd := -1, -1, -1

	for i, slot := range slots {
		label := strings.TrimSpace(slot.Label)
		if label == "" {
			errs = append(errs, slotError(KindSlotLabel, slot.Label, i, "slot label is empty"))
			continue
		}
		if first, ok := seen[label]; ok {
			errs = append(errs, slotError(KindDuplicateSlot, label, i, "duplicate slot label (first used by slot %d)", first))
			continue
		}
		seen[label] = i

		start, err := ParseSlotStart(label)
		if err != nil {
			errs = append(errs, slotError(KindSlotLabel, label, i, "%v", err))
			continue
		}
		raw := start
		reachedNoon := prev >= halfDayMinutes || prevEnd >= halfDayMinutes
		if start < prev && start < halfDayMinutes && prevRaw < halfDayMinutes+60 && reachedNoon {
			start += halfDayMinutes
		}
		if start < prev {
			errs = append(errs, slotError(KindSlotOrder, label, i, "slot starts before the previous slot"))
			continue
		}
		prev, prevRaw, prevEnd = start, raw, slotEnd(label, start, raw)
	}

	return errs
}

// slotEnd places the label's end time on the same timeline as its adjusted
// start, or returns -1 when the end cannot be read.
func slotEnd(label string, start, rawStart int) int {
	end, ok := parseSlotEnd(label)
	if !ok {
		return -1
	}
	end += start - rawStart
	if end < start {
		end += halfDayMinutes
	}
	return end
}
