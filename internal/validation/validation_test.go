package validation

import (
	"strings"
	"testing"

	"github.com/julianstephens/timegrid/internal/models"
	"github.com/julianstephens/timegrid/internal/source"
)

func TestValidateSource_Sample(t *testing.T) {
	result := New().ValidateSource(source.Sample())

	if result.HasConflicts() {
		t.Errorf("Expected no conflicts for the sample timetable, got:\n%s", result.FormatReport())
	}
	if result.FormatReport() != "No conflicts detected." {
		t.Errorf("FormatReport() = %q", result.FormatReport())
	}
}

func TestValidateSource_ReportsEveryBadRow(t *testing.T) {
	src := source.Sample()
	src.Days[1].Cells = src.Days[1].Cells[:5] // Tuesday loses Club Activity
	src.Days[4].Cells = append(src.Days[4].Cells, models.Cell{Text: "Extra"})

	result := New().ValidateSource(src)

	if got := result.Count(ConflictRowWidth); got != 2 {
		t.Fatalf("Expected 2 row width conflicts, got %d:\n%s", got, result.FormatReport())
	}
	report := result.FormatReport()
	for _, day := range []string{"Tuesday", "Friday"} {
		if !strings.Contains(report, day) {
			t.Errorf("Report does not mention %s:\n%s", day, report)
		}
	}
	if result.Count(ConflictLayout) != 0 {
		t.Error("Layout should not be checked when rows do not tile")
	}
}

func TestValidateSource_SlotProblems(t *testing.T) {
	src := source.Sample()
	src.Slots[3].Label = src.Slots[2].Label
	src.Slots[8].Label = "later"

	result := New().ValidateSource(src)

	if result.Count(ConflictDuplicateSlotLabel) != 1 {
		t.Errorf("Expected 1 duplicate slot conflict:\n%s", result.FormatReport())
	}
	if result.Count(ConflictInvalidSlotLabel) != 1 {
		t.Errorf("Expected 1 invalid slot label conflict:\n%s", result.FormatReport())
	}
}

func TestValidateSource_SlotOrder(t *testing.T) {
	src := models.Timetable{
		Slots: []models.TimeSlot{{Label: "14:00 - 15:00"}, {Label: "10:00 - 11:00"}},
		Days:  []models.DayRow{{Label: "Mon", Cells: []models.Cell{{Text: "A"}, {Text: "B"}}}},
	}

	result := New().ValidateSource(src)
	if result.Count(ConflictSlotOrder) != 1 {
		t.Errorf("Expected a slot order conflict:\n%s", result.FormatReport())
	}
}

func TestValidateSource_DayLabels(t *testing.T) {
	src := source.Sample()
	src.Days[5].Label = "Friday"
	src.Days[0].Label = " "

	result := New().ValidateSource(src)

	if result.Count(ConflictDuplicateDayLabel) != 1 {
		t.Errorf("Expected a duplicate day label conflict:\n%s", result.FormatReport())
	}
	if result.Count(ConflictEmptyDayLabel) != 1 {
		t.Errorf("Expected an empty day label conflict:\n%s", result.FormatReport())
	}
}

func TestValidateSource_NegativeSpan(t *testing.T) {
	src := source.Sample()
	src.Days[5].Cells[0].ColSpan = -2

	result := New().ValidateSource(src)
	if result.Count(ConflictInvalidSpan) != 1 {
		t.Errorf("Expected an invalid span conflict:\n%s", result.FormatReport())
	}
}

func TestValidateSource_Layout(t *testing.T) {
	src := models.Timetable{
		Slots: []models.TimeSlot{{Label: "09:00 - 10:00"}, {Label: "10:00 - 11:00"}, {Label: "11:00 - 12:00"}},
		Days: []models.DayRow{
			{Label: "Mon", Cells: []models.Cell{{Text: "X"}, {Text: "Break", RowSpan: 2}, {Text: "Z"}}},
			{Label: "Tue", Cells: []models.Cell{{Text: "Lab", ColSpan: 2}}},
		},
	}

	result := New().ValidateSource(src)
	if result.Count(ConflictLayout) != 1 {
		t.Fatalf("Expected a layout conflict:\n%s", result.FormatReport())
	}
	if result.Conflicts[0].Day != "Tue" {
		t.Errorf("Layout conflict day = %q, want Tue", result.Conflicts[0].Day)
	}
}

func TestValidateSource_Empty(t *testing.T) {
	result := New().ValidateSource(models.Timetable{})
	if result.Count(ConflictEmpty) != 2 {
		t.Errorf("Expected 2 empty conflicts:\n%s", result.FormatReport())
	}
}
