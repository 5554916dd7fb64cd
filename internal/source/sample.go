package source

import (
	"github.com/julianstephens/timegrid/internal/constants"
	"github.com/julianstephens/timegrid/internal/models"
)

// Sample returns the built-in CSE 5th semester (section A) timetable.
// Each call returns a fresh value.
func Sample() models.Timetable {
	c := func(text string) models.Cell { return models.Cell{Text: text} }

	return models.Timetable{
		Corner:  constants.DefaultCorner,
		Caption: "Department of Computer Science & Engineering - 5th Sem A Section (2025-26)",
		Slots: []models.TimeSlot{
			{Label: "08:30 - 09:30"},
			{Label: "09:30 - 10:30"},
			{Label: "10:30 - 10:45"},
			{Label: "10:45 - 11:45"},
			{Label: "11:45 - 12:45"},
			{Label: "12:45 - 01:30"},
			{Label: "01:30 - 02:30"},
			{Label: "02:30 - 03:30"},
			{Label: "03:30 - 04:30"},
		},
		Days: []models.DayRow{
			{Label: "Monday", Cells: []models.Cell{
				c("TOC"),
				c("RMIPR"),
				{Text: "Tea Break", RowSpan: 6},
				c("CN"),
				c("SEPM"),
				{Text: "Lunch Break", RowSpan: 6},
				{Text: "Mini Project", ColSpan: 3},
			}},
			{Label: "Tuesday", Cells: []models.Cell{
				c("TOC"),
				c("Aptitude"),
				c("CN"),
				c("AI"),
				c("Value Added"),
				{Text: "Club Activity", ColSpan: 2},
			}},
			{Label: "Wednesday", Cells: []models.Cell{
				{Text: "WT Lab (A1) / CN Lab (A2)", Style: constants.StyleLab, ColSpan: 2},
				c("SEPM"),
				c("TOC"),
				{Text: "---", ColSpan: 3},
			}},
			{Label: "Thursday", Cells: []models.Cell{
				c("CN"),
				c("RMIPR"),
				{Text: "WT Lab (A2) / CN Lab (A1)", Style: constants.StyleLab, ColSpan: 2},
				c("TOC"),
				c("SEPM"),
				c("---"),
			}},
			{Label: "Friday", Cells: []models.Cell{
				c("AI"),
				{Text: "Soft Skills", Style: constants.StyleElective},
				c("TOC"),
				c("SEPM"),
				c("AI"),
				c("SEPM"),
				c("EVS"),
			}},
			{Label: "Saturday", Cells: []models.Cell{
				c("RMIPR"),
				c("TOC"),
				c("AI"),
				c("CN"),
				c("RMIPR"),
				c("CN"),
				c("AI"),
			}},
		},
	}
}
