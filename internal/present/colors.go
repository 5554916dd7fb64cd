package present

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SubjectColors is the rotating palette subjects are assigned from.
var SubjectColors = []string{"blue", "green", "orange", "pink", "violet"}

var subjectANSI = map[string]lipgloss.Color{
	"blue":   lipgloss.Color("33"),
	"green":  lipgloss.Color("42"),
	"orange": lipgloss.Color("208"),
	"pink":   lipgloss.Color("211"),
	"violet": lipgloss.Color("141"),
}

// SubjectColor returns the palette colour for a cell's text. The same subject
// always gets the same colour, regardless of case or surrounding space. Blank
// text has no colour.
func SubjectColor(text string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(text))
	if key == "" {
		return "", false
	}
	sum := 0
	for _, r := range key {
		sum += int(r)
	}
	return SubjectColors[sum%len(SubjectColors)], true
}

// subjectClass is the HTML class for a subject colour, or "" for blank text.
func subjectClass(text string) string {
	color, ok := SubjectColor(text)
	if !ok {
		return ""
	}
	return "subject-" + color
}
