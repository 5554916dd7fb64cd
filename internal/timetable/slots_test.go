package timetable

import (
	"strings"
	"testing"
)

func TestParseSlotStart(t *testing.T) {
	tests := []struct {
		label   string
		want    int
		wantErr bool
	}{
		{label: "08:30 - 09:30", want: 8*60 + 30},
		{label: "08:30–09:30", want: 8*60 + 30},
		{label: "12:45 - 01:30", want: 12*60 + 45},
		{label: "13:00-14:00", want: 13 * 60},
		{label: "noon", wantErr: true},
		{label: "25:00 - 26:00", wantErr: true},
		{label: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := ParseSlotStart(tt.label)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseSlotStart(%q) = %d, want error", tt.label, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSlotStart(%q) error = %v", tt.label, err)
			}
			if got != tt.want {
				t.Errorf("ParseSlotStart(%q) = %d, want %d", tt.label, got, tt.want)
			}
		})
	}
}

func TestCheckSlots(t *testing.T) {
	tests := []struct {
		name    string
		labels  []string
		wantErr string
	}{
		{
			name:   "morning into afternoon without meridiem",
			labels: []string{"11:45 - 12:45", "12:45 - 01:30", "01:30 - 02:30", "03:30 - 04:30"},
		},
		{
			name:   "24 hour clock",
			labels: []string{"09:00 - 10:00", "13:00 - 14:00", "14:00 - 15:00"},
		},
		{
			name:    "duplicate label",
			labels:  []string{"09:00 - 10:00", "09:00 - 10:00"},
			wantErr: "duplicate slot label",
		},
		{
			name:    "empty label",
			labels:  []string{"09:00 - 10:00", "  "},
			wantErr: "slot label is empty",
		},
		{
			name:    "unparseable start",
			labels:  []string{"first period"},
			wantErr: "expected HH:MM",
		},
		{
			name:   "noon reached by the previous end time",
			labels: []string{"11:00 - 12:00", "01:00 - 02:00", "02:00 - 03:00"},
		},
		{
			name:    "out of order",
			labels:  []string{"14:00 - 15:00", "10:00 - 11:00"},
			wantErr: "starts before the previous slot",
		},
		{
			name:    "descending morning slots",
			labels:  []string{"10:00 - 11:00", "09:00 - 10:00"},
			wantErr: "starts before the previous slot",
		},
		{
			name:    "backwards after the afternoon wrap",
			labels:  []string{"12:45 - 01:30", "02:30 - 03:30", "01:30 - 02:30"},
			wantErr: "starts before the previous slot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := CheckSlots(slotsOf(tt.labels...))
			if tt.wantErr == "" {
				if len(errs) != 0 {
					t.Fatalf("CheckSlots() = %v, want no errors", errs)
				}
				return
			}
			if len(errs) == 0 {
				t.Fatalf("CheckSlots() returned no errors, want %q", tt.wantErr)
			}
			if !strings.Contains(errs[0].Error(), tt.wantErr) {
				t.Errorf("CheckSlots()[0] = %q, want to contain %q", errs[0].Error(), tt.wantErr)
			}
		})
	}
}
