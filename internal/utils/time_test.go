package utils

import (
	"testing"
	"time"
)

func TestParseTimeToMinutes(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"08:30", 510, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"8:30am", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseTimeToMinutes(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseTimeToMinutes(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeToMinutes(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTimeToMinutes(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestFormatMinutesRoundTrip(t *testing.T) {
	for _, minutes := range []int{0, 1, 59, 60, 510, 1439} {
		formatted := FormatMinutes(minutes)
		parsed, err := ParseTimeToMinutes(formatted)
		if err != nil {
			t.Fatalf("FormatMinutes(%d) produced unparseable %q", minutes, formatted)
		}
		if parsed != minutes {
			t.Errorf("round trip %d -> %q -> %d", minutes, formatted, parsed)
		}
	}
}

func TestMinuteOfDay(t *testing.T) {
	tm := time.Date(2026, 3, 14, 9, 45, 30, 0, time.UTC)
	if got := MinuteOfDay(tm); got != 585 {
		t.Errorf("MinuteOfDay = %d, want 585", got)
	}
}

func TestCombineDateAndTime(t *testing.T) {
	got, err := CombineDateAndTime("2026-03-14", "09:30")
	if err != nil {
		t.Fatalf("CombineDateAndTime: %v", err)
	}
	if got.Year() != 2026 || got.Month() != 3 || got.Day() != 14 || got.Hour() != 9 || got.Minute() != 30 {
		t.Errorf("unexpected combined time: %v", got)
	}

	if _, err := CombineDateAndTime("03/14/2026", "09:30"); err == nil {
		t.Error("expected error for bad date format")
	}
	if _, err := CombineDateAndTime("2026-03-14", "9:30pm"); err == nil {
		t.Error("expected error for bad time format")
	}
}
