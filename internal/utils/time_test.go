package utils

import (
	"testing"
	"time"
)

func TestAddClockWrapsMidnight(t *testing.T) {
	cases := []struct {
		clock string
		d     time.Duration
		want  string
	}{
		{"08:00", 6 * time.Hour, "14:00"},
		{"21:00", 6 * time.Hour, "03:00"},
		{"23:30", 45 * time.Minute, "00:15"},
		{"bogus", time.Hour, "bogus"},
	}
	for _, tc := range cases {
		if got := AddClock(tc.clock, tc.d); got != tc.want {
			t.Fatalf("AddClock(%q, %s): got %q want %q", tc.clock, tc.d, got, tc.want)
		}
	}
}

func TestParseDateRejectsOtherLayouts(t *testing.T) {
	if _, err := ParseDate("2026-09-01"); err != nil {
		t.Fatalf("valid date rejected: %v", err)
	}
	for _, bad := range []string{"09/01/2026", "2026-9-1", "tomorrow"} {
		if _, err := ParseDate(bad); err == nil {
			t.Fatalf("%q accepted", bad)
		}
	}
}

func TestFormatPeso(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{1160, "₱1160"},
		{580, "₱580"},
		{99.5, "₱99.5"},
	}
	for _, tc := range cases {
		if got := FormatPeso(tc.amount); got != tc.want {
			t.Fatalf("FormatPeso(%v): got %q want %q", tc.amount, got, tc.want)
		}
	}
}
