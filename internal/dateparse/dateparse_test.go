package dateparse

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	cases := []struct {
		value string
		want  string
	}{
		{"2025-03-01", "2025-03-01"},
		{"2025-03-01T18:30:00Z", "2025-03-01"},
		{"3/1/2025", "2025-03-01"},
		{"03/01/25", "2025-03-01"},
		{"March 1st, 2025", "2025-03-01"},
		{"march 22nd 2025", "2025-03-22"},
		{"Mar. 3, 2025", "2025-03-03"},
		{"Sept 5, 2025", "2025-09-05"},
		{"5 June 2025", "2025-06-05"},
		{"2025-3-1", "2025-03-01"},
		{"2025/3/1", "2025-03-01"},
		{"2025/03/01", "2025-03-01"},
		{"March 1, 2025 11:59 PM", "2025-03-01"},
		{"March 1 2025 at 5pm", "2025-03-01"},
		{"March 1, 2025 at 11:59 p.m. EST", "2025-03-01"},
		{"3/1/2025 17:00", "2025-03-01"},
		{"Mar. 1st, 2025", "2025-03-01"},
		{"Sept 5th, 2025", "2025-09-05"},
	}

	for _, tc := range cases {
		got, ok := Parse(tc.value)
		if !ok {
			t.Fatalf("Parse(%q) failed", tc.value)
		}
		if Format(got) != tc.want {
			t.Fatalf("Parse(%q) = %s, want %s", tc.value, Format(got), tc.want)
		}
	}
}

func TestParseRejects(t *testing.T) {
	for _, value := range []string{"", "rolling", "13/40/2025", "2/30/2025", "March 2025"} {
		if got, ok := Parse(value); ok {
			t.Fatalf("Parse(%q) = %s, want failure", value, Format(got))
		}
	}
}

func TestStripOrdinals(t *testing.T) {
	got := StripOrdinals("Due March 1st and April 22nd, 3rd try, 4th")
	want := "Due March 1 and April 22, 3 try, 4"
	if got != want {
		t.Fatalf("StripOrdinals() = %q, want %q", got, want)
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, 3, 1, 23, 59, 0, 0, time.UTC)
	b := time.Date(2025, 3, 4, 0, 1, 0, 0, time.UTC)
	if got := DaysBetween(a, b); got != 3 {
		t.Fatalf("DaysBetween() = %d, want 3", got)
	}
	if got := DaysBetween(b, a); got != -3 {
		t.Fatalf("DaysBetween() reversed = %d, want -3", got)
	}
}
