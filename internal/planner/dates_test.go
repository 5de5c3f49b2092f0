package planner

import (
	"testing"
	"time"
)

func TestDayRange_Inclusive(t *testing.T) {
	days := DayRange("2024-01-01", "2024-01-08")

	if got, want := len(days), DaysBetween("2024-01-01", "2024-01-08")+1; got != want {
		t.Fatalf("len(days) = %d, want %d", got, want)
	}
	if days[0] != "2024-01-01" {
		t.Errorf("days[0] = %q, want 2024-01-01", days[0])
	}
	if days[len(days)-1] != "2024-01-08" {
		t.Errorf("last day = %q, want 2024-01-08", days[len(days)-1])
	}

	// Strictly increasing by one calendar day, no gaps or duplicates
	for i := 1; i < len(days); i++ {
		prev, err := ParseDay(days[i-1])
		if err != nil {
			t.Fatalf("ParseDay(%q) error = %v", days[i-1], err)
		}
		cur, err := ParseDay(days[i])
		if err != nil {
			t.Fatalf("ParseDay(%q) error = %v", days[i], err)
		}
		if !cur.Equal(prev.AddDate(0, 0, 1)) {
			t.Errorf("days[%d] = %q does not follow %q by one day", i, days[i], days[i-1])
		}
	}
}

func TestDayRange_SameDay(t *testing.T) {
	days := DayRange("2024-06-15", "2024-06-15")
	if len(days) != 1 || days[0] != "2024-06-15" {
		t.Errorf("DayRange(same, same) = %v, want [2024-06-15]", days)
	}
}

func TestDayRange_EndBeforeStart(t *testing.T) {
	days := DayRange("2024-06-15", "2024-06-01")
	if len(days) != 1 || days[0] != "2024-06-15" {
		t.Errorf("DayRange(later, earlier) = %v, want just the start day", days)
	}
}

func TestDayRange_MonthAndLeapBoundary(t *testing.T) {
	days := DayRange("2024-02-27", "2024-03-02")
	want := []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"}
	if len(days) != len(want) {
		t.Fatalf("len(days) = %d, want %d (%v)", len(days), len(want), days)
	}
	for i := range want {
		if days[i] != want[i] {
			t.Errorf("days[%d] = %q, want %q", i, days[i], want[i])
		}
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"one week", "2024-01-01", "2024-01-08", 7},
		{"same day", "2024-01-01", "2024-01-01", 0},
		{"negative clamps to zero", "2024-01-08", "2024-01-01", 0},
		{"across year boundary", "2023-12-30", "2024-01-02", 3},
		{"unparseable start", "not-a-date", "2024-01-02", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.start, tt.end); got != tt.want {
				t.Errorf("DaysBetween(%q, %q) = %d, want %d", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestDayRange_Deterministic(t *testing.T) {
	a := DayRange("2024-01-01", "2024-04-01")
	b := DayRange("2024-01-01", "2024-04-01")
	if len(a) != len(b) {
		t.Fatalf("repeat call length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("repeat call differs at %d: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestAddDays(t *testing.T) {
	if got := AddDays("2024-01-01", 5); got != "2024-01-06" {
		t.Errorf("AddDays = %q, want 2024-01-06", got)
	}
	if got := AddDays("2024-01-01", 0); got != "2024-01-01" {
		t.Errorf("AddDays offset 0 = %q, want 2024-01-01", got)
	}
}

func TestParseDay_LocalTime(t *testing.T) {
	d, err := ParseDay("2024-03-10")
	if err != nil {
		t.Fatalf("ParseDay error = %v", err)
	}
	if d.Location() != time.Local {
		t.Errorf("ParseDay location = %v, want local", d.Location())
	}
}
