package planner

import (
	"fmt"
	"time"
)

// dayLayout is the ISO calendar-day format used throughout the planner.
const dayLayout = "2006-01-02"

// ParseDay parses an ISO calendar date in local time. Local time matters:
// day counts must match the user's wall-clock calendar, not UTC.
func ParseDay(iso string) (time.Time, error) {
	t, err := time.ParseInLocation(dayLayout, iso, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", iso, err)
	}
	return t, nil
}

// FormatDay renders a time as an ISO calendar date.
func FormatDay(t time.Time) string {
	return t.Format(dayLayout)
}

// DaysBetween returns the whole-day difference from startISO to endISO,
// clamped to zero when end precedes start. Unparseable inputs count as
// zero days; degenerate inputs clamp, they never error.
func DaysBetween(startISO, endISO string) int {
	start, err := ParseDay(startISO)
	if err != nil {
		return 0
	}
	end, err := ParseDay(endISO)
	if err != nil {
		return 0
	}
	if end.Before(start) {
		return 0
	}
	// Walk forward by calendar days instead of dividing a duration so DST
	// transitions cannot skew the count.
	days := 0
	for cur := start; cur.Before(end); cur = cur.AddDate(0, 0, 1) {
		days++
	}
	return days
}

// DayRange returns the ordered, inclusive, duplicate-free sequence of ISO
// days from startISO to endISO using local-time day boundaries. An end
// before the start yields just the start day, matching the planner's
// at-least-one-day guarantee. Pure and deterministic: the scheduler calls
// it once and must see identical output if called again for audit.
func DayRange(startISO, endISO string) []string {
	start, err := ParseDay(startISO)
	if err != nil {
		return nil
	}
	end, err := ParseDay(endISO)
	if err != nil || end.Before(start) {
		return []string{FormatDay(start)}
	}

	days := make([]string, 0, DaysBetween(startISO, endISO)+1)
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		days = append(days, FormatDay(cur))
	}
	return days
}

// AddDays returns the ISO day offset calendar days after startISO.
func AddDays(startISO string, offset int) string {
	start, err := ParseDay(startISO)
	if err != nil {
		return startISO
	}
	return FormatDay(start.AddDate(0, 0, offset))
}

// clampInt bounds v to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
