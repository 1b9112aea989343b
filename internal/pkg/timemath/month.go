package timemath

import (
	"fmt"
	"time"
)

const (
	MonthLayout = "2006-01"
	DateLayout  = "2006-01-02"
)

// ParseMonth parses a "YYYY-MM" key into the first day of that month (UTC).
func ParseMonth(s string) (time.Time, error) {
	if len(s) != len(MonthLayout) {
		return time.Time{}, fmt.Errorf("invalid month %q: want YYYY-MM", s)
	}
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return t, nil
}

// MonthKey renders t as "YYYY-MM".
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// DateKey renders t as "YYYY-MM-DD".
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// MonthStart returns the first day of the month containing t (UTC).
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of calendar days in the month containing t.
func DaysInMonth(t time.Time) int {
	return MonthStart(t).AddDate(0, 1, -1).Day()
}

// MonthDays returns every date of the month containing t, in order.
func MonthDays(t time.Time) []time.Time {
	first := MonthStart(t)
	n := DaysInMonth(first)
	days := make([]time.Time, n)
	for i := range days {
		days[i] = first.AddDate(0, 0, i)
	}
	return days
}

// Sundays returns the Sundays of the month containing t.
func Sundays(t time.Time) []time.Time {
	var out []time.Time
	for _, d := range MonthDays(t) {
		if d.Weekday() == time.Sunday {
			out = append(out, d)
		}
	}
	return out
}
