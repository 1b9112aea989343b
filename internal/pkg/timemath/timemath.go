// Package timemath converts textual clock punches to decimal hours and back.
// All functions are pure.
package timemath

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const clockLayout = "3:04PM"

// ParseClock parses an "H:MM AM/PM" punch into decimal hours in [0,24).
// The meridiem is case-insensitive and the space before it is optional.
// ok is false for empty or unparseable input.
func ParseClock(text string) (hours float64, ok bool) {
	normalized := strings.ToUpper(strings.Join(strings.Fields(text), ""))
	if normalized == "" || strings.HasPrefix(normalized, "0:") || strings.HasPrefix(normalized, "00:") {
		return 0, false
	}

	t, err := time.Parse(clockLayout, normalized)
	if err != nil {
		return 0, false
	}

	return float64(t.Hour()) + float64(t.Minute())/60, true
}

// FormatClock renders decimal hours as an "H:MM AM/PM" punch. Values at or past 24 wrap.
func FormatClock(hours float64) string {
	minutes := int(math.Round(hours*60)) % (24 * 60)
	if minutes < 0 {
		minutes += 24 * 60
	}
	t := time.Date(2000, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC)
	return t.Format("3:04 PM")
}

// NormalizeClock rewrites a parseable punch in canonical "H:MM AM/PM" form and
// returns anything else trimmed but otherwise as entered.
func NormalizeClock(text string) string {
	hours, ok := ParseClock(text)
	if !ok {
		return strings.TrimSpace(text)
	}
	return FormatClock(hours)
}

// FormatDuration renders a decimal-hour duration as "H:MM", rounding to whole minutes.
func FormatDuration(hours float64) string {
	total := int(math.Round(hours * 60))
	sign := ""
	if total < 0 {
		sign = "-"
		total = -total
	}
	return fmt.Sprintf("%s%d:%02d", sign, total/60, total%60)
}

// Round4 rounds to the 4-decimal precision used by every derived hour field.
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// Minutes converts decimal hours to whole minutes.
func Minutes(hours float64) int {
	return int(math.Round(hours * 60))
}
