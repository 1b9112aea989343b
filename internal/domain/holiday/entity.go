package holiday

import (
	"strings"
	"time"
)

// DepartmentAll marks a holiday that applies to every department.
const DepartmentAll = "All"

type Holiday struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Name        string    `json:"name"`
	Departments []string  `json:"departments"`
	Recurring   bool      `json:"recurring"`
}

// AppliesTo reports whether the holiday covers department.
func (h Holiday) AppliesTo(department string) bool {
	for _, d := range h.Departments {
		if strings.EqualFold(d, DepartmentAll) || strings.EqualFold(d, department) {
			return true
		}
	}
	return false
}

// OccursIn returns the date the holiday falls on within month. Recurring holidays
// repeat on the same month and day every year.
func (h Holiday) OccursIn(month time.Time) (time.Time, bool) {
	if h.Date.Year() == month.Year() && h.Date.Month() == month.Month() {
		return h.Date, true
	}
	if h.Recurring && h.Date.Month() == month.Month() {
		d := time.Date(month.Year(), h.Date.Month(), h.Date.Day(), 0, 0, 0, 0, time.UTC)
		if d.Month() == month.Month() {
			return d, true
		}
	}
	return time.Time{}, false
}

// ApplicableCount counts the distinct dates in month covered by a holiday for department.
func ApplicableCount(holidays []Holiday, month time.Time, department string) int {
	seen := make(map[string]struct{})
	for _, h := range holidays {
		if !h.AppliesTo(department) {
			continue
		}
		if d, ok := h.OccursIn(month); ok {
			seen[d.Format("2006-01-02")] = struct{}{}
		}
	}
	return len(seen)
}
