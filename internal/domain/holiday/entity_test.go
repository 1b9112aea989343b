package holiday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestHoliday_AppliesTo(t *testing.T) {
	all := Holiday{Departments: []string{"All"}}
	staff := Holiday{Departments: []string{"Staff"}}

	assert.True(t, all.AppliesTo("Worker"))
	assert.True(t, staff.AppliesTo("staff"))
	assert.False(t, staff.AppliesTo("Worker"))
	assert.False(t, Holiday{}.AppliesTo("Staff"))
}

func TestApplicableCount(t *testing.T) {
	march := date(2024, 3, 1)
	holidays := []Holiday{
		{Name: "Holi", Date: date(2024, 3, 25), Departments: []string{"All"}},
		{Name: "Founders Day", Date: date(2019, 3, 8), Departments: []string{"Staff"}, Recurring: true},
		{Name: "Plant shutdown", Date: date(2024, 3, 25), Departments: []string{"Worker"}},
		{Name: "Last year only", Date: date(2023, 3, 10), Departments: []string{"All"}},
	}

	assert.Equal(t, 2, ApplicableCount(holidays, march, "Staff"))
	assert.Equal(t, 1, ApplicableCount(holidays, march, "Worker"))
	assert.Equal(t, 0, ApplicableCount(holidays, date(2024, 4, 1), "Staff"))
}

func TestHoliday_OccursInLeapDay(t *testing.T) {
	h := Holiday{Date: date(2024, 2, 29), Recurring: true, Departments: []string{"All"}}

	_, ok := h.OccursIn(date(2025, 2, 1))
	assert.False(t, ok)

	d, ok := h.OccursIn(date(2028, 2, 1))
	assert.True(t, ok)
	assert.Equal(t, 29, d.Day())
}
