package timesheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/shift"
)

var jan2024 = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func present(d int, work, pending float64) attendance.DailyRecord {
	return attendance.DailyRecord{
		EmployeeID: "E1",
		Date:       day(d),
		Status:     attendance.StatusPresent,
		ShiftType:  shift.TypeDay,
		Punches:    attendance.Punches{CheckIn: "10:00 AM", CheckOut: "6:30 PM"},
		Hours:      attendance.Hours{WorkHrs: work, PendingHrs: pending, ActualWorkHrs: work},
	}
}

func TestAggregate_UnmarkedMonthDefaults(t *testing.T) {
	agg := NewAggregator(shift.DefaultCalendar()).Aggregate("E1", jan2024, nil)

	require.Len(t, agg.Days, 31)
	s := agg.Summary
	assert.Equal(t, "2024-01", s.Month)
	assert.Equal(t, 31, s.TotalDays)
	assert.Equal(t, 0, s.MarkedDaysCount)
	assert.Equal(t, 4, s.SundaysInMonth)
	assert.Equal(t, 4, s.HolidayDays)
	assert.Equal(t, 27, s.AbsentDays)
	assert.Equal(t, []string{"2024-01-07", "2024-01-14", "2024-01-21", "2024-01-28"}, s.UnmarkedSundays)
	assert.InDelta(t, 27*8.5, s.TotalPendingHrs, 1e-9)

	assert.Equal(t, attendance.StatusAbsent, agg.Days[0].Status)
	assert.Equal(t, "Monday", agg.Days[0].Weekday)
	assert.False(t, agg.Days[0].IsMarked)
	assert.Equal(t, attendance.StatusHoliday, agg.Days[6].Status)
	assert.True(t, agg.Days[6].IsSunday)
	assert.Zero(t, agg.Days[6].PendingHrs)
}

func TestAggregate_Counts(t *testing.T) {
	records := []attendance.DailyRecord{
		present(1, 8.5, 0),
		present(2, 8, 0.5),
		{EmployeeID: "E1", Date: day(3), Status: attendance.StatusHalfDay, Hours: attendance.Hours{WorkHrs: 4, PendingHrs: 4.5}},
		{EmployeeID: "E1", Date: day(4), Status: attendance.StatusLeave},
		{EmployeeID: "E1", Date: day(5), Status: attendance.StatusWeekOff},
		{
			EmployeeID: "E1",
			Date:       day(7),
			Status:     attendance.StatusPresent,
			ShiftType:  shift.TypeSunday,
			Hours:      attendance.Hours{WorkHrs: 5, ActualWorkHrs: 5, OtHrs: 1.5},
		},
	}

	s := NewAggregator(shift.DefaultCalendar()).Aggregate("E1", jan2024, records).Summary

	assert.Equal(t, 6, s.MarkedDaysCount)
	assert.Equal(t, 3, s.PresentDays)
	assert.Equal(t, 2, s.FullWorkingDays)
	assert.Equal(t, 1, s.HalfDays)
	assert.Equal(t, 1, s.LeaveDays)
	assert.Equal(t, 1, s.WeekOffDays)
	assert.Equal(t, 1, s.SundayPresentCount)
	assert.InDelta(t, 5.0, s.SundayWorkHours, 1e-9)
	assert.InDelta(t, 1.5, s.TotalOtHrs, 1e-9)
	assert.Len(t, s.UnmarkedSundays, 3)
	// Leave counts as absent too: 22 unmarked weekdays plus the leave day.
	assert.Equal(t, 23, s.AbsentDays)
}

func TestAggregate_LatestRecordWins(t *testing.T) {
	older := present(2, 6, 2.5)
	older.UpdatedAt = time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	newer := present(2, 8.5, 0)
	newer.UpdatedAt = time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)

	agg := NewAggregator(shift.DefaultCalendar()).Aggregate("E1", jan2024, []attendance.DailyRecord{newer, older})

	assert.Equal(t, 1, agg.Summary.MarkedDaysCount)
	assert.Equal(t, 1, agg.Summary.FullWorkingDays)
	assert.InDelta(t, 8.5, agg.Days[1].WorkHrs, 1e-9)
}

func TestAggregate_IgnoresOtherMonths(t *testing.T) {
	stray := present(1, 8.5, 0)
	stray.Date = time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	s := NewAggregator(shift.DefaultCalendar()).Aggregate("E1", jan2024, []attendance.DailyRecord{stray}).Summary

	assert.Equal(t, 0, s.MarkedDaysCount)
}
