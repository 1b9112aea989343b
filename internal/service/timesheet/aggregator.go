package timesheet

import (
	"time"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/timemath"
)

// Aggregator rolls daily records into day rows and a monthly summary.
type Aggregator struct {
	calendar *shift.Calendar
}

func NewAggregator(calendar *shift.Calendar) *Aggregator {
	return &Aggregator{calendar: calendar}
}

// Aggregate walks every calendar day of month. Records outside the month are ignored;
// when a day has several records the most recently updated one wins.
func (a *Aggregator) Aggregate(employeeID string, month time.Time, records []attendance.DailyRecord) timesheet.MonthlyAggregate {
	latest := latestByDate(records)
	days := timemath.MonthDays(month)

	summary := timesheet.MonthlySummary{
		EmployeeID:      employeeID,
		Month:           timemath.MonthKey(month),
		TotalDays:       len(days),
		UnmarkedSundays: []string{},
	}
	rows := make([]timesheet.DayRow, 0, len(days))

	for _, day := range days {
		key := timemath.DateKey(day)
		isSunday := day.Weekday() == time.Sunday

		row := timesheet.DayRow{
			Date:     key,
			Weekday:  day.Weekday().String(),
			IsSunday: isSunday,
		}

		if rec, ok := latest[key]; ok {
			row.IsMarked = true
			row.Status = rec.Status
			row.ShiftType = rec.ShiftType
			row.CheckIn = rec.CheckIn
			row.LunchIn = rec.LunchIn
			row.LunchOut = rec.LunchOut
			row.CheckOut = rec.CheckOut
			row.WorkHrs = rec.WorkHrs
			row.OtHrs = rec.OtHrs
			row.PendingHrs = rec.PendingHrs
			row.ActualWorkHrs = rec.ActualWorkHrs
			summary.MarkedDaysCount++
		} else if isSunday {
			row.Status = attendance.StatusHoliday
			row.ShiftType = shift.TypeSunday
			summary.UnmarkedSundays = append(summary.UnmarkedSundays, key)
		} else {
			row.Status = attendance.StatusAbsent
			row.ShiftType = shift.TypeDay
			row.PendingHrs = a.calendar.Target(shift.TypeDay)
		}

		accumulate(&summary, row)
		rows = append(rows, row)
	}

	summary.SundayWorkHours = timemath.Round4(summary.SundayWorkHours)
	summary.TotalWorkHrs = timemath.Round4(summary.TotalWorkHrs)
	summary.TotalOtHrs = timemath.Round4(summary.TotalOtHrs)
	summary.TotalPendingHrs = timemath.Round4(summary.TotalPendingHrs)

	return timesheet.MonthlyAggregate{Days: rows, Summary: summary}
}

func accumulate(s *timesheet.MonthlySummary, row timesheet.DayRow) {
	if row.IsSunday {
		s.SundaysInMonth++
	}

	switch row.Status {
	case attendance.StatusPresent:
		s.PresentDays++
		if row.PendingHrs == 0 {
			s.FullWorkingDays++
		}
		if row.IsSunday {
			s.SundayPresentCount++
			s.SundayWorkHours += row.ActualWorkHrs
		}
	case attendance.StatusAbsent:
		s.AbsentDays++
	case attendance.StatusLeave:
		s.AbsentDays++
		s.LeaveDays++
	case attendance.StatusHalfDay:
		s.HalfDays++
	case attendance.StatusHoliday:
		s.HolidayDays++
	case attendance.StatusWeekOff:
		s.WeekOffDays++
	}

	s.TotalWorkHrs += row.WorkHrs
	s.TotalOtHrs += row.OtHrs
	s.TotalPendingHrs += row.PendingHrs
}

// latestByDate keeps one record per date, preferring the greatest UpdatedAt then CreatedAt.
func latestByDate(records []attendance.DailyRecord) map[string]attendance.DailyRecord {
	out := make(map[string]attendance.DailyRecord, len(records))
	for _, rec := range records {
		key := timemath.DateKey(rec.Date)
		cur, ok := out[key]
		if !ok || newer(rec, cur) {
			out[key] = rec
		}
	}
	return out
}

func newer(a, b attendance.DailyRecord) bool {
	if !a.UpdatedAt.Equal(b.UpdatedAt) {
		return a.UpdatedAt.After(b.UpdatedAt)
	}
	return a.CreatedAt.After(b.CreatedAt)
}
