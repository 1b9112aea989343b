package timesheet

import (
	"time"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/shift"
)

// DayRow is one calendar day of an employee's month. Unmarked days carry the
// default status and IsMarked is false.
type DayRow struct {
	Date          string            `json:"date"`
	Weekday       string            `json:"weekday"`
	IsSunday      bool              `json:"is_sunday"`
	IsMarked      bool              `json:"is_marked"`
	HolidayName   string            `json:"holiday_name,omitempty"`
	Status        attendance.Status `json:"status"`
	ShiftType     shift.Type        `json:"shift_type"`
	CheckIn       string            `json:"check_in"`
	LunchIn       string            `json:"lunch_in"`
	LunchOut      string            `json:"lunch_out"`
	CheckOut      string            `json:"check_out"`
	WorkHrs       float64           `json:"work_hrs"`
	OtHrs         float64           `json:"ot_hrs"`
	PendingHrs    float64           `json:"pending_hrs"`
	ActualWorkHrs float64           `json:"actual_work_hrs"`
}

// MonthlySummary is derived from the daily records of one employee-month.
type MonthlySummary struct {
	EmployeeID         string    `json:"employee_id"`
	Month              string    `json:"month"`
	TotalDays          int       `json:"total_days"`
	PresentDays        int       `json:"present_days"`
	AbsentDays         int       `json:"absent_days"`
	LeaveDays          int       `json:"leave_days"`
	HalfDays           int       `json:"half_days"`
	HolidayDays        int       `json:"holiday_days"`
	WeekOffDays        int       `json:"week_off_days"`
	FullWorkingDays    int       `json:"full_working_days"`
	SundaysInMonth     int       `json:"sundays_in_month"`
	SundayPresentCount int       `json:"sunday_present_count"`
	SundayWorkHours    float64   `json:"sunday_work_hours"`
	TotalWorkHrs       float64   `json:"total_work_hrs"`
	TotalOtHrs         float64   `json:"total_ot_hrs"`
	TotalPendingHrs    float64   `json:"total_pending_hrs"`
	MarkedDaysCount    int       `json:"marked_days_count"`
	UnmarkedSundays    []string  `json:"unmarked_sundays"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// MonthlyAggregate is the cached result of aggregating one employee-month.
type MonthlyAggregate struct {
	Days    []DayRow       `json:"days"`
	Summary MonthlySummary `json:"summary"`
}

// SuperSaveRecord is the completeness gate for an employee-month.
type SuperSaveRecord struct {
	EmployeeID      string
	Month           string
	MarkedDays      int
	FullWorkingDays int
	TotalOtHrs      float64
	TotalPendingHrs float64
	SavedBy         string
	SavedAt         time.Time
}
