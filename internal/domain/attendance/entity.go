package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/shift"
)

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusHalfDay Status = "Half Day"
	StatusLeave   Status = "Leave"
	StatusHoliday Status = "Holiday"
	StatusWeekOff Status = "Week Off"
)

// IsValidStatus checks whether s is one of the recognized day statuses.
func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusPresent, StatusAbsent, StatusHalfDay, StatusLeave, StatusHoliday, StatusWeekOff:
		return true
	}
	return false
}

// IsNonWorking reports statuses for which no hours are derived.
func (s Status) IsNonWorking() bool {
	return s == StatusLeave || s == StatusHoliday || s == StatusWeekOff
}

// Punches are the raw "H:MM AM/PM" clock strings for one employee-day. Any may be empty.
type Punches struct {
	CheckIn  string `json:"check_in"`
	LunchIn  string `json:"lunch_in"`
	LunchOut string `json:"lunch_out"`
	CheckOut string `json:"check_out"`
}

// Hours are the derived decimal-hour fields of a daily record.
type Hours struct {
	WorkHrs       float64 `json:"work_hrs"`
	OtHrs         float64 `json:"ot_hrs"`
	PendingHrs    float64 `json:"pending_hrs"`
	ActualWorkHrs float64 `json:"actual_work_hrs"`
}

// DailyRecord is the attendance for one (EmployeeID, Date). Hours are recomputed
// from Status, ShiftType and Punches on every save; OtHrs is entered manually.
type DailyRecord struct {
	EmployeeID string
	Date       time.Time
	Status     Status
	ShiftType  shift.Type
	Punches
	Hours
	UpdatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Month returns the "YYYY-MM" key of the record's date.
func (r DailyRecord) Month() string {
	return r.Date.Format("2006-01")
}
