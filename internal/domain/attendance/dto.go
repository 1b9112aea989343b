package attendance

import (
	"strings"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/timemath"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/validator"
)

// ========================================
// DAILY ATTENDANCE DTOs
// ========================================

type SaveDailyRequest struct {
	EmployeeID string  `json:"-"`
	Date       string  `json:"-"`
	Status     string  `json:"status"`
	ShiftType  string  `json:"shift_type"`
	CheckIn    string  `json:"check_in"`
	LunchIn    string  `json:"lunch_in"`
	LunchOut   string  `json:"lunch_out"`
	CheckOut   string  `json:"check_out"`
	OtHrs      float64 `json:"ot_hrs"`
}

func (r *SaveDailyRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required and may only contain letters, digits, '-' and '_'",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if !IsValidStatus(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: Present, Absent, Half Day, Leave, Holiday, Week Off",
		})
	}

	if r.ShiftType == "" {
		r.ShiftType = string(shift.TypeDay)
	}
	r.ShiftType = strings.ToLower(r.ShiftType)
	if !shift.IsValidType(r.ShiftType) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_type",
			Message: "shift_type must be one of: day, night, sunday",
		})
	}

	if r.OtHrs < 0 || r.OtHrs > 24 {
		errs = append(errs, validator.ValidationError{
			Field:   "ot_hrs",
			Message: "ot_hrs must be between 0 and 24",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DailyRecordResponse struct {
	EmployeeID    string  `json:"employee_id"`
	Date          string  `json:"date"`
	Status        Status  `json:"status"`
	ShiftType     string  `json:"shift_type"`
	CheckIn       string  `json:"check_in"`
	LunchIn       string  `json:"lunch_in"`
	LunchOut      string  `json:"lunch_out"`
	CheckOut      string  `json:"check_out"`
	WorkHrs       float64 `json:"work_hrs"`
	OtHrs         float64 `json:"ot_hrs"`
	PendingHrs    float64 `json:"pending_hrs"`
	ActualWorkHrs float64 `json:"actual_work_hrs"`
	WorkTime      string  `json:"work_time"`
	PendingTime   string  `json:"pending_time"`
	UpdatedBy     string  `json:"updated_by,omitempty"`
	UpdatedAt     string  `json:"updated_at,omitempty"`
}

// NewDailyRecordResponse maps a record to its API shape.
func NewDailyRecordResponse(r DailyRecord) DailyRecordResponse {
	resp := DailyRecordResponse{
		EmployeeID:    r.EmployeeID,
		Date:          timemath.DateKey(r.Date),
		Status:        r.Status,
		ShiftType:     string(r.ShiftType),
		CheckIn:       r.CheckIn,
		LunchIn:       r.LunchIn,
		LunchOut:      r.LunchOut,
		CheckOut:      r.CheckOut,
		WorkHrs:       r.WorkHrs,
		OtHrs:         r.OtHrs,
		PendingHrs:    r.PendingHrs,
		ActualWorkHrs: r.ActualWorkHrs,
		WorkTime:      timemath.FormatDuration(r.WorkHrs),
		PendingTime:   timemath.FormatDuration(r.PendingHrs),
		UpdatedBy:     r.UpdatedBy,
	}
	if !r.UpdatedAt.IsZero() {
		resp.UpdatedAt = r.UpdatedAt.Format("2006-01-02 15:04:05")
	}
	return resp
}
