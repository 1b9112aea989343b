package timesheet

import (
	"time"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/payroll"
)

type MonthlyTimesheetResponse struct {
	EmployeeID   string                 `json:"employee_id"`
	EmployeeName string                 `json:"employee_name"`
	Department   string                 `json:"department"`
	Month        string                 `json:"month"`
	Days         []DayRow               `json:"days"`
	Summary      MonthlySummary         `json:"summary"`
	Payroll      payroll.GrossBreakdown `json:"payroll"`
	SuperSaved   bool                   `json:"super_saved"`
	Warnings     []string               `json:"warnings"`
}

type SuperSaveResponse struct {
	EmployeeID      string   `json:"employee_id"`
	Month           string   `json:"month"`
	MarkedDays      int      `json:"marked_days"`
	FullWorkingDays int      `json:"full_working_days"`
	TotalOtHrs      float64  `json:"total_ot_hrs"`
	TotalPendingHrs float64  `json:"total_pending_hrs"`
	SavedBy         string   `json:"saved_by"`
	SavedAt         string   `json:"saved_at"`
	Warnings        []string `json:"warnings"`
}

func NewSuperSaveResponse(rec SuperSaveRecord, warnings []string) SuperSaveResponse {
	return SuperSaveResponse{
		EmployeeID:      rec.EmployeeID,
		Month:           rec.Month,
		MarkedDays:      rec.MarkedDays,
		FullWorkingDays: rec.FullWorkingDays,
		TotalOtHrs:      rec.TotalOtHrs,
		TotalPendingHrs: rec.TotalPendingHrs,
		SavedBy:         rec.SavedBy,
		SavedAt:         rec.SavedAt.Format(time.RFC3339),
		Warnings:        warnings,
	}
}
