package report

import (
	"strings"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/validator"
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// ========================================
// EXPORTS
// ========================================

type ExportRequest struct {
	Month  string `json:"month"`
	Format Format `json:"format"`
}

func (r *ExportRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if r.Format == "" {
		r.Format = FormatXLSX
	}
	r.Format = Format(strings.ToLower(string(r.Format)))
	if r.Format != FormatXLSX && r.Format != FormatCSV {
		errs = append(errs, validator.ValidationError{
			Field:   "format",
			Message: "format must be xlsx or csv",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// File is a generated export ready to be streamed.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// TimesheetRow is one employee-day of the timesheet extract.
type TimesheetRow struct {
	EmployeeID    string  `csv:"employeeId"`
	EmployeeName  string  `csv:"employeeName"`
	Department    string  `csv:"department"`
	Date          string  `csv:"date"`
	Status        string  `csv:"status"`
	ShiftType     string  `csv:"shiftType"`
	CheckIn       string  `csv:"checkIn"`
	LunchIn       string  `csv:"lunchIn"`
	LunchOut      string  `csv:"lunchOut"`
	CheckOut      string  `csv:"checkOut"`
	WorkHrs       float64 `csv:"workHrs"`
	OtHrs         float64 `csv:"otHrs"`
	PendingHrs    float64 `csv:"pendingHrs"`
	ActualWorkHrs float64 `csv:"actualWorkHrs"`
	IsMarked      bool    `csv:"isMarked"`
}

// EsiRow is one employee-month of the ESI register extract.
type EsiRow struct {
	EmployeeID         string `csv:"employeeId"`
	EmployeeName       string `csv:"employeeName"`
	Department         string `csv:"department"`
	Month              string `csv:"month"`
	MonthlySalary      string `csv:"monthlySalary"`
	EsiIncluded        bool   `csv:"esiIncluded"`
	TotalGrossEarnings string `csv:"totalGrossEarnings"`
	EsiAmount          string `csv:"esiAmount"`
	PaymentStatus      string `csv:"paymentStatus"`
	SalaryCredited     bool   `csv:"salaryCredited"`
}
