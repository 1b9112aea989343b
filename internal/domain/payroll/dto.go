package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/validator"
)

type UpdateEsiEntryRequest struct {
	Month         string  `json:"-"`
	EmployeeID    string  `json:"-"`
	EsiIncluded   *bool   `json:"esi_included,omitempty"`
	PaymentStatus *string `json:"payment_status,omitempty"`
}

func (r *UpdateEsiEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if !validator.IsValidEmployeeID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is invalid",
		})
	}

	if r.EsiIncluded == nil && r.PaymentStatus == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "esi_included or payment_status is required",
		})
	}

	if r.PaymentStatus != nil && !IsValidPaymentStatus(*r.PaymentStatus) {
		errs = append(errs, validator.ValidationError{
			Field:   "payment_status",
			Message: "payment_status must be Pending or Paid",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EsiEntryResponse struct {
	EmployeeID         string          `json:"employee_id"`
	EmployeeName       string          `json:"employee_name"`
	Department         string          `json:"department"`
	Month              string          `json:"month"`
	MonthlySalary      decimal.Decimal `json:"monthly_salary"`
	Eligible           bool            `json:"eligible"`
	EsiIncluded        bool            `json:"esi_included"`
	TotalGrossEarnings decimal.Decimal `json:"total_gross_earnings"`
	EsiAmount          decimal.Decimal `json:"esi_amount"`
	PaymentStatus      PaymentStatus   `json:"payment_status"`
	SalaryCredited     bool            `json:"salary_credited"`
}

type EsiRegisterResponse struct {
	Month        string             `json:"month"`
	Entries      []EsiEntryResponse `json:"entries"`
	TotalGross   decimal.Decimal    `json:"total_gross"`
	TotalEsi     decimal.Decimal    `json:"total_esi"`
	IncludedRows int                `json:"included_rows"`
}

func NewEsiEntryResponse(e EsiEntry) EsiEntryResponse {
	return EsiEntryResponse{
		EmployeeID:         e.EmployeeID,
		EmployeeName:       e.EmployeeName,
		Department:         e.Department,
		Month:              e.Month,
		MonthlySalary:      e.MonthlySalary,
		Eligible:           e.Eligible,
		EsiIncluded:        e.EsiIncluded(),
		TotalGrossEarnings: e.TotalGrossEarnings,
		EsiAmount:          e.EsiAmount(),
		PaymentStatus:      e.PaymentStatus,
		SalaryCredited:     e.SalaryCredited,
	}
}

func NewEsiRegisterResponse(month string, entries []EsiEntry) EsiRegisterResponse {
	resp := EsiRegisterResponse{
		Month:      month,
		Entries:    make([]EsiEntryResponse, 0, len(entries)),
		TotalGross: decimal.Zero,
		TotalEsi:   decimal.Zero,
	}
	for _, e := range entries {
		row := NewEsiEntryResponse(e)
		resp.Entries = append(resp.Entries, row)
		resp.TotalGross = resp.TotalGross.Add(row.TotalGrossEarnings)
		resp.TotalEsi = resp.TotalEsi.Add(row.EsiAmount)
		if row.EsiIncluded {
			resp.IncludedRows++
		}
	}
	return resp
}
