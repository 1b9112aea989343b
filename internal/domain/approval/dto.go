package approval

import (
	"time"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/validator"
)

type DecideRequest struct {
	EmployeeID string `json:"-"`
	Month      string `json:"-"`
	Status     string `json:"status"`
}

func (r *DecideRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is invalid",
		})
	}

	if _, ok := validator.IsValidMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if !IsValidDecision(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be accepted or declined",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApprovalResponse struct {
	ID          string   `json:"id"`
	EmployeeID  string   `json:"employee_id"`
	Month       string   `json:"month"`
	Status      Status   `json:"status"`
	Snapshot    Snapshot `json:"snapshot"`
	SubmittedBy string   `json:"submitted_by"`
	DecidedBy   *string  `json:"decided_by"`
	DecidedAt   *string  `json:"decided_at"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

func NewApprovalResponse(a Approval) ApprovalResponse {
	resp := ApprovalResponse{
		ID:          a.ID,
		EmployeeID:  a.EmployeeID,
		Month:       a.Month,
		Status:      a.Status,
		Snapshot:    a.Snapshot,
		SubmittedBy: a.SubmittedBy,
		DecidedBy:   a.DecidedBy,
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   a.UpdatedAt.Format(time.RFC3339),
	}
	if a.DecidedAt != nil {
		s := a.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &s
	}
	return resp
}
