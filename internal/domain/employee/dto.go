package employee

import (
	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/validator"
)

type UpdateEmployeeRequest struct {
	ID          string           `json:"-"`
	Name        *string          `json:"name,omitempty"`
	Department  *string          `json:"department,omitempty"`
	Designation *string          `json:"designation,omitempty"`
	Status      *string          `json:"status,omitempty"`
	PhoneNumber *string          `json:"phone_number,omitempty"`
	Email       *string          `json:"email,omitempty"`
	OTRate      *decimal.Decimal `json:"ot_rate,omitempty"`
	Salary      *SalaryStructure `json:"salary,omitempty"`
	Reason      string           `json:"reason,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "employee id is invalid",
		})
	}

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.Department != nil && !IsValidDepartment(*r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department must be one of: Staff, Worker, Other Workers",
		})
	}

	if r.Status != nil {
		status := EmploymentStatus(*r.Status)
		if status != EmploymentStatusActive && status != EmploymentStatusInactive {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be Active or Inactive",
			})
		}
	}

	if r.PhoneNumber != nil && *r.PhoneNumber != "" && !validator.IsValidPhoneNumber(*r.PhoneNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone_number",
			Message: "invalid phone number format",
		})
	}

	if r.Email != nil && *r.Email != "" && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if r.OTRate != nil && r.OTRate.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "ot_rate",
			Message: "ot_rate must not be negative",
		})
	}

	if r.Salary != nil {
		amounts := []struct {
			field string
			value decimal.Decimal
		}{
			{"salary.monthly_salary", r.Salary.MonthlySalary},
			{"salary.basic", r.Salary.Basic},
			{"salary.hra", r.Salary.HRA},
			{"salary.conveyance", r.Salary.Conveyance},
			{"salary.special_allowance", r.Salary.SpecialAllowance},
			{"salary.additional_special_allowance", r.Salary.AdditionalSpecialAllowance},
			{"salary.other_allowance", r.Salary.OtherAllowance},
		}
		for _, a := range amounts {
			if a.value.IsNegative() {
				errs = append(errs, validator.ValidationError{
					Field:   a.field,
					Message: a.field + " must not be negative",
				})
			}
		}
	}

	if len(r.Reason) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Department  Department       `json:"department"`
	Designation string           `json:"designation"`
	Status      EmploymentStatus `json:"status"`
	PhoneNumber string           `json:"phone_number"`
	Email       string           `json:"email"`
	OTRate      *decimal.Decimal `json:"ot_rate"`
	Salary      SalaryStructure  `json:"salary"`
	UpdatedAt   string           `json:"updated_at"`
}

// UpdateEmployeeResponse carries the saved employee and the revision id appended, if any.
type UpdateEmployeeResponse struct {
	Employee   EmployeeResponse `json:"employee"`
	RevisionID *string          `json:"revision_id"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          e.ID,
		Name:        e.Name,
		Department:  e.Department,
		Designation: e.Designation,
		Status:      e.Status,
		PhoneNumber: e.PhoneNumber,
		Email:       e.Email,
		OTRate:      e.OTRate,
		Salary:      e.Salary,
		UpdatedAt:   e.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
