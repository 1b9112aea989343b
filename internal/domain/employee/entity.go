package employee

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Department string

const (
	DepartmentStaff        Department = "Staff"
	DepartmentWorker       Department = "Worker"
	DepartmentOtherWorkers Department = "Other Workers"
)

type EmploymentStatus string

const (
	EmploymentStatusActive   EmploymentStatus = "Active"
	EmploymentStatusInactive EmploymentStatus = "Inactive"
)

// SalaryStructure holds the monitored salary fields of an employee.
type SalaryStructure struct {
	MonthlySalary              decimal.Decimal `json:"monthly_salary"`
	Basic                      decimal.Decimal `json:"basic"`
	HRA                        decimal.Decimal `json:"hra"`
	Conveyance                 decimal.Decimal `json:"conveyance"`
	SpecialAllowance           decimal.Decimal `json:"special_allowance"`
	AdditionalSpecialAllowance decimal.Decimal `json:"additional_special_allowance"`
	OtherAllowance             decimal.Decimal `json:"other_allowance"`
	IncludeESI                 bool            `json:"include_esi"`
	IncludePF                  bool            `json:"include_pf"`
}

type Employee struct {
	ID          string
	Name        string
	Department  Department
	Designation string
	Status      EmploymentStatus
	PhoneNumber string
	Email       string
	// OTRate is the hourly overtime rate. Nil uses the configured default.
	OTRate    *decimal.Decimal
	Salary    SalaryStructure
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FoldsSundayIntoOT reports whether Sunday hours count as overtime instead of a present day.
func (e Employee) FoldsSundayIntoOT() bool {
	return e.Department == DepartmentWorker || e.Department == DepartmentOtherWorkers
}

// IsActive reports whether the employee takes part in payroll runs.
func (e Employee) IsActive() bool {
	return e.Status == EmploymentStatusActive
}

// OvertimeRate returns the employee's rate or fallback when unset.
func (e Employee) OvertimeRate(fallback decimal.Decimal) decimal.Decimal {
	if e.OTRate == nil || e.OTRate.IsZero() {
		return fallback
	}
	return *e.OTRate
}

// IsValidDepartment checks d against the known departments, ignoring case.
func IsValidDepartment(d string) bool {
	for _, known := range []Department{DepartmentStaff, DepartmentWorker, DepartmentOtherWorkers} {
		if strings.EqualFold(d, string(known)) {
			return true
		}
	}
	return false
}

// NormalizeDepartment returns the canonical spelling of d.
func NormalizeDepartment(d string) Department {
	for _, known := range []Department{DepartmentStaff, DepartmentWorker, DepartmentOtherWorkers} {
		if strings.EqualFold(strings.TrimSpace(d), string(known)) {
			return known
		}
	}
	return Department(strings.TrimSpace(d))
}
