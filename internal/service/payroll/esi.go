package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/config"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/employee"
)

// EsiCalculator applies the salary threshold and contribution rate.
type EsiCalculator struct {
	threshold decimal.Decimal
	rate      decimal.Decimal
}

func NewEsiCalculator(cfg config.PayrollConfig) *EsiCalculator {
	return &EsiCalculator{
		threshold: cfg.EsiSalaryThreshold,
		rate:      cfg.EsiRate,
	}
}

// Eligible reports whether emp's master flag is set and salary is within the threshold.
func (c *EsiCalculator) Eligible(emp employee.Employee) bool {
	return emp.Salary.IncludeESI && emp.Salary.MonthlySalary.LessThanOrEqual(c.threshold)
}

// Contribution is gross × rate rounded to 2 places.
func (c *EsiCalculator) Contribution(gross decimal.Decimal) decimal.Decimal {
	return gross.Mul(c.rate).Round(2)
}
