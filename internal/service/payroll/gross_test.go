package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/config"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/timesheet"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateGross_FullWorkingDayThreshold(t *testing.T) {
	tests := []struct {
		name        string
		totalDays   int
		holidays    int
		present     int
		wantAdj     int
		wantFullDay int
	}{
		{"31 day month meets adjusted threshold", 31, 1, 26, 26, 31},
		{"31 day month one short", 31, 1, 25, 26, 25},
		{"30 day month needs 26", 30, 0, 26, 26, 30},
		{"30 day month with two holidays", 30, 2, 24, 24, 30},
		{"february short", 28, 0, 20, 26, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateGross(payroll.GrossInput{
				MonthlySalary:      dec("31000"),
				TotalDaysInMonth:   tt.totalDays,
				PresentDays:        tt.present,
				ApplicableHolidays: tt.holidays,
				OTRate:             dec("70"),
			})
			assert.Equal(t, tt.wantAdj, got.AdjustedRequiredDays)
			assert.Equal(t, tt.wantFullDay, got.FullWorkingDays)
		})
	}
}

func TestCalculateGross_Components(t *testing.T) {
	got := CalculateGross(payroll.GrossInput{
		MonthlySalary:      dec("31000"),
		TotalDaysInMonth:   31,
		PresentDays:        26,
		HalfDays:           1,
		ApplicableHolidays: 1,
		SundaysInMonth:     4,
		SundayWorkedCount:  1,
		TotalOtMinutes:     90,
		OTRate:             dec("70"),
	})

	assert.True(t, dec("1000").Equal(got.PerDayRate))
	assert.True(t, dec("31000").Equal(got.PresentPay))
	assert.True(t, dec("500").Equal(got.HalfDayPay))
	assert.True(t, dec("1000").Equal(got.HolidayPay))
	assert.Equal(t, 3, got.EffectiveSundayOff)
	assert.True(t, dec("3000").Equal(got.SundayPay))
	assert.True(t, dec("105").Equal(got.OtAmount))
	assert.True(t, dec("35605").Equal(got.TotalGrossEarnings), got.TotalGrossEarnings.String())
}

func TestCalculateGross_SundayOffNeverNegative(t *testing.T) {
	got := CalculateGross(payroll.GrossInput{
		MonthlySalary:     dec("30000"),
		TotalDaysInMonth:  30,
		SundaysInMonth:    4,
		SundayWorkedCount: 5,
		OTRate:            dec("70"),
	})
	assert.Equal(t, 0, got.EffectiveSundayOff)
	assert.True(t, got.SundayPay.IsZero())
}

func TestCalculateGross_ZeroDays(t *testing.T) {
	got := CalculateGross(payroll.GrossInput{MonthlySalary: dec("30000")})
	assert.True(t, got.TotalGrossEarnings.IsZero())
}

func TestGrossInputFor_DepartmentSundayRule(t *testing.T) {
	summary := timesheet.MonthlySummary{
		Month:              "2024-03",
		TotalDays:          31,
		PresentDays:        27,
		HalfDays:           1,
		SundaysInMonth:     5,
		SundayPresentCount: 2,
		SundayWorkHours:    10,
		TotalOtHrs:         1.5,
	}

	staff := employee.Employee{Department: employee.DepartmentStaff, Salary: employee.SalaryStructure{MonthlySalary: dec("20000")}}
	in := GrossInputFor(staff, summary, 1, dec("70"))
	assert.Equal(t, 27, in.PresentDays)
	assert.Equal(t, 90, in.TotalOtMinutes)
	assert.Equal(t, 2, in.SundayWorkedCount)
	assert.True(t, dec("70").Equal(in.OTRate))

	rate := dec("95")
	worker := employee.Employee{Department: employee.DepartmentWorker, OTRate: &rate}
	in = GrossInputFor(worker, summary, 1, dec("70"))
	assert.Equal(t, 25, in.PresentDays)
	assert.Equal(t, 90+600, in.TotalOtMinutes)
	assert.True(t, rate.Equal(in.OTRate))

	other := employee.Employee{Department: employee.DepartmentOtherWorkers}
	in = GrossInputFor(other, summary, 0, dec("70"))
	assert.Equal(t, 25, in.PresentDays)
}

func TestEsiCalculator(t *testing.T) {
	calc := NewEsiCalculator(config.DefaultPayroll())

	atThreshold := employee.Employee{Salary: employee.SalaryStructure{MonthlySalary: dec("21000"), IncludeESI: true}}
	assert.True(t, calc.Eligible(atThreshold))

	above := employee.Employee{Salary: employee.SalaryStructure{MonthlySalary: dec("21000.01"), IncludeESI: true}}
	assert.False(t, calc.Eligible(above))

	noFlag := employee.Employee{Salary: employee.SalaryStructure{MonthlySalary: dec("15000")}}
	assert.False(t, calc.Eligible(noFlag))

	// 22345.67 × 0.0075 = 167.592525
	assert.True(t, dec("167.59").Equal(calc.Contribution(dec("22345.67"))))
	assert.True(t, dec("157.50").Equal(calc.Contribution(dec("21000"))))
}
