package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/timemath"
)

// Required present days for full-month pay before holidays are deducted.
const (
	requiredDaysLongMonth  = 27
	requiredDaysOtherMonth = 26
)

var sixty = decimal.NewFromInt(60)

// CalculateGross converts day counts and salary into gross earnings. Amounts are
// rounded to 2 places per component; the total is the sum of the rounded components.
func CalculateGross(in payroll.GrossInput) payroll.GrossBreakdown {
	out := payroll.GrossBreakdown{
		MonthlySalary:      in.MonthlySalary,
		TotalDaysInMonth:   in.TotalDaysInMonth,
		PresentDays:        in.PresentDays,
		HalfDays:           in.HalfDays,
		ApplicableHolidays: in.ApplicableHolidays,
		TotalOtMinutes:     in.TotalOtMinutes,
		OTRate:             in.OTRate,
	}
	if in.TotalDaysInMonth <= 0 {
		return zeroAmounts(out)
	}

	out.RequiredDaysForFull = requiredDaysOtherMonth
	if in.TotalDaysInMonth == 31 {
		out.RequiredDaysForFull = requiredDaysLongMonth
	}
	out.AdjustedRequiredDays = out.RequiredDaysForFull - in.ApplicableHolidays

	out.FullWorkingDays = in.PresentDays
	if in.PresentDays >= out.AdjustedRequiredDays {
		out.FullWorkingDays = in.TotalDaysInMonth
	}

	perDay := in.MonthlySalary.Div(decimal.NewFromInt(int64(in.TotalDaysInMonth)))
	out.PerDayRate = perDay.Round(2)

	out.EffectiveSundayOff = in.SundaysInMonth - in.SundayWorkedCount
	if out.EffectiveSundayOff < 0 {
		out.EffectiveSundayOff = 0
	}

	out.PresentPay = perDay.Mul(decimal.NewFromInt(int64(out.FullWorkingDays))).Round(2)
	out.HalfDayPay = perDay.Div(decimal.NewFromInt(2)).Mul(decimal.NewFromInt(int64(in.HalfDays))).Round(2)
	out.HolidayPay = perDay.Mul(decimal.NewFromInt(int64(in.ApplicableHolidays))).Round(2)
	out.SundayPay = perDay.Mul(decimal.NewFromInt(int64(out.EffectiveSundayOff))).Round(2)
	out.OtAmount = decimal.NewFromInt(int64(in.TotalOtMinutes)).Div(sixty).Mul(in.OTRate).Round(2)

	out.TotalGrossEarnings = out.PresentPay.
		Add(out.HalfDayPay).
		Add(out.HolidayPay).
		Add(out.SundayPay).
		Add(out.OtAmount)

	return out
}

func zeroAmounts(out payroll.GrossBreakdown) payroll.GrossBreakdown {
	out.PerDayRate = decimal.Zero
	out.PresentPay = decimal.Zero
	out.HalfDayPay = decimal.Zero
	out.HolidayPay = decimal.Zero
	out.SundayPay = decimal.Zero
	out.OtAmount = decimal.Zero
	out.TotalGrossEarnings = decimal.Zero
	return out
}

// GrossInputFor maps a monthly summary onto the gross calculation for emp.
// Worker departments get Sunday hours as overtime instead of present days.
func GrossInputFor(emp employee.Employee, summary timesheet.MonthlySummary, applicableHolidays int, defaultOTRate decimal.Decimal) payroll.GrossInput {
	present := summary.PresentDays
	otMinutes := timemath.Minutes(summary.TotalOtHrs)

	if emp.FoldsSundayIntoOT() {
		present -= summary.SundayPresentCount
		if present < 0 {
			present = 0
		}
		otMinutes += timemath.Minutes(summary.SundayWorkHours)
	}

	return payroll.GrossInput{
		MonthlySalary:      emp.Salary.MonthlySalary,
		TotalDaysInMonth:   summary.TotalDays,
		PresentDays:        present,
		HalfDays:           summary.HalfDays,
		ApplicableHolidays: applicableHolidays,
		SundaysInMonth:     summary.SundaysInMonth,
		SundayWorkedCount:  summary.SundayPresentCount,
		TotalOtMinutes:     otMinutes,
		OTRate:             emp.OvertimeRate(defaultOTRate),
	}
}

// BreakdownService produces the gross breakdown shared by every payroll view.
type BreakdownService struct {
	holidayRepo   holiday.Repository
	defaultOTRate decimal.Decimal
}

func NewBreakdownService(holidayRepo holiday.Repository, defaultOTRate decimal.Decimal) *BreakdownService {
	return &BreakdownService{
		holidayRepo:   holidayRepo,
		defaultOTRate: defaultOTRate,
	}
}

// Breakdown computes emp's gross earnings for the month of summary.
func (s *BreakdownService) Breakdown(ctx context.Context, emp employee.Employee, summary timesheet.MonthlySummary) (payroll.GrossBreakdown, error) {
	month, err := timemath.ParseMonth(summary.Month)
	if err != nil {
		return payroll.GrossBreakdown{}, err
	}

	holidays, err := s.holidayRepo.ListByMonth(ctx, month)
	if err != nil {
		return payroll.GrossBreakdown{}, fmt.Errorf("failed to list holidays: %w", err)
	}
	applicable := holiday.ApplicableCount(holidays, month, string(emp.Department))

	return CalculateGross(GrossInputFor(emp, summary, applicable, s.defaultOTRate)), nil
}

// HolidayDates returns the dates in month on which a holiday applies to department.
func (s *BreakdownService) HolidayDates(ctx context.Context, month time.Time, department string) (map[string]string, error) {
	holidays, err := s.holidayRepo.ListByMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	out := make(map[string]string)
	for _, h := range holidays {
		if !h.AppliesTo(department) {
			continue
		}
		if d, ok := h.OccursIn(month); ok {
			out[d.Format("2006-01-02")] = h.Name
		}
	}
	return out, nil
}
