package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// GrossInput is everything the gross calculation needs for one employee-month.
type GrossInput struct {
	MonthlySalary      decimal.Decimal
	TotalDaysInMonth   int
	PresentDays        int
	HalfDays           int
	ApplicableHolidays int
	SundaysInMonth     int
	SundayWorkedCount  int
	TotalOtMinutes     int
	OTRate             decimal.Decimal
}

// GrossBreakdown is the payroll view shared by the timesheet, approval and ESI register.
type GrossBreakdown struct {
	MonthlySalary        decimal.Decimal `json:"monthly_salary"`
	TotalDaysInMonth     int             `json:"total_days_in_month"`
	PresentDays          int             `json:"present_days"`
	HalfDays             int             `json:"half_days"`
	ApplicableHolidays   int             `json:"applicable_holidays"`
	RequiredDaysForFull  int             `json:"required_days_for_full"`
	AdjustedRequiredDays int             `json:"adjusted_required_days"`
	FullWorkingDays      int             `json:"full_working_days"`
	EffectiveSundayOff   int             `json:"effective_sunday_off"`
	TotalOtMinutes       int             `json:"total_ot_minutes"`
	OTRate               decimal.Decimal `json:"ot_rate"`
	PerDayRate           decimal.Decimal `json:"per_day_rate"`
	PresentPay           decimal.Decimal `json:"present_pay"`
	HalfDayPay           decimal.Decimal `json:"half_day_pay"`
	HolidayPay           decimal.Decimal `json:"holiday_pay"`
	SundayPay            decimal.Decimal `json:"sunday_pay"`
	OtAmount             decimal.Decimal `json:"ot_amount"`
	TotalGrossEarnings   decimal.Decimal `json:"total_gross_earnings"`
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPaid    PaymentStatus = "Paid"
)

func IsValidPaymentStatus(s string) bool {
	return PaymentStatus(s) == PaymentStatusPending || PaymentStatus(s) == PaymentStatusPaid
}

// EsiEntry is one row of the monthly ESI register. Computed fields are replaced on
// every recompute; IncludedOverride and PaymentStatus are HR overrides that survive it.
type EsiEntry struct {
	EmployeeID         string
	EmployeeName       string
	Department         string
	Month              string
	MonthlySalary      decimal.Decimal
	MasterEsiFlag      bool
	Eligible           bool
	IncludedOverride   *bool
	TotalGrossEarnings decimal.Decimal
	// Contribution is the rounded ESI on gross earnings before inclusion is applied.
	Contribution   decimal.Decimal
	PaymentStatus  PaymentStatus
	SalaryCredited bool
	UpdatedAt      time.Time
}

// EsiIncluded is the explicit override, defaulting to eligibility.
func (e EsiEntry) EsiIncluded() bool {
	if e.IncludedOverride != nil {
		return *e.IncludedOverride
	}
	return e.Eligible
}

// EsiAmount is the contribution owed: zero unless eligible and included.
func (e EsiEntry) EsiAmount() decimal.Decimal {
	if e.Eligible && e.EsiIncluded() {
		return e.Contribution
	}
	return decimal.Zero
}
