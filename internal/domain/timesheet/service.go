package timesheet

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/user"
)

type Service interface {
	// GetMonthly returns day rows, the summary and the payroll breakdown for an employee-month
	GetMonthly(ctx context.Context, employeeID, month string) (MonthlyTimesheetResponse, error)

	// SuperSave records the completeness gate; fewer marked days than required yields a *ShortfallError
	SuperSave(ctx context.Context, actor user.Actor, employeeID, month string) (SuperSaveResponse, error)

	// EnsureSuperSaved applies the marked-days gate and upserts the super-save record.
	// It joins the caller's transaction and publishes nothing.
	EnsureSuperSaved(ctx context.Context, actor user.Actor, employeeID string, month time.Time) (SuperSaveRecord, MonthlySummary, error)

	// MonthlySummary aggregates the stored daily records of an employee-month
	MonthlySummary(ctx context.Context, employeeID string, month time.Time) (MonthlySummary, error)

	// RefreshSummary recomputes and stores the summary after a daily record changes
	RefreshSummary(ctx context.Context, employeeID string, month time.Time) error
}
