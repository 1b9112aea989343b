package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/timemath"
)

// previousMonthWindow is how many days into a month the previous month keeps being refreshed.
const previousMonthWindow = 7

// MonthRecomputer refreshes the stored monthly summaries of every active employee.
type MonthRecomputer interface {
	RecomputeMonth(ctx context.Context, month time.Time) (int, error)
}

type PayrollJobs struct {
	timesheets MonthRecomputer
	register   payroll.RegisterService
	loc        *time.Location
	now        func() time.Time
}

func NewPayrollJobs(timesheets MonthRecomputer, register payroll.RegisterService) *PayrollJobs {
	return &PayrollJobs{
		timesheets: timesheets,
		register:   register,
		loc:        time.UTC,
		now:        time.Now,
	}
}

// RegisterJobs adds the nightly recompute under spec. Months are then read in
// the scheduler's zone.
func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler, spec string) error {
	j.loc = scheduler.Location()
	return scheduler.AddJob(Job{
		Name:    "recompute_payroll",
		Spec:    spec,
		Timeout: 30 * time.Minute,
		Fn:      j.RecomputePayroll,
	})
}

// RecomputePayroll refreshes summaries and the ESI register for the current month,
// and for the previous month during the first week.
func (j *PayrollJobs) RecomputePayroll(ctx context.Context) error {
	now := j.now().In(j.loc)
	months := []time.Time{timemath.MonthStart(now)}
	if now.Day() <= previousMonthWindow {
		months = append(months, timemath.MonthStart(now).AddDate(0, -1, 0))
	}

	var errs []error
	for _, month := range months {
		if err := j.recompute(ctx, month); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (j *PayrollJobs) recompute(ctx context.Context, month time.Time) error {
	key := timemath.MonthKey(month)
	slog.Info("Cron: Recomputing payroll", "month", key)

	count, err := j.timesheets.RecomputeMonth(ctx, month)
	if err != nil {
		return fmt.Errorf("recompute summaries for %s: %w", key, err)
	}

	reg, err := j.register.RecomputeRegister(ctx, key)
	if err != nil {
		return fmt.Errorf("recompute esi register for %s: %w", key, err)
	}

	slog.Info("Cron: Payroll recomputed",
		"month", key,
		"summaries", count,
		"esi_entries", len(reg.Entries),
		"total_esi", reg.TotalEsi.StringFixed(2),
	)
	return nil
}
