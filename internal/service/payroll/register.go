package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/events"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/timemath"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/validator"
)

// SummaryProvider aggregates the stored daily records of an employee-month.
type SummaryProvider interface {
	MonthlySummary(ctx context.Context, employeeID string, month time.Time) (timesheet.MonthlySummary, error)
}

const defaultRecomputeWorkers = 8

type RegisterServiceImpl struct {
	tx           database.Transactor
	employeeRepo employee.Repository
	esiRepo      payroll.EsiRepository
	creditRepo   payroll.CreditRepository
	summaries    SummaryProvider
	breakdown    *BreakdownService
	esi          *EsiCalculator
	publisher    events.Publisher
	workers      int
}

func NewRegisterService(
	tx database.Transactor,
	employeeRepo employee.Repository,
	esiRepo payroll.EsiRepository,
	creditRepo payroll.CreditRepository,
	summaries SummaryProvider,
	breakdown *BreakdownService,
	esi *EsiCalculator,
	publisher events.Publisher,
) *RegisterServiceImpl {
	return &RegisterServiceImpl{
		tx:           tx,
		employeeRepo: employeeRepo,
		esiRepo:      esiRepo,
		creditRepo:   creditRepo,
		summaries:    summaries,
		breakdown:    breakdown,
		esi:          esi,
		publisher:    publisher,
		workers:      defaultRecomputeWorkers,
	}
}

// RecomputeRegister implements payroll.RegisterService.
func (s *RegisterServiceImpl) RecomputeRegister(ctx context.Context, monthStr string) (payroll.EsiRegisterResponse, error) {
	month, err := timemath.ParseMonth(monthStr)
	if err != nil {
		return payroll.EsiRegisterResponse{}, invalidMonth()
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return payroll.EsiRegisterResponse{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	credited, err := s.creditRepo.ListCredited(ctx, month)
	if err != nil {
		return payroll.EsiRegisterResponse{}, fmt.Errorf("failed to list salary credited flags: %w", err)
	}

	entries := make([]payroll.EsiEntry, len(employees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, emp := range employees {
		i, emp := i, emp
		g.Go(func() error {
			entry, err := s.computeEntry(gctx, emp, month, credited[emp.ID])
			if err != nil {
				return fmt.Errorf("employee %s: %w", emp.ID, err)
			}
			saved, err := s.esiRepo.UpsertComputed(gctx, entry)
			if err != nil {
				return fmt.Errorf("employee %s: failed to save esi entry: %w", emp.ID, err)
			}
			entries[i] = saved
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return payroll.EsiRegisterResponse{}, err
	}

	slog.InfoContext(ctx, "esi register recomputed", "month", monthStr, "employees", len(entries))
	events.PublishBestEffort(ctx, s.publisher, events.NewEvent(events.TypeEsiUpdated, events.EsiTopic(monthStr), "", map[string]int{
		"entries": len(entries),
	}))

	return payroll.NewEsiRegisterResponse(monthStr, entries), nil
}

// GetRegister implements payroll.RegisterService. An empty month is computed on first read.
func (s *RegisterServiceImpl) GetRegister(ctx context.Context, monthStr string) (payroll.EsiRegisterResponse, error) {
	month, err := timemath.ParseMonth(monthStr)
	if err != nil {
		return payroll.EsiRegisterResponse{}, invalidMonth()
	}

	entries, err := s.esiRepo.ListByMonth(ctx, month)
	if err != nil {
		return payroll.EsiRegisterResponse{}, fmt.Errorf("failed to list esi entries: %w", err)
	}
	if len(entries) == 0 {
		return s.RecomputeRegister(ctx, monthStr)
	}

	return payroll.NewEsiRegisterResponse(monthStr, entries), nil
}

// UpdateEntry implements payroll.RegisterService.
func (s *RegisterServiceImpl) UpdateEntry(ctx context.Context, actor user.Actor, req payroll.UpdateEsiEntryRequest) (payroll.EsiEntryResponse, error) {
	if err := actor.Require(user.PermissionEsiManage); err != nil {
		return payroll.EsiEntryResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return payroll.EsiEntryResponse{}, err
	}
	month, _ := timemath.ParseMonth(req.Month)

	var saved payroll.EsiEntry
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		entry, err := s.esiRepo.GetForUpdate(txCtx, month, req.EmployeeID)
		if errors.Is(err, payroll.ErrEsiEntryNotFound) {
			entry, err = s.recomputeOne(txCtx, req.EmployeeID, month)
		}
		if err != nil {
			return err
		}

		included, status, err := applyOverrides(entry, req)
		if err != nil {
			return err
		}

		saved, err = s.esiRepo.SetOverrides(txCtx, month, req.EmployeeID, included, status)
		return err
	})
	if err != nil {
		return payroll.EsiEntryResponse{}, err
	}

	events.PublishBestEffort(ctx, s.publisher, events.NewEvent(events.TypeEsiUpdated, events.EsiTopic(req.Month), actor.ID, payroll.NewEsiEntryResponse(saved)))

	return payroll.NewEsiEntryResponse(saved), nil
}

func invalidMonth() error {
	return validator.ValidationErrors{{Field: "month", Message: "month must be in YYYY-MM format"}}
}

// applyOverrides merges req into entry's overrides. Paid requires inclusion and
// excluding an employee resets the payment status to Pending.
func applyOverrides(entry payroll.EsiEntry, req payroll.UpdateEsiEntryRequest) (*bool, payroll.PaymentStatus, error) {
	if req.EsiIncluded != nil {
		v := *req.EsiIncluded
		entry.IncludedOverride = &v
	}
	status := entry.PaymentStatus
	if status == "" {
		status = payroll.PaymentStatusPending
	}
	if req.PaymentStatus != nil {
		status = payroll.PaymentStatus(*req.PaymentStatus)
	}

	if !entry.EsiIncluded() {
		if req.PaymentStatus != nil && status == payroll.PaymentStatusPaid {
			return nil, "", payroll.ErrPaidRequiresIncluded
		}
		status = payroll.PaymentStatusPending
	}

	return entry.IncludedOverride, status, nil
}

func (s *RegisterServiceImpl) recomputeOne(ctx context.Context, employeeID string, month time.Time) (payroll.EsiEntry, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return payroll.EsiEntry{}, err
	}
	credited, err := s.creditRepo.ListCredited(ctx, month)
	if err != nil {
		return payroll.EsiEntry{}, fmt.Errorf("failed to list salary credited flags: %w", err)
	}
	entry, err := s.computeEntry(ctx, emp, month, credited[emp.ID])
	if err != nil {
		return payroll.EsiEntry{}, err
	}
	return s.esiRepo.UpsertComputed(ctx, entry)
}

func (s *RegisterServiceImpl) computeEntry(ctx context.Context, emp employee.Employee, month time.Time, credited bool) (payroll.EsiEntry, error) {
	summary, err := s.summaries.MonthlySummary(ctx, emp.ID, month)
	if err != nil {
		return payroll.EsiEntry{}, fmt.Errorf("failed to aggregate month: %w", err)
	}
	breakdown, err := s.breakdown.Breakdown(ctx, emp, summary)
	if err != nil {
		return payroll.EsiEntry{}, err
	}

	return payroll.EsiEntry{
		EmployeeID:         emp.ID,
		EmployeeName:       emp.Name,
		Department:         string(emp.Department),
		Month:              timemath.MonthKey(month),
		MonthlySalary:      emp.Salary.MonthlySalary,
		MasterEsiFlag:      emp.Salary.IncludeESI,
		Eligible:           s.esi.Eligible(emp),
		TotalGrossEarnings: breakdown.TotalGrossEarnings,
		Contribution:       s.esi.Contribution(breakdown.TotalGrossEarnings),
		PaymentStatus:      payroll.PaymentStatusPending,
		SalaryCredited:     credited,
	}, nil
}
