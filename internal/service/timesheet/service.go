package timesheet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/cache"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/events"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/timemath"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/service/payroll"
)

type TimesheetServiceImpl struct {
	tx             database.Transactor
	attendanceRepo attendance.Repository
	employeeRepo   employee.Repository
	summaryRepo    timesheet.SummaryRepository
	superSaveRepo  timesheet.SuperSaveRepository
	aggregator     *Aggregator
	breakdown      *payroll.BreakdownService
	cache          *cache.Cache
	publisher      events.Publisher
	minMarkedDays  int
}

func NewTimesheetService(
	tx database.Transactor,
	attendanceRepo attendance.Repository,
	employeeRepo employee.Repository,
	summaryRepo timesheet.SummaryRepository,
	superSaveRepo timesheet.SuperSaveRepository,
	aggregator *Aggregator,
	breakdown *payroll.BreakdownService,
	summaryCache *cache.Cache,
	publisher events.Publisher,
	minMarkedDays int,
) *TimesheetServiceImpl {
	return &TimesheetServiceImpl{
		tx:             tx,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		summaryRepo:    summaryRepo,
		superSaveRepo:  superSaveRepo,
		aggregator:     aggregator,
		breakdown:      breakdown,
		cache:          summaryCache,
		publisher:      publisher,
		minMarkedDays:  minMarkedDays,
	}
}

// GetMonthly implements timesheet.Service.
func (s *TimesheetServiceImpl) GetMonthly(ctx context.Context, employeeID, monthStr string) (timesheet.MonthlyTimesheetResponse, error) {
	month, err := parseKey(employeeID, monthStr)
	if err != nil {
		return timesheet.MonthlyTimesheetResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return timesheet.MonthlyTimesheetResponse{}, err
	}

	agg, err := cache.GetOrLoad(ctx, s.cache, cache.TimesheetKey(employeeID, monthStr), func(ctx context.Context) (timesheet.MonthlyAggregate, error) {
		return s.aggregate(ctx, employeeID, month)
	})
	if err != nil {
		return timesheet.MonthlyTimesheetResponse{}, err
	}

	breakdown, err := s.breakdown.Breakdown(ctx, emp, agg.Summary)
	if err != nil {
		return timesheet.MonthlyTimesheetResponse{}, err
	}

	holidays, err := s.breakdown.HolidayDates(ctx, month, string(emp.Department))
	if err != nil {
		return timesheet.MonthlyTimesheetResponse{}, err
	}
	days := make([]timesheet.DayRow, len(agg.Days))
	copy(days, agg.Days)
	for i := range days {
		days[i].HolidayName = holidays[days[i].Date]
	}

	superSaved := true
	if _, err := s.superSaveRepo.Get(ctx, employeeID, month); err != nil {
		if !errors.Is(err, timesheet.ErrSuperSaveNotFound) {
			return timesheet.MonthlyTimesheetResponse{}, fmt.Errorf("failed to get super-save record: %w", err)
		}
		superSaved = false
	}

	return timesheet.MonthlyTimesheetResponse{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Department:   string(emp.Department),
		Month:        monthStr,
		Days:         days,
		Summary:      agg.Summary,
		Payroll:      breakdown,
		SuperSaved:   superSaved,
		Warnings:     unmarkedSundayWarnings(agg.Summary),
	}, nil
}

// SuperSave implements timesheet.Service.
func (s *TimesheetServiceImpl) SuperSave(ctx context.Context, actor user.Actor, employeeID, monthStr string) (timesheet.SuperSaveResponse, error) {
	month, err := parseKey(employeeID, monthStr)
	if err != nil {
		return timesheet.SuperSaveResponse{}, err
	}

	var (
		rec     timesheet.SuperSaveRecord
		summary timesheet.MonthlySummary
	)
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		rec, summary, err = s.EnsureSuperSaved(txCtx, actor, employeeID, month)
		return err
	})
	if err != nil {
		return timesheet.SuperSaveResponse{}, err
	}

	events.PublishBestEffort(ctx, s.publisher, events.NewEvent(events.TypeSuperSaved, events.TimesheetTopic(employeeID, monthStr), actor.ID, map[string]int{
		"marked_days": rec.MarkedDays,
	}))

	return timesheet.NewSuperSaveResponse(rec, unmarkedSundayWarnings(summary)), nil
}

// EnsureSuperSaved implements timesheet.Service.
func (s *TimesheetServiceImpl) EnsureSuperSaved(ctx context.Context, actor user.Actor, employeeID string, month time.Time) (timesheet.SuperSaveRecord, timesheet.MonthlySummary, error) {
	if err := actor.Require(user.PermissionTimesheetSubmit); err != nil {
		return timesheet.SuperSaveRecord{}, timesheet.MonthlySummary{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return timesheet.SuperSaveRecord{}, timesheet.MonthlySummary{}, err
	}

	summary, err := s.MonthlySummary(ctx, employeeID, month)
	if err != nil {
		return timesheet.SuperSaveRecord{}, timesheet.MonthlySummary{}, err
	}

	if summary.MarkedDaysCount < s.minMarkedDays {
		return timesheet.SuperSaveRecord{}, summary, &timesheet.ShortfallError{
			Marked:   summary.MarkedDaysCount,
			Required: s.minMarkedDays,
		}
	}

	if err := s.summaryRepo.Upsert(ctx, summary); err != nil {
		return timesheet.SuperSaveRecord{}, summary, fmt.Errorf("failed to save summary: %w", err)
	}

	rec, err := s.superSaveRepo.Upsert(ctx, timesheet.SuperSaveRecord{
		EmployeeID:      employeeID,
		Month:           summary.Month,
		MarkedDays:      summary.MarkedDaysCount,
		FullWorkingDays: summary.FullWorkingDays,
		TotalOtHrs:      summary.TotalOtHrs,
		TotalPendingHrs: summary.TotalPendingHrs,
		SavedBy:         actor.ID,
		SavedAt:         time.Now().UTC(),
	})
	if err != nil {
		return timesheet.SuperSaveRecord{}, summary, fmt.Errorf("failed to save super-save record: %w", err)
	}

	return rec, summary, nil
}

// MonthlySummary implements timesheet.Service.
func (s *TimesheetServiceImpl) MonthlySummary(ctx context.Context, employeeID string, month time.Time) (timesheet.MonthlySummary, error) {
	agg, err := s.aggregate(ctx, employeeID, month)
	if err != nil {
		return timesheet.MonthlySummary{}, err
	}
	return agg.Summary, nil
}

// RefreshSummary implements attendance.SummaryRefresher.
func (s *TimesheetServiceImpl) RefreshSummary(ctx context.Context, employeeID string, month time.Time) error {
	summary, err := s.MonthlySummary(ctx, employeeID, month)
	if err != nil {
		return err
	}
	if err := s.summaryRepo.Upsert(ctx, summary); err != nil {
		return fmt.Errorf("failed to save summary: %w", err)
	}
	return nil
}

func (s *TimesheetServiceImpl) aggregate(ctx context.Context, employeeID string, month time.Time) (timesheet.MonthlyAggregate, error) {
	records, err := s.attendanceRepo.ListByEmployeeMonth(ctx, employeeID, month)
	if err != nil {
		return timesheet.MonthlyAggregate{}, fmt.Errorf("failed to list attendance records: %w", err)
	}
	agg := s.aggregator.Aggregate(employeeID, month, records)
	agg.Summary.UpdatedAt = time.Now().UTC()
	return agg, nil
}

func unmarkedSundayWarnings(summary timesheet.MonthlySummary) []string {
	warnings := make([]string, 0, len(summary.UnmarkedSundays))
	for _, d := range summary.UnmarkedSundays {
		warnings = append(warnings, fmt.Sprintf("Sunday %s is not marked", d))
	}
	return warnings
}

func parseKey(employeeID, monthStr string) (time.Time, error) {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeID(employeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is invalid",
		})
	}

	month, ok := validator.IsValidMonth(monthStr)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if len(errs) > 0 {
		return time.Time{}, errs
	}

	return month, nil
}

// RecomputeMonth refreshes the stored summary of every active employee for month.
func (s *TimesheetServiceImpl) RecomputeMonth(ctx context.Context, month time.Time) (int, error) {
	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active employees: %w", err)
	}

	keys := make([]string, 0, len(employees))
	for _, emp := range employees {
		if err := s.RefreshSummary(ctx, emp.ID, month); err != nil {
			return 0, fmt.Errorf("employee %s: %w", emp.ID, err)
		}
		keys = append(keys, cache.TimesheetKey(emp.ID, timemath.MonthKey(month)))
	}

	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		return len(employees), err
	}

	return len(employees), nil
}
