package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/cache"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/events"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/timemath"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	tx             database.Transactor
	attendanceRepo attendance.Repository
	employeeRepo   employee.Repository
	summaries      attendance.SummaryRefresher
	calculator     *Calculator
	cache          *cache.Cache
	publisher      events.Publisher
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.Repository,
	employeeRepo employee.Repository,
	summaries attendance.SummaryRefresher,
	calculator *Calculator,
	summaryCache *cache.Cache,
	publisher events.Publisher,
) attendance.Service {
	return &AttendanceServiceImpl{
		tx:             tx,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		summaries:      summaries,
		calculator:     calculator,
		cache:          summaryCache,
		publisher:      publisher,
	}
}

// SaveDaily implements attendance.Service.
func (s *AttendanceServiceImpl) SaveDaily(ctx context.Context, actor user.Actor, req attendance.SaveDailyRequest) (attendance.DailyRecordResponse, error) {
	if err := actor.Require(user.PermissionAttendanceMark); err != nil {
		return attendance.DailyRecordResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.DailyRecordResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	status := attendance.Status(req.Status)
	shiftType := shift.Type(req.ShiftType)
	punches := attendance.Punches{
		CheckIn:  timemath.NormalizeClock(req.CheckIn),
		LunchIn:  timemath.NormalizeClock(req.LunchIn),
		LunchOut: timemath.NormalizeClock(req.LunchOut),
		CheckOut: timemath.NormalizeClock(req.CheckOut),
	}

	hours := s.calculator.Calculate(status, shiftType, punches)
	hours.OtHrs = timemath.Round4(req.OtHrs)

	record := attendance.DailyRecord{
		EmployeeID: req.EmployeeID,
		Date:       date,
		Status:     status,
		ShiftType:  shiftType,
		Punches:    punches,
		Hours:      hours,
		UpdatedBy:  actor.ID,
	}

	var saved attendance.DailyRecord
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.employeeRepo.GetByID(txCtx, req.EmployeeID); err != nil {
			return err
		}

		var err error
		saved, err = s.attendanceRepo.Upsert(txCtx, record)
		if err != nil {
			return fmt.Errorf("failed to save attendance: %w", err)
		}

		return s.summaries.RefreshSummary(txCtx, req.EmployeeID, timemath.MonthStart(date))
	})
	if err != nil {
		return attendance.DailyRecordResponse{}, err
	}

	month := saved.Month()
	if err := s.cache.Invalidate(ctx, cache.TimesheetKey(saved.EmployeeID, month)); err != nil {
		slog.WarnContext(ctx, "failed to invalidate timesheet cache",
			"employee_id", saved.EmployeeID,
			"month", month,
			"error", err,
		)
	}

	resp := attendance.NewDailyRecordResponse(saved)
	events.PublishBestEffort(ctx, s.publisher, events.NewEvent(events.TypeAttendanceSaved, events.TimesheetTopic(saved.EmployeeID, month), actor.ID, resp))

	return resp, nil
}

// GetDaily implements attendance.Service.
func (s *AttendanceServiceImpl) GetDaily(ctx context.Context, employeeID, dateStr string) (attendance.DailyRecordResponse, error) {
	date, err := parseDate(dateStr)
	if err != nil {
		return attendance.DailyRecordResponse{}, err
	}

	record, err := s.attendanceRepo.Get(ctx, employeeID, date)
	if err != nil {
		return attendance.DailyRecordResponse{}, err
	}

	return attendance.NewDailyRecordResponse(record), nil
}

// ListByDate implements attendance.Service.
func (s *AttendanceServiceImpl) ListByDate(ctx context.Context, dateStr string) ([]attendance.DailyRecordResponse, error) {
	date, err := parseDate(dateStr)
	if err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	return toResponses(records), nil
}

// ListByEmployeeMonth implements attendance.Service.
func (s *AttendanceServiceImpl) ListByEmployeeMonth(ctx context.Context, employeeID, monthStr string) ([]attendance.DailyRecordResponse, error) {
	month, ok := validator.IsValidMonth(monthStr)
	if !ok {
		return nil, validator.ValidationErrors{{Field: "month", Message: "month must be in YYYY-MM format"}}
	}

	records, err := s.attendanceRepo.ListByEmployeeMonth(ctx, employeeID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	return toResponses(records), nil
}

func parseDate(dateStr string) (time.Time, error) {
	date, ok := validator.IsValidDate(dateStr)
	if !ok {
		return time.Time{}, validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}
	return date, nil
}

func toResponses(records []attendance.DailyRecord) []attendance.DailyRecordResponse {
	out := make([]attendance.DailyRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, attendance.NewDailyRecordResponse(r))
	}
	return out
}
