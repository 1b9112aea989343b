package approval

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/approval"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/events"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/service/payroll"
)

type ApprovalServiceImpl struct {
	tx           database.Transactor
	approvalRepo approval.Repository
	employeeRepo employee.Repository
	timesheets   timesheet.Service
	breakdown    *payroll.BreakdownService
	publisher    events.Publisher
	now          func() time.Time
}

func NewApprovalService(
	tx database.Transactor,
	approvalRepo approval.Repository,
	employeeRepo employee.Repository,
	timesheets timesheet.Service,
	breakdown *payroll.BreakdownService,
	publisher events.Publisher,
) *ApprovalServiceImpl {
	return &ApprovalServiceImpl{
		tx:           tx,
		approvalRepo: approvalRepo,
		employeeRepo: employeeRepo,
		timesheets:   timesheets,
		breakdown:    breakdown,
		publisher:    publisher,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Submit implements approval.Service. HR may create the record or refresh it
// while pending; createdAt is frozen on first submission.
func (s *ApprovalServiceImpl) Submit(ctx context.Context, actor user.Actor, employeeID, monthStr string) (approval.ApprovalResponse, error) {
	if err := actor.Require(user.PermissionTimesheetSubmit); err != nil {
		return approval.ApprovalResponse{}, err
	}
	month, err := parseKey(employeeID, monthStr)
	if err != nil {
		return approval.ApprovalResponse{}, err
	}

	var saved approval.Approval
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.approvalRepo.GetForUpdate(txCtx, employeeID, month)
		found := err == nil
		if err != nil && !errors.Is(err, approval.ErrApprovalNotFound) {
			return fmt.Errorf("failed to get approval: %w", err)
		}
		if found && existing.Status.IsTerminal() {
			return approval.ErrApprovalAlreadyDecided
		}

		_, summary, err := s.timesheets.EnsureSuperSaved(txCtx, actor, employeeID, month)
		if err != nil {
			return err
		}

		emp, err := s.employeeRepo.GetByID(txCtx, employeeID)
		if err != nil {
			return err
		}
		breakdown, err := s.breakdown.Breakdown(txCtx, emp, summary)
		if err != nil {
			return err
		}

		now := s.now()
		record := approval.Approval{
			ID:          uuid.New().String(),
			EmployeeID:  employeeID,
			Month:       monthStr,
			Status:      approval.StatusPending,
			SubmittedBy: actor.ID,
			CreatedAt:   now,
			UpdatedAt:   now,
			Snapshot: approval.Snapshot{
				MarkedDays:         summary.MarkedDaysCount,
				TotalDays:          summary.TotalDays,
				PresentDays:        summary.PresentDays,
				AbsentDays:         summary.AbsentDays,
				HalfDays:           summary.HalfDays,
				FullWorkingDays:    breakdown.FullWorkingDays,
				SundayPresentCount: summary.SundayPresentCount,
				SundayWorkHours:    summary.SundayWorkHours,
				TotalOtHrs:         summary.TotalOtHrs,
				TotalPendingHrs:    summary.TotalPendingHrs,
				TotalGrossEarnings: breakdown.TotalGrossEarnings,
			},
		}
		if found {
			record.ID = existing.ID
			record.CreatedAt = existing.CreatedAt
		}

		saved, err = s.approvalRepo.Save(txCtx, record)
		if err != nil {
			return fmt.Errorf("failed to save approval: %w", err)
		}
		return nil
	})
	if err != nil {
		return approval.ApprovalResponse{}, err
	}

	resp := approval.NewApprovalResponse(saved)
	events.PublishBestEffort(ctx, s.publisher, events.NewEvent(events.TypeApprovalSubmitted, events.ApprovalTopic(employeeID, monthStr), actor.ID, resp))

	return resp, nil
}

// Decide implements approval.Service. Only a pending record may be decided; the
// snapshot is left untouched.
func (s *ApprovalServiceImpl) Decide(ctx context.Context, actor user.Actor, req approval.DecideRequest) (approval.ApprovalResponse, error) {
	if err := actor.Require(user.PermissionApprovalDecide); err != nil {
		return approval.ApprovalResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return approval.ApprovalResponse{}, err
	}
	month, _ := validator.IsValidMonth(req.Month)

	var saved approval.Approval
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.approvalRepo.GetForUpdate(txCtx, req.EmployeeID, month)
		if err != nil {
			return err
		}
		if existing.Status.IsTerminal() {
			return approval.ErrApprovalAlreadyDecided
		}
		if existing.Status != approval.StatusPending {
			return approval.ErrApprovalNotPending
		}

		now := s.now()
		decidedBy := actor.ID
		existing.Status = approval.Status(req.Status)
		existing.DecidedBy = &decidedBy
		existing.DecidedAt = &now
		existing.UpdatedAt = now

		saved, err = s.approvalRepo.Save(txCtx, existing)
		if err != nil {
			return fmt.Errorf("failed to save approval: %w", err)
		}
		return nil
	})
	if err != nil {
		return approval.ApprovalResponse{}, err
	}

	resp := approval.NewApprovalResponse(saved)
	events.PublishBestEffort(ctx, s.publisher, events.NewEvent(events.TypeApprovalDecided, events.ApprovalTopic(req.EmployeeID, req.Month), actor.ID, resp))

	return resp, nil
}

// Get implements approval.Service.
func (s *ApprovalServiceImpl) Get(ctx context.Context, employeeID, monthStr string) (approval.ApprovalResponse, error) {
	month, err := parseKey(employeeID, monthStr)
	if err != nil {
		return approval.ApprovalResponse{}, err
	}

	a, err := s.approvalRepo.Get(ctx, employeeID, month)
	if err != nil {
		return approval.ApprovalResponse{}, err
	}

	return approval.NewApprovalResponse(a), nil
}

// ListByMonth implements approval.Service.
func (s *ApprovalServiceImpl) ListByMonth(ctx context.Context, monthStr string) ([]approval.ApprovalResponse, error) {
	month, ok := validator.IsValidMonth(monthStr)
	if !ok {
		return nil, validator.ValidationErrors{{Field: "month", Message: "month must be in YYYY-MM format"}}
	}

	list, err := s.approvalRepo.ListByMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list approvals: %w", err)
	}

	out := make([]approval.ApprovalResponse, 0, len(list))
	for _, a := range list {
		out = append(out, approval.NewApprovalResponse(a))
	}
	return out, nil
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
