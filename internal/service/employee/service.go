package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/revision"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/events"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	tx           database.Transactor
	employeeRepo employee.Repository
	revisionRepo revision.Repository
	publisher    events.Publisher
	now          func() time.Time
}

func NewEmployeeService(
	tx database.Transactor,
	employeeRepo employee.Repository,
	revisionRepo revision.Repository,
	publisher events.Publisher,
) *EmployeeServiceImpl {
	return &EmployeeServiceImpl{
		tx:           tx,
		employeeRepo: employeeRepo,
		revisionRepo: revisionRepo,
		publisher:    publisher,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Update implements employee.Service. The stored row, locked for the transaction,
// is the previous salary snapshot the revision is diffed against.
func (s *EmployeeServiceImpl) Update(ctx context.Context, actor user.Actor, req employee.UpdateEmployeeRequest) (employee.UpdateEmployeeResponse, error) {
	if err := actor.Require(user.PermissionEmployeeEdit); err != nil {
		return employee.UpdateEmployeeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.UpdateEmployeeResponse{}, err
	}

	var (
		updated employee.Employee
		rev     *revision.SalaryRevision
	)
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		prev, err := s.employeeRepo.GetForUpdate(txCtx, req.ID)
		if err != nil {
			return err
		}

		next := applyContactFields(prev, req)

		salaryChanged := req.Salary != nil && len(DiffSalary(prev.Salary, *req.Salary)) > 0
		otRateChanged := req.OTRate != nil && !sameRate(prev.OTRate, req.OTRate)
		if (salaryChanged || otRateChanged) && !actor.Can(user.PermissionSalaryRevise) {
			return employee.ErrSalaryChangeNotAllowed
		}
		if salaryChanged {
			next.Salary = *req.Salary
		}
		if otRateChanged {
			rate := *req.OTRate
			next.OTRate = &rate
		}

		updated, err = s.employeeRepo.Update(txCtx, next)
		if err != nil {
			return fmt.Errorf("failed to update employee: %w", err)
		}

		if !salaryChanged {
			return nil
		}
		built, err := BuildRevision(prev, updated, actor, req.Reason, s.now())
		if errors.Is(err, revision.ErrNoMonitoredChange) {
			return nil
		}
		if err != nil {
			return err
		}
		appended, err := s.revisionRepo.Append(txCtx, built)
		if err != nil {
			return fmt.Errorf("failed to append salary revision: %w", err)
		}
		rev = &appended
		return nil
	})
	if err != nil {
		return employee.UpdateEmployeeResponse{}, err
	}

	resp := employee.UpdateEmployeeResponse{Employee: employee.NewEmployeeResponse(updated)}
	topic := events.EmployeeTopic(updated.ID)
	events.PublishBestEffort(ctx, s.publisher, events.NewEvent(events.TypeEmployeeUpdated, topic, actor.ID, resp.Employee))

	if rev != nil {
		resp.RevisionID = &rev.ID
		slog.InfoContext(ctx, "salary revision appended",
			"employee_id", updated.ID,
			"revision_id", rev.ID,
			"changes", len(rev.Changes),
		)
		events.PublishBestEffort(ctx, s.publisher, events.NewEvent(events.TypeSalaryRevised, topic, actor.ID, revision.NewSalaryRevisionResponse(*rev)))
	}

	return resp, nil
}

// Get implements employee.Service.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	if !validator.IsValidEmployeeID(id) {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(emp), nil
}

// ListRevisions implements revision.Service.
func (s *EmployeeServiceImpl) ListRevisions(ctx context.Context, employeeID string) ([]revision.SalaryRevisionResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	revs, err := s.revisionRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary revisions: %w", err)
	}

	out := make([]revision.SalaryRevisionResponse, 0, len(revs))
	for _, r := range revs {
		out = append(out, revision.NewSalaryRevisionResponse(r))
	}
	return out, nil
}

func applyContactFields(emp employee.Employee, req employee.UpdateEmployeeRequest) employee.Employee {
	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.Department != nil {
		emp.Department = employee.NormalizeDepartment(*req.Department)
	}
	if req.Designation != nil {
		emp.Designation = *req.Designation
	}
	if req.Status != nil {
		emp.Status = employee.EmploymentStatus(*req.Status)
	}
	if req.PhoneNumber != nil {
		emp.PhoneNumber = *req.PhoneNumber
	}
	if req.Email != nil {
		emp.Email = *req.Email
	}
	return emp
}

func sameRate(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
