package employee

import (
	"context"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/user"
)

type Service interface {
	// Update edits an employee. Salary changes require admin and append a salary revision.
	Update(ctx context.Context, actor user.Actor, req UpdateEmployeeRequest) (UpdateEmployeeResponse, error)

	Get(ctx context.Context, id string) (EmployeeResponse, error)
}
