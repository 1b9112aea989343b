package approval

import (
	"context"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/user"
)

type Service interface {
	// Submit moves an employee-month to pending (HR). Gated on the marked-days threshold.
	Submit(ctx context.Context, actor user.Actor, employeeID, month string) (ApprovalResponse, error)

	// Decide accepts or declines a pending approval (Admin)
	Decide(ctx context.Context, actor user.Actor, req DecideRequest) (ApprovalResponse, error)

	Get(ctx context.Context, employeeID, month string) (ApprovalResponse, error)
	ListByMonth(ctx context.Context, month string) ([]ApprovalResponse, error)
}
