package approval

import (
	"context"
	"time"
)

type Repository interface {
	// Get returns ErrApprovalNotFound when no record exists.
	Get(ctx context.Context, employeeID string, month time.Time) (Approval, error)

	// GetForUpdate locks the record for the surrounding transaction.
	GetForUpdate(ctx context.Context, employeeID string, month time.Time) (Approval, error)

	// Save inserts or updates by (employee_id, month). created_at is kept on update.
	// Only a pending record is updated; a decided one yields ErrApprovalAlreadyDecided.
	Save(ctx context.Context, a Approval) (Approval, error)

	ListByMonth(ctx context.Context, month time.Time) ([]Approval, error)
}
