package attendance

import (
	"context"
	"time"
)

// Repository stores daily records keyed uniquely by (employee_id, date).
type Repository interface {
	// Upsert writes rec atomically, replacing any existing record for the same key.
	// CreatedAt of an existing record is preserved.
	Upsert(ctx context.Context, rec DailyRecord) (DailyRecord, error)

	// Get returns ErrRecordNotFound when no record exists for the key.
	Get(ctx context.Context, employeeID string, date time.Time) (DailyRecord, error)

	ListByDate(ctx context.Context, date time.Time) ([]DailyRecord, error)
	ListByEmployeeMonth(ctx context.Context, employeeID string, month time.Time) ([]DailyRecord, error)
	ListByMonth(ctx context.Context, month time.Time) ([]DailyRecord, error)
}

// SummaryRefresher recomputes the stored monthly summary after a daily record changes.
// It is called with the transaction context of the save.
type SummaryRefresher interface {
	RefreshSummary(ctx context.Context, employeeID string, month time.Time) error
}
