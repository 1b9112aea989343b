package timesheet

import (
	"context"
	"time"
)

type SummaryRepository interface {
	Upsert(ctx context.Context, s MonthlySummary) error
	// Get returns ErrSummaryNotFound when nothing is stored.
	Get(ctx context.Context, employeeID string, month time.Time) (MonthlySummary, error)
}

type SuperSaveRepository interface {
	Upsert(ctx context.Context, rec SuperSaveRecord) (SuperSaveRecord, error)
	// Get returns ErrSuperSaveNotFound when the month was never super-saved.
	Get(ctx context.Context, employeeID string, month time.Time) (SuperSaveRecord, error)
}
