package holiday

import (
	"context"
	"time"
)

// Repository reads the externally maintained holiday calendar.
type Repository interface {
	// ListByMonth returns holidays dated in month plus recurring holidays of that calendar month.
	ListByMonth(ctx context.Context, month time.Time) ([]Holiday, error)
}
