package payroll

import (
	"context"
	"time"
)

type EsiRepository interface {
	// UpsertComputed writes the computed fields of e. Existing override columns are left untouched.
	UpsertComputed(ctx context.Context, e EsiEntry) (EsiEntry, error)

	// GetForUpdate returns ErrEsiEntryNotFound when no entry exists.
	GetForUpdate(ctx context.Context, month time.Time, employeeID string) (EsiEntry, error)

	SetOverrides(ctx context.Context, month time.Time, employeeID string, included *bool, status PaymentStatus) (EsiEntry, error)
	ListByMonth(ctx context.Context, month time.Time) ([]EsiEntry, error)
}

// CreditRepository reads the externally maintained salary-credited flags.
type CreditRepository interface {
	ListCredited(ctx context.Context, month time.Time) (map[string]bool, error)
}
