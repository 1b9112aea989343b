package payroll

import (
	"context"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/user"
)

// RegisterService manages the monthly ESI register
type RegisterService interface {
	// RecomputeRegister recomputes every active employee's entry for month
	RecomputeRegister(ctx context.Context, month string) (EsiRegisterResponse, error)

	GetRegister(ctx context.Context, month string) (EsiRegisterResponse, error)

	// UpdateEntry applies the HR overrides (included, payment status) to one entry
	UpdateEntry(ctx context.Context, actor user.Actor, req UpdateEsiEntryRequest) (EsiEntryResponse, error)
}
