package attendance

import (
	"context"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/user"
)

// Service defines business logic for daily attendance marking
type Service interface {
	// SaveDaily validates, derives hours and writes one employee-day (HR/Admin)
	SaveDaily(ctx context.Context, actor user.Actor, req SaveDailyRequest) (DailyRecordResponse, error)

	GetDaily(ctx context.Context, employeeID, date string) (DailyRecordResponse, error)
	ListByDate(ctx context.Context, date string) ([]DailyRecordResponse, error)
	ListByEmployeeMonth(ctx context.Context, employeeID, month string) ([]DailyRecordResponse, error)
}
