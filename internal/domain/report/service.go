package report

import "context"

// Service builds read-only spreadsheet projections of the derived data
type Service interface {
	// ExportTimesheet produces one row per employee-day for every active employee
	ExportTimesheet(ctx context.Context, req ExportRequest) (File, error)

	// ExportEsiRegister produces one row per employee-month of the ESI register
	ExportEsiRegister(ctx context.Context, req ExportRequest) (File, error)
}
