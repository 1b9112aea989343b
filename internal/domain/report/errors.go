package report

import "errors"

var (
	ErrNoDataFound            = errors.New("no active employees for the requested month")
	ErrReportGenerationFailed = errors.New("failed to generate export file")
)
