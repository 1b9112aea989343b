package timesheet

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientMarkedDays = errors.New("not enough attendance days marked")
	ErrSummaryNotFound        = errors.New("timesheet summary not found")
	ErrSuperSaveNotFound      = errors.New("timesheet has not been super-saved")
)

// ShortfallError reports how many more days must be marked before the month can be submitted.
type ShortfallError struct {
	Marked   int
	Required int
}

func (e *ShortfallError) Error() string {
	return fmt.Sprintf("%d of %d required days marked, %d more needed", e.Marked, e.Required, e.Shortfall())
}

func (e *ShortfallError) Shortfall() int {
	if e.Required <= e.Marked {
		return 0
	}
	return e.Required - e.Marked
}

func (e *ShortfallError) Is(target error) bool {
	return target == ErrInsufficientMarkedDays
}
