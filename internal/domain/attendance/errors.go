package attendance

import "errors"

// Attendance domain errors
var (
	ErrRecordNotFound   = errors.New("attendance record not found")
	ErrInvalidStatus    = errors.New("invalid attendance status")
	ErrNegativeOvertime = errors.New("overtime hours must not be negative")
)
