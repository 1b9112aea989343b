package shift

import "errors"

var (
	ErrUnknownShift     = errors.New("unknown shift type")
	ErrInvalidShiftHour = errors.New("shift hours must be within [0,24)")
)
