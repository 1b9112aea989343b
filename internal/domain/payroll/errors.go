package payroll

import "errors"

var (
	ErrEsiEntryNotFound     = errors.New("esi entry not found")
	ErrPaidRequiresIncluded = errors.New("payment status can be Paid only while ESI is included")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)
