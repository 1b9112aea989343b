package approval

import "errors"

var (
	ErrApprovalNotFound       = errors.New("approval not found")
	ErrApprovalAlreadyDecided = errors.New("approval has already been decided")
	ErrApprovalNotPending     = errors.New("approval is not pending")
	ErrInvalidDecision        = errors.New("decision must be accepted or declined")
)
