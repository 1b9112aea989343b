package user

import "errors"

var (
	ErrForbidden      = errors.New("forbidden: role is not allowed to perform this action")
	ErrInvalidActor   = errors.New("actor is missing or invalid")
	ErrAdminRequired  = errors.New("admin privilege required")
	ErrHRRoleRequired = errors.New("hr role required")
)
