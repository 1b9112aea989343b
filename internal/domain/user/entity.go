package user

type Role string

const (
	RoleAdmin    Role = "admin"    // Decides approvals, edits salary structures
	RoleHR       Role = "hr"       // Marks attendance, submits months for approval
	RoleEmployee Role = "employee" // Read-only access to own records
)

// Actor is the authenticated user a request acts on behalf of. It is passed
// explicitly into every workflow call instead of being read from ambient state.
type Actor struct {
	ID   string
	Name string
	Role Role
}

// Can reports whether the actor's role grants permission.
func (a Actor) Can(permission Permission) bool {
	return HasPermission(a.Role, permission)
}

// Require returns ErrForbidden unless the actor's role grants permission.
func (a Actor) Require(permission Permission) error {
	if !a.Can(permission) {
		return ErrForbidden
	}
	return nil
}

// IsValidRole checks whether role is one of the known roles
func IsValidRole(role string) bool {
	switch Role(role) {
	case RoleAdmin, RoleHR, RoleEmployee:
		return true
	}
	return false
}
