package revision

import "context"

type Repository interface {
	// Append adds rev to the employee's ledger.
	Append(ctx context.Context, rev SalaryRevision) (SalaryRevision, error)

	// ListByEmployee returns revisions oldest first.
	ListByEmployee(ctx context.Context, employeeID string) ([]SalaryRevision, error)
}
