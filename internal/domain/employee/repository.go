package employee

import "context"

type Repository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)

	// GetByID returns ErrEmployeeNotFound when the employee does not exist.
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetForUpdate locks the row for the surrounding transaction.
	GetForUpdate(ctx context.Context, id string) (Employee, error)

	Update(ctx context.Context, emp Employee) (Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
}
