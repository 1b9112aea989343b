package revision

import "context"

type Service interface {
	ListRevisions(ctx context.Context, employeeID string) ([]SalaryRevisionResponse, error)
}
