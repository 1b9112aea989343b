package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/revision"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/database"
)

const revisionColumns = `
	id, employee_id, employee_name, department, revision_date, effective_from,
	revised_by, revised_by_name, reason, changes, previous_total, new_total,
	increment_percentage, created_at`

type revisionRepositoryImpl struct {
	db *database.DB
}

func NewRevisionRepository(db *database.DB) revision.Repository {
	return &revisionRepositoryImpl{db: db}
}

// Append implements revision.Repository. Revisions are insert-only.
func (r *revisionRepositoryImpl) Append(ctx context.Context, rev revision.SalaryRevision) (revision.SalaryRevision, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_revisions (` + revisionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + revisionColumns

	saved, err := scanRevision(q.QueryRow(ctx, query,
		rev.ID, rev.EmployeeID, rev.EmployeeName, rev.Department, rev.RevisionDate, rev.EffectiveFrom,
		rev.RevisedBy, rev.RevisedByName, rev.Reason, rev.Changes, rev.PreviousTotal, rev.NewTotal,
		rev.IncrementPercentage, rev.CreatedAt,
	))
	if err != nil {
		return revision.SalaryRevision{}, fmt.Errorf("failed to append salary revision: %w", err)
	}
	return saved, nil
}

// ListByEmployee implements revision.Repository.
func (r *revisionRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]revision.SalaryRevision, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + revisionColumns + ` FROM salary_revisions WHERE employee_id = $1 ORDER BY created_at, id`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary revisions: %w", err)
	}
	defer rows.Close()

	var revisions []revision.SalaryRevision
	for rows.Next() {
		rev, err := scanRevision(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary revision: %w", err)
		}
		revisions = append(revisions, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return revisions, nil
}

func scanRevision(row pgx.Row) (revision.SalaryRevision, error) {
	var rev revision.SalaryRevision
	err := row.Scan(
		&rev.ID, &rev.EmployeeID, &rev.EmployeeName, &rev.Department, &rev.RevisionDate, &rev.EffectiveFrom,
		&rev.RevisedBy, &rev.RevisedByName, &rev.Reason, &rev.Changes, &rev.PreviousTotal, &rev.NewTotal,
		&rev.IncrementPercentage, &rev.CreatedAt,
	)
	return rev, err
}
