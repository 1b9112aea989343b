package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/approval"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/timemath"
)

const approvalColumns = `
	id, employee_id, month, status, snapshot, submitted_by,
	decided_by, decided_at, created_at, updated_at`

type approvalRepositoryImpl struct {
	db *database.DB
}

func NewApprovalRepository(db *database.DB) approval.Repository {
	return &approvalRepositoryImpl{db: db}
}

// Get implements approval.Repository.
func (r *approvalRepositoryImpl) Get(ctx context.Context, employeeID string, month time.Time) (approval.Approval, error) {
	query := `SELECT ` + approvalColumns + ` FROM attendance_approvals WHERE employee_id = $1 AND month = $2`
	return r.get(ctx, query, employeeID, month)
}

// GetForUpdate implements approval.Repository.
func (r *approvalRepositoryImpl) GetForUpdate(ctx context.Context, employeeID string, month time.Time) (approval.Approval, error) {
	query := `SELECT ` + approvalColumns + ` FROM attendance_approvals WHERE employee_id = $1 AND month = $2 FOR UPDATE`
	return r.get(ctx, query, employeeID, month)
}

func (r *approvalRepositoryImpl) get(ctx context.Context, query, employeeID string, month time.Time) (approval.Approval, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanApproval(q.QueryRow(ctx, query, employeeID, timemath.MonthKey(month)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return approval.Approval{}, approval.ErrApprovalNotFound
		}
		return approval.Approval{}, fmt.Errorf("failed to get approval: %w", err)
	}
	return a, nil
}

// Save implements approval.Repository.
func (r *approvalRepositoryImpl) Save(ctx context.Context, a approval.Approval) (approval.Approval, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_approvals (
			id, employee_id, month, status, snapshot, submitted_by,
			decided_by, decided_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (employee_id, month) DO UPDATE SET
			status = EXCLUDED.status,
			snapshot = EXCLUDED.snapshot,
			submitted_by = EXCLUDED.submitted_by,
			decided_by = EXCLUDED.decided_by,
			decided_at = EXCLUDED.decided_at,
			updated_at = EXCLUDED.updated_at
		WHERE attendance_approvals.status = 'pending'
		RETURNING ` + approvalColumns

	saved, err := scanApproval(q.QueryRow(ctx, query,
		a.ID, a.EmployeeID, a.Month, a.Status, a.Snapshot, a.SubmittedBy,
		a.DecidedBy, a.DecidedAt, a.CreatedAt, a.UpdatedAt,
	))
	if err != nil {
		// A conflicting row that is no longer pending is left untouched.
		if errors.Is(err, pgx.ErrNoRows) {
			return approval.Approval{}, approval.ErrApprovalAlreadyDecided
		}
		return approval.Approval{}, fmt.Errorf("failed to save approval: %w", err)
	}
	return saved, nil
}

// ListByMonth implements approval.Repository.
func (r *approvalRepositoryImpl) ListByMonth(ctx context.Context, month time.Time) ([]approval.Approval, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + approvalColumns + ` FROM attendance_approvals WHERE month = $1 ORDER BY employee_id`

	rows, err := q.Query(ctx, query, timemath.MonthKey(month))
	if err != nil {
		return nil, fmt.Errorf("failed to list approvals: %w", err)
	}
	defer rows.Close()

	var approvals []approval.Approval
	for rows.Next() {
		a, err := scanApproval(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval: %w", err)
		}
		approvals = append(approvals, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return approvals, nil
}

func scanApproval(row pgx.Row) (approval.Approval, error) {
	var a approval.Approval
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.Month, &a.Status, &a.Snapshot, &a.SubmittedBy,
		&a.DecidedBy, &a.DecidedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}
