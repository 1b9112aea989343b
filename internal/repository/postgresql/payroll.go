package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/timemath"
)

const esiColumns = `
	employee_id, employee_name, department, month, monthly_salary,
	master_esi_flag, eligible, esi_included, total_gross_earnings,
	contribution, payment_status, salary_credited, updated_at`

type esiRepositoryImpl struct {
	db *database.DB
}

func NewEsiRepository(db *database.DB) payroll.EsiRepository {
	return &esiRepositoryImpl{db: db}
}

// UpsertComputed implements payroll.EsiRepository. esi_included and payment_status
// are only written when the row is first inserted.
func (r *esiRepositoryImpl) UpsertComputed(ctx context.Context, e payroll.EsiEntry) (payroll.EsiEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO esi_entries (
			month, employee_id, employee_name, department, monthly_salary,
			master_esi_flag, eligible, total_gross_earnings, contribution,
			payment_status, salary_credited, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (month, employee_id) DO UPDATE SET
			employee_name = EXCLUDED.employee_name,
			department = EXCLUDED.department,
			monthly_salary = EXCLUDED.monthly_salary,
			master_esi_flag = EXCLUDED.master_esi_flag,
			eligible = EXCLUDED.eligible,
			total_gross_earnings = EXCLUDED.total_gross_earnings,
			contribution = EXCLUDED.contribution,
			salary_credited = EXCLUDED.salary_credited,
			updated_at = NOW()
		RETURNING ` + esiColumns

	status := e.PaymentStatus
	if status == "" {
		status = payroll.PaymentStatusPending
	}

	saved, err := scanEsiEntry(q.QueryRow(ctx, query,
		e.Month, e.EmployeeID, e.EmployeeName, e.Department, e.MonthlySalary,
		e.MasterEsiFlag, e.Eligible, e.TotalGrossEarnings, e.Contribution,
		status, e.SalaryCredited,
	))
	if err != nil {
		return payroll.EsiEntry{}, fmt.Errorf("failed to upsert esi entry: %w", err)
	}
	return saved, nil
}

// GetForUpdate implements payroll.EsiRepository.
func (r *esiRepositoryImpl) GetForUpdate(ctx context.Context, month time.Time, employeeID string) (payroll.EsiEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + esiColumns + ` FROM esi_entries WHERE month = $1 AND employee_id = $2 FOR UPDATE`

	e, err := scanEsiEntry(q.QueryRow(ctx, query, timemath.MonthKey(month), employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.EsiEntry{}, payroll.ErrEsiEntryNotFound
		}
		return payroll.EsiEntry{}, fmt.Errorf("failed to get esi entry: %w", err)
	}
	return e, nil
}

// SetOverrides implements payroll.EsiRepository.
func (r *esiRepositoryImpl) SetOverrides(ctx context.Context, month time.Time, employeeID string, included *bool, status payroll.PaymentStatus) (payroll.EsiEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE esi_entries
		SET esi_included = $3, payment_status = $4, updated_at = NOW()
		WHERE month = $1 AND employee_id = $2
		RETURNING ` + esiColumns

	e, err := scanEsiEntry(q.QueryRow(ctx, query, timemath.MonthKey(month), employeeID, included, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.EsiEntry{}, payroll.ErrEsiEntryNotFound
		}
		return payroll.EsiEntry{}, fmt.Errorf("failed to update esi overrides: %w", err)
	}
	return e, nil
}

// ListByMonth implements payroll.EsiRepository.
func (r *esiRepositoryImpl) ListByMonth(ctx context.Context, month time.Time) ([]payroll.EsiEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + esiColumns + ` FROM esi_entries WHERE month = $1 ORDER BY employee_id`

	rows, err := q.Query(ctx, query, timemath.MonthKey(month))
	if err != nil {
		return nil, fmt.Errorf("failed to list esi entries: %w", err)
	}
	defer rows.Close()

	var entries []payroll.EsiEntry
	for rows.Next() {
		e, err := scanEsiEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan esi entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func scanEsiEntry(row pgx.Row) (payroll.EsiEntry, error) {
	var e payroll.EsiEntry
	err := row.Scan(
		&e.EmployeeID, &e.EmployeeName, &e.Department, &e.Month, &e.MonthlySalary,
		&e.MasterEsiFlag, &e.Eligible, &e.IncludedOverride, &e.TotalGrossEarnings,
		&e.Contribution, &e.PaymentStatus, &e.SalaryCredited, &e.UpdatedAt,
	)
	return e, err
}

type creditRepositoryImpl struct {
	db *database.DB
}

func NewCreditRepository(db *database.DB) payroll.CreditRepository {
	return &creditRepositoryImpl{db: db}
}

// ListCredited implements payroll.CreditRepository.
func (r *creditRepositoryImpl) ListCredited(ctx context.Context, month time.Time) (map[string]bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT employee_id, credited FROM payroll_credited WHERE month = $1`

	rows, err := q.Query(ctx, query, timemath.MonthKey(month))
	if err != nil {
		return nil, fmt.Errorf("failed to list salary credited flags: %w", err)
	}
	defer rows.Close()

	credited := make(map[string]bool)
	for rows.Next() {
		var (
			employeeID string
			flag       bool
		)
		if err := rows.Scan(&employeeID, &flag); err != nil {
			return nil, err
		}
		credited[employeeID] = flag
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return credited, nil
}
