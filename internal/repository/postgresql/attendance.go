package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/timemath"
)

const attendanceColumns = `
	employee_id, date, status, shift_type,
	check_in, lunch_in, lunch_out, check_out,
	work_hrs, ot_hrs, pending_hrs, actual_work_hrs,
	updated_by, created_at, updated_at`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

// Upsert implements attendance.Repository. The record is written in one statement
// keyed by (employee_id, date); created_at of an existing row survives.
func (a *attendanceRepository) Upsert(ctx context.Context, rec attendance.DailyRecord) (attendance.DailyRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO daily_attendance (
			employee_id, date, status, shift_type,
			check_in, lunch_in, lunch_out, check_out,
			work_hrs, ot_hrs, pending_hrs, actual_work_hrs, updated_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			status = EXCLUDED.status,
			shift_type = EXCLUDED.shift_type,
			check_in = EXCLUDED.check_in,
			lunch_in = EXCLUDED.lunch_in,
			lunch_out = EXCLUDED.lunch_out,
			check_out = EXCLUDED.check_out,
			work_hrs = EXCLUDED.work_hrs,
			ot_hrs = EXCLUDED.ot_hrs,
			pending_hrs = EXCLUDED.pending_hrs,
			actual_work_hrs = EXCLUDED.actual_work_hrs,
			updated_by = EXCLUDED.updated_by,
			updated_at = NOW()
		RETURNING ` + attendanceColumns

	row := q.QueryRow(ctx, query,
		rec.EmployeeID, rec.Date, rec.Status, rec.ShiftType,
		rec.CheckIn, rec.LunchIn, rec.LunchOut, rec.CheckOut,
		rec.WorkHrs, rec.OtHrs, rec.PendingHrs, rec.ActualWorkHrs, rec.UpdatedBy,
	)
	saved, err := scanDailyRecord(row)
	if err != nil {
		return attendance.DailyRecord{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}
	return saved, nil
}

// Get implements attendance.Repository.
func (a *attendanceRepository) Get(ctx context.Context, employeeID string, date time.Time) (attendance.DailyRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM daily_attendance WHERE employee_id = $1 AND date = $2`

	rec, err := scanDailyRecord(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.DailyRecord{}, attendance.ErrRecordNotFound
		}
		return attendance.DailyRecord{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return rec, nil
}

// ListByDate implements attendance.Repository.
func (a *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.DailyRecord, error) {
	query := `SELECT ` + attendanceColumns + ` FROM daily_attendance WHERE date = $1 ORDER BY employee_id`
	return a.list(ctx, query, date)
}

// ListByEmployeeMonth implements attendance.Repository.
func (a *attendanceRepository) ListByEmployeeMonth(ctx context.Context, employeeID string, month time.Time) ([]attendance.DailyRecord, error) {
	start := timemath.MonthStart(month)
	query := `
		SELECT ` + attendanceColumns + `
		FROM daily_attendance
		WHERE employee_id = $1 AND date >= $2 AND date < $3
		ORDER BY date`
	return a.list(ctx, query, employeeID, start, start.AddDate(0, 1, 0))
}

// ListByMonth implements attendance.Repository.
func (a *attendanceRepository) ListByMonth(ctx context.Context, month time.Time) ([]attendance.DailyRecord, error) {
	start := timemath.MonthStart(month)
	query := `
		SELECT ` + attendanceColumns + `
		FROM daily_attendance
		WHERE date >= $1 AND date < $2
		ORDER BY employee_id, date`
	return a.list(ctx, query, start, start.AddDate(0, 1, 0))
}

func (a *attendanceRepository) list(ctx context.Context, query string, args ...interface{}) ([]attendance.DailyRecord, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.DailyRecord
	for rows.Next() {
		rec, err := scanDailyRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func scanDailyRecord(row pgx.Row) (attendance.DailyRecord, error) {
	var rec attendance.DailyRecord
	err := row.Scan(
		&rec.EmployeeID, &rec.Date, &rec.Status, &rec.ShiftType,
		&rec.CheckIn, &rec.LunchIn, &rec.LunchOut, &rec.CheckOut,
		&rec.WorkHrs, &rec.OtHrs, &rec.PendingHrs, &rec.ActualWorkHrs,
		&rec.UpdatedBy, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return attendance.DailyRecord{}, err
	}
	rec.Date = rec.Date.UTC()
	return rec, nil
}
