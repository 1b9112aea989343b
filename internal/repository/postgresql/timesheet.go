package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/timemath"
)

type summaryRepositoryImpl struct {
	db *database.DB
}

func NewSummaryRepository(db *database.DB) timesheet.SummaryRepository {
	return &summaryRepositoryImpl{db: db}
}

// Upsert implements timesheet.SummaryRepository.
func (r *summaryRepositoryImpl) Upsert(ctx context.Context, s timesheet.MonthlySummary) error {
	q := GetQuerier(ctx, r.db)

	unmarked := s.UnmarkedSundays
	if unmarked == nil {
		unmarked = []string{}
	}

	query := `
		INSERT INTO timesheet_summaries (
			employee_id, month, total_days, present_days, absent_days, leave_days,
			half_days, holiday_days, week_off_days, full_working_days,
			sundays_in_month, sunday_present_count, sunday_work_hours,
			total_work_hrs, total_ot_hrs, total_pending_hrs, marked_days_count,
			unmarked_sundays, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, NOW()
		)
		ON CONFLICT (employee_id, month) DO UPDATE SET
			total_days = EXCLUDED.total_days,
			present_days = EXCLUDED.present_days,
			absent_days = EXCLUDED.absent_days,
			leave_days = EXCLUDED.leave_days,
			half_days = EXCLUDED.half_days,
			holiday_days = EXCLUDED.holiday_days,
			week_off_days = EXCLUDED.week_off_days,
			full_working_days = EXCLUDED.full_working_days,
			sundays_in_month = EXCLUDED.sundays_in_month,
			sunday_present_count = EXCLUDED.sunday_present_count,
			sunday_work_hours = EXCLUDED.sunday_work_hours,
			total_work_hrs = EXCLUDED.total_work_hrs,
			total_ot_hrs = EXCLUDED.total_ot_hrs,
			total_pending_hrs = EXCLUDED.total_pending_hrs,
			marked_days_count = EXCLUDED.marked_days_count,
			unmarked_sundays = EXCLUDED.unmarked_sundays,
			updated_at = NOW()`

	_, err := q.Exec(ctx, query,
		s.EmployeeID, s.Month, s.TotalDays, s.PresentDays, s.AbsentDays, s.LeaveDays,
		s.HalfDays, s.HolidayDays, s.WeekOffDays, s.FullWorkingDays,
		s.SundaysInMonth, s.SundayPresentCount, s.SundayWorkHours,
		s.TotalWorkHrs, s.TotalOtHrs, s.TotalPendingHrs, s.MarkedDaysCount,
		unmarked,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert timesheet summary: %w", err)
	}
	return nil
}

// Get implements timesheet.SummaryRepository.
func (r *summaryRepositoryImpl) Get(ctx context.Context, employeeID string, month time.Time) (timesheet.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, month, total_days, present_days, absent_days, leave_days,
			half_days, holiday_days, week_off_days, full_working_days,
			sundays_in_month, sunday_present_count, sunday_work_hours,
			total_work_hrs, total_ot_hrs, total_pending_hrs, marked_days_count,
			unmarked_sundays, updated_at
		FROM timesheet_summaries
		WHERE employee_id = $1 AND month = $2`

	var s timesheet.MonthlySummary
	err := q.QueryRow(ctx, query, employeeID, timemath.MonthKey(month)).Scan(
		&s.EmployeeID, &s.Month, &s.TotalDays, &s.PresentDays, &s.AbsentDays, &s.LeaveDays,
		&s.HalfDays, &s.HolidayDays, &s.WeekOffDays, &s.FullWorkingDays,
		&s.SundaysInMonth, &s.SundayPresentCount, &s.SundayWorkHours,
		&s.TotalWorkHrs, &s.TotalOtHrs, &s.TotalPendingHrs, &s.MarkedDaysCount,
		&s.UnmarkedSundays, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.MonthlySummary{}, timesheet.ErrSummaryNotFound
		}
		return timesheet.MonthlySummary{}, fmt.Errorf("failed to get timesheet summary: %w", err)
	}
	return s, nil
}

type superSaveRepositoryImpl struct {
	db *database.DB
}

func NewSuperSaveRepository(db *database.DB) timesheet.SuperSaveRepository {
	return &superSaveRepositoryImpl{db: db}
}

// Upsert implements timesheet.SuperSaveRepository.
func (r *superSaveRepositoryImpl) Upsert(ctx context.Context, rec timesheet.SuperSaveRecord) (timesheet.SuperSaveRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO timesheet_supersaves (
			employee_id, month, marked_days, full_working_days,
			total_ot_hrs, total_pending_hrs, saved_by, saved_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (employee_id, month) DO UPDATE SET
			marked_days = EXCLUDED.marked_days,
			full_working_days = EXCLUDED.full_working_days,
			total_ot_hrs = EXCLUDED.total_ot_hrs,
			total_pending_hrs = EXCLUDED.total_pending_hrs,
			saved_by = EXCLUDED.saved_by,
			saved_at = EXCLUDED.saved_at
		RETURNING employee_id, month, marked_days, full_working_days,
			total_ot_hrs, total_pending_hrs, saved_by, saved_at`

	saved, err := scanSuperSave(q.QueryRow(ctx, query,
		rec.EmployeeID, rec.Month, rec.MarkedDays, rec.FullWorkingDays,
		rec.TotalOtHrs, rec.TotalPendingHrs, rec.SavedBy, rec.SavedAt,
	))
	if err != nil {
		return timesheet.SuperSaveRecord{}, fmt.Errorf("failed to upsert super-save: %w", err)
	}
	return saved, nil
}

// Get implements timesheet.SuperSaveRepository.
func (r *superSaveRepositoryImpl) Get(ctx context.Context, employeeID string, month time.Time) (timesheet.SuperSaveRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, month, marked_days, full_working_days,
			total_ot_hrs, total_pending_hrs, saved_by, saved_at
		FROM timesheet_supersaves
		WHERE employee_id = $1 AND month = $2`

	rec, err := scanSuperSave(q.QueryRow(ctx, query, employeeID, timemath.MonthKey(month)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.SuperSaveRecord{}, timesheet.ErrSuperSaveNotFound
		}
		return timesheet.SuperSaveRecord{}, fmt.Errorf("failed to get super-save: %w", err)
	}
	return rec, nil
}

func scanSuperSave(row pgx.Row) (timesheet.SuperSaveRecord, error) {
	var rec timesheet.SuperSaveRecord
	err := row.Scan(
		&rec.EmployeeID, &rec.Month, &rec.MarkedDays, &rec.FullWorkingDays,
		&rec.TotalOtHrs, &rec.TotalPendingHrs, &rec.SavedBy, &rec.SavedAt,
	)
	return rec, err
}
