package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/timemath"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.Repository {
	return &holidayRepositoryImpl{db: db}
}

// ListByMonth implements holiday.Repository.
func (h *holidayRepositoryImpl) ListByMonth(ctx context.Context, month time.Time) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	start := timemath.MonthStart(month)
	query := `
		SELECT id, date, name, departments, recurring
		FROM holidays
		WHERE (date >= $1 AND date < $2)
		   OR (recurring AND EXTRACT(MONTH FROM date) = $3)
		ORDER BY date, name`

	rows, err := q.Query(ctx, query, start, start.AddDate(0, 1, 0), int(start.Month()))
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var hol holiday.Holiday
		if err := rows.Scan(&hol.ID, &hol.Date, &hol.Name, &hol.Departments, &hol.Recurring); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, hol)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return holidays, nil
}
