package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/database"
)

const employeeColumns = `
	id, name, department, designation, status, phone_number, email, ot_rate,
	monthly_salary, basic, hra, conveyance, special_allowance,
	additional_special_allowance, other_allowance, include_esi, include_pf,
	created_at, updated_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepositoryImpl{db: db}
}

// Create implements employee.Repository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (
			id, name, department, designation, status, phone_number, email, ot_rate,
			monthly_salary, basic, hra, conveyance, special_allowance,
			additional_special_allowance, other_allowance, include_esi, include_pf
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12, $13,
			$14, $15, $16, $17
		)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query, employeeArgs(emp)...))
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// GetByID implements employee.Repository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return e.get(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
}

// GetForUpdate implements employee.Repository.
func (e *employeeRepositoryImpl) GetForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	return e.get(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1 FOR UPDATE`, id)
}

func (e *employeeRepositoryImpl) get(ctx context.Context, query, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with id %s: %w", id, err)
	}
	return emp, nil
}

// Update implements employee.Repository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees SET
			name = $2, department = $3, designation = $4, status = $5,
			phone_number = $6, email = $7, ot_rate = $8,
			monthly_salary = $9, basic = $10, hra = $11, conveyance = $12,
			special_allowance = $13, additional_special_allowance = $14,
			other_allowance = $15, include_esi = $16, include_pf = $17,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + employeeColumns

	updated, err := scanEmployee(q.QueryRow(ctx, query, employeeArgs(emp)...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee with id %s: %w", emp.ID, err)
	}
	return updated, nil
}

// ListActive implements employee.Repository.
func (e *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE status = $1 ORDER BY id`

	rows, err := q.Query(ctx, query, employee.EmploymentStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func employeeArgs(emp employee.Employee) []interface{} {
	var otRate decimal.NullDecimal
	if emp.OTRate != nil {
		otRate = decimal.NewNullDecimal(*emp.OTRate)
	}
	s := emp.Salary
	return []interface{}{
		emp.ID, emp.Name, emp.Department, emp.Designation, emp.Status,
		emp.PhoneNumber, emp.Email, otRate,
		s.MonthlySalary, s.Basic, s.HRA, s.Conveyance, s.SpecialAllowance,
		s.AdditionalSpecialAllowance, s.OtherAllowance, s.IncludeESI, s.IncludePF,
	}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var (
		emp    employee.Employee
		otRate decimal.NullDecimal
	)
	err := row.Scan(
		&emp.ID, &emp.Name, &emp.Department, &emp.Designation, &emp.Status,
		&emp.PhoneNumber, &emp.Email, &otRate,
		&emp.Salary.MonthlySalary, &emp.Salary.Basic, &emp.Salary.HRA,
		&emp.Salary.Conveyance, &emp.Salary.SpecialAllowance,
		&emp.Salary.AdditionalSpecialAllowance, &emp.Salary.OtherAllowance,
		&emp.Salary.IncludeESI, &emp.Salary.IncludePF,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	if otRate.Valid {
		rate := otRate.Decimal
		emp.OTRate = &rate
	}
	return emp, nil
}
