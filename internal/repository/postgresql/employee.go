package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Directory {
	return &employeeRepositoryImpl{db: db}
}

// IsActiveEmployee implements employee.Directory. Unknown ids are reported
// as inactive.
func (e *employeeRepositoryImpl) IsActiveEmployee(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM employees
			WHERE id = $1 AND employment_status = $2 AND deleted_at IS NULL
		)
	`

	var active bool
	if err := q.QueryRow(ctx, query, id, employee.EmploymentStatusActive).Scan(&active); err != nil {
		return false, fmt.Errorf("failed to check employee %s: %w", id, err)
	}

	return active, nil
}

// DisplayName implements employee.Directory.
func (e *employeeRepositoryImpl) DisplayName(ctx context.Context, id string) (string, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT full_name
		FROM employees
		WHERE id = $1 AND deleted_at IS NULL
	`

	var name string
	err := q.QueryRow(ctx, query, id).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", employee.ErrEmployeeNotFound
		}
		return "", fmt.Errorf("failed to get employee %s name: %w", id, err)
	}

	return name, nil
}

// ListActive implements employee.Directory.
func (e *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, full_name, employment_status, created_at, updated_at, deleted_at
		FROM employees
		WHERE employment_status = $1 AND deleted_at IS NULL
		ORDER BY full_name ASC, id ASC
	`

	rows, err := q.Query(ctx, query, employee.EmploymentStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		err := rows.Scan(
			&emp.ID, &emp.FullName, &emp.EmploymentStatus,
			&emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}
