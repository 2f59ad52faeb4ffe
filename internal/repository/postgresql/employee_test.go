package postgresql

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/employee"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeRepository_IsActiveEmployee(t *testing.T) {
	mock, db := newMockDB(t)
	dir := NewEmployeeRepository(db)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("emp-1", employee.EmploymentStatusActive).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("ghost", employee.EmploymentStatusActive).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	active, err := dir.IsActiveEmployee(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.True(t, active)

	active, err = dir.IsActiveEmployee(context.Background(), "ghost")
	require.NoError(t, err)
	assert.False(t, active)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_DisplayName(t *testing.T) {
	mock, db := newMockDB(t)
	dir := NewEmployeeRepository(db)

	mock.ExpectQuery(`SELECT full_name`).
		WithArgs("emp-1").
		WillReturnRows(pgxmock.NewRows([]string{"full_name"}).AddRow("Budi Santoso"))
	mock.ExpectQuery(`SELECT full_name`).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	name, err := dir.DisplayName(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", name)

	_, err = dir.DisplayName(context.Background(), "ghost")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_ListActive(t *testing.T) {
	mock, db := newMockDB(t)
	dir := NewEmployeeRepository(db)

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{"id", "full_name", "employment_status", "created_at", "updated_at", "deleted_at"}).
		AddRow("emp-2", "Ani", employee.EmploymentStatusActive, now, now, (*time.Time)(nil)).
		AddRow("emp-1", "Budi", employee.EmploymentStatusActive, now, now, (*time.Time)(nil))

	mock.ExpectQuery(`FROM employees`).
		WithArgs(employee.EmploymentStatusActive).
		WillReturnRows(rows)

	list, err := dir.ListActive(context.Background())

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ani", list[0].FullName)
	assert.True(t, list[1].IsActive())
	assert.NoError(t, mock.ExpectationsWereMet())
}
