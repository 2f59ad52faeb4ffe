package postgresql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/employee"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var attendanceRowColumns = []string{
	"id", "employee_id", "work_date", "clock_in", "clock_out",
	"work_duration_us", "notes", "created_at", "updated_at",
}

func openAttendanceRow(id string, clockIn time.Time) *pgxmock.Rows {
	return pgxmock.NewRows(attendanceRowColumns).AddRow(
		id, "emp-1", attendance.WorkDate(clockIn), clockIn, (*time.Time)(nil),
		(*int64)(nil), (*string)(nil), clockIn, clockIn,
	)
}

func TestAttendanceRepository_Create(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewAttendanceRepository(db)

	clockIn := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO attendances`).
		WithArgs("att-1", "emp-1", "2024-03-01", clockIn, pgxmock.AnyArg(), clockIn, clockIn).
		WillReturnRows(openAttendanceRow("att-1", clockIn))

	created, err := repo.Create(context.Background(), attendance.Attendance{
		ID:         "att-1",
		EmployeeID: "emp-1",
		Date:       attendance.WorkDate(clockIn),
		ClockIn:    clockIn,
		CreatedAt:  clockIn,
		UpdatedAt:  clockIn,
	})

	require.NoError(t, err)
	assert.Equal(t, "att-1", created.ID)
	assert.True(t, created.IsOpen())
	assert.Nil(t, created.WorkDuration)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_Create_UniqueViolation(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewAttendanceRepository(db)

	mock.ExpectQuery(`INSERT INTO attendances`).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: attendanceEmployeeDateKey})

	_, err := repo.Create(context.Background(), attendance.Attendance{ID: "att-2", EmployeeID: "emp-1"})

	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedInToday)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslatePgError(t *testing.T) {
	fkErr := &pgconn.PgError{Code: foreignKeyViolationCode}
	assert.ErrorIs(t, translatePgError(fkErr, "create"), employee.ErrEmployeeNotFound)

	otherUnique := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "attendances_pkey"}
	err := translatePgError(otherUnique, "create")
	assert.NotErrorIs(t, err, attendance.ErrAlreadyCheckedInToday)
	assert.ErrorIs(t, err, otherUnique)

	plain := errors.New("broken pipe")
	assert.ErrorIs(t, translatePgError(plain, "create"), plain)
}

func TestAttendanceRepository_ExistsByEmployeeAndDate(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewAttendanceRepository(db)

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("emp-1", "2024-03-01").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByEmployeeAndDate(context.Background(), "emp-1", day)

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_LockOpenSession_NotFound(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewAttendanceRepository(db)

	mock.ExpectQuery(`clock_out IS NULL FOR UPDATE`).
		WithArgs("emp-1", "2024-03-01").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.LockOpenSession(context.Background(), "emp-1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	assert.ErrorIs(t, err, attendance.ErrNoOpenSessionFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_GetOpenSession_DoesNotLock(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewAttendanceRepository(db)

	in := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	// The read ends at the open-session predicate, with no row lock.
	mock.ExpectQuery(`clock_out IS NULL\s*$`).
		WithArgs("emp-1", "2024-03-01").
		WillReturnRows(openAttendanceRow("att-1", in))

	open, err := repo.GetOpenSession(context.Background(), "emp-1", attendance.WorkDate(in))

	require.NoError(t, err)
	assert.Equal(t, "att-1", open.ID)
	assert.True(t, open.IsOpen())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_CloseSession(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewAttendanceRepository(db)

	clockIn := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	clockOut := clockIn.Add(9*time.Hour + 30*time.Minute)
	durationUS := (9*time.Hour + 30*time.Minute).Microseconds()

	rows := pgxmock.NewRows(attendanceRowColumns).AddRow(
		"att-1", "emp-1", attendance.WorkDate(clockIn), clockIn, &clockOut,
		&durationUS, (*string)(nil), clockIn, clockOut,
	)
	mock.ExpectQuery(`UPDATE attendances`).
		WithArgs("att-1", clockOut, durationUS).
		WillReturnRows(rows)

	closed, err := repo.CloseSession(context.Background(), "att-1", clockOut, 9*time.Hour+30*time.Minute)

	require.NoError(t, err)
	require.NotNil(t, closed.ClockOut)
	require.NotNil(t, closed.WorkDuration)
	assert.Equal(t, 9*time.Hour+30*time.Minute, *closed.WorkDuration)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_CloseSession_AlreadyClosed(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewAttendanceRepository(db)

	mock.ExpectQuery(`UPDATE attendances`).WillReturnError(pgx.ErrNoRows)

	_, err := repo.CloseSession(context.Background(), "att-1", time.Now(), time.Hour)

	assert.ErrorIs(t, err, attendance.ErrNoOpenSessionFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_ListByEmployee_WithRange(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewAttendanceRepository(db)

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)
	second := time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)
	first := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows(attendanceRowColumns).
		AddRow("att-2", "emp-1", attendance.WorkDate(second), second, (*time.Time)(nil), (*int64)(nil), (*string)(nil), second, second).
		AddRow("att-1", "emp-1", attendance.WorkDate(first), first, (*time.Time)(nil), (*int64)(nil), (*string)(nil), first, first)

	mock.ExpectQuery(`clock_in >= \$2 AND clock_in <= \$3\s+ORDER BY clock_in DESC`).
		WithArgs("emp-1", from, to).
		WillReturnRows(rows)

	list, err := repo.ListByEmployee(context.Background(), "emp-1", &from, &to)

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "att-2", list[0].ID)
	assert.Equal(t, "att-1", list[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_ListByEmployee_QueryError(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewAttendanceRepository(db)

	queryErr := errors.New("connection reset")
	mock.ExpectQuery(`FROM attendances`).WithArgs("emp-1").WillReturnError(queryErr)

	_, err := repo.ListByEmployee(context.Background(), "emp-1", nil, nil)

	assert.ErrorIs(t, err, queryErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
