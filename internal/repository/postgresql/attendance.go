package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"

	attendanceEmployeeDateKey = "attendances_employee_date_key"
)

const attendanceColumns = `id, employee_id, work_date, clock_in, clock_out, work_duration_us, notes, created_at, updated_at`

type attendanceRepository struct {
	db *database.DB
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (id, employee_id, work_date, clock_in, notes, created_at, updated_at)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7)
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		newAttendance.ID,
		newAttendance.EmployeeID,
		attendance.DateKey(newAttendance.Date),
		newAttendance.ClockIn,
		newAttendance.Notes,
		newAttendance.CreatedAt,
		newAttendance.UpdatedAt,
	))
	if err != nil {
		return attendance.Attendance{}, translatePgError(err, "failed to create attendance")
	}

	return created, nil
}

// ExistsByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ExistsByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM attendances
			WHERE employee_id = $1
			  AND work_date = $2::date
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, attendance.DateKey(date)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check attendance existence: %w", err)
	}

	return exists, nil
}

// GetOpenSession implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetOpenSession(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	return a.openSession(ctx, employeeID, date, "")
}

// LockOpenSession implements attendance.AttendanceRepository.
func (a *attendanceRepository) LockOpenSession(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	return a.openSession(ctx, employeeID, date, "FOR UPDATE")
}

func (a *attendanceRepository) openSession(ctx context.Context, employeeID string, date time.Time, lockClause string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1
		  AND work_date = $2::date
		  AND clock_out IS NULL ` + lockClause

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, attendance.DateKey(date)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrNoOpenSessionFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get open session: %w", err)
	}

	return att, nil
}

// CloseSession implements attendance.AttendanceRepository.
func (a *attendanceRepository) CloseSession(ctx context.Context, id string, clockOut time.Time, workDuration time.Duration) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET clock_out = $2,
			work_duration_us = $3,
			updated_at = $2
		WHERE id = $1
		  AND clock_out IS NULL
		RETURNING ` + attendanceColumns

	att, err := scanAttendance(q.QueryRow(ctx, query, id, clockOut, workDuration.Microseconds()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrNoOpenSessionFound
		}
		return attendance.Attendance{}, translatePgError(err, "failed to close attendance")
	}

	return att, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	whereClauses := []string{"employee_id = $1"}
	args := []interface{}{employeeID}
	argIdx := 2

	if from != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("clock_in >= $%d", argIdx))
		args = append(args, *from)
		argIdx++
	}
	if to != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("clock_in <= $%d", argIdx))
		args = append(args, *to)
	}

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE ` + strings.Join(whereClauses, " AND ") + `
		ORDER BY clock_in DESC, id DESC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	attendances := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return attendances, nil
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	var durationUS *int64

	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.ClockIn, &att.ClockOut,
		&durationUS, &att.Notes, &att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}

	if durationUS != nil {
		d := time.Duration(*durationUS) * time.Microsecond
		att.WorkDuration = &d
	}

	return att, nil
}

// translatePgError maps constraint violations to domain errors and wraps
// everything else with msg.
func translatePgError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			if pgErr.ConstraintName == "" || pgErr.ConstraintName == attendanceEmployeeDateKey {
				return attendance.ErrAlreadyCheckedInToday
			}
		case foreignKeyViolationCode:
			return employee.ErrEmployeeNotFound
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
