package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/lock"
	"github.com/google/uuid"
)

// LedgerImpl serialises writes per employee with a Locker and runs each
// check-then-act inside one storage transaction. The storage layer's
// (employee, date) uniqueness backs both.
type LedgerImpl struct {
	repo   attendance.AttendanceRepository
	tx     attendance.Transactor
	locker lock.Locker
	window attendance.CheckInWindow
	loc    *time.Location
}

// HasOpenSessionToday implements attendance.Ledger.
func (l *LedgerImpl) HasOpenSessionToday(ctx context.Context, employeeID string, now time.Time) (bool, error) {
	now = l.normalize(now)

	_, err := l.repo.GetOpenSession(ctx, employeeID, attendance.WorkDate(now))
	if err != nil {
		if errors.Is(err, attendance.ErrNoOpenSessionFound) {
			return false, nil
		}
		return false, storageError("get open session", err)
	}
	return true, nil
}

// HasCheckedInToday implements attendance.Ledger.
func (l *LedgerImpl) HasCheckedInToday(ctx context.Context, employeeID string, now time.Time) (bool, error) {
	now = l.normalize(now)

	exists, err := l.repo.ExistsByEmployeeAndDate(ctx, employeeID, attendance.WorkDate(now))
	if err != nil {
		return false, storageError("check today's attendance", err)
	}
	return exists, nil
}

// CheckIn implements attendance.Ledger.
func (l *LedgerImpl) CheckIn(ctx context.Context, employeeID string, notes *string, now time.Time) (attendance.Attendance, error) {
	now = l.normalize(now)
	date := attendance.WorkDate(now)

	var created attendance.Attendance
	err := l.exclusive(ctx, employeeID, "check in", func(ctx context.Context) error {
		exists, err := l.repo.ExistsByEmployeeAndDate(ctx, employeeID, date)
		if err != nil {
			return err
		}
		if exists {
			return attendance.ErrAlreadyCheckedInToday
		}

		if !l.window.Contains(now) {
			return attendance.ErrOutsideCheckInWindow
		}

		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate attendance id: %w", err)
		}

		created, err = l.repo.Create(ctx, attendance.Attendance{
			ID:         id.String(),
			EmployeeID: employeeID,
			Date:       date,
			ClockIn:    now,
			Notes:      notes,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		return err
	})
	if err != nil {
		return attendance.Attendance{}, err
	}

	slog.Info("Employee checked in", "employee_id", employeeID, "attendance_id", created.ID, "clock_in", now)
	return created, nil
}

// CheckOut implements attendance.Ledger.
func (l *LedgerImpl) CheckOut(ctx context.Context, employeeID string, now time.Time) (attendance.Attendance, error) {
	now = l.normalize(now)

	var closed attendance.Attendance
	err := l.exclusive(ctx, employeeID, "check out", func(ctx context.Context) error {
		open, err := l.repo.LockOpenSession(ctx, employeeID, attendance.WorkDate(now))
		if err != nil {
			return err
		}

		if now.Before(open.ClockIn) {
			return attendance.ErrCheckOutBeforeCheckIn
		}

		closed, err = l.repo.CloseSession(ctx, open.ID, now, now.Sub(open.ClockIn))
		return err
	})
	if err != nil {
		return attendance.Attendance{}, err
	}

	slog.Info("Employee checked out", "employee_id", employeeID, "attendance_id", closed.ID, "work_duration", *closed.WorkDuration)
	return closed, nil
}

// List implements attendance.Ledger.
func (l *LedgerImpl) List(ctx context.Context, employeeID string, from, to *time.Time) ([]attendance.Attendance, error) {
	attendances, err := l.repo.ListByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, storageError("list attendance", err)
	}
	return attendances, nil
}

// exclusive runs fn holding the employee's lock and inside one transaction.
func (l *LedgerImpl) exclusive(ctx context.Context, employeeID, op string, fn func(ctx context.Context) error) error {
	unlock, err := l.locker.Lock(ctx, lockKey(employeeID))
	if err != nil {
		return storageError(op+": acquire lock", err)
	}
	defer unlock()

	if err := l.tx.WithinTransaction(ctx, fn); err != nil {
		if isDomainError(err) {
			return err
		}
		return storageError(op, err)
	}
	return nil
}

// normalize moves now into the attendance time zone and drops precision the
// storage layer cannot keep.
func (l *LedgerImpl) normalize(now time.Time) time.Time {
	return now.In(l.loc).Truncate(time.Microsecond)
}

func lockKey(employeeID string) string {
	return "attendance:" + employeeID
}

func isDomainError(err error) bool {
	return errors.Is(err, attendance.ErrAlreadyCheckedInToday) ||
		errors.Is(err, attendance.ErrOutsideCheckInWindow) ||
		errors.Is(err, attendance.ErrNoOpenSessionFound) ||
		errors.Is(err, attendance.ErrCheckOutBeforeCheckIn) ||
		errors.Is(err, employee.ErrEmployeeNotFound)
}

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", attendance.ErrStorageUnavailable, op, err)
}

// NewLedger builds a Ledger. A nil loc means time.Local.
func NewLedger(
	repo attendance.AttendanceRepository,
	tx attendance.Transactor,
	locker lock.Locker,
	window attendance.CheckInWindow,
	loc *time.Location,
) *LedgerImpl {
	if loc == nil {
		loc = time.Local
	}
	return &LedgerImpl{
		repo:   repo,
		tx:     tx,
		locker: locker,
		window: window,
		loc:    loc,
	}
}
