package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// Implementations return ErrAlreadyCheckedInToday when a second record is
// created for the same employee and work date, and ErrNoOpenSessionFound when
// an open session lookup or close finds nothing.
type AttendanceRepository interface {
	// Create inserts a new attendance record
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// ExistsByEmployeeAndDate reports whether any record, open or closed,
	// exists for the employee on the work date
	ExistsByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (bool, error)

	// GetOpenSession returns the employee's record on the work date that has
	// no check-out yet, without locking it
	GetOpenSession(ctx context.Context, employeeID string, date time.Time) (Attendance, error)

	// LockOpenSession is GetOpenSession for an update: the record stays locked
	// until the surrounding transaction ends
	LockOpenSession(ctx context.Context, employeeID string, date time.Time) (Attendance, error)

	// CloseSession sets check-out and duration on a still-open record
	CloseSession(ctx context.Context, id string, clockOut time.Time, workDuration time.Duration) (Attendance, error)

	// ListByEmployee returns records whose check-in lies in [from, to],
	// newest check-in first. Nil bounds are open.
	ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]Attendance, error)
}

// Transactor runs fn as one unit of storage work. Repositories called with
// the ctx passed to fn take part in the same transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
