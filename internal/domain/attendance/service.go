package attendance

import (
	"context"
	"time"
)

// Ledger is the authoritative record of check-ins and check-outs. Every
// operation that depends on "today" takes the current instant from the caller;
// the day is the calendar date of now in the attendance time zone.
type Ledger interface {
	// HasOpenSessionToday reports whether the employee has checked in on the
	// day of now and not yet checked out
	HasOpenSessionToday(ctx context.Context, employeeID string, now time.Time) (bool, error)

	// HasCheckedInToday reports whether the employee has any record, open or
	// closed, on the day of now
	HasCheckedInToday(ctx context.Context, employeeID string, now time.Time) (bool, error)

	// CheckIn opens the day's session at now. It fails with
	// ErrAlreadyCheckedInToday when the day already has a record and with
	// ErrOutsideCheckInWindow when now is outside the window.
	CheckIn(ctx context.Context, employeeID string, notes *string, now time.Time) (Attendance, error)

	// CheckOut closes the day's open session at now or fails with
	// ErrNoOpenSessionFound
	CheckOut(ctx context.Context, employeeID string, now time.Time) (Attendance, error)

	// List returns the employee's sessions with check-in in [from, to],
	// newest first. Nil bounds are open.
	List(ctx context.Context, employeeID string, from, to *time.Time) ([]Attendance, error)
}

// AttendanceService is the entry point for the boundary layer. It verifies
// employees against the directory, reads the clock and delegates to the Ledger.
type AttendanceService interface {
	// CheckIn records the caller's check-in
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut records the check-out of today's open session
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// CheckInStatus reports what the employee can do right now
	CheckInStatus(ctx context.Context, employeeID string) (CheckInStatusResponse, error)

	// ListAttendance returns one employee's sessions in a range
	ListAttendance(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, error)
}
