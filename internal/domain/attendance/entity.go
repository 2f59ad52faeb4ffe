package attendance

import (
	"time"
)

// Attendance is one check-in/check-out session. It references its employee by
// id only; names are joined in from the directory when a response is built.
type Attendance struct {
	ID         string
	EmployeeID string
	// Date is the work day of ClockIn in the attendance time zone, at midnight.
	Date         time.Time
	ClockIn      time.Time
	ClockOut     *time.Time
	WorkDuration *time.Duration
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsOpen reports whether the session still waits for its check-out.
func (a Attendance) IsOpen() bool {
	return a.ClockOut == nil
}

// WorkDate returns the calendar day of t in t's location, at midnight.
func WorkDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateKey formats a work date the way storage keys it.
func DateKey(date time.Time) string {
	return date.Format("2006-01-02")
}

// Close returns a copy of a checked out at clockOut.
func (a Attendance) Close(clockOut time.Time) Attendance {
	d := clockOut.Sub(a.ClockIn)
	a.ClockOut = &clockOut
	a.WorkDuration = &d
	return a
}
