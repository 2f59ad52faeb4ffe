package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedInToday = errors.New("you have already checked in today")
	ErrOutsideCheckInWindow  = errors.New("check-in is only allowed inside the check-in window")

	// Check-out errors
	ErrNoOpenSessionFound    = errors.New("no active check-in found for today")
	ErrCheckOutBeforeCheckIn = errors.New("check-out time is before check-in time")

	// General errors
	ErrMissingIdentity    = errors.New("employee id not found in token")
	ErrStorageUnavailable = errors.New("attendance storage is unavailable")
	ErrInvalidWindow      = errors.New("invalid check-in window")
)
