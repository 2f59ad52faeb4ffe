package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/validator"
)

// MaxNotesLength caps the free-text note accepted at check-in.
const MaxNotesLength = 500

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	EmployeeID string  `json:"-"`
	Notes      *string `json:"notes,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Notes != nil {
		notes := strings.TrimSpace(*r.Notes)
		if notes == "" {
			r.Notes = nil
		} else if validator.ExceedsLength(notes, MaxNotesLength) {
			errs = append(errs, validator.ValidationError{
				Field:   "notes",
				Message: "notes must not exceed 500 characters",
			})
		} else {
			r.Notes = &notes
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	EmployeeID string `json:"-"`
}

func (r *CheckOutRequest) Validate() error {
	if validator.IsEmpty(r.EmployeeID) {
		return validator.ValidationErrors{{
			Field:   "employee_id",
			Message: "employee_id is required",
		}}
	}
	return nil
}

// AttendanceFilter selects one employee's sessions whose check-in falls
// inside [From, To]. Bounds are dates or ISO8601 timestamps.
type AttendanceFilter struct {
	EmployeeID string  `json:"employee_id"`
	From       *string `json:"from,omitempty"`
	To         *string `json:"to,omitempty"`
}

// Validate checks the filter, reading date-only bounds in loc.
func (f *AttendanceFilter) Validate(loc *time.Location) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	errs = validator.ValidateRange(f.From, f.To, loc, errs)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Range resolves the filter bounds, reading plain dates in loc.
// Call Validate first; unparsable bounds are treated as absent.
func (f AttendanceFilter) Range(loc *time.Location) (from, to *time.Time) {
	return ResolveRange(f.From, f.To, loc)
}

// ResolveRange turns optional string bounds into instants. A date-only to
// covers the whole day.
func ResolveRange(fromStr, toStr *string, loc *time.Location) (from, to *time.Time) {
	if fromStr != nil {
		if t, ok := validator.ParseBound(*fromStr, loc, false); ok {
			from = &t
		}
	}
	if toStr != nil {
		if t, ok := validator.ParseBound(*toStr, loc, true); ok {
			to = &t
		}
	}
	return from, to
}

type AttendanceResponse struct {
	ID              string   `json:"id"`
	EmployeeID      string   `json:"employee_id"`
	EmployeeName    string   `json:"employee_name,omitempty"`
	Date            string   `json:"date"`
	ClockInTime     string   `json:"clock_in_time"`
	ClockOutTime    *string  `json:"clock_out_time,omitempty"`
	WorkingHours    *float64 `json:"working_hours,omitempty"`
	WorkingDuration *string  `json:"working_duration,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
	Status          string   `json:"status"`
}

const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// NewAttendanceResponse renders a session with times in loc.
func NewAttendanceResponse(a Attendance, employeeName string, loc *time.Location) AttendanceResponse {
	resp := AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: employeeName,
		Date:         DateKey(a.Date),
		ClockInTime:  a.ClockIn.In(loc).Format(time.RFC3339),
		Notes:        a.Notes,
		Status:       StatusOpen,
	}

	if a.ClockOut != nil {
		out := a.ClockOut.In(loc).Format(time.RFC3339)
		resp.ClockOutTime = &out
		resp.Status = StatusClosed
	}

	if a.WorkDuration != nil {
		hours := RoundHours(*a.WorkDuration)
		dur := a.WorkDuration.String()
		resp.WorkingHours = &hours
		resp.WorkingDuration = &dur
	}

	return resp
}

// RoundHours expresses d in hours rounded to two decimals.
func RoundHours(d time.Duration) float64 {
	return float64(d.Round(36*time.Second)) / float64(time.Hour)
}

type CheckInStatusResponse struct {
	HasCheckedInToday    bool   `json:"has_checked_in_today"`
	HasOpenSession       bool   `json:"has_open_session"`
	IsValidCheckInWindow bool   `json:"is_valid_check_in_window"`
	CanCheckIn           bool   `json:"can_check_in"`
	CanCheckOut          bool   `json:"can_check_out"`
	CurrentTime          string `json:"current_time"`
	AllowedWindow        string `json:"allowed_window"`
}
