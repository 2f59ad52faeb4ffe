package response

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Identity errors
	case errors.Is(err, attendance.ErrMissingIdentity):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAdminAccessRequired), errors.Is(err, auth.ErrEmployeeAccessRequired):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		Fail(w, http.StatusNotFound, "EMPLOYEE_NOT_FOUND", "Employee not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrOutsideCheckInWindow):
		Fail(w, http.StatusUnprocessableEntity, "OUTSIDE_CHECK_IN_WINDOW", err.Error())
	case errors.Is(err, attendance.ErrAlreadyCheckedInToday):
		Fail(w, http.StatusConflict, "ALREADY_CHECKED_IN_TODAY", err.Error())
	case errors.Is(err, attendance.ErrNoOpenSessionFound):
		Fail(w, http.StatusConflict, "NO_OPEN_SESSION", err.Error())
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		Fail(w, http.StatusConflict, "CHECK_OUT_BEFORE_CHECK_IN", err.Error())

	// Infrastructure errors; the cause stays in the logs
	case errors.Is(err, attendance.ErrStorageUnavailable):
		slog.Error("Attendance storage unavailable", "error", err)
		ServiceUnavailable(w, "Attendance storage is temporarily unavailable, please retry")
	case errors.Is(err, context.DeadlineExceeded):
		slog.Warn("Request timed out", "error", err)
		ServiceUnavailable(w, "Request timed out, please retry")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
