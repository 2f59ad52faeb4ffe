package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/clock"
)

type AttendanceServiceImpl struct {
	ledger    attendance.Ledger
	directory employee.Directory
	clock     clock.Clock
	window    attendance.CheckInWindow
	loc       *time.Location
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	name, err := a.activeEmployeeName(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	created, err := a.ledger.CheckIn(ctx, req.EmployeeID, req.Notes, a.clock.Now())
	if err != nil {
		if errors.Is(err, attendance.ErrOutsideCheckInWindow) {
			slog.Warn("Check-in rejected outside window", "employee_id", req.EmployeeID, "window", a.window.String())
		}
		return attendance.AttendanceResponse{}, err
	}

	return attendance.NewAttendanceResponse(created, name, a.loc), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	name, err := a.activeEmployeeName(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	closed, err := a.ledger.CheckOut(ctx, req.EmployeeID, a.clock.Now())
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.NewAttendanceResponse(closed, name, a.loc), nil
}

// CheckInStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckInStatus(ctx context.Context, employeeID string) (attendance.CheckInStatusResponse, error) {
	if employeeID == "" {
		return attendance.CheckInStatusResponse{}, attendance.ErrMissingIdentity
	}

	if _, err := a.activeEmployeeName(ctx, employeeID); err != nil {
		return attendance.CheckInStatusResponse{}, err
	}

	now := a.clock.Now().In(a.loc)

	checkedIn, err := a.ledger.HasCheckedInToday(ctx, employeeID, now)
	if err != nil {
		return attendance.CheckInStatusResponse{}, err
	}

	open, err := a.ledger.HasOpenSessionToday(ctx, employeeID, now)
	if err != nil {
		return attendance.CheckInStatusResponse{}, err
	}

	inWindow := a.window.Contains(now)

	return attendance.CheckInStatusResponse{
		HasCheckedInToday:    checkedIn,
		HasOpenSession:       open,
		IsValidCheckInWindow: inWindow,
		CanCheckIn:           inWindow && !checkedIn,
		CanCheckOut:          open,
		CurrentTime:          now.Format(time.RFC3339),
		AllowedWindow:        a.window.String(),
	}, nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(a.loc); err != nil {
		return nil, err
	}

	name, err := a.directory.DisplayName(ctx, filter.EmployeeID)
	if err != nil {
		return nil, directoryError(err)
	}

	from, to := filter.Range(a.loc)
	records, err := a.ledger.List(ctx, filter.EmployeeID, from, to)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.NewAttendanceResponse(r, name, a.loc))
	}

	return responses, nil
}

func (a *AttendanceServiceImpl) activeEmployeeName(ctx context.Context, employeeID string) (string, error) {
	active, err := a.directory.IsActiveEmployee(ctx, employeeID)
	if err != nil {
		return "", directoryError(err)
	}
	if !active {
		return "", employee.ErrEmployeeNotFound
	}

	name, err := a.directory.DisplayName(ctx, employeeID)
	if err != nil {
		return "", directoryError(err)
	}
	return name, nil
}

func directoryError(err error) error {
	if errors.Is(err, employee.ErrEmployeeNotFound) {
		return err
	}
	return fmt.Errorf("%w: employee directory: %w", attendance.ErrStorageUnavailable, err)
}

// NewAttendanceService wires the ledger to the directory and clock. A nil loc
// means time.Local.
func NewAttendanceService(
	ledger attendance.Ledger,
	directory employee.Directory,
	clk clock.Clock,
	window attendance.CheckInWindow,
	loc *time.Location,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.Local
	}
	return &AttendanceServiceImpl{
		ledger:    ledger,
		directory: directory,
		clock:     clk,
		window:    window,
		loc:       loc,
	}
}
