// Package memory holds process-local repositories that back the service and
// HTTP tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
)

type dayKey struct {
	employeeID string
	date       string
}

type attendanceRepository struct {
	mu    sync.RWMutex
	byID  map[string]attendance.Attendance
	byDay map[dayKey]string
}

func NewAttendanceRepository() attendance.AttendanceRepository {
	return &attendanceRepository{
		byID:  make(map[string]attendance.Attendance),
		byDay: make(map[dayKey]string),
	}
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	if err := ctx.Err(); err != nil {
		return attendance.Attendance{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := dayKey{employeeID: att.EmployeeID, date: attendance.DateKey(att.Date)}
	if _, ok := r.byDay[key]; ok {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedInToday
	}

	r.byID[att.ID] = att
	r.byDay[key] = att.ID
	return att, nil
}

// ExistsByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) ExistsByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byDay[dayKey{employeeID: employeeID, date: attendance.DateKey(date)}]
	return ok, nil
}

// GetOpenSession implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetOpenSession(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	if err := ctx.Err(); err != nil {
		return attendance.Attendance{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byDay[dayKey{employeeID: employeeID, date: attendance.DateKey(date)}]
	if !ok {
		return attendance.Attendance{}, attendance.ErrNoOpenSessionFound
	}
	att := r.byID[id]
	if !att.IsOpen() {
		return attendance.Attendance{}, attendance.ErrNoOpenSessionFound
	}
	return att, nil
}

// LockOpenSession implements attendance.AttendanceRepository. Callers
// serialise through the ledger's lock, so this is a plain read.
func (r *attendanceRepository) LockOpenSession(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	return r.GetOpenSession(ctx, employeeID, date)
}

// CloseSession implements attendance.AttendanceRepository.
func (r *attendanceRepository) CloseSession(ctx context.Context, id string, clockOut time.Time, workDuration time.Duration) (attendance.Attendance, error) {
	if err := ctx.Err(); err != nil {
		return attendance.Attendance{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	att, ok := r.byID[id]
	if !ok || !att.IsOpen() {
		return attendance.Attendance{}, attendance.ErrNoOpenSessionFound
	}

	att.ClockOut = &clockOut
	att.WorkDuration = &workDuration
	att.UpdatedAt = clockOut
	r.byID[id] = att
	return att, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]attendance.Attendance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	attendances := make([]attendance.Attendance, 0)
	for _, att := range r.byID {
		if att.EmployeeID != employeeID {
			continue
		}
		if from != nil && att.ClockIn.Before(*from) {
			continue
		}
		if to != nil && att.ClockIn.After(*to) {
			continue
		}
		attendances = append(attendances, att)
	}

	sort.Slice(attendances, func(i, j int) bool {
		if !attendances[i].ClockIn.Equal(attendances[j].ClockIn) {
			return attendances[i].ClockIn.After(attendances[j].ClockIn)
		}
		return attendances[i].ID > attendances[j].ID
	})

	return attendances, nil
}

type transactor struct{}

// NewTransactor returns a Transactor that runs fn directly. Each repository
// call is atomic on its own; multi-call atomicity comes from the ledger's
// per-employee lock.
func NewTransactor() attendance.Transactor {
	return transactor{}
}

func (transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
