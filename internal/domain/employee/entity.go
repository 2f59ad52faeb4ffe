package employee

import "time"

type Employee struct {
	ID               string
	FullName         string
	EmploymentStatus EmploymentStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

// IsActive reports whether the employee may record attendance.
func (e Employee) IsActive() bool {
	return e.DeletedAt == nil && e.EmploymentStatus == EmploymentStatusActive
}
