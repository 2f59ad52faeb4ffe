package employee

import "context"

// Directory answers who the employees are. Lookups of unknown ids return
// ErrEmployeeNotFound.
type Directory interface {
	// IsActiveEmployee reports whether id names an active employee
	IsActiveEmployee(ctx context.Context, id string) (bool, error)

	// DisplayName returns the employee's full name
	DisplayName(ctx context.Context, id string) (string, error)

	// ListActive returns every active employee
	ListActive(ctx context.Context) ([]Employee, error)
}
