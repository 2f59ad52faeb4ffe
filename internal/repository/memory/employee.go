package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/employee"
)

// Directory is an in-memory employee.Directory.
type Directory struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee
}

func NewDirectory(employees ...employee.Employee) *Directory {
	d := &Directory{employees: make(map[string]employee.Employee, len(employees))}
	for _, e := range employees {
		d.employees[e.ID] = e
	}
	return d
}

// Put adds or replaces an employee.
func (d *Directory) Put(e employee.Employee) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.employees[e.ID] = e
}

// Remove deletes an employee.
func (d *Directory) Remove(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.employees, id)
}

// IsActiveEmployee implements employee.Directory.
func (d *Directory) IsActiveEmployee(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	e, ok := d.employees[id]
	return ok && e.IsActive(), nil
}

// DisplayName implements employee.Directory.
func (d *Directory) DisplayName(ctx context.Context, id string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	e, ok := d.employees[id]
	if !ok || e.DeletedAt != nil {
		return "", employee.ErrEmployeeNotFound
	}
	return e.FullName, nil
}

// ListActive implements employee.Directory.
func (d *Directory) ListActive(ctx context.Context) ([]employee.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	var employees []employee.Employee
	for _, e := range d.employees {
		if e.IsActive() {
			employees = append(employees, e)
		}
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].ID < employees[j].ID })
	return employees, nil
}
