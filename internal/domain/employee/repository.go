package employee

import (
	"context"
)

// EmployeeRepository defines read access to employee reference data.
type EmployeeRepository interface {
	// GetByID retrieves a single employee
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByCode retrieves an employee by their employee code (login)
	GetByCode(ctx context.Context, code string) (Employee, error)

	// List retrieves all employees
	List(ctx context.Context) ([]Employee, error)
}
