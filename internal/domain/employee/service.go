package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// GetEmployee retrieves a single employee by ID
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// ListEmployees lists employees with search and pagination
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)
}
