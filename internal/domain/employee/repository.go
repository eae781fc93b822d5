package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	// Upsert creates the employee for code, or refreshes the name when the code exists.
	Upsert(ctx context.Context, code string, fullName string) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
}
