package employee

import (
	"time"
)

// Employee is the owner of a ledger month. Rows are created on first sight
// during an import and keyed by the code printed on the attendance sheet.
type Employee struct {
	ID           string
	EmployeeCode string
	FullName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
