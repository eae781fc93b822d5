package attendance

import (
	"context"
)

// DailyRecordRepository stores the dense ledger produced by the engine.
type DailyRecordRepository interface {
	// ReplaceMonth deletes the employee's records for the month and inserts records in their place.
	ReplaceMonth(ctx context.Context, employeeID string, year, month int, records []DailyRecord) error

	// ListByEmployeeAndMonth returns one employee's month ordered by date ascending.
	ListByEmployeeAndMonth(ctx context.Context, employeeID string, year, month int) ([]DailyRecord, error)

	// ListByMonth returns every employee's month ordered by employee code, then date.
	ListByMonth(ctx context.Context, year, month int) ([]DailyRecord, error)
}

type ImportBatchRepository interface {
	Create(ctx context.Context, batch ImportBatch) (ImportBatch, error)
	GetByID(ctx context.Context, id string) (ImportBatch, error)
}
