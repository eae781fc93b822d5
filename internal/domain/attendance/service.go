package attendance

import (
	"context"
)

// ImportService turns an uploaded attendance sheet into persisted ledger months.
type ImportService interface {
	// Import parses, gap-fills and stores the sheet. Any failure leaves storage untouched.
	Import(ctx context.Context, req ImportRequest) (ImportResponse, error)

	// DownloadImport returns the original sheet of a stored import batch.
	DownloadImport(ctx context.Context, batchID string) (ExportFile, error)
}

// LedgerService reads stored ledger months.
type LedgerService interface {
	// GetEmployeeLedger returns one employee's month with recomputed productivity.
	GetEmployeeLedger(ctx context.Context, filter LedgerFilter) (LedgerResponse, error)

	// ExportLedger renders every employee's month as xlsx or pdf.
	ExportLedger(ctx context.Context, req ExportRequest) (ExportFile, error)
}
