package attendance

import (
	"errors"
	"fmt"
)

// Error kinds raised by the ledger engine. Detail types below unwrap to these.
var (
	ErrInvalidTimeFormat     = errors.New("invalid time format")
	ErrInvalidDate           = errors.New("invalid date")
	ErrCalculationOutOfRange = errors.New("calculation out of range")
	ErrInvalidMetricInput    = errors.New("invalid metric input")
)

// Import and lookup errors
var (
	ErrEmptyUpload          = errors.New("uploaded sheet contains no attendance rows")
	ErrUnsupportedFileType  = errors.New("unsupported file type: only xlsx and xls allowed")
	ErrInvalidSheetLayout   = errors.New("sheet header does not match the attendance layout")
	ErrLedgerNotFound       = errors.New("no attendance records found for the requested period")
	ErrUnsupportedExportFmt = errors.New("unsupported export format")
	ErrImportBatchNotFound  = errors.New("import batch not found")
	ErrImportArchivePurged  = errors.New("archived sheet for this import has been purged")
)

type TimeFormatError struct {
	Value  string
	Reason string
}

func (e *TimeFormatError) Error() string {
	return fmt.Sprintf("invalid time format %q: %s", e.Value, e.Reason)
}

func (e *TimeFormatError) Unwrap() error { return ErrInvalidTimeFormat }

type DateError struct {
	Field  string
	Value  string
	Reason string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *DateError) Unwrap() error { return ErrInvalidDate }

type CalculationRangeError struct {
	InTime  string
	OutTime string
	Hours   string
}

func (e *CalculationRangeError) Error() string {
	return fmt.Sprintf("worked hours %s for in=%q out=%q is outside [0, 24]", e.Hours, e.InTime, e.OutTime)
}

func (e *CalculationRangeError) Unwrap() error { return ErrCalculationOutOfRange }

type MetricInputError struct {
	Reason string
}

func (e *MetricInputError) Error() string {
	return "invalid metric input: " + e.Reason
}

func (e *MetricInputError) Unwrap() error { return ErrInvalidMetricInput }

// RowError ties a failure to the 1-based row of the uploaded sheet.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
