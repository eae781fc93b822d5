package response

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Sheet row errors carry the row number
	var rowErr *attendance.RowError
	if errors.As(err, &rowErr) {
		BadRequest(w, rowErr.Err.Error(), map[string]string{"row": strconv.Itoa(rowErr.Row)})
		return
	}

	switch {
	// Ledger engine errors
	case errors.Is(err, attendance.ErrInvalidTimeFormat),
		errors.Is(err, attendance.ErrInvalidDate),
		errors.Is(err, attendance.ErrCalculationOutOfRange),
		errors.Is(err, attendance.ErrInvalidMetricInput):
		BadRequest(w, err.Error(), nil)

	// Import and export errors
	case errors.Is(err, attendance.ErrEmptyUpload),
		errors.Is(err, attendance.ErrUnsupportedFileType),
		errors.Is(err, attendance.ErrInvalidSheetLayout),
		errors.Is(err, attendance.ErrUnsupportedExportFmt),
		errors.Is(err, employee.ErrInvalidEmployeeCode):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrLedgerNotFound):
		NotFound(w, "No attendance records found for the requested period")
	case errors.Is(err, attendance.ErrImportBatchNotFound):
		NotFound(w, "Import batch not found")
	case errors.Is(err, attendance.ErrImportArchivePurged):
		NotFound(w, "Archived sheet for this import is no longer retained")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
