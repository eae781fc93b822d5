package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// multipartOverhead leaves room for form boundaries around the sheet itself.
const multipartOverhead = 1 << 20

type AttendanceHandler interface {
	// Import handles POST /attendance/import
	Import(w http.ResponseWriter, r *http.Request)
	// GetLedger handles GET /attendance/ledger
	GetLedger(w http.ResponseWriter, r *http.Request)
	// Export handles GET /attendance/export
	Export(w http.ResponseWriter, r *http.Request)
	// DownloadImport handles GET /attendance/imports/{id}/file
	DownloadImport(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	importService  attendance.ImportService
	ledgerService  attendance.LedgerService
	maxUploadBytes int64
}

func NewAttendanceHandler(importService attendance.ImportService, ledgerService attendance.LedgerService, maxUploadBytes int64) AttendanceHandler {
	return &attendanceHandlerImpl{
		importService:  importService,
		ledgerService:  ledgerService,
		maxUploadBytes: maxUploadBytes,
	}
}

// Import implements AttendanceHandler.
func (h *attendanceHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.BadRequest(w, "Attendance sheet exceeds the maximum upload size", nil)
			return
		}
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			response.BadRequest(w, "Attendance sheet is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	req := attendance.ImportRequest{
		File:       file,
		FileHeader: fileHeader,
		MaxSize:    h.maxUploadBytes,
	}

	result, err := h.importService.Import(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance imported successfully", result)
}

// GetLedger implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetLedger(w http.ResponseWriter, r *http.Request) {
	filter := attendance.LedgerFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Month:      r.URL.Query().Get("month"), // format: YYYY-MM, default: current month
	}

	result, err := h.ledgerService.GetEmployeeLedger(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Export implements AttendanceHandler.
func (h *attendanceHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	req := attendance.ExportRequest{
		Month:  r.URL.Query().Get("month"),
		Format: r.URL.Query().Get("format"),
	}

	file, err := h.ledgerService.ExportLedger(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Content)
}

// DownloadImport implements AttendanceHandler.
func (h *attendanceHandlerImpl) DownloadImport(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "id")

	file, err := h.importService.DownloadImport(r.Context(), batchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Content)
}
