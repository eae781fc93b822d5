package attendance

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// ========================================
// IMPORT DTOs
// ========================================

type ImportRequest struct {
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
	MaxSize    int64                 `json:"-"`
}

func (r *ImportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FileHeader == nil || r.File == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "attendance sheet is required",
		})
		return errs
	}

	ext := strings.ToLower(filepath.Ext(r.FileHeader.Filename))
	if ext != ".xlsx" && ext != ".xls" {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "invalid file type: only xlsx, xls allowed",
		})
	} else if r.MaxSize > 0 && r.FileHeader.Size > r.MaxSize {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "attendance sheet exceeds the maximum upload size",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ImportResponse struct {
	BatchID            string                  `json:"batch_id"`
	Filename           string                  `json:"filename"`
	PeriodYear         int                     `json:"period_year"`
	PeriodMonth        int                     `json:"period_month"`
	RowsRead           int                     `json:"rows_read"`
	EmployeesProcessed int                     `json:"employees_processed"`
	RecordsWritten     int                     `json:"records_written"`
	Employees          []ImportEmployeeSummary `json:"employees"`
}

type ImportEmployeeSummary struct {
	EmployeeID             string  `json:"employee_id"`
	EmployeeCode           string  `json:"employee_code"`
	EmployeeName           string  `json:"employee_name"`
	PresentDays            int     `json:"present_days"`
	AbsentDays             int     `json:"absent_days"`
	WeekendDays            int     `json:"weekend_days"`
	ActualHours            float64 `json:"actual_hours"`
	ExpectedHours          float64 `json:"expected_hours"`
	ProductivityPercentage float64 `json:"productivity_percentage"`
}

// ========================================
// LEDGER DTOs
// ========================================

type LedgerFilter struct {
	EmployeeID string `json:"employee_id"`
	Month      string `json:"month"` // YYYY-MM
}

func (f *LedgerFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	} else if !validator.IsValidUUID(f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if f.Month != "" {
		if _, valid := validator.IsValidMonth(f.Month); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DailyRecordResponse struct {
	Date          string  `json:"date"`
	DayOfWeek     string  `json:"day_of_week"`
	InTime        *string `json:"in_time"`
	OutTime       *string `json:"out_time"`
	WorkedHours   float64 `json:"worked_hours"`
	ExpectedHours float64 `json:"expected_hours"`
	Status        string  `json:"status"`
}

type ProductivityResponse struct {
	ActualHours            float64 `json:"actual_hours"`
	ExpectedHours          float64 `json:"expected_hours"`
	ProductivityPercentage float64 `json:"productivity_percentage"`
}

type LedgerResponse struct {
	EmployeeID   string                `json:"employee_id"`
	EmployeeCode string                `json:"employee_code"`
	EmployeeName string                `json:"employee_name"`
	Month        string                `json:"month"`
	Summary      ProductivityResponse  `json:"summary"`
	Records      []DailyRecordResponse `json:"records"`
}

// ========================================
// EXPORT DTOs
// ========================================

const (
	ExportFormatXLSX = "xlsx"
	ExportFormatPDF  = "pdf"
)

type ExportRequest struct {
	Month  string `json:"month"`  // YYYY-MM
	Format string `json:"format"` // xlsx, pdf
}

func (r *ExportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month != "" {
		if _, valid := validator.IsValidMonth(r.Month); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}

	if r.Format == "" {
		r.Format = ExportFormatXLSX
	}
	r.Format = strings.ToLower(r.Format)
	if !validator.IsInSlice(r.Format, []string{ExportFormatXLSX, ExportFormatPDF}) {
		errs = append(errs, validator.ValidationError{
			Field:   "format",
			Message: "format must be one of: xlsx, pdf",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
