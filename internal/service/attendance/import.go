package attendance

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/spreadsheet"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/hris-attendance-go/internal/service/ledger"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var sheetHeader = []string{"employee_code", "employee_name", "date", "in_time", "out_time"}

const (
	colEmployeeCode = iota
	colEmployeeName
	colDate
	colInTime
	colOutTime
)

type employeeSheet struct {
	code    string
	name    string
	entries []attendance.RawEntry
}

type parsedSheet struct {
	year      int
	month     int
	rowsRead  int
	employees []*employeeSheet
}

// Import implements attendance.ImportService.
func (s *AttendanceServiceImpl) Import(ctx context.Context, req attendance.ImportRequest) (resp attendance.ImportResponse, err error) {
	if err := req.Validate(); err != nil {
		return attendance.ImportResponse{}, err
	}

	data, err := io.ReadAll(req.File)
	if err != nil {
		return attendance.ImportResponse{}, fmt.Errorf("failed to read uploaded sheet: %w", err)
	}
	if len(data) == 0 {
		return attendance.ImportResponse{}, attendance.ErrEmptyUpload
	}

	filename := req.FileHeader.Filename
	batchID := uuid.New().String()

	archivePath, err := s.fileService.ArchiveImport(ctx, batchID, s.now(), bytes.NewReader(data), filename)
	if err != nil {
		return attendance.ImportResponse{}, err
	}
	defer func() {
		if err == nil {
			return
		}
		if delErr := s.fileService.DeleteFile(context.WithoutCancel(ctx), archivePath); delErr != nil {
			slog.Warn("Failed to remove archived sheet", "path", archivePath, "error", delErr)
		}
	}()

	rows, err := spreadsheet.ReadRows(bytes.NewReader(data), filename)
	if err != nil {
		return attendance.ImportResponse{}, mapSpreadsheetError(err)
	}

	sheet, err := parseSheet(rows)
	if err != nil {
		return attendance.ImportResponse{}, err
	}

	results, err := s.processEmployees(ctx, sheet)
	if err != nil {
		return attendance.ImportResponse{}, err
	}

	resp = attendance.ImportResponse{
		BatchID:            batchID,
		Filename:           filename,
		PeriodYear:         sheet.year,
		PeriodMonth:        sheet.month,
		RowsRead:           sheet.rowsRead,
		EmployeesProcessed: len(sheet.employees),
		Employees:          make([]attendance.ImportEmployeeSummary, len(sheet.employees)),
	}
	for _, records := range results {
		resp.RecordsWritten += len(records)
	}

	batch := attendance.ImportBatch{
		ID:            batchID,
		Filename:      filename,
		ArchivePath:   archivePath,
		PeriodYear:    sheet.year,
		PeriodMonth:   sheet.month,
		EmployeeCount: len(sheet.employees),
		RecordCount:   resp.RecordsWritten,
	}

	err = postgresql.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		if _, err := s.ImportBatchRepository.Create(ctx, batch); err != nil {
			return fmt.Errorf("failed to create import batch: %w", err)
		}

		for i, emp := range sheet.employees {
			saved, err := s.EmployeeRepository.Upsert(ctx, emp.code, emp.name)
			if err != nil {
				return fmt.Errorf("failed to upsert employee %s: %w", emp.code, err)
			}

			records := results[i]
			for j := range records {
				records[j].EmployeeRef = saved.ID
				records[j].ImportBatchID = &batchID
			}

			if err := s.DailyRecordRepository.ReplaceMonth(ctx, saved.ID, sheet.year, sheet.month, records); err != nil {
				return fmt.Errorf("failed to store ledger for employee %s: %w", emp.code, err)
			}

			summary, err := summarize(records)
			if err != nil {
				return err
			}
			summary.EmployeeID = saved.ID
			summary.EmployeeCode = saved.EmployeeCode
			summary.EmployeeName = saved.FullName
			resp.Employees[i] = summary
		}
		return nil
	})
	if err != nil {
		return attendance.ImportResponse{}, err
	}

	slog.Info("Attendance import completed",
		"batch_id", batchID,
		"filename", filename,
		"period", formatMonth(sheet.year, sheet.month),
		"employees", resp.EmployeesProcessed,
		"records", resp.RecordsWritten,
	)

	return resp, nil
}

// processEmployees runs the ledger engine for every employee of the sheet.
// Results keep the sheet order.
func (s *AttendanceServiceImpl) processEmployees(ctx context.Context, sheet parsedSheet) ([][]attendance.DailyRecord, error) {
	results := make([][]attendance.DailyRecord, len(sheet.employees))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, emp := range sheet.employees {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			records, err := ledger.ProcessEmployeeMonth(emp.code, sheet.year, sheet.month, emp.entries)
			if err != nil {
				return fmt.Errorf("employee %s: %w", emp.code, err)
			}
			results[i] = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// parseSheet validates the header and every data row, then groups the rows by
// employee code in first-seen order. The target month is the month of the
// first data row.
func parseSheet(rows [][]string) (parsedSheet, error) {
	if len(rows) == 0 {
		return parsedSheet{}, attendance.ErrEmptyUpload
	}
	if err := checkHeader(rows[0]); err != nil {
		return parsedSheet{}, err
	}

	var sheet parsedSheet
	byCode := make(map[string]*employeeSheet)

	for i, row := range rows[1:] {
		rowNum := i + 2
		if spreadsheet.IsBlankRow(row) {
			continue
		}

		code := spreadsheet.Cell(row, colEmployeeCode)
		if !validator.IsValidEmployeeCode(code) {
			return parsedSheet{}, &attendance.RowError{Row: rowNum, Err: fmt.Errorf("%w: %q", employee.ErrInvalidEmployeeCode, code)}
		}

		rawDate := spreadsheet.Cell(row, colDate)
		date, err := spreadsheet.ParseDate(rawDate)
		if err != nil {
			return parsedSheet{}, &attendance.RowError{Row: rowNum, Err: &attendance.DateError{
				Field:  "date",
				Value:  rawDate,
				Reason: "must be YYYY-MM-DD, DD/MM/YYYY or a spreadsheet date",
			}}
		}

		if sheet.rowsRead == 0 {
			sheet.year, sheet.month = date.Year(), int(date.Month())
		}
		sheet.rowsRead++

		emp, ok := byCode[code]
		if !ok {
			emp = &employeeSheet{code: code}
			byCode[code] = emp
			sheet.employees = append(sheet.employees, emp)
		}
		if emp.name == "" {
			emp.name = spreadsheet.Cell(row, colEmployeeName)
		}

		inTime := spreadsheet.NormalizeClock(spreadsheet.Cell(row, colInTime))
		outTime := spreadsheet.NormalizeClock(spreadsheet.Cell(row, colOutTime))
		if _, err := ledger.ComputeWorkedHours(inTime, outTime); err != nil {
			return parsedSheet{}, &attendance.RowError{Row: rowNum, Err: err}
		}

		emp.entries = append(emp.entries, attendance.RawEntry{
			EmployeeRef: code,
			Date:        date,
			InTime:      inTime,
			OutTime:     outTime,
		})
	}

	if sheet.rowsRead == 0 {
		return parsedSheet{}, attendance.ErrEmptyUpload
	}

	return sheet, nil
}

func checkHeader(row []string) error {
	for i, want := range sheetHeader {
		if !strings.EqualFold(spreadsheet.Cell(row, i), want) {
			return fmt.Errorf("%w: expected columns %s", attendance.ErrInvalidSheetLayout, strings.Join(sheetHeader, ", "))
		}
	}
	return nil
}

func mapSpreadsheetError(err error) error {
	switch {
	case errors.Is(err, spreadsheet.ErrUnsupportedFormat):
		return attendance.ErrUnsupportedFileType
	case errors.Is(err, spreadsheet.ErrEmptyWorksheet):
		return attendance.ErrEmptyUpload
	default:
		return fmt.Errorf("%w: %v", attendance.ErrInvalidSheetLayout, err)
	}
}

func summarize(records []attendance.DailyRecord) (attendance.ImportEmployeeSummary, error) {
	var summary attendance.ImportEmployeeSummary
	for _, record := range records {
		switch record.Status {
		case attendance.StatusPresent:
			summary.PresentDays++
		case attendance.StatusAbsent:
			summary.AbsentDays++
		case attendance.StatusWeekend:
			summary.WeekendDays++
		}
	}

	metrics, err := ledger.Aggregate(records)
	if err != nil {
		return attendance.ImportEmployeeSummary{}, err
	}
	summary.ActualHours = metrics.ActualHours.InexactFloat64()
	summary.ExpectedHours = metrics.ExpectedHours.InexactFloat64()
	summary.ProductivityPercentage = metrics.ProductivityPercentage.InexactFloat64()
	return summary, nil
}
