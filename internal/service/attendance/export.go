package attendance

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/service/ledger"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
	ledgerSheet     = "Ledger"
)

var exportHeaders = []string{"Employee Code", "Employee Name", "Date", "Day", "In", "Out", "Worked Hours", "Expected Hours", "Status"}

type employeeLedger struct {
	code    string
	name    string
	records []attendance.DailyRecord
	metrics attendance.ProductivityMetrics
}

// ExportLedger implements attendance.LedgerService.
func (s *AttendanceServiceImpl) ExportLedger(ctx context.Context, req attendance.ExportRequest) (attendance.ExportFile, error) {
	if err := req.Validate(); err != nil {
		return attendance.ExportFile{}, err
	}
	year, month := resolveMonth(req.Month, s.now())
	period := formatMonth(year, month)

	records, err := s.DailyRecordRepository.ListByMonth(ctx, year, month)
	if err != nil {
		return attendance.ExportFile{}, fmt.Errorf("failed to list ledger records: %w", err)
	}
	if len(records) == 0 {
		return attendance.ExportFile{}, attendance.ErrLedgerNotFound
	}

	ledgers, err := groupByEmployee(records)
	if err != nil {
		return attendance.ExportFile{}, err
	}

	var (
		content     []byte
		contentType string
	)
	switch req.Format {
	case attendance.ExportFormatXLSX:
		content, err = renderLedgerXLSX(period, ledgers)
		contentType = contentTypeXLSX
	case attendance.ExportFormatPDF:
		content, err = renderLedgerPDF(period, ledgers)
		contentType = contentTypePDF
	default:
		return attendance.ExportFile{}, fmt.Errorf("%w: %s", attendance.ErrUnsupportedExportFmt, req.Format)
	}
	if err != nil {
		return attendance.ExportFile{}, fmt.Errorf("failed to render %s ledger: %w", req.Format, err)
	}

	slog.Info("Attendance ledger exported", "period", period, "format", req.Format, "employees", len(ledgers))

	return attendance.ExportFile{
		Filename:    fmt.Sprintf("attendance-ledger-%s.%s", period, req.Format),
		ContentType: contentType,
		Content:     content,
	}, nil
}

// groupByEmployee splits records ordered by employee into one ledger per employee.
func groupByEmployee(records []attendance.DailyRecord) ([]employeeLedger, error) {
	var ledgers []employeeLedger
	for _, record := range records {
		if n := len(ledgers); n == 0 || ledgers[n-1].records[0].EmployeeRef != record.EmployeeRef {
			ledgers = append(ledgers, employeeLedger{
				code: derefString(record.EmployeeCode),
				name: derefString(record.EmployeeName),
			})
		}
		last := &ledgers[len(ledgers)-1]
		last.records = append(last.records, record)
	}

	for i := range ledgers {
		metrics, err := ledger.Aggregate(ledgers[i].records)
		if err != nil {
			return nil, err
		}
		ledgers[i].metrics = metrics
	}
	return ledgers, nil
}

func renderLedgerXLSX(period string, ledgers []employeeLedger) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", ledgerSheet); err != nil {
		return nil, err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	summaryStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	lastCol, err := excelize.ColumnNumberToName(len(exportHeaders))
	if err != nil {
		return nil, err
	}

	if err := f.SetCellValue(ledgerSheet, "A1", "Attendance Ledger "+period); err != nil {
		return nil, err
	}
	if err := f.MergeCell(ledgerSheet, "A1", lastCol+"1"); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(ledgerSheet, "A1", lastCol+"1", titleStyle); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(ledgerSheet, "A3", &header); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(ledgerSheet, "A3", lastCol+"3", headerStyle); err != nil {
		return nil, err
	}

	row := 4
	for _, l := range ledgers {
		for _, record := range l.records {
			expected, err := ledger.ExpectedHoursForDate(record.Date)
			if err != nil {
				return nil, err
			}
			values := []interface{}{
				l.code,
				l.name,
				record.Date.Format(time.DateOnly),
				record.Date.Weekday().String(),
				derefString(record.InTime),
				derefString(record.OutTime),
				record.WorkedHours.InexactFloat64(),
				expected.InexactFloat64(),
				string(record.Status),
			}
			if err := f.SetSheetRow(ledgerSheet, fmt.Sprintf("A%d", row), &values); err != nil {
				return nil, err
			}
			row++
		}

		summary := []interface{}{
			l.code,
			"Total",
			"",
			"",
			"",
			"",
			l.metrics.ActualHours.InexactFloat64(),
			l.metrics.ExpectedHours.InexactFloat64(),
			l.metrics.ProductivityPercentage.StringFixed(1) + "%",
		}
		if err := f.SetSheetRow(ledgerSheet, fmt.Sprintf("A%d", row), &summary); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(ledgerSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), summaryStyle); err != nil {
			return nil, err
		}
		row += 2
	}

	if err := f.SetColWidth(ledgerSheet, "A", "A", 16); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(ledgerSheet, "B", "B", 28); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(ledgerSheet, "C", lastCol, 14); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderLedgerPDF(period string, ledgers []employeeLedger) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Attendance Ledger "+period, false)

	headers := []string{"Date", "Day", "In", "Out", "Worked", "Expected", "Status"}
	colWidths := []float64{30, 30, 25, 25, 30, 30, 35}
	tableWidth := 0.0
	for _, w := range colWidths {
		tableWidth += w
	}

	for _, l := range ledgers {
		pdf.AddPage()
		pageWidth, _ := pdf.GetPageSize()
		startX := (pageWidth - tableWidth) / 2

		pdf.SetFont("Arial", "B", 13)
		pdf.CellFormat(0, 8, "Attendance Ledger "+period, "", 1, "C", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 7, fmt.Sprintf("%s - %s", l.code, l.name), "", 1, "C", false, 0, "")
		pdf.Ln(3)

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(68, 114, 196)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetX(startX)
		for i, h := range headers {
			pdf.CellFormat(colWidths[i], 8, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, record := range l.records {
			expected, err := ledger.ExpectedHoursForDate(record.Date)
			if err != nil {
				return nil, err
			}
			cells := []string{
				record.Date.Format(time.DateOnly),
				record.Date.Weekday().String(),
				derefOr(record.InTime, "-"),
				derefOr(record.OutTime, "-"),
				record.WorkedHours.StringFixed(2),
				expected.StringFixed(2),
				string(record.Status),
			}
			pdf.SetX(startX)
			for i, c := range cells {
				pdf.CellFormat(colWidths[i], 6, c, "1", 0, "C", false, 0, "")
			}
			pdf.Ln(-1)
		}

		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(217, 225, 242)
		pdf.SetX(startX)
		pdf.CellFormat(colWidths[0]+colWidths[1]+colWidths[2]+colWidths[3], 7, "Total", "1", 0, "R", true, 0, "")
		pdf.CellFormat(colWidths[4], 7, l.metrics.ActualHours.StringFixed(2), "1", 0, "C", true, 0, "")
		pdf.CellFormat(colWidths[5], 7, l.metrics.ExpectedHours.StringFixed(2), "1", 0, "C", true, 0, "")
		pdf.CellFormat(colWidths[6], 7, l.metrics.ProductivityPercentage.StringFixed(1)+"%", "1", 0, "C", true, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func derefString(s *string) string {
	return derefOr(s, "")
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
