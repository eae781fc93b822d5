// Package spreadsheet reads the first worksheet of an uploaded workbook into
// plain string rows and normalizes the date and clock cells found in them.
package spreadsheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

const maxRows = 100000

const (
	// minDateTimeSerial is 1900-03-01, the first serial past the 1900 leap year bug.
	minDateTimeSerial = 61
	maxDateSerial     = 2958466
)

var (
	ErrUnsupportedFormat  = errors.New("unsupported spreadsheet format")
	ErrNoWorksheet        = errors.New("no worksheet found")
	ErrMultipleWorksheets = errors.New("multiple worksheets found; please upload a file with a single sheet")
	ErrEmptyWorksheet     = errors.New("worksheet is empty")
)

// ReadRows returns the rows of the first worksheet. Numeric cells come back
// unformatted, so dates are Excel serials and clock times are day fractions.
func ReadRows(reader io.Reader, filename string) ([][]string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read spreadsheet: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xls":
		return readXLS(data)
	case ".xlsx":
		return readXLSX(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func readXLS(data []byte) ([][]string, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open xls workbook: %w", err)
	}
	if workbook == nil || workbook.NumSheets() == 0 {
		return nil, ErrNoWorksheet
	}
	if workbook.NumSheets() > 1 {
		return nil, ErrMultipleWorksheets
	}

	rows := workbook.ReadAllCells(maxRows)
	if len(rows) == 0 {
		return nil, ErrEmptyWorksheet
	}
	return rows, nil
}

func readXLSX(data []byte) ([][]string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx workbook: %w", err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, ErrNoWorksheet
	}

	rows, err := file.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read worksheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyWorksheet
	}
	if len(rows) > maxRows {
		rows = rows[:maxRows]
	}
	return rows, nil
}

// Cell returns the trimmed value at idx, or "" past the end of a short row.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// IsBlankRow reports whether every cell of row is empty or whitespace.
func IsBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseDate accepts ISO dates, day-first slashed dates and Excel serials.
// The result is midnight UTC.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("date is empty")
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		if serial < 1 || serial >= maxDateSerial {
			return time.Time{}, fmt.Errorf("date serial %s is out of range", value)
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("date serial %s: %w", value, err)
		}
		return midnight(t), nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return midnight(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("date %q must be YYYY-MM-DD or DD/MM/YYYY", value)
}

// NormalizeClock converts clock cells stored as day fractions, date-time
// serials or full timestamps to HH:MM. Anything else is returned trimmed and
// unchanged so that strict validation downstream sees the original text.
func NormalizeClock(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}

	if f, err := strconv.ParseFloat(value, 64); err == nil {
		if !isClockSerial(f) {
			return value
		}
		_, frac := math.Modf(f)
		minutes := int(math.Round(frac*24*60)) % (24 * 60)
		return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.Format("15:04")
	}

	return value
}

// isClockSerial reports whether f is a time-only cell (a fraction of one day)
// or a date-time serial with a time part. Whole numbers such as 930 or 17
// and small decimals such as 9.5 are typed clock text, not serials.
func isClockSerial(f float64) bool {
	if f >= 0 && f < 1 {
		return true
	}
	whole, frac := math.Modf(f)
	return frac > 0 && whole >= minDateTimeSerial && whole < maxDateSerial
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
