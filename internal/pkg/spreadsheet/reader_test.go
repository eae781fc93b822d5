package spreadsheet

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestReadRows_XLSX(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"employee_code", "employee_name", "date", "in_time", "out_time"},
		{"E001", "Budi", "2024-01-02", "09:00", "17:30"},
		{"E001", "Budi", 45294, 0.375, 0.729166666666667},
	})

	rows, err := ReadRows(bytes.NewReader(data), "attendance.XLSX")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "employee_code", Cell(rows[0], 0))
	assert.Equal(t, "2024-01-02", Cell(rows[1], 2))

	date, err := ParseDate(Cell(rows[2], 2))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC), date)
	assert.Equal(t, "09:00", NormalizeClock(Cell(rows[2], 3)))
	assert.Equal(t, "17:30", NormalizeClock(Cell(rows[2], 4)))
}

func TestReadRows_UnsupportedFormat(t *testing.T) {
	_, err := ReadRows(strings.NewReader("a,b,c"), "attendance.csv")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestReadRows_CorruptWorkbook(t *testing.T) {
	_, err := ReadRows(strings.NewReader("not a zip"), "attendance.xlsx")
	assert.Error(t, err)
}

func TestReadRows_EmptyWorksheet(t *testing.T) {
	data := buildWorkbook(t, nil)

	_, err := ReadRows(bytes.NewReader(data), "empty.xlsx")
	assert.ErrorIs(t, err, ErrEmptyWorksheet)
}

func TestCell(t *testing.T) {
	row := []string{" E001 ", "Budi"}

	assert.Equal(t, "E001", Cell(row, 0))
	assert.Equal(t, "", Cell(row, 5))
	assert.Equal(t, "", Cell(row, -1))
}

func TestIsBlankRow(t *testing.T) {
	assert.True(t, IsBlankRow(nil))
	assert.True(t, IsBlankRow([]string{"", "  ", "\t"}))
	assert.False(t, IsBlankRow([]string{"", "x"}))
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)

	for _, input := range []string{"2024-02-29", "29/02/2024", "29/2/2024", "45351", "45351.5", "2024-02-29T08:00:00Z", " 2024-02-29 "} {
		got, err := ParseDate(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, input := range []string{"", "yesterday", "2024-02-30", "31/04/2024", "-3", "0"} {
		_, err := ParseDate(input)
		assert.Error(t, err, input)
	}
}

func TestNormalizeClock(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"09:00", "09:00"},
		{" 9:30 ", "9:30"},
		{"0.5", "12:00"},
		{"0", "00:00"},
		{"0.99999", "00:00"},
		{"45293.375", "09:00"},
		{"1899-12-30T17:45:00Z", "17:45"},
		{"9:5", "9:5"},
		{"abc", "abc"},
		{"-0.5", "-0.5"},
		{"0930", "0930"},
		{"1730", "1730"},
		{"17", "17"},
		{"25", "25"},
		{"1", "1"},
		{"9.5", "9.5"},
		{"45293", "45293"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeClock(tt.input), tt.input)
	}
}
