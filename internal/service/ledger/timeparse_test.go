package ledger

import (
	"errors"
	"fmt"
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.String())
}

// ===== PARSE TIME TESTS =====

func TestParseTimeToDecimal_Success(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"00:00", "0"},
		{"09:30", "9.5"},
		{"9:30", "9.5"},
		{"17:45", "17.75"},
		{"23:59", "23.9833333333333333"},
	}

	for _, tt := range tests {
		got, err := ParseTimeToDecimal(tt.input)
		require.NoError(t, err, tt.input)
		assert.True(t, got.Round(10).Equal(decimal.RequireFromString(tt.want).Round(10)), "%s: got %s", tt.input, got)
	}
}

func TestParseTimeToDecimal_RecoversEveryMinuteOfDay(t *testing.T) {
	seen := make(map[string]int, 1440)

	for minuteOfDay := 0; minuteOfDay < 1440; minuteOfDay++ {
		input := fmt.Sprintf("%02d:%02d", minuteOfDay/60, minuteOfDay%60)

		got, err := ParseTimeToDecimal(input)
		require.NoError(t, err, input)

		recovered := got.Mul(decimal.NewFromInt(60)).Round(0).IntPart()
		assert.Equal(t, int64(minuteOfDay), recovered, input)

		key := got.String()
		if prev, dup := seen[key]; dup {
			t.Fatalf("%s and minute %d map to the same value %s", input, prev, key)
		}
		seen[key] = minuteOfDay
	}

	assert.Len(t, seen, 1440)
}

func TestParseTimeToDecimal_InvalidFormat(t *testing.T) {
	inputs := []string{"", "   ", "25:00", "24:00", "9:5", "abc", "09-30", "09:60", "009:30", "09:30:00", " 09:30"}

	for _, input := range inputs {
		_, err := ParseTimeToDecimal(input)
		require.Error(t, err, "input %q", input)
		assert.True(t, errors.Is(err, attendance.ErrInvalidTimeFormat), "input %q", input)

		var formatErr *attendance.TimeFormatError
		require.True(t, errors.As(err, &formatErr), "input %q", input)
		assert.Equal(t, input, formatErr.Value)
		assert.NotEmpty(t, formatErr.Reason)
	}
}

// ===== WORKED HOURS TESTS =====

func TestComputeWorkedHours(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
		want string
	}{
		{"regular day", "09:00", "17:30", "8.5"},
		{"overnight", "23:00", "01:00", "2"},
		{"same time", "09:00", "09:00", "0"},
		{"single digit hour", "8:15", "12:00", "3.75"},
		{"rounds to two places", "09:00", "09:01", "0.02"},
		{"rounds half away from zero", "09:00", "09:20", "0.33"},
		{"overnight to midnight", "22:10", "00:00", "1.83"},
		{"almost full day", "00:00", "23:59", "23.98"},
		{"one minute short of full day overnight", "00:01", "00:00", "23.98"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeWorkedHours(tt.in, tt.out)
			require.NoError(t, err)
			assertDecimal(t, tt.want, got)
		})
	}
}

func TestComputeWorkedHours_PropagatesFormatError(t *testing.T) {
	_, err := ComputeWorkedHours("25:00", "17:00")
	assert.ErrorIs(t, err, attendance.ErrInvalidTimeFormat)

	_, err = ComputeWorkedHours("09:00", "abc")
	assert.ErrorIs(t, err, attendance.ErrInvalidTimeFormat)
}
