package ledger

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpectedHoursForDate(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		// January 2024
		{date(2024, time.January, 1), "8.5"}, // Monday
		{date(2024, time.January, 5), "8.5"}, // Friday
		{date(2024, time.January, 6), "4"},   // Saturday
		{date(2024, time.January, 7), "0"},   // Sunday
		// leap-year February
		{date(2024, time.February, 29), "8.5"}, // Thursday
		{date(2024, time.February, 24), "4"},
		{date(2024, time.February, 25), "0"},
		// July 2025
		{date(2025, time.July, 1), "8.5"}, // Tuesday
		{date(2025, time.July, 5), "4"},
		{date(2025, time.July, 6), "0"},
		// bounds
		{date(1900, time.January, 1), "8.5"},
		{date(2100, time.December, 31), "8.5"},
	}

	for _, tt := range tests {
		got, err := ExpectedHoursForDate(tt.date)
		require.NoError(t, err, tt.date)
		assertDecimal(t, tt.want, got)
	}
}

func TestExpectedHoursForDate_IgnoresTimeOfDay(t *testing.T) {
	got, err := ExpectedHoursForDate(time.Date(2024, time.January, 6, 18, 45, 0, 0, time.UTC))
	require.NoError(t, err)
	assertDecimal(t, "4", got)
}

func TestExpectedHoursForDate_InvalidDate(t *testing.T) {
	for _, d := range []time.Time{{}, date(1899, time.December, 31), date(2101, time.January, 1)} {
		_, err := ExpectedHoursForDate(d)
		assert.ErrorIs(t, err, attendance.ErrInvalidDate, d)
	}
}

func TestNormalizeDate(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	a := NormalizeDate(time.Date(2024, time.March, 3, 23, 59, 59, 0, jakarta))
	b := NormalizeDate(time.Date(2024, time.March, 3, 0, 0, 1, 0, time.UTC))

	assert.True(t, a.Equal(b))
	assert.Equal(t, a, b)
	assert.Equal(t, time.UTC, a.Location())
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(2024, 1))
	assert.Equal(t, 29, DaysInMonth(2024, 2))
	assert.Equal(t, 28, DaysInMonth(2023, 2))
	assert.Equal(t, 28, DaysInMonth(1900, 2))
	assert.Equal(t, 29, DaysInMonth(2000, 2))
	assert.Equal(t, 30, DaysInMonth(2024, 4))
	assert.Equal(t, 31, DaysInMonth(2024, 12))
}

func TestMonthDates(t *testing.T) {
	dates := MonthDates(2024, 2)

	require.Len(t, dates, 29)
	assert.Equal(t, date(2024, time.February, 1), dates[0])
	assert.Equal(t, date(2024, time.February, 29), dates[28])
	for i := 1; i < len(dates); i++ {
		assert.True(t, dates[i].After(dates[i-1]))
	}
}
