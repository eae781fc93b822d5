package ledger

import (
	"strconv"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

const (
	MinYear = 1900
	MaxYear = 2100
)

var (
	weekdayHours  = decimal.RequireFromString("8.5")
	saturdayHours = decimal.NewFromInt(4)
	sundayHours   = decimal.Zero
)

// ExpectedHoursForDate is the business rule for scheduled hours on a day.
// Sunday 0, Saturday 4, Monday to Friday 8.5.
func ExpectedHoursForDate(date time.Time) (decimal.Decimal, error) {
	if date.IsZero() {
		return decimal.Zero, &attendance.DateError{Field: "date", Value: "", Reason: "date is not set"}
	}
	if date.Year() < MinYear || date.Year() > MaxYear {
		return decimal.Zero, &attendance.DateError{
			Field:  "date",
			Value:  date.Format(time.DateOnly),
			Reason: "year must be between 1900 and 2100",
		}
	}

	switch date.Weekday() {
	case time.Sunday:
		return sundayHours, nil
	case time.Saturday:
		return saturdayHours, nil
	default:
		return weekdayHours, nil
	}
}

// NormalizeDate drops the time of day and pins the date to UTC so that two
// values on the same calendar day compare equal.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns 28 to 31 for a 1-based month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthDates lists every date of the month in ascending order.
func MonthDates(year, month int) []time.Time {
	n := DaysInMonth(year, month)
	dates := make([]time.Time, 0, n)
	for day := 1; day <= n; day++ {
		dates = append(dates, time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC))
	}
	return dates
}

func validatePeriod(year, month int) error {
	if year < MinYear || year > MaxYear {
		return &attendance.DateError{
			Field:  "year",
			Value:  strconv.Itoa(year),
			Reason: "year must be between 1900 and 2100",
		}
	}
	if month < 1 || month > 12 {
		return &attendance.DateError{
			Field:  "month",
			Value:  strconv.Itoa(month),
			Reason: "month must be between 1 and 12",
		}
	}
	return nil
}
