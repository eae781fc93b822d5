package ledger

import (
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CalculateProductivity returns actual/expected as a percentage rounded to one
// place. Zero expected hours count as fully met. Overtime is not capped.
func CalculateProductivity(actual, expected decimal.Decimal) (decimal.Decimal, error) {
	if actual.IsNegative() {
		return decimal.Zero, &attendance.MetricInputError{Reason: "actual hours must not be negative, got " + actual.String()}
	}
	if expected.IsNegative() {
		return decimal.Zero, &attendance.MetricInputError{Reason: "expected hours must not be negative, got " + expected.String()}
	}
	if expected.IsZero() {
		return hundred, nil
	}

	return actual.Div(expected).Mul(hundred).Round(1), nil
}

// Aggregate sums worked hours and recomputes expected hours from the calendar
// rule for every record.
func Aggregate(records []attendance.DailyRecord) (attendance.ProductivityMetrics, error) {
	if len(records) == 0 {
		return attendance.ProductivityMetrics{}, &attendance.MetricInputError{Reason: "no records to aggregate"}
	}

	actual := decimal.Zero
	expected := decimal.Zero
	for _, record := range records {
		hours, err := ExpectedHoursForDate(record.Date)
		if err != nil {
			return attendance.ProductivityMetrics{}, err
		}
		actual = actual.Add(record.WorkedHours)
		expected = expected.Add(hours)
	}

	actual = actual.Round(2)
	expected = expected.Round(2)

	percentage, err := CalculateProductivity(actual, expected)
	if err != nil {
		return attendance.ProductivityMetrics{}, err
	}

	return attendance.ProductivityMetrics{
		ActualHours:            actual,
		ExpectedHours:          expected,
		ProductivityPercentage: percentage,
	}, nil
}
