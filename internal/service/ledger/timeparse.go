package ledger

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

var clockPattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)

var (
	minutesPerHour = decimal.NewFromInt(60)
	hoursPerDay    = decimal.NewFromInt(24)
)

// ParseTimeToDecimal converts a 24-hour "HH:MM" clock value into decimal hours.
// "09:30" becomes 9.5. The hour may have one digit, the minute must have two.
func ParseTimeToDecimal(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, &attendance.TimeFormatError{Value: s, Reason: "time is empty"}
	}

	match := clockPattern.FindStringSubmatch(s)
	if match == nil {
		return decimal.Zero, &attendance.TimeFormatError{
			Value:  s,
			Reason: "expected 24-hour HH:MM with hour 00-23 and minute 00-59",
		}
	}

	hour, err := strconv.Atoi(match[1])
	if err != nil {
		return decimal.Zero, &attendance.TimeFormatError{Value: s, Reason: "hour is not numeric"}
	}
	minute, err := strconv.Atoi(match[2])
	if err != nil {
		return decimal.Zero, &attendance.TimeFormatError{Value: s, Reason: "minute is not numeric"}
	}

	return decimal.NewFromInt(int64(hour)).Add(decimal.NewFromInt(int64(minute)).Div(minutesPerHour)), nil
}

// ComputeWorkedHours returns the hours between in and out, rounded to 2 places.
// An out time earlier than the in time is an overnight shift ending the next day.
func ComputeWorkedHours(in, out string) (decimal.Decimal, error) {
	inHours, err := ParseTimeToDecimal(in)
	if err != nil {
		return decimal.Zero, err
	}
	outHours, err := ParseTimeToDecimal(out)
	if err != nil {
		return decimal.Zero, err
	}

	var worked decimal.Decimal
	if outHours.GreaterThanOrEqual(inHours) {
		worked = outHours.Sub(inHours)
	} else {
		worked = hoursPerDay.Sub(inHours).Add(outHours)
	}

	if worked.IsNegative() || worked.GreaterThan(hoursPerDay) {
		return decimal.Zero, &attendance.CalculationRangeError{
			InTime:  in,
			OutTime: out,
			Hours:   worked.String(),
		}
	}

	return worked.Round(2), nil
}
