// Package ledger turns sparse attendance entries into a dense monthly ledger
// and derives productivity from it. Everything here is pure and safe for
// concurrent use.
package ledger

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
)

// ProcessMonth builds one record per calendar day of the month for a single
// employee. The owner of every record is the first entry's EmployeeRef.
// With no entries the records carry an empty ref; use ProcessEmployeeMonth
// when the owner is known up front.
func ProcessMonth(year, month int, entries []attendance.RawEntry) ([]attendance.DailyRecord, error) {
	var owner string
	if len(entries) > 0 {
		owner = entries[0].EmployeeRef
	}
	return ProcessEmployeeMonth(owner, year, month, entries)
}

// ProcessEmployeeMonth is ProcessMonth with an explicit owner. Entries outside
// the month are ignored. When two entries share a date the first one wins.
// Any bad time aborts the whole month.
func ProcessEmployeeMonth(employeeRef string, year, month int, entries []attendance.RawEntry) ([]attendance.DailyRecord, error) {
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}

	byDate := make(map[time.Time]attendance.RawEntry, len(entries))
	for _, entry := range entries {
		key := NormalizeDate(entry.Date)
		if _, seen := byDate[key]; seen {
			continue
		}
		byDate[key] = entry
	}

	dates := MonthDates(year, month)
	records := make([]attendance.DailyRecord, 0, len(dates))
	for _, date := range dates {
		record, err := buildRecord(employeeRef, date, byDate)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

func buildRecord(employeeRef string, date time.Time, byDate map[time.Time]attendance.RawEntry) (attendance.DailyRecord, error) {
	record := attendance.DailyRecord{
		EmployeeRef: employeeRef,
		Date:        date,
	}

	entry, ok := byDate[date]
	if !ok {
		if date.Weekday() == time.Sunday {
			record.Status = attendance.StatusWeekend
		} else {
			record.Status = attendance.StatusAbsent
		}
		return record, nil
	}

	worked, err := ComputeWorkedHours(entry.InTime, entry.OutTime)
	if err != nil {
		return attendance.DailyRecord{}, err
	}

	in, out := entry.InTime, entry.OutTime
	record.InTime = &in
	record.OutTime = &out
	record.WorkedHours = worked
	record.Status = attendance.StatusPresent
	return record, nil
}
