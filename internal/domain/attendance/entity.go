package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status classifies one calendar day of the ledger.
type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusAbsent  Status = "ABSENT"
	StatusWeekend Status = "WEEKEND"
	// StatusHoliday is accepted by storage but never produced by the current rules.
	StatusHoliday Status = "HOLIDAY"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusWeekend, StatusHoliday:
		return true
	}
	return false
}

// RawEntry is one observed check-in/check-out as read from an upload.
type RawEntry struct {
	EmployeeRef string
	Date        time.Time
	InTime      string
	OutTime     string
}

// DailyRecord is one employee-day of the dense monthly ledger.
type DailyRecord struct {
	ID            string
	EmployeeRef   string
	Date          time.Time
	InTime        *string
	OutTime       *string
	WorkedHours   decimal.Decimal
	Status        Status
	ImportBatchID *string
	CreatedAt     time.Time

	// DTO
	EmployeeCode *string
	EmployeeName *string
}

type ProductivityMetrics struct {
	ActualHours            decimal.Decimal
	ExpectedHours          decimal.Decimal
	ProductivityPercentage decimal.Decimal
}

// ImportBatch records a single processed upload.
type ImportBatch struct {
	ID            string
	Filename      string
	ArchivePath   string
	PeriodYear    int
	PeriodMonth   int
	EmployeeCount int
	RecordCount   int
	CreatedAt     time.Time
}
