package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/service/ledger"
)

// GetEmployeeLedger implements attendance.LedgerService.
func (s *AttendanceServiceImpl) GetEmployeeLedger(ctx context.Context, filter attendance.LedgerFilter) (attendance.LedgerResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.LedgerResponse{}, err
	}
	year, month := resolveMonth(filter.Month, s.now())

	emp, err := s.EmployeeRepository.GetByID(ctx, filter.EmployeeID)
	if err != nil {
		return attendance.LedgerResponse{}, err
	}

	records, err := s.DailyRecordRepository.ListByEmployeeAndMonth(ctx, emp.ID, year, month)
	if err != nil {
		return attendance.LedgerResponse{}, fmt.Errorf("failed to list ledger records: %w", err)
	}
	if len(records) == 0 {
		return attendance.LedgerResponse{}, attendance.ErrLedgerNotFound
	}

	metrics, err := ledger.Aggregate(records)
	if err != nil {
		return attendance.LedgerResponse{}, err
	}

	items := make([]attendance.DailyRecordResponse, 0, len(records))
	for _, record := range records {
		item, err := mapRecordToResponse(record)
		if err != nil {
			return attendance.LedgerResponse{}, err
		}
		items = append(items, item)
	}

	return attendance.LedgerResponse{
		EmployeeID:   emp.ID,
		EmployeeCode: emp.EmployeeCode,
		EmployeeName: emp.FullName,
		Month:        formatMonth(year, month),
		Summary:      mapMetricsToResponse(metrics),
		Records:      items,
	}, nil
}

func mapRecordToResponse(record attendance.DailyRecord) (attendance.DailyRecordResponse, error) {
	expected, err := ledger.ExpectedHoursForDate(record.Date)
	if err != nil {
		return attendance.DailyRecordResponse{}, err
	}

	return attendance.DailyRecordResponse{
		Date:          record.Date.Format(time.DateOnly),
		DayOfWeek:     record.Date.Weekday().String(),
		InTime:        record.InTime,
		OutTime:       record.OutTime,
		WorkedHours:   record.WorkedHours.InexactFloat64(),
		ExpectedHours: expected.InexactFloat64(),
		Status:        string(record.Status),
	}, nil
}

func mapMetricsToResponse(metrics attendance.ProductivityMetrics) attendance.ProductivityResponse {
	return attendance.ProductivityResponse{
		ActualHours:            metrics.ActualHours.InexactFloat64(),
		ExpectedHours:          metrics.ExpectedHours.InexactFloat64(),
		ProductivityPercentage: metrics.ProductivityPercentage.InexactFloat64(),
	}
}
