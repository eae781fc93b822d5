package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-attendance-go/internal/service/ledger"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	recordRepo   attendance.DailyRecordRepository
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewDashboardService(
	repo dashboard.DashboardRepository,
	recordRepo attendance.DailyRecordRepository,
	employeeRepo employee.EmployeeRepository,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		recordRepo:          recordRepo,
		employeeRepo:        employeeRepo,
		now:                 time.Now,
	}
}

// parseMonth parses YYYY-MM format, defaults to current month
func (s *DashboardServiceImpl) parseMonth(month string) (int, int, error) {
	if month == "" {
		now := s.now()
		return now.Year(), int(now.Month()), nil
	}

	parsed, ok := validator.IsValidMonth(month)
	if !ok {
		return 0, 0, validator.ValidationErrors{{Field: "month", Message: dashboard.ErrInvalidMonth.Error()}}
	}
	return parsed.Year(), int(parsed.Month()), nil
}

// parseDate parses YYYY-MM-DD format, defaults to today
func (s *DashboardServiceImpl) parseDate(date string) (time.Time, error) {
	if date == "" {
		return ledger.NormalizeDate(s.now()), nil
	}

	parsed, ok := validator.IsValidDate(date)
	if !ok {
		return time.Time{}, validator.ValidationErrors{{Field: "date", Message: dashboard.ErrInvalidDate.Error()}}
	}
	return parsed, nil
}

// GetDashboard returns company productivity, status counts and the ranking.
// The month's records are read once and the three parts are built in parallel.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, month string) (*dashboard.DashboardResponse, error) {
	year, m, err := s.parseMonth(month)
	if err != nil {
		return nil, err
	}

	records, err := s.recordRepo.ListByMonth(ctx, year, m)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger records: %w", err)
	}

	var (
		company      dashboard.ProductivitySummary
		statusCounts dashboard.StatusCountsResponse
		ranking      []dashboard.EmployeeProductivityItem
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Company-wide productivity
	g.Go(func() error {
		if len(records) == 0 {
			return nil
		}
		metrics, err := ledger.Aggregate(records)
		if err != nil {
			return err
		}
		company = toSummary(metrics)
		return nil
	})

	// 2. Status counts (1 query)
	g.Go(func() error {
		counts, err := s.GetStatusCountsByMonth(gCtx, year, m)
		if err != nil {
			return err
		}
		statusCounts = toStatusCountsResponse(counts)
		return nil
	})

	// 3. Per-employee ranking
	g.Go(func() error {
		items, err := rankEmployees(records)
		if err != nil {
			return err
		}
		ranking = items
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dashboard.DashboardResponse{
		Month:        formatMonth(year, m),
		Company:      company,
		StatusCounts: statusCounts,
		Employees:    ranking,
	}, nil
}

// GetEmployeeProductivity returns one employee's productivity for a month
func (s *DashboardServiceImpl) GetEmployeeProductivity(ctx context.Context, employeeID string, month string) (*dashboard.EmployeeProductivityResponse, error) {
	if !validator.IsValidUUID(employeeID) {
		return nil, validator.ValidationErrors{{Field: "employee_id", Message: "employee_id must be a valid UUID"}}
	}
	year, m, err := s.parseMonth(month)
	if err != nil {
		return nil, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	records, err := s.recordRepo.ListByEmployeeAndMonth(ctx, emp.ID, year, m)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger records: %w", err)
	}
	if len(records) == 0 {
		return nil, attendance.ErrLedgerNotFound
	}

	metrics, err := ledger.Aggregate(records)
	if err != nil {
		return nil, err
	}

	return &dashboard.EmployeeProductivityResponse{
		EmployeeID:   emp.ID,
		EmployeeCode: emp.EmployeeCode,
		EmployeeName: emp.FullName,
		Month:        formatMonth(year, m),
		Summary:      toSummary(metrics),
		StatusCounts: toStatusCountsResponse(countStatuses(records)),
	}, nil
}

// GetDailyStats returns ledger status counts with percentages for a specific day (1 query)
func (s *DashboardServiceImpl) GetDailyStats(ctx context.Context, date string) (*dashboard.DailyStatsResponse, error) {
	d, err := s.parseDate(date)
	if err != nil {
		return nil, err
	}

	expected, err := ledger.ExpectedHoursForDate(d)
	if err != nil {
		return nil, err
	}

	stats, err := s.GetStatusCountsByDay(ctx, d)
	if err != nil {
		return nil, err
	}

	total := stats.Total()
	var presentPercent, absentPercent, weekendPercent float64
	if total > 0 {
		presentPercent = float64(stats.Present) / float64(total) * 100
		absentPercent = float64(stats.Absent) / float64(total) * 100
		weekendPercent = float64(stats.Weekend) / float64(total) * 100
	}

	return &dashboard.DailyStatsResponse{
		StatusCountsResponse: toStatusCountsResponse(stats),
		PresentPercent:       presentPercent,
		AbsentPercent:        absentPercent,
		WeekendPercent:       weekendPercent,
		ExpectedHours:        expected.InexactFloat64(),
		Date:                 d.Format("2006-01-02"),
	}, nil
}

// rankEmployees orders employees by productivity, highest first, ties by code.
func rankEmployees(records []attendance.DailyRecord) ([]dashboard.EmployeeProductivityItem, error) {
	var order []string
	byEmployee := make(map[string][]attendance.DailyRecord)
	for _, record := range records {
		if _, ok := byEmployee[record.EmployeeRef]; !ok {
			order = append(order, record.EmployeeRef)
		}
		byEmployee[record.EmployeeRef] = append(byEmployee[record.EmployeeRef], record)
	}

	items := make([]dashboard.EmployeeProductivityItem, 0, len(order))
	for _, id := range order {
		employeeRecords := byEmployee[id]
		metrics, err := ledger.Aggregate(employeeRecords)
		if err != nil {
			return nil, err
		}
		counts := countStatuses(employeeRecords)
		first := employeeRecords[0]
		items = append(items, dashboard.EmployeeProductivityItem{
			EmployeeID:          id,
			EmployeeCode:        deref(first.EmployeeCode),
			EmployeeName:        deref(first.EmployeeName),
			PresentDays:         counts.Present,
			AbsentDays:          counts.Absent,
			ProductivitySummary: toSummary(metrics),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].ProductivityPercentage != items[j].ProductivityPercentage {
			return items[i].ProductivityPercentage > items[j].ProductivityPercentage
		}
		return items[i].EmployeeCode < items[j].EmployeeCode
	})
	for i := range items {
		items[i].Rank = i + 1
	}
	return items, nil
}

func countStatuses(records []attendance.DailyRecord) *dashboard.StatusCounts {
	counts := &dashboard.StatusCounts{}
	for _, record := range records {
		switch record.Status {
		case attendance.StatusPresent:
			counts.Present++
		case attendance.StatusAbsent:
			counts.Absent++
		case attendance.StatusWeekend:
			counts.Weekend++
		case attendance.StatusHoliday:
			counts.Holiday++
		}
	}
	return counts
}

func toSummary(metrics attendance.ProductivityMetrics) dashboard.ProductivitySummary {
	return dashboard.ProductivitySummary{
		ActualHours:            metrics.ActualHours.InexactFloat64(),
		ExpectedHours:          metrics.ExpectedHours.InexactFloat64(),
		ProductivityPercentage: metrics.ProductivityPercentage.InexactFloat64(),
	}
}

func toStatusCountsResponse(counts *dashboard.StatusCounts) dashboard.StatusCountsResponse {
	return dashboard.StatusCountsResponse{
		Present: counts.Present,
		Absent:  counts.Absent,
		Weekend: counts.Weekend,
		Holiday: counts.Holiday,
		Total:   counts.Total(),
	}
}

func formatMonth(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
