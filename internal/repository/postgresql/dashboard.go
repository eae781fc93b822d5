package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db database.Querier
}

func NewDashboardRepository(db database.Querier) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

const statusCountColumns = `
	COALESCE(SUM(CASE WHEN status = 'PRESENT' THEN 1 ELSE 0 END), 0) as present_count,
	COALESCE(SUM(CASE WHEN status = 'ABSENT' THEN 1 ELSE 0 END), 0) as absent_count,
	COALESCE(SUM(CASE WHEN status = 'WEEKEND' THEN 1 ELSE 0 END), 0) as weekend_count,
	COALESCE(SUM(CASE WHEN status = 'HOLIDAY' THEN 1 ELSE 0 END), 0) as holiday_count
`

// GetStatusCountsByMonth returns status counts for a month in single query
func (r *dashboardRepositoryImpl) GetStatusCountsByMonth(ctx context.Context, year, month int) (*dashboard.StatusCounts, error) {
	q := GetQuerier(ctx, r.db)

	start, end := monthRange(year, month)
	query := `SELECT ` + statusCountColumns + `
		FROM daily_attendance_records
		WHERE date >= $1 AND date < $2
	`

	var stats dashboard.StatusCounts
	err := q.QueryRow(ctx, query, start, end).Scan(
		&stats.Present, &stats.Absent, &stats.Weekend, &stats.Holiday,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly status counts: %w", err)
	}
	return &stats, nil
}

// GetStatusCountsByDay returns status counts for a day
func (r *dashboardRepositoryImpl) GetStatusCountsByDay(ctx context.Context, date time.Time) (*dashboard.StatusCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + statusCountColumns + `
		FROM daily_attendance_records
		WHERE date = $1
	`

	var stats dashboard.StatusCounts
	err := q.QueryRow(ctx, query, date).Scan(
		&stats.Present, &stats.Absent, &stats.Weekend, &stats.Holiday,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily status counts: %w", err)
	}
	return &stats, nil
}
