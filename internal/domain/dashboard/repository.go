package dashboard

import (
	"context"
	"time"
)

// StatusCounts combines present/absent/weekend/holiday counts
type StatusCounts struct {
	Present int64
	Absent  int64
	Weekend int64
	Holiday int64
}

func (s StatusCounts) Total() int64 {
	return s.Present + s.Absent + s.Weekend + s.Holiday
}

// DashboardRepository defines the interface for dashboard data access
type DashboardRepository interface {
	// GetStatusCountsByMonth returns status counts over every employee for a month in single query
	GetStatusCountsByMonth(ctx context.Context, year, month int) (*StatusCounts, error)

	// GetStatusCountsByDay returns status counts over every employee for a day
	GetStatusCountsByDay(ctx context.Context, date time.Time) (*StatusCounts, error)
}
