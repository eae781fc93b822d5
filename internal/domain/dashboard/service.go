package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard returns company productivity, status counts and the employee ranking for a month
	GetDashboard(ctx context.Context, month string) (*DashboardResponse, error)

	// GetEmployeeProductivity returns one employee's productivity for a month
	GetEmployeeProductivity(ctx context.Context, employeeID string, month string) (*EmployeeProductivityResponse, error)

	// GetDailyStats returns ledger status counts for a specific day
	GetDailyStats(ctx context.Context, date string) (*DailyStatsResponse, error)
}
