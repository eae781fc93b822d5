package dashboard

// ========== COMBINED DASHBOARD ==========

// DashboardResponse is the combined response for the main dashboard endpoint
type DashboardResponse struct {
	Month        string                     `json:"month"` // Format: "YYYY-MM"
	Company      ProductivitySummary        `json:"company"`
	StatusCounts StatusCountsResponse       `json:"status_counts"`
	Employees    []EmployeeProductivityItem `json:"employees"` // Ranked by productivity, highest first
}

// ========== PRODUCTIVITY ==========

// ProductivitySummary carries actual vs expected hours for a period
type ProductivitySummary struct {
	ActualHours            float64 `json:"actual_hours"`
	ExpectedHours          float64 `json:"expected_hours"`
	ProductivityPercentage float64 `json:"productivity_percentage"`
}

// EmployeeProductivityItem is one row of the ranking
type EmployeeProductivityItem struct {
	Rank         int    `json:"rank"`
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	EmployeeName string `json:"employee_name"`
	PresentDays  int64  `json:"present_days"`
	AbsentDays   int64  `json:"absent_days"`
	ProductivitySummary
}

// EmployeeProductivityResponse is a single employee's month
type EmployeeProductivityResponse struct {
	EmployeeID   string               `json:"employee_id"`
	EmployeeCode string               `json:"employee_code"`
	EmployeeName string               `json:"employee_name"`
	Month        string               `json:"month"` // Format: "YYYY-MM"
	Summary      ProductivitySummary  `json:"summary"`
	StatusCounts StatusCountsResponse `json:"status_counts"`
}

// ========== STATUS COUNTS ==========

// StatusCountsResponse counts ledger days per status
type StatusCountsResponse struct {
	Present int64 `json:"present"`
	Absent  int64 `json:"absent"`
	Weekend int64 `json:"weekend"`
	Holiday int64 `json:"holiday"`
	Total   int64 `json:"total"`
}

// ========== DAILY STATS (pie chart) ==========

// DailyStatsResponse represents attendance statistics for a specific day
type DailyStatsResponse struct {
	StatusCountsResponse
	PresentPercent float64 `json:"present_percent"`
	AbsentPercent  float64 `json:"absent_percent"`
	WeekendPercent float64 `json:"weekend_percent"`
	ExpectedHours  float64 `json:"expected_hours"` // Per employee for that date
	Date           string  `json:"date"`           // Format: "YYYY-MM-DD"
}
