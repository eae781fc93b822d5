package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DashboardHandler interface {
	// GetDashboard returns company productivity, status counts and ranking
	GetDashboard(w http.ResponseWriter, r *http.Request)
	// GetEmployeeProductivity returns one employee's month
	GetEmployeeProductivity(w http.ResponseWriter, r *http.Request)
	// GetDailyStats returns ledger status counts for a day
	GetDailyStats(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetDashboard handles GET /dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month") // format: YYYY-MM, default: current month

	result, err := h.dashboardService.GetDashboard(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetEmployeeProductivity handles GET /dashboard/employees/{id}
func (h *dashboardHandlerImpl) GetEmployeeProductivity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	month := r.URL.Query().Get("month")

	result, err := h.dashboardService.GetEmployeeProductivity(r.Context(), id, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetDailyStats handles GET /dashboard/daily
func (h *dashboardHandlerImpl) GetDailyStats(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date") // format: YYYY-MM-DD, default: today

	result, err := h.dashboardService.GetDailyStats(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
