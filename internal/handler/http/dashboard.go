package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/boris2442/task-bml/internal/domain/stats"
	"github.com/boris2442/task-bml/internal/handler/http/response"
)

type DashboardHandler interface {
	AdminDashboard(w http.ResponseWriter, r *http.Request)
	Reports(w http.ResponseWriter, r *http.Request)
	EmployeeDetail(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	statsService stats.StatsService
}

func NewDashboardHandler(statsService stats.StatsService) DashboardHandler {
	return &DashboardHandlerImpl{statsService: statsService}
}

// AdminDashboard implements DashboardHandler.
func (h *DashboardHandlerImpl) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.statsService.AdminDashboard(r.Context())
	if err != nil {
		slog.Error("AdminDashboard service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, dashboard)
}

// Reports implements DashboardHandler. One compliance row per employee.
func (h *DashboardHandlerImpl) Reports(w http.ResponseWriter, r *http.Request) {
	all, err := h.statsService.AllEmployeeStats(r.Context())
	if err != nil {
		slog.Error("Reports service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, all)
}

// EmployeeDetail implements DashboardHandler.
func (h *DashboardHandlerImpl) EmployeeDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	detail, err := h.statsService.EmployeeDetail(r.Context(), id)
	if err != nil {
		slog.Error("EmployeeDetail service error", "user_id", id, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, detail)
}
