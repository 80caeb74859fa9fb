package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/boris2442/task-bml/internal/domain/stats"
	"github.com/boris2442/task-bml/internal/handler/http/response"
)

type EmployeeDashboardHandler interface {
	Dashboard(w http.ResponseWriter, r *http.Request)
}

type EmployeeDashboardHandlerImpl struct {
	statsService stats.StatsService
}

func NewEmployeeDashboardHandler(statsService stats.StatsService) EmployeeDashboardHandler {
	return &EmployeeDashboardHandlerImpl{statsService: statsService}
}

// Dashboard implements EmployeeDashboardHandler.
func (h *EmployeeDashboardHandlerImpl) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	dashboard, err := h.statsService.EmployeeDashboard(r.Context(), userID)
	if err != nil {
		slog.Error("EmployeeDashboard service error", "user_id", userID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, dashboard)
}

func requestUserID(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id not found in token")
	}
	return userID, nil
}
