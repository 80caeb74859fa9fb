package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/boris2442/task-bml/internal/domain/schedule"
	"github.com/boris2442/task-bml/internal/handler/http/response"
)

type ScheduleHandler interface {
	GetUserSchedule(w http.ResponseWriter, r *http.Request)
	UpsertUserSchedule(w http.ResponseWriter, r *http.Request)
	DeleteUserSchedule(w http.ResponseWriter, r *http.Request)
	ListHolidays(w http.ResponseWriter, r *http.Request)
	CreateHoliday(w http.ResponseWriter, r *http.Request)
	DeleteHoliday(w http.ResponseWriter, r *http.Request)
}

type ScheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &ScheduleHandlerImpl{scheduleService: scheduleService}
}

// GetUserSchedule implements ScheduleHandler.
func (h *ScheduleHandlerImpl) GetUserSchedule(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	result, err := h.scheduleService.GetSchedule(r.Context(), userID)
	if err != nil {
		slog.Error("GetUserSchedule service error", "user_id", userID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpsertUserSchedule implements ScheduleHandler.
func (h *ScheduleHandlerImpl) UpsertUserSchedule(w http.ResponseWriter, r *http.Request) {
	var req schedule.UpsertScheduleRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpsertUserSchedule decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = chi.URLParam(r, "id")

	result, err := h.scheduleService.UpsertSchedule(r.Context(), req)
	if err != nil {
		slog.Error("UpsertUserSchedule service error", "user_id", req.UserID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work schedule saved", result)
}

// DeleteUserSchedule implements ScheduleHandler.
func (h *ScheduleHandlerImpl) DeleteUserSchedule(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	if err := h.scheduleService.DeleteSchedule(r.Context(), userID); err != nil {
		slog.Error("DeleteUserSchedule service error", "user_id", userID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work schedule deleted", nil)
}

// ListHolidays implements ScheduleHandler.
func (h *ScheduleHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	result, err := h.scheduleService.ListHolidays(r.Context())
	if err != nil {
		slog.Error("ListHolidays service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateHoliday implements ScheduleHandler.
func (h *ScheduleHandlerImpl) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req schedule.CreateHolidayRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateHoliday decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.scheduleService.CreateHoliday(r.Context(), req)
	if err != nil {
		slog.Error("CreateHoliday service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday created", result)
}

// DeleteHoliday implements ScheduleHandler.
func (h *ScheduleHandlerImpl) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.scheduleService.DeleteHoliday(r.Context(), id); err != nil {
		slog.Error("DeleteHoliday service error", "holiday_id", id, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday deleted", nil)
}
