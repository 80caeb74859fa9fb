package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/boris2442/task-bml/internal/domain/user"
	"github.com/boris2442/task-bml/internal/handler/http/response"
)

type UserHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type UserHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &UserHandlerImpl{userService: userService}
}

// Create implements UserHandler.
func (h *UserHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req user.CreateUserRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateUser decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.userService.CreateUser(r.Context(), req)
	if err != nil {
		slog.Error("CreateUser service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "User created", result)
}

// Get implements UserHandler.
func (h *UserHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		slog.Error("GetUser service error", "user_id", id, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements UserHandler.
func (h *UserHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := userFilterFromQuery(r)

	result, err := h.userService.ListUsers(r.Context(), filter)
	if err != nil {
		slog.Error("ListUsers service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Users, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// Update implements UserHandler.
func (h *UserHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateUserRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateUser decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.userService.UpdateUser(r.Context(), req)
	if err != nil {
		slog.Error("UpdateUser service error", "user_id", req.ID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User updated", result)
}

// Delete implements UserHandler.
func (h *UserHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.userService.DeleteUser(r.Context(), id); err != nil {
		slog.Error("DeleteUser service error", "user_id", id, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User deleted", nil)
}
