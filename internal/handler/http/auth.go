package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/boris2442/task-bml/internal/domain/auth"
	"github.com/boris2442/task-bml/internal/handler/http/response"
	"github.com/boris2442/task-bml/internal/pkg/jwt"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
	jwtService  jwt.Service
}

func NewAuthHandler(authService auth.AuthService, jwtService jwt.Service) AuthHandler {
	return &AuthHandlerImpl{
		authService: authService,
		jwtService:  jwtService,
	}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := loginReq.Validate(); err != nil {
		slog.Error("Login validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	result, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(result.RefreshToken, result.RefreshExpiresAt))
	response.SuccessWithMessage(w, "Logged in successfully", result)
}

// RefreshToken implements AuthHandler.
func (a *AuthHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		response.Unauthorized(w, "Refresh token missing")
		return
	}

	pair, err := a.authService.Refresh(r.Context(), cookie.Value)
	if err != nil {
		slog.Error("RefreshToken service error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(pair.RefreshToken, pair.RefreshExpiresAt))
	response.Success(w, pair)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("refresh_token"); err == nil {
		if err := a.authService.Logout(r.Context(), cookie.Value); err != nil {
			slog.Error("Logout service error", "error", err)
		}
	}

	// Expire the cookie client-side regardless
	http.SetCookie(w, a.jwtService.RefreshTokenCookie("", 0))
	response.SuccessWithMessage(w, "Logged out successfully", nil)
}
