package middleware

import (
	"net/http"

	"github.com/boris2442/task-bml/internal/domain/auth"
	"github.com/boris2442/task-bml/internal/domain/user"
	"github.com/boris2442/task-bml/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || user.Role(role) != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
