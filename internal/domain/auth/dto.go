package auth

import (
	"github.com/boris2442/task-bml/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "a valid email is required",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TokenPair struct {
	AccessToken      string `json:"access_token"`
	AccessExpiresAt  int64  `json:"access_expires_at"`
	RefreshToken     string `json:"-"`
	RefreshExpiresAt int64  `json:"-"`
}

type LoginResponse struct {
	TokenPair
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	BadgeCode string `json:"badge_code"`
}
