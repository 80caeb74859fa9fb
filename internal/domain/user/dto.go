package user

import (
	"github.com/boris2442/task-bml/internal/pkg/validator"
)

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "a valid email is required",
		})
	}

	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if !validator.IsInSlice(r.Role, []string{string(RoleAdmin), string(RoleEmployee)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: admin, employee",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateUserRequest struct {
	ID    string  `json:"-"`
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Role  *string `json:"role,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name cannot be empty",
		})
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "a valid email is required",
		})
	}

	if r.Role != nil && !validator.IsInSlice(*r.Role, []string{string(RoleAdmin), string(RoleEmployee)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: admin, employee",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListFilter struct {
	// Search matches name, email or badge code.
	Search *string `json:"search,omitempty"`
	Role   *string `json:"role,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 15
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Role != nil && !validator.IsInSlice(*f.Role, []string{string(RoleAdmin), string(RoleEmployee)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: admin, employee",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UserResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	BadgeCode    string   `json:"badge_code"`
	Role         string   `json:"role"`
	RegisteredAt string   `json:"registered_at"`
	TotalHours   *float64 `json:"total_hours,omitempty"`
}

type ListUsersResponse struct {
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
	Users      []UserResponse `json:"users"`
}
