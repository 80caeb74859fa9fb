package user

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailExists     = errors.New("email already registered")
	ErrBadgeCodeExists = errors.New("badge code already assigned")
	ErrLastAdmin       = errors.New("cannot delete the last administrator account")
	ErrAdminRequired   = errors.New("admin privilege required")
	ErrInvalidRole     = errors.New("role must be admin or employee")
)
