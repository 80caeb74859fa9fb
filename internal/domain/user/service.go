package user

import "context"

// UserService defines account management operations for administrators.
type UserService interface {
	// CreateUser registers a new account and assigns a generated badge code.
	CreateUser(ctx context.Context, req CreateUserRequest) (UserResponse, error)

	// GetUser retrieves a single user with their total validated hours.
	GetUser(ctx context.Context, id string) (UserResponse, error)

	// ListUsers retrieves users with filters, each decorated with total hours.
	ListUsers(ctx context.Context, filter ListFilter) (ListUsersResponse, error)

	// UpdateUser updates name, email or role.
	UpdateUser(ctx context.Context, req UpdateUserRequest) (UserResponse, error)

	// DeleteUser removes an account. Deleting the last admin is rejected.
	DeleteUser(ctx context.Context, id string) error
}
