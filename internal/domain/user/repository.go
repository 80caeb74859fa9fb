package user

import "context"

type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ExistsByBadgeCode(ctx context.Context, badgeCode string) (bool, error)

	// List retrieves users with search/role filters and pagination.
	List(ctx context.Context, filter ListFilter) ([]User, int64, error)

	// ListByRole retrieves all users with the given role, ordered by name.
	ListByRole(ctx context.Context, role Role) ([]User, error)

	// CountByRole counts users holding the given role. Used to protect the
	// last remaining admin account from deletion.
	CountByRole(ctx context.Context, role Role) (int64, error)

	Update(ctx context.Context, req UpdateUserRequest) error
	Delete(ctx context.Context, id string) error
}
