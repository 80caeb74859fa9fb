package user

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/boris2442/task-bml/internal/domain/user"
)

const (
	badgePrefix      = "BML-"
	badgeSuffixLen   = 7
	badgeCharset     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	badgeMaxAttempts = 10
)

type userServiceImpl struct {
	userRepo user.UserRepository
}

func NewUserService(userRepo user.UserRepository) user.UserService {
	return &userServiceImpl{
		userRepo: userRepo,
	}
}

func (s *userServiceImpl) CreateUser(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return user.UserResponse{}, user.ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	badgeCode, err := s.generateBadgeCode(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	created, err := s.userRepo.Create(ctx, user.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		BadgeCode:    badgeCode,
		Role:         user.Role(req.Role),
		RegisteredAt: time.Now(),
	})
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("User created", "user_id", created.ID, "badge_code", created.BadgeCode, "role", created.Role)
	return toResponse(created), nil
}

func (s *userServiceImpl) GetUser(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return toResponse(u), nil
}

func (s *userServiceImpl) ListUsers(ctx context.Context, filter user.ListFilter) (user.ListUsersResponse, error) {
	if err := filter.Validate(); err != nil {
		return user.ListUsersResponse{}, err
	}

	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return user.ListUsersResponse{}, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toResponse(u))
	}

	totalPages := int(total) / filter.Limit
	if int(total)%filter.Limit > 0 {
		totalPages++
	}

	return user.ListUsersResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Users:      responses,
	}, nil
}

func (s *userServiceImpl) UpdateUser(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	existing, err := s.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		return user.UserResponse{}, err
	}

	if req.Email != nil && *req.Email != existing.Email {
		if _, err := s.userRepo.GetByEmail(ctx, *req.Email); err == nil {
			return user.UserResponse{}, user.ErrEmailExists
		}
	}

	// Demoting the last admin would lock the system just like deleting them.
	if req.Role != nil && existing.Role == user.RoleAdmin && user.Role(*req.Role) != user.RoleAdmin {
		admins, err := s.userRepo.CountByRole(ctx, user.RoleAdmin)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to count admins: %w", err)
		}
		if admins <= 1 {
			return user.UserResponse{}, user.ErrLastAdmin
		}
	}

	if err := s.userRepo.Update(ctx, req); err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to update user: %w", err)
	}

	updated, err := s.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("User updated", "user_id", updated.ID)
	return toResponse(updated), nil
}

func (s *userServiceImpl) DeleteUser(ctx context.Context, id string) error {
	existing, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if existing.Role == user.RoleAdmin {
		admins, err := s.userRepo.CountByRole(ctx, user.RoleAdmin)
		if err != nil {
			return fmt.Errorf("failed to count admins: %w", err)
		}
		if admins <= 1 {
			return user.ErrLastAdmin
		}
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	slog.Info("User deleted", "user_id", id)
	return nil
}

// generateBadgeCode draws random codes until one is free. The badge space is
// large enough that a collision beyond the first retry is effectively a
// store problem.
func (s *userServiceImpl) generateBadgeCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < badgeMaxAttempts; attempt++ {
		suffix := make([]byte, badgeSuffixLen)
		for i := range suffix {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(len(badgeCharset))))
			if err != nil {
				return "", fmt.Errorf("failed to generate badge code: %w", err)
			}
			suffix[i] = badgeCharset[n.Int64()]
		}
		code := badgePrefix + string(suffix)

		exists, err := s.userRepo.ExistsByBadgeCode(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check badge code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", user.ErrBadgeCodeExists
}

func toResponse(u user.User) user.UserResponse {
	return user.UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		BadgeCode:    u.BadgeCode,
		Role:         string(u.Role),
		RegisteredAt: u.RegisteredAt.Format("2006-01-02"),
		TotalHours:   u.TotalHours,
	}
}
