package user

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/boris2442/task-bml/internal/domain/user"
)

type fakeUserRepo struct {
	user.UserRepository
	byID            map[string]user.User
	byEmail         map[string]user.User
	badgeChecks     int
	badgeCollisions int // first n badge checks report taken
	adminCount      int64
	deleted         []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    map[string]user.User{},
		byEmail: map[string]user.User{},
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	u.ID = "user-" + u.Email
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) ExistsByBadgeCode(ctx context.Context, code string) (bool, error) {
	f.badgeChecks++
	return f.badgeChecks <= f.badgeCollisions, nil
}

func (f *fakeUserRepo) CountByRole(ctx context.Context, role user.Role) (int64, error) {
	if role == user.RoleAdmin {
		return f.adminCount, nil
	}
	return 0, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, req user.UpdateUserRequest) error {
	u, ok := f.byID[req.ID]
	if !ok {
		return user.ErrUserNotFound
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Role != nil {
		u.Role = user.Role(*req.Role)
	}
	f.byID[req.ID] = u
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

var badgePattern = regexp.MustCompile(`^BML-[A-Z0-9]{7}$`)

func TestCreateUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	resp, err := svc.CreateUser(context.Background(), user.CreateUserRequest{
		Name:     "Alice Martin",
		Email:    "alice@example.com",
		Password: "s3cret-password",
		Role:     string(user.RoleEmployee),
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice Martin", resp.Name)
	assert.Equal(t, string(user.RoleEmployee), resp.Role)
	assert.Regexp(t, badgePattern, resp.BadgeCode)
	assert.Equal(t, time.Now().Format("2006-01-02"), resp.RegisteredAt)

	stored := repo.byEmail["alice@example.com"]
	assert.NotEqual(t, "s3cret-password", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-password")))
}

func TestCreateUser_EmailExists(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	req := user.CreateUserRequest{
		Name:     "Alice Martin",
		Email:    "alice@example.com",
		Password: "s3cret-password",
		Role:     string(user.RoleEmployee),
	}
	_, err := svc.CreateUser(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), req)
	assert.ErrorIs(t, err, user.ErrEmailExists)
}

func TestCreateUser_Validation(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	cases := []user.CreateUserRequest{
		{Name: "", Email: "a@example.com", Password: "s3cret-password", Role: "employee"},
		{Name: "Alice", Email: "not-an-email", Password: "s3cret-password", Role: "employee"},
		{Name: "Alice", Email: "a@example.com", Password: "short", Role: "employee"},
		{Name: "Alice", Email: "a@example.com", Password: "s3cret-password", Role: "superuser"},
	}
	for _, req := range cases {
		_, err := svc.CreateUser(context.Background(), req)
		assert.Error(t, err)
	}
}

func TestCreateUser_BadgeCollisionRetries(t *testing.T) {
	repo := newFakeUserRepo()
	// First two draws collide, the third is free.
	repo.badgeCollisions = 2
	svc := NewUserService(repo)

	resp, err := svc.CreateUser(context.Background(), user.CreateUserRequest{
		Name:     "Alice Martin",
		Email:    "alice@example.com",
		Password: "s3cret-password",
		Role:     string(user.RoleEmployee),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, repo.badgeChecks)
	assert.Regexp(t, badgePattern, resp.BadgeCode)
}

func TestUpdateUser_LastAdminDemotion(t *testing.T) {
	repo := newFakeUserRepo()
	repo.byID["admin-1"] = user.User{ID: "admin-1", Name: "Root", Email: "root@example.com", Role: user.RoleAdmin}
	repo.adminCount = 1
	svc := NewUserService(repo)

	role := string(user.RoleEmployee)
	_, err := svc.UpdateUser(context.Background(), user.UpdateUserRequest{ID: "admin-1", Role: &role})
	assert.ErrorIs(t, err, user.ErrLastAdmin)
	assert.Equal(t, user.RoleAdmin, repo.byID["admin-1"].Role)
}

func TestUpdateUser_DemotionAllowedWithAnotherAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	repo.byID["admin-1"] = user.User{ID: "admin-1", Name: "Root", Email: "root@example.com", Role: user.RoleAdmin}
	repo.adminCount = 2
	svc := NewUserService(repo)

	role := string(user.RoleEmployee)
	resp, err := svc.UpdateUser(context.Background(), user.UpdateUserRequest{ID: "admin-1", Role: &role})
	require.NoError(t, err)
	assert.Equal(t, string(user.RoleEmployee), resp.Role)
}

func TestUpdateUser_EmailConflict(t *testing.T) {
	repo := newFakeUserRepo()
	repo.byID["u1"] = user.User{ID: "u1", Name: "Alice", Email: "alice@example.com", Role: user.RoleEmployee}
	repo.byEmail["bob@example.com"] = user.User{ID: "u2", Email: "bob@example.com"}
	svc := NewUserService(repo)

	email := "bob@example.com"
	_, err := svc.UpdateUser(context.Background(), user.UpdateUserRequest{ID: "u1", Email: &email})
	assert.ErrorIs(t, err, user.ErrEmailExists)
}

func TestDeleteUser_LastAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	repo.byID["admin-1"] = user.User{ID: "admin-1", Role: user.RoleAdmin}
	repo.adminCount = 1
	svc := NewUserService(repo)

	err := svc.DeleteUser(context.Background(), "admin-1")
	assert.ErrorIs(t, err, user.ErrLastAdmin)
	assert.Empty(t, repo.deleted)
}

func TestDeleteUser(t *testing.T) {
	repo := newFakeUserRepo()
	repo.byID["admin-1"] = user.User{ID: "admin-1", Role: user.RoleAdmin}
	repo.byID["u1"] = user.User{ID: "u1", Role: user.RoleEmployee}
	repo.adminCount = 1
	svc := NewUserService(repo)

	require.NoError(t, svc.DeleteUser(context.Background(), "u1"))
	assert.Equal(t, []string{"u1"}, repo.deleted)

	err := svc.DeleteUser(context.Background(), "missing")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
