package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/boris2442/task-bml/internal/domain/user"
	"github.com/boris2442/task-bml/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

// userColumns selects user fields plus the sum of validated hours.
const userColumns = `
	u.id, u.name, u.email, u.password_hash, u.badge_code, u.role,
	u.registered_at, u.created_at, u.updated_at,
	COALESCE(SUM(a.hours_worked) FILTER (WHERE a.status = 'validated'), 0) AS total_hours
`

const userJoin = `
	FROM users u
	LEFT JOIN attendances a ON a.user_id = u.id
`

func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (name, email, password_hash, badge_code, role, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, email, password_hash, badge_code, role,
				  registered_at, created_at, updated_at
	`

	var created user.User
	err := q.QueryRow(ctx, query,
		newUser.Name,
		newUser.Email,
		newUser.PasswordHash,
		newUser.BadgeCode,
		newUser.Role,
		newUser.RegisteredAt,
	).Scan(
		&created.ID,
		&created.Name,
		&created.Email,
		&created.PasswordHash,
		&created.BadgeCode,
		&created.Role,
		&created.RegisteredAt,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}

	return created, nil
}

func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + userJoin + `
		WHERE u.id = $1
		GROUP BY u.id
	`

	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + userJoin + `
		WHERE u.email = $1
		GROUP BY u.id
	`

	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *userRepositoryImpl) ExistsByBadgeCode(ctx context.Context, badgeCode string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE badge_code = $1)`, badgeCode).Scan(&exists)
	return exists, err
}

func (r *userRepositoryImpl) List(ctx context.Context, filter user.ListFilter) ([]user.User, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := ` WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.Search != nil && *filter.Search != "" {
		where += fmt.Sprintf(` AND (u.name ILIKE $%d OR u.email ILIKE $%d OR u.badge_code ILIKE $%d)`, argPos, argPos, argPos)
		args = append(args, "%"+*filter.Search+"%")
		argPos++
	}
	if filter.Role != nil && *filter.Role != "" {
		where += fmt.Sprintf(` AND u.role = $%d`, argPos)
		args = append(args, *filter.Role)
		argPos++
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM users u` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + userColumns + userJoin + where + `
		GROUP BY u.id
		ORDER BY u.name ASC
		LIMIT $` + fmt.Sprint(argPos) + ` OFFSET $` + fmt.Sprint(argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users, err := collectUsers(rows)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepositoryImpl) ListByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + userJoin + `
		WHERE u.role = $1
		GROUP BY u.id
		ORDER BY u.name ASC
	`

	rows, err := q.Query(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectUsers(rows)
}

func (r *userRepositoryImpl) CountByRole(ctx context.Context, role user.Role) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&count)
	return count, err
}

func (r *userRepositoryImpl) Update(ctx context.Context, req user.UpdateUserRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET name = COALESCE($1, name),
			email = COALESCE($2, email),
			role = COALESCE($3, role),
			updated_at = NOW()
		WHERE id = $4
	`

	tag, err := q.Exec(ctx, query, req.Name, req.Email, req.Role, req.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *userRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	var totalHours float64
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.BadgeCode,
		&u.Role,
		&u.RegisteredAt,
		&u.CreatedAt,
		&u.UpdatedAt,
		&totalHours,
	)
	if err != nil {
		return user.User{}, err
	}
	u.TotalHours = &totalHours
	return u, nil
}

func collectUsers(rows pgx.Rows) ([]user.User, error) {
	users := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
