package postgresql

import (
	"context"
	"time"

	"github.com/boris2442/task-bml/internal/domain/schedule"
	"github.com/boris2442/task-bml/internal/pkg/database"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) schedule.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

func (r *holidayRepositoryImpl) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM holidays WHERE date = $1)`, date).Scan(&exists)
	return exists, err
}

func (r *holidayRepositoryImpl) List(ctx context.Context) ([]schedule.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, date, name, description, created_at, updated_at
		FROM holidays
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holidays := make([]schedule.Holiday, 0)
	for rows.Next() {
		var h schedule.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.Description, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

func (r *holidayRepositoryImpl) Count(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM holidays`).Scan(&count)
	return count, err
}

func (r *holidayRepositoryImpl) Create(ctx context.Context, h schedule.Holiday) (schedule.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (date, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, date, name, description, created_at, updated_at
	`

	var created schedule.Holiday
	err := q.QueryRow(ctx, query, h.Date, h.Name, h.Description).Scan(
		&created.ID,
		&created.Date,
		&created.Name,
		&created.Description,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return schedule.Holiday{}, err
	}
	return created, nil
}

func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrHolidayNotFound
	}
	return nil
}
