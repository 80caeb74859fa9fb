package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/boris2442/task-bml/internal/domain/schedule"
	"github.com/boris2442/task-bml/internal/pkg/database"
)

type workScheduleRepositoryImpl struct {
	db *database.DB
}

func NewWorkScheduleRepository(db *database.DB) schedule.WorkScheduleRepository {
	return &workScheduleRepositoryImpl{db: db}
}

func (r *workScheduleRepositoryImpl) GetByUserID(ctx context.Context, userID string) (*schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, hours_per_day, working_weekdays,
			   contract_start, contract_end, created_at, updated_at
		FROM work_schedules
		WHERE user_id = $1
	`

	var ws schedule.WorkSchedule
	err := q.QueryRow(ctx, query, userID).Scan(
		&ws.ID,
		&ws.UserID,
		&ws.HoursPerDay,
		&ws.WorkingWeekdays,
		&ws.ContractStart,
		&ws.ContractEnd,
		&ws.CreatedAt,
		&ws.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &ws, nil
}

func (r *workScheduleRepositoryImpl) Upsert(ctx context.Context, ws schedule.WorkSchedule) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_schedules (user_id, hours_per_day, working_weekdays, contract_start, contract_end)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET hours_per_day = EXCLUDED.hours_per_day,
			working_weekdays = EXCLUDED.working_weekdays,
			contract_start = EXCLUDED.contract_start,
			contract_end = EXCLUDED.contract_end,
			updated_at = NOW()
		RETURNING id, user_id, hours_per_day, working_weekdays,
				  contract_start, contract_end, created_at, updated_at
	`

	var saved schedule.WorkSchedule
	err := q.QueryRow(ctx, query,
		ws.UserID,
		ws.HoursPerDay,
		ws.WorkingWeekdays,
		ws.ContractStart,
		ws.ContractEnd,
	).Scan(
		&saved.ID,
		&saved.UserID,
		&saved.HoursPerDay,
		&saved.WorkingWeekdays,
		&saved.ContractStart,
		&saved.ContractEnd,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	)
	if err != nil {
		return schedule.WorkSchedule{}, err
	}
	return saved, nil
}

func (r *workScheduleRepositoryImpl) Delete(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM work_schedules WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrScheduleNotFound
	}
	return nil
}
