package postgresql

import (
	"context"
	"time"

	"github.com/boris2442/task-bml/internal/domain/alert"
	"github.com/boris2442/task-bml/internal/pkg/database"
)

type workAlertRepositoryImpl struct {
	db *database.DB
}

func NewWorkAlertRepository(db *database.DB) alert.WorkAlertRepository {
	return &workAlertRepositoryImpl{db: db}
}

func (r *workAlertRepositoryImpl) Create(ctx context.Context, a alert.WorkAlert) (alert.WorkAlert, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_alerts (user_id, type, message, expected_hours, actual_hours,
								 percentage, period_start, period_end)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, user_id, type, message, expected_hours, actual_hours,
				  percentage, period_start, period_end, notified, notified_at,
				  created_at, updated_at
	`

	var created alert.WorkAlert
	err := q.QueryRow(ctx, query,
		a.UserID,
		a.Type,
		a.Message,
		a.ExpectedHours,
		a.ActualHours,
		a.Percentage,
		a.PeriodStart,
		a.PeriodEnd,
	).Scan(
		&created.ID,
		&created.UserID,
		&created.Type,
		&created.Message,
		&created.ExpectedHours,
		&created.ActualHours,
		&created.Percentage,
		&created.PeriodStart,
		&created.PeriodEnd,
		&created.Notified,
		&created.NotifiedAt,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return alert.WorkAlert{}, err
	}
	return created, nil
}

func (r *workAlertRepositoryImpl) ExistsForUserAndPeriod(ctx context.Context, userID, alertType string, periodStart, periodEnd time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM work_alerts
			WHERE user_id = $1 AND type = $2 AND period_start = $3 AND period_end = $4
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, userID, alertType, periodStart, periodEnd).Scan(&exists)
	return exists, err
}

func (r *workAlertRepositoryImpl) ListUnnotified(ctx context.Context) ([]alert.WorkAlert, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, type, message, expected_hours, actual_hours,
			   percentage, period_start, period_end, notified, notified_at,
			   created_at, updated_at
		FROM work_alerts
		WHERE notified = FALSE
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	alerts := make([]alert.WorkAlert, 0)
	for rows.Next() {
		var a alert.WorkAlert
		if err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.Type,
			&a.Message,
			&a.ExpectedHours,
			&a.ActualHours,
			&a.Percentage,
			&a.PeriodStart,
			&a.PeriodEnd,
			&a.Notified,
			&a.NotifiedAt,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func (r *workAlertRepositoryImpl) MarkNotified(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`UPDATE work_alerts SET notified = TRUE, notified_at = NOW(), updated_at = NOW() WHERE id = $1`,
		id,
	)
	return err
}
