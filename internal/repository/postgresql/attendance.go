package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/boris2442/task-bml/internal/domain/attendance"
	"github.com/boris2442/task-bml/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `
	a.id, a.user_id, a.date, a.arrival_at, a.departure_at, a.description,
	a.status, a.hours_worked, a.hours_overtime, a.created_at, a.updated_at,
	u.name, u.badge_code
`

const attendanceJoin = `
	FROM attendances a
	JOIN users u ON u.id = a.user_id
`

func (r *attendanceRepositoryImpl) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (user_id, date, arrival_at, description, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, date, arrival_at, departure_at, description,
				  status, hours_worked, hours_overtime, created_at, updated_at
	`

	var created attendance.Attendance
	err := q.QueryRow(ctx, query,
		att.UserID,
		att.Date,
		att.ArrivalAt,
		att.Description,
		att.Status,
	).Scan(
		&created.ID,
		&created.UserID,
		&created.Date,
		&created.ArrivalAt,
		&created.DepartureAt,
		&created.Description,
		&created.Status,
		&created.HoursWorked,
		&created.HoursOvertime,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	return created, nil
}

func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + attendanceJoin + ` WHERE a.id = $1`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	return att, nil
}

func (r *attendanceRepositoryImpl) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + attendanceJoin + `
		WHERE a.user_id = $1 AND a.date = $2
		ORDER BY a.created_at DESC
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &att, nil
}

func (r *attendanceRepositoryImpl) GetOpenForUserOnDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + attendanceJoin + `
		WHERE a.user_id = $1 AND a.date = $2
		  AND a.status = ANY($3)
		  AND a.departure_at IS NULL
		LIMIT 1
	`

	open := []string{}
	for _, s := range attendance.OpenStatuses() {
		open = append(open, string(s))
	}

	att, err := scanAttendance(q.QueryRow(ctx, query, userID, date, open))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &att, nil
}

func (r *attendanceRepositoryImpl) ListByUserInRange(ctx context.Context, userID string, start, end time.Time, status *attendance.Status) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + attendanceJoin + `
		WHERE a.user_id = $1 AND a.date BETWEEN $2 AND $3
	`
	args := []interface{}{userID, start, end}
	if status != nil {
		query += ` AND a.status = $4`
		args = append(args, *status)
	}
	query += ` ORDER BY a.date ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAttendances(rows)
}

func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := ` WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.UserID != nil && *filter.UserID != "" {
		where += fmt.Sprintf(` AND a.user_id = $%d`, argPos)
		args = append(args, *filter.UserID)
		argPos++
	}
	if filter.Date != nil && *filter.Date != "" {
		where += fmt.Sprintf(` AND a.date = $%d`, argPos)
		args = append(args, *filter.Date)
		argPos++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		where += fmt.Sprintf(` AND a.date >= $%d`, argPos)
		args = append(args, *filter.StartDate)
		argPos++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		where += fmt.Sprintf(` AND a.date <= $%d`, argPos)
		args = append(args, *filter.EndDate)
		argPos++
	}
	if filter.Status != nil && *filter.Status != "" {
		where += fmt.Sprintf(` AND a.status = $%d`, argPos)
		args = append(args, *filter.Status)
		argPos++
	} else if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		where += fmt.Sprintf(` AND a.status = ANY($%d)`, argPos)
		args = append(args, statuses)
		argPos++
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendances a` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + attendanceColumns + attendanceJoin + where + `
		ORDER BY a.date DESC, a.created_at DESC
		LIMIT $` + fmt.Sprint(argPos) + ` OFFSET $` + fmt.Sprint(argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	records, err := collectAttendances(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *attendanceRepositoryImpl) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET departure_at = $1, description = $2, status = $3,
			hours_worked = $4, hours_overtime = $5, updated_at = NOW()
		WHERE id = $6
	`

	tag, err := q.Exec(ctx, query,
		att.DepartureAt,
		att.Description,
		att.Status,
		att.HoursWorked,
		att.HoursOvertime,
		att.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// UpdateStatusIf is the compare-and-swap transition guard: the status only
// changes when the row is still in the expected state.
func (r *attendanceRepositoryImpl) UpdateStatusIf(ctx context.Context, id string, from, to attendance.Status) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`

	tag, err := q.Exec(ctx, query, to, id, from)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *attendanceRepositoryImpl) CountByStatus(ctx context.Context, statuses []attendance.Status) (int64, error) {
	q := GetQuerier(ctx, r.db)

	list := make([]string, 0, len(statuses))
	for _, s := range statuses {
		list = append(list, string(s))
	}

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendances WHERE status = ANY($1)`, list).Scan(&count)
	return count, err
}

func (r *attendanceRepositoryImpl) CountOnDate(ctx context.Context, date time.Time, status *attendance.Status) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT COUNT(*) FROM attendances WHERE date = $1`
	args := []interface{}{date}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}

	var count int64
	err := q.QueryRow(ctx, query, args...).Scan(&count)
	return count, err
}

func (r *attendanceRepositoryImpl) Count(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendances`).Scan(&count)
	return count, err
}

func (r *attendanceRepositoryImpl) SumValidatedHoursOnDate(ctx context.Context, date time.Time) (float64, error) {
	q := GetQuerier(ctx, r.db)

	var sum float64
	err := q.QueryRow(ctx,
		`SELECT COALESCE(SUM(hours_worked), 0) FROM attendances WHERE date = $1 AND status = 'validated'`,
		date,
	).Scan(&sum)
	return sum, err
}

func (r *attendanceRepositoryImpl) ListRecentOvertime(ctx context.Context, limit int) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + attendanceJoin + `
		WHERE a.status = 'validated' AND a.hours_overtime > 0
		ORDER BY a.date DESC, a.created_at DESC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAttendances(rows)
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID,
		&att.UserID,
		&att.Date,
		&att.ArrivalAt,
		&att.DepartureAt,
		&att.Description,
		&att.Status,
		&att.HoursWorked,
		&att.HoursOvertime,
		&att.CreatedAt,
		&att.UpdatedAt,
		&att.UserName,
		&att.UserBadgeCode,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	return att, nil
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, att)
	}
	return records, rows.Err()
}
