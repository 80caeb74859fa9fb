package postgresql

import (
	"context"

	"github.com/boris2442/task-bml/internal/domain/approval"
	"github.com/boris2442/task-bml/internal/pkg/database"
)

type approvalRepositoryImpl struct {
	db *database.DB
}

func NewApprovalRepository(db *database.DB) approval.ApprovalRepository {
	return &approvalRepositoryImpl{db: db}
}

func (r *approvalRepositoryImpl) Create(ctx context.Context, a approval.Approval) (approval.Approval, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO approvals (attendance_id, admin_id, type, outcome, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, attendance_id, admin_id, type, outcome, comment, created_at
	`

	var created approval.Approval
	err := q.QueryRow(ctx, query,
		a.AttendanceID,
		a.AdminID,
		a.Type,
		a.Outcome,
		a.Comment,
	).Scan(
		&created.ID,
		&created.AttendanceID,
		&created.AdminID,
		&created.Type,
		&created.Outcome,
		&created.Comment,
		&created.CreatedAt,
	)
	if err != nil {
		return approval.Approval{}, err
	}
	return created, nil
}

func (r *approvalRepositoryImpl) ListByAttendance(ctx context.Context, attendanceID string) ([]approval.Approval, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ap.id, ap.attendance_id, ap.admin_id, ap.type, ap.outcome,
			   ap.comment, ap.created_at, u.name
		FROM approvals ap
		JOIN users u ON u.id = ap.admin_id
		WHERE ap.attendance_id = $1
		ORDER BY ap.created_at ASC
	`

	rows, err := q.Query(ctx, query, attendanceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]approval.Approval, 0)
	for rows.Next() {
		var a approval.Approval
		if err := rows.Scan(
			&a.ID,
			&a.AttendanceID,
			&a.AdminID,
			&a.Type,
			&a.Outcome,
			&a.Comment,
			&a.CreatedAt,
			&a.AdminName,
		); err != nil {
			return nil, err
		}
		entries = append(entries, a)
	}
	return entries, rows.Err()
}
