package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/boris2442/task-bml/internal/domain/attendance"
)

func (r *attendanceRepositoryImpl) CreateDocument(ctx context.Context, doc attendance.Document) (attendance.Document, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO documents (attendance_id, file_name, storage_path, mime_type, size_bytes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, attendance_id, file_name, storage_path, mime_type, size_bytes, uploaded_at
	`

	var created attendance.Document
	err := q.QueryRow(ctx, query,
		doc.AttendanceID,
		doc.FileName,
		doc.StoragePath,
		doc.MimeType,
		doc.SizeBytes,
	).Scan(
		&created.ID,
		&created.AttendanceID,
		&created.FileName,
		&created.StoragePath,
		&created.MimeType,
		&created.SizeBytes,
		&created.UploadedAt,
	)
	if err != nil {
		return attendance.Document{}, err
	}
	return created, nil
}

func (r *attendanceRepositoryImpl) GetDocument(ctx context.Context, attendanceID, documentID string) (attendance.Document, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, attendance_id, file_name, storage_path, mime_type, size_bytes, uploaded_at
		FROM documents
		WHERE id = $1 AND attendance_id = $2
	`

	var doc attendance.Document
	err := q.QueryRow(ctx, query, documentID, attendanceID).Scan(
		&doc.ID,
		&doc.AttendanceID,
		&doc.FileName,
		&doc.StoragePath,
		&doc.MimeType,
		&doc.SizeBytes,
		&doc.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Document{}, attendance.ErrDocumentNotFound
		}
		return attendance.Document{}, err
	}
	return doc, nil
}

func (r *attendanceRepositoryImpl) ListDocuments(ctx context.Context, attendanceID string) ([]attendance.Document, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, attendance_id, file_name, storage_path, mime_type, size_bytes, uploaded_at
		FROM documents
		WHERE attendance_id = $1
		ORDER BY uploaded_at ASC
	`

	rows, err := q.Query(ctx, query, attendanceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]attendance.Document, 0)
	for rows.Next() {
		var doc attendance.Document
		if err := rows.Scan(
			&doc.ID,
			&doc.AttendanceID,
			&doc.FileName,
			&doc.StoragePath,
			&doc.MimeType,
			&doc.SizeBytes,
			&doc.UploadedAt,
		); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (r *attendanceRepositoryImpl) DeleteDocument(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrDocumentNotFound
	}
	return nil
}

func (r *attendanceRepositoryImpl) CountDocumentsByUser(ctx context.Context, userID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM documents d
		JOIN attendances a ON a.id = d.attendance_id
		WHERE a.user_id = $1
	`

	var count int64
	err := q.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}
