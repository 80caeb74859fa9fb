package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/boris2442/task-bml/internal/domain/attendance"
	"github.com/boris2442/task-bml/internal/service/file"
	"github.com/boris2442/task-bml/internal/service/workhours"
)

type attendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	documents      *file.DocumentStore
	tx             attendance.TxRunner
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository, documents *file.DocumentStore, tx attendance.TxRunner) attendance.AttendanceService {
	return &attendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		documents:      documents,
		tx:             tx,
	}
}

func (s *attendanceServiceImpl) SubmitArrival(ctx context.Context, req attendance.ArrivalRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := time.Now()
	today := workhours.DateOnly(now)

	existing, err := s.attendanceRepo.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check today's record: %w", err)
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyReportedToday
	}

	created, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
		UserID:      userID,
		Date:        today,
		ArrivalAt:   now,
		Description: req.Description,
		Status:      attendance.StatusArrivalPending,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	slog.Info("Arrival submitted", "user_id", userID, "attendance_id", created.ID)
	return toResponse(created), nil
}

func (s *attendanceServiceImpl) SubmitDeparture(ctx context.Context, req attendance.DepartureRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := time.Now()
	today := workhours.DateOnly(now)

	open, err := s.attendanceRepo.GetOpenForUserOnDate(ctx, userID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to find open record: %w", err)
	}
	if open == nil {
		// Distinguish "never arrived" from "already departed" for the caller.
		existing, err := s.attendanceRepo.GetByUserAndDate(ctx, userID, today)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to check today's record: %w", err)
		}
		if existing != nil && existing.DepartureAt != nil {
			return attendance.AttendanceResponse{}, attendance.ErrDepartureAlreadyReported
		}
		return attendance.AttendanceResponse{}, attendance.ErrNoActiveArrival
	}
	if !attendance.CanTransition(open.Status, attendance.StatusDepartPending) {
		return attendance.AttendanceResponse{}, attendance.ErrArrivalNotApproved
	}

	// Store documents first so a storage failure leaves the record open.
	stored := make([]attendance.Document, 0, len(req.Files))
	for _, f := range req.Files {
		doc, err := s.documents.StoreJustification(ctx, open.ID, f)
		if err != nil {
			s.rollbackDocuments(ctx, stored)
			return attendance.AttendanceResponse{}, err
		}
		stored = append(stored, doc)
	}

	raw := workhours.RawHours(open.ArrivalAt, now)
	worked, overtime := workhours.SplitWorkedAndOvertime(raw)

	open.DepartureAt = &now
	open.Description = req.Description
	open.Status = attendance.StatusDepartPending
	open.HoursWorked = worked
	open.HoursOvertime = overtime

	docs := make([]attendance.Document, 0, len(stored))
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.attendanceRepo.Update(ctx, *open); err != nil {
			return fmt.Errorf("failed to update attendance record: %w", err)
		}
		for _, doc := range stored {
			created, err := s.attendanceRepo.CreateDocument(ctx, doc)
			if err != nil {
				return fmt.Errorf("failed to register document: %w", err)
			}
			docs = append(docs, created)
		}
		return nil
	})
	if err != nil {
		s.rollbackDocuments(ctx, stored)
		return attendance.AttendanceResponse{}, err
	}
	open.Documents = docs

	slog.Info("Departure submitted", "user_id", userID, "attendance_id", open.ID,
		"hours_worked", worked, "hours_overtime", overtime, "documents", len(docs))
	return toResponse(*open), nil
}

func (s *attendanceServiceImpl) History(ctx context.Context, filter attendance.Filter) (attendance.ListAttendanceResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	// History is always scoped to the caller, whatever the filter says.
	filter.UserID = &userID
	return s.ListAttendance(ctx, filter)
}

func (s *attendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	record, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	docs, err := s.attendanceRepo.ListDocuments(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to list documents: %w", err)
	}
	record.Documents = docs

	return toResponse(record), nil
}

func (s *attendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.Filter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toResponse(rec))
	}

	totalPages := int(total) / filter.Limit
	if int(total)%filter.Limit > 0 {
		totalPages++
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Attendances: responses,
	}, nil
}

func (s *attendanceServiceImpl) rollbackDocuments(ctx context.Context, docs []attendance.Document) {
	for _, doc := range docs {
		if err := s.documents.Remove(ctx, doc.StoragePath); err != nil {
			slog.Error("Failed to remove document during rollback", "path", doc.StoragePath, "error", err)
		}
	}
}

func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id not found in token")
	}
	return userID, nil
}

func toResponse(rec attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:            rec.ID,
		UserID:        rec.UserID,
		UserName:      rec.UserName,
		UserBadgeCode: rec.UserBadgeCode,
		Date:          rec.Date.Format("2006-01-02"),
		ArrivalAt:     rec.ArrivalAt.Format(time.RFC3339),
		Description:   rec.Description,
		Status:        string(rec.Status),
		HoursWorked:   rec.HoursWorked,
		HoursOvertime: rec.HoursOvertime,
	}
	if rec.DepartureAt != nil {
		departure := rec.DepartureAt.Format(time.RFC3339)
		resp.DepartureAt = &departure
	}
	for _, doc := range rec.Documents {
		resp.Documents = append(resp.Documents, attendance.DocumentResponse{
			ID:         doc.ID,
			FileName:   doc.FileName,
			MimeType:   doc.MimeType,
			SizeBytes:  doc.SizeBytes,
			UploadedAt: doc.UploadedAt.Format(time.RFC3339),
		})
	}
	return resp
}
