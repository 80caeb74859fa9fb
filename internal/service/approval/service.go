package approval

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/boris2442/task-bml/internal/domain/approval"
	"github.com/boris2442/task-bml/internal/domain/attendance"
	"github.com/boris2442/task-bml/internal/service/workhours"
)

type approvalServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	approvalRepo   approval.ApprovalRepository
	tx             attendance.TxRunner
}

func NewApprovalService(attendanceRepo attendance.AttendanceRepository, approvalRepo approval.ApprovalRepository, tx attendance.TxRunner) approval.ApprovalService {
	return &approvalServiceImpl{
		attendanceRepo: attendanceRepo,
		approvalRepo:   approvalRepo,
		tx:             tx,
	}
}

func (s *approvalServiceImpl) ApproveArrival(ctx context.Context, attendanceID string) (attendance.AttendanceResponse, error) {
	adminID, err := adminIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.transition(ctx, attendanceID, attendance.StatusArrivalPending, attendance.StatusArrivalApproved); err != nil {
			return err
		}
		if _, err := s.approvalRepo.Create(ctx, approval.Approval{
			AttendanceID: attendanceID,
			AdminID:      adminID,
			Type:         approval.TypeArrival,
			Outcome:      approval.OutcomeApproved,
		}); err != nil {
			return fmt.Errorf("failed to write approval entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Arrival approved", "attendance_id", attendanceID, "admin_id", adminID)
	return s.response(ctx, attendanceID)
}

func (s *approvalServiceImpl) ApproveDeparture(ctx context.Context, attendanceID string) (attendance.AttendanceResponse, error) {
	adminID, err := adminIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.attendanceRepo.GetByID(ctx, attendanceID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.transition(ctx, attendanceID, attendance.StatusDepartPending, attendance.StatusValidated); err != nil {
			return err
		}

		// The hour split is computed at departure submission; recompute here
		// only if the record somehow missed it.
		if record.DepartureAt != nil && record.HoursWorked == 0 && record.HoursOvertime == 0 {
			raw := workhours.RawHours(record.ArrivalAt, *record.DepartureAt)
			record.HoursWorked, record.HoursOvertime = workhours.SplitWorkedAndOvertime(raw)
			record.Status = attendance.StatusValidated
			if err := s.attendanceRepo.Update(ctx, record); err != nil {
				return fmt.Errorf("failed to persist hour split: %w", err)
			}
		}

		if _, err := s.approvalRepo.Create(ctx, approval.Approval{
			AttendanceID: attendanceID,
			AdminID:      adminID,
			Type:         approval.TypeDepartureDocuments,
			Outcome:      approval.OutcomeApproved,
		}); err != nil {
			return fmt.Errorf("failed to write approval entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Departure validated", "attendance_id", attendanceID, "admin_id", adminID)
	return s.response(ctx, attendanceID)
}

func (s *approvalServiceImpl) Reject(ctx context.Context, req approval.RejectRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	adminID, err := adminIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.attendanceRepo.GetByID(ctx, req.AttendanceID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !record.Status.IsPendingApproval() {
		return attendance.AttendanceResponse{}, approval.ErrIllegalTransition
	}

	approvalType := approval.TypeArrival
	if record.Status == attendance.StatusDepartPending {
		approvalType = approval.TypeDepartureDocuments
	}

	comment := req.Comment
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.transition(ctx, req.AttendanceID, record.Status, attendance.StatusRejected); err != nil {
			return err
		}
		if _, err := s.approvalRepo.Create(ctx, approval.Approval{
			AttendanceID: req.AttendanceID,
			AdminID:      adminID,
			Type:         approvalType,
			Outcome:      approval.OutcomeRejected,
			Comment:      &comment,
		}); err != nil {
			return fmt.Errorf("failed to write approval entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Attendance rejected", "attendance_id", req.AttendanceID, "admin_id", adminID, "type", approvalType)
	return s.response(ctx, req.AttendanceID)
}

func (s *approvalServiceImpl) Batch(ctx context.Context, req approval.BatchRequest) (approval.BatchResponse, error) {
	if err := req.Validate(); err != nil {
		return approval.BatchResponse{}, err
	}

	adminID, err := adminIDFromContext(ctx)
	if err != nil {
		return approval.BatchResponse{}, err
	}

	var resp approval.BatchResponse
	for _, id := range req.IDs {
		changed, err := s.batchOne(ctx, adminID, id, req)
		if err != nil {
			slog.Error("Batch item failed", "attendance_id", id, "error", err)
			resp.Skipped++
			continue
		}
		if changed {
			resp.Processed++
		} else {
			resp.Skipped++
		}
	}

	slog.Info("Batch approval applied", "action", req.Action, "processed", resp.Processed, "skipped", resp.Skipped)
	return resp, nil
}

// batchOne applies the batch action to a single record. It reports whether
// the record's status actually changed; a non-matching status is not an
// error, the record is just skipped.
func (s *approvalServiceImpl) batchOne(ctx context.Context, adminID, id string, req approval.BatchRequest) (bool, error) {
	var from, to attendance.Status
	var approvalType approval.Type
	outcome := approval.OutcomeApproved

	switch approval.BatchAction(req.Action) {
	case approval.BatchApproveArrival:
		from, to = attendance.StatusArrivalPending, attendance.StatusArrivalApproved
		approvalType = approval.TypeArrival
	case approval.BatchApproveDeparture:
		from, to = attendance.StatusDepartPending, attendance.StatusValidated
		approvalType = approval.TypeDepartureDocuments
	case approval.BatchReject:
		record, err := s.attendanceRepo.GetByID(ctx, id)
		if err != nil {
			return false, err
		}
		if !record.Status.IsPendingApproval() {
			return false, nil
		}
		from, to = record.Status, attendance.StatusRejected
		approvalType = approval.TypeArrival
		if record.Status == attendance.StatusDepartPending {
			approvalType = approval.TypeDepartureDocuments
		}
		outcome = approval.OutcomeRejected
	default:
		return false, fmt.Errorf("unknown batch action: %s", req.Action)
	}

	var changed bool
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		changed, err = s.attendanceRepo.UpdateStatusIf(ctx, id, from, to)
		if err != nil || !changed {
			return err
		}
		if _, err := s.approvalRepo.Create(ctx, approval.Approval{
			AttendanceID: id,
			AdminID:      adminID,
			Type:         approvalType,
			Outcome:      outcome,
			Comment:      req.Motive,
		}); err != nil {
			return fmt.Errorf("failed to write approval entry: %w", err)
		}
		return nil
	})
	return changed, err
}

func (s *approvalServiceImpl) ListPending(ctx context.Context, filter attendance.Filter) (attendance.ListAttendanceResponse, approval.PendingCounts, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, approval.PendingCounts{}, err
	}

	if filter.Status == nil {
		filter.Statuses = []attendance.Status{
			attendance.StatusArrivalPending,
			attendance.StatusDepartPending,
		}
	}

	records, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, approval.PendingCounts{}, fmt.Errorf("failed to list pending records: %w", err)
	}

	arrivals, err := s.attendanceRepo.CountByStatus(ctx, []attendance.Status{attendance.StatusArrivalPending})
	if err != nil {
		return attendance.ListAttendanceResponse{}, approval.PendingCounts{}, fmt.Errorf("failed to count pending arrivals: %w", err)
	}
	departures, err := s.attendanceRepo.CountByStatus(ctx, []attendance.Status{attendance.StatusDepartPending})
	if err != nil {
		return attendance.ListAttendanceResponse{}, approval.PendingCounts{}, fmt.Errorf("failed to count pending departures: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toResponse(rec))
	}

	totalPages := int(total) / filter.Limit
	if int(total)%filter.Limit > 0 {
		totalPages++
	}

	list := attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Attendances: responses,
	}
	counts := approval.PendingCounts{
		ArrivalsPending:   arrivals,
		DeparturesPending: departures,
		TotalPending:      arrivals + departures,
	}
	return list, counts, nil
}

func (s *approvalServiceImpl) Trail(ctx context.Context, attendanceID string) ([]approval.ApprovalResponse, error) {
	if _, err := s.attendanceRepo.GetByID(ctx, attendanceID); err != nil {
		return nil, err
	}

	entries, err := s.approvalRepo.ListByAttendance(ctx, attendanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approval entries: %w", err)
	}

	responses := make([]approval.ApprovalResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, approval.ApprovalResponse{
			ID:           e.ID,
			AttendanceID: e.AttendanceID,
			AdminID:      e.AdminID,
			AdminName:    e.AdminName,
			Type:         string(e.Type),
			Outcome:      string(e.Outcome),
			Comment:      e.Comment,
			CreatedAt:    e.CreatedAt.Format(time.RFC3339),
		})
	}
	return responses, nil
}

// transition applies the compare-and-swap status update and maps a
// no-change outcome to ErrIllegalTransition.
func (s *approvalServiceImpl) transition(ctx context.Context, id string, from, to attendance.Status) error {
	changed, err := s.attendanceRepo.UpdateStatusIf(ctx, id, from, to)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	if !changed {
		// Either the record does not exist or it is not in the expected
		// status. Surface not-found as such.
		if _, err := s.attendanceRepo.GetByID(ctx, id); err != nil {
			return err
		}
		return approval.ErrIllegalTransition
	}
	return nil
}

func (s *approvalServiceImpl) response(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
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

func adminIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	adminID, ok := claims["user_id"].(string)
	if !ok || adminID == "" {
		return "", fmt.Errorf("user_id not found in token")
	}
	return adminID, nil
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
