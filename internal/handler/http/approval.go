package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/boris2442/task-bml/internal/domain/approval"
	"github.com/boris2442/task-bml/internal/domain/attendance"
	"github.com/boris2442/task-bml/internal/handler/http/response"
	"github.com/boris2442/task-bml/internal/service/file"
)

type ApprovalHandler interface {
	ListPending(w http.ResponseWriter, r *http.Request)
	Detail(w http.ResponseWriter, r *http.Request)
	ApproveArrival(w http.ResponseWriter, r *http.Request)
	ApproveDeparture(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Batch(w http.ResponseWriter, r *http.Request)
	DownloadDocument(w http.ResponseWriter, r *http.Request)
}

type ApprovalHandlerImpl struct {
	approvalService   approval.ApprovalService
	attendanceService attendance.AttendanceService
	attendanceRepo    attendance.AttendanceRepository
	documents         *file.DocumentStore
}

func NewApprovalHandler(
	approvalService approval.ApprovalService,
	attendanceService attendance.AttendanceService,
	attendanceRepo attendance.AttendanceRepository,
	documents *file.DocumentStore,
) ApprovalHandler {
	return &ApprovalHandlerImpl{
		approvalService:   approvalService,
		attendanceService: attendanceService,
		attendanceRepo:    attendanceRepo,
		documents:         documents,
	}
}

// ListPending implements ApprovalHandler.
func (h *ApprovalHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	filter := attendanceFilterFromQuery(r)

	list, counts, err := h.approvalService.ListPending(r.Context(), filter)
	if err != nil {
		slog.Error("ListPending service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, map[string]interface{}{
		"attendances": list.Attendances,
		"counts":      counts,
	}, &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		TotalItems: list.TotalCount,
		TotalPages: list.TotalPages,
	})
}

// Detail implements ApprovalHandler. Returns the record with its documents
// and audit trail.
func (h *ApprovalHandlerImpl) Detail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	record, err := h.attendanceService.GetAttendance(r.Context(), id)
	if err != nil {
		slog.Error("Detail service error", "attendance_id", id, "error", err)
		response.HandleError(w, err)
		return
	}

	trail, err := h.approvalService.Trail(r.Context(), id)
	if err != nil {
		slog.Error("Detail trail error", "attendance_id", id, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"attendance": record,
		"approvals":  trail,
	})
}

// ApproveArrival implements ApprovalHandler.
func (h *ApprovalHandlerImpl) ApproveArrival(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.approvalService.ApproveArrival(r.Context(), id)
	if err != nil {
		slog.Error("ApproveArrival service error", "attendance_id", id, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Arrival approved", result)
}

// ApproveDeparture implements ApprovalHandler.
func (h *ApprovalHandlerImpl) ApproveDeparture(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.approvalService.ApproveDeparture(r.Context(), id)
	if err != nil {
		slog.Error("ApproveDeparture service error", "attendance_id", id, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Departure validated", result)
}

// Reject implements ApprovalHandler.
func (h *ApprovalHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	var req approval.RejectRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Reject decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.AttendanceID = chi.URLParam(r, "id")

	result, err := h.approvalService.Reject(r.Context(), req)
	if err != nil {
		slog.Error("Reject service error", "attendance_id", req.AttendanceID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance rejected", result)
}

// Batch implements ApprovalHandler.
func (h *ApprovalHandlerImpl) Batch(w http.ResponseWriter, r *http.Request) {
	var req approval.BatchRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Batch decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.approvalService.Batch(r.Context(), req)
	if err != nil {
		slog.Error("Batch service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Batch processed", result)
}

// DownloadDocument implements ApprovalHandler. Streams a justification
// document; the document must belong to the record in the URL.
func (h *ApprovalHandlerImpl) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	attendanceID := chi.URLParam(r, "id")
	documentID := chi.URLParam(r, "docID")

	doc, err := h.attendanceRepo.GetDocument(r.Context(), attendanceID, documentID)
	if err != nil {
		slog.Error("DownloadDocument lookup error", "attendance_id", attendanceID, "document_id", documentID, "error", err)
		response.HandleError(w, err)
		return
	}

	reader, err := h.documents.Open(r.Context(), doc.StoragePath)
	if err != nil {
		slog.Error("DownloadDocument open error", "path", doc.StoragePath, "error", err)
		response.HandleError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", doc.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	if _, err := io.Copy(w, reader); err != nil {
		slog.Error("DownloadDocument stream error", "path", doc.StoragePath, "error", err)
	}
}
