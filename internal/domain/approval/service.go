package approval

import (
	"context"

	"github.com/boris2442/task-bml/internal/domain/attendance"
)

// ApprovalService governs status transitions of attendance records in
// response to administrative actions, and writes the audit trail.
type ApprovalService interface {
	// ApproveArrival moves arrival_pending -> arrival_approved.
	ApproveArrival(ctx context.Context, attendanceID string) (attendance.AttendanceResponse, error)

	// ApproveDeparture moves depart_pending -> validated and ensures the
	// hour split has been computed.
	ApproveDeparture(ctx context.Context, attendanceID string) (attendance.AttendanceResponse, error)

	// Reject moves either pending state -> rejected. The approval type
	// recorded is inferred from the state the record leaves.
	Reject(ctx context.Context, req RejectRequest) (attendance.AttendanceResponse, error)

	// Batch applies one action per id, skipping records whose status does
	// not match the precondition. Each item is transitioned independently;
	// partial application is expected.
	Batch(ctx context.Context, req BatchRequest) (BatchResponse, error)

	// ListPending retrieves the approvals inbox with per-status counts.
	ListPending(ctx context.Context, filter attendance.Filter) (attendance.ListAttendanceResponse, PendingCounts, error)

	// Trail retrieves the audit entries of one record, oldest first.
	Trail(ctx context.Context, attendanceID string) ([]ApprovalResponse, error)
}
