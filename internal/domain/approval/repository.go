package approval

import "context"

type ApprovalRepository interface {
	// Create persists an audit entry. Entries are insert-only.
	Create(ctx context.Context, a Approval) (Approval, error)

	// ListByAttendance retrieves the audit trail of one record, oldest first.
	ListByAttendance(ctx context.Context, attendanceID string) ([]Approval, error)
}
