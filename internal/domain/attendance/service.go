package attendance

import "context"

// AttendanceService defines the employee-facing presence operations.
type AttendanceService interface {
	// SubmitArrival records the start of today's cycle for the
	// authenticated employee. A second arrival on the same day is rejected.
	SubmitArrival(ctx context.Context, req ArrivalRequest) (AttendanceResponse, error)

	// SubmitDeparture closes today's open cycle, stores the justification
	// documents and recomputes the hour split. Failures abort the whole
	// submission; documents stored so far are removed.
	SubmitDeparture(ctx context.Context, req DepartureRequest) (AttendanceResponse, error)

	// History retrieves the authenticated employee's records.
	History(ctx context.Context, filter Filter) (ListAttendanceResponse, error)

	// GetAttendance retrieves a single record with documents (admin).
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// ListAttendance retrieves records with filters (admin).
	ListAttendance(ctx context.Context, filter Filter) (ListAttendanceResponse, error)
}
