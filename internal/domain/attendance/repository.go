package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. The core
// treats the store as authoritative state and never caches.
type AttendanceRepository interface {
	Create(ctx context.Context, att Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByUserAndDate retrieves the record for a specific employee on a
	// specific date. Returns nil when none exists; used to prevent a second
	// arrival on the same day.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error)

	// GetOpenForUserOnDate retrieves the record whose departure is still
	// pending (status arrival_pending or arrival_approved, no departure).
	GetOpenForUserOnDate(ctx context.Context, userID string, date time.Time) (*Attendance, error)

	// ListByUserInRange retrieves records for an employee whose date falls in
	// [start, end], optionally restricted to one status.
	ListByUserInRange(ctx context.Context, userID string, start, end time.Time, status *Status) ([]Attendance, error)

	// List retrieves records with filters and pagination (admin views).
	List(ctx context.Context, filter Filter) ([]Attendance, int64, error)

	Update(ctx context.Context, att Attendance) error

	// UpdateStatusIf atomically moves the record from one status to another.
	// It reports whether a row actually changed; a false return with nil
	// error means the record was not in the expected status.
	UpdateStatusIf(ctx context.Context, id string, from, to Status) (bool, error)

	CountByStatus(ctx context.Context, statuses []Status) (int64, error)
	CountOnDate(ctx context.Context, date time.Time, status *Status) (int64, error)
	Count(ctx context.Context) (int64, error)

	// SumValidatedHoursOnDate sums HoursWorked of validated records on a date.
	SumValidatedHoursOnDate(ctx context.Context, date time.Time) (float64, error)

	// ListRecentOvertime retrieves the latest validated records carrying
	// overtime hours.
	ListRecentOvertime(ctx context.Context, limit int) ([]Attendance, error)

	// Documents
	CreateDocument(ctx context.Context, doc Document) (Document, error)
	GetDocument(ctx context.Context, attendanceID, documentID string) (Document, error)
	ListDocuments(ctx context.Context, attendanceID string) ([]Document, error)
	DeleteDocument(ctx context.Context, id string) error
	CountDocumentsByUser(ctx context.Context, userID string) (int64, error)
}

// TxRunner executes fn atomically against the store. The transaction is
// carried through the context to every repository call made inside fn.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
