package approval

import "time"

// Type identifies which half of the attendance cycle was processed.
type Type string

const (
	TypeArrival Type = "arrival"
	// TypeDepartureDocuments covers the departure together with its
	// justification documents.
	TypeDepartureDocuments Type = "departure_documents"
)

type Outcome string

const (
	OutcomeApproved Outcome = "approved"
	OutcomeRejected Outcome = "rejected"
)

// Approval is an immutable audit entry. Rows are never updated or deleted;
// they are the sole audit trail of status transitions.
type Approval struct {
	ID           string
	AttendanceID string
	AdminID      string
	Type         Type
	Outcome      Outcome
	Comment      *string
	CreatedAt    time.Time

	// DTO / Join
	AdminName *string
}
