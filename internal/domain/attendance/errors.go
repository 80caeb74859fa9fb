package attendance

import "errors"

var (
	// Arrival errors
	ErrAlreadyReportedToday = errors.New("arrival already reported for today")

	// Departure errors
	ErrNoActiveArrival          = errors.New("no active arrival to depart from")
	ErrArrivalNotApproved       = errors.New("arrival has not been approved yet")
	ErrDepartureAlreadyReported = errors.New("departure already reported")
	ErrNoDocuments              = errors.New("at least one justification document is required")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrDocumentNotFound   = errors.New("justification document not found")
)
