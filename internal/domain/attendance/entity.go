package attendance

import "time"

// Attendance is one clock-in/clock-out cycle of one employee on one calendar
// day. HoursWorked and HoursOvertime are derived fields, recomputed from the
// arrival/departure pair before persistence and never supplied by callers.
type Attendance struct {
	ID            string
	UserID        string
	Date          time.Time
	ArrivalAt     time.Time
	DepartureAt   *time.Time
	Description   string
	Status        Status
	HoursWorked   float64
	HoursOvertime float64
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO / Join
	UserName      *string
	UserBadgeCode *string
	Documents     []Document
}

// Document is a justification file attached to a departure submission.
// At least one is required per departure.
type Document struct {
	ID           string
	AttendanceID string
	FileName     string
	StoragePath  string
	MimeType     string
	SizeBytes    int64
	UploadedAt   time.Time
}
