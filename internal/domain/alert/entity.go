package alert

import "time"

const TypeBehindSchedule = "behind_schedule"

// WorkAlert is a durable notice that an employee fell below the compliance
// threshold for a period. Written by the background producer consuming the
// statistics aggregator's output.
type WorkAlert struct {
	ID            string
	UserID        string
	Type          string
	Message       string
	ExpectedHours float64
	ActualHours   float64
	Percentage    float64
	PeriodStart   time.Time
	PeriodEnd     time.Time
	Notified      bool
	NotifiedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
