package schedule

import "time"

// Defaults applied when an employee has no WorkSchedule row.
const DefaultHoursPerDay = 4.0

// DefaultWorkingWeekdays is Monday through Friday (0=Sunday ... 6=Saturday).
var DefaultWorkingWeekdays = []int{1, 2, 3, 4, 5}

// WorkSchedule holds the expected working pattern of one employee.
type WorkSchedule struct {
	ID              string
	UserID          string
	HoursPerDay     float64
	WorkingWeekdays []int
	ContractStart   *time.Time
	ContractEnd     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// WorksOn reports whether weekday (0=Sunday ... 6=Saturday) is part of the
// schedule's working days.
func (s *WorkSchedule) WorksOn(weekday int) bool {
	for _, d := range s.WorkingWeekdays {
		if d == weekday {
			return true
		}
	}
	return false
}

// Holiday marks a calendar date as globally non-working. A date that falls on
// a working weekday but is a holiday contributes zero expected hours.
type Holiday struct {
	ID          string
	Date        time.Time
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
