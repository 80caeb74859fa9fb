package schedule

import "context"

// ScheduleService covers admin management of work schedules and holidays.
type ScheduleService interface {
	// GetSchedule retrieves a user's schedule, falling back to the defaults
	// when none is set.
	GetSchedule(ctx context.Context, userID string) (ScheduleResponse, error)

	// UpsertSchedule creates or replaces a user's schedule.
	UpsertSchedule(ctx context.Context, req UpsertScheduleRequest) (ScheduleResponse, error)

	// DeleteSchedule removes a user's schedule, reverting them to defaults.
	DeleteSchedule(ctx context.Context, userID string) error

	ListHolidays(ctx context.Context) ([]HolidayResponse, error)
	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id string) error
}
