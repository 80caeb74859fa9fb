package schedule

import (
	"context"
	"time"
)

type WorkScheduleRepository interface {
	// GetByUserID retrieves the employee's schedule. Returns nil (not an
	// error) when the employee has none; callers substitute the defaults.
	GetByUserID(ctx context.Context, userID string) (*WorkSchedule, error)

	// Upsert creates or replaces the employee's schedule.
	Upsert(ctx context.Context, ws WorkSchedule) (WorkSchedule, error)

	Delete(ctx context.Context, userID string) error
}

type HolidayRepository interface {
	// IsHoliday reports whether the calendar date is a global holiday.
	IsHoliday(ctx context.Context, date time.Time) (bool, error)

	List(ctx context.Context) ([]Holiday, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, h Holiday) (Holiday, error)
	Delete(ctx context.Context, id string) error
}
