package schedule

import "errors"

var (
	ErrScheduleNotFound = errors.New("work schedule not found")
	ErrHolidayNotFound  = errors.New("holiday not found")
	ErrHolidayExists    = errors.New("a holiday already exists on this date")
)
