package workhours

import (
	"context"
	"fmt"
	"time"

	"github.com/boris2442/task-bml/internal/domain/attendance"
	"github.com/boris2442/task-bml/internal/domain/schedule"
	"github.com/boris2442/task-bml/internal/domain/stats"
	"github.com/boris2442/task-bml/internal/domain/user"
)

// ScheduleProvider answers how many hours an employee is expected to work on
// a given calendar date.
type ScheduleProvider interface {
	DayHours(ctx context.Context, userID string, date time.Time) (float64, error)
}

type scheduleProvider struct {
	scheduleRepo schedule.WorkScheduleRepository
	holidayRepo  schedule.HolidayRepository
}

func NewScheduleProvider(scheduleRepo schedule.WorkScheduleRepository, holidayRepo schedule.HolidayRepository) ScheduleProvider {
	return &scheduleProvider{
		scheduleRepo: scheduleRepo,
		holidayRepo:  holidayRepo,
	}
}

// DayHours resolves, in order: holiday → 0; working weekday → the schedule's
// hours per day; otherwise 0. An employee without a schedule row gets the
// defaults (4.0 hours, Monday through Friday).
func (p *scheduleProvider) DayHours(ctx context.Context, userID string, date time.Time) (float64, error) {
	isHoliday, err := p.holidayRepo.IsHoliday(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("failed to check holiday: %w", err)
	}
	if isHoliday {
		return 0, nil
	}

	ws, err := p.scheduleRepo.GetByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get work schedule: %w", err)
	}

	hoursPerDay := schedule.DefaultHoursPerDay
	workingWeekdays := schedule.DefaultWorkingWeekdays
	if ws != nil {
		hoursPerDay = ws.HoursPerDay
		workingWeekdays = ws.WorkingWeekdays
	}

	weekday := int(date.Weekday())
	for _, d := range workingWeekdays {
		if d == weekday {
			return hoursPerDay, nil
		}
	}
	return 0, nil
}

// Engine composes the schedule provider and the attendance store into the
// per-employee hour queries every statistic is built on.
type Engine struct {
	provider       ScheduleProvider
	attendanceRepo attendance.AttendanceRepository
}

func NewEngine(provider ScheduleProvider, attendanceRepo attendance.AttendanceRepository) *Engine {
	return &Engine{
		provider:       provider,
		attendanceRepo: attendanceRepo,
	}
}

// ExpectedHours sums the expected hours of every date in [start, end].
// An inverted range contributes nothing.
func (e *Engine) ExpectedHours(ctx context.Context, userID string, start, end time.Time) (float64, error) {
	start = DateOnly(start)
	end = DateOnly(end)

	var total float64
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		hours, err := e.provider.DayHours(ctx, userID, d)
		if err != nil {
			return 0, err
		}
		total += hours
	}
	return Round2(total), nil
}

// ActualHours sums the worked hours of validated records in [start, end].
// Pending and rejected records contribute nothing.
func (e *Engine) ActualHours(ctx context.Context, userID string, start, end time.Time) (float64, error) {
	validated := attendance.StatusValidated
	records, err := e.attendanceRepo.ListByUserInRange(ctx, userID, DateOnly(start), DateOnly(end), &validated)
	if err != nil {
		return 0, fmt.Errorf("failed to list validated attendance: %w", err)
	}

	var total float64
	for _, rec := range records {
		total += rec.HoursWorked
	}
	return Round2(total), nil
}

// UserStats computes the compliance summary of one employee over a period.
// A nil start defaults to the employee's registration date, a nil end to
// today.
func (e *Engine) UserStats(ctx context.Context, u user.User, start, end *time.Time) (stats.UserStats, error) {
	from := DateOnly(u.RegisteredAt)
	if start != nil {
		from = DateOnly(*start)
	}
	to := DateOnly(time.Now())
	if end != nil {
		to = DateOnly(*end)
	}

	expected, err := e.ExpectedHours(ctx, u.ID, from, to)
	if err != nil {
		return stats.UserStats{}, err
	}
	actual, err := e.ActualHours(ctx, u.ID, from, to)
	if err != nil {
		return stats.UserStats{}, err
	}

	pct := CompliancePercentage(actual, expected)
	return stats.UserStats{
		ExpectedHours: expected,
		ActualHours:   actual,
		MissingHours:  Round2(max(0, expected-actual)),
		Percentage:    pct,
		Behind:        IsBehindSchedule(pct),
		Period: stats.Period{
			Start: from.Format("2006-01-02"),
			End:   to.Format("2006-01-02"),
		},
	}, nil
}

// DateOnly drops the time-of-day component, keeping the calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
