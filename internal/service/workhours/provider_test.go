package workhours

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boris2442/task-bml/internal/domain/attendance"
	"github.com/boris2442/task-bml/internal/domain/schedule"
	"github.com/boris2442/task-bml/internal/domain/user"
)

type fakeScheduleRepo struct {
	schedule.WorkScheduleRepository
	byUser map[string]*schedule.WorkSchedule
}

func (f *fakeScheduleRepo) GetByUserID(ctx context.Context, userID string) (*schedule.WorkSchedule, error) {
	return f.byUser[userID], nil
}

type fakeHolidayRepo struct {
	schedule.HolidayRepository
	dates map[string]bool
}

func (f *fakeHolidayRepo) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	return f.dates[date.Format("2006-01-02")], nil
}

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	records []attendance.Attendance
}

func (f *fakeAttendanceRepo) ListByUserInRange(ctx context.Context, userID string, start, end time.Time, status *attendance.Status) ([]attendance.Attendance, error) {
	result := make([]attendance.Attendance, 0)
	for _, rec := range f.records {
		if rec.UserID != userID || rec.Date.Before(start) || rec.Date.After(end) {
			continue
		}
		if status != nil && rec.Status != *status {
			continue
		}
		result = append(result, rec)
	}
	return result, nil
}

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func newTestEngine(schedules map[string]*schedule.WorkSchedule, holidays map[string]bool, records []attendance.Attendance) *Engine {
	provider := NewScheduleProvider(
		&fakeScheduleRepo{byUser: schedules},
		&fakeHolidayRepo{dates: holidays},
	)
	return NewEngine(provider, &fakeAttendanceRepo{records: records})
}

func TestDayHours_Defaults(t *testing.T) {
	provider := NewScheduleProvider(
		&fakeScheduleRepo{byUser: map[string]*schedule.WorkSchedule{}},
		&fakeHolidayRepo{dates: map[string]bool{}},
	)
	ctx := context.Background()

	// 2026-03-02 is a Monday
	hours, err := provider.DayHours(ctx, "u1", date("2026-03-02"))
	require.NoError(t, err)
	assert.Equal(t, 4.0, hours)

	// 2026-03-07 is a Saturday, outside the default working days
	hours, err = provider.DayHours(ctx, "u1", date("2026-03-07"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, hours)
}

func TestDayHours_HolidayOverridesSchedule(t *testing.T) {
	provider := NewScheduleProvider(
		&fakeScheduleRepo{byUser: map[string]*schedule.WorkSchedule{
			"u1": {UserID: "u1", HoursPerDay: 8, WorkingWeekdays: []int{1, 2, 3, 4, 5}},
		}},
		&fakeHolidayRepo{dates: map[string]bool{"2026-03-02": true}},
	)

	hours, err := provider.DayHours(context.Background(), "u1", date("2026-03-02"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, hours)
}

func TestDayHours_CustomSchedule(t *testing.T) {
	provider := NewScheduleProvider(
		&fakeScheduleRepo{byUser: map[string]*schedule.WorkSchedule{
			"u1": {UserID: "u1", HoursPerDay: 6, WorkingWeekdays: []int{6}}, // Saturdays only
		}},
		&fakeHolidayRepo{dates: map[string]bool{}},
	)
	ctx := context.Background()

	hours, err := provider.DayHours(ctx, "u1", date("2026-03-07")) // Saturday
	require.NoError(t, err)
	assert.Equal(t, 6.0, hours)

	hours, err = provider.DayHours(ctx, "u1", date("2026-03-02")) // Monday
	require.NoError(t, err)
	assert.Equal(t, 0.0, hours)
}

func TestExpectedHours_FullWeekWithDefaults(t *testing.T) {
	engine := newTestEngine(nil, map[string]bool{}, nil)

	// Monday through Sunday with defaults: 5 working days * 4h
	total, err := engine.ExpectedHours(context.Background(), "u1", date("2026-03-02"), date("2026-03-08"))
	require.NoError(t, err)
	assert.Equal(t, 20.0, total)
}

func TestExpectedHours_InvertedRangeIsZero(t *testing.T) {
	engine := newTestEngine(nil, map[string]bool{}, nil)

	total, err := engine.ExpectedHours(context.Background(), "u1", date("2026-03-08"), date("2026-03-02"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
}

func TestExpectedHours_HolidayCoveredRangeIsZero(t *testing.T) {
	engine := newTestEngine(nil, map[string]bool{
		"2026-03-02": true,
		"2026-03-03": true,
	}, nil)

	total, err := engine.ExpectedHours(context.Background(), "u1", date("2026-03-02"), date("2026-03-03"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
}

func TestActualHours_OnlyValidatedCount(t *testing.T) {
	engine := newTestEngine(nil, map[string]bool{}, []attendance.Attendance{
		{UserID: "u1", Date: date("2026-03-02"), Status: attendance.StatusValidated, HoursWorked: 4},
		{UserID: "u1", Date: date("2026-03-03"), Status: attendance.StatusDepartPending, HoursWorked: 4},
		{UserID: "u1", Date: date("2026-03-04"), Status: attendance.StatusRejected, HoursWorked: 4},
		{UserID: "u2", Date: date("2026-03-02"), Status: attendance.StatusValidated, HoursWorked: 3},
	})

	total, err := engine.ActualHours(context.Background(), "u1", date("2026-03-01"), date("2026-03-31"))
	require.NoError(t, err)
	assert.Equal(t, 4.0, total)
}

func TestUserStats(t *testing.T) {
	engine := newTestEngine(nil, map[string]bool{}, []attendance.Attendance{
		{UserID: "u1", Date: date("2026-03-02"), Status: attendance.StatusValidated, HoursWorked: 4},
		{UserID: "u1", Date: date("2026-03-03"), Status: attendance.StatusValidated, HoursWorked: 4},
	})

	u := user.User{ID: "u1", RegisteredAt: date("2026-03-02")}
	start := date("2026-03-02")
	end := date("2026-03-06") // Monday to Friday: expected 20h

	stats, err := engine.UserStats(context.Background(), u, &start, &end)
	require.NoError(t, err)

	assert.Equal(t, 20.0, stats.ExpectedHours)
	assert.Equal(t, 8.0, stats.ActualHours)
	assert.Equal(t, 12.0, stats.MissingHours)
	assert.Equal(t, 40.0, stats.Percentage)
	assert.True(t, stats.Behind)
	assert.Equal(t, "2026-03-02", stats.Period.Start)
	assert.Equal(t, "2026-03-06", stats.Period.End)
}

func TestUserStats_NoExpectedHours(t *testing.T) {
	engine := newTestEngine(nil, map[string]bool{}, nil)

	u := user.User{ID: "u1", RegisteredAt: date("2026-03-07")}
	start := date("2026-03-07") // Saturday
	end := date("2026-03-08")   // Sunday

	stats, err := engine.UserStats(context.Background(), u, &start, &end)
	require.NoError(t, err)

	assert.Equal(t, 0.0, stats.ExpectedHours)
	assert.Equal(t, 0.0, stats.Percentage)
	assert.True(t, stats.Behind) // 0% is below the threshold
}
