package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boris2442/task-bml/internal/domain/schedule"
	"github.com/boris2442/task-bml/internal/domain/user"
)

type fakeScheduleRepo struct {
	byUser map[string]*schedule.WorkSchedule
}

func (f *fakeScheduleRepo) GetByUserID(ctx context.Context, userID string) (*schedule.WorkSchedule, error) {
	return f.byUser[userID], nil
}

func (f *fakeScheduleRepo) Upsert(ctx context.Context, ws schedule.WorkSchedule) (schedule.WorkSchedule, error) {
	ws.ID = "ws-" + ws.UserID
	f.byUser[ws.UserID] = &ws
	return ws, nil
}

func (f *fakeScheduleRepo) Delete(ctx context.Context, userID string) error {
	if _, ok := f.byUser[userID]; !ok {
		return schedule.ErrScheduleNotFound
	}
	delete(f.byUser, userID)
	return nil
}

type fakeHolidayRepo struct {
	schedule.HolidayRepository
	holidays map[string]schedule.Holiday // keyed by date
}

func (f *fakeHolidayRepo) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	_, ok := f.holidays[date.Format("2006-01-02")]
	return ok, nil
}

func (f *fakeHolidayRepo) List(ctx context.Context) ([]schedule.Holiday, error) {
	result := make([]schedule.Holiday, 0, len(f.holidays))
	for _, h := range f.holidays {
		result = append(result, h)
	}
	return result, nil
}

func (f *fakeHolidayRepo) Create(ctx context.Context, h schedule.Holiday) (schedule.Holiday, error) {
	h.ID = "h-" + h.Date.Format("2006-01-02")
	f.holidays[h.Date.Format("2006-01-02")] = h
	return h, nil
}

func (f *fakeHolidayRepo) Delete(ctx context.Context, id string) error {
	for key, h := range f.holidays {
		if h.ID == id {
			delete(f.holidays, key)
			return nil
		}
	}
	return schedule.ErrHolidayNotFound
}

type fakeUserRepo struct {
	user.UserRepository
	ids map[string]bool
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	if !f.ids[id] {
		return user.User{}, user.ErrUserNotFound
	}
	return user.User{ID: id, Role: user.RoleEmployee}, nil
}

func newTestService() (schedule.ScheduleService, *fakeScheduleRepo, *fakeHolidayRepo) {
	schedules := &fakeScheduleRepo{byUser: map[string]*schedule.WorkSchedule{}}
	holidays := &fakeHolidayRepo{holidays: map[string]schedule.Holiday{}}
	users := &fakeUserRepo{ids: map[string]bool{"u1": true}}
	return NewScheduleService(schedules, holidays, users), schedules, holidays
}

func TestGetSchedule_DefaultsWhenUnset(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.GetSchedule(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, schedule.DefaultHoursPerDay, resp.HoursPerDay)
	assert.Equal(t, schedule.DefaultWorkingWeekdays, resp.WorkingWeekdays)
	assert.Nil(t, resp.ContractStart)
}

func TestGetSchedule_UnknownUser(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.GetSchedule(context.Background(), "ghost")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUpsertSchedule(t *testing.T) {
	svc, schedules, _ := newTestService()

	start := "2026-01-15"
	resp, err := svc.UpsertSchedule(context.Background(), schedule.UpsertScheduleRequest{
		UserID:          "u1",
		HoursPerDay:     6,
		WorkingWeekdays: []int{1, 3, 5},
		ContractStart:   &start,
	})
	require.NoError(t, err)

	assert.Equal(t, 6.0, resp.HoursPerDay)
	assert.Equal(t, []int{1, 3, 5}, resp.WorkingWeekdays)
	require.NotNil(t, resp.ContractStart)
	assert.Equal(t, start, *resp.ContractStart)
	require.NotNil(t, schedules.byUser["u1"])
}

func TestUpsertSchedule_Validation(t *testing.T) {
	svc, _, _ := newTestService()

	cases := []schedule.UpsertScheduleRequest{
		{UserID: "u1", HoursPerDay: 0, WorkingWeekdays: []int{1}},
		{UserID: "u1", HoursPerDay: 25, WorkingWeekdays: []int{1}},
		{UserID: "u1", HoursPerDay: 4, WorkingWeekdays: nil},
		{UserID: "u1", HoursPerDay: 4, WorkingWeekdays: []int{7}},
	}
	for _, req := range cases {
		_, err := svc.UpsertSchedule(context.Background(), req)
		assert.Error(t, err)
	}
}

func TestDeleteSchedule(t *testing.T) {
	svc, schedules, _ := newTestService()
	schedules.byUser["u1"] = &schedule.WorkSchedule{UserID: "u1", HoursPerDay: 4}

	require.NoError(t, svc.DeleteSchedule(context.Background(), "u1"))

	err := svc.DeleteSchedule(context.Background(), "u1")
	assert.ErrorIs(t, err, schedule.ErrScheduleNotFound)
}

func TestCreateHoliday(t *testing.T) {
	svc, _, holidays := newTestService()

	resp, err := svc.CreateHoliday(context.Background(), schedule.CreateHolidayRequest{
		Date: "2026-05-01",
		Name: "Labour Day",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-05-01", resp.Date)
	assert.Equal(t, "Labour Day", resp.Name)
	assert.Len(t, holidays.holidays, 1)

	_, err = svc.CreateHoliday(context.Background(), schedule.CreateHolidayRequest{
		Date: "2026-05-01",
		Name: "Duplicate",
	})
	assert.ErrorIs(t, err, schedule.ErrHolidayExists)
}

func TestCreateHoliday_Validation(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateHoliday(context.Background(), schedule.CreateHolidayRequest{Date: "05/01/2026", Name: "Labour Day"})
	assert.Error(t, err)

	_, err = svc.CreateHoliday(context.Background(), schedule.CreateHolidayRequest{Date: "2026-05-01", Name: "  "})
	assert.Error(t, err)
}

func TestDeleteHoliday(t *testing.T) {
	svc, _, _ := newTestService()

	created, err := svc.CreateHoliday(context.Background(), schedule.CreateHolidayRequest{
		Date: "2026-05-01",
		Name: "Labour Day",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteHoliday(context.Background(), created.ID))
	assert.ErrorIs(t, svc.DeleteHoliday(context.Background(), created.ID), schedule.ErrHolidayNotFound)
}
