package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/boris2442/task-bml/internal/domain/schedule"
	"github.com/boris2442/task-bml/internal/domain/user"
)

type scheduleServiceImpl struct {
	scheduleRepo schedule.WorkScheduleRepository
	holidayRepo  schedule.HolidayRepository
	userRepo     user.UserRepository
}

func NewScheduleService(
	scheduleRepo schedule.WorkScheduleRepository,
	holidayRepo schedule.HolidayRepository,
	userRepo user.UserRepository,
) schedule.ScheduleService {
	return &scheduleServiceImpl{
		scheduleRepo: scheduleRepo,
		holidayRepo:  holidayRepo,
		userRepo:     userRepo,
	}
}

func (s *scheduleServiceImpl) GetSchedule(ctx context.Context, userID string) (schedule.ScheduleResponse, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	ws, err := s.scheduleRepo.GetByUserID(ctx, userID)
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to get work schedule: %w", err)
	}
	if ws == nil {
		return schedule.ScheduleResponse{
			UserID:          userID,
			HoursPerDay:     schedule.DefaultHoursPerDay,
			WorkingWeekdays: schedule.DefaultWorkingWeekdays,
		}, nil
	}
	return toScheduleResponse(*ws), nil
}

func (s *scheduleServiceImpl) UpsertSchedule(ctx context.Context, req schedule.UpsertScheduleRequest) (schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	ws := schedule.WorkSchedule{
		UserID:          req.UserID,
		HoursPerDay:     req.HoursPerDay,
		WorkingWeekdays: req.WorkingWeekdays,
	}
	if req.ContractStart != nil && *req.ContractStart != "" {
		start, err := time.Parse("2006-01-02", *req.ContractStart)
		if err != nil {
			return schedule.ScheduleResponse{}, fmt.Errorf("invalid contract_start: %w", err)
		}
		ws.ContractStart = &start
	}
	if req.ContractEnd != nil && *req.ContractEnd != "" {
		end, err := time.Parse("2006-01-02", *req.ContractEnd)
		if err != nil {
			return schedule.ScheduleResponse{}, fmt.Errorf("invalid contract_end: %w", err)
		}
		ws.ContractEnd = &end
	}

	saved, err := s.scheduleRepo.Upsert(ctx, ws)
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to save work schedule: %w", err)
	}

	slog.Info("Work schedule saved", "user_id", req.UserID, "hours_per_day", req.HoursPerDay)
	return toScheduleResponse(saved), nil
}

func (s *scheduleServiceImpl) DeleteSchedule(ctx context.Context, userID string) error {
	ws, err := s.scheduleRepo.GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get work schedule: %w", err)
	}
	if ws == nil {
		return schedule.ErrScheduleNotFound
	}

	if err := s.scheduleRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete work schedule: %w", err)
	}
	slog.Info("Work schedule deleted", "user_id", userID)
	return nil
}

func (s *scheduleServiceImpl) ListHolidays(ctx context.Context) ([]schedule.HolidayResponse, error) {
	holidays, err := s.holidayRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	responses := make([]schedule.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, toHolidayResponse(h))
	}
	return responses, nil
}

func (s *scheduleServiceImpl) CreateHoliday(ctx context.Context, req schedule.CreateHolidayRequest) (schedule.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.HolidayResponse{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return schedule.HolidayResponse{}, fmt.Errorf("invalid date: %w", err)
	}

	exists, err := s.holidayRepo.IsHoliday(ctx, date)
	if err != nil {
		return schedule.HolidayResponse{}, fmt.Errorf("failed to check holiday: %w", err)
	}
	if exists {
		return schedule.HolidayResponse{}, schedule.ErrHolidayExists
	}

	created, err := s.holidayRepo.Create(ctx, schedule.Holiday{
		Date:        date,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return schedule.HolidayResponse{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	slog.Info("Holiday created", "date", req.Date, "name", req.Name)
	return toHolidayResponse(created), nil
}

func (s *scheduleServiceImpl) DeleteHoliday(ctx context.Context, id string) error {
	if err := s.holidayRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("Holiday deleted", "holiday_id", id)
	return nil
}

func toScheduleResponse(ws schedule.WorkSchedule) schedule.ScheduleResponse {
	resp := schedule.ScheduleResponse{
		UserID:          ws.UserID,
		HoursPerDay:     ws.HoursPerDay,
		WorkingWeekdays: ws.WorkingWeekdays,
	}
	if ws.ContractStart != nil {
		start := ws.ContractStart.Format("2006-01-02")
		resp.ContractStart = &start
	}
	if ws.ContractEnd != nil {
		end := ws.ContractEnd.Format("2006-01-02")
		resp.ContractEnd = &end
	}
	return resp
}

func toHolidayResponse(h schedule.Holiday) schedule.HolidayResponse {
	return schedule.HolidayResponse{
		ID:          h.ID,
		Date:        h.Date.Format("2006-01-02"),
		Name:        h.Name,
		Description: h.Description,
	}
}
