package stats

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/boris2442/task-bml/internal/domain/attendance"
	"github.com/boris2442/task-bml/internal/domain/schedule"
	"github.com/boris2442/task-bml/internal/domain/stats"
	"github.com/boris2442/task-bml/internal/domain/user"
	"github.com/boris2442/task-bml/internal/service/workhours"
)

const (
	topProductiveDefault = 5
	recentOvertimeLimit  = 10
	recentPresenceLimit  = 5
)

type statsService struct {
	engine         *workhours.Engine
	userRepo       user.UserRepository
	attendanceRepo attendance.AttendanceRepository
	holidayRepo    schedule.HolidayRepository
}

func NewStatsService(
	engine *workhours.Engine,
	userRepo user.UserRepository,
	attendanceRepo attendance.AttendanceRepository,
	holidayRepo schedule.HolidayRepository,
) stats.StatsService {
	return &statsService{
		engine:         engine,
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		holidayRepo:    holidayRepo,
	}
}

func (s *statsService) AllEmployeeStats(ctx context.Context) ([]stats.EmployeeStats, error) {
	employees, err := s.userRepo.ListByRole(ctx, user.RoleEmployee)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	result := make([]stats.EmployeeStats, 0, len(employees))
	for _, emp := range employees {
		us, err := s.engine.UserStats(ctx, emp, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to compute stats for user %s: %w", emp.ID, err)
		}
		result = append(result, stats.EmployeeStats{
			UserID:    emp.ID,
			Name:      emp.Name,
			BadgeCode: emp.BadgeCode,
			UserStats: us,
		})
	}
	return result, nil
}

func (s *statsService) BehindSchedule(ctx context.Context) ([]stats.EmployeeStats, error) {
	all, err := s.AllEmployeeStats(ctx)
	if err != nil {
		return nil, err
	}

	behind := make([]stats.EmployeeStats, 0)
	for _, emp := range all {
		if emp.Behind {
			behind = append(behind, emp)
		}
	}
	return behind, nil
}

func (s *statsService) TopProductive(ctx context.Context, n int) ([]stats.EmployeeStats, error) {
	if n <= 0 {
		n = topProductiveDefault
	}

	all, err := s.AllEmployeeStats(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].ActualHours > all[j].ActualHours
	})
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

func (s *statsService) WeeklyStats(ctx context.Context, userID string) ([]stats.WeekStats, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := workhours.DateOnly(time.Now())
	cursor := mondayOf(workhours.DateOnly(u.RegisteredAt))

	weeks := make([]stats.WeekStats, 0)
	for !cursor.After(today) {
		weekEnd := cursor.AddDate(0, 0, 6)
		if weekEnd.After(today) {
			weekEnd = today
		}

		us, err := s.engine.UserStats(ctx, u, &cursor, &weekEnd)
		if err != nil {
			return nil, err
		}

		year, week := cursor.ISOWeek()
		weeks = append(weeks, stats.WeekStats{
			UserStats: us,
			Week:      week,
			Year:      year,
		})
		cursor = cursor.AddDate(0, 0, 7)
	}
	return weeks, nil
}

func (s *statsService) MonthlyStats(ctx context.Context, userID string) ([]stats.MonthStats, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := workhours.DateOnly(time.Now())
	registered := workhours.DateOnly(u.RegisteredAt)
	cursor := time.Date(registered.Year(), registered.Month(), 1, 0, 0, 0, 0, time.UTC)

	months := make([]stats.MonthStats, 0)
	for !cursor.After(today) {
		monthStart := cursor
		if monthStart.Before(registered) {
			monthStart = registered
		}
		monthEnd := cursor.AddDate(0, 1, -1)
		if monthEnd.After(today) {
			monthEnd = today
		}

		us, err := s.engine.UserStats(ctx, u, &monthStart, &monthEnd)
		if err != nil {
			return nil, err
		}

		months = append(months, stats.MonthStats{
			UserStats: us,
			Month:     int(cursor.Month()),
			Year:      cursor.Year(),
			Label:     fmt.Sprintf("%s %d", cursor.Month().String(), cursor.Year()),
		})
		cursor = cursor.AddDate(0, 1, 0)
	}
	return months, nil
}

func (s *statsService) WeekdayBreakdown(ctx context.Context, userID string) ([]float64, error) {
	today := workhours.DateOnly(time.Now())
	weekStart := mondayOf(today)
	weekEnd := weekStart.AddDate(0, 0, 6)

	validated := attendance.StatusValidated
	records, err := s.attendanceRepo.ListByUserInRange(ctx, userID, weekStart, weekEnd, &validated)
	if err != nil {
		return nil, fmt.Errorf("failed to list validated attendance: %w", err)
	}

	// Monday first. Only one validated record can exist per day.
	hours := make([]float64, 7)
	for _, rec := range records {
		idx := int(rec.Date.Sub(weekStart).Hours() / 24)
		if idx >= 0 && idx < 7 {
			hours[idx] = rec.HoursWorked
		}
	}
	return hours, nil
}

func (s *statsService) AdminDashboard(ctx context.Context) (stats.AdminDashboard, error) {
	var dashboard stats.AdminDashboard

	totalEmployees, err := s.userRepo.CountByRole(ctx, user.RoleEmployee)
	if err != nil {
		return dashboard, fmt.Errorf("failed to count employees: %w", err)
	}

	today := workhours.DateOnly(time.Now())
	presencesToday, err := s.attendanceRepo.CountOnDate(ctx, today, nil)
	if err != nil {
		return dashboard, fmt.Errorf("failed to count presences: %w", err)
	}

	pending, err := s.attendanceRepo.CountByStatus(ctx, []attendance.Status{
		attendance.StatusArrivalPending,
		attendance.StatusDepartPending,
	})
	if err != nil {
		return dashboard, fmt.Errorf("failed to count pending records: %w", err)
	}

	hoursToday, err := s.attendanceRepo.SumValidatedHoursOnDate(ctx, today)
	if err != nil {
		return dashboard, fmt.Errorf("failed to sum validated hours: %w", err)
	}

	behind, err := s.BehindSchedule(ctx)
	if err != nil {
		return dashboard, err
	}

	top, err := s.TopProductive(ctx, topProductiveDefault)
	if err != nil {
		return dashboard, err
	}

	overtimeRecords, err := s.attendanceRepo.ListRecentOvertime(ctx, recentOvertimeLimit)
	if err != nil {
		return dashboard, fmt.Errorf("failed to list recent overtime: %w", err)
	}
	overtime := make([]stats.OvertimeEntry, 0, len(overtimeRecords))
	for _, rec := range overtimeRecords {
		entry := stats.OvertimeEntry{
			Date:          rec.Date.Format("2006-01-02"),
			HoursOvertime: rec.HoursOvertime,
		}
		if rec.UserName != nil {
			entry.UserName = *rec.UserName
		}
		overtime = append(overtime, entry)
	}

	approvalRate, err := s.approvalRate(ctx)
	if err != nil {
		return dashboard, err
	}

	holidayCount, err := s.holidayRepo.Count(ctx)
	if err != nil {
		return dashboard, fmt.Errorf("failed to count holidays: %w", err)
	}

	dashboard = stats.AdminDashboard{
		TotalEmployees:  totalEmployees,
		PresencesToday:  presencesToday,
		PendingApproval: pending,
		HoursToday:      workhours.Round2(hoursToday),
		BehindSchedule:  behind,
		TopProductive:   top,
		RecentOvertime:  overtime,
		ApprovalRate:    approvalRate,
		HolidayCount:    holidayCount,
	}
	return dashboard, nil
}

func (s *statsService) EmployeeDashboard(ctx context.Context, userID string) (stats.EmployeeDashboard, error) {
	var dashboard stats.EmployeeDashboard

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return dashboard, err
	}

	today := workhours.DateOnly(time.Now())
	todayRecord, err := s.attendanceRepo.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return dashboard, fmt.Errorf("failed to get today's record: %w", err)
	}
	if todayRecord != nil {
		dashboard.TodayStatus = &stats.RecentPresence{
			ID:     todayRecord.ID,
			Date:   todayRecord.Date.Format("2006-01-02"),
			Status: string(todayRecord.Status),
			Hours:  todayRecord.HoursWorked,
		}
	}

	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	validated := attendance.StatusValidated
	monthRecords, err := s.attendanceRepo.ListByUserInRange(ctx, userID, monthStart, monthEnd, &validated)
	if err != nil {
		return dashboard, fmt.Errorf("failed to list month records: %w", err)
	}
	var monthHours float64
	for _, rec := range monthRecords {
		monthHours += rec.HoursWorked
	}
	dashboard.MonthHours = workhours.Round2(monthHours)
	dashboard.DaysPresent = len(monthRecords)

	weekdayHours, err := s.WeekdayBreakdown(ctx, userID)
	if err != nil {
		return dashboard, err
	}
	dashboard.WeekdayHours = weekdayHours

	recent, _, err := s.attendanceRepo.List(ctx, attendance.Filter{
		UserID: &userID,
		Page:   1,
		Limit:  recentPresenceLimit,
	})
	if err != nil {
		return dashboard, fmt.Errorf("failed to list recent records: %w", err)
	}
	dashboard.Recent = make([]stats.RecentPresence, 0, len(recent))
	for _, rec := range recent {
		dashboard.Recent = append(dashboard.Recent, stats.RecentPresence{
			ID:     rec.ID,
			Date:   rec.Date.Format("2006-01-02"),
			Status: string(rec.Status),
			Hours:  rec.HoursWorked,
		})
	}

	lifetime, err := s.engine.UserStats(ctx, u, nil, nil)
	if err != nil {
		return dashboard, err
	}
	dashboard.Lifetime = lifetime

	return dashboard, nil
}

func (s *statsService) EmployeeDetail(ctx context.Context, userID string) (stats.EmployeeDetail, error) {
	var detail stats.EmployeeDetail

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return detail, err
	}

	lifetime, err := s.engine.UserStats(ctx, u, nil, nil)
	if err != nil {
		return detail, err
	}

	weekly, err := s.WeeklyStats(ctx, userID)
	if err != nil {
		return detail, err
	}

	monthly, err := s.MonthlyStats(ctx, userID)
	if err != nil {
		return detail, err
	}

	validated := attendance.StatusValidated
	records, err := s.attendanceRepo.ListByUserInRange(ctx, userID, workhours.DateOnly(u.RegisteredAt), workhours.DateOnly(time.Now()), &validated)
	if err != nil {
		return detail, fmt.Errorf("failed to list validated attendance: %w", err)
	}
	var totalOvertime float64
	for _, rec := range records {
		totalOvertime += rec.HoursOvertime
	}

	detail = stats.EmployeeDetail{
		UserID:        u.ID,
		Name:          u.Name,
		BadgeCode:     u.BadgeCode,
		Lifetime:      lifetime,
		Weekly:        weekly,
		Monthly:       monthly,
		TotalOvertime: workhours.Round2(totalOvertime),
	}
	return detail, nil
}

func (s *statsService) approvalRate(ctx context.Context) (stats.ApprovalRate, error) {
	approved, err := s.attendanceRepo.CountByStatus(ctx, []attendance.Status{attendance.StatusValidated})
	if err != nil {
		return stats.ApprovalRate{}, fmt.Errorf("failed to count validated records: %w", err)
	}
	rejected, err := s.attendanceRepo.CountByStatus(ctx, []attendance.Status{attendance.StatusRejected})
	if err != nil {
		return stats.ApprovalRate{}, fmt.Errorf("failed to count rejected records: %w", err)
	}
	pending, err := s.attendanceRepo.CountByStatus(ctx, []attendance.Status{
		attendance.StatusArrivalPending,
		attendance.StatusDepartPending,
	})
	if err != nil {
		return stats.ApprovalRate{}, fmt.Errorf("failed to count pending records: %w", err)
	}

	rate := stats.ApprovalRate{
		Approved: approved,
		Rejected: rejected,
		Pending:  pending,
	}
	processed := approved + rejected
	if processed > 0 {
		rate.PercentageApproved = workhours.Round2(float64(approved) / float64(processed) * 100)
	}
	return rate, nil
}

// mondayOf returns the Monday of the week containing d.
func mondayOf(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}
