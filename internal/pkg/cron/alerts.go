package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/boris2442/task-bml/internal/domain/alert"
	"github.com/boris2442/task-bml/internal/domain/stats"
)

// AlertJobs holds the dependencies for attendance alert jobs.
type AlertJobs struct {
	statsService stats.StatsService
	alertRepo    alert.WorkAlertRepository
}

func NewAlertJobs(statsService stats.StatsService, alertRepo alert.WorkAlertRepository) *AlertJobs {
	return &AlertJobs{
		statsService: statsService,
		alertRepo:    alertRepo,
	}
}

// Register adds the alert jobs to the scheduler.
func (j *AlertJobs) Register(scheduler *Scheduler) {
	scheduler.AddJob("detect_behind_schedule", 6*time.Hour, j.DetectBehindSchedule)
}

// DetectBehindSchedule records a work alert for every employee whose
// validated hours fall below 80% of their expected hours for the current
// month. Alerts are deduplicated per user and period.
func (j *AlertJobs) DetectBehindSchedule(ctx context.Context) error {
	now := time.Now()
	periodStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)

	behind, err := j.statsService.BehindSchedule(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute behind-schedule employees: %w", err)
	}

	created := 0
	for _, emp := range behind {
		exists, err := j.alertRepo.ExistsForUserAndPeriod(ctx, emp.UserID, alert.TypeBehindSchedule, periodStart, periodEnd)
		if err != nil {
			slog.Error("Failed to check existing alert", "user_id", emp.UserID, "error", err)
			continue
		}
		if exists {
			continue
		}

		workAlert := alert.WorkAlert{
			UserID:        emp.UserID,
			Type:          alert.TypeBehindSchedule,
			Message:       fmt.Sprintf("%s has completed %.2f of %.2f expected hours (%.2f%%)", emp.Name, emp.ActualHours, emp.ExpectedHours, emp.Percentage),
			ExpectedHours: emp.ExpectedHours,
			ActualHours:   emp.ActualHours,
			Percentage:    emp.Percentage,
			PeriodStart:   periodStart,
			PeriodEnd:     periodEnd,
		}

		if _, err := j.alertRepo.Create(ctx, workAlert); err != nil {
			slog.Error("Failed to create work alert", "user_id", emp.UserID, "error", err)
			continue
		}
		created++
	}

	if created > 0 {
		slog.Info("Behind-schedule alerts created", "count", created, "period_start", periodStart.Format("2006-01-02"))
	}
	return nil
}
