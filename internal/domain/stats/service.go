package stats

import "context"

// StatsService builds per-employee and cross-employee summaries on top of
// the hours calculation engine. Pure read computations over store state at
// call time; no caching.
type StatsService interface {
	// AllEmployeeStats runs lifetime stats for every employee account.
	AllEmployeeStats(ctx context.Context) ([]EmployeeStats, error)

	// BehindSchedule filters AllEmployeeStats to employees under the
	// compliance threshold.
	BehindSchedule(ctx context.Context) ([]EmployeeStats, error)

	// TopProductive returns the n employees with the most validated hours,
	// stable-sorted descending on actual hours.
	TopProductive(ctx context.Context, n int) ([]EmployeeStats, error)

	// WeeklyStats iterates Monday-start weeks from the employee's
	// registration to today, the final bucket clamped to today.
	WeeklyStats(ctx context.Context, userID string) ([]WeekStats, error)

	// MonthlyStats iterates calendar months from registration to today.
	MonthlyStats(ctx context.Context, userID string) ([]MonthStats, error)

	// WeekdayBreakdown reports, Monday first, the validated hours of each
	// day of the current week.
	WeekdayBreakdown(ctx context.Context, userID string) ([]float64, error)

	// AdminDashboard assembles the admin landing snapshot.
	AdminDashboard(ctx context.Context) (AdminDashboard, error)

	// EmployeeDashboard assembles the authenticated employee's snapshot.
	EmployeeDashboard(ctx context.Context, userID string) (EmployeeDashboard, error)

	// EmployeeDetail assembles the admin's per-employee drill-down.
	EmployeeDetail(ctx context.Context, userID string) (EmployeeDetail, error)
}
