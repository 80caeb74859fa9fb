package stats

// Period is the closed date range a statistic covers.
type Period struct {
	Start string `json:"start"` // YYYY-MM-DD
	End   string `json:"end"`   // YYYY-MM-DD
}

// UserStats is the single most-reused primitive: every dashboard and report
// view is a projection of it over different ranges.
type UserStats struct {
	ExpectedHours float64 `json:"expected_hours"`
	ActualHours   float64 `json:"actual_hours"`
	MissingHours  float64 `json:"missing_hours"`
	Percentage    float64 `json:"percentage"`
	Behind        bool    `json:"behind"`
	Period        Period  `json:"period"`
}

// EmployeeStats pairs lifetime stats with the employee they belong to.
type EmployeeStats struct {
	UserID    string  `json:"user_id"`
	Name      string  `json:"name"`
	BadgeCode string  `json:"badge_code"`
	UserStats
}

// WeekStats is one Monday-start calendar week bucket.
type WeekStats struct {
	UserStats
	Week int `json:"week"` // ISO week number
	Year int `json:"year"`
}

// MonthStats is one calendar month bucket.
type MonthStats struct {
	UserStats
	Month int    `json:"month"`
	Year  int    `json:"year"`
	Label string `json:"label"` // e.g. "February 2026"
}

// OvertimeEntry is one validated record carrying overtime hours.
type OvertimeEntry struct {
	UserName      string  `json:"user_name"`
	Date          string  `json:"date"`
	HoursOvertime float64 `json:"hours_overtime"`
}

// ApprovalRate summarizes processed vs pending records.
type ApprovalRate struct {
	Approved           int64   `json:"approved"`
	Rejected           int64   `json:"rejected"`
	Pending            int64   `json:"pending"`
	PercentageApproved float64 `json:"percentage_approved"`
}

// AdminDashboard is the admin landing snapshot.
type AdminDashboard struct {
	TotalEmployees  int64           `json:"total_employees"`
	PresencesToday  int64           `json:"presences_today"`
	PendingApproval int64           `json:"pending_approval"`
	HoursToday      float64         `json:"hours_today"`
	BehindSchedule  []EmployeeStats `json:"behind_schedule"`
	TopProductive   []EmployeeStats `json:"top_productive"`
	RecentOvertime  []OvertimeEntry `json:"recent_overtime"`
	ApprovalRate    ApprovalRate    `json:"approval_rate"`
	HolidayCount    int64           `json:"holiday_count"`
}

// RecentPresence is a row of the employee dashboard's recent list.
type RecentPresence struct {
	ID     string  `json:"id"`
	Date   string  `json:"date"`
	Status string  `json:"status"`
	Hours  float64 `json:"hours"`
}

// EmployeeDashboard is the employee landing snapshot.
type EmployeeDashboard struct {
	TodayStatus *RecentPresence  `json:"today,omitempty"`
	MonthHours  float64          `json:"month_hours"`
	DaysPresent int              `json:"days_present"`
	// WeekdayHours holds, Monday first, the validated hours of each day of
	// the current week. A day without a validated record reports 0.
	WeekdayHours []float64        `json:"weekday_hours"`
	Recent       []RecentPresence `json:"recent"`
	Lifetime     UserStats        `json:"lifetime"`
}

// EmployeeDetail is the admin's per-employee drill-down.
type EmployeeDetail struct {
	UserID        string       `json:"user_id"`
	Name          string       `json:"name"`
	BadgeCode     string       `json:"badge_code"`
	Lifetime      UserStats    `json:"lifetime"`
	Weekly        []WeekStats  `json:"weekly"`
	Monthly       []MonthStats `json:"monthly"`
	TotalOvertime float64      `json:"total_overtime"`
}
