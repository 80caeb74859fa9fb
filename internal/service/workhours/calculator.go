package workhours

import (
	"math"
	"time"
)

// BehindThreshold is the compliance percentage under which an employee is
// considered behind schedule.
const BehindThreshold = 80.0

// capHoursPerDay caps the regular worked hours of a single record. Hours
// beyond the cap count as overtime.
const capHoursPerDay = 4.0

// RawHours returns the whole number of hours between arrival and departure.
// Partial hours are truncated: a 6h30 presence counts as 6 hours.
func RawHours(arrival, departure time.Time) float64 {
	if departure.Before(arrival) {
		return 0
	}
	return float64(int(departure.Sub(arrival).Hours()))
}

// SplitWorkedAndOvertime splits a raw duration into regular worked hours,
// capped at capHoursPerDay, and the overtime remainder. Both are rounded to
// two decimal places.
func SplitWorkedAndOvertime(raw float64) (worked, overtime float64) {
	worked = math.Min(raw, capHoursPerDay)
	overtime = math.Max(0, raw-capHoursPerDay)
	return Round2(worked), Round2(overtime)
}

// CompliancePercentage returns actual/expected as a percentage rounded to two
// decimal places. Zero expected hours yields 0, never a division error. The
// result is not capped at 100.
func CompliancePercentage(actual, expected float64) float64 {
	if expected == 0 {
		return 0
	}
	return Round2(actual / expected * 100)
}

// IsBehindSchedule reports whether the compliance percentage is strictly
// below the threshold. Exactly 80% is not behind.
func IsBehindSchedule(percentage float64) bool {
	return percentage < BehindThreshold
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
