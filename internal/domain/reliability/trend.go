package reliability

import (
	"sort"
	"time"
)

// MonthlyTrendPoint is one populated YYYY-MM bucket. Months without records
// are omitted, so the series is not necessarily contiguous.
type MonthlyTrendPoint struct {
	Month           string
	FailureCount    int
	MTBFHours       float64
	MTTRHours       float64
	AvailabilityPct float64
}

// ComputeMonthlyTrend buckets events by the YYYY-MM prefix of the failure
// date within a trailing window and re-runs the metrics engine per bucket
// using the pro-rated monthly baseline.
func ComputeMonthlyTrend(events []FailureEvent, policy OperatingHoursPolicy, windowMonths int, now time.Time) []MonthlyTrendPoint {
	if windowMonths <= 0 {
		windowMonths = 6
	}

	// Anchor the window on the first of the current month so AddDate cannot
	// normalize a month-end day into the following month.
	base := now.UTC()
	firstOfMonth := time.Date(base.Year(), base.Month(), 1, 0, 0, 0, 0, time.UTC)
	cutoff := firstOfMonth.AddDate(0, -(windowMonths - 1), 0).Format("2006-01")

	buckets := make(map[string][]FailureEvent)
	for _, event := range events {
		month := MonthKey(event.FailureDate)
		if len(month) != 7 || month < cutoff {
			continue
		}
		buckets[month] = append(buckets[month], event)
	}

	months := make([]string, 0, len(buckets))
	for month := range buckets {
		months = append(months, month)
	}
	sort.Strings(months)

	points := make([]MonthlyTrendPoint, 0, len(months))
	for _, month := range months {
		metrics := computeEquipmentWindow(buckets[month], policy.HoursPerMonth)
		points = append(points, MonthlyTrendPoint{
			Month:           month,
			FailureCount:    metrics.FailureCount,
			MTBFHours:       metrics.MTBFHours,
			MTTRHours:       metrics.MTTRHours,
			AvailabilityPct: metrics.AvailabilityPct,
		})
	}
	return points
}
