package service

import (
	"fmt"
	"math"
	"time"

	"voicedeck/internal/model"
)

// mean returns the average of vals, 0 for an empty slice
func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// round1 rounds to one decimal place
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// clampPercent bounds a percentage to [0, 100]
func clampPercent(v float64) float64 {
	return clamp(v, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// periodKey buckets a timestamp: the ISO date for daily, the ISO date of the
// Sunday-or-earlier week start for weekly, "YYYY-MM" for monthly.
func periodKey(t time.Time, period model.Period) string {
	t = t.UTC()
	switch period {
	case model.PeriodWeekly:
		return t.AddDate(0, 0, -int(t.Weekday())).Format("2006-01-02")
	case model.PeriodMonthly:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

// daysBetween returns the span from start to end in days, floored at one so
// per-day rates stay finite for brand-new or single-burst activity.
func daysBetween(start, end time.Time) float64 {
	days := end.Sub(start).Hours() / 24
	if days < 1 {
		return 1
	}
	return days
}

// rangeTag renders a date range into a stable cache-key fragment. Identical
// logical parameters must yield identical keys for the cache to be effective.
func rangeTag(rng *model.DateRange) string {
	if rng == nil {
		return "all"
	}
	return fmt.Sprintf("%s_%s",
		rng.Start.UTC().Format(time.RFC3339),
		rng.End.UTC().Format(time.RFC3339))
}
