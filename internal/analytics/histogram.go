package analytics

import (
	"sort"

	"github.com/vburojevic/webtrail/internal/domain"
)

// Unit selects the temporal histogram bucket size
type Unit string

const (
	UnitHour    Unit = "hour"
	UnitDay     Unit = "day"
	UnitWeekday Unit = "weekday"
	UnitMonth   Unit = "month"
)

// ParseUnit converts a config/CLI string to a Unit, defaulting to hour
func ParseUnit(s string) Unit {
	switch s {
	case "day":
		return UnitDay
	case "weekday":
		return UnitWeekday
	case "month":
		return UnitMonth
	default:
		return UnitHour
	}
}

var weekdayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// histogram buckets visit times by the given unit. Boundaries use the
// canonical UTC timestamp. Weekday output always lists all seven days in
// calendar order, zero counts included; the other units list only observed
// buckets, sorted by label.
func histogram(visits []domain.Visit, unit Unit) []Bucket {
	counts := make(map[string]int)
	for i := range visits {
		counts[bucketLabel(&visits[i], unit)]++
	}

	total := len(visits)
	pct := func(n int) float64 {
		if total == 0 {
			return 0
		}
		return float64(n) / float64(total) * 100
	}

	if unit == UnitWeekday {
		out := make([]Bucket, 0, len(weekdayOrder))
		for _, day := range weekdayOrder {
			out = append(out, Bucket{Label: day, Count: counts[day], Percent: pct(counts[day])})
		}
		return out
	}

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	out := make([]Bucket, 0, len(labels))
	for _, label := range labels {
		out = append(out, Bucket{Label: label, Count: counts[label], Percent: pct(counts[label])})
	}
	return out
}

func bucketLabel(v *domain.Visit, unit Unit) string {
	ts := v.VisitedAt.UTC()
	switch unit {
	case UnitDay:
		return ts.Format("2006-01-02")
	case UnitWeekday:
		return ts.Weekday().String()
	case UnitMonth:
		return ts.Format("2006-01")
	default:
		return ts.Format("15:00")
	}
}
