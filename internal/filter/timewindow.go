package filter

import (
	"time"

	"github.com/vburojevic/webtrail/internal/domain"
)

// TimeWindowFilter filters visits to an inclusive [from, to] window
type TimeWindowFilter struct {
	from time.Time
	to   time.Time
}

// NewTimeWindowFilter creates a time window filter. A zero bound is open on
// that side.
func NewTimeWindowFilter(from, to time.Time) *TimeWindowFilter {
	return &TimeWindowFilter{from: from, to: to}
}

// Match returns true if the visit time falls within the window, inclusive
func (f *TimeWindowFilter) Match(v *domain.Visit) bool {
	if !f.from.IsZero() && v.VisitedAt.Before(f.from) {
		return false
	}
	if !f.to.IsZero() && v.VisitedAt.After(f.to) {
		return false
	}
	return true
}
