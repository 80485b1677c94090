package filter

import (
	"github.com/vburojevic/webtrail/internal/domain"
)

// VisitCountFilter filters visits by cumulative visit-count bounds
type VisitCountFilter struct {
	min uint
	max *uint
}

// NewVisitCountFilter creates a visit count filter. A nil max is unbounded.
func NewVisitCountFilter(min uint, max *uint) *VisitCountFilter {
	return &VisitCountFilter{min: min, max: max}
}

// Match returns true if the count is within [min, max], inclusive
func (f *VisitCountFilter) Match(v *domain.Visit) bool {
	if v.VisitCount < f.min {
		return false
	}
	if f.max != nil && v.VisitCount > *f.max {
		return false
	}
	return true
}
