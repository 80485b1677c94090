package filter

import (
	"github.com/vburojevic/webtrail/internal/domain"
)

// Filter decides whether a visit is retained
type Filter interface {
	// Match returns true if the visit passes the filter
	Match(v *domain.Visit) bool
}

// Chain combines multiple filters; a visit must pass every one. Filters are
// evaluated in insertion order with short-circuit on the first miss, so the
// chain built by Compile preserves the fixed dimension precedence.
type Chain struct {
	filters []Filter
}

// NewChain creates a filter chain from multiple filters
func NewChain(filters ...Filter) *Chain {
	return &Chain{filters: filters}
}

// Match returns true only if all filters pass
func (c *Chain) Match(v *domain.Visit) bool {
	for _, f := range c.filters {
		if !f.Match(v) {
			return false
		}
	}
	return true
}

// Add appends a filter to the chain
func (c *Chain) Add(f Filter) {
	c.filters = append(c.filters, f)
}

// Apply returns the subset of visits matching the chain, preserving order.
func (c *Chain) Apply(visits []domain.Visit) []domain.Visit {
	out := make([]domain.Visit, 0, len(visits))
	for i := range visits {
		if c.Match(&visits[i]) {
			out = append(out, visits[i])
		}
	}
	return out
}
