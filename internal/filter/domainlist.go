package filter

import (
	"github.com/vburojevic/webtrail/internal/domain"
)

// DomainAllowFilter admits visits whose host matches at least one pattern
type DomainAllowFilter struct {
	patterns *matcher
}

// Match returns true if the visit's domain matches any allow pattern
func (f *DomainAllowFilter) Match(v *domain.Visit) bool {
	return f.patterns.matchAny(v.Domain())
}

// DomainDenyFilter rejects visits whose host matches any pattern. It runs
// after the allow filter in the chain, so deny overrides allow.
type DomainDenyFilter struct {
	patterns *matcher
}

// Match returns true if the visit's domain matches no deny pattern
func (f *DomainDenyFilter) Match(v *domain.Visit) bool {
	return !f.patterns.matchAny(v.Domain())
}
