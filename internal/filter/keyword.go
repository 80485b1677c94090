package filter

import (
	"github.com/vburojevic/webtrail/internal/domain"
)

// KeywordFilter admits visits where at least one keyword matches the title
// or the URL
type KeywordFilter struct {
	patterns *matcher
}

// Match returns true if any keyword matches title or URL
func (f *KeywordFilter) Match(v *domain.Visit) bool {
	return f.patterns.matchAny(v.Title) || f.patterns.matchAny(v.URL)
}
