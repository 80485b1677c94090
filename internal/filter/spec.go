package filter

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/vburojevic/webtrail/internal/domain"
)

// ErrInvalidSpec marks a filter specification that can never match or cannot
// be compiled. It is the only error in the pipeline that aborts a run, and it
// is raised before any extraction starts.
var ErrInvalidSpec = errors.New("invalid filter spec")

// Spec is the immutable description of which visits to retain. Zero values
// mean "unbounded" for their dimension. A Spec is built once from config/CLI
// input and never mutated; compile it with Compile to evaluate visits.
type Spec struct {
	// Time window, inclusive. Zero times are unbounded.
	From time.Time
	To   time.Time

	// Domain patterns: literal substring match, or regex when UseRegex is
	// set. Deny is evaluated after allow and overrides it.
	DomainAllow []string
	DomainDeny  []string

	// Keywords match title OR url, case-insensitively (literal mode) or as
	// patterns (regex mode).
	Keywords []string

	// Visit-count bounds, inclusive. MaxVisits nil means unbounded.
	MinVisits uint
	MaxVisits *uint

	// UseRegex switches domain patterns and keywords from literal substring
	// matching to regular expressions.
	UseRegex bool

	// Browser allow/deny sets. Empty allow means all browsers.
	Browsers        []domain.Browser
	ExcludeBrowsers []domain.Browser
}

// Validate rejects contradictory or malformed specs: visit bounds with
// min > max, an inverted time window, or (in regex mode) patterns that do
// not compile. All failures wrap ErrInvalidSpec.
func (s *Spec) Validate() error {
	if s.MaxVisits != nil && s.MinVisits > *s.MaxVisits {
		return fmt.Errorf("%w: visit bounds min %d > max %d", ErrInvalidSpec, s.MinVisits, *s.MaxVisits)
	}
	if !s.From.IsZero() && !s.To.IsZero() && s.From.After(s.To) {
		return fmt.Errorf("%w: time window from %s is after to %s", ErrInvalidSpec,
			s.From.Format(time.RFC3339), s.To.Format(time.RFC3339))
	}
	if s.UseRegex {
		for _, group := range [][]string{s.DomainAllow, s.DomainDeny, s.Keywords} {
			for _, pattern := range group {
				if _, err := regexp.Compile("(?i)" + pattern); err != nil {
					return fmt.Errorf("%w: pattern %q: %v", ErrInvalidSpec, pattern, err)
				}
			}
		}
	}
	return nil
}

// Compile validates the spec and builds the evaluation chain. Dimension
// precedence is fixed: browser allow/deny, time window, visit-count bounds,
// domain allow, domain deny, keywords. Deny overrides a prior allow match.
func Compile(s *Spec) (*Chain, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	chain := NewChain()

	if len(s.Browsers) > 0 || len(s.ExcludeBrowsers) > 0 {
		chain.Add(NewBrowserFilter(s.Browsers, s.ExcludeBrowsers))
	}
	if !s.From.IsZero() || !s.To.IsZero() {
		chain.Add(NewTimeWindowFilter(s.From, s.To))
	}
	if s.MinVisits > 0 || s.MaxVisits != nil {
		chain.Add(NewVisitCountFilter(s.MinVisits, s.MaxVisits))
	}
	if len(s.DomainAllow) > 0 {
		m, err := newMatcher(s.DomainAllow, s.UseRegex)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
		}
		chain.Add(&DomainAllowFilter{patterns: m})
	}
	if len(s.DomainDeny) > 0 {
		m, err := newMatcher(s.DomainDeny, s.UseRegex)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
		}
		chain.Add(&DomainDenyFilter{patterns: m})
	}
	if len(s.Keywords) > 0 {
		m, err := newMatcher(s.Keywords, s.UseRegex)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
		}
		chain.Add(&KeywordFilter{patterns: m})
	}

	return chain, nil
}

// IsRestrictive reports whether any content dimension is populated. The
// collector widens its per-source fetch budget when filters are active so
// matches beyond the display limit are not lost.
func (s *Spec) IsRestrictive() bool {
	return len(s.DomainAllow) > 0 || len(s.DomainDeny) > 0 ||
		len(s.Keywords) > 0 || s.MinVisits > 0 || s.MaxVisits != nil
}
