package filter

import (
	"regexp"
	"strings"
)

// matcher evaluates a pattern list against a string, in either literal
// (case-insensitive substring) or regex mode. Regexes are compiled once, at
// spec compile time, with case-insensitive matching to mirror literal mode.
type matcher struct {
	literals []string
	regexes  []*regexp.Regexp
}

func newMatcher(patterns []string, useRegex bool) (*matcher, error) {
	m := &matcher{}
	if !useRegex {
		m.literals = make([]string, len(patterns))
		for i, p := range patterns {
			m.literals[i] = strings.ToLower(p)
		}
		return m, nil
	}
	m.regexes = make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, err
		}
		m.regexes[i] = re
	}
	return m, nil
}

// matchAny returns true if any pattern matches s
func (m *matcher) matchAny(s string) bool {
	if m.regexes != nil {
		for _, re := range m.regexes {
			if re.MatchString(s) {
				return true
			}
		}
		return false
	}
	lower := strings.ToLower(s)
	for _, lit := range m.literals {
		if strings.Contains(lower, lit) {
			return true
		}
	}
	return false
}
