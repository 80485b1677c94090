package filter

import (
	"github.com/vburojevic/webtrail/internal/domain"
)

// BrowserFilter filters visits by browser allow and deny sets
type BrowserFilter struct {
	allow map[domain.Browser]struct{}
	deny  map[domain.Browser]struct{}
}

// NewBrowserFilter creates a browser filter. An empty allow set admits every
// browser; the deny set always rejects.
func NewBrowserFilter(allow, deny []domain.Browser) *BrowserFilter {
	f := &BrowserFilter{}
	if len(allow) > 0 {
		f.allow = make(map[domain.Browser]struct{}, len(allow))
		for _, b := range allow {
			f.allow[b] = struct{}{}
		}
	}
	if len(deny) > 0 {
		f.deny = make(map[domain.Browser]struct{}, len(deny))
		for _, b := range deny {
			f.deny[b] = struct{}{}
		}
	}
	return f
}

// Match returns true if the visit's browser is allowed and not denied
func (f *BrowserFilter) Match(v *domain.Visit) bool {
	if f.allow != nil {
		if _, ok := f.allow[v.Browser]; !ok {
			return false
		}
	}
	if f.deny != nil {
		if _, ok := f.deny[v.Browser]; ok {
			return false
		}
	}
	return true
}
