// Package timeline holds the unified, ordered collection of canonical visits
// merged from every enabled source.
package timeline

import (
	"sort"

	"github.com/vburojevic/webtrail/internal/domain"
	"github.com/vburojevic/webtrail/internal/filter"
)

// Timeline is the merged visit collection. It is built once per run, after
// every adapter has finished, and read-only views (filter, slice, aggregate
// input) are derived from it.
type Timeline struct {
	visits []domain.Visit
}

// New creates a timeline over the given visits without copying
func New(visits []domain.Visit) *Timeline {
	return &Timeline{visits: visits}
}

// Append adds visits to the timeline
func (t *Timeline) Append(visits ...domain.Visit) {
	t.visits = append(t.visits, visits...)
}

// Len returns the number of visits
func (t *Timeline) Len() int {
	return len(t.visits)
}

// Visits exposes the backing slice. Callers must not mutate it.
func (t *Timeline) Visits() []domain.Visit {
	return t.visits
}

// Sort orders the timeline reverse-chronologically (newest first). Ties on
// the timestamp break by URL, then browser, so repeated runs over the same
// input produce identical order.
func (t *Timeline) Sort() {
	sort.SliceStable(t.visits, func(i, j int) bool {
		a, b := &t.visits[i], &t.visits[j]
		if !a.VisitedAt.Equal(b.VisitedAt) {
			return a.VisitedAt.After(b.VisitedAt)
		}
		if a.URL != b.URL {
			return a.URL < b.URL
		}
		return a.Browser < b.Browser
	})
}

// Filter returns a new timeline containing only visits matching the chain,
// preserving order.
func (t *Timeline) Filter(chain *filter.Chain) *Timeline {
	return &Timeline{visits: chain.Apply(t.visits)}
}

// Slice returns a new timeline window [offset, offset+limit). A limit of 0
// means no cap.
func (t *Timeline) Slice(offset, limit int) *Timeline {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(t.visits) {
		return &Timeline{}
	}
	rest := t.visits[offset:]
	if limit > 0 && limit < len(rest) {
		rest = rest[:limit]
	}
	return &Timeline{visits: rest}
}

// Anonymize rewrites every visit URL with its anonymized form, preserving
// scheme and host. It runs once, upstream of all serializers, so no format
// ever sees a raw path or query.
func (t *Timeline) Anonymize() {
	for i := range t.visits {
		t.visits[i].URL = domain.AnonymizeURL(t.visits[i].URL)
	}
}
