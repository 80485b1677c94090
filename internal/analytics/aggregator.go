// Package analytics computes derived summary views over a filtered visit set.
package analytics

import (
	"sort"
	"time"

	"github.com/vburojevic/webtrail/internal/domain"
)

// Report is a read-only summary computed over one visit snapshot. It is
// never mutated after construction; callers recompute it from scratch when
// the underlying set changes.
//
// Visit totals floor each entry's contribution at 1: several browser schemas
// report visit_count as 0 for rows they never incremented, and counting
// those as zero would undercount activity the row itself proves happened.
// The same policy applies to every total in the report.
type Report struct {
	TotalEntries  int     `json:"total_entries"`
	TotalVisits   uint64  `json:"total_visits"`
	UniqueDomains int     `json:"unique_domains"`
	UniqueURLs    int     `json:"unique_urls"`
	AvgVisits     float64 `json:"average_visits_per_entry"`

	Earliest time.Time `json:"earliest,omitzero"`
	Latest   time.Time `json:"latest,omitzero"`
	SpanDays int       `json:"span_days"`

	Browsers   []BrowserUsage `json:"browser_usage"`
	TopDomains []DomainStat   `json:"top_domains"`
	Histogram  []Bucket       `json:"histogram"`
	GroupBy    Unit           `json:"group_by"`
}

// BrowserUsage is one browser's share of the filtered set
type BrowserUsage struct {
	Browser       domain.Browser `json:"browser"`
	Entries       int            `json:"entries"`
	Visits        uint64         `json:"visits"`
	UniqueDomains int            `json:"unique_domains"`
	EntryPercent  float64        `json:"entry_percent"`
	VisitPercent  float64        `json:"visit_percent"`
}

// DomainStat is one domain's ranking row
type DomainStat struct {
	Domain   string           `json:"domain"`
	Entries  int              `json:"entries"`
	Visits   uint64           `json:"visits"`
	Browsers []domain.Browser `json:"browsers"`
}

// Bucket is one temporal histogram slot
type Bucket struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Options configures aggregation
type Options struct {
	// TopLimit caps the top-domains ranking. Zero applies DefaultTopLimit.
	TopLimit int
	// GroupBy selects the histogram bucket unit. Empty applies UnitHour.
	GroupBy Unit
}

// DefaultTopLimit caps the top-domains ranking when no limit is configured.
const DefaultTopLimit = 20

// effectiveVisits floors an entry's visit contribution at 1
func effectiveVisits(v *domain.Visit) uint64 {
	if v.VisitCount == 0 {
		return 1
	}
	return uint64(v.VisitCount)
}

// Aggregate computes a Report over the given snapshot. It is pure: the input
// slice is not modified, and a fixed input always produces a byte-identical
// report, ties included.
func Aggregate(visits []domain.Visit, opts Options) *Report {
	if opts.TopLimit <= 0 {
		opts.TopLimit = DefaultTopLimit
	}
	if opts.GroupBy == "" {
		opts.GroupBy = UnitHour
	}

	r := &Report{GroupBy: opts.GroupBy}
	r.TotalEntries = len(visits)
	if len(visits) == 0 {
		r.Browsers = []BrowserUsage{}
		r.TopDomains = []DomainStat{}
		r.Histogram = histogram(nil, opts.GroupBy)
		return r
	}

	type domainAgg struct {
		entries  int
		visits   uint64
		browsers map[domain.Browser]struct{}
	}
	type browserAgg struct {
		entries int
		visits  uint64
		domains map[string]struct{}
	}

	domains := make(map[string]*domainAgg)
	browsers := make(map[domain.Browser]*browserAgg)
	urls := make(map[string]struct{})

	r.Earliest = visits[0].VisitedAt
	r.Latest = visits[0].VisitedAt

	for i := range visits {
		v := &visits[i]
		ev := effectiveVisits(v)
		r.TotalVisits += ev
		urls[v.URL] = struct{}{}

		if v.VisitedAt.Before(r.Earliest) {
			r.Earliest = v.VisitedAt
		}
		if v.VisitedAt.After(r.Latest) {
			r.Latest = v.VisitedAt
		}

		host := v.Domain()
		da := domains[host]
		if da == nil {
			da = &domainAgg{browsers: make(map[domain.Browser]struct{})}
			domains[host] = da
		}
		da.entries++
		da.visits += ev
		da.browsers[v.Browser] = struct{}{}

		ba := browsers[v.Browser]
		if ba == nil {
			ba = &browserAgg{domains: make(map[string]struct{})}
			browsers[v.Browser] = ba
		}
		ba.entries++
		ba.visits += ev
		ba.domains[host] = struct{}{}
	}

	r.UniqueDomains = len(domains)
	r.UniqueURLs = len(urls)
	r.AvgVisits = float64(r.TotalVisits) / float64(r.TotalEntries)
	r.SpanDays = int(r.Latest.Sub(r.Earliest).Hours() / 24)

	// Top domains: frequency desc, total visits desc, name asc. The final
	// name comparison makes tied rows reproducible.
	for host, da := range domains {
		stat := DomainStat{Domain: host, Entries: da.entries, Visits: da.visits}
		for b := range da.browsers {
			stat.Browsers = append(stat.Browsers, b)
		}
		sort.Slice(stat.Browsers, func(i, j int) bool { return stat.Browsers[i] < stat.Browsers[j] })
		r.TopDomains = append(r.TopDomains, stat)
	}
	sort.Slice(r.TopDomains, func(i, j int) bool {
		a, b := r.TopDomains[i], r.TopDomains[j]
		if a.Entries != b.Entries {
			return a.Entries > b.Entries
		}
		if a.Visits != b.Visits {
			return a.Visits > b.Visits
		}
		return a.Domain < b.Domain
	})
	if len(r.TopDomains) > opts.TopLimit {
		r.TopDomains = r.TopDomains[:opts.TopLimit]
	}

	// Browser usage with exact-total percentages.
	for b, ba := range browsers {
		r.Browsers = append(r.Browsers, BrowserUsage{
			Browser:       b,
			Entries:       ba.entries,
			Visits:        ba.visits,
			UniqueDomains: len(ba.domains),
			EntryPercent:  float64(ba.entries) / float64(r.TotalEntries) * 100,
			VisitPercent:  float64(ba.visits) / float64(r.TotalVisits) * 100,
		})
	}
	sort.Slice(r.Browsers, func(i, j int) bool {
		a, b := r.Browsers[i], r.Browsers[j]
		if a.Entries != b.Entries {
			return a.Entries > b.Entries
		}
		return a.Browser < b.Browser
	})

	r.Histogram = histogram(visits, opts.GroupBy)
	return r
}
