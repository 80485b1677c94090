package cli

import (
	"fmt"
	"strings"

	"github.com/vburojevic/webtrail/internal/config"
	"github.com/vburojevic/webtrail/internal/domain"
	"github.com/vburojevic/webtrail/internal/filter"
)

// FilterFlags are the filtering options shared by every timeline-reading
// command. Config file values fill the gaps for any flag left unset.
type FilterFlags struct {
	Browsers        []string `short:"b" sep:"," help:"Only these browsers (chrome,firefox,safari,...)"`
	ExcludeBrowsers []string `sep:"," help:"Skip these browsers"`
	From            string   `help:"Keep visits at or after this time (RFC 3339 or YYYY-MM-DD)"`
	To              string   `help:"Keep visits at or before this time (RFC 3339 or YYYY-MM-DD)"`
	Domains         []string `sep:"," help:"Keep only these domains (substring, or regex with --regex)"`
	ExcludeDomains  []string `sep:"," help:"Drop these domains (overrides --domains)"`
	Keywords        []string `short:"k" sep:"," help:"Keep visits whose title or URL matches"`
	MinVisits       uint     `help:"Keep entries visited at least this often"`
	MaxVisits       uint     `help:"Keep entries visited at most this often (0 = unbounded)"`
	Regex           bool     `help:"Treat domain and keyword patterns as regular expressions"`
}

// Spec merges config-file filter defaults with explicit flags. Flags win
// per dimension.
func (f *FilterFlags) Spec(cfg *config.Config) (filter.Spec, error) {
	spec, err := cfg.FilterSpec()
	if err != nil {
		return filter.Spec{}, err
	}

	if len(f.Browsers) > 0 {
		if spec.Browsers, err = parseBrowsers(f.Browsers); err != nil {
			return filter.Spec{}, err
		}
	}
	if len(f.ExcludeBrowsers) > 0 {
		if spec.ExcludeBrowsers, err = parseBrowsers(f.ExcludeBrowsers); err != nil {
			return filter.Spec{}, err
		}
	}
	if f.From != "" {
		if spec.From, err = config.ParseTimeBound(f.From); err != nil {
			return filter.Spec{}, err
		}
	}
	if f.To != "" {
		if spec.To, err = config.ParseTimeBound(f.To); err != nil {
			return filter.Spec{}, err
		}
	}
	if len(f.Domains) > 0 {
		spec.DomainAllow = f.Domains
	}
	if len(f.ExcludeDomains) > 0 {
		spec.DomainDeny = f.ExcludeDomains
	}
	if len(f.Keywords) > 0 {
		spec.Keywords = f.Keywords
	}
	if f.MinVisits > 0 {
		spec.MinVisits = f.MinVisits
	}
	if f.MaxVisits > 0 {
		max := f.MaxVisits
		spec.MaxVisits = &max
	}
	if f.Regex {
		spec.UseRegex = true
	}
	return spec, nil
}

func parseBrowsers(ids []string) ([]domain.Browser, error) {
	var out []domain.Browser
	for _, id := range ids {
		b, ok := domain.ParseBrowser(strings.ToLower(strings.TrimSpace(id)))
		if !ok {
			return nil, fmt.Errorf("unknown browser %q (see 'webtrail browsers')", id)
		}
		out = append(out, b)
	}
	return out, nil
}
