package cli

import (
	"context"

	"github.com/vburojevic/webtrail/internal/collect"
	"github.com/vburojevic/webtrail/internal/domain"
	"github.com/vburojevic/webtrail/internal/filter"
	"github.com/vburojevic/webtrail/internal/timeline"
)

// CollectFlags are the extraction options shared by timeline-reading
// commands. Defaults come from the config file via kong vars.
type CollectFlags struct {
	Days         int  `short:"d" default:"${config_days}" help:"Days of history to include"`
	Limit        int  `short:"n" default:"${config_limit}" help:"Maximum entries to show (0 = all)"`
	All          bool `help:"Fetch everything: no time window, no fetch budget"`
	NoTimeFilter bool `help:"Disable the lookback window but keep the limit"`
}

// buildTimeline runs the whole read pipeline: resolve filters, discover
// sources, extract concurrently, filter and sort. The returned timeline is
// not display-limited; commands slice it themselves.
func buildTimeline(g *Globals, ff *FilterFlags, cf *CollectFlags) (*timeline.Timeline, []collect.SourceReport, error) {
	spec, err := ff.Spec(g.Config)
	if err != nil {
		return nil, nil, err
	}
	chain, err := filter.Compile(&spec)
	if err != nil {
		return nil, nil, err
	}

	sources := g.Locator.FindAll(targetBrowsers(g, &spec))

	opts := collect.Options{
		DaysBack:     cf.Days,
		Limit:        cf.Limit,
		NoTimeFilter: cf.All || cf.NoTimeFilter,
		Restrictive:  spec.IsRestrictive(),
	}
	if cf.All {
		opts.Limit = 0
	}

	result, err := collect.New(g.Clock, g.Logger).Collect(context.Background(), sources, opts)
	if err != nil {
		return nil, nil, err
	}

	return result.Timeline.Filter(chain), result.Reports, nil
}

// targetBrowsers intersects the config's enabled browsers with the spec's
// browser dimension so excluded stores are never opened at all.
func targetBrowsers(g *Globals, spec *filter.Spec) []domain.Browser {
	enabled := g.Config.EnabledBrowsers()

	allowed := func(b domain.Browser) bool {
		for _, ex := range spec.ExcludeBrowsers {
			if b == ex {
				return false
			}
		}
		if len(spec.Browsers) == 0 {
			return true
		}
		for _, in := range spec.Browsers {
			if b == in {
				return true
			}
		}
		return false
	}

	var out []domain.Browser
	for _, b := range enabled {
		if allowed(b) {
			out = append(out, b)
		}
	}
	return out
}
