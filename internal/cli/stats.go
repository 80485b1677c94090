package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/vburojevic/webtrail/internal/analytics"
)

// StatsCmd shows summary statistics over the filtered timeline
type StatsCmd struct {
	CollectFlags
	FilterFlags
}

// Run executes the stats command
func (c *StatsCmd) Run(globals *Globals) error {
	tl, reports, err := buildTimeline(globals, &c.FilterFlags, &c.CollectFlags)
	if err != nil {
		return outputError(globals, "STATS_FAILED", err.Error(), "")
	}

	report := analytics.Aggregate(tl.Visits(), analytics.Options{
		TopLimit: globals.Config.Analytics.TopDomainsLimit,
		GroupBy:  analytics.ParseUnit(globals.Config.Analytics.GroupPatternsBy),
	})

	if globals.Format == "json" {
		enc := json.NewEncoder(globals.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	on := styled(globals.Stdout)
	line := func(label string, value string) {
		fmt.Fprintf(globals.Stdout, "%s %s\n",
			render(on, Styles.Label, fmt.Sprintf("%-22s", label)),
			render(on, Styles.Value, value))
	}

	fmt.Fprintln(globals.Stdout, render(on, Styles.Header, "Browsing statistics"))
	line("Entries", fmt.Sprintf("%d", report.TotalEntries))
	line("Total visits", fmt.Sprintf("%d", report.TotalVisits))
	line("Unique domains", fmt.Sprintf("%d", report.UniqueDomains))
	line("Unique URLs", fmt.Sprintf("%d", report.UniqueURLs))
	line("Avg visits per entry", fmt.Sprintf("%.2f", report.AvgVisits))
	if !report.Earliest.IsZero() {
		line("Earliest", report.Earliest.UTC().Format(time.DateTime))
		line("Latest", report.Latest.UTC().Format(time.DateTime))
		line("Span", fmt.Sprintf("%d days", report.SpanDays))
	}

	reportProblems(globals, reports)
	return nil
}
