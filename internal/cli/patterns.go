package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vburojevic/webtrail/internal/analytics"
)

// PatternsCmd shows a temporal activity histogram
type PatternsCmd struct {
	CollectFlags
	FilterFlags
	By string `default:"${config_group_by}" enum:"hour,day,weekday,month" help:"Bucket unit"`
}

const patternBarWidth = 40

// Run executes the patterns command
func (c *PatternsCmd) Run(globals *Globals) error {
	tl, reports, err := buildTimeline(globals, &c.FilterFlags, &c.CollectFlags)
	if err != nil {
		return outputError(globals, "PATTERNS_FAILED", err.Error(), "")
	}

	report := analytics.Aggregate(tl.Visits(), analytics.Options{
		GroupBy: analytics.ParseUnit(c.By),
	})

	if globals.Format == "json" {
		enc := json.NewEncoder(globals.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			GroupBy   analytics.Unit    `json:"group_by"`
			Histogram []analytics.Bucket `json:"histogram"`
		}{report.GroupBy, report.Histogram})
	}

	if tl.Len() == 0 {
		fmt.Fprintln(globals.Stdout, "No history entries matched")
		reportProblems(globals, reports)
		return nil
	}

	on := styled(globals.Stdout)
	fmt.Fprintln(globals.Stdout, render(on, Styles.Header, "Activity by "+c.By))

	peak := 0
	for _, b := range report.Histogram {
		if b.Count > peak {
			peak = b.Count
		}
	}
	for _, b := range report.Histogram {
		width := 0
		if peak > 0 {
			width = b.Count * patternBarWidth / peak
		}
		bar := strings.Repeat("█", width)
		fmt.Fprintf(globals.Stdout, "%-12s %s %d (%.1f%%)\n",
			b.Label, render(on, Styles.Bar, bar), b.Count, b.Percent)
	}

	reportProblems(globals, reports)
	return nil
}
