package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/vburojevic/webtrail/internal/analytics"
)

// BrowserUsageCmd shows each browser's share of activity
type BrowserUsageCmd struct {
	CollectFlags
	FilterFlags
}

// Run executes the browser-usage command
func (c *BrowserUsageCmd) Run(globals *Globals) error {
	tl, reports, err := buildTimeline(globals, &c.FilterFlags, &c.CollectFlags)
	if err != nil {
		return outputError(globals, "BROWSER_USAGE_FAILED", err.Error(), "")
	}

	report := analytics.Aggregate(tl.Visits(), analytics.Options{})

	if globals.Format == "json" {
		enc := json.NewEncoder(globals.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report.Browsers)
	}

	if len(report.Browsers) == 0 {
		fmt.Fprintln(globals.Stdout, "No history entries matched")
		reportProblems(globals, reports)
		return nil
	}

	table := tablewriter.NewWriter(globals.Stdout)
	table.Header("Browser", "Entries", "Visits", "Share", "Unique Domains")
	for _, b := range report.Browsers {
		table.Append(
			string(b.Browser),
			strconv.Itoa(b.Entries),
			strconv.FormatUint(b.Visits, 10),
			fmt.Sprintf("%.1f%%", b.VisitPercent),
			strconv.Itoa(b.UniqueDomains),
		)
	}
	if err := table.Render(); err != nil {
		return err
	}

	reportProblems(globals, reports)
	return nil
}
