package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/vburojevic/webtrail/internal/analytics"
)

// TopDomainsCmd ranks the most visited domains
type TopDomainsCmd struct {
	CollectFlags
	FilterFlags
	Top int `default:"${config_top_limit}" help:"How many domains to show"`
}

// Run executes the top-domains command
func (c *TopDomainsCmd) Run(globals *Globals) error {
	tl, reports, err := buildTimeline(globals, &c.FilterFlags, &c.CollectFlags)
	if err != nil {
		return outputError(globals, "TOP_DOMAINS_FAILED", err.Error(), "")
	}

	report := analytics.Aggregate(tl.Visits(), analytics.Options{TopLimit: c.Top})

	if globals.Format == "json" {
		enc := json.NewEncoder(globals.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report.TopDomains)
	}

	if len(report.TopDomains) == 0 {
		fmt.Fprintln(globals.Stdout, "No history entries matched")
		reportProblems(globals, reports)
		return nil
	}

	table := tablewriter.NewWriter(globals.Stdout)
	table.Header("#", "Domain", "Entries", "Visits", "Browsers")
	for i, d := range report.TopDomains {
		browsers := make([]string, 0, len(d.Browsers))
		for _, b := range d.Browsers {
			browsers = append(browsers, string(b))
		}
		table.Append(
			strconv.Itoa(i+1),
			d.Domain,
			strconv.Itoa(d.Entries),
			strconv.FormatUint(d.Visits, 10),
			strings.Join(browsers, ", "),
		)
	}
	if err := table.Render(); err != nil {
		return err
	}

	reportProblems(globals, reports)
	return nil
}
