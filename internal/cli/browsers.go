package cli

import (
	"encoding/json"

	"github.com/olekukonko/tablewriter"

	"github.com/vburojevic/webtrail/internal/domain"
)

// BrowsersCmd lists supported browsers and their detected history stores
type BrowsersCmd struct{}

type browserStatus struct {
	Browser string   `json:"browser"`
	ID      string   `json:"id"`
	Family  string   `json:"family"`
	Enabled bool     `json:"enabled"`
	Sources []string `json:"sources"`
}

// Run executes the browsers command
func (c *BrowsersCmd) Run(globals *Globals) error {
	enabled := make(map[domain.Browser]bool)
	for _, b := range globals.Config.EnabledBrowsers() {
		enabled[b] = true
	}

	var statuses []browserStatus
	for _, b := range domain.AllBrowsers() {
		status := browserStatus{
			Browser: string(b),
			ID:      b.Key(),
			Family:  string(b.Family()),
			Enabled: enabled[b],
			Sources: []string{},
		}
		for _, src := range globals.Locator.Find(b) {
			status.Sources = append(status.Sources, src.Path)
		}
		statuses = append(statuses, status)
	}

	if globals.Format == "json" {
		enc := json.NewEncoder(globals.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(statuses)
	}

	table := tablewriter.NewWriter(globals.Stdout)
	table.Header("Browser", "ID", "Family", "Enabled", "Detected")
	for _, s := range statuses {
		enabledMark := "yes"
		if !s.Enabled {
			enabledMark = "no"
		}
		detected := "-"
		if len(s.Sources) > 0 {
			detected = s.Sources[0]
			if len(s.Sources) > 1 {
				detected += " (+ more)"
			}
		}
		table.Append(s.Browser, s.ID, s.Family, enabledMark, detected)
	}
	return table.Render()
}
