package cli

import (
	"fmt"

	"github.com/vburojevic/webtrail/internal/collect"
	"github.com/vburojevic/webtrail/internal/domain"
	"github.com/vburojevic/webtrail/internal/export"
)

// TimelineCmd shows the merged browsing timeline, newest first
type TimelineCmd struct {
	CollectFlags
	FilterFlags
	Offset int `help:"Skip this many entries before showing results"`
}

// Run executes the timeline command
func (c *TimelineCmd) Run(globals *Globals) error {
	tl, reports, err := buildTimeline(globals, &c.FilterFlags, &c.CollectFlags)
	if err != nil {
		return outputError(globals, "TIMELINE_FAILED", err.Error(), "")
	}

	page := tl.Slice(c.Offset, c.Limit)

	if globals.Format == "json" {
		out, err := (&export.JSONSerializer{}).Serialize(page.Visits())
		if err != nil {
			return err
		}
		_, err = globals.Stdout.Write(out)
		return err
	}
	return c.outputText(globals, page.Visits(), tl.Len(), reports)
}

func (c *TimelineCmd) outputText(globals *Globals, visits []domain.Visit, total int, reports []collect.SourceReport) error {
	on := styled(globals.Stdout)
	display := globals.Config.Display

	if len(visits) == 0 {
		fmt.Fprintln(globals.Stdout, "No history entries matched")
		reportProblems(globals, reports)
		return nil
	}

	// Badge width fits the longest browser name so columns line up.
	badgeWidth := 0
	for _, b := range domain.AllBrowsers() {
		if len(b) > badgeWidth {
			badgeWidth = len(b)
		}
	}

	lastDay := ""
	for i := range visits {
		v := &visits[i]
		if day := v.VisitedAt.UTC().Format("Monday, 2006-01-02"); day != lastDay {
			if lastDay != "" {
				fmt.Fprintln(globals.Stdout)
			}
			fmt.Fprintln(globals.Stdout, render(on, Styles.Header, day))
			lastDay = day
		}
		ts := v.VisitedAt.UTC().Format(display.DateFormat)
		badge := fmt.Sprintf("%-*s", badgeWidth, string(v.Browser))

		line := render(on, Styles.Timestamp, ts) + "  " + render(on, BrowserStyle(v.Browser), badge)
		title := v.Title
		if title == "" {
			title = v.Domain()
		}
		line += "  " + render(on, Styles.Title, title)
		if display.ShowVisitCount && v.VisitCount > 0 {
			line += "  " + render(on, Styles.Count, fmt.Sprintf("(%d visits)", v.VisitCount))
		}
		fmt.Fprintln(globals.Stdout, line)
		if display.ShowURL {
			fmt.Fprintln(globals.Stdout, "           "+render(on, Styles.URL, v.URL))
		}
	}

	fmt.Fprintf(globals.Stdout, "\n%d of %d entries shown\n", len(visits), total)
	reportProblems(globals, reports)
	return nil
}

// reportProblems surfaces per-source failures without failing the run
func reportProblems(globals *Globals, reports []collect.SourceReport) {
	on := styled(globals.Stderr)
	for _, r := range reports {
		if r.Err != nil {
			fmt.Fprintln(globals.Stderr, render(on, Styles.Warning,
				fmt.Sprintf("warning: %s: %v", r.Source.Browser, r.Err)))
		}
		if r.Skipped > 0 && globals.Verbose {
			fmt.Fprintf(globals.Stderr, "note: %s: %d malformed rows skipped\n", r.Source.Browser, r.Skipped)
		}
	}
}
