package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/vburojevic/webtrail/internal/cli"
	"github.com/vburojevic/webtrail/internal/config"
)

const quickStart = `webtrail - unified browser history timeline and analytics

START HERE (this is the command you want):
  webtrail timeline -d 7

Other useful commands:
  webtrail browsers                     Show supported browsers and detected stores
  webtrail stats                        Summary statistics
  webtrail top-domains                  Most visited domains
  webtrail export json                  Export for external tools
  webtrail init-config                  Write an annotated config file
`

func main() {
	// Show quick start if no args provided
	if len(os.Args) == 1 {
		fmt.Print(quickStart)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI

	// Config defaults flow into flag defaults; explicit flags override them.
	vars := kong.Vars{
		"config_days":      strconv.Itoa(cfg.Output.DaysBack),
		"config_limit":     strconv.Itoa(cfg.Output.Limit),
		"config_group_by":  cfg.Analytics.GroupPatternsBy,
		"config_top_limit": strconv.Itoa(cfg.Analytics.TopDomainsLimit),
	}

	ctx := kong.Parse(&c,
		kong.Name("webtrail"),
		kong.Description("Merge, filter and analyze browsing history across browsers\n\nSTART HERE: webtrail timeline"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		vars,
	)

	globals, err := cli.NewGlobals(&c, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := ctx.Run(globals); err != nil {
		os.Exit(1)
	}
}
