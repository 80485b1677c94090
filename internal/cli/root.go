package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/vburojevic/webtrail/internal/config"
	"github.com/vburojevic/webtrail/internal/locate"
)

// CLI is the root command structure for webtrail
type CLI struct {
	// Global flags
	Format  string `short:"f" default:"text" enum:"text,json" help:"Output format for command results"`
	Verbose bool   `short:"v" help:"Show debug output (source discovery, extraction, retries)"`

	Version VersionCmd `cmd:"" help:"Show version information"`

	// Commands
	Timeline     TimelineCmd     `cmd:"" default:"withargs" help:"Show the merged browsing timeline"`
	Stats        StatsCmd        `cmd:"" help:"Show summary statistics over the filtered timeline"`
	TopDomains   TopDomainsCmd   `cmd:"" help:"Rank the most visited domains"`
	BrowserUsage BrowserUsageCmd `cmd:"" help:"Show each browser's share of activity"`
	Patterns     PatternsCmd     `cmd:"" help:"Show a temporal activity histogram"`
	Export       ExportCmd       `cmd:"" help:"Export visits for external analysis tools"`
	Browsers     BrowsersCmd     `cmd:"" help:"List supported browsers and detected history stores"`
	InitConfig   InitConfigCmd   `cmd:"" help:"Write an annotated default config file"`
}

// Globals holds shared state for all commands
type Globals struct {
	Format  string
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config
	Logger  *zap.Logger
	Locator *locate.Locator
	Clock   clock.Clock
}

// NewGlobals creates a Globals instance from CLI flags and loaded config
func NewGlobals(cli *CLI, cfg *config.Config) (*Globals, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	logger := zap.NewNop()
	if cli.Verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
	}
	locator, err := locate.New()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	return &Globals{
		Format:  cli.Format,
		Verbose: cli.Verbose,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  cfg,
		Logger:  logger,
		Locator: locator,
		Clock:   clock.New(),
	}, nil
}

// VersionCmd shows version information
type VersionCmd struct{}

// Run executes the version command
func (v *VersionCmd) Run(globals *Globals) error {
	if globals.Format == "json" {
		io.WriteString(globals.Stdout, `{"type":"version","version":"`+Version+`","commit":"`+Commit+`"}`+"\n")
	} else {
		io.WriteString(globals.Stdout, "webtrail version "+Version+" ("+Commit+")\n")
	}
	return nil
}

// Version information (set at build time)
var (
	Version = "dev"
	Commit  = "none"
)
