package cli

import (
	"fmt"

	"github.com/vburojevic/webtrail/internal/config"
)

// InitConfigCmd writes an annotated default config file
type InitConfigCmd struct {
	Path  string `arg:"" optional:"" default:".webtrail.toml" help:"Where to write the config"`
	Force bool   `help:"Overwrite an existing file"`
}

// Run executes the init-config command
func (c *InitConfigCmd) Run(globals *Globals) error {
	if err := config.WriteDefault(c.Path, c.Force); err != nil {
		return outputError(globals, "INIT_CONFIG_FAILED", err.Error(), "")
	}
	fmt.Fprintf(globals.Stdout, "Created default config: %s\n", c.Path)
	return nil
}
