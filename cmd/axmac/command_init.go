package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

const defaultConfigContent = `# axmac configuration
dialect: native # native or go
input_dir: .
include:
  - "*.go"
  - "*.md"
exclude: []
output:
  dir: generated
  # suffix: .ax
  # in_place: true
`

// InitCmd represents the init command
type InitCmd struct {
	Force bool `help:"Overwrite an existing configuration file"`
}

// Run executes the init command
func (cmd *InitCmd) Run(ctx *Context) error {
	if _, err := os.Stat(ctx.Config); err == nil && !cmd.Force {
		if !ctx.Quiet {
			color.Yellow("%s already exists (use --force to overwrite)", ctx.Config)
		}

		return fmt.Errorf("%w: %s", ErrConfigFileExists, ctx.Config)
	}

	if err := os.WriteFile(ctx.Config, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	if !ctx.Quiet {
		color.Green("Created %s", ctx.Config)
	}

	return nil
}
