package main

import (
	"github.com/mikevskater/tsqlfmt/cli"
)

// CLI defines the command line interface
var CLI struct {
	Config  string `short:"f" help:"Style profile file path" type:"path"`
	Verbose bool   `short:"v" help:"Enable verbose output"`
	Quiet   bool   `short:"q" help:"Suppress non-error output"`

	Format  cli.FormatCmd  `cmd:"" default:"withargs" help:"Format SQL files"`
	Version cli.VersionCmd `cmd:"" help:"Show version information"`
}
