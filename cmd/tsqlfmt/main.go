package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/mikevskater/tsqlfmt/cli"
)

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("tsqlfmt"),
		kong.Description("A configurable T-SQL formatter"),
		kong.UsageOnError(),
	)

	appCtx := &cli.Context{
		Config:  CLI.Config,
		Verbose: CLI.Verbose,
		Quiet:   CLI.Quiet,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
