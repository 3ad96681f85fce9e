package cli

import (
	"fmt"
)

// Version is the release version, overridable at link time.
var Version = "dev"

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run(ctx *Context) error {
	fmt.Printf("tsqlfmt %s\n", Version)
	return nil
}
