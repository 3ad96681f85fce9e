package cli

import (
	tsqlfmt "github.com/mikevskater/tsqlfmt"
)

// Context carries the global flags shared by all commands.
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool
}

// LoadConfig loads the style profile from the specified file, falling back
// to the environment and then the built-in defaults.
func LoadConfig(configPath string) (*tsqlfmt.Config, error) {
	return tsqlfmt.LoadConfig(configPath)
}
