package tsqlfmt

import "errors"

// Common errors used throughout the tsqlfmt package
var (
	// ErrConfigValidation is returned when a style option holds a value outside
	// its accepted domain. Validation runs before the pipeline starts.
	ErrConfigValidation = errors.New("configuration validation failed")

	// ErrConfigNotFound is returned when an explicitly requested config file
	// does not exist. An absent default config is not an error.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrEmptyInput is returned when the input contains no formattable tokens.
	ErrEmptyInput = errors.New("input contains no SQL tokens")
)
