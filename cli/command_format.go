package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	tsqlfmt "github.com/mikevskater/tsqlfmt"
	"github.com/mikevskater/tsqlfmt/formatter"
)

var (
	ErrFileNotFormatted = errors.New("file is not formatted")
	ErrFormattingErrors = errors.New("some files had formatting errors")
)

// FormatCmd represents the format command
type FormatCmd struct {
	Input  string `arg:"" optional:"" help:"Input file or directory (default: stdin)"`
	Output string `short:"o" help:"Output file (default: stdout)"`
	Write  bool   `short:"w" help:"Rewrite files in place instead of printing to stdout"`
	Check  bool   `short:"c" help:"Check if files are formatted (exit 1 if not)"`
	Diff   bool   `short:"d" help:"Show diff instead of printing the result"`
}

// Run executes the format command
func (cmd *FormatCmd) Run(ctx *Context) error {
	config, err := LoadConfig(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if cmd.Input == "" {
		input, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		return cmd.formatSource(config, string(input), "<stdin>", os.Stdout)
	}

	info, err := os.Stat(cmd.Input)
	if err != nil {
		return fmt.Errorf("failed to stat input: %w", err)
	}

	if info.IsDir() {
		return cmd.formatDirectory(config, cmd.Input, ctx)
	}

	return cmd.formatFile(config, cmd.Input)
}

// formatSource formats one piece of SQL and applies the output mode. A nil
// sink means the caller handles writing itself (in-place rewrite).
func (cmd *FormatCmd) formatSource(config *tsqlfmt.Config, input, filename string, sink io.Writer) error {
	formatted, err := formatter.Format(input, config)
	if err != nil {
		if errors.Is(err, tsqlfmt.ErrEmptyInput) {
			return nil
		}

		return fmt.Errorf("failed to format %s: %w", filename, err)
	}

	if cmd.Check {
		if input != formatted {
			color.Red("%s is not formatted", filename)
			return ErrFileNotFormatted
		}

		return nil
	}

	if cmd.Diff {
		cmd.showDiff(input, formatted, filename)
		return nil
	}

	if sink == nil {
		return nil
	}

	_, err = sink.Write([]byte(formatted))

	return err
}

// formatFile formats a single file. Without -w or -o the result goes to
// stdout; in-place rewriting goes through a temp file and rename so a
// half-written file never replaces the original.
func (cmd *FormatCmd) formatFile(config *tsqlfmt.Config, filename string) error {
	if !isSQLFile(filename) {
		if !cmd.Check {
			fmt.Fprintf(os.Stderr, "Skipping non-SQL file: %s\n", filename)
		}

		return nil
	}

	input, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	if cmd.Check || cmd.Diff {
		return cmd.formatSource(config, string(input), filename, nil)
	}

	if cmd.Write {
		formatted, err := formatter.Format(string(input), config)
		if err != nil {
			if errors.Is(err, tsqlfmt.ErrEmptyInput) {
				return nil
			}

			return fmt.Errorf("failed to format %s: %w", filename, err)
		}

		if formatted == string(input) {
			return nil
		}

		return replaceFile(filename, formatted)
	}

	if cmd.Output != "" {
		outputFile, err := os.Create(cmd.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file %s: %w", cmd.Output, err)
		}
		defer outputFile.Close()

		return cmd.formatSource(config, string(input), filename, outputFile)
	}

	return cmd.formatSource(config, string(input), filename, os.Stdout)
}

// replaceFile writes content next to filename and renames it into place.
func replaceFile(filename, content string) error {
	tempFile, err := os.CreateTemp(filepath.Dir(filename), ".tsqlfmt-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tempFile.WriteString(content); err != nil {
		tempFile.Close()
		os.Remove(tempFile.Name())

		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		os.Remove(tempFile.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tempFile.Name(), filename); err != nil {
		os.Remove(tempFile.Name())
		return fmt.Errorf("failed to replace %s: %w", filename, err)
	}

	return nil
}

// formatDirectory formats all .sql files under dirPath recursively. A file
// that fails does not stop the walk.
func (cmd *FormatCmd) formatDirectory(config *tsqlfmt.Config, dirPath string, ctx *Context) error {
	var (
		hasErrors    bool
		notFormatted bool
	)

	err := filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		if !isSQLFile(path) {
			return nil
		}

		err = cmd.formatFile(config, path)

		switch {
		case errors.Is(err, ErrFileNotFormatted):
			notFormatted = true
		case err != nil:
			fmt.Fprintf(os.Stderr, "Error formatting %s: %v\n", path, err)

			hasErrors = true
		case cmd.Write && !ctx.Quiet:
			fmt.Printf("Formatted: %s\n", path)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk directory: %w", err)
	}

	if hasErrors {
		return ErrFormattingErrors
	}

	if notFormatted {
		return ErrFileNotFormatted
	}

	return nil
}

func isSQLFile(filename string) bool {
	return strings.ToLower(filepath.Ext(filename)) == ".sql"
}

// showDiff prints a line diff between the original and formatted content.
func (cmd *FormatCmd) showDiff(original, formatted, filename string) {
	if original == formatted {
		return
	}

	fmt.Printf("--- %s (original)\n", filename)
	fmt.Printf("+++ %s (formatted)\n", filename)

	originalLines := strings.Split(original, "\n")
	formattedLines := strings.Split(formatted, "\n")

	maxLines := max(len(formattedLines), len(originalLines))

	for i := range maxLines {
		var origLine, formLine string

		if i < len(originalLines) {
			origLine = originalLines[i]
		}

		if i < len(formattedLines) {
			formLine = formattedLines[i]
		}

		if origLine != formLine {
			if origLine != "" {
				color.Red("-%s", origLine)
			}

			if formLine != "" {
				color.Green("+%s", formLine)
			}
		}
	}
}

// Help returns help text for the format command
func (cmd *FormatCmd) Help() string {
	return `Format T-SQL files according to a style profile.

The format command reads SQL from stdin, a file or a directory and rewrites
it to a consistent style. The style is controlled by a YAML profile; options
absent from the profile keep their defaults, so a profile only needs to list
deviations.

Examples:
	# Format from stdin to stdout
	cat query.sql | tsqlfmt format

	# Print a formatted file to stdout
	tsqlfmt format query.sql

	# Rewrite a file (or every .sql file in a directory) in place
	tsqlfmt format -w query.sql
	tsqlfmt format -w ./queries/

	# Check if files are properly formatted
	tsqlfmt format -c ./queries/

	# Show what would change
	tsqlfmt format -d query.sql

	# Use an explicit style profile
	tsqlfmt --config team-style.yaml format -w ./queries/

Configuration resolution order: --config flag, the TSQLFMT_CONFIG environment
variable (a .env file is honored), .tsqlfmt.yaml in the working directory,
built-in defaults.`
}
