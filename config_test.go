package tsqlfmt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestDefaultConfigIsValid(t *testing.T) {
	config := DefaultConfig()
	assert.NoError(t, config.Validate())
}

func TestLoadConfigPartialOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "style.yaml")

	content := `keyword_case: lower
select_list_style: stacked_indent
comma_spacing: before
indent_width: 2
use_tabs: false
`
	err := os.WriteFile(path, []byte(content), 0o644)
	assert.NoError(t, err)

	config, err := LoadConfig(path)
	assert.NoError(t, err)

	// overridden options
	assert.Equal(t, CaseLower, config.KeywordCase)
	assert.Equal(t, StyleStackedIndent, config.SelectListStyle)
	assert.Equal(t, CommaBefore, config.CommaSpacing)
	assert.Equal(t, 2, config.IndentWidth)

	// untouched options keep their defaults
	assert.Equal(t, StyleStacked, config.FromTableStyle)
	assert.Equal(t, JoinPreserve, config.JoinKeywordStyle)
	assert.True(t, config.InsertIntoKeyword)
}

func TestLoadConfigExplicitMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.IsError(t, err, ErrConfigNotFound)
}

func TestValidateRejectsUnknownEnumValue(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		option string
	}{
		{
			name:   "keyword_case",
			mutate: func(c *Config) { c.KeywordCase = "title" },
			option: "keyword_case",
		},
		{
			name:   "select_list_style",
			mutate: func(c *Config) { c.SelectListStyle = "vertical" },
			option: "select_list_style",
		},
		{
			name:   "join_keyword_style",
			mutate: func(c *Config) { c.JoinKeywordStyle = "long" },
			option: "join_keyword_style",
		},
		{
			name:   "batch_separator_style",
			mutate: func(c *Config) { c.BatchSeparator = "newline" },
			option: "batch_separator_style",
		},
		{
			name:   "comma_spacing",
			mutate: func(c *Config) { c.CommaSpacing = "wide" },
			option: "comma_spacing",
		},
		{
			name:   "cte_style",
			mutate: func(c *Config) { c.CTEStyle = "flat" },
			option: "cte_style",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := DefaultConfig()
			test.mutate(config)

			err := config.Validate()
			assert.IsError(t, err, ErrConfigValidation)
			// the error names the offending option
			assert.True(t, strings.Contains(err.Error(), test.option))
		})
	}
}

func TestValidateRejectsNegativeLayoutValues(t *testing.T) {
	config := DefaultConfig()
	config.IndentWidth = -1
	assert.IsError(t, config.Validate(), ErrConfigValidation)

	config = DefaultConfig()
	config.NestedJoinIndent = -2
	assert.IsError(t, config.Validate(), ErrConfigValidation)
}

func TestIndent(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, "    ", config.Indent())

	config.IndentWidth = 2
	assert.Equal(t, "  ", config.Indent())

	config.UseTabs = true
	assert.Equal(t, "\t", config.Indent())
}
