package tsqlfmt

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// Enumerated option values. Every enum-valued option in Config accepts exactly
// the values listed for its family here; Validate rejects anything else before
// the pipeline runs.
const (
	// keyword_case
	CaseUpper    = "upper"
	CasePreserve = "preserve"
	CaseLower    = "lower"

	// list styles
	StyleInline        = "inline"
	StyleStacked       = "stacked"
	StyleStackedIndent = "stacked_indent"

	// join_keyword_style
	JoinFull     = "full"
	JoinShort    = "short"
	JoinPreserve = "preserve"

	// from_schema_qualify
	QualifyPreserve = "preserve"
	QualifyAlways   = "always"
	QualifyNever    = "never"

	// batch_separator_style
	BatchGo        = "go"
	BatchSemicolon = "semicolon"

	// comment_position
	CommentPreserve = "preserve"
	CommentAbove    = "above"
	CommentInline   = "inline"

	// block_comment_style
	BlockCommentPreserve = "preserve"
	BlockCommentReformat = "reformat"

	// cte_style / merge_style
	ConstructExpanded = "expanded"
	ConstructCompact  = "compact"

	// comma_spacing
	CommaBefore = "before"
	CommaAfter  = "after"
	CommaBoth   = "both"
	CommaNone   = "none"

	// binary operator / paren / bracket / semicolon spacing
	SpacingSpaced = "spaced"
	SpacingTight  = "tight"
)

// Config is the flat style profile consumed by every formatting pass. It is
// evaluated once per invocation and passed by reference; passes never mutate it.
// No option implies another: every reachable combination must format valid SQL.
type Config struct {
	// Keyword rendering
	KeywordCase string `yaml:"keyword_case"`

	// Per-clause list styles (inline | stacked | stacked_indent)
	SelectListStyle     string `yaml:"select_list_style"`
	FromTableStyle      string `yaml:"from_table_style"`
	GroupByStyle        string `yaml:"group_by_style"`
	OrderByStyle        string `yaml:"order_by_style"`
	InsertColumnsStyle  string `yaml:"insert_columns_style"`
	InsertValuesStyle   string `yaml:"insert_values_style"`
	InsertRowStyle      string `yaml:"insert_row_style"`
	CTEColumnsStyle     string `yaml:"cte_columns_style"`
	FunctionArgsStyle   string `yaml:"function_args_style"`
	IndexColumnsStyle   string `yaml:"index_columns_style"`
	ProcParamsStyle     string `yaml:"proc_params_style"`
	UpdateSetStyle      string `yaml:"update_set_style"`
	JoinOnStyle         string `yaml:"join_on_style"`
	WhereConditionStyle string `yaml:"where_condition_style"`
	AlterOperationStyle string `yaml:"alter_operation_style"`

	// Keyword insertion/removal
	JoinKeywordStyle  string `yaml:"join_keyword_style"`
	InsertIntoKeyword bool   `yaml:"insert_into_keyword"`
	DeleteFromKeyword bool   `yaml:"delete_from_keyword"`
	DeleteFromNewline bool   `yaml:"delete_from_newline"`
	UseAsKeyword      bool   `yaml:"use_as_keyword"`
	FromSchemaQualify string `yaml:"from_schema_qualify"`
	BatchSeparator    string `yaml:"batch_separator_style"`

	// Comments
	CommentPosition        string `yaml:"comment_position"`
	BlockCommentStyle      string `yaml:"block_comment_style"`
	BlankLineBeforeComment bool   `yaml:"blank_line_before_comment"`

	// Construct-wide stacking overrides
	CTEStyle   string `yaml:"cte_style"`
	MergeStyle string `yaml:"merge_style"`

	// Inter-token spacing
	CommaSpacing         string `yaml:"comma_spacing"`
	EqualsSpacing        string `yaml:"equals_spacing"`
	ComparisonSpacing    string `yaml:"comparison_spacing"`
	ConcatenationSpacing string `yaml:"concatenation_spacing"`
	OperatorSpacing      string `yaml:"operator_spacing"`
	ParenthesisSpacing   string `yaml:"parenthesis_spacing"`
	BracketSpacing       string `yaml:"bracket_spacing"`
	SemicolonSpacing     string `yaml:"semicolon_spacing"`

	// CREATE TABLE column list breaks
	CreateTableColumnNewline     bool `yaml:"create_table_column_newline"`
	CreateTableConstraintNewline bool `yaml:"create_table_constraint_newline"`

	// Layout
	IndentWidth      int  `yaml:"indent_width"`
	UseTabs          bool `yaml:"use_tabs"`
	NestedJoinIndent int  `yaml:"nested_join_indent"`
}

// DefaultConfig returns the documented default for every option.
func DefaultConfig() *Config {
	return &Config{
		KeywordCase: CaseUpper,

		SelectListStyle:     StyleStacked,
		FromTableStyle:      StyleStacked,
		GroupByStyle:        StyleStacked,
		OrderByStyle:        StyleStacked,
		InsertColumnsStyle:  StyleStacked,
		InsertValuesStyle:   StyleInline,
		InsertRowStyle:      StyleStacked,
		CTEColumnsStyle:     StyleInline,
		FunctionArgsStyle:   StyleInline,
		IndexColumnsStyle:   StyleInline,
		ProcParamsStyle:     StyleStacked,
		UpdateSetStyle:      StyleStacked,
		JoinOnStyle:         StyleInline,
		WhereConditionStyle: StyleStacked,
		AlterOperationStyle: StyleStacked,

		JoinKeywordStyle:  JoinPreserve,
		InsertIntoKeyword: true,
		DeleteFromKeyword: true,
		DeleteFromNewline: false,
		UseAsKeyword:      false,
		FromSchemaQualify: QualifyPreserve,
		BatchSeparator:    BatchGo,

		CommentPosition:        CommentPreserve,
		BlockCommentStyle:      BlockCommentPreserve,
		BlankLineBeforeComment: false,

		CTEStyle:   ConstructExpanded,
		MergeStyle: ConstructExpanded,

		CommaSpacing:         CommaAfter,
		EqualsSpacing:        SpacingSpaced,
		ComparisonSpacing:    SpacingSpaced,
		ConcatenationSpacing: SpacingSpaced,
		OperatorSpacing:      SpacingSpaced,
		ParenthesisSpacing:   SpacingTight,
		BracketSpacing:       SpacingTight,
		SemicolonSpacing:     SpacingTight,

		CreateTableColumnNewline:     true,
		CreateTableConstraintNewline: true,

		IndentWidth:      4,
		UseTabs:          false,
		NestedJoinIndent: 1,
	}
}

// LoadConfig reads a style profile from path. An empty path falls back to
// the TSQLFMT_CONFIG environment variable (a .env file is honored if present)
// and then to .tsqlfmt.yaml in the working directory; if none exists the
// built-in defaults are returned. Options absent from the file keep their
// defaults, so a profile only needs to list deviations.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""

	if path == "" {
		// Load .env file if it exists (ignore errors if not found)
		_ = godotenv.Load()

		path = os.Getenv("TSQLFMT_CONFIG")
	}

	if path == "" {
		path = ".tsqlfmt.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if explicit {
				return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
			}

			return DefaultConfig(), nil
		}

		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// enumOption pairs an option name with its accepted domain for validation.
type enumOption struct {
	name    string
	value   string
	allowed []string
}

// Validate checks every enum-valued option against its accepted domain.
// It fails fast with an error naming the offending option and the domain,
// before any formatting pass runs.
func (c *Config) Validate() error {
	listStyles := []string{StyleInline, StyleStacked, StyleStackedIndent}
	onOff := []string{SpacingSpaced, SpacingTight}

	options := []enumOption{
		{"keyword_case", c.KeywordCase, []string{CaseUpper, CaseLower, CasePreserve}},
		{"select_list_style", c.SelectListStyle, listStyles},
		{"from_table_style", c.FromTableStyle, listStyles},
		{"group_by_style", c.GroupByStyle, listStyles},
		{"order_by_style", c.OrderByStyle, listStyles},
		{"insert_columns_style", c.InsertColumnsStyle, listStyles},
		{"insert_values_style", c.InsertValuesStyle, listStyles},
		{"insert_row_style", c.InsertRowStyle, listStyles},
		{"cte_columns_style", c.CTEColumnsStyle, listStyles},
		{"function_args_style", c.FunctionArgsStyle, listStyles},
		{"index_columns_style", c.IndexColumnsStyle, listStyles},
		{"proc_params_style", c.ProcParamsStyle, listStyles},
		{"update_set_style", c.UpdateSetStyle, listStyles},
		{"join_on_style", c.JoinOnStyle, listStyles},
		{"where_condition_style", c.WhereConditionStyle, listStyles},
		{"alter_operation_style", c.AlterOperationStyle, listStyles},
		{"join_keyword_style", c.JoinKeywordStyle, []string{JoinFull, JoinShort, JoinPreserve}},
		{"from_schema_qualify", c.FromSchemaQualify, []string{QualifyPreserve, QualifyAlways, QualifyNever}},
		{"batch_separator_style", c.BatchSeparator, []string{BatchGo, BatchSemicolon}},
		{"comment_position", c.CommentPosition, []string{CommentPreserve, CommentAbove, CommentInline}},
		{"block_comment_style", c.BlockCommentStyle, []string{BlockCommentPreserve, BlockCommentReformat}},
		{"cte_style", c.CTEStyle, []string{ConstructExpanded, ConstructCompact}},
		{"merge_style", c.MergeStyle, []string{ConstructExpanded, ConstructCompact}},
		{"comma_spacing", c.CommaSpacing, []string{CommaBefore, CommaAfter, CommaBoth, CommaNone}},
		{"equals_spacing", c.EqualsSpacing, onOff},
		{"comparison_spacing", c.ComparisonSpacing, onOff},
		{"concatenation_spacing", c.ConcatenationSpacing, onOff},
		{"operator_spacing", c.OperatorSpacing, onOff},
		{"parenthesis_spacing", c.ParenthesisSpacing, onOff},
		{"bracket_spacing", c.BracketSpacing, onOff},
		{"semicolon_spacing", c.SemicolonSpacing, onOff},
	}

	for _, opt := range options {
		if !slices.Contains(opt.allowed, opt.value) {
			return fmt.Errorf("%w: invalid %s '%s': must be one of %s",
				ErrConfigValidation, opt.name, opt.value, strings.Join(opt.allowed, ", "))
		}
	}

	if c.IndentWidth < 0 {
		return fmt.Errorf("%w: invalid indent_width %d: must be >= 0", ErrConfigValidation, c.IndentWidth)
	}

	if c.NestedJoinIndent < 0 {
		return fmt.Errorf("%w: invalid nested_join_indent %d: must be >= 0", ErrConfigValidation, c.NestedJoinIndent)
	}

	return nil
}

// Indent returns the whitespace for one indentation level.
func (c *Config) Indent() string {
	if c.UseTabs {
		return "\t"
	}

	return strings.Repeat(" ", c.IndentWidth)
}
