package formatter

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	tsqlfmt "github.com/mikevskater/tsqlfmt"
	"github.com/mikevskater/tsqlfmt/tokenizer"
)

func TestFormatDefaults(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:  "stacked select list",
			input: "select a,b from t where x=1",
			expected: `SELECT a
    , b
FROM t
WHERE x = 1
`,
		},
		{
			name:  "where conditions stack",
			input: "select * from t where a = 1 and b = 2 or c = 3",
			expected: `SELECT *
FROM t
WHERE a = 1
    AND b = 2
    OR c = 3
`,
		},
		{
			name:  "subquery indents",
			input: "select * from (select id from t) x",
			expected: `SELECT *
FROM (
    SELECT id
    FROM t
) x
`,
		},
		{
			name:  "expanded cte",
			input: "with c as (select a from t) select * from c",
			expected: `WITH c AS (
    SELECT a
    FROM t
)
SELECT *
FROM c
`,
		},
		{
			name:  "delete gains from",
			input: "delete users where id = 1",
			expected: `DELETE FROM users
WHERE id = 1
`,
		},
		{
			name:  "update statement",
			input: "update t set a = 1, b = 2 where id = 3",
			expected: `UPDATE t
SET a = 1
    , b = 2
WHERE id = 3
`,
		},
		{
			name:  "create table header stays on one line",
			input: "create table t (id int, name varchar(50))",
			expected: `CREATE TABLE t(
    id INT
    , name VARCHAR(50))
`,
		},
		{
			name:  "go with count survives",
			input: "select 1\ngo 5",
			expected: `SELECT 1
GO 5
`,
		},
		{
			name:  "table hint stays inline",
			input: "select * from users with (nolock) where id = 1",
			expected: `SELECT *
FROM users WITH (NOLOCK)
WHERE id = 1
`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual, err := Format(test.input, nil)
			assert.NoError(t, err)
			assert.Equal(t, test.expected, actual)
		})
	}
}

func TestFormatConfigured(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*tsqlfmt.Config)
		input    string
		expected string
	}{
		{
			name:   "full join keywords",
			mutate: func(c *tsqlfmt.Config) { c.JoinKeywordStyle = tsqlfmt.JoinFull },
			input:  "select * from a join b on a.id = b.id",
			expected: `SELECT *
FROM a
INNER JOIN b
ON a.id = b.id
`,
		},
		{
			name:   "short join keywords",
			mutate: func(c *tsqlfmt.Config) { c.JoinKeywordStyle = tsqlfmt.JoinShort },
			input:  "select * from a left outer join b on a.id = b.id",
			expected: `SELECT *
FROM a
LEFT JOIN b
ON a.id = b.id
`,
		},
		{
			name:   "schema qualifiers stripped",
			mutate: func(c *tsqlfmt.Config) { c.FromSchemaQualify = tsqlfmt.QualifyNever },
			input:  "select * from dbo.users",
			expected: `SELECT *
FROM users
`,
		},
		{
			name:   "stripped table keeps its implicit alias",
			mutate: func(c *tsqlfmt.Config) { c.FromSchemaQualify = tsqlfmt.QualifyNever },
			input:  "SELECT * FROM dbo.Customers c",
			expected: `SELECT *
FROM Customers c
`,
		},
		{
			name:   "explicit alias keyword",
			mutate: func(c *tsqlfmt.Config) { c.UseAsKeyword = true },
			input:  "select * from users u",
			expected: `SELECT *
FROM users AS u
`,
		},
		{
			name:   "go becomes semicolon",
			mutate: func(c *tsqlfmt.Config) { c.BatchSeparator = tsqlfmt.BatchSemicolon },
			input:  "select 1\ngo\nselect 2",
			expected: `SELECT 1;
SELECT 2
`,
		},
		{
			name:   "compact cte renders inline",
			mutate: func(c *tsqlfmt.Config) { c.CTEStyle = tsqlfmt.ConstructCompact },
			input:  "with c as (select a from t) select * from c",
			expected: `WITH c AS (SELECT a FROM t)
SELECT *
FROM c
`,
		},
		{
			name: "inline lists keep items on the clause line",
			mutate: func(c *tsqlfmt.Config) {
				c.SelectListStyle = tsqlfmt.StyleInline
				c.WhereConditionStyle = tsqlfmt.StyleInline
			},
			input: "select a, b from t where x = 1 and y = 2",
			expected: `SELECT a, b
FROM t
WHERE x = 1 AND y = 2
`,
		},
		{
			name:   "lower keyword case",
			mutate: func(c *tsqlfmt.Config) { c.KeywordCase = tsqlfmt.CaseLower },
			input:  "SELECT Price FROM Items",
			expected: `select Price
from Items
`,
		},
		{
			name:   "preserve keyword case",
			mutate: func(c *tsqlfmt.Config) { c.KeywordCase = tsqlfmt.CasePreserve },
			input:  "Select Price From Items",
			expected: `Select Price
From Items
`,
		},
		{
			name: "stacked indent with tabs",
			mutate: func(c *tsqlfmt.Config) {
				c.SelectListStyle = tsqlfmt.StyleStackedIndent
				c.UseTabs = true
			},
			input: "select a, b from t",
			expected: "SELECT\n\ta\n\t, b\nFROM t\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := tsqlfmt.DefaultConfig()
			test.mutate(cfg)

			actual, err := Format(test.input, cfg)
			assert.NoError(t, err)
			assert.Equal(t, test.expected, actual)
		})
	}
}

func TestFormatIsIdempotent(t *testing.T) {
	inputs := []string{
		"select a,b from t where x=1",
		"select * from (select id from t) x",
		"with c as (select a from t) select * from c",
		"update t set a = 1, b = 2 where id = 3",
		"select * from users with (nolock) where id = 1",
		"select a, -- note\nb from t",
		"select 1\ngo\nselect 2",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			once, err := Format(input, nil)
			assert.NoError(t, err)

			twice, err := Format(once, nil)
			assert.NoError(t, err)
			assert.Equal(t, once, twice)
		})
	}
}

// TestFormatPreservesTokens checks that formatting never loses or invents
// content: the significant tokens of input and output match, up to keyword
// casing. Inputs avoid the keyword-insertion options' triggers.
func TestFormatPreservesTokens(t *testing.T) {
	inputs := []string{
		"select a,b from t where x=1 and y=2",
		"select * from (select id from t) as x",
		"insert into t (a, b) values (1, 2), (3, 4)",
		"with c as (select a from t) select * from c",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			output, err := Format(input, nil)
			assert.NoError(t, err)
			assert.Equal(t, tokenValues(t, input), tokenValues(t, output))
		})
	}
}

func tokenValues(t *testing.T, sql string) []string {
	t.Helper()

	tok := tokenizer.NewSqlTokenizer(sql, tokenizer.TokenizerOptions{SkipWhitespace: true})

	raw, err := tok.AllTokens()
	assert.NoError(t, err)

	values := make([]string, 0, len(raw))
	for _, token := range raw {
		values = append(values, strings.ToUpper(token.Value))
	}

	return values
}

func TestFormatEmptyInput(t *testing.T) {
	_, err := Format("", nil)
	assert.IsError(t, err, tsqlfmt.ErrEmptyInput)

	_, err = Format("   \n\t  ", nil)
	assert.IsError(t, err, tsqlfmt.ErrEmptyInput)
}

func TestFormatInvalidConfig(t *testing.T) {
	cfg := tsqlfmt.DefaultConfig()
	cfg.KeywordCase = "title"

	out, err := Format("select 1", cfg)
	assert.IsError(t, err, tsqlfmt.ErrConfigValidation)
	// input comes back unchanged
	assert.Equal(t, "select 1", out)
}

func TestFormatBestEffortOnLexError(t *testing.T) {
	out, err := Format("select 'abc", nil)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "SELECT"))
}

func TestFormatComments(t *testing.T) {
	input := "-- header\nselect a, -- trailing\nb from t"

	out, err := Format(input, nil)
	assert.NoError(t, err)

	expected := `-- header
SELECT a
    , -- trailing
    b
FROM t
`
	assert.Equal(t, expected, out)
}
