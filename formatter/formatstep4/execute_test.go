package formatstep4

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	tsqlfmt "github.com/mikevskater/tsqlfmt"
	"github.com/mikevskater/tsqlfmt/formatter/fmtcommon"
	"github.com/mikevskater/tsqlfmt/formatter/formatstep1"
	"github.com/mikevskater/tsqlfmt/formatter/formatstep2"
	"github.com/mikevskater/tsqlfmt/tokenizer"
)

func annotate(t *testing.T, sql string, cfg *tsqlfmt.Config) []fmtcommon.Token {
	t.Helper()

	tok := tokenizer.NewSqlTokenizer(sql, tokenizer.TokenizerOptions{SkipWhitespace: true})

	raw, err := tok.AllTokens()
	assert.NoError(t, err)

	tokens := fmtcommon.Wrap(raw)
	formatstep1.Execute(tokens, cfg)
	formatstep2.Execute(tokens, cfg)
	Execute(tokens, cfg)

	return tokens
}

func find(t *testing.T, tokens []fmtcommon.Token, value string) *fmtcommon.Token {
	t.Helper()

	for i := range tokens {
		if strings.EqualFold(tokens[i].Value, value) {
			return &tokens[i]
		}
	}

	t.Fatalf("token %q not found", value)

	return nil
}

func TestClauseKeywordsStartLines(t *testing.T) {
	cfg := tsqlfmt.DefaultConfig()
	tokens := annotate(t, "SELECT a FROM t WHERE x = 1", cfg)

	// the very first token never breaks
	assert.False(t, tokens[0].NewlineBefore)

	from := find(t, tokens, "FROM")
	assert.True(t, from.NewlineBefore)
	assert.Equal(t, 0, from.IndentLevel)

	where := find(t, tokens, "WHERE")
	assert.True(t, where.NewlineBefore)
	assert.Equal(t, 0, where.IndentLevel)
}

func TestStackedCommaLeadsTheLine(t *testing.T) {
	cfg := tsqlfmt.DefaultConfig() // select_list_style: stacked
	tokens := annotate(t, "SELECT a, b FROM t", cfg)

	comma := find(t, tokens, ",")
	assert.True(t, comma.NewlineBefore)
	assert.Equal(t, 1, comma.IndentLevel)

	// the item follows the comma on the same line
	assert.False(t, find(t, tokens, "b").NewlineBefore)
}

func TestInlineListDoesNotStack(t *testing.T) {
	cfg := tsqlfmt.DefaultConfig()
	cfg.SelectListStyle = tsqlfmt.StyleInline

	tokens := annotate(t, "SELECT a, b FROM t", cfg)
	assert.False(t, find(t, tokens, ",").NewlineBefore)
}

func TestStackedIndentBreaksFirstItem(t *testing.T) {
	cfg := tsqlfmt.DefaultConfig()
	cfg.SelectListStyle = tsqlfmt.StyleStackedIndent

	tokens := annotate(t, "SELECT DISTINCT TOP 10 a, b FROM t", cfg)

	// modifiers stay on the keyword line; the first item breaks
	assert.False(t, find(t, tokens, "DISTINCT").NewlineBefore)
	assert.False(t, find(t, tokens, "10").NewlineBefore)

	a := find(t, tokens, "a")
	assert.True(t, a.NewlineBefore)
	assert.Equal(t, 1, a.IndentLevel)
}

func TestWhereConditionStacking(t *testing.T) {
	cfg := tsqlfmt.DefaultConfig() // where_condition_style: stacked
	tokens := annotate(t, "SELECT * FROM t WHERE a = 1 AND b = 2 OR c = 3", cfg)

	and := find(t, tokens, "AND")
	assert.True(t, and.NewlineBefore)
	assert.Equal(t, 1, and.IndentLevel)
	assert.True(t, find(t, tokens, "OR").NewlineBefore)
}

func TestParenthesizedConditionsDoNotStack(t *testing.T) {
	cfg := tsqlfmt.DefaultConfig()
	tokens := annotate(t, "SELECT * FROM t WHERE (a = 1 OR b = 2) AND c = 3", cfg)

	assert.False(t, find(t, tokens, "OR").NewlineBefore)
	assert.True(t, find(t, tokens, "AND").NewlineBefore)
}

func TestSubqueryIndentation(t *testing.T) {
	cfg := tsqlfmt.DefaultConfig()
	tokens := annotate(t, "SELECT * FROM (SELECT id FROM t) x", cfg)

	var inner *fmtcommon.Token

	for i := range tokens {
		if tokens[i].IsKeyword("SELECT") && tokens[i].SubqueryDepth == 1 {
			inner = &tokens[i]
		}
	}

	assert.NotZero(t, inner)
	assert.True(t, inner.NewlineBefore)
	assert.Equal(t, 1, inner.IndentLevel)

	closeParen := find(t, tokens, ")")
	assert.True(t, closeParen.NewlineBefore)
	assert.Equal(t, 0, closeParen.IndentLevel)
}

func TestOnClauseNestedJoinIndent(t *testing.T) {
	cfg := tsqlfmt.DefaultConfig()
	cfg.JoinOnStyle = tsqlfmt.StyleStackedIndent
	cfg.NestedJoinIndent = 2

	sql := "SELECT * FROM (SELECT * FROM a JOIN b ON a.id = b.id) x"
	tokens := annotate(t, sql, cfg)

	// first ON condition: base indent + 1 + nested_join_indent * depth
	var first *fmtcommon.Token

	for i := range tokens {
		if tokens[i].IsKeyword("ON") {
			next := fmtcommon.NextSignificant(tokens, i+1)
			first = &tokens[next]

			break
		}
	}

	assert.NotZero(t, first)
	assert.True(t, first.NewlineBefore)
	assert.Equal(t, 1+1+2*1, first.IndentLevel)
}

func TestCompactCTESuppressesStacking(t *testing.T) {
	cfg := tsqlfmt.DefaultConfig()
	cfg.CTEStyle = tsqlfmt.ConstructCompact

	tokens := annotate(t, "WITH c AS (SELECT a, b FROM t) SELECT * FROM c", cfg)

	for i := range tokens {
		if tokens[i].InCTEBody {
			assert.False(t, tokens[i].NewlineBefore, "CTE body token %q should not break", tokens[i].Value)
		}
	}

	// the main statement is unaffected
	var mainFrom *fmtcommon.Token

	for i := range tokens {
		if tokens[i].IsKeyword("FROM") && !tokens[i].InCTEBody {
			mainFrom = &tokens[i]
		}
	}

	assert.True(t, mainFrom.NewlineBefore)
}

func TestValuesRowSeparatorIgnoresCompactMerge(t *testing.T) {
	cfg := tsqlfmt.DefaultConfig() // insert_row_style: stacked
	cfg.MergeStyle = tsqlfmt.ConstructCompact

	sql := "MERGE t USING s ON t.a = s.a WHEN NOT MATCHED THEN INSERT (a, b) VALUES (1, 2), (3, 4)"
	tokens := annotate(t, sql, cfg)

	var rowSep *fmtcommon.Token

	for i := range tokens {
		if tokens[i].Type == tokenizer.COMMA && tokens[i].List == fmtcommon.ListValuesRows {
			rowSep = &tokens[i]
			break
		}
	}

	assert.NotZero(t, rowSep)
	assert.True(t, rowSep.NewlineBefore)
}

func TestCreateTableColumnBreaks(t *testing.T) {
	sql := "CREATE TABLE t (id INT, name VARCHAR(50), CONSTRAINT pk PRIMARY KEY (id))"

	cfg := tsqlfmt.DefaultConfig()
	tokens := annotate(t, sql, cfg)

	commas := columnCommas(tokens)
	assert.Equal(t, 2, len(commas))
	assert.True(t, commas[0].NewlineBefore)
	assert.True(t, commas[1].NewlineBefore)

	// constraint-only breaks
	cfg = tsqlfmt.DefaultConfig()
	cfg.CreateTableColumnNewline = false

	tokens = annotate(t, sql, cfg)
	commas = columnCommas(tokens)
	assert.False(t, commas[0].NewlineBefore)
	assert.True(t, commas[1].NewlineBefore)

	// disabled constraint setting falls back to the column setting
	cfg = tsqlfmt.DefaultConfig()
	cfg.CreateTableConstraintNewline = false

	tokens = annotate(t, sql, cfg)
	commas = columnCommas(tokens)
	assert.True(t, commas[0].NewlineBefore)
	assert.True(t, commas[1].NewlineBefore)
}

func columnCommas(tokens []fmtcommon.Token) []*fmtcommon.Token {
	var out []*fmtcommon.Token

	for i := range tokens {
		if tokens[i].Type == tokenizer.COMMA && tokens[i].List == fmtcommon.ListCreateTableColumns {
			out = append(out, &tokens[i])
		}
	}

	return out
}

func TestBatchSeparatorAtColumnZero(t *testing.T) {
	cfg := tsqlfmt.DefaultConfig()
	tokens := annotate(t, "SELECT 1\nGO\nSELECT 2", cfg)

	sep := find(t, tokens, "GO")
	assert.True(t, sep.NewlineBefore)
	assert.Equal(t, 0, sep.IndentLevel)
}

func TestCommentsAreUntouched(t *testing.T) {
	cfg := tsqlfmt.DefaultConfig()
	tokens := annotate(t, "SELECT a, -- note\nb FROM t", cfg)

	for i := range tokens {
		if tokens[i].IsComment() {
			assert.False(t, tokens[i].NewlineBefore)
			assert.Equal(t, 0, tokens[i].IndentLevel)
		}
	}
}
