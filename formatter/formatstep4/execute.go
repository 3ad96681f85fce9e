// Package formatstep4 decides line structure: which tokens start a new line
// and at what indentation. It places clause keywords on their own lines,
// stacks list separators according to the per-context style options, and
// handles the stacked_indent "pending first item" placement. The CTE and
// MERGE compact overrides are checked before every individual stacking
// decision; the VALUES row separator and ALTER TABLE operation separator
// paths intentionally do not check them.
package formatstep4

import (
	"strings"

	tsqlfmt "github.com/mikevskater/tsqlfmt"
	"github.com/mikevskater/tsqlfmt/formatter/fmtcommon"
	"github.com/mikevskater/tsqlfmt/tokenizer"
)

type resolver struct {
	tokens []fmtcommon.Token
	cfg    *tsqlfmt.Config

	seenFirst bool

	// pending first-item placement for stacked_indent lists
	pending       bool
	pendingIndent int
	pendingParens int // skipping a TOP (n) group while pending
}

// Execute annotates tokens with NewlineBefore and IndentLevel. Comment
// tokens are left untouched; their placement belongs to the comment placer.
func Execute(tokens []fmtcommon.Token, cfg *tsqlfmt.Config) {
	r := &resolver{tokens: tokens, cfg: cfg}

	for i := range tokens {
		tok := &tokens[i]
		if !tok.IsSignificant() {
			continue
		}

		r.process(i, tok)
		r.seenFirst = true
	}
}

func (r *resolver) process(i int, tok *fmtcommon.Token) {
	switch tok.Type {
	case tokenizer.COMMA:
		r.pending = false
		r.comma(i, tok)

		return
	case tokenizer.SEMICOLON:
		r.pending = false
		return
	case tokenizer.BATCH_SEPARATOR:
		r.pending = false

		if r.seenFirst {
			tok.NewlineBefore = true
			tok.IndentLevel = 0
		}

		return
	case tokenizer.KEYWORD:
		if tok.StartsClause {
			r.clauseKeyword(tok)
			return
		}

		if r.consumePending(i, tok) {
			return
		}

		r.logicalOperator(tok)

		return
	case tokenizer.OPENED_PARENS:
		if r.consumePending(i, tok) {
			return
		}

		r.openParen(tok)

		return
	case tokenizer.CLOSED_PARENS:
		r.pending = false
		r.closeParen(tok)

		return
	default:
		if r.consumePending(i, tok) {
			return
		}
	}
}

// compact reports whether the compact-mode overrides suppress stacking for
// this token.
func (r *resolver) compact(tok *fmtcommon.Token) bool {
	if tok.InCTEBody && r.cfg.CTEStyle == tsqlfmt.ConstructCompact {
		return true
	}

	if tok.InMerge && r.cfg.MergeStyle == tsqlfmt.ConstructCompact {
		return true
	}

	return false
}

// clauseKeyword places a clause-starting keyword on its own line.
func (r *resolver) clauseKeyword(tok *fmtcommon.Token) {
	r.pending = false

	if r.seenFirst && !r.compact(tok) {
		tok.NewlineBefore = true
		tok.IndentLevel = tok.BaseIndent
	}

	style := r.styleFor(tok.List)
	if style == tsqlfmt.StyleStackedIndent && !r.compact(tok) {
		r.pending = true
		r.pendingIndent = tok.BaseIndent + 1

		if tok.List == fmtcommon.ListOnConditions {
			r.pendingIndent += r.cfg.NestedJoinIndent * tok.SubqueryDepth
		}
	}
}

// comma applies the per-context stacking decision to a list separator.
// Stacked separators lead their line: the comma itself breaks, the item
// follows on the same line.
func (r *resolver) comma(i int, tok *fmtcommon.Token) {
	switch tok.List {
	case fmtcommon.ListValuesRows:
		// Row separators ignore the compact overrides.
		if r.styleFor(tok.List) != tsqlfmt.StyleInline {
			r.stack(tok, tok.BaseIndent+1)
		}

		return
	case fmtcommon.ListAlterOps:
		// As do ALTER TABLE operation separators.
		if r.styleFor(tok.List) != tsqlfmt.StyleInline {
			r.stack(tok, tok.BaseIndent+1)
		}

		return
	case fmtcommon.ListCreateTableColumns:
		if r.compact(tok) {
			return
		}

		r.createTableComma(i, tok)

		return
	case fmtcommon.ListCTEs:
		// Separators between CTE definitions always stack, at the level
		// of the WITH keyword.
		if !r.compact(tok) {
			r.stack(tok, tok.BaseIndent)
		}

		return
	}

	if r.compact(tok) {
		return
	}

	if r.styleFor(tok.List) != tsqlfmt.StyleInline {
		r.stack(tok, tok.BaseIndent+1)
	}
}

// createTableComma applies the two-level CREATE TABLE rule: a separator
// preceding a table-level constraint follows create_table_constraint_newline,
// an ordinary column separator follows create_table_column_newline, and a
// disabled constraint setting falls back to the column setting.
func (r *resolver) createTableComma(i int, tok *fmtcommon.Token) {
	next := fmtcommon.NextSignificant(r.tokens, i+1)
	isConstraint := next >= 0 &&
		r.tokens[next].Type == tokenizer.KEYWORD &&
		tokenizer.ConstraintSet[strings.ToUpper(r.tokens[next].Value)]

	newline := r.cfg.CreateTableColumnNewline
	if isConstraint && r.cfg.CreateTableConstraintNewline {
		newline = true
	}

	if newline {
		r.stack(tok, tok.BaseIndent+1)
	}
}

func (r *resolver) stack(tok *fmtcommon.Token, indent int) {
	tok.NewlineBefore = true
	tok.IndentLevel = indent
}

// logicalOperator stacks top-level AND/OR chains in WHERE/HAVING and ON.
func (r *resolver) logicalOperator(tok *fmtcommon.Token) {
	upper := strings.ToUpper(tok.Value)
	if upper != "AND" && upper != "OR" {
		return
	}

	if r.compact(tok) {
		return
	}

	switch tok.List {
	case fmtcommon.ListWhereConditions:
		if r.cfg.WhereConditionStyle != tsqlfmt.StyleInline {
			r.stack(tok, tok.BaseIndent+1)
		}
	case fmtcommon.ListOnConditions:
		if r.cfg.JoinOnStyle != tsqlfmt.StyleInline {
			r.stack(tok, tok.BaseIndent+1)
		}
	}
}

// openParen starts pending first-item placement for bounded lists that use
// stacked_indent.
func (r *resolver) openParen(tok *fmtcommon.Token) {
	style := r.styleFor(tok.List)
	if style == tsqlfmt.StyleStackedIndent && !r.compact(tok) && boundedList(tok.List) {
		r.pending = true
		r.pendingIndent = tok.BaseIndent + 1
	}
}

func (r *resolver) closeParen(tok *fmtcommon.Token) {
	if tok.IsSubqueryClose && !r.compact(tok) {
		indent := tok.BaseIndent - 1
		if indent < 0 {
			indent = 0
		}

		tok.NewlineBefore = true
		tok.IndentLevel = indent
	}
}

// consumePending places the first item of a stacked_indent list on its own
// line, skipping the introducing keyword's modifiers (DISTINCT, TOP 10
// PERCENT, BY, numeric literals and a TOP (n) group).
func (r *resolver) consumePending(i int, tok *fmtcommon.Token) bool {
	if !r.pending {
		return false
	}

	if r.pendingParens > 0 {
		switch tok.Type {
		case tokenizer.OPENED_PARENS:
			r.pendingParens++
		case tokenizer.CLOSED_PARENS:
			r.pendingParens--
		}

		return true
	}

	switch tok.Type {
	case tokenizer.NUMBER:
		return true
	case tokenizer.KEYWORD:
		if fmtcommon.IsSelectModifier(tok.Value) || strings.ToUpper(tok.Value) == "BY" {
			return true
		}
	case tokenizer.OPENED_PARENS:
		prev := fmtcommon.PrevSignificant(r.tokens, i-1)
		if prev >= 0 && r.tokens[prev].IsKeyword("TOP") {
			r.pendingParens = 1
			return true
		}
	}

	tok.NewlineBefore = true
	tok.IndentLevel = r.pendingIndent
	r.pending = false

	return true
}

func boundedList(list fmtcommon.ListContext) bool {
	switch list {
	case fmtcommon.ListInsertColumns, fmtcommon.ListValuesRow, fmtcommon.ListCTEColumns,
		fmtcommon.ListFunctionArgs, fmtcommon.ListIndexColumns, fmtcommon.ListIncludeColumns,
		fmtcommon.ListProcParams, fmtcommon.ListCreateTableColumns:
		return true
	default:
		return false
	}
}

// styleFor maps a list context to its configured style.
func (r *resolver) styleFor(list fmtcommon.ListContext) string {
	switch list {
	case fmtcommon.ListSelect, fmtcommon.ListOutput:
		return r.cfg.SelectListStyle
	case fmtcommon.ListFromTables:
		return r.cfg.FromTableStyle
	case fmtcommon.ListGroupBy:
		return r.cfg.GroupByStyle
	case fmtcommon.ListOrderBy:
		return r.cfg.OrderByStyle
	case fmtcommon.ListInsertColumns:
		return r.cfg.InsertColumnsStyle
	case fmtcommon.ListValuesRow:
		return r.cfg.InsertValuesStyle
	case fmtcommon.ListValuesRows:
		return r.cfg.InsertRowStyle
	case fmtcommon.ListCTEs:
		return tsqlfmt.StyleStacked
	case fmtcommon.ListCTEColumns:
		return r.cfg.CTEColumnsStyle
	case fmtcommon.ListFunctionArgs:
		return r.cfg.FunctionArgsStyle
	case fmtcommon.ListIndexColumns, fmtcommon.ListIncludeColumns:
		return r.cfg.IndexColumnsStyle
	case fmtcommon.ListProcParams:
		return r.cfg.ProcParamsStyle
	case fmtcommon.ListUpdateSet:
		return r.cfg.UpdateSetStyle
	case fmtcommon.ListCreateTableColumns:
		if r.cfg.CreateTableColumnNewline {
			return tsqlfmt.StyleStackedIndent
		}

		return tsqlfmt.StyleInline
	case fmtcommon.ListAlterOps:
		return r.cfg.AlterOperationStyle
	case fmtcommon.ListWhereConditions:
		return r.cfg.WhereConditionStyle
	case fmtcommon.ListOnConditions:
		return r.cfg.JoinOnStyle
	default:
		return tsqlfmt.StyleInline
	}
}
