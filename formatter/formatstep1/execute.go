// Package formatstep1 assigns every token its clause, paren depth and list
// context. It walks the statement left to right with an explicit state
// machine: a clause register, a paren-frame stack classifying each open
// paren, and sub-state for CTE definitions and DDL object bodies. All later
// passes read these annotations; none of them re-derive clause state.
package formatstep1

import (
	"strings"

	tsqlfmt "github.com/mikevskater/tsqlfmt"
	"github.com/mikevskater/tsqlfmt/formatter/fmtcommon"
	"github.com/mikevskater/tsqlfmt/tokenizer"
)

// parenKind classifies what an open paren introduces.
type parenKind int

const (
	parenExpression parenKind = iota
	parenSubquery
	parenFunctionArgs
	parenDatatype
	parenTableHint
	parenInsertColumns
	parenValuesRow
	parenCTEColumns
	parenCTEBody
	parenCreateTableColumns
	parenIndexColumns
	parenIncludeColumns
	parenProcParams
	parenWindowSpec
	parenTopExpr
)

// transparent paren kinds contain full statements, so the clause machine
// keeps running inside them.
func (k parenKind) transparent() bool {
	return k == parenSubquery || k == parenCTEBody
}

func (k parenKind) list() fmtcommon.ListContext {
	switch k {
	case parenFunctionArgs:
		return fmtcommon.ListFunctionArgs
	case parenTableHint:
		return fmtcommon.ListTableHint
	case parenInsertColumns:
		return fmtcommon.ListInsertColumns
	case parenValuesRow:
		return fmtcommon.ListValuesRow
	case parenCTEColumns:
		return fmtcommon.ListCTEColumns
	case parenCreateTableColumns:
		return fmtcommon.ListCreateTableColumns
	case parenIndexColumns:
		return fmtcommon.ListIndexColumns
	case parenIncludeColumns:
		return fmtcommon.ListIncludeColumns
	case parenProcParams:
		return fmtcommon.ListProcParams
	default:
		return fmtcommon.ListExpression
	}
}

// parenFrame records one open paren: its kind, the depth of the open paren
// itself, and the clause to restore when it closes. Matching close detection
// is keyed off the recorded depth, not a counter that nested statements
// could perturb.
type parenFrame struct {
	kind   parenKind
	depth  int
	clause fmtcommon.Clause
}

type tracker struct {
	tokens []fmtcommon.Token

	parenDepth int
	clause     fmtcommon.Clause
	stack      []parenFrame

	inMerge   bool
	caseDepth int

	// CTE sub-state
	inCTEDef      bool
	inCTEBody     bool
	cteEntryDepth int
	cteBodyDepth  int

	// DDL sub-state
	pendingCreate  bool
	pendingAlter   bool
	pendingInclude bool
	pendingHint    bool
	ddlListSeen    bool
}

// Execute annotates tokens with clause, paren depth and list context.
// Malformed SQL never fails: depth clamps at zero and unmatched constructs
// degrade to plain expressions.
func Execute(tokens []fmtcommon.Token, cfg *tsqlfmt.Config) {
	t := &tracker{tokens: tokens}

	for i := range tokens {
		t.process(i)
	}
}

func (t *tracker) process(i int) {
	tok := &t.tokens[i]

	switch tok.Type {
	case tokenizer.KEYWORD:
		t.keyword(i, tok)
		t.stamp(tok)
	case tokenizer.OPENED_PARENS:
		kind := t.classifyParen(i)

		if kind == parenCTEBody {
			tok.IsCTEOpenParen = true
			t.inCTEDef = false
			t.inCTEBody = true
			t.cteBodyDepth = t.parenDepth
		}

		t.stamp(tok)
		tok.List = kind.list()

		t.stack = append(t.stack, parenFrame{kind: kind, depth: t.parenDepth, clause: t.clause})
		t.parenDepth++
	case tokenizer.CLOSED_PARENS:
		t.stamp(tok)

		if len(t.stack) > 0 {
			frame := t.stack[len(t.stack)-1]
			t.stack = t.stack[:len(t.stack)-1]
			tok.List = frame.kind.list()
			t.clause = frame.clause

			if t.inCTEBody && frame.depth == t.cteBodyDepth {
				// ClosedBody: the token itself still counts as CTE body
				t.inCTEBody = false
				t.clause = fmtcommon.ClauseWith
			}
		}

		if t.parenDepth > 0 {
			t.parenDepth--
		}
	case tokenizer.COMMA:
		t.stamp(tok)

		// A top-level comma in a WITH list reopens the definition state
		// for the next CTE.
		if t.clause == fmtcommon.ClauseWith && !t.inCTEBody && t.parenDepth == t.cteEntryDepth {
			t.inCTEDef = true
		}
	case tokenizer.SEMICOLON, tokenizer.BATCH_SEPARATOR:
		t.stamp(tok)
		t.reset()
	default:
		t.stamp(tok)
	}
}

// stamp writes the tracker's current state onto the token.
func (t *tracker) stamp(tok *fmtcommon.Token) {
	tok.Clause = t.clause
	tok.ParenDepth = t.parenDepth
	tok.List = t.listContext()
	tok.InCTEDefinition = t.inCTEDef
	tok.InCTEBody = t.inCTEBody
	tok.InMerge = t.inMerge
	tok.InTableHint = t.inHint()
}

func (t *tracker) inHint() bool {
	for _, frame := range t.stack {
		if frame.kind == parenTableHint {
			return true
		}
	}

	return false
}

// listContext resolves the innermost comma-separated list: the top paren
// frame when it is a bounded list, the current clause otherwise.
func (t *tracker) listContext() fmtcommon.ListContext {
	if len(t.stack) > 0 {
		top := t.stack[len(t.stack)-1]
		if !top.kind.transparent() {
			return top.kind.list()
		}
	}

	return clauseList(t.clause)
}

func clauseList(clause fmtcommon.Clause) fmtcommon.ListContext {
	switch clause {
	case fmtcommon.ClauseSelect:
		return fmtcommon.ListSelect
	case fmtcommon.ClauseFrom, fmtcommon.ClauseJoin, fmtcommon.ClauseUsing:
		return fmtcommon.ListFromTables
	case fmtcommon.ClauseGroupBy:
		return fmtcommon.ListGroupBy
	case fmtcommon.ClauseOrderBy:
		return fmtcommon.ListOrderBy
	case fmtcommon.ClauseSet:
		return fmtcommon.ListUpdateSet
	case fmtcommon.ClauseValues:
		return fmtcommon.ListValuesRows
	case fmtcommon.ClauseWith:
		return fmtcommon.ListCTEs
	case fmtcommon.ClauseCreateProc:
		return fmtcommon.ListProcParams
	case fmtcommon.ClauseAlterTable:
		return fmtcommon.ListAlterOps
	case fmtcommon.ClauseOutput:
		return fmtcommon.ListOutput
	case fmtcommon.ClauseWhere, fmtcommon.ClauseHaving:
		return fmtcommon.ListWhereConditions
	case fmtcommon.ClauseOn:
		return fmtcommon.ListOnConditions
	default:
		return fmtcommon.ListExpression
	}
}

// keyword applies clause transitions. Inside bounded (non-transparent) paren
// groups the clause register is frozen; only CASE/END depth is maintained.
func (t *tracker) keyword(i int, tok *fmtcommon.Token) {
	upper := strings.ToUpper(tok.Value)

	switch upper {
	case "CASE":
		t.caseDepth++
		return
	case "END":
		if t.caseDepth > 0 {
			t.caseDepth--
		}

		return
	}

	if len(t.stack) > 0 && !t.stack[len(t.stack)-1].kind.transparent() {
		return
	}

	switch upper {
	case "SELECT":
		t.setClause(tok, fmtcommon.ClauseSelect)
	case "FROM":
		t.setClause(tok, fmtcommon.ClauseFrom)
	case "WHERE":
		t.setClause(tok, fmtcommon.ClauseWhere)
	case "GROUP":
		t.setClause(tok, fmtcommon.ClauseGroupBy)
	case "HAVING":
		t.setClause(tok, fmtcommon.ClauseHaving)
	case "ORDER":
		t.setClause(tok, fmtcommon.ClauseOrderBy)
	case "SET":
		t.setClause(tok, fmtcommon.ClauseSet)
	case "VALUES":
		t.setClause(tok, fmtcommon.ClauseValues)
	case "UNION", "EXCEPT", "INTERSECT":
		t.setClause(tok, fmtcommon.ClauseSetOp)
	case "INSERT":
		t.setClause(tok, fmtcommon.ClauseInsert)
	case "UPDATE":
		// UPDATE(column) inside an OUTPUT or trigger body is a function
		// form, not a statement start.
		if next := t.nextSignificant(i + 1); next >= 0 && t.tokens[next].Type == tokenizer.OPENED_PARENS {
			return
		}

		t.setClause(tok, fmtcommon.ClauseUpdate)
	case "DELETE":
		t.setClause(tok, fmtcommon.ClauseDelete)
	case "MERGE":
		t.inMerge = true

		t.setClause(tok, fmtcommon.ClauseMerge)
	case "USING":
		if t.inMerge {
			t.setClause(tok, fmtcommon.ClauseUsing)
		}
	case "ON":
		switch t.clause {
		case fmtcommon.ClauseJoin, fmtcommon.ClauseUsing, fmtcommon.ClauseMerge:
			t.setClause(tok, fmtcommon.ClauseOn)
		}
	case "WHEN":
		if t.inMerge && t.caseDepth == 0 {
			t.setClause(tok, fmtcommon.ClauseMergeWhen)
		}
	case "OUTPUT":
		switch t.clause {
		case fmtcommon.ClauseSet, fmtcommon.ClauseValues, fmtcommon.ClauseInsert,
			fmtcommon.ClauseUpdate, fmtcommon.ClauseDelete, fmtcommon.ClauseMergeWhen,
			fmtcommon.ClauseFrom, fmtcommon.ClauseOn:
			t.setClause(tok, fmtcommon.ClauseOutput)
		}
	case "JOIN", "INNER", "LEFT", "RIGHT", "FULL", "CROSS":
		// Only the first keyword of the join phrase starts the clause.
		prev := t.prevSignificant(i - 1)
		if prev >= 0 && fmtcommon.IsJoinKeyword(t.tokens[prev].Value) && t.tokens[prev].Type == tokenizer.KEYWORD {
			t.clause = fmtcommon.ClauseJoin
			return
		}

		t.setClause(tok, fmtcommon.ClauseJoin)
	case "WITH":
		t.with(i, tok)
	case "CREATE":
		t.pendingCreate = true
		t.pendingAlter = false
		t.markDDLHead(i, tok)
	case "ALTER":
		t.pendingCreate = true
		t.pendingAlter = true
		t.markDDLHead(i, tok)
	case "TABLE":
		if t.pendingCreate {
			t.pendingCreate = false
			t.ddlListSeen = false

			if t.pendingAlter {
				t.clause = fmtcommon.ClauseAlterTable
			} else {
				t.clause = fmtcommon.ClauseCreateTable
			}
		}
	case "INDEX":
		if t.pendingCreate {
			t.pendingCreate = false
			t.ddlListSeen = false

			t.clause = fmtcommon.ClauseCreateIndex
		}
	case "PROCEDURE", "PROC", "FUNCTION", "TRIGGER":
		if t.pendingCreate {
			t.pendingCreate = false
			t.ddlListSeen = false

			t.clause = fmtcommon.ClauseCreateProc
		}
	case "INCLUDE":
		if t.clause == fmtcommon.ClauseCreateIndex {
			t.pendingInclude = true
		}
	case "DECLARE":
		t.setClause(tok, fmtcommon.ClauseDeclare)
	case "AS":
		// AS closes the parameter section of a procedure definition; the
		// body statements set their own clauses.
		if t.clause == fmtcommon.ClauseCreateProc {
			t.clause = fmtcommon.ClauseNone
		}
	}
}

func (t *tracker) setClause(tok *fmtcommon.Token, clause fmtcommon.Clause) {
	t.clause = clause
	tok.StartsClause = true
}

// markDDLHead flags CREATE/ALTER as the clause start when an object keyword
// follows, so the whole DDL header renders as one phrase. ALTER COLUMN inside
// an ALTER TABLE operation list is not a header.
func (t *tracker) markDDLHead(i int, tok *fmtcommon.Token) {
	next := t.nextSignificant(i + 1)
	if next < 0 || t.tokens[next].Type != tokenizer.KEYWORD {
		return
	}

	switch strings.ToUpper(t.tokens[next].Value) {
	case "TABLE", "INDEX", "UNIQUE", "CLUSTERED", "NONCLUSTERED",
		"PROCEDURE", "PROC", "FUNCTION", "TRIGGER", "VIEW",
		"DATABASE", "SCHEMA", "SEQUENCE":
		tok.StartsClause = true
	}
}

// with disambiguates the CTE introducer from a table hint: WITH inside a
// table-reference clause with an immediately following paren is a hint.
func (t *tracker) with(i int, tok *fmtcommon.Token) {
	next := t.nextSignificant(i + 1)
	followedByParen := next >= 0 && t.tokens[next].Type == tokenizer.OPENED_PARENS

	switch t.clause {
	case fmtcommon.ClauseFrom, fmtcommon.ClauseJoin, fmtcommon.ClauseUsing,
		fmtcommon.ClauseUpdate, fmtcommon.ClauseDelete, fmtcommon.ClauseInsert,
		fmtcommon.ClauseMerge:
		if followedByParen {
			t.pendingHint = true
			return
		}
	case fmtcommon.ClauseCreateIndex, fmtcommon.ClauseCreateTable, fmtcommon.ClauseAlterTable:
		// index/table options: WITH (PAD_INDEX = ON, ...)
		if followedByParen {
			t.pendingHint = true
			return
		}
	}

	t.setClause(tok, fmtcommon.ClauseWith)
	t.inCTEDef = true
	t.cteEntryDepth = t.parenDepth
}

// classifyParen decides what the open paren at index i introduces.
func (t *tracker) classifyParen(i int) parenKind {
	if t.pendingHint {
		t.pendingHint = false
		return parenTableHint
	}

	if t.pendingInclude {
		t.pendingInclude = false
		return parenIncludeColumns
	}

	prev := t.prevSignificant(i - 1)

	// CTE sub-state first: cte(col1, col2) versus the body's AS (...).
	if t.inCTEDef {
		if prev >= 0 && t.tokens[prev].IsKeyword("AS") {
			return parenCTEBody
		}

		return parenCTEColumns
	}

	// A paren whose first significant content is SELECT is a subquery
	// regardless of what precedes it.
	if next := t.nextSignificant(i + 1); next >= 0 && t.tokens[next].IsKeyword("SELECT") {
		return parenSubquery
	}

	if prev < 0 {
		return parenExpression
	}

	prevTok := &t.tokens[prev]

	switch t.clause {
	case fmtcommon.ClauseInsert:
		if prevTok.Type == tokenizer.IDENTIFIER || prevTok.Type == tokenizer.QUOTED_IDENTIFIER {
			return parenInsertColumns
		}
	case fmtcommon.ClauseValues:
		if len(t.stack) == 0 || t.stack[len(t.stack)-1].kind.transparent() {
			return parenValuesRow
		}
	case fmtcommon.ClauseCreateTable:
		if !t.ddlListSeen && (prevTok.Type == tokenizer.IDENTIFIER || prevTok.Type == tokenizer.QUOTED_IDENTIFIER) {
			t.ddlListSeen = true
			return parenCreateTableColumns
		}
	case fmtcommon.ClauseCreateIndex:
		if prevTok.Type == tokenizer.IDENTIFIER || prevTok.Type == tokenizer.QUOTED_IDENTIFIER {
			return parenIndexColumns
		}
	case fmtcommon.ClauseCreateProc:
		if len(t.stack) == 0 {
			return parenProcParams
		}
	case fmtcommon.ClauseAlterTable:
		if !t.ddlListSeen && (prevTok.Type == tokenizer.IDENTIFIER || prevTok.Type == tokenizer.QUOTED_IDENTIFIER) {
			t.ddlListSeen = true
			return parenCreateTableColumns
		}
	}

	switch prevTok.Type {
	case tokenizer.KEYWORD:
		upper := strings.ToUpper(prevTok.Value)

		switch {
		case upper == "OVER":
			return parenWindowSpec
		case upper == "TOP":
			return parenTopExpr
		case upper == "KEY": // PRIMARY KEY (...), FOREIGN KEY (...)
			return parenIndexColumns
		case tokenizer.IsDatatype(prevTok.Value):
			return parenDatatype
		default:
			return parenExpression
		}
	case tokenizer.IDENTIFIER, tokenizer.QUOTED_IDENTIFIER:
		return parenFunctionArgs
	default:
		return parenExpression
	}
}

// reset returns every per-statement register to its initial value. Invoked
// on every statement or batch boundary.
func (t *tracker) reset() {
	t.parenDepth = 0
	t.clause = fmtcommon.ClauseNone
	t.stack = t.stack[:0]
	t.inMerge = false
	t.caseDepth = 0
	t.inCTEDef = false
	t.inCTEBody = false
	t.cteEntryDepth = 0
	t.cteBodyDepth = 0
	t.pendingCreate = false
	t.pendingAlter = false
	t.pendingInclude = false
	t.pendingHint = false
	t.ddlListSeen = false
}

func (t *tracker) nextSignificant(from int) int {
	return fmtcommon.NextSignificant(t.tokens, from)
}

func (t *tracker) prevSignificant(from int) int {
	return fmtcommon.PrevSignificant(t.tokens, from)
}
