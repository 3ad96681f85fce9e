// Package formatstep5 normalizes the token stream itself: join keyword
// canonicalization, INSERT INTO / DELETE FROM completion, explicit AS on
// aliases, schema qualifier stripping and batch separator conversion.
// Removals and insertions are recorded on the tokens; the renderer applies
// them. Synthetic tokens never went through the spacing or structure passes,
// so this pass decides their placement itself.
package formatstep5

import (
	"strings"

	tsqlfmt "github.com/mikevskater/tsqlfmt"
	"github.com/mikevskater/tsqlfmt/formatter/fmtcommon"
	"github.com/mikevskater/tsqlfmt/tokenizer"
)

// Execute annotates tokens with Remove, InsertBefore and InsertAfter.
func Execute(tokens []fmtcommon.Token, cfg *tsqlfmt.Config) {
	t := &transformer{tokens: tokens, cfg: cfg}

	for i := range tokens {
		tok := &tokens[i]
		if !tok.IsSignificant() || tok.Remove {
			continue
		}

		switch tok.Type {
		case tokenizer.KEYWORD:
			t.keyword(i, tok)
		case tokenizer.IDENTIFIER, tokenizer.QUOTED_IDENTIFIER:
			t.identifier(i, tok)
		case tokenizer.BATCH_SEPARATOR:
			t.batchSeparator(i, tok)
		}
	}
}

type transformer struct {
	tokens []fmtcommon.Token
	cfg    *tsqlfmt.Config
}

func (t *transformer) keyword(i int, tok *fmtcommon.Token) {
	upper := strings.ToUpper(tok.Value)

	switch upper {
	case "JOIN":
		t.join(i, tok)
	case "INNER":
		t.inner(i, tok)
	case "OUTER":
		t.outer(i, tok)
	case "LEFT", "RIGHT", "FULL":
		t.directional(i, tok)
	case "INSERT":
		t.insert(i, tok)
	case "DELETE":
		t.delete(i, tok)
	}
}

// join inserts INNER before a bare JOIN in full style. The synthetic takes
// over the JOIN's line placement.
func (t *transformer) join(i int, tok *fmtcommon.Token) {
	if t.cfg.JoinKeywordStyle != tsqlfmt.JoinFull || tok.Clause != fmtcommon.ClauseJoin {
		return
	}

	prev := fmtcommon.PrevSignificant(t.tokens, i-1)
	if prev >= 0 && t.tokens[prev].Type == tokenizer.KEYWORD &&
		fmtcommon.IsJoinKeyword(t.tokens[prev].Value) {
		return
	}

	syn := fmtcommon.NewKeyword("INNER")
	syn.NewlineBefore = tok.NewlineBefore
	syn.IndentLevel = tok.IndentLevel
	syn.SpaceBefore = tok.SpaceBefore && !tok.NewlineBefore

	tok.InsertBefore = append(tok.InsertBefore, syn)
	tok.NewlineBefore = false
	tok.SpaceBefore = true
}

// inner removes a redundant INNER in short style, handing its line placement
// to the JOIN that follows.
func (t *transformer) inner(i int, tok *fmtcommon.Token) {
	if t.cfg.JoinKeywordStyle != tsqlfmt.JoinShort || tok.Clause != fmtcommon.ClauseJoin {
		return
	}

	next := fmtcommon.NextSignificant(t.tokens, i+1)
	if next < 0 || !t.tokens[next].IsKeyword("JOIN") {
		return
	}

	tok.Remove = true

	join := &t.tokens[next]
	join.NewlineBefore = tok.NewlineBefore
	join.IndentLevel = tok.IndentLevel
	join.SpaceBefore = tok.SpaceBefore
}

// outer removes OUTER after LEFT/RIGHT/FULL in short style. OUTER sits in
// the middle of the phrase, so no placement moves.
func (t *transformer) outer(i int, tok *fmtcommon.Token) {
	if t.cfg.JoinKeywordStyle != tsqlfmt.JoinShort || tok.Clause != fmtcommon.ClauseJoin {
		return
	}

	prev := fmtcommon.PrevSignificant(t.tokens, i-1)
	if prev < 0 || t.tokens[prev].Type != tokenizer.KEYWORD {
		return
	}

	switch strings.ToUpper(t.tokens[prev].Value) {
	case "LEFT", "RIGHT", "FULL":
		tok.Remove = true
	}
}

// directional inserts OUTER after LEFT/RIGHT/FULL in full style when the
// phrase goes straight to JOIN.
func (t *transformer) directional(i int, tok *fmtcommon.Token) {
	if t.cfg.JoinKeywordStyle != tsqlfmt.JoinFull || tok.Clause != fmtcommon.ClauseJoin {
		return
	}

	next := fmtcommon.NextSignificant(t.tokens, i+1)
	if next < 0 || !t.tokens[next].IsKeyword("JOIN") {
		return
	}

	tok.InsertAfter = append(tok.InsertAfter, fmtcommon.NewKeyword("OUTER"))
}

// insert completes INSERT to INSERT INTO.
func (t *transformer) insert(i int, tok *fmtcommon.Token) {
	if !t.cfg.InsertIntoKeyword || tok.Clause != fmtcommon.ClauseInsert || !tok.StartsClause {
		return
	}

	next := fmtcommon.NextSignificant(t.tokens, i+1)
	if next >= 0 && t.tokens[next].IsKeyword("INTO") {
		return
	}

	tok.InsertAfter = append(tok.InsertAfter, fmtcommon.NewKeyword("INTO"))
}

// delete completes DELETE to DELETE FROM. The T-SQL alias form
// (DELETE u FROM ... u ...) already has a FROM later in the statement and is
// left alone, so the scan runs to the next clause boundary rather than just
// the next token.
func (t *transformer) delete(i int, tok *fmtcommon.Token) {
	if !t.cfg.DeleteFromKeyword || tok.Clause != fmtcommon.ClauseDelete || !tok.StartsClause {
		return
	}

	for j := i + 1; j < len(t.tokens); j++ {
		scan := &t.tokens[j]
		if !scan.IsSignificant() {
			continue
		}

		switch scan.Type {
		case tokenizer.SEMICOLON, tokenizer.BATCH_SEPARATOR:
			t.insertFrom(tok)
			return
		case tokenizer.KEYWORD:
			switch strings.ToUpper(scan.Value) {
			case "FROM":
				return
			case "WHERE", "GROUP", "HAVING", "ORDER", "OUTPUT",
				"SELECT", "INSERT", "UPDATE", "DELETE", "MERGE":
				t.insertFrom(tok)
				return
			}
		}
	}

	t.insertFrom(tok)
}

func (t *transformer) insertFrom(tok *fmtcommon.Token) {
	syn := fmtcommon.NewKeyword("FROM")
	if t.cfg.DeleteFromNewline {
		syn.SpaceBefore = false
		syn.NewlineBefore = true
		syn.IndentLevel = tok.BaseIndent
	}

	tok.InsertAfter = append(tok.InsertAfter, syn)
}

// identifier handles alias AS insertion and schema qualifier stripping.
func (t *transformer) identifier(i int, tok *fmtcommon.Token) {
	if t.cfg.FromSchemaQualify == tsqlfmt.QualifyNever && t.stripQualifiers(i, tok) {
		return
	}

	t.aliasAs(i, tok)
}

// tableRefClause reports whether the clause names tables rather than columns.
func tableRefClause(clause fmtcommon.Clause) bool {
	switch clause {
	case fmtcommon.ClauseFrom, fmtcommon.ClauseJoin, fmtcommon.ClauseUsing,
		fmtcommon.ClauseMerge, fmtcommon.ClauseUpdate, fmtcommon.ClauseInsert,
		fmtcommon.ClauseDelete, fmtcommon.ClauseCreateTable, fmtcommon.ClauseAlterTable:
		return true
	default:
		return false
	}
}

// stripQualifiers removes everything but the object name from a dotted chain
// in a table-referencing position. The chain head's placement moves to the
// surviving identifier. Returns true when tok heads a chain, stripped or not.
func (t *transformer) stripQualifiers(i int, tok *fmtcommon.Token) bool {
	if !tableRefClause(tok.Clause) || tok.InTableHint {
		return false
	}

	// Only chain heads start a strip; a mid-chain identifier follows a dot.
	prev := fmtcommon.PrevSignificant(t.tokens, i-1)
	if prev >= 0 && t.tokens[prev].Type == tokenizer.DOT {
		return false
	}

	// Collect the ident (dot ident)* chain.
	chain := []int{i}
	j := i

	for {
		dot := fmtcommon.NextSignificant(t.tokens, j+1)
		if dot < 0 || t.tokens[dot].Type != tokenizer.DOT {
			break
		}

		name := fmtcommon.NextSignificant(t.tokens, dot+1)
		if name < 0 {
			break
		}

		switch t.tokens[name].Type {
		case tokenizer.IDENTIFIER, tokenizer.QUOTED_IDENTIFIER:
		default:
			return false
		}

		chain = append(chain, dot, name)
		j = name
	}

	if len(chain) == 1 {
		return false
	}

	for _, idx := range chain[:len(chain)-1] {
		t.tokens[idx].Remove = true
	}

	last := &t.tokens[chain[len(chain)-1]]
	last.SpaceBefore = tok.SpaceBefore
	last.NewlineBefore = tok.NewlineBefore
	last.IndentLevel = tok.IndentLevel

	return true
}

// aliasAs inserts AS between an aliased expression and its alias in the
// select list and the FROM table list.
func (t *transformer) aliasAs(i int, tok *fmtcommon.Token) {
	if !t.cfg.UseAsKeyword {
		return
	}

	if tok.List != fmtcommon.ListSelect && tok.List != fmtcommon.ListFromTables {
		return
	}

	prev := fmtcommon.PrevSignificant(t.tokens, i-1)
	if prev < 0 {
		return
	}

	switch t.tokens[prev].Type {
	case tokenizer.IDENTIFIER, tokenizer.QUOTED_IDENTIFIER,
		tokenizer.CLOSED_PARENS, tokenizer.STRING, tokenizer.NUMBER:
	default:
		return
	}

	// Not an alias when tok continues a dotted chain or opens a call.
	next := fmtcommon.NextSignificant(t.tokens, i+1)
	if next >= 0 {
		switch t.tokens[next].Type {
		case tokenizer.DOT, tokenizer.OPENED_PARENS:
			return
		}
	}

	tok.InsertBefore = append(tok.InsertBefore, fmtcommon.NewKeyword("AS"))
}

// batchSeparator converts GO to a semicolon. GO with a repeat count has no
// semicolon equivalent and stays as written.
func (t *transformer) batchSeparator(i int, tok *fmtcommon.Token) {
	if t.cfg.BatchSeparator != tsqlfmt.BatchSemicolon {
		return
	}

	next := fmtcommon.NextSignificant(t.tokens, i+1)
	if next >= 0 && t.tokens[next].Type == tokenizer.NUMBER &&
		t.tokens[next].Position.Line == tok.Position.Line {
		return
	}

	tok.Remove = true
	tok.InsertBefore = append(tok.InsertBefore, fmtcommon.NewSemicolon())
}
