// Package formatstep2 assigns subquery depth and base indentation. An open
// paren whose first significant content is SELECT pushes a nesting level;
// its matching close paren pops it. Tokens are stamped with the depth in
// effect before any push/pop the token itself causes, so an opening paren
// carries the outer depth and everything inside carries the inner one.
package formatstep2

import (
	tsqlfmt "github.com/mikevskater/tsqlfmt"
	"github.com/mikevskater/tsqlfmt/formatter/fmtcommon"
	"github.com/mikevskater/tsqlfmt/tokenizer"
)

// entry records one subquery open paren: its token index and the paren
// depth it opened at, so the matching close is found by depth rather than
// by counting.
type entry struct {
	index int
	depth int
}

// Execute annotates tokens with SubqueryDepth and BaseIndent.
func Execute(tokens []fmtcommon.Token, cfg *tsqlfmt.Config) {
	var stack []entry

	parenDepth := 0
	subqueryDepth := 0

	for i := range tokens {
		tok := &tokens[i]

		tok.SubqueryDepth = subqueryDepth
		tok.BaseIndent = subqueryDepth

		switch tok.Type {
		case tokenizer.OPENED_PARENS:
			if next := fmtcommon.NextSignificant(tokens, i+1); next >= 0 && tokens[next].IsKeyword("SELECT") {
				tok.IsSubqueryOpen = true
				stack = append(stack, entry{index: i, depth: parenDepth})
				subqueryDepth++
			}

			parenDepth++
		case tokenizer.CLOSED_PARENS:
			if parenDepth > 0 {
				parenDepth--
			}

			if len(stack) > 0 && stack[len(stack)-1].depth == parenDepth {
				stack = stack[:len(stack)-1]

				// The close paren belongs to the inner level; the
				// decrement only affects later tokens.
				tok.SubqueryDepth = subqueryDepth
				tok.BaseIndent = subqueryDepth
				tok.IsSubqueryClose = true

				if subqueryDepth > 0 {
					subqueryDepth--
				}
			}
		case tokenizer.SEMICOLON, tokenizer.BATCH_SEPARATOR:
			stack = stack[:0]
			parenDepth = 0
			subqueryDepth = 0
		}
	}
}
