// Package formatstep7 serializes the annotated token stream. By this point
// every decision has been made; the renderer only obeys the annotations,
// with one safety of its own: a line comment always forces a break before
// whatever follows it, so a trailing token can never end up commented out.
package formatstep7

import (
	"strings"

	tsqlfmt "github.com/mikevskater/tsqlfmt"
	"github.com/mikevskater/tsqlfmt/formatter/fmtcommon"
	"github.com/mikevskater/tsqlfmt/tokenizer"
)

// Execute renders the token stream to formatted SQL text.
func Execute(tokens []fmtcommon.Token, cfg *tsqlfmt.Config) string {
	r := &renderer{cfg: cfg}

	for i := range tokens {
		tok := &tokens[i]
		if tok.Type == tokenizer.WHITESPACE {
			continue
		}

		r.token(tok)
	}

	if r.out.Len() == 0 {
		return ""
	}

	return r.out.String() + "\n"
}

type renderer struct {
	cfg *tsqlfmt.Config
	out strings.Builder

	pendingBreak bool
	lineIndent   int
}

func (r *renderer) token(tok *fmtcommon.Token) {
	if tok.Remove {
		// Replacements ride along as InsertBefore on the removed token.
		for _, syn := range tok.InsertBefore {
			r.synthetic(syn)
		}

		return
	}

	for _, syn := range tok.InsertBefore {
		r.synthetic(syn)
	}

	r.prefix(tok.NewlineBefore, tok.IndentLevel, tok.SpaceBefore, tok.EmptyLineBefore)
	r.out.WriteString(r.text(tok.Token))

	if tok.Type == tokenizer.LINE_COMMENT || tok.BreakAfter {
		r.pendingBreak = true
	}

	for _, syn := range tok.InsertAfter {
		r.synthetic(syn)
	}
}

func (r *renderer) synthetic(syn fmtcommon.Synthetic) {
	r.prefix(syn.NewlineBefore, syn.IndentLevel, syn.SpaceBefore, false)
	r.out.WriteString(r.text(syn.Token))
}

// prefix writes the separation before a token: nothing at the very start,
// otherwise a newline with indentation, a forced break after a line comment,
// or a single space.
func (r *renderer) prefix(newline bool, indent int, space bool, emptyLine bool) {
	if r.out.Len() == 0 {
		r.pendingBreak = false
		return
	}

	if newline {
		if emptyLine {
			r.out.WriteString("\n")
		}

		r.newline(indent)

		return
	}

	if r.pendingBreak {
		r.newline(r.lineIndent)
		return
	}

	if space {
		r.out.WriteString(" ")
	}
}

func (r *renderer) newline(indent int) {
	r.out.WriteString("\n")

	for range indent {
		r.out.WriteString(r.cfg.Indent())
	}

	r.lineIndent = indent
	r.pendingBreak = false
}

// text applies keyword casing. Batch separators follow the keyword case too.
func (r *renderer) text(tok tokenizer.Token) string {
	switch tok.Type {
	case tokenizer.KEYWORD, tokenizer.BATCH_SEPARATOR:
		switch r.cfg.KeywordCase {
		case tsqlfmt.CaseUpper:
			return strings.ToUpper(tok.Value)
		case tsqlfmt.CaseLower:
			return strings.ToLower(tok.Value)
		default:
			return tok.Value
		}
	default:
		return tok.Value
	}
}
