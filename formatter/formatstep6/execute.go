// Package formatstep6 positions comments. A comment is standalone when it
// opened a line in the source (nothing significant before it on its line);
// everything else is an inline trailer. The position option keeps, hoists or
// attaches them, and block comments are optionally rewrapped. This is the
// only pass allowed to set NewlineBefore and IndentLevel on comment tokens.
package formatstep6

import (
	"strings"

	tsqlfmt "github.com/mikevskater/tsqlfmt"
	"github.com/mikevskater/tsqlfmt/formatter/fmtcommon"
	"github.com/mikevskater/tsqlfmt/tokenizer"
)

// Execute annotates comment tokens with their placement and, under the
// reformat style, rewrites block comment text.
func Execute(tokens []fmtcommon.Token, cfg *tsqlfmt.Config) {
	for i := range tokens {
		tok := &tokens[i]
		if !tok.IsComment() {
			continue
		}

		standalone := opensLine(tokens, i)

		switch cfg.CommentPosition {
		case tsqlfmt.CommentAbove:
			standalone = true
		case tsqlfmt.CommentInline:
			standalone = false
		}

		tok.IsStandaloneComment = standalone

		if standalone {
			placeStandalone(tokens, i, tok, cfg)
		} else {
			tok.SpaceBefore = true
			tok.NewlineBefore = false
		}

		if tok.Type == tokenizer.BLOCK_COMMENT && cfg.BlockCommentStyle == tsqlfmt.BlockCommentReformat {
			tok.Value = reformatBlock(tok.Value)
		}
	}
}

// opensLine reports whether nothing precedes the comment on its source line.
func opensLine(tokens []fmtcommon.Token, i int) bool {
	prev := prevNonWhitespace(tokens, i-1)
	if prev < 0 {
		return true
	}

	return tokens[prev].Position.Line < tokens[i].Position.Line
}

func prevNonWhitespace(tokens []fmtcommon.Token, from int) int {
	for i := from; i >= 0; i-- {
		if tokens[i].Type != tokenizer.WHITESPACE {
			return i
		}
	}

	return -1
}

// placeStandalone puts the comment on its own line, indented to match the
// code it annotates.
func placeStandalone(tokens []fmtcommon.Token, i int, tok *fmtcommon.Token, cfg *tsqlfmt.Config) {
	tok.NewlineBefore = true
	tok.SpaceBefore = false
	tok.IndentLevel = tok.BaseIndent

	next := fmtcommon.NextSignificant(tokens, i+1)
	if next >= 0 && tokens[next].NewlineBefore {
		tok.IndentLevel = tokens[next].IndentLevel
	}

	if cfg.BlankLineBeforeComment && next >= 0 && tokens[next].StartsClause {
		tok.EmptyLineBefore = true
	}

	// A hoisted block comment must not swallow the token that followed it
	// on the original line.
	if tok.Type == tokenizer.BLOCK_COMMENT {
		if next >= 0 && !tokens[next].NewlineBefore {
			tok.BreakAfter = true
		}
	}
}

// reformatBlock normalizes a block comment. Optimizer hints and decorative
// banner comments are left exactly as written.
func reformatBlock(value string) string {
	if strings.HasPrefix(value, "/*+") || banner(value) {
		return value
	}

	if !strings.Contains(value, "\n") {
		return reformatSingleLine(value)
	}

	return reformatMultiLine(value)
}

// banner reports a comment whose body is only decoration characters.
func banner(value string) bool {
	body := strings.TrimSuffix(strings.TrimPrefix(value, "/*"), "*/")
	if body == "" {
		return false
	}

	for _, r := range body {
		switch r {
		case '*', '-', '=', '#', ' ', '\t', '\n':
		default:
			return false
		}
	}

	return true
}

func reformatSingleLine(value string) string {
	body := strings.TrimSuffix(strings.TrimPrefix(value, "/*"), "*/")
	body = strings.Join(strings.Fields(body), " ")

	if body == "" {
		return "/* */"
	}

	return "/* " + body + " */"
}

// reformatMultiLine trims trailing whitespace per line and collapses runs of
// blank interior lines to one.
func reformatMultiLine(value string) string {
	lines := strings.Split(value, "\n")
	out := make([]string, 0, len(lines))
	blank := false

	for _, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if trimmed == "" {
			if blank {
				continue
			}

			blank = true
		} else {
			blank = false
		}

		out = append(out, trimmed)
	}

	return strings.Join(out, "\n")
}
