// Package fmtcommon holds the annotated token type shared by the formatting
// passes. Every annotation field is declared up front and is written by
// exactly one pass; later passes only read what earlier passes set.
package fmtcommon

import (
	"strings"

	"github.com/mikevskater/tsqlfmt/tokenizer"
)

// Token is a lexer token plus the annotations accumulated by the pipeline.
// Field ownership, in pass order:
//
//	formatstep1 (clause tracker):    Clause, StartsClause, ParenDepth, List,
//	                                 InCTEDefinition, InCTEBody, IsCTEOpenParen,
//	                                 InMerge, InTableHint
//	formatstep2 (subquery tracker):  SubqueryDepth, BaseIndent,
//	                                 IsSubqueryOpen, IsSubqueryClose
//	formatstep3 (spacing resolver):  SpaceBefore
//	formatstep4 (structure):         NewlineBefore, IndentLevel
//	                                 (never on comment tokens)
//	formatstep5 (transformer):       Remove, InsertBefore, InsertAfter
//	formatstep6 (comment placer):    IsStandaloneComment, EmptyLineBefore,
//	                                 BreakAfter; NewlineBefore/IndentLevel on
//	                                 comment tokens only
type Token struct {
	tokenizer.Token

	// formatstep1
	Clause          Clause
	StartsClause    bool
	ParenDepth      int
	List            ListContext
	InCTEDefinition bool
	InCTEBody       bool
	IsCTEOpenParen  bool
	InMerge         bool
	InTableHint     bool

	// formatstep2
	SubqueryDepth   int
	BaseIndent      int
	IsSubqueryOpen  bool
	IsSubqueryClose bool

	// formatstep3
	SpaceBefore bool

	// formatstep4 (formatstep6 for comments)
	NewlineBefore bool
	IndentLevel   int

	// formatstep5
	Remove       bool
	InsertBefore []Synthetic
	InsertAfter  []Synthetic

	// formatstep6
	IsStandaloneComment bool
	EmptyLineBefore     bool
	BreakAfter          bool
}

// Synthetic is a token inserted by the transformer. It never lived in the
// source, so the transformer decides its placement itself and the renderer
// obeys; the spacing pass has already run by the time synthetics appear.
type Synthetic struct {
	Token         tokenizer.Token
	SpaceBefore   bool
	NewlineBefore bool
	IndentLevel   int
}

// NewKeyword builds a synthetic keyword token with default spacing.
func NewKeyword(value string) Synthetic {
	return Synthetic{
		Token:       tokenizer.Token{Type: tokenizer.KEYWORD, Value: value},
		SpaceBefore: true,
	}
}

// NewSemicolon builds a synthetic semicolon that attaches to the previous token.
func NewSemicolon() Synthetic {
	return Synthetic{
		Token: tokenizer.Token{Type: tokenizer.SEMICOLON, Value: ";"},
	}
}

// Wrap converts lexer output into annotated tokens with zero annotations.
func Wrap(tokens []tokenizer.Token) []Token {
	wrapped := make([]Token, len(tokens))
	for i, tok := range tokens {
		wrapped[i] = Token{Token: tok}
	}

	return wrapped
}

// IsSignificant reports whether the token takes part in structural decisions
// (everything except whitespace and comments). The pipeline tolerates
// whitespace tokens in its input even though the driver usually strips them.
func (t *Token) IsSignificant() bool {
	return t.Type != tokenizer.WHITESPACE && !t.IsComment()
}

// NextSignificant returns the index of the first significant token at or
// after from, or -1.
func NextSignificant(tokens []Token, from int) int {
	for i := from; i < len(tokens); i++ {
		if tokens[i].IsSignificant() {
			return i
		}
	}

	return -1
}

// PrevSignificant returns the index of the first significant token at or
// before from, or -1.
func PrevSignificant(tokens []Token, from int) int {
	for i := from; i >= 0; i-- {
		if i < len(tokens) && tokens[i].IsSignificant() {
			return i
		}
	}

	return -1
}

// OperatorFamily classifies operator text for the spacing configuration.
type OperatorFamily int

const (
	OpArithmetic OperatorFamily = iota
	OpEquals
	OpComparison
	OpConcatenation
	OpCast // :: is never spaced
)

// ClassifyOperator returns the spacing family of an operator token value.
func ClassifyOperator(value string) OperatorFamily {
	switch value {
	case "=":
		return OpEquals
	case "<", ">", "<=", ">=", "<>", "!=", "!<", "!>":
		return OpComparison
	case "||":
		return OpConcatenation
	case "::":
		return OpCast
	default:
		return OpArithmetic
	}
}

// IsJoinKeyword reports whether the value is part of a join introduction.
func IsJoinKeyword(value string) bool {
	switch strings.ToUpper(value) {
	case "JOIN", "INNER", "OUTER", "LEFT", "RIGHT", "FULL", "CROSS":
		return true
	default:
		return false
	}
}

// IsSelectModifier reports whether the value may appear between SELECT and
// the first select-list item (DISTINCT, TOP 10 PERCENT, ...). The pending
// first-item placement skips these.
func IsSelectModifier(value string) bool {
	switch strings.ToUpper(value) {
	case "DISTINCT", "ALL", "TOP", "PERCENT", "TIES", "WITH":
		return true
	default:
		return false
	}
}
