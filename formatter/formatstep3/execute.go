// Package formatstep3 decides, for every token, whether a single space
// precedes it. The decision is a pure function of the previous significant
// token, the current token and the configuration, applied left to right.
// Rule precedence follows the documented order; the first matching rule wins.
package formatstep3

import (
	tsqlfmt "github.com/mikevskater/tsqlfmt"
	"github.com/mikevskater/tsqlfmt/formatter/fmtcommon"
	"github.com/mikevskater/tsqlfmt/tokenizer"
)

// Execute annotates tokens with SpaceBefore.
func Execute(tokens []fmtcommon.Token, cfg *tsqlfmt.Config) {
	prev := -1

	for i := range tokens {
		tok := &tokens[i]
		if tok.Type == tokenizer.WHITESPACE {
			continue
		}

		if prev >= 0 {
			tok.SpaceBefore = spaceBetween(&tokens[prev], tok, cfg)
		}

		prev = i
	}
}

// spaceBetween resolves the spacing rule chain for one adjacent token pair.
func spaceBetween(prev, curr *fmtcommon.Token, cfg *tsqlfmt.Config) bool {
	// Paren/bracket interior spacing
	if prev.Type == tokenizer.OPENED_PARENS {
		return cfg.ParenthesisSpacing == tsqlfmt.SpacingSpaced
	}

	if prev.Type == tokenizer.OPENED_BRACKET {
		return cfg.BracketSpacing == tsqlfmt.SpacingSpaced
	}

	if curr.Type == tokenizer.CLOSED_PARENS {
		return cfg.ParenthesisSpacing == tsqlfmt.SpacingSpaced
	}

	if curr.Type == tokenizer.CLOSED_BRACKET {
		return cfg.BracketSpacing == tsqlfmt.SpacingSpaced
	}

	// After a close paren, keywords, identifiers and operators are spaced
	// (but a following comma, semicolon or dot still binds tight).
	if prev.Type == tokenizer.CLOSED_PARENS || prev.Type == tokenizer.CLOSED_BRACKET {
		switch curr.Type {
		case tokenizer.KEYWORD, tokenizer.IDENTIFIER, tokenizer.QUOTED_IDENTIFIER,
			tokenizer.OPERATOR, tokenizer.STAR, tokenizer.NUMBER, tokenizer.STRING,
			tokenizer.OPENED_PARENS:
			return true
		}
	}

	// Open paren: tight after a function name or datatype, spaced after a
	// keyword-introduced group (IN (...), EXISTS (...)).
	if curr.Type == tokenizer.OPENED_PARENS && prev.Type != tokenizer.COMMA {
		switch prev.Type {
		case tokenizer.IDENTIFIER, tokenizer.QUOTED_IDENTIFIER:
			return false
		case tokenizer.KEYWORD:
			return !tokenizer.IsDatatype(prev.Value)
		case tokenizer.DOT:
			return false
		default:
			return true
		}
	}

	// Dot qualification never gets spaces.
	if curr.Type == tokenizer.DOT || prev.Type == tokenizer.DOT {
		return false
	}

	// Comma spacing.
	if curr.Type == tokenizer.COMMA {
		return cfg.CommaSpacing == tsqlfmt.CommaBefore || cfg.CommaSpacing == tsqlfmt.CommaBoth
	}

	if prev.Type == tokenizer.COMMA {
		return cfg.CommaSpacing == tsqlfmt.CommaAfter || cfg.CommaSpacing == tsqlfmt.CommaBoth
	}

	// Semicolon spacing.
	if curr.Type == tokenizer.SEMICOLON {
		return cfg.SemicolonSpacing == tsqlfmt.SpacingSpaced
	}

	if prev.Type == tokenizer.SEMICOLON {
		return true
	}

	// Operator-specific spacing; the cast operator always binds tight.
	if curr.Type == tokenizer.OPERATOR {
		return operatorSpaced(curr.Value, cfg)
	}

	if prev.Type == tokenizer.OPERATOR {
		return operatorSpaced(prev.Value, cfg)
	}

	return true
}

func operatorSpaced(value string, cfg *tsqlfmt.Config) bool {
	switch fmtcommon.ClassifyOperator(value) {
	case fmtcommon.OpCast:
		return false
	case fmtcommon.OpEquals:
		return cfg.EqualsSpacing == tsqlfmt.SpacingSpaced
	case fmtcommon.OpComparison:
		return cfg.ComparisonSpacing == tsqlfmt.SpacingSpaced
	case fmtcommon.OpConcatenation:
		return cfg.ConcatenationSpacing == tsqlfmt.SpacingSpaced
	default:
		return cfg.OperatorSpacing == tsqlfmt.SpacingSpaced
	}
}
