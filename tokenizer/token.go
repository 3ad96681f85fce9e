package tokenizer

import "errors"

// Sentinel errors
var (
	ErrUnterminatedString     = errors.New("unterminated string literal")
	ErrUnterminatedComment    = errors.New("unterminated block comment")
	ErrUnterminatedIdentifier = errors.New("unterminated quoted identifier")
	ErrInvalidNumber          = errors.New("invalid number format")
)

// TokenType represents the lexical kind of a token
type TokenType int

const (
	// Basic tokens
	EOF TokenType = iota
	WHITESPACE
	KEYWORD           // reserved words (SELECT, FROM, ...)
	IDENTIFIER        // table/column names, @variables, #temp tables
	QUOTED_IDENTIFIER // [name] or "name"
	STRING            // 'text', N'text'
	NUMBER            // numeric literals, including 0x forms
	OPERATOR          // =, <>, +, ||, ::, ...
	STAR              // * (wildcard or multiplication, decided by context)

	// Punctuation
	COMMA
	DOT
	OPENED_PARENS
	CLOSED_PARENS
	OPENED_BRACKET // bare [ not forming a quoted identifier
	CLOSED_BRACKET
	SEMICOLON

	// Batch control
	BATCH_SEPARATOR // GO on its own line; an optional repeat count follows as NUMBER

	// Comments
	LINE_COMMENT  // -- comment
	BLOCK_COMMENT // /* comment */
)

var tokenTypeNames = map[TokenType]string{
	EOF:               "EOF",
	WHITESPACE:        "WHITESPACE",
	KEYWORD:           "KEYWORD",
	IDENTIFIER:        "IDENTIFIER",
	QUOTED_IDENTIFIER: "QUOTED_IDENTIFIER",
	STRING:            "STRING",
	NUMBER:            "NUMBER",
	OPERATOR:          "OPERATOR",
	STAR:              "STAR",
	COMMA:             "COMMA",
	DOT:               "DOT",
	OPENED_PARENS:     "OPENED_PARENS",
	CLOSED_PARENS:     "CLOSED_PARENS",
	OPENED_BRACKET:    "OPENED_BRACKET",
	CLOSED_BRACKET:    "CLOSED_BRACKET",
	SEMICOLON:         "SEMICOLON",
	BATCH_SEPARATOR:   "BATCH_SEPARATOR",
	LINE_COMMENT:      "LINE_COMMENT",
	BLOCK_COMMENT:     "BLOCK_COMMENT",
}

// String returns the string representation of TokenType
func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}

	return "UNKNOWN"
}

// Position represents a position in the source code (1-indexed line and column)
type Position struct {
	Line   int
	Column int
	Offset int
}

// Token represents a lexical token. Value preserves the original source text;
// case normalization is a rendering concern, not a lexing one.
type Token struct {
	Type     TokenType
	Value    string
	Position Position
}

// String returns the string representation of Token
func (t Token) String() string {
	return t.Type.String() + ": " + t.Value
}

// IsComment reports whether the token is a line or block comment.
func (t Token) IsComment() bool {
	return t.Type == LINE_COMMENT || t.Type == BLOCK_COMMENT
}

// IsKeyword reports whether the token is the given keyword, case-insensitively.
func (t Token) IsKeyword(word string) bool {
	return t.Type == KEYWORD && equalFold(t.Value, word)
}

// equalFold is an ASCII-only case-insensitive comparison. SQL keywords are
// plain ASCII so the unicode folding tables are unnecessary.
func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'a' <= ca && ca <= 'z' {
			ca -= 'a' - 'A'
		}

		if 'a' <= cb && cb <= 'z' {
			cb -= 'a' - 'A'
		}

		if ca != cb {
			return false
		}
	}

	return true
}
