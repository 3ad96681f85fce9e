package tokenizer

import (
	"fmt"
	"iter"
	"strings"
	"unicode"
)

// TokenIterator uses the Go 1.23+ iterator pattern
type TokenIterator iter.Seq2[Token, error]

// SqlTokenizer is a tokenizer that returns an iterator
type SqlTokenizer struct {
	input   string
	options TokenizerOptions
}

// TokenizerOptions are options for the tokenizer
type TokenizerOptions struct {
	SkipWhitespace bool
	SkipComments   bool
}

// NewSqlTokenizer creates a new SqlTokenizer
func NewSqlTokenizer(input string, options ...TokenizerOptions) *SqlTokenizer {
	opts := TokenizerOptions{
		SkipWhitespace: false,
		SkipComments:   false,
	}
	if len(options) > 0 {
		opts = options[0]
	}

	return &SqlTokenizer{
		input:   input,
		options: opts,
	}
}

// Tokens returns an iterator of tokens
func (t *SqlTokenizer) Tokens() TokenIterator {
	return func(yield func(Token, error) bool) {
		tokenizer := &tokenizer{
			input:    t.input,
			position: 0,
			line:     1,
			column:   1,
		}

		tokenizer.readChar()

		for {
			token, err := tokenizer.nextToken()
			if err != nil {
				if !yield(token, err) {
					return
				}

				continue
			}

			tokenizer.trackLine(token)

			if token.Type == EOF {
				yield(token, nil)
				return
			}

			// Filtering based on options
			if t.options.SkipWhitespace && token.Type == WHITESPACE {
				continue
			}

			if t.options.SkipComments && token.IsComment() {
				continue
			}

			if !yield(token, nil) {
				return
			}
		}
	}
}

// AllTokens gets all tokens as a slice. Lexing errors do not abort the scan:
// the partial token is kept and the last error is returned alongside the
// tokens, so callers can still format best-effort.
func (t *SqlTokenizer) AllTokens() ([]Token, error) {
	tokens := make([]Token, 0, 64)

	var lastError error

	for token, err := range t.Tokens() {
		if err != nil {
			lastError = err

			if token.Value == "" {
				continue
			}
		}

		if token.Type == EOF {
			break
		}

		tokens = append(tokens, token)
	}

	return tokens, lastError
}

// Internal tokenizer implementation
type tokenizer struct {
	input    string
	position int
	line     int
	column   int
	current  rune

	// lineSignificant is true once a non-whitespace token has been produced
	// on the current source line. GO is a batch separator only when it is
	// the first significant token on its line.
	lineSignificant bool
}

// trackLine updates line-leading state after a token is produced.
func (t *tokenizer) trackLine(token Token) {
	switch token.Type {
	case WHITESPACE:
		if strings.ContainsRune(token.Value, '\n') {
			t.lineSignificant = false
		}
	case LINE_COMMENT:
		// the trailing newline is lexed as whitespace, state unchanged
	case BLOCK_COMMENT:
		if strings.ContainsRune(token.Value, '\n') {
			t.lineSignificant = false
		}
	case EOF:
	default:
		t.lineSignificant = true
	}
}

// nextToken gets the next token
func (t *tokenizer) nextToken() (Token, error) {
	switch t.current {
	case 0:
		return t.newToken(EOF, ""), nil
	case ' ', '\t', '\r', '\n':
		return t.readWhitespace(), nil
	case '(':
		return t.readSingle(OPENED_PARENS), nil
	case ')':
		return t.readSingle(CLOSED_PARENS), nil
	case ',':
		return t.readSingle(COMMA), nil
	case ';':
		return t.readSingle(SEMICOLON), nil
	case '.':
		if unicode.IsDigit(t.peekChar()) {
			return t.readNumber()
		}

		return t.readSingle(DOT), nil
	case '\'':
		return t.readString("")
	case '"':
		return t.readQuotedIdentifier('"', '"')
	case '[':
		if isWordStart(t.peekChar()) || t.peekChar() == ' ' {
			return t.readQuotedIdentifier('[', ']')
		}

		return t.readSingle(OPENED_BRACKET), nil
	case ']':
		return t.readSingle(CLOSED_BRACKET), nil
	case '-':
		if t.peekChar() == '-' {
			return t.readLineComment(), nil
		}

		return t.readOperator(), nil
	case '/':
		if t.peekChar() == '*' {
			return t.readBlockComment()
		}

		return t.readOperator(), nil
	case '*':
		if t.peekChar() == '=' {
			return t.readOperator(), nil
		}

		return t.readSingle(STAR), nil
	case '=', '<', '>', '!', '+', '%', '|', ':', '&', '^', '~':
		return t.readOperator(), nil
	default:
		if t.current == 'N' || t.current == 'n' {
			if t.peekChar() == '\'' {
				prefix := string(t.current)
				t.readChar()

				return t.readString(prefix)
			}
		}

		if isWordStart(t.current) {
			return t.readWord(), nil
		}

		if unicode.IsDigit(t.current) {
			return t.readNumber()
		}

		// Unknown characters degrade to single-char operators
		return t.readSingle(OPERATOR), nil
	}
}

// readChar reads the next character
func (t *tokenizer) readChar() {
	if t.position >= len(t.input) {
		t.current = 0
		t.position++

		return
	}

	t.current = rune(t.input[t.position])
	t.position++

	if t.current == '\n' {
		t.line++
		t.column = 1
	} else {
		t.column++
	}
}

// peekChar looks ahead at the next character
func (t *tokenizer) peekChar() rune {
	if t.position >= len(t.input) {
		return 0
	}

	return rune(t.input[t.position])
}

func (t *tokenizer) startPosition() Position {
	return Position{
		Line:   t.line,
		Column: t.column - 1,
		Offset: t.position - 1,
	}
}

func (t *tokenizer) readSingle(tokenType TokenType) Token {
	pos := t.startPosition()
	value := string(t.current)
	t.readChar()

	return Token{Type: tokenType, Value: value, Position: pos}
}

// readWhitespace reads whitespace characters
func (t *tokenizer) readWhitespace() Token {
	var builder strings.Builder

	pos := t.startPosition()

	for t.current == ' ' || t.current == '\t' || t.current == '\r' || t.current == '\n' {
		builder.WriteRune(t.current)
		t.readChar()
	}

	return Token{Type: WHITESPACE, Value: builder.String(), Position: pos}
}

// readWord reads words (identifiers and keywords). T-SQL local variables (@x),
// temp tables (#x) and system names ($x) lex as identifiers.
func (t *tokenizer) readWord() Token {
	var builder strings.Builder

	pos := t.startPosition()

	for isWordPart(t.current) {
		builder.WriteRune(t.current)
		t.readChar()
	}

	word := builder.String()

	if equalFold(word, "GO") && !t.lineSignificant {
		return Token{Type: BATCH_SEPARATOR, Value: word, Position: pos}
	}

	// Datatypes lex as keywords too, so they follow keyword casing.
	tokenType := IDENTIFIER
	if IsKeyword(word) || IsDatatype(word) {
		tokenType = KEYWORD
	}

	return Token{Type: tokenType, Value: word, Position: pos}
}

// readString reads string literals with T-SQL '' escaping. prefix carries an
// already-consumed N for national character literals.
func (t *tokenizer) readString(prefix string) (Token, error) {
	var builder strings.Builder

	pos := t.startPosition()
	if prefix != "" {
		pos.Column--
		pos.Offset--
	}

	builder.WriteString(prefix)
	builder.WriteRune('\'')
	t.readChar()

	for t.current != 0 {
		if t.current == '\'' {
			if t.peekChar() == '\'' {
				builder.WriteString("''")
				t.readChar()
				t.readChar()

				continue
			}

			builder.WriteRune('\'')
			t.readChar()

			return Token{Type: STRING, Value: builder.String(), Position: pos}, nil
		}

		builder.WriteRune(t.current)
		t.readChar()
	}

	token := Token{Type: STRING, Value: builder.String(), Position: pos}

	return token, fmt.Errorf("%w at line %d, column %d", ErrUnterminatedString, pos.Line, pos.Column)
}

// readQuotedIdentifier reads "name" or [name] identifiers. Closing delimiters
// are escaped by doubling ("" or ]]).
func (t *tokenizer) readQuotedIdentifier(opening, closing rune) (Token, error) {
	var builder strings.Builder

	pos := t.startPosition()

	builder.WriteRune(opening)
	t.readChar()

	for t.current != 0 {
		if t.current == closing {
			if t.peekChar() == closing {
				builder.WriteRune(closing)
				builder.WriteRune(closing)
				t.readChar()
				t.readChar()

				continue
			}

			builder.WriteRune(closing)
			t.readChar()

			return Token{Type: QUOTED_IDENTIFIER, Value: builder.String(), Position: pos}, nil
		}

		builder.WriteRune(t.current)
		t.readChar()
	}

	token := Token{Type: QUOTED_IDENTIFIER, Value: builder.String(), Position: pos}

	return token, fmt.Errorf("%w at line %d, column %d", ErrUnterminatedIdentifier, pos.Line, pos.Column)
}

// readNumber reads numeric literals (integer, decimal, exponent, 0x hex)
func (t *tokenizer) readNumber() (Token, error) {
	var builder strings.Builder

	pos := t.startPosition()

	if t.current == '0' && (t.peekChar() == 'x' || t.peekChar() == 'X') {
		builder.WriteRune(t.current)
		t.readChar()
		builder.WriteRune(t.current)
		t.readChar()

		for isHexDigit(t.current) {
			builder.WriteRune(t.current)
			t.readChar()
		}

		return Token{Type: NUMBER, Value: builder.String(), Position: pos}, nil
	}

	for unicode.IsDigit(t.current) {
		builder.WriteRune(t.current)
		t.readChar()
	}

	if t.current == '.' && unicode.IsDigit(t.peekChar()) {
		builder.WriteRune(t.current)
		t.readChar()

		for unicode.IsDigit(t.current) {
			builder.WriteRune(t.current)
			t.readChar()
		}
	}

	if t.current == 'e' || t.current == 'E' {
		builder.WriteRune(t.current)
		t.readChar()

		if t.current == '+' || t.current == '-' {
			builder.WriteRune(t.current)
			t.readChar()
		}

		if !unicode.IsDigit(t.current) {
			token := Token{Type: NUMBER, Value: builder.String(), Position: pos}
			return token, fmt.Errorf("%w: invalid exponent at line %d, column %d", ErrInvalidNumber, pos.Line, pos.Column)
		}

		for unicode.IsDigit(t.current) {
			builder.WriteRune(t.current)
			t.readChar()
		}
	}

	return Token{Type: NUMBER, Value: builder.String(), Position: pos}, nil
}

// readOperator reads single and multi-character operators
func (t *tokenizer) readOperator() Token {
	pos := t.startPosition()
	first := t.current
	t.readChar()

	twoChar := ""

	switch first {
	case '<':
		if t.current == '=' || t.current == '>' {
			twoChar = "<" + string(t.current)
		}
	case '>':
		if t.current == '=' {
			twoChar = ">="
		}
	case '!':
		if t.current == '=' || t.current == '<' || t.current == '>' {
			twoChar = "!" + string(t.current)
		}
	case '|':
		if t.current == '|' {
			twoChar = "||"
		}
	case ':':
		if t.current == ':' {
			twoChar = "::"
		}
	case '+', '-', '*', '/', '%', '&', '^':
		if t.current == '=' {
			twoChar = string(first) + "="
		}
	}

	if twoChar != "" {
		t.readChar()

		return Token{Type: OPERATOR, Value: twoChar, Position: pos}
	}

	return Token{Type: OPERATOR, Value: string(first), Position: pos}
}

// readLineComment reads -- comments up to (not including) the newline
func (t *tokenizer) readLineComment() Token {
	var builder strings.Builder

	pos := t.startPosition()

	for t.current != 0 && t.current != '\n' {
		builder.WriteRune(t.current)
		t.readChar()
	}

	return Token{Type: LINE_COMMENT, Value: builder.String(), Position: pos}
}

// readBlockComment reads /* */ comments
func (t *tokenizer) readBlockComment() (Token, error) {
	var builder strings.Builder

	pos := t.startPosition()

	builder.WriteRune(t.current)
	t.readChar()
	builder.WriteRune(t.current)
	t.readChar()

	for t.current != 0 {
		if t.current == '*' && t.peekChar() == '/' {
			builder.WriteString("*/")
			t.readChar()
			t.readChar()

			return Token{Type: BLOCK_COMMENT, Value: builder.String(), Position: pos}, nil
		}

		builder.WriteRune(t.current)
		t.readChar()
	}

	token := Token{Type: BLOCK_COMMENT, Value: builder.String(), Position: pos}

	return token, fmt.Errorf("%w at line %d, column %d", ErrUnterminatedComment, pos.Line, pos.Column)
}

// newToken creates a new token at the current position
func (t *tokenizer) newToken(tokenType TokenType, value string) Token {
	return Token{
		Type:  tokenType,
		Value: value,
		Position: Position{
			Line:   t.line,
			Column: t.column - len([]rune(value)),
			Offset: t.position - len(value),
		},
	}
}

func isWordStart(c rune) bool {
	return unicode.IsLetter(c) || c == '_' || c == '@' || c == '#' || c == '$'
}

func isWordPart(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' || c == '@' || c == '#' || c == '$'
}

func isHexDigit(c rune) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
