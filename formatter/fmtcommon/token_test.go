package fmtcommon

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/mikevskater/tsqlfmt/tokenizer"
)

func TestClassifyOperator(t *testing.T) {
	tests := []struct {
		value    string
		expected OperatorFamily
	}{
		{"=", OpEquals},
		{"<", OpComparison},
		{">=", OpComparison},
		{"<>", OpComparison},
		{"!=", OpComparison},
		{"||", OpConcatenation},
		{"::", OpCast},
		{"+", OpArithmetic},
		{"%", OpArithmetic},
	}

	for _, test := range tests {
		t.Run(test.value, func(t *testing.T) {
			assert.Equal(t, test.expected, ClassifyOperator(test.value))
		})
	}
}

func TestSignificance(t *testing.T) {
	ws := Token{Token: tokenizer.Token{Type: tokenizer.WHITESPACE, Value: " "}}
	comment := Token{Token: tokenizer.Token{Type: tokenizer.LINE_COMMENT, Value: "-- x"}}
	ident := Token{Token: tokenizer.Token{Type: tokenizer.IDENTIFIER, Value: "a"}}

	assert.False(t, ws.IsSignificant())
	assert.False(t, comment.IsSignificant())
	assert.True(t, ident.IsSignificant())

	tokens := []Token{ws, comment, ident, comment}
	assert.Equal(t, 2, NextSignificant(tokens, 0))
	assert.Equal(t, -1, NextSignificant(tokens, 3))
	assert.Equal(t, 2, PrevSignificant(tokens, 3))
	assert.Equal(t, -1, PrevSignificant(tokens, 1))
}

func TestSyntheticConstructors(t *testing.T) {
	kw := NewKeyword("INTO")
	assert.Equal(t, tokenizer.KEYWORD, kw.Token.Type)
	assert.True(t, kw.SpaceBefore)

	semi := NewSemicolon()
	assert.Equal(t, tokenizer.SEMICOLON, semi.Token.Type)
	assert.False(t, semi.SpaceBefore)
}
