package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextTokenPunctuationAndOperators(t *testing.T) {
	input := `let mut x: number = 1 + 2; x += 1; x == 2 && x != 3 || !x;`
	l := New(input, "t.croc")

	want := []TokenType{
		LET, MUT, IDENT, COLON, IDENT, ASSIGN, NUMBER, PLUS, NUMBER, SEMI,
		IDENT, PLUSEQ, NUMBER, SEMI,
		IDENT, EQ, NUMBER, AND, IDENT, NEQ, NUMBER, OR, NOT, IDENT, SEMI,
		EOF,
	}
	for i, wt := range want {
		tok := l.NextToken()
		assert.Equalf(t, wt, tok.Type, "token %d: got %s %q", i, tok.Type, tok.Literal)
	}
}

func TestNextTokenKeywords(t *testing.T) {
	input := `declare if else match type is async await this keyof true false in`
	l := New(input, "t.croc")
	want := []TokenType{
		DECLARE, IF, ELSE, MATCH, TYPE, IS, ASYNC, AWAIT, THIS, KEYOF, TRUE, FALSE, IN, EOF,
	}
	for i, wt := range want {
		tok := l.NextToken()
		assert.Equalf(t, wt, tok.Type, "token %d: got %s %q", i, tok.Type, tok.Literal)
	}
}

func TestNextTokenStringEscapes(t *testing.T) {
	l := New(`"hello\nworld\t\"quoted\""`, "t.croc")
	tok := l.NextToken()
	require.Equal(t, STRING, tok.Type)
	assert.Equal(t, "hello\nworld\t\"quoted\"", tok.Literal)
}

func TestNextTokenNumbers(t *testing.T) {
	tests := []string{"123", "3.14", "1e10", "2.5e-3"}
	for _, src := range tests {
		l := New(src, "t.croc")
		tok := l.NextToken()
		assert.Equal(t, NUMBER, tok.Type)
		assert.Equal(t, src, tok.Literal)
	}
}

func TestNextTokenLineComment(t *testing.T) {
	l := New("1 // this is dropped\n+ 2", "t.croc")
	tok := l.NextToken()
	assert.Equal(t, NUMBER, tok.Type)
	tok = l.NextToken()
	assert.Equal(t, PLUS, tok.Type)
	assert.Equal(t, 2, tok.Line)
}

func TestNextTokenEllipsisVsDot(t *testing.T) {
	l := New("a.b...c", "t.croc")
	want := []TokenType{IDENT, DOT, IDENT, ELLIPSIS, IDENT, EOF}
	for _, wt := range want {
		tok := l.NextToken()
		assert.Equal(t, wt, tok.Type)
	}
}

func TestNextTokenArrowsAndComparisons(t *testing.T) {
	l := New("-> => <= >= < >", "t.croc")
	want := []TokenType{ARROW, FARROW, LTE, GTE, LT, GT, EOF}
	for _, wt := range want {
		tok := l.NextToken()
		assert.Equal(t, wt, tok.Type)
	}
}

func TestNextTokenIllegal(t *testing.T) {
	l := New("@", "t.croc")
	tok := l.NextToken()
	assert.Equal(t, ILLEGAL, tok.Type)
}
