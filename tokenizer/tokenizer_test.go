package tokenizer

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestTokenIterator(t *testing.T) {
	source := "a.b = c[0] + 1;"
	tokenizer := NewTokenizer(source)

	expectedTypes := []TokenType{
		IDENTIFIER, DOT, IDENTIFIER, WHITESPACE, ASSIGN, WHITESPACE, IDENTIFIER,
		OPENED_BRACKET, NUMBER, CLOSED_BRACKET, WHITESPACE, PLUS, WHITESPACE,
		NUMBER, SEMICOLON, EOF,
	}

	var actualTypes []TokenType
	for token, err := range tokenizer.Tokens() {
		assert.NoError(t, err)

		actualTypes = append(actualTypes, token.Type)

		if token.Type == EOF {
			break
		}
	}

	assert.Equal(t, expectedTypes, actualTypes)
}

func TestTokenIteratorWithOptions(t *testing.T) {
	source := "a // trailing\n?? b"
	tokenizer := NewTokenizer(source, Options{
		SkipWhitespace: true,
		SkipComments:   true,
	})

	expectedTypes := []TokenType{IDENTIFIER, IF_NULL, IDENTIFIER, EOF}

	var actualTypes []TokenType
	for token, err := range tokenizer.Tokens() {
		assert.NoError(t, err)

		actualTypes = append(actualTypes, token.Type)

		if token.Type == EOF {
			break
		}
	}

	assert.Equal(t, expectedTypes, actualTypes)
}

func TestBasicTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenType
	}{
		{
			name:     "identifier",
			input:    "value",
			expected: []TokenType{IDENTIFIER, EOF},
		},
		{
			name:     "keywords",
			input:    "this super null true false let const",
			expected: []TokenType{THIS, SUPER, NULL, TRUE, FALSE, LET, CONST, EOF},
		},
		{
			name:     "member access",
			input:    "a.b?.c",
			expected: []TokenType{IDENTIFIER, DOT, IDENTIFIER, QUESTION_DOT, IDENTIFIER, EOF},
		},
		{
			name:     "index access",
			input:    "a[0]?[1]",
			expected: []TokenType{IDENTIFIER, OPENED_BRACKET, NUMBER, CLOSED_BRACKET, QUESTION_OPENED, NUMBER, CLOSED_BRACKET, EOF},
		},
		{
			name:     "assignment operators",
			input:    "= += -= *= /= ??=",
			expected: []TokenType{ASSIGN, PLUS_ASSIGN, MINUS_ASSIGN, STAR_ASSIGN, SLASH_ASSIGN, IF_NULL_ASSIGN, EOF},
		},
		{
			name:     "increments",
			input:    "++ --",
			expected: []TokenType{PLUS_PLUS, MINUS_MINUS, EOF},
		},
		{
			name:     "binary operators",
			input:    "+ - * / ?? == !=",
			expected: []TokenType{PLUS, MINUS, STAR, SLASH, IF_NULL, EQUAL, NOT_EQ, EOF},
		},
		{
			name:     "single quoted string",
			input:    "'abc'",
			expected: []TokenType{STRING, EOF},
		},
		{
			name:     "double quoted string",
			input:    `"abc"`,
			expected: []TokenType{STRING, EOF},
		},
		{
			name:     "escaped quote",
			input:    `'a\'b'`,
			expected: []TokenType{STRING, EOF},
		},
		{
			name:     "member access on number literal",
			input:    "1.abs",
			expected: []TokenType{NUMBER, DOT, IDENTIFIER, EOF},
		},
		{
			name:     "call with arguments",
			input:    "f(a, b)",
			expected: []TokenType{IDENTIFIER, OPENED_PARENS, IDENTIFIER, COMMA, IDENTIFIER, CLOSED_PARENS, EOF},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tokens, err := Tokenize(test.input)
			assert.NoError(t, err)

			actualTypes := make([]TokenType, 0, len(tokens))
			for _, token := range tokens {
				actualTypes = append(actualTypes, token.Type)
			}

			assert.Equal(t, test.expected, actualTypes)
		})
	}
}

func TestComments(t *testing.T) {
	tokenizer := NewTokenizer("a /* block */ b // line")

	expectedTypes := []TokenType{
		IDENTIFIER, WHITESPACE, BLOCK_COMMENT, WHITESPACE, IDENTIFIER, WHITESPACE, LINE_COMMENT, EOF,
	}

	var actualTypes []TokenType
	for token, err := range tokenizer.Tokens() {
		assert.NoError(t, err)

		actualTypes = append(actualTypes, token.Type)

		if token.Type == EOF {
			break
		}
	}

	assert.Equal(t, expectedTypes, actualTypes)
}

func TestPositions(t *testing.T) {
	tokens, err := Tokenize("ab + cd")
	assert.NoError(t, err)
	assert.Equal(t, 4, len(tokens))

	assert.Equal(t, Position{Offset: 0, Line: 1, Column: 1, Length: 2}, tokens[0].Position)
	assert.Equal(t, Position{Offset: 3, Line: 1, Column: 4, Length: 1}, tokens[1].Position)
	assert.Equal(t, Position{Offset: 5, Line: 1, Column: 6, Length: 2}, tokens[2].Position)
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected error
	}{
		{
			name:     "unterminated string",
			input:    "'abc",
			expected: ErrUnterminatedString,
		},
		{
			name:     "unterminated block comment",
			input:    "/* abc",
			expected: ErrUnterminatedComment,
		},
		{
			name:     "two fraction dots",
			input:    "1.2.3",
			expected: ErrInvalidNumber,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Tokenize(test.input)
			assert.True(t, errors.Is(err, test.expected))
		})
	}
}
