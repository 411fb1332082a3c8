package tokenizer

import (
	"fmt"
	"iter"
	"unicode"
)

// TokenIterator uses Go 1.24 iterator pattern
type TokenIterator iter.Seq2[Token, error]

// Tokenizer turns Yuzu source text into a token stream.
type Tokenizer struct {
	input   string
	options Options
}

// Options are options for the tokenizer
type Options struct {
	SkipWhitespace bool
	SkipComments   bool
}

// NewTokenizer creates a new Tokenizer
func NewTokenizer(input string, options ...Options) *Tokenizer {
	opts := Options{
		SkipWhitespace: false,
		SkipComments:   false,
	}
	if len(options) > 0 {
		opts = options[0]
	}

	return &Tokenizer{
		input:   input,
		options: opts,
	}
}

// Tokens returns an iterator of tokens
func (t *Tokenizer) Tokens() TokenIterator {
	return func(yield func(Token, error) bool) {
		tk := &tokenizer{
			input:  t.input,
			line:   1,
			column: 1,
		}

		tk.readChar()

		for {
			token, err := tk.nextToken()
			if err != nil {
				if !yield(Token{}, err) {
					return
				}
				continue
			}

			if token.Type == EOF {
				yield(token, nil)
				return
			}

			// Filtering based on options
			if t.options.SkipWhitespace && token.Type == WHITESPACE {
				continue
			}
			if t.options.SkipComments && (token.Type == LINE_COMMENT || token.Type == BLOCK_COMMENT) {
				continue
			}

			if !yield(token, nil) {
				return
			}
		}
	}
}

// AllTokens gets all tokens as a slice
func (t *Tokenizer) AllTokens() ([]Token, error) {
	tokens := make([]Token, 0, 64)
	var lastError error

	for token, err := range t.Tokens() {
		if err != nil {
			lastError = err
			continue
		}
		tokens = append(tokens, token)
		if token.Type == EOF {
			break
		}
	}

	return tokens, lastError
}

// Tokenize is a shorthand that drops whitespace and comments.
func Tokenize(input string) ([]Token, error) {
	return NewTokenizer(input, Options{SkipWhitespace: true, SkipComments: true}).AllTokens()
}

// Internal tokenizer implementation
type tokenizer struct {
	input    string
	position int
	line     int
	column   int
	current  rune
}

// nextToken gets the next token
func (t *tokenizer) nextToken() (Token, error) {
	switch t.current {
	case 0:
		return t.newToken(EOF, ""), nil
	case ' ', '\t', '\r', '\n':
		return t.readWhitespace(), nil
	case '(':
		return t.charToken(OPENED_PARENS), nil
	case ')':
		return t.charToken(CLOSED_PARENS), nil
	case '[':
		return t.charToken(OPENED_BRACKET), nil
	case ']':
		return t.charToken(CLOSED_BRACKET), nil
	case ',':
		return t.charToken(COMMA), nil
	case ';':
		return t.charToken(SEMICOLON), nil
	case ':':
		return t.charToken(COLON), nil
	case '.':
		return t.charToken(DOT), nil
	case '\'', '"':
		return t.readString(t.current)
	case '?':
		switch t.peekChar() {
		case '.':
			return t.twoCharToken(QUESTION_DOT), nil
		case '[':
			return t.twoCharToken(QUESTION_OPENED), nil
		case '?':
			token := t.newToken(IF_NULL, "??")
			t.readChar()
			t.readChar()
			if t.current == '=' {
				token.Type = IF_NULL_ASSIGN
				token.Value = "??="
				token.Position.Length = 3
				t.readChar()
			}
			return token, nil
		}
		return t.charToken(OTHER), nil
	case '+':
		switch t.peekChar() {
		case '+':
			return t.twoCharToken(PLUS_PLUS), nil
		case '=':
			return t.twoCharToken(PLUS_ASSIGN), nil
		}
		return t.charToken(PLUS), nil
	case '-':
		switch t.peekChar() {
		case '-':
			return t.twoCharToken(MINUS_MINUS), nil
		case '=':
			return t.twoCharToken(MINUS_ASSIGN), nil
		}
		return t.charToken(MINUS), nil
	case '*':
		if t.peekChar() == '=' {
			return t.twoCharToken(STAR_ASSIGN), nil
		}
		return t.charToken(STAR), nil
	case '/':
		switch t.peekChar() {
		case '/':
			return t.readLineComment(), nil
		case '*':
			return t.readBlockComment()
		case '=':
			return t.twoCharToken(SLASH_ASSIGN), nil
		}
		return t.charToken(SLASH), nil
	case '=':
		if t.peekChar() == '=' {
			return t.twoCharToken(EQUAL), nil
		}
		return t.charToken(ASSIGN), nil
	case '!':
		if t.peekChar() == '=' {
			return t.twoCharToken(NOT_EQ), nil
		}
		return t.charToken(BANG), nil
	}

	if unicode.IsDigit(t.current) {
		return t.readNumber()
	}

	if isIdentStart(t.current) {
		return t.readIdentifier(), nil
	}

	token := t.charToken(OTHER)

	return token, fmt.Errorf("%w: '%c' at line %d, column %d", ErrUnexpectedCharacter, token.Value[0], token.Position.Line, token.Position.Column)
}

func (t *tokenizer) newToken(tokenType TokenType, value string) Token {
	return Token{
		Type:  tokenType,
		Value: value,
		Position: Position{
			Offset: t.position - 1,
			Line:   t.line,
			Column: t.column - 1,
			Length: len(value),
		},
	}
}

// charToken consumes the current rune as a single-character token.
func (t *tokenizer) charToken(tokenType TokenType) Token {
	token := t.newToken(tokenType, string(t.current))
	t.readChar()

	return token
}

// twoCharToken consumes the current rune and the peeked rune as one token.
func (t *tokenizer) twoCharToken(tokenType TokenType) Token {
	token := t.newToken(tokenType, string(t.current)+string(t.peekChar()))
	t.readChar()
	t.readChar()

	return token
}

func (t *tokenizer) readChar() {
	if t.current == '\n' {
		t.line++
		t.column = 1
	}

	if t.position >= len(t.input) {
		t.current = 0
		t.position++
		return
	}

	t.current = rune(t.input[t.position])
	t.position++
	t.column++
}

func (t *tokenizer) peekChar() rune {
	if t.position >= len(t.input) {
		return 0
	}

	return rune(t.input[t.position])
}

func (t *tokenizer) readWhitespace() Token {
	start := t.position - 1
	startToken := t.newToken(WHITESPACE, "")

	for t.current == ' ' || t.current == '\t' || t.current == '\r' || t.current == '\n' {
		t.readChar()
	}

	startToken.Value = t.input[start : t.position-1]
	startToken.Position.Length = len(startToken.Value)

	return startToken
}

func (t *tokenizer) readIdentifier() Token {
	start := t.position - 1
	startToken := t.newToken(IDENTIFIER, "")

	for isIdentPart(t.current) {
		t.readChar()
	}

	startToken.Value = t.input[start : t.position-1]
	startToken.Position.Length = len(startToken.Value)

	if kw, ok := keywords[startToken.Value]; ok {
		startToken.Type = kw
	}

	return startToken
}

func (t *tokenizer) readNumber() (Token, error) {
	start := t.position - 1
	startToken := t.newToken(NUMBER, "")
	sawDot := false

	for unicode.IsDigit(t.current) || t.current == '.' {
		if t.current == '.' {
			if !unicode.IsDigit(t.peekChar()) {
				break // member access on a number literal, not a fraction
			}
			if sawDot {
				return startToken, fmt.Errorf("%w: at line %d, column %d", ErrInvalidNumber, startToken.Position.Line, startToken.Position.Column)
			}
			sawDot = true
		}
		t.readChar()
	}

	startToken.Value = t.input[start : t.position-1]
	startToken.Position.Length = len(startToken.Value)

	return startToken, nil
}

func (t *tokenizer) readString(quote rune) (Token, error) {
	start := t.position - 1
	startToken := t.newToken(STRING, "")
	t.readChar()

	for t.current != quote {
		if t.current == 0 || t.current == '\n' {
			return startToken, fmt.Errorf("%w: at line %d, column %d", ErrUnterminatedString, startToken.Position.Line, startToken.Position.Column)
		}
		if t.current == '\\' {
			t.readChar()
		}
		t.readChar()
	}

	t.readChar()
	startToken.Value = t.input[start : t.position-1]
	startToken.Position.Length = len(startToken.Value)

	return startToken, nil
}

func (t *tokenizer) readLineComment() Token {
	start := t.position - 1
	startToken := t.newToken(LINE_COMMENT, "")

	for t.current != '\n' && t.current != 0 {
		t.readChar()
	}

	startToken.Value = t.input[start : t.position-1]
	startToken.Position.Length = len(startToken.Value)

	return startToken
}

func (t *tokenizer) readBlockComment() (Token, error) {
	start := t.position - 1
	startToken := t.newToken(BLOCK_COMMENT, "")
	t.readChar()
	t.readChar()

	for {
		if t.current == 0 {
			return startToken, fmt.Errorf("%w: at line %d, column %d", ErrUnterminatedComment, startToken.Position.Line, startToken.Position.Column)
		}
		if t.current == '*' && t.peekChar() == '/' {
			t.readChar()
			t.readChar()
			break
		}
		t.readChar()
	}

	startToken.Value = t.input[start : t.position-1]
	startToken.Position.Length = len(startToken.Value)

	return startToken, nil
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
