package tokenizer

import "errors"

// Sentinel errors
var (
	ErrUnexpectedCharacter = errors.New("unexpected character")
	ErrUnterminatedString  = errors.New("unterminated string literal")
	ErrUnterminatedComment = errors.New("unterminated block comment")
	ErrInvalidNumber       = errors.New("invalid number format")
)

// TokenType represents the type of a token
type TokenType int

const (
	// Basic tokens
	EOF TokenType = iota
	WHITESPACE
	IDENTIFIER // plain identifiers
	NUMBER     // numeric literals
	STRING     // string literals ('text', "text")

	// Punctuation
	OPENED_PARENS   // (
	CLOSED_PARENS   // )
	OPENED_BRACKET  // [
	CLOSED_BRACKET  // ]
	COMMA           // ,
	SEMICOLON       // ;
	COLON           // :
	DOT             // .
	QUESTION_DOT    // ?.
	QUESTION_OPENED // ?[

	// Assignment operators
	ASSIGN         // =
	PLUS_ASSIGN    // +=
	MINUS_ASSIGN   // -=
	STAR_ASSIGN    // *=
	SLASH_ASSIGN   // /=
	IF_NULL_ASSIGN // ??=

	// Increment/decrement
	PLUS_PLUS   // ++
	MINUS_MINUS // --

	// Binary operators
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	IF_NULL // ??
	EQUAL   // ==
	BANG    // !
	NOT_EQ  // !=

	// Keywords
	THIS  // this keyword
	SUPER // super keyword
	NULL  // null literal
	TRUE  // true literal
	FALSE // false literal
	LET   // let keyword
	CONST // const keyword

	// Comments
	LINE_COMMENT  // // line comment
	BLOCK_COMMENT // /* block comment */

	// Others
	OTHER // anything the tokenizer does not understand
)

// String returns the string representation of TokenType
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case WHITESPACE:
		return "WHITESPACE"
	case IDENTIFIER:
		return "IDENTIFIER"
	case NUMBER:
		return "NUMBER"
	case STRING:
		return "STRING"
	case OPENED_PARENS:
		return "OPENED_PARENS"
	case CLOSED_PARENS:
		return "CLOSED_PARENS"
	case OPENED_BRACKET:
		return "OPENED_BRACKET"
	case CLOSED_BRACKET:
		return "CLOSED_BRACKET"
	case COMMA:
		return "COMMA"
	case SEMICOLON:
		return "SEMICOLON"
	case COLON:
		return "COLON"
	case DOT:
		return "DOT"
	case QUESTION_DOT:
		return "QUESTION_DOT"
	case QUESTION_OPENED:
		return "QUESTION_OPENED"
	case ASSIGN:
		return "ASSIGN"
	case PLUS_ASSIGN:
		return "PLUS_ASSIGN"
	case MINUS_ASSIGN:
		return "MINUS_ASSIGN"
	case STAR_ASSIGN:
		return "STAR_ASSIGN"
	case SLASH_ASSIGN:
		return "SLASH_ASSIGN"
	case IF_NULL_ASSIGN:
		return "IF_NULL_ASSIGN"
	case PLUS_PLUS:
		return "PLUS_PLUS"
	case MINUS_MINUS:
		return "MINUS_MINUS"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case STAR:
		return "STAR"
	case SLASH:
		return "SLASH"
	case IF_NULL:
		return "IF_NULL"
	case EQUAL:
		return "EQUAL"
	case BANG:
		return "BANG"
	case NOT_EQ:
		return "NOT_EQ"
	case THIS:
		return "THIS"
	case SUPER:
		return "SUPER"
	case NULL:
		return "NULL"
	case TRUE:
		return "TRUE"
	case FALSE:
		return "FALSE"
	case LET:
		return "LET"
	case CONST:
		return "CONST"
	case LINE_COMMENT:
		return "LINE_COMMENT"
	case BLOCK_COMMENT:
		return "BLOCK_COMMENT"
	case OTHER:
		return "OTHER"
	default:
		return "UNKNOWN"
	}
}

// Position represents the location of a token within the source text.
// Offset is the byte offset (0-based), Line/Column are 1-based for error
// reporting, Length is the byte length of the lexeme.
type Position struct {
	Offset int
	Line   int
	Column int
	Length int
}

// Token represents a token
type Token struct {
	Type     TokenType
	Value    string
	Position Position
}

// IsAssignOp reports whether the token is one of the assignment operators.
func (t Token) IsAssignOp() bool {
	switch t.Type {
	case ASSIGN, PLUS_ASSIGN, MINUS_ASSIGN, STAR_ASSIGN, SLASH_ASSIGN, IF_NULL_ASSIGN:
		return true
	default:
		return false
	}
}

// keywords maps identifier spellings to keyword token types.
var keywords = map[string]TokenType{
	"this":  THIS,
	"super": SUPER,
	"null":  NULL,
	"true":  TRUE,
	"false": FALSE,
	"let":   LET,
	"const": CONST,
}
