package parser

import (
	"slices"

	pc "github.com/shibukawa/parsercombinator"
	tok "github.com/yuzulang/yuzu/tokenizer"
)

// Token-shape pre-pass. Statements are split before descent so that a parse
// error in one statement cannot derail the rest of the source.

func primitiveType(types ...tok.TokenType) pc.Parser[tok.Token] {
	return func(pctx *pc.ParseContext[tok.Token], tokens []pc.Token[tok.Token]) (int, []pc.Token[tok.Token], error) {
		if len(tokens) > 0 && slices.Contains(types, tokens[0].Val.Type) {
			return 1, tokens[:1], nil
		}

		return 0, nil, pc.ErrNotMatch
	}
}

var (
	parenOpen    = primitiveType(tok.OPENED_PARENS)
	parenClose   = primitiveType(tok.CLOSED_PARENS)
	bracketOpen  = primitiveType(tok.OPENED_BRACKET, tok.QUESTION_OPENED)
	bracketClose = primitiveType(tok.CLOSED_BRACKET)
	semicolon    = primitiveType(tok.SEMICOLON)

	// boundary matches every token that affects statement segmentation.
	boundary = pc.Or(parenOpen, parenClose, bracketOpen, bracketClose, semicolon)
)

func toParserTokens(tokens []tok.Token) []pc.Token[tok.Token] {
	results := make([]pc.Token[tok.Token], len(tokens))

	for i, token := range tokens {
		results[i] = pc.Token[tok.Token]{
			Type: "raw",
			Pos: &pc.Pos{
				Line: token.Position.Line,
				Col:  token.Position.Column,
			},
			Val: token,
		}
	}

	return results
}

// splitStatements splits a token stream into statements at top-level
// semicolons, keeping nested parens and brackets intact. The semicolons are
// dropped; empty statements are skipped.
func splitStatements(tokens []tok.Token) [][]tok.Token {
	pctx := pc.NewParseContext[tok.Token]()
	pcTokens := toParserTokens(tokens)

	var statements [][]tok.Token

	depth := 0
	start := 0
	current := 0

	for _, part := range pc.FindIter(pctx, boundary, pcTokens) {
		if part.Last { // no further boundary tokens
			break
		}

		current += len(part.Skipped) + part.Consume

		switch part.Match[0].Val.Type {
		case tok.OPENED_PARENS, tok.OPENED_BRACKET, tok.QUESTION_OPENED:
			depth++
		case tok.CLOSED_PARENS, tok.CLOSED_BRACKET:
			depth--
		case tok.SEMICOLON:
			if depth == 0 {
				if current-1 > start {
					statements = append(statements, tokens[start:current-1])
				}

				start = current
			}
		}
	}

	if start < len(tokens) {
		statements = append(statements, tokens[start:])
	}

	return statements
}
