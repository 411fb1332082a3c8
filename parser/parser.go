// Package parser is the grammar driver of the Yuzu front end. It parses a
// single-pass expression grammar and routes every ambiguous fragment through
// the generator layer, so the final tree shape is decided by the deferred
// resolution rules rather than by the descent itself.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	gen "github.com/yuzulang/yuzu/generator"
	tok "github.com/yuzulang/yuzu/tokenizer"
)

// Options configures the scopes visible to a parse.
type Options struct {
	// URI names the source in diagnostics.
	URI string
	// Locals are the variable names in scope.
	Locals []gen.Name
	// PromotedTypes maps locals to their flow-promoted types, if any.
	PromotedTypes map[gen.Name]gen.TypeRef
	// Members resolves getters and setters of the enclosing instance.
	Members MemberResolver
	// SuperMembers resolves getters and setters of the superclass scope.
	SuperMembers MemberResolver
	// InstanceContext makes unresolved identifiers implicit this-accesses
	// instead of undefined-name errors.
	InstanceContext bool
}

// Parser drives the expression grammar against one forest backend.
type Parser[E, A, I any] struct {
	forest   gen.Forest[E, A, I]
	helper   *helper[E, A, I]
	reporter *Reporter
	opts     Options
	locals   map[gen.Name]bool

	tokens []tok.Token
	pos    int

	inInitializer bool
}

// New creates a parser over the given forest.
func New[E, A, I any](forest gen.Forest[E, A, I], opts Options) *Parser[E, A, I] {
	reporter := NewReporter(opts.URI)
	locals := make(map[gen.Name]bool, len(opts.Locals))

	for _, name := range opts.Locals {
		locals[name] = true
	}

	return &Parser[E, A, I]{
		forest:   forest,
		helper:   newHelper(forest, reporter),
		reporter: reporter,
		opts:     opts,
		locals:   locals,
	}
}

// Diagnostics returns everything reported so far, in source order per parse.
func (p *Parser[E, A, I]) Diagnostics() []Diagnostic {
	return p.reporter.Diagnostics
}

// HasErrors reports whether any diagnostic has been reported.
func (p *Parser[E, A, I]) HasErrors() bool {
	return p.reporter.HasErrors()
}

// ParseProgram parses a semicolon-separated statement list. Statements are
// segmented before descent, so an error in one statement cannot derail the
// others. Errors surface as diagnostics and error-marker nodes, never as a
// failed parse.
func (p *Parser[E, A, I]) ParseProgram(source string) []E {
	var out []E

	for _, stmt := range splitStatements(p.tokenize(source)) {
		out = append(out, p.parseStatement(stmt))
	}

	return out
}

// ParseExpression parses a single expression.
func (p *Parser[E, A, I]) ParseExpression(source string) E {
	p.reset(p.tokenize(source))

	expr := p.parseExpr(false)
	p.expectEnd()

	return expr
}

// ParseInitializerList parses a comma-separated constructor initializer list
// such as `this.x = 1, this.y = this.x`. Duplicate initialization of the
// same field is reported by the generator layer.
func (p *Parser[E, A, I]) ParseInitializerList(source string) []I {
	p.reset(p.tokenize(source))
	p.inInitializer = true

	defer func() { p.inInitializer = false }()

	initialized := map[gen.Name]bool{}

	var out []I

	for {
		out = append(out, p.parseInitializer(initialized))

		if p.peek().Type != tok.COMMA {
			break
		}

		p.next()
	}

	p.expectEnd()

	return out
}

func (p *Parser[E, A, I]) tokenize(source string) []tok.Token {
	tokens, err := tok.Tokenize(source)
	if err != nil {
		p.reporter.Report(err.Error(), tok.Position{Line: 1, Column: 1})
	}

	if n := len(tokens); n > 0 && tokens[n-1].Type == tok.EOF {
		tokens = tokens[:n-1]
	}

	return tokens
}

func (p *Parser[E, A, I]) reset(tokens []tok.Token) {
	p.tokens = tokens
	p.pos = 0
}

// operand is a fragment whose grammatical role is still open: either a
// pending generator or an already-final expression.
type operand[E, A, I any] struct {
	gen  gen.Generator[E, A, I]
	expr E
}

func (p *Parser[E, A, I]) value(o operand[E, A, I]) E {
	if o.gen != nil {
		return o.gen.BuildSimpleRead()
	}

	return o.expr
}

// Statements

func (p *Parser[E, A, I]) parseStatement(tokens []tok.Token) E {
	p.reset(tokens)

	var expr E

	switch p.peek().Type {
	case tok.LET:
		expr = p.parseLet()
	case tok.CONST:
		p.next()
		p.helper.constCtx = gen.ConstantContextRequired
		expr = p.parseExpr(false)
		p.helper.constCtx = gen.ConstantContextNone
	default:
		o := p.parseAssignable(true)
		if o.gen != nil {
			expr = o.gen.BuildForEffect()
		} else {
			expr = o.expr
		}
	}

	p.expectEnd()

	return expr
}

// parseLet declares a new local. A declaration without an initializer binds
// null.
func (p *Parser[E, A, I]) parseLet() E {
	letTok := p.next()
	nameTok := p.expect(tok.IDENTIFIER)

	if nameTok.Type != tok.IDENTIFIER {
		return p.forest.InvalidExpression("expected a variable name after 'let'", letTok.Position)
	}

	name := gen.Name(nameTok.Value)
	p.locals[name] = true

	value := p.forest.NullLiteral(nameTok.Position)
	if p.peek().Type == tok.ASSIGN {
		p.next()
		value = p.parseExpr(false)
	}

	return p.forest.VariableSet(name, value, nameTok.Position)
}

func (p *Parser[E, A, I]) parseInitializer(initialized map[gen.Name]bool) I {
	target := p.parsePostfix()
	assignTok := p.expect(tok.ASSIGN)
	value := p.parseExpr(false)

	if target.gen == nil {
		message := "this expression cannot initialize a field"
		p.reporter.Report(message, assignTok.Position)

		return p.forest.InvalidInitializer(p.forest.InvalidExpression(message, assignTok.Position), assignTok.Position)
	}

	name := target.gen.PlainNameForRead()
	isField := target.gen.IsThisPropertyAccess()
	init := target.gen.BuildFieldInitializer(value, initialized)

	if isField {
		initialized[name] = true
	}

	return init
}

// Expressions, lowest precedence first.

// parseExpr parses an expression including trailing assignment operators.
// Assignment is right-associative; the target must still be an unresolved
// generator, otherwise the write is invalid but the operand side effects are
// kept.
func (p *Parser[E, A, I]) parseExpr(voidContext bool) E {
	return p.value(p.parseAssignable(voidContext))
}

func (p *Parser[E, A, I]) parseAssignable(voidContext bool) operand[E, A, I] {
	o := p.parseIfNull()

	t := p.peek()
	if !t.IsAssignOp() {
		return o
	}

	p.next()

	value := p.parseExpr(false)

	if o.gen == nil {
		return operand[E, A, I]{expr: p.invalidWithEffects("the expression cannot be assigned", t.Position, o.expr, value)}
	}

	switch t.Type {
	case tok.ASSIGN:
		return operand[E, A, I]{expr: o.gen.BuildAssignment(value, voidContext)}
	case tok.IF_NULL_ASSIGN:
		return operand[E, A, I]{expr: o.gen.BuildNullAwareAssignment(value, nil, t.Position, voidContext)}
	default:
		op := compoundOperator(t.Type)

		return operand[E, A, I]{expr: o.gen.BuildCompoundAssignment(op, value, gen.CompoundOptions{
			Pos:            t.Position,
			VoidContext:    voidContext,
			OperatorMember: builtinOperator(op),
		})}
	}
}

// invalidWithEffects reports a located error and produces an error marker
// that still evaluates the given subexpressions in order, so their side
// effects survive the failed construct.
func (p *Parser[E, A, I]) invalidWithEffects(message string, pos tok.Position, parts ...E) E {
	p.reporter.Report(message, pos)

	f := p.forest
	expr := f.InvalidExpression(message, pos)

	for i := len(parts) - 1; i >= 0; i-- {
		expr = f.Let(f.DefineTemp(parts[i], pos), expr, pos)
	}

	return expr
}

func compoundOperator(t tok.TokenType) gen.Name {
	switch t {
	case tok.PLUS_ASSIGN:
		return "+"
	case tok.MINUS_ASSIGN:
		return "-"
	case tok.STAR_ASSIGN:
		return "*"
	default:
		return "/"
	}
}

func (p *Parser[E, A, I]) parseIfNull() operand[E, A, I] {
	o := p.parseEquality()

	for p.peek().Type == tok.IF_NULL {
		t := p.next()
		right := p.parseEquality()
		o = operand[E, A, I]{expr: p.forest.IfNull(p.value(o), p.value(right), nil, t.Position)}
	}

	return o
}

func (p *Parser[E, A, I]) parseEquality() operand[E, A, I] {
	o := p.parseAdditive()

	for p.peek().Type == tok.EQUAL || p.peek().Type == tok.NOT_EQ {
		t := p.next()
		op := gen.Name(t.Value)
		right := p.parseAdditive()
		o = operand[E, A, I]{expr: p.forest.BinaryOperation(p.value(o), op, p.value(right), builtinOperator(op), t.Position)}
	}

	return o
}

func (p *Parser[E, A, I]) parseAdditive() operand[E, A, I] {
	o := p.parseMultiplicative()

	for p.peek().Type == tok.PLUS || p.peek().Type == tok.MINUS {
		t := p.next()
		op := gen.Name(t.Value)
		right := p.parseMultiplicative()
		o = operand[E, A, I]{expr: p.forest.BinaryOperation(p.value(o), op, p.value(right), builtinOperator(op), t.Position)}
	}

	return o
}

func (p *Parser[E, A, I]) parseMultiplicative() operand[E, A, I] {
	o := p.parseUnary()

	for p.peek().Type == tok.STAR || p.peek().Type == tok.SLASH {
		t := p.next()
		op := gen.Name(t.Value)
		right := p.parseUnary()
		o = operand[E, A, I]{expr: p.forest.BinaryOperation(p.value(o), op, p.value(right), builtinOperator(op), t.Position)}
	}

	return o
}

func (p *Parser[E, A, I]) parseUnary() operand[E, A, I] {
	switch p.peek().Type {
	case tok.PLUS_PLUS, tok.MINUS_MINUS:
		t := p.next()
		op := incrementOperator(t.Type)
		target := p.parseUnary()

		if target.gen == nil {
			return operand[E, A, I]{expr: p.invalidWithEffects("the expression cannot be incremented", t.Position, target.expr)}
		}

		return operand[E, A, I]{expr: target.gen.BuildPrefixIncrement(op, gen.CompoundOptions{
			Pos:            t.Position,
			OperatorMember: builtinOperator(op),
		})}
	case tok.MINUS:
		t := p.next()
		target := p.parseUnary()

		// Unary minus desugars to 0 - operand.
		return operand[E, A, I]{expr: p.forest.BinaryOperation(p.forest.IntLiteral(0, t.Position), "-", p.value(target), builtinOperator("-"), t.Position)}
	default:
		return p.parsePostfix()
	}
}

func incrementOperator(t tok.TokenType) gen.Name {
	if t == tok.PLUS_PLUS {
		return "+"
	}

	return "-"
}

// parsePostfix parses a primary followed by any chain of selectors: member
// sends, index access, call arguments and postfix increment.
func (p *Parser[E, A, I]) parsePostfix() operand[E, A, I] {
	o := p.parsePrimary()

	for {
		t := p.peek()

		switch t.Type {
		case tok.DOT, tok.QUESTION_DOT:
			p.next()
			o = p.parseSend(o, t)
		case tok.OPENED_BRACKET:
			p.next()
			index := p.parseExpr(false)
			p.expect(tok.CLOSED_BRACKET)

			receiver := p.value(o)
			o = operand[E, A, I]{gen: gen.MakeIndexedAccess(p.helper, receiver, index,
				builtinOperator(gen.IndexGetName), builtinOperator(gen.IndexSetName), t.Position)}
		case tok.QUESTION_OPENED:
			p.next()

			index := p.parseExpr(false)
			p.expect(tok.CLOSED_BRACKET)
			o = operand[E, A, I]{expr: p.invalidWithEffects("null-aware index access is not supported", t.Position, p.value(o), index)}
		case tok.OPENED_PARENS:
			args := p.parseArguments()

			if o.gen != nil {
				o = p.fromResolution(o.gen.DoInvocation(t.Position, args))
			} else {
				// Calling an expression value goes through the call
				// selector.
				o = operand[E, A, I]{expr: p.helper.BuildMethodInvocation(o.expr, gen.CallName, args, t.Position, false)}
			}
		case tok.PLUS_PLUS, tok.MINUS_MINUS:
			p.next()

			op := incrementOperator(t.Type)

			if o.gen == nil {
				o = operand[E, A, I]{expr: p.invalidWithEffects("the expression cannot be incremented", t.Position, o.expr)}

				continue
			}

			o = operand[E, A, I]{expr: o.gen.BuildPostfixIncrement(op, gen.CompoundOptions{
				Pos:            t.Position,
				OperatorMember: builtinOperator(op),
			})}
		default:
			return o
		}
	}
}

// parseSend parses the selector after a consumed `.` or `?.` and attaches it
// to the receiver operand.
func (p *Parser[E, A, I]) parseSend(o operand[E, A, I], opTok tok.Token) operand[E, A, I] {
	isNullAware := opTok.Type == tok.QUESTION_DOT

	nameTok := p.expect(tok.IDENTIFIER)
	if nameTok.Type != tok.IDENTIFIER {
		return operand[E, A, I]{expr: p.forest.InvalidExpression("expected a selector after '"+opTok.Value+"'", opTok.Position)}
	}

	name := gen.Name(nameTok.Value)

	var args *A

	if p.peek().Type == tok.OPENED_PARENS {
		a := p.parseArguments()
		args = &a
	}

	send := gen.IncompleteSend[A]{Name: name, Pos: nameTok.Position, Args: args}

	if o.gen != nil {
		return p.fromResolution(gen.LinkSend(p.helper, o.gen, send, opTok.Position, isNullAware))
	}

	// Sends on a literal this-expression stay in the this-access family;
	// they never route through the dynamic property-access factory.
	if p.forest.IsThis(o.expr) {
		g := gen.NewThisPropertyAccess(p.helper, name,
			resolveGetter(p.opts.Members, name), resolveSetter(p.opts.Members, name),
			nameTok.Position, p.inInitializer)

		if args != nil {
			return p.fromResolution(g.DoInvocation(nameTok.Position, *args))
		}

		return operand[E, A, I]{gen: g}
	}

	if args != nil {
		return operand[E, A, I]{expr: p.helper.BuildMethodInvocation(o.expr, name, *args, nameTok.Position, isNullAware)}
	}

	return operand[E, A, I]{gen: gen.MakePropertyAccess(p.helper, o.expr, name, nil, nil, isNullAware, opTok.Position)}
}

func (p *Parser[E, A, I]) fromResolution(res gen.Resolution[E, A, I]) operand[E, A, I] {
	switch res.Kind {
	case gen.ResolvedExpression:
		return operand[E, A, I]{expr: res.Expr}
	case gen.ResolvedGenerator:
		return operand[E, A, I]{gen: res.Gen}
	default:
		panic(fmt.Sprintf("%v: initializer resolution in expression position", gen.ErrInternal))
	}
}

func (p *Parser[E, A, I]) parseArguments() A {
	open := p.expect(tok.OPENED_PARENS)

	var exprs []E

	if p.peek().Type != tok.CLOSED_PARENS && p.peek().Type != tok.EOF {
		for {
			exprs = append(exprs, p.parseExpr(false))

			if p.peek().Type != tok.COMMA {
				break
			}

			p.next()
		}
	}

	p.expect(tok.CLOSED_PARENS)

	return p.forest.Arguments(open.Position, exprs...)
}

func (p *Parser[E, A, I]) parsePrimary() operand[E, A, I] {
	t := p.next()

	switch t.Type {
	case tok.IDENTIFIER:
		return p.parseIdentifier(t)
	case tok.THIS:
		return operand[E, A, I]{expr: p.forest.This(t.Position)}
	case tok.SUPER:
		return p.parseSuper(t)
	case tok.NUMBER:
		value, err := strconv.ParseInt(t.Value, 10, 64)
		if err != nil {
			message := fmt.Sprintf("unsupported numeric literal '%s'", t.Value)
			p.reporter.Report(message, t.Position)

			return operand[E, A, I]{expr: p.forest.InvalidExpression(message, t.Position)}
		}

		return operand[E, A, I]{expr: p.forest.IntLiteral(value, t.Position)}
	case tok.STRING:
		return operand[E, A, I]{expr: p.forest.StringLiteral(unquote(t.Value), t.Position)}
	case tok.TRUE:
		return operand[E, A, I]{expr: p.forest.BoolLiteral(true, t.Position)}
	case tok.FALSE:
		return operand[E, A, I]{expr: p.forest.BoolLiteral(false, t.Position)}
	case tok.NULL:
		return operand[E, A, I]{expr: p.forest.NullLiteral(t.Position)}
	case tok.OPENED_PARENS:
		// Parentheses collapse any pending generator to its read value.
		value := p.parseExpr(false)
		p.expect(tok.CLOSED_PARENS)

		return operand[E, A, I]{expr: value}
	default:
		message := fmt.Sprintf("unexpected token '%s'", t.Value)
		p.reporter.Report(message, t.Position)

		return operand[E, A, I]{expr: p.forest.InvalidExpression(message, t.Position)}
	}
}

// parseIdentifier resolves a bare name: a local in scope, an implicit
// this-access in instance context, or an undefined-name error recovered as a
// variable use.
func (p *Parser[E, A, I]) parseIdentifier(t tok.Token) operand[E, A, I] {
	name := gen.Name(t.Value)

	if p.locals[name] {
		return operand[E, A, I]{gen: gen.NewVariableUse(p.helper, name, p.opts.PromotedTypes[name], t.Position)}
	}

	if p.opts.InstanceContext {
		return operand[E, A, I]{gen: gen.NewThisPropertyAccess(p.helper, name,
			resolveGetter(p.opts.Members, name), resolveSetter(p.opts.Members, name),
			t.Position, p.inInitializer)}
	}

	p.reporter.Report(fmt.Sprintf("undefined name '%s'", name), t.Position)

	return operand[E, A, I]{gen: gen.NewVariableUse(p.helper, name, nil, t.Position)}
}

// parseSuper parses a super access. Bare super is not an expression; it must
// be followed by a member or index selector.
func (p *Parser[E, A, I]) parseSuper(superTok tok.Token) operand[E, A, I] {
	switch p.peek().Type {
	case tok.DOT:
		p.next()

		nameTok := p.expect(tok.IDENTIFIER)
		if nameTok.Type != tok.IDENTIFIER {
			return operand[E, A, I]{expr: p.forest.InvalidExpression("expected a selector after 'super.'", superTok.Position)}
		}

		name := gen.Name(nameTok.Value)

		return operand[E, A, I]{gen: gen.NewSuperPropertyAccess(p.helper, name,
			resolveGetter(p.opts.SuperMembers, name), resolveSetter(p.opts.SuperMembers, name),
			nameTok.Position)}
	case tok.OPENED_BRACKET:
		bracket := p.next()
		index := p.parseExpr(false)
		p.expect(tok.CLOSED_BRACKET)

		return operand[E, A, I]{gen: gen.NewSuperIndexedAccess(p.helper, index,
			resolveGetter(p.opts.SuperMembers, gen.IndexGetName), resolveSetter(p.opts.SuperMembers, gen.IndexSetName),
			bracket.Position)}
	default:
		message := "'super' is only allowed with a member or index selector"
		p.reporter.Report(message, superTok.Position)

		return operand[E, A, I]{expr: p.forest.InvalidExpression(message, superTok.Position)}
	}
}

func resolveGetter(resolver MemberResolver, name gen.Name) gen.MemberRef {
	if resolver == nil {
		return nil
	}

	return resolver.ResolveGetter(name)
}

func resolveSetter(resolver MemberResolver, name gen.Name) gen.MemberRef {
	if resolver == nil {
		return nil
	}

	return resolver.ResolveSetter(name)
}

// Token cursor

func (p *Parser[E, A, I]) peek() tok.Token {
	if p.pos >= len(p.tokens) {
		return tok.Token{Type: tok.EOF, Position: p.endPos()}
	}

	return p.tokens[p.pos]
}

func (p *Parser[E, A, I]) next() tok.Token {
	t := p.peek()

	if p.pos < len(p.tokens) {
		p.pos++
	}

	return t
}

// expect consumes the next token when it matches; on mismatch it reports and
// leaves the cursor in place so the caller can recover.
func (p *Parser[E, A, I]) expect(tokenType tok.TokenType) tok.Token {
	t := p.peek()
	if t.Type != tokenType {
		p.reporter.Report(fmt.Sprintf("expected %s but found %s", tokenType, t.Type), t.Position)

		return tok.Token{Type: tok.EOF, Position: t.Position}
	}

	return p.next()
}

func (p *Parser[E, A, I]) expectEnd() {
	if t := p.peek(); t.Type != tok.EOF {
		p.reporter.Report(fmt.Sprintf("unexpected token '%s' after expression", t.Value), t.Position)
	}
}

func (p *Parser[E, A, I]) endPos() tok.Position {
	if len(p.tokens) == 0 {
		return tok.Position{Line: 1, Column: 1}
	}

	last := p.tokens[len(p.tokens)-1].Position

	return tok.Position{
		Offset: last.Offset + last.Length,
		Line:   last.Line,
		Column: last.Column + last.Length,
	}
}

// unquote strips the surrounding quotes of a string literal token and
// resolves its escape sequences.
func unquote(raw string) string {
	if len(raw) < 2 {
		return raw
	}

	body := raw[1 : len(raw)-1]

	if !strings.ContainsRune(body, '\\') {
		return body
	}

	var sb strings.Builder

	for i := 0; i < len(body); i++ {
		c := body[i]

		if c != '\\' || i+1 == len(body) {
			sb.WriteByte(c)

			continue
		}

		i++

		switch body[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		default:
			sb.WriteByte(body[i])
		}
	}

	return sb.String()
}
