package generator

import (
	"fmt"

	tok "github.com/yuzulang/yuzu/tokenizer"
)

// IncompleteSend is a parsed trailing `.name` or `.name(args)` fragment the
// driver has not yet attached to a receiver. Args is nil when the send
// carries no call arguments.
type IncompleteSend[A any] struct {
	Name Name
	Pos  tok.Position
	Args *A
}

// ResolutionKind discriminates the outcome of DoInvocation and LinkSend.
type ResolutionKind int

const (
	// ResolvedExpression means the fragment became a final expression.
	ResolvedExpression ResolutionKind = iota
	// ResolvedGenerator means the fragment is itself subject to further
	// deferred resolution.
	ResolvedGenerator
	// ResolvedInitializer means the fragment became an initializer entry.
	ResolvedInitializer
)

// Resolution is the tagged result of resolving a fragment: a final
// expression, a new generator, or an initializer-list entry.
type Resolution[E, A, I any] struct {
	Kind ResolutionKind
	Expr E
	Gen  Generator[E, A, I]
	Init I
}

// ExprResolution wraps a final expression.
func ExprResolution[E, A, I any](expr E) Resolution[E, A, I] {
	return Resolution[E, A, I]{Kind: ResolvedExpression, Expr: expr}
}

// GenResolution wraps a generator pending further resolution.
func GenResolution[E, A, I any](g Generator[E, A, I]) Resolution[E, A, I] {
	return Resolution[E, A, I]{Kind: ResolvedGenerator, Gen: g}
}

// InitResolution wraps an initializer-list entry.
func InitResolution[E, A, I any](init I) Resolution[E, A, I] {
	return Resolution[E, A, I]{Kind: ResolvedInitializer, Init: init}
}

// LinkSend attaches a pending trailing send to a resolved generator. A send
// with call arguments becomes a direct method invocation against the
// generator's read; a bare member send becomes a new property-access
// generator whose receiver is that read. Member access on an explicit
// receiver dispatches dynamically in Yuzu, so the new generator carries
// unresolved getter/setter handles.
//
// In a constant context only the length selector may be accessed; anything
// else reports "not a constant expression" at the send's position and keeps
// building so later diagnostics still have a tree to attach to.
func LinkSend[E, A, I any](helper Helper[E, A, I], g Generator[E, A, I], send IncompleteSend[A], operatorPos tok.Position, isNullAware bool) Resolution[E, A, I] {
	if send.Args != nil {
		return ExprResolution[E, A, I](helper.BuildMethodInvocation(g.BuildSimpleRead(), send.Name, *send.Args, send.Pos, isNullAware))
	}

	if helper.ConstantContext() != ConstantContextNone && send.Name != LengthName {
		helper.ReportCompileTimeError(fmt.Sprintf("not a constant expression: member '%s' cannot be accessed in a constant context", send.Name), send.Pos)
	}

	return GenResolution[E, A, I](MakePropertyAccess(helper, g.BuildSimpleRead(), send.Name, nil, nil, isNullAware, operatorPos))
}
