package generator

import (
	tok "github.com/yuzulang/yuzu/tokenizer"
)

// ConstantContext describes the active constant-expression parsing mode.
type ConstantContext int

const (
	// ConstantContextNone means the full expression grammar is legal.
	ConstantContextNone ConstantContext = iota
	// ConstantContextRequired means an explicit const marker is in force.
	ConstantContextRequired
	// ConstantContextInferred means a surrounding construct implies
	// constness without an explicit marker.
	ConstantContextInferred
)

// String returns the string representation of ConstantContext
func (c ConstantContext) String() string {
	switch c {
	case ConstantContextNone:
		return "none"
	case ConstantContextRequired:
		return "required"
	case ConstantContextInferred:
		return "inferred"
	default:
		return "unknown"
	}
}

// LocatedMessage is a diagnostic message tied to a source position.
type LocatedMessage struct {
	Message string
	Pos     tok.Position
}

// ThrowOptions carries the modifier flags for no-such-method synthesis.
// NameOverride and Pos are optional; when unset the generator substitutes
// its own write-name and position before the options reach the Forest.
type ThrowOptions struct {
	NameOverride Name          // empty means use the generator's write name
	Pos          *tok.Position // nil means use the generator's own position
	IsSuper      bool
	IsGetter     bool
	IsSetter     bool
	IsStatic     bool
	ExtraMessage *LocatedMessage
}

// Helper is the collaborator that owns diagnostics, the active Forest and
// the surrounding parse state. The generator layer only calls through this
// interface; it never inspects the implementation.
type Helper[E, A, I any] interface {
	// Forest returns the AST factory for the active backend.
	Forest() Forest[E, A, I]
	// URI identifies the source being compiled, for diagnostics.
	URI() string
	// ConstantContext reports the active constant-expression mode.
	ConstantContext() ConstantContext
	// ReportCompileTimeError records a located diagnostic. The surrounding
	// pass keeps building a tree; this never aborts compilation.
	ReportCompileTimeError(message string, pos tok.Position)
	// BuildMethodInvocation builds a method call node against receiver.
	BuildMethodInvocation(receiver E, name Name, args A, pos tok.Position, isNullAware bool) E
	// BuildInvalidInitializer wraps a compile-time error expression as an
	// initializer-list entry.
	BuildInvalidInitializer(errorExpression E, pos tok.Position) I
	// ThrowNoSuchMethodError builds a node that throws a no-such-method
	// error at run time. Name and position have already been resolved by
	// the calling generator.
	ThrowNoSuchMethodError(receiver E, name Name, args A, pos tok.Position, opts ThrowOptions) E
}
