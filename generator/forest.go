package generator

import (
	tok "github.com/yuzulang/yuzu/tokenizer"
)

// Temp is an opaque handle to a backend-defined temporary binding. Temps are
// how the generator layer guarantees that a receiver or index subexpression
// is evaluated exactly once even when its value is needed more than once.
type Temp any

// Forest is the abstract AST factory the generator layer builds every node
// through. It is parameterized over the backend's expression (E), argument
// list (A) and initializer entry (I) representations so that two different
// tree backends can share one resolution engine.
//
// Value conventions the backends must honor:
//   - every *Set node evaluates to the assigned value
//   - Let evaluates the temp's initializer once, then the body
//   - NullGuard evaluates the temp's initializer once; if it is null the
//     whole expression is null and the body is skipped, otherwise the body
//     is evaluated with the temp bound
//   - IfNull evaluates the left operand; if it is null the right operand is
//     evaluated and yielded, otherwise the left value is yielded
type Forest[E, A, I any] interface {
	// This materializes a literal this-expression.
	This(pos tok.Position) E
	// IsThis reports whether e is a literal this-expression node. This is
	// the seam the variant factories use for receiver-shape dispatch.
	IsThis(e E) bool
	// IntLiteral builds an integer literal (increment desugaring uses 1).
	IntLiteral(value int64, pos tok.Position) E
	StringLiteral(value string, pos tok.Position) E
	BoolLiteral(value bool, pos tok.Position) E
	NullLiteral(pos tok.Position) E

	VariableGet(name Name, promotedType TypeRef, pos tok.Position) E
	VariableSet(name Name, value E, pos tok.Position) E

	PropertyGet(receiver E, name Name, getter MemberRef, pos tok.Position) E
	PropertySet(receiver E, name Name, value E, setter MemberRef, pos tok.Position) E
	ThisPropertyGet(name Name, getter MemberRef, pos tok.Position) E
	ThisPropertySet(name Name, value E, setter MemberRef, pos tok.Position) E
	SuperPropertyGet(name Name, getter MemberRef, pos tok.Position) E
	SuperPropertySet(name Name, value E, setter MemberRef, pos tok.Position) E

	IndexGet(receiver, index E, getter MemberRef, pos tok.Position) E
	IndexSet(receiver, index, value E, setter MemberRef, pos tok.Position) E
	ThisIndexGet(index E, getter MemberRef, pos tok.Position) E
	ThisIndexSet(index, value E, setter MemberRef, pos tok.Position) E
	SuperIndexGet(index E, getter MemberRef, pos tok.Position) E
	SuperIndexSet(index, value E, setter MemberRef, pos tok.Position) E

	// BinaryOperation invokes the binary operator named op. member is the
	// statically resolved implementation when present; nil falls back to
	// dynamic dispatch.
	BinaryOperation(left E, op Name, right E, member MemberRef, pos tok.Position) E

	MethodInvocation(receiver E, name Name, args A, isNullAware bool, pos tok.Position) E
	SuperMethodInvocation(name Name, member MemberRef, args A, pos tok.Position) E

	// Arguments bundles positional call arguments.
	Arguments(pos tok.Position, positional ...E) A

	DefineTemp(init E, pos tok.Position) Temp
	ReadTemp(t Temp, pos tok.Position) E
	Let(t Temp, body E, pos tok.Position) E
	NullGuard(t Temp, body E, pos tok.Position) E
	IfNull(left, right E, staticType TypeRef, pos tok.Position) E

	// ThrowNoSuchMethod builds a node that reports a failed dynamic
	// dispatch at run time. It never fails at compile time.
	ThrowNoSuchMethod(receiver E, name Name, args A, opts ThrowOptions, pos tok.Position) E

	// InvalidExpression is the compile-time error marker node. At run time
	// it behaves as a throw with no other side effects.
	InvalidExpression(message string, pos tok.Position) E
	// InvalidType is the designated invalid-type marker.
	InvalidType(pos tok.Position) TypeRef

	FieldInitializer(name Name, value E, pos tok.Position) I
	InvalidInitializer(errorExpression E, pos tok.Position) I
}
