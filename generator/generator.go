// Package generator implements the deferred expression-resolution core of
// the Yuzu front end. A Generator stands in for a syntactic fragment whose
// grammatical role is not yet known (read, write target, invocation receiver,
// initializer) and materializes the final AST node once the grammar driver
// knows which role applies. All node construction goes through the injected
// Forest so that the same resolution logic serves multiple tree backends.
package generator

import (
	"fmt"

	tok "github.com/yuzulang/yuzu/tokenizer"
)

// CompoundOptions bundles the shared parameters of the compound-assignment
// family of build methods.
type CompoundOptions struct {
	Pos         tok.Position
	VoidContext bool
	// OperatorMember is the statically resolved binary operator
	// implementation; nil falls back to dynamic dispatch.
	OperatorMember MemberRef
	// IsPreIncDec flags that the operand is the literal 1 synthesized by
	// increment/decrement desugaring. It only affects backend optimization
	// eligibility, never semantics.
	IsPreIncDec bool
}

// Generator is the deferred-resolution contract. A generator is created once
// the driver finishes parsing a fragment's left side and is consumed by
// exactly one build call; calling a second build method panics because the
// first call may already have moved the receiver subexpression.
type Generator[E, A, I any] interface {
	fmt.Stringer

	// Position is the fragment's source position, fixed at construction.
	Position() tok.Position
	// PlainNameForRead is the selector used when the fragment is read.
	PlainNameForRead() Name
	// PlainNameForWrite is the selector used when the fragment is written.
	// It equals PlainNameForRead except for the indexed-access family,
	// where the read and write selectors are always distinct.
	PlainNameForWrite() Name
	// IsInitializer reports whether the fragment was parsed inside a
	// constructor initializer list.
	IsInitializer() bool
	// IsThisPropertyAccess reports whether the fragment is a direct access
	// to a property of the enclosing instance.
	IsThisPropertyAccess() bool
	// DebugName is the stable variant name used in debug renderings.
	DebugName() string

	// BuildSimpleRead produces a plain read of the represented entity.
	// Receivers and indices are evaluated exactly once, in source order,
	// inside this call.
	BuildSimpleRead() E
	// BuildForEffect produces the form used for a bare expression
	// statement. The default delegates to BuildSimpleRead.
	BuildForEffect() E
	// BuildAssignment encodes target := value, evaluating to the assigned
	// value unless voidContext allows a cheaper encoding.
	BuildAssignment(value E, voidContext bool) E
	// BuildNullAwareAssignment encodes target ??= value. valueType is
	// threaded through for backend annotation only.
	BuildNullAwareAssignment(value E, valueType TypeRef, pos tok.Position, voidContext bool) E
	// BuildCompoundAssignment encodes target op= value, reading the target
	// once and writing the operator result back.
	BuildCompoundAssignment(op Name, value E, opts CompoundOptions) E
	// BuildPrefixIncrement encodes ++target, yielding the new value.
	BuildPrefixIncrement(op Name, opts CompoundOptions) E
	// BuildPostfixIncrement encodes target++, yielding the old value while
	// the target holds the new one.
	BuildPostfixIncrement(op Name, opts CompoundOptions) E
	// MakeInvalidRead reports a located error and produces a compile-time
	// error marker that throws at run time with no other side effects.
	MakeInvalidRead() E
	// MakeInvalidWrite is like MakeInvalidRead but still evaluates value
	// before signaling failure.
	MakeInvalidWrite(value E) E
	// BuildThrowNoSuchMethodError synthesizes a runtime dynamic-dispatch
	// failure against receiver. Unset option fields default to the
	// generator's write-name and position.
	BuildThrowNoSuchMethodError(receiver E, args A, opts ThrowOptions) E
	// DoInvocation resolves call syntax applied directly to the fragment.
	DoInvocation(pos tok.Position, args A) Resolution[E, A, I]
	// BuildFieldInitializer resolves the fragment as a constructor
	// initializer-list entry assigning value. Only direct, unambiguous
	// writable targets (this-qualified property access) produce a genuine
	// field initializer; everything else is an error entry.
	BuildFieldInitializer(value E, initialized map[Name]bool) I
	// BuildTypeWithBuiltArguments resolves the fragment as a type mention.
	// No generator in this package represents a type declaration, so the
	// shared implementation reports "not a type" and yields the invalid
	// type marker.
	BuildTypeWithBuiltArguments(args []TypeRef, nonInstanceAccessIsError bool) TypeRef
}

// base carries the bookkeeping shared by every variant: position, helper,
// read/write selectors and the single-use guard.
type base[E, A, I any] struct {
	helper        Helper[E, A, I]
	pos           tok.Position
	nameRead      Name
	nameWrite     Name // empty means same as nameRead
	isInitializer bool
	consumed      string
}

func newBase[E, A, I any](helper Helper[E, A, I], pos tok.Position, nameRead, nameWrite Name) base[E, A, I] {
	return base[E, A, I]{
		helper:    helper,
		pos:       pos,
		nameRead:  nameRead,
		nameWrite: nameWrite,
	}
}

func (b *base[E, A, I]) Position() tok.Position { return b.pos }

func (b *base[E, A, I]) PlainNameForRead() Name { return b.nameRead }

func (b *base[E, A, I]) PlainNameForWrite() Name {
	if b.nameWrite != "" {
		return b.nameWrite
	}

	return b.nameRead
}

func (b *base[E, A, I]) IsInitializer() bool { return b.isInitializer }

func (b *base[E, A, I]) IsThisPropertyAccess() bool { return false }

// consume enforces the single-use lifecycle. Reuse after a build call is a
// contract violation in the driver, so it fails fast.
func (b *base[E, A, I]) consume(op string) {
	if b.consumed != "" {
		panic(fmt.Sprintf("%v: %s called after %s at offset %d", ErrGeneratorReused, op, b.consumed, b.pos.Offset))
	}

	b.consumed = op
}

func (b *base[E, A, I]) forest() Forest[E, A, I] { return b.helper.Forest() }

func (b *base[E, A, I]) MakeInvalidRead() E {
	b.consume("MakeInvalidRead")

	message := fmt.Sprintf("'%s' cannot be read here", b.PlainNameForRead())
	b.helper.ReportCompileTimeError(message, b.pos)

	return b.forest().InvalidExpression(message, b.pos)
}

func (b *base[E, A, I]) MakeInvalidWrite(value E) E {
	b.consume("MakeInvalidWrite")

	f := b.forest()
	message := fmt.Sprintf("'%s' cannot be assigned here", b.PlainNameForWrite())
	b.helper.ReportCompileTimeError(message, b.pos)

	// The language contract requires the value's side effects to run even
	// though the write itself is invalid.
	t := f.DefineTemp(value, b.pos)

	return f.Let(t, f.InvalidExpression(message, b.pos), b.pos)
}

func (b *base[E, A, I]) BuildThrowNoSuchMethodError(receiver E, args A, opts ThrowOptions) E {
	name := opts.NameOverride
	if name == "" {
		name = b.PlainNameForWrite()
	}

	pos := b.pos
	if opts.Pos != nil {
		pos = *opts.Pos
	}

	return b.helper.ThrowNoSuchMethodError(receiver, name, args, pos, opts)
}

func (b *base[E, A, I]) BuildTypeWithBuiltArguments(args []TypeRef, nonInstanceAccessIsError bool) TypeRef {
	b.consume("BuildTypeWithBuiltArguments")

	message := fmt.Sprintf("'%s' isn't a type", b.PlainNameForRead())
	b.helper.ReportCompileTimeError(message, b.pos)

	return b.forest().InvalidType(b.pos)
}

// invalidFieldInitializer is the shared default for BuildFieldInitializer: a
// bare generator is never a legal initializer-list entry.
func (b *base[E, A, I]) invalidFieldInitializer(op string) I {
	b.consume(op)

	message := fmt.Sprintf("'%s' isn't a field initializer", b.PlainNameForRead())
	b.helper.ReportCompileTimeError(message, b.pos)

	return b.helper.BuildInvalidInitializer(b.forest().InvalidExpression(message, b.pos), b.pos)
}

// describe renders the common debug format shared by all variants.
func describe(debugName string, pos tok.Position, fields string) string {
	return fmt.Sprintf("%s(offset: %d, %s)", debugName, pos.Offset, fields)
}
