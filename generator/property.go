package generator

import (
	"fmt"

	tok "github.com/yuzulang/yuzu/tokenizer"
)

// MakePropertyAccess selects the property-access variant for a receiver
// shape. A literal this-expression receiver is an unsupported construction
// path: the driver must request the dedicated this-variant instead, so this
// fails fast rather than recovering.
func MakePropertyAccess[E, A, I any](helper Helper[E, A, I], receiver E, name Name, getter, setter MemberRef, isNullAware bool, pos tok.Position) Generator[E, A, I] {
	if helper.Forest().IsThis(receiver) {
		panic(fmt.Sprintf("%v: literal this receiver routed into MakePropertyAccess at offset %d; use NewThisPropertyAccess", ErrInternal, pos.Offset))
	}

	if isNullAware {
		return NewNullAwarePropertyAccess(helper, receiver, name, getter, setter, pos)
	}

	return NewPropertyAccess(helper, receiver, name, getter, setter, pos)
}

// propertyRead builds a property read against receiver, falling back to
// no-such-method synthesis when the getter is unresolved.
func propertyRead[E, A, I any](g Generator[E, A, I], helper Helper[E, A, I], receiver E, name Name, getter MemberRef, pos tok.Position) E {
	if getter == nil {
		return g.BuildThrowNoSuchMethodError(receiver, helper.Forest().Arguments(pos), ThrowOptions{
			NameOverride: name,
			Pos:          &pos,
			IsGetter:     true,
		})
	}

	return helper.Forest().PropertyGet(receiver, name, getter, pos)
}

// propertyWrite builds a property write against receiver, falling back to
// no-such-method synthesis when the setter is unresolved. The value is part
// of the synthesized call's arguments so its side effects still run.
func propertyWrite[E, A, I any](g Generator[E, A, I], helper Helper[E, A, I], receiver E, name Name, setter MemberRef, value E, pos tok.Position) E {
	if setter == nil {
		return g.BuildThrowNoSuchMethodError(receiver, helper.Forest().Arguments(pos, value), ThrowOptions{
			NameOverride: name,
			Pos:          &pos,
			IsSetter:     true,
		})
	}

	return helper.Forest().PropertySet(receiver, name, value, setter, pos)
}

// PropertyAccess represents `receiver.name` for an arbitrary receiver
// expression. Yuzu member access on an explicit receiver is dynamically
// dispatched, so getter/setter are usually unresolved.
type PropertyAccess[E, A, I any] struct {
	base[E, A, I]
	receiver E
	getter   MemberRef
	setter   MemberRef
}

var _ Generator[any, any, any] = (*PropertyAccess[any, any, any])(nil)

// NewPropertyAccess creates a generator for `receiver.name`.
func NewPropertyAccess[E, A, I any](helper Helper[E, A, I], receiver E, name Name, getter, setter MemberRef, pos tok.Position) *PropertyAccess[E, A, I] {
	return &PropertyAccess[E, A, I]{
		base:     newBase(helper, pos, name, ""),
		receiver: receiver,
		getter:   getter,
		setter:   setter,
	}
}

func (g *PropertyAccess[E, A, I]) DebugName() string { return "PropertyAccess" }

func (g *PropertyAccess[E, A, I]) String() string {
	return describe(g.DebugName(), g.pos, fmt.Sprintf("receiver: %v, name: %s, getter: %s, setter: %s",
		g.receiver, g.nameRead, memberName(g.getter), memberName(g.setter)))
}

func (g *PropertyAccess[E, A, I]) BuildSimpleRead() E {
	g.consume("BuildSimpleRead")

	return propertyRead(g, g.helper, g.receiver, g.nameRead, g.getter, g.pos)
}

func (g *PropertyAccess[E, A, I]) BuildForEffect() E {
	return g.BuildSimpleRead()
}

func (g *PropertyAccess[E, A, I]) BuildAssignment(value E, voidContext bool) E {
	g.consume("BuildAssignment")

	return propertyWrite(g, g.helper, g.receiver, g.PlainNameForWrite(), g.setter, value, g.pos)
}

func (g *PropertyAccess[E, A, I]) BuildNullAwareAssignment(value E, valueType TypeRef, pos tok.Position, voidContext bool) E {
	g.consume("BuildNullAwareAssignment")

	f := g.forest()
	receiver := f.DefineTemp(g.receiver, g.pos)
	read := propertyRead(g, g.helper, f.ReadTemp(receiver, g.pos), g.nameRead, g.getter, g.pos)
	write := propertyWrite(g, g.helper, f.ReadTemp(receiver, g.pos), g.PlainNameForWrite(), g.setter, value, pos)

	return f.Let(receiver, f.IfNull(read, write, valueType, pos), pos)
}

func (g *PropertyAccess[E, A, I]) BuildCompoundAssignment(op Name, value E, opts CompoundOptions) E {
	g.consume("BuildCompoundAssignment")

	return g.compound(op, value, opts, false)
}

func (g *PropertyAccess[E, A, I]) BuildPrefixIncrement(op Name, opts CompoundOptions) E {
	g.consume("BuildPrefixIncrement")

	opts.IsPreIncDec = true

	return g.compound(op, g.forest().IntLiteral(1, opts.Pos), opts, false)
}

func (g *PropertyAccess[E, A, I]) BuildPostfixIncrement(op Name, opts CompoundOptions) E {
	g.consume("BuildPostfixIncrement")

	opts.IsPreIncDec = true

	return g.compound(op, g.forest().IntLiteral(1, opts.Pos), opts, true)
}

// compound stashes the receiver in a temp so it is evaluated exactly once
// across the read and the write-back.
func (g *PropertyAccess[E, A, I]) compound(op Name, value E, opts CompoundOptions, postfix bool) E {
	f := g.forest()
	receiver := f.DefineTemp(g.receiver, g.pos)
	read := propertyRead(g, g.helper, f.ReadTemp(receiver, g.pos), g.nameRead, g.getter, g.pos)

	var body E

	if postfix {
		oldValue := f.DefineTemp(read, opts.Pos)
		result := f.BinaryOperation(f.ReadTemp(oldValue, opts.Pos), op, value, opts.OperatorMember, opts.Pos)
		write := f.DefineTemp(propertyWrite(g, g.helper, f.ReadTemp(receiver, g.pos), g.PlainNameForWrite(), g.setter, result, opts.Pos), opts.Pos)
		body = f.Let(oldValue, f.Let(write, f.ReadTemp(oldValue, opts.Pos), opts.Pos), opts.Pos)
	} else {
		result := f.BinaryOperation(read, op, value, opts.OperatorMember, opts.Pos)
		body = propertyWrite(g, g.helper, f.ReadTemp(receiver, g.pos), g.PlainNameForWrite(), g.setter, result, opts.Pos)
	}

	return f.Let(receiver, body, opts.Pos)
}

func (g *PropertyAccess[E, A, I]) DoInvocation(pos tok.Position, args A) Resolution[E, A, I] {
	g.consume("DoInvocation")

	return ExprResolution[E, A, I](g.helper.BuildMethodInvocation(g.receiver, g.nameRead, args, pos, false))
}

func (g *PropertyAccess[E, A, I]) BuildFieldInitializer(value E, initialized map[Name]bool) I {
	return g.invalidFieldInitializer("BuildFieldInitializer")
}

// NullAwarePropertyAccess represents `receiver?.name`: every operation
// short-circuits to null when the receiver evaluates to null.
type NullAwarePropertyAccess[E, A, I any] struct {
	base[E, A, I]
	receiver E
	getter   MemberRef
	setter   MemberRef
}

var _ Generator[any, any, any] = (*NullAwarePropertyAccess[any, any, any])(nil)

// NewNullAwarePropertyAccess creates a generator for `receiver?.name`.
func NewNullAwarePropertyAccess[E, A, I any](helper Helper[E, A, I], receiver E, name Name, getter, setter MemberRef, pos tok.Position) *NullAwarePropertyAccess[E, A, I] {
	return &NullAwarePropertyAccess[E, A, I]{
		base:     newBase(helper, pos, name, ""),
		receiver: receiver,
		getter:   getter,
		setter:   setter,
	}
}

func (g *NullAwarePropertyAccess[E, A, I]) DebugName() string { return "NullAwarePropertyAccess" }

func (g *NullAwarePropertyAccess[E, A, I]) String() string {
	return describe(g.DebugName(), g.pos, fmt.Sprintf("receiver: %v, name: %s, getter: %s, setter: %s",
		g.receiver, g.nameRead, memberName(g.getter), memberName(g.setter)))
}

// guarded evaluates the receiver once and short-circuits the body when it is
// null.
func (g *NullAwarePropertyAccess[E, A, I]) guarded(body func(receiverTemp Temp) E, pos tok.Position) E {
	f := g.forest()
	receiver := f.DefineTemp(g.receiver, g.pos)

	return f.NullGuard(receiver, body(receiver), pos)
}

func (g *NullAwarePropertyAccess[E, A, I]) BuildSimpleRead() E {
	g.consume("BuildSimpleRead")

	f := g.forest()

	return g.guarded(func(receiver Temp) E {
		return propertyRead(g, g.helper, f.ReadTemp(receiver, g.pos), g.nameRead, g.getter, g.pos)
	}, g.pos)
}

func (g *NullAwarePropertyAccess[E, A, I]) BuildForEffect() E {
	return g.BuildSimpleRead()
}

func (g *NullAwarePropertyAccess[E, A, I]) BuildAssignment(value E, voidContext bool) E {
	g.consume("BuildAssignment")

	f := g.forest()

	return g.guarded(func(receiver Temp) E {
		return propertyWrite(g, g.helper, f.ReadTemp(receiver, g.pos), g.PlainNameForWrite(), g.setter, value, g.pos)
	}, g.pos)
}

func (g *NullAwarePropertyAccess[E, A, I]) BuildNullAwareAssignment(value E, valueType TypeRef, pos tok.Position, voidContext bool) E {
	g.consume("BuildNullAwareAssignment")

	f := g.forest()

	return g.guarded(func(receiver Temp) E {
		read := propertyRead(g, g.helper, f.ReadTemp(receiver, g.pos), g.nameRead, g.getter, g.pos)
		write := propertyWrite(g, g.helper, f.ReadTemp(receiver, g.pos), g.PlainNameForWrite(), g.setter, value, pos)

		return f.IfNull(read, write, valueType, pos)
	}, pos)
}

func (g *NullAwarePropertyAccess[E, A, I]) BuildCompoundAssignment(op Name, value E, opts CompoundOptions) E {
	g.consume("BuildCompoundAssignment")

	return g.compound(op, value, opts, false)
}

func (g *NullAwarePropertyAccess[E, A, I]) BuildPrefixIncrement(op Name, opts CompoundOptions) E {
	g.consume("BuildPrefixIncrement")

	opts.IsPreIncDec = true

	return g.compound(op, g.forest().IntLiteral(1, opts.Pos), opts, false)
}

func (g *NullAwarePropertyAccess[E, A, I]) BuildPostfixIncrement(op Name, opts CompoundOptions) E {
	g.consume("BuildPostfixIncrement")

	opts.IsPreIncDec = true

	return g.compound(op, g.forest().IntLiteral(1, opts.Pos), opts, true)
}

func (g *NullAwarePropertyAccess[E, A, I]) compound(op Name, value E, opts CompoundOptions, postfix bool) E {
	f := g.forest()

	return g.guarded(func(receiver Temp) E {
		read := propertyRead(g, g.helper, f.ReadTemp(receiver, g.pos), g.nameRead, g.getter, g.pos)

		if postfix {
			oldValue := f.DefineTemp(read, opts.Pos)
			result := f.BinaryOperation(f.ReadTemp(oldValue, opts.Pos), op, value, opts.OperatorMember, opts.Pos)
			write := f.DefineTemp(propertyWrite(g, g.helper, f.ReadTemp(receiver, g.pos), g.PlainNameForWrite(), g.setter, result, opts.Pos), opts.Pos)

			return f.Let(oldValue, f.Let(write, f.ReadTemp(oldValue, opts.Pos), opts.Pos), opts.Pos)
		}

		result := f.BinaryOperation(read, op, value, opts.OperatorMember, opts.Pos)

		return propertyWrite(g, g.helper, f.ReadTemp(receiver, g.pos), g.PlainNameForWrite(), g.setter, result, opts.Pos)
	}, opts.Pos)
}

func (g *NullAwarePropertyAccess[E, A, I]) DoInvocation(pos tok.Position, args A) Resolution[E, A, I] {
	g.consume("DoInvocation")

	return ExprResolution[E, A, I](g.helper.BuildMethodInvocation(g.receiver, g.nameRead, args, pos, true))
}

func (g *NullAwarePropertyAccess[E, A, I]) BuildFieldInitializer(value E, initialized map[Name]bool) I {
	return g.invalidFieldInitializer("BuildFieldInitializer")
}

// ThisPropertyAccess represents `name` resolved against the implicit this
// receiver, avoiding a redundant this-expression node on every operation.
type ThisPropertyAccess[E, A, I any] struct {
	base[E, A, I]
	getter MemberRef
	setter MemberRef
}

var _ Generator[any, any, any] = (*ThisPropertyAccess[any, any, any])(nil)

// NewThisPropertyAccess creates a generator for an implicit-this property.
// isInitializer marks generators created inside constructor initializer
// lists, where `this.name = value` is a genuine field initializer.
func NewThisPropertyAccess[E, A, I any](helper Helper[E, A, I], name Name, getter, setter MemberRef, pos tok.Position, isInitializer bool) *ThisPropertyAccess[E, A, I] {
	g := &ThisPropertyAccess[E, A, I]{
		base:   newBase(helper, pos, name, ""),
		getter: getter,
		setter: setter,
	}
	g.isInitializer = isInitializer

	return g
}

func (g *ThisPropertyAccess[E, A, I]) DebugName() string { return "ThisPropertyAccess" }

func (g *ThisPropertyAccess[E, A, I]) IsThisPropertyAccess() bool { return true }

func (g *ThisPropertyAccess[E, A, I]) String() string {
	return describe(g.DebugName(), g.pos, fmt.Sprintf("name: %s, getter: %s, setter: %s",
		g.nameRead, memberName(g.getter), memberName(g.setter)))
}

func (g *ThisPropertyAccess[E, A, I]) read() E {
	if g.getter == nil {
		f := g.forest()

		return g.BuildThrowNoSuchMethodError(f.This(g.pos), f.Arguments(g.pos), ThrowOptions{
			NameOverride: g.nameRead,
			IsGetter:     true,
		})
	}

	return g.forest().ThisPropertyGet(g.nameRead, g.getter, g.pos)
}

func (g *ThisPropertyAccess[E, A, I]) write(value E, pos tok.Position) E {
	if g.setter == nil {
		f := g.forest()

		return g.BuildThrowNoSuchMethodError(f.This(pos), f.Arguments(pos, value), ThrowOptions{
			Pos:      &pos,
			IsSetter: true,
		})
	}

	return g.forest().ThisPropertySet(g.PlainNameForWrite(), value, g.setter, pos)
}

func (g *ThisPropertyAccess[E, A, I]) BuildSimpleRead() E {
	g.consume("BuildSimpleRead")

	return g.read()
}

func (g *ThisPropertyAccess[E, A, I]) BuildForEffect() E {
	return g.BuildSimpleRead()
}

func (g *ThisPropertyAccess[E, A, I]) BuildAssignment(value E, voidContext bool) E {
	g.consume("BuildAssignment")

	return g.write(value, g.pos)
}

func (g *ThisPropertyAccess[E, A, I]) BuildNullAwareAssignment(value E, valueType TypeRef, pos tok.Position, voidContext bool) E {
	g.consume("BuildNullAwareAssignment")

	return g.forest().IfNull(g.read(), g.write(value, pos), valueType, pos)
}

func (g *ThisPropertyAccess[E, A, I]) BuildCompoundAssignment(op Name, value E, opts CompoundOptions) E {
	g.consume("BuildCompoundAssignment")

	return g.compound(op, value, opts, false)
}

func (g *ThisPropertyAccess[E, A, I]) BuildPrefixIncrement(op Name, opts CompoundOptions) E {
	g.consume("BuildPrefixIncrement")

	opts.IsPreIncDec = true

	return g.compound(op, g.forest().IntLiteral(1, opts.Pos), opts, false)
}

func (g *ThisPropertyAccess[E, A, I]) BuildPostfixIncrement(op Name, opts CompoundOptions) E {
	g.consume("BuildPostfixIncrement")

	opts.IsPreIncDec = true

	return g.compound(op, g.forest().IntLiteral(1, opts.Pos), opts, true)
}

// compound needs no receiver temp: this is already a single slot.
func (g *ThisPropertyAccess[E, A, I]) compound(op Name, value E, opts CompoundOptions, postfix bool) E {
	f := g.forest()

	if postfix {
		oldValue := f.DefineTemp(g.read(), opts.Pos)
		result := f.BinaryOperation(f.ReadTemp(oldValue, opts.Pos), op, value, opts.OperatorMember, opts.Pos)
		write := f.DefineTemp(g.write(result, opts.Pos), opts.Pos)

		return f.Let(oldValue, f.Let(write, f.ReadTemp(oldValue, opts.Pos), opts.Pos), opts.Pos)
	}

	result := f.BinaryOperation(g.read(), op, value, opts.OperatorMember, opts.Pos)

	return g.write(result, opts.Pos)
}

func (g *ThisPropertyAccess[E, A, I]) DoInvocation(pos tok.Position, args A) Resolution[E, A, I] {
	g.consume("DoInvocation")

	return ExprResolution[E, A, I](g.helper.BuildMethodInvocation(g.forest().This(pos), g.nameRead, args, pos, false))
}

// BuildFieldInitializer overrides the shared error default: a this-qualified
// property is a direct, unambiguous writable target, so it produces a
// genuine field-initializer entry unless the field was already initialized.
func (g *ThisPropertyAccess[E, A, I]) BuildFieldInitializer(value E, initialized map[Name]bool) I {
	g.consume("BuildFieldInitializer")

	if initialized[g.nameRead] {
		message := fmt.Sprintf("'%s' is already initialized", g.nameRead)
		g.helper.ReportCompileTimeError(message, g.pos)

		return g.helper.BuildInvalidInitializer(g.forest().InvalidExpression(message, g.pos), g.pos)
	}

	return g.forest().FieldInitializer(g.nameRead, value, g.pos)
}

// SuperPropertyAccess represents `super.name`. The member is statically
// resolved against the superclass; there is no dynamic-dispatch fallback for
// the receiver itself, so an unresolved member synthesizes the super flavor
// of no-such-method.
type SuperPropertyAccess[E, A, I any] struct {
	base[E, A, I]
	getter MemberRef
	setter MemberRef
}

var _ Generator[any, any, any] = (*SuperPropertyAccess[any, any, any])(nil)

// NewSuperPropertyAccess creates a generator for `super.name`.
func NewSuperPropertyAccess[E, A, I any](helper Helper[E, A, I], name Name, getter, setter MemberRef, pos tok.Position) *SuperPropertyAccess[E, A, I] {
	return &SuperPropertyAccess[E, A, I]{
		base:   newBase(helper, pos, name, ""),
		getter: getter,
		setter: setter,
	}
}

func (g *SuperPropertyAccess[E, A, I]) DebugName() string { return "SuperPropertyAccess" }

func (g *SuperPropertyAccess[E, A, I]) String() string {
	return describe(g.DebugName(), g.pos, fmt.Sprintf("name: %s, getter: %s, setter: %s",
		g.nameRead, memberName(g.getter), memberName(g.setter)))
}

func (g *SuperPropertyAccess[E, A, I]) read() E {
	if g.getter == nil {
		f := g.forest()

		return g.BuildThrowNoSuchMethodError(f.This(g.pos), f.Arguments(g.pos), ThrowOptions{
			NameOverride: g.nameRead,
			IsSuper:      true,
			IsGetter:     true,
		})
	}

	return g.forest().SuperPropertyGet(g.nameRead, g.getter, g.pos)
}

func (g *SuperPropertyAccess[E, A, I]) write(value E, pos tok.Position) E {
	if g.setter == nil {
		f := g.forest()

		return g.BuildThrowNoSuchMethodError(f.This(pos), f.Arguments(pos, value), ThrowOptions{
			Pos:      &pos,
			IsSuper:  true,
			IsSetter: true,
		})
	}

	return g.forest().SuperPropertySet(g.PlainNameForWrite(), value, g.setter, pos)
}

func (g *SuperPropertyAccess[E, A, I]) BuildSimpleRead() E {
	g.consume("BuildSimpleRead")

	return g.read()
}

func (g *SuperPropertyAccess[E, A, I]) BuildForEffect() E {
	return g.BuildSimpleRead()
}

func (g *SuperPropertyAccess[E, A, I]) BuildAssignment(value E, voidContext bool) E {
	g.consume("BuildAssignment")

	return g.write(value, g.pos)
}

func (g *SuperPropertyAccess[E, A, I]) BuildNullAwareAssignment(value E, valueType TypeRef, pos tok.Position, voidContext bool) E {
	g.consume("BuildNullAwareAssignment")

	return g.forest().IfNull(g.read(), g.write(value, pos), valueType, pos)
}

func (g *SuperPropertyAccess[E, A, I]) BuildCompoundAssignment(op Name, value E, opts CompoundOptions) E {
	g.consume("BuildCompoundAssignment")

	return g.compound(op, value, opts, false)
}

func (g *SuperPropertyAccess[E, A, I]) BuildPrefixIncrement(op Name, opts CompoundOptions) E {
	g.consume("BuildPrefixIncrement")

	opts.IsPreIncDec = true

	return g.compound(op, g.forest().IntLiteral(1, opts.Pos), opts, false)
}

func (g *SuperPropertyAccess[E, A, I]) BuildPostfixIncrement(op Name, opts CompoundOptions) E {
	g.consume("BuildPostfixIncrement")

	opts.IsPreIncDec = true

	return g.compound(op, g.forest().IntLiteral(1, opts.Pos), opts, true)
}

func (g *SuperPropertyAccess[E, A, I]) compound(op Name, value E, opts CompoundOptions, postfix bool) E {
	f := g.forest()

	if postfix {
		oldValue := f.DefineTemp(g.read(), opts.Pos)
		result := f.BinaryOperation(f.ReadTemp(oldValue, opts.Pos), op, value, opts.OperatorMember, opts.Pos)
		write := f.DefineTemp(g.write(result, opts.Pos), opts.Pos)

		return f.Let(oldValue, f.Let(write, f.ReadTemp(oldValue, opts.Pos), opts.Pos), opts.Pos)
	}

	result := f.BinaryOperation(g.read(), op, value, opts.OperatorMember, opts.Pos)

	return g.write(result, opts.Pos)
}

func (g *SuperPropertyAccess[E, A, I]) DoInvocation(pos tok.Position, args A) Resolution[E, A, I] {
	g.consume("DoInvocation")

	f := g.forest()

	if g.getter == nil {
		return ExprResolution[E, A, I](g.BuildThrowNoSuchMethodError(f.This(pos), args, ThrowOptions{
			NameOverride: g.nameRead,
			Pos:          &pos,
			IsSuper:      true,
		}))
	}

	return ExprResolution[E, A, I](f.SuperMethodInvocation(g.nameRead, g.getter, args, pos))
}

func (g *SuperPropertyAccess[E, A, I]) BuildFieldInitializer(value E, initialized map[Name]bool) I {
	return g.invalidFieldInitializer("BuildFieldInitializer")
}
