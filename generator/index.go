package generator

import (
	"fmt"

	tok "github.com/yuzulang/yuzu/tokenizer"
)

// MakeIndexedAccess selects the indexed-access variant for a receiver shape.
// A literal this-expression receiver collapses into ThisIndexedAccess so the
// redundant this node is never materialized.
func MakeIndexedAccess[E, A, I any](helper Helper[E, A, I], receiver, index E, getter, setter MemberRef, pos tok.Position) Generator[E, A, I] {
	if helper.Forest().IsThis(receiver) {
		return NewThisIndexedAccess(helper, index, getter, setter, pos)
	}

	return NewIndexedAccess(helper, receiver, index, getter, setter, pos)
}

// indexRead builds an index read, falling back to no-such-method synthesis
// when the index-get operator is unresolved.
func indexRead[E, A, I any](g Generator[E, A, I], helper Helper[E, A, I], receiver, index E, getter MemberRef, pos tok.Position) E {
	if getter == nil {
		return g.BuildThrowNoSuchMethodError(receiver, helper.Forest().Arguments(pos, index), ThrowOptions{
			NameOverride: IndexGetName,
			Pos:          &pos,
			IsGetter:     true,
		})
	}

	return helper.Forest().IndexGet(receiver, index, getter, pos)
}

// indexWrite builds an index write, falling back to no-such-method synthesis
// when the index-set operator is unresolved. Index and value ride in the
// synthesized call's arguments so their side effects still run.
func indexWrite[E, A, I any](g Generator[E, A, I], helper Helper[E, A, I], receiver, index, value E, setter MemberRef, pos tok.Position) E {
	if setter == nil {
		return g.BuildThrowNoSuchMethodError(receiver, helper.Forest().Arguments(pos, index, value), ThrowOptions{
			Pos:      &pos,
			IsSetter: true,
		})
	}

	return helper.Forest().IndexSet(receiver, index, value, setter, pos)
}

// IndexedAccess represents `receiver[index]`. The read and write selectors
// are the fixed index-operator names regardless of resolution outcome.
type IndexedAccess[E, A, I any] struct {
	base[E, A, I]
	receiver E
	index    E
	getter   MemberRef
	setter   MemberRef
}

var _ Generator[any, any, any] = (*IndexedAccess[any, any, any])(nil)

// NewIndexedAccess creates a generator for `receiver[index]`.
func NewIndexedAccess[E, A, I any](helper Helper[E, A, I], receiver, index E, getter, setter MemberRef, pos tok.Position) *IndexedAccess[E, A, I] {
	return &IndexedAccess[E, A, I]{
		base:     newBase(helper, pos, IndexGetName, IndexSetName),
		receiver: receiver,
		index:    index,
		getter:   getter,
		setter:   setter,
	}
}

func (g *IndexedAccess[E, A, I]) DebugName() string { return "IndexedAccess" }

func (g *IndexedAccess[E, A, I]) String() string {
	return describe(g.DebugName(), g.pos, fmt.Sprintf("receiver: %v, index: %v, getter: %s, setter: %s",
		g.receiver, g.index, memberName(g.getter), memberName(g.setter)))
}

func (g *IndexedAccess[E, A, I]) BuildSimpleRead() E {
	g.consume("BuildSimpleRead")

	return indexRead(g, g.helper, g.receiver, g.index, g.getter, g.pos)
}

func (g *IndexedAccess[E, A, I]) BuildForEffect() E {
	return g.BuildSimpleRead()
}

func (g *IndexedAccess[E, A, I]) BuildAssignment(value E, voidContext bool) E {
	g.consume("BuildAssignment")

	return indexWrite(g, g.helper, g.receiver, g.index, value, g.setter, g.pos)
}

func (g *IndexedAccess[E, A, I]) BuildNullAwareAssignment(value E, valueType TypeRef, pos tok.Position, voidContext bool) E {
	g.consume("BuildNullAwareAssignment")

	f := g.forest()
	receiver := f.DefineTemp(g.receiver, g.pos)
	index := f.DefineTemp(g.index, g.pos)
	read := indexRead(g, g.helper, f.ReadTemp(receiver, g.pos), f.ReadTemp(index, g.pos), g.getter, g.pos)
	write := indexWrite(g, g.helper, f.ReadTemp(receiver, g.pos), f.ReadTemp(index, g.pos), value, g.setter, pos)

	return f.Let(receiver, f.Let(index, f.IfNull(read, write, valueType, pos), pos), pos)
}

func (g *IndexedAccess[E, A, I]) BuildCompoundAssignment(op Name, value E, opts CompoundOptions) E {
	g.consume("BuildCompoundAssignment")

	return g.compound(op, value, opts, false)
}

func (g *IndexedAccess[E, A, I]) BuildPrefixIncrement(op Name, opts CompoundOptions) E {
	g.consume("BuildPrefixIncrement")

	opts.IsPreIncDec = true

	return g.compound(op, g.forest().IntLiteral(1, opts.Pos), opts, false)
}

func (g *IndexedAccess[E, A, I]) BuildPostfixIncrement(op Name, opts CompoundOptions) E {
	g.consume("BuildPostfixIncrement")

	opts.IsPreIncDec = true

	return g.compound(op, g.forest().IntLiteral(1, opts.Pos), opts, true)
}

// compound stashes both the receiver and the index so each is evaluated
// exactly once, in source order, across the read and the write-back.
func (g *IndexedAccess[E, A, I]) compound(op Name, value E, opts CompoundOptions, postfix bool) E {
	f := g.forest()
	receiver := f.DefineTemp(g.receiver, g.pos)
	index := f.DefineTemp(g.index, g.pos)
	read := indexRead(g, g.helper, f.ReadTemp(receiver, g.pos), f.ReadTemp(index, g.pos), g.getter, g.pos)

	var body E

	if postfix {
		oldValue := f.DefineTemp(read, opts.Pos)
		result := f.BinaryOperation(f.ReadTemp(oldValue, opts.Pos), op, value, opts.OperatorMember, opts.Pos)
		write := f.DefineTemp(indexWrite(g, g.helper, f.ReadTemp(receiver, g.pos), f.ReadTemp(index, g.pos), result, g.setter, opts.Pos), opts.Pos)
		body = f.Let(oldValue, f.Let(write, f.ReadTemp(oldValue, opts.Pos), opts.Pos), opts.Pos)
	} else {
		result := f.BinaryOperation(read, op, value, opts.OperatorMember, opts.Pos)
		body = indexWrite(g, g.helper, f.ReadTemp(receiver, g.pos), f.ReadTemp(index, g.pos), result, g.setter, opts.Pos)
	}

	return f.Let(receiver, f.Let(index, body, opts.Pos), opts.Pos)
}

func (g *IndexedAccess[E, A, I]) DoInvocation(pos tok.Position, args A) Resolution[E, A, I] {
	g.consume("DoInvocation")

	// Calling an element means invoking the value the read produces.
	read := indexRead(g, g.helper, g.receiver, g.index, g.getter, g.pos)

	return ExprResolution[E, A, I](g.helper.BuildMethodInvocation(read, CallName, args, pos, false))
}

func (g *IndexedAccess[E, A, I]) BuildFieldInitializer(value E, initialized map[Name]bool) I {
	return g.invalidFieldInitializer("BuildFieldInitializer")
}

// ThisIndexedAccess represents `this[index]` without materializing the this
// receiver, mirroring the rationale of ThisPropertyAccess.
type ThisIndexedAccess[E, A, I any] struct {
	base[E, A, I]
	index  E
	getter MemberRef
	setter MemberRef
}

var _ Generator[any, any, any] = (*ThisIndexedAccess[any, any, any])(nil)

// NewThisIndexedAccess creates a generator for `this[index]`.
func NewThisIndexedAccess[E, A, I any](helper Helper[E, A, I], index E, getter, setter MemberRef, pos tok.Position) *ThisIndexedAccess[E, A, I] {
	return &ThisIndexedAccess[E, A, I]{
		base:   newBase(helper, pos, IndexGetName, IndexSetName),
		index:  index,
		getter: getter,
		setter: setter,
	}
}

func (g *ThisIndexedAccess[E, A, I]) DebugName() string { return "ThisIndexedAccess" }

func (g *ThisIndexedAccess[E, A, I]) String() string {
	return describe(g.DebugName(), g.pos, fmt.Sprintf("index: %v, getter: %s, setter: %s",
		g.index, memberName(g.getter), memberName(g.setter)))
}

func (g *ThisIndexedAccess[E, A, I]) read(index E) E {
	if g.getter == nil {
		f := g.forest()

		return g.BuildThrowNoSuchMethodError(f.This(g.pos), f.Arguments(g.pos, index), ThrowOptions{
			NameOverride: IndexGetName,
			IsGetter:     true,
		})
	}

	return g.forest().ThisIndexGet(index, g.getter, g.pos)
}

func (g *ThisIndexedAccess[E, A, I]) write(index, value E, pos tok.Position) E {
	if g.setter == nil {
		f := g.forest()

		return g.BuildThrowNoSuchMethodError(f.This(pos), f.Arguments(pos, index, value), ThrowOptions{
			Pos:      &pos,
			IsSetter: true,
		})
	}

	return g.forest().ThisIndexSet(index, value, g.setter, pos)
}

func (g *ThisIndexedAccess[E, A, I]) BuildSimpleRead() E {
	g.consume("BuildSimpleRead")

	return g.read(g.index)
}

func (g *ThisIndexedAccess[E, A, I]) BuildForEffect() E {
	return g.BuildSimpleRead()
}

func (g *ThisIndexedAccess[E, A, I]) BuildAssignment(value E, voidContext bool) E {
	g.consume("BuildAssignment")

	return g.write(g.index, value, g.pos)
}

func (g *ThisIndexedAccess[E, A, I]) BuildNullAwareAssignment(value E, valueType TypeRef, pos tok.Position, voidContext bool) E {
	g.consume("BuildNullAwareAssignment")

	f := g.forest()
	index := f.DefineTemp(g.index, g.pos)
	read := g.read(f.ReadTemp(index, g.pos))
	write := g.write(f.ReadTemp(index, g.pos), value, pos)

	return f.Let(index, f.IfNull(read, write, valueType, pos), pos)
}

func (g *ThisIndexedAccess[E, A, I]) BuildCompoundAssignment(op Name, value E, opts CompoundOptions) E {
	g.consume("BuildCompoundAssignment")

	return g.compound(op, value, opts, false)
}

func (g *ThisIndexedAccess[E, A, I]) BuildPrefixIncrement(op Name, opts CompoundOptions) E {
	g.consume("BuildPrefixIncrement")

	opts.IsPreIncDec = true

	return g.compound(op, g.forest().IntLiteral(1, opts.Pos), opts, false)
}

func (g *ThisIndexedAccess[E, A, I]) BuildPostfixIncrement(op Name, opts CompoundOptions) E {
	g.consume("BuildPostfixIncrement")

	opts.IsPreIncDec = true

	return g.compound(op, g.forest().IntLiteral(1, opts.Pos), opts, true)
}

func (g *ThisIndexedAccess[E, A, I]) compound(op Name, value E, opts CompoundOptions, postfix bool) E {
	f := g.forest()
	index := f.DefineTemp(g.index, g.pos)
	read := g.read(f.ReadTemp(index, g.pos))

	var body E

	if postfix {
		oldValue := f.DefineTemp(read, opts.Pos)
		result := f.BinaryOperation(f.ReadTemp(oldValue, opts.Pos), op, value, opts.OperatorMember, opts.Pos)
		write := f.DefineTemp(g.write(f.ReadTemp(index, g.pos), result, opts.Pos), opts.Pos)
		body = f.Let(oldValue, f.Let(write, f.ReadTemp(oldValue, opts.Pos), opts.Pos), opts.Pos)
	} else {
		result := f.BinaryOperation(read, op, value, opts.OperatorMember, opts.Pos)
		body = g.write(f.ReadTemp(index, g.pos), result, opts.Pos)
	}

	return f.Let(index, body, opts.Pos)
}

func (g *ThisIndexedAccess[E, A, I]) DoInvocation(pos tok.Position, args A) Resolution[E, A, I] {
	g.consume("DoInvocation")

	read := g.read(g.index)

	return ExprResolution[E, A, I](g.helper.BuildMethodInvocation(read, CallName, args, pos, false))
}

func (g *ThisIndexedAccess[E, A, I]) BuildFieldInitializer(value E, initialized map[Name]bool) I {
	return g.invalidFieldInitializer("BuildFieldInitializer")
}

// SuperIndexedAccess represents `super[index]` with statically resolved
// index operators.
type SuperIndexedAccess[E, A, I any] struct {
	base[E, A, I]
	index  E
	getter MemberRef
	setter MemberRef
}

var _ Generator[any, any, any] = (*SuperIndexedAccess[any, any, any])(nil)

// NewSuperIndexedAccess creates a generator for `super[index]`.
func NewSuperIndexedAccess[E, A, I any](helper Helper[E, A, I], index E, getter, setter MemberRef, pos tok.Position) *SuperIndexedAccess[E, A, I] {
	return &SuperIndexedAccess[E, A, I]{
		base:   newBase(helper, pos, IndexGetName, IndexSetName),
		index:  index,
		getter: getter,
		setter: setter,
	}
}

func (g *SuperIndexedAccess[E, A, I]) DebugName() string { return "SuperIndexedAccess" }

func (g *SuperIndexedAccess[E, A, I]) String() string {
	return describe(g.DebugName(), g.pos, fmt.Sprintf("index: %v, getter: %s, setter: %s",
		g.index, memberName(g.getter), memberName(g.setter)))
}

func (g *SuperIndexedAccess[E, A, I]) read(index E) E {
	if g.getter == nil {
		f := g.forest()

		return g.BuildThrowNoSuchMethodError(f.This(g.pos), f.Arguments(g.pos, index), ThrowOptions{
			NameOverride: IndexGetName,
			IsSuper:      true,
			IsGetter:     true,
		})
	}

	return g.forest().SuperIndexGet(index, g.getter, g.pos)
}

func (g *SuperIndexedAccess[E, A, I]) write(index, value E, pos tok.Position) E {
	if g.setter == nil {
		f := g.forest()

		return g.BuildThrowNoSuchMethodError(f.This(pos), f.Arguments(pos, index, value), ThrowOptions{
			Pos:      &pos,
			IsSuper:  true,
			IsSetter: true,
		})
	}

	return g.forest().SuperIndexSet(index, value, g.setter, pos)
}

func (g *SuperIndexedAccess[E, A, I]) BuildSimpleRead() E {
	g.consume("BuildSimpleRead")

	return g.read(g.index)
}

func (g *SuperIndexedAccess[E, A, I]) BuildForEffect() E {
	return g.BuildSimpleRead()
}

func (g *SuperIndexedAccess[E, A, I]) BuildAssignment(value E, voidContext bool) E {
	g.consume("BuildAssignment")

	return g.write(g.index, value, g.pos)
}

func (g *SuperIndexedAccess[E, A, I]) BuildNullAwareAssignment(value E, valueType TypeRef, pos tok.Position, voidContext bool) E {
	g.consume("BuildNullAwareAssignment")

	f := g.forest()
	index := f.DefineTemp(g.index, g.pos)
	read := g.read(f.ReadTemp(index, g.pos))
	write := g.write(f.ReadTemp(index, g.pos), value, pos)

	return f.Let(index, f.IfNull(read, write, valueType, pos), pos)
}

func (g *SuperIndexedAccess[E, A, I]) BuildCompoundAssignment(op Name, value E, opts CompoundOptions) E {
	g.consume("BuildCompoundAssignment")

	return g.compound(op, value, opts, false)
}

func (g *SuperIndexedAccess[E, A, I]) BuildPrefixIncrement(op Name, opts CompoundOptions) E {
	g.consume("BuildPrefixIncrement")

	opts.IsPreIncDec = true

	return g.compound(op, g.forest().IntLiteral(1, opts.Pos), opts, false)
}

func (g *SuperIndexedAccess[E, A, I]) BuildPostfixIncrement(op Name, opts CompoundOptions) E {
	g.consume("BuildPostfixIncrement")

	opts.IsPreIncDec = true

	return g.compound(op, g.forest().IntLiteral(1, opts.Pos), opts, true)
}

func (g *SuperIndexedAccess[E, A, I]) compound(op Name, value E, opts CompoundOptions, postfix bool) E {
	f := g.forest()
	index := f.DefineTemp(g.index, g.pos)
	read := g.read(f.ReadTemp(index, g.pos))

	var body E

	if postfix {
		oldValue := f.DefineTemp(read, opts.Pos)
		result := f.BinaryOperation(f.ReadTemp(oldValue, opts.Pos), op, value, opts.OperatorMember, opts.Pos)
		write := f.DefineTemp(g.write(f.ReadTemp(index, g.pos), result, opts.Pos), opts.Pos)
		body = f.Let(oldValue, f.Let(write, f.ReadTemp(oldValue, opts.Pos), opts.Pos), opts.Pos)
	} else {
		result := f.BinaryOperation(read, op, value, opts.OperatorMember, opts.Pos)
		body = g.write(f.ReadTemp(index, g.pos), result, opts.Pos)
	}

	return f.Let(index, body, opts.Pos)
}

func (g *SuperIndexedAccess[E, A, I]) DoInvocation(pos tok.Position, args A) Resolution[E, A, I] {
	g.consume("DoInvocation")

	read := g.read(g.index)

	return ExprResolution[E, A, I](g.helper.BuildMethodInvocation(read, CallName, args, pos, false))
}

func (g *SuperIndexedAccess[E, A, I]) BuildFieldInitializer(value E, initialized map[Name]bool) I {
	return g.invalidFieldInitializer("BuildFieldInitializer")
}
