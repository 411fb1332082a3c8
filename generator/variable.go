package generator

import (
	"fmt"

	tok "github.com/yuzulang/yuzu/tokenizer"
)

// VariableUse represents a reference to a local variable or parameter slot.
// It optionally carries a promoted static type from flow-sensitive narrowing.
type VariableUse[E, A, I any] struct {
	base[E, A, I]
	promotedType TypeRef
}

var _ Generator[any, any, any] = (*VariableUse[any, any, any])(nil)

// NewVariableUse creates a generator for a local variable or parameter.
func NewVariableUse[E, A, I any](helper Helper[E, A, I], name Name, promotedType TypeRef, pos tok.Position) *VariableUse[E, A, I] {
	return &VariableUse[E, A, I]{
		base:         newBase(helper, pos, name, ""),
		promotedType: promotedType,
	}
}

func (g *VariableUse[E, A, I]) DebugName() string { return "VariableUse" }

func (g *VariableUse[E, A, I]) String() string {
	promoted := "<none>"
	if g.promotedType != nil {
		promoted = g.promotedType.TypeName()
	}

	return describe(g.DebugName(), g.pos, fmt.Sprintf("name: %s, promotedType: %s", g.nameRead, promoted))
}

// read builds the variable read without consuming the generator.
func (g *VariableUse[E, A, I]) read() E {
	return g.forest().VariableGet(g.nameRead, g.promotedType, g.pos)
}

// write builds the variable write without consuming the generator.
func (g *VariableUse[E, A, I]) write(value E, pos tok.Position) E {
	return g.forest().VariableSet(g.nameRead, value, pos)
}

func (g *VariableUse[E, A, I]) BuildSimpleRead() E {
	g.consume("BuildSimpleRead")

	return g.read()
}

func (g *VariableUse[E, A, I]) BuildForEffect() E {
	return g.BuildSimpleRead()
}

func (g *VariableUse[E, A, I]) BuildAssignment(value E, voidContext bool) E {
	g.consume("BuildAssignment")

	return g.write(value, g.pos)
}

func (g *VariableUse[E, A, I]) BuildNullAwareAssignment(value E, valueType TypeRef, pos tok.Position, voidContext bool) E {
	g.consume("BuildNullAwareAssignment")

	return g.forest().IfNull(g.read(), g.write(value, pos), valueType, pos)
}

func (g *VariableUse[E, A, I]) BuildCompoundAssignment(op Name, value E, opts CompoundOptions) E {
	g.consume("BuildCompoundAssignment")

	return g.compound(op, value, opts, false)
}

func (g *VariableUse[E, A, I]) BuildPrefixIncrement(op Name, opts CompoundOptions) E {
	g.consume("BuildPrefixIncrement")

	opts.IsPreIncDec = true

	return g.compound(op, g.forest().IntLiteral(1, opts.Pos), opts, false)
}

func (g *VariableUse[E, A, I]) BuildPostfixIncrement(op Name, opts CompoundOptions) E {
	g.consume("BuildPostfixIncrement")

	opts.IsPreIncDec = true

	return g.compound(op, g.forest().IntLiteral(1, opts.Pos), opts, true)
}

// compound implements the read-modify-write family. A local slot needs no
// temp for the target itself; the postfix form still stashes the old value.
func (g *VariableUse[E, A, I]) compound(op Name, value E, opts CompoundOptions, postfix bool) E {
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

func (g *VariableUse[E, A, I]) DoInvocation(pos tok.Position, args A) Resolution[E, A, I] {
	g.consume("DoInvocation")

	// Calling a local means invoking its value.
	return ExprResolution[E, A, I](g.helper.BuildMethodInvocation(g.read(), CallName, args, pos, false))
}

func (g *VariableUse[E, A, I]) BuildFieldInitializer(value E, initialized map[Name]bool) I {
	return g.invalidFieldInitializer("BuildFieldInitializer")
}
