package generator_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	gen "github.com/yuzulang/yuzu/generator"
	"github.com/yuzulang/yuzu/semtree"
	tok "github.com/yuzulang/yuzu/tokenizer"
)

// member is a minimal resolved-member handle.
type member string

func (m member) FullName() string { return string(m) }

var plusOp = member("runtime.+")

// fixture implements the generator layer's helper contract over the semantic
// tree backend and records reported diagnostics.
type fixture struct {
	forest *semtree.Forest
	ctx    gen.ConstantContext
	errors []string
}

func newFixture() *fixture {
	return &fixture{forest: semtree.NewForest()}
}

func (h *fixture) Forest() gen.Forest[semtree.Expr, *semtree.Arguments, semtree.Initializer] {
	return h.forest
}

func (h *fixture) URI() string { return "test://fragment" }

func (h *fixture) ConstantContext() gen.ConstantContext { return h.ctx }

func (h *fixture) ReportCompileTimeError(message string, pos tok.Position) {
	h.errors = append(h.errors, message)
}

func (h *fixture) BuildMethodInvocation(receiver semtree.Expr, name gen.Name, args *semtree.Arguments, pos tok.Position, isNullAware bool) semtree.Expr {
	return h.forest.MethodInvocation(receiver, name, args, isNullAware, pos)
}

func (h *fixture) BuildInvalidInitializer(errorExpression semtree.Expr, pos tok.Position) semtree.Initializer {
	return h.forest.InvalidInitializer(errorExpression, pos)
}

func (h *fixture) ThrowNoSuchMethodError(receiver semtree.Expr, name gen.Name, args *semtree.Arguments, pos tok.Position, opts gen.ThrowOptions) semtree.Expr {
	return h.forest.ThrowNoSuchMethod(receiver, name, args, opts, pos)
}

func at(offset int) tok.Position {
	return tok.Position{Offset: offset, Line: 1, Column: offset + 1}
}

func countEvents(trace []string, event string) int {
	count := 0

	for _, e := range trace {
		if e == event {
			count++
		}
	}

	return count
}

func TestVariablePostfixIncrementYieldsOldValue(t *testing.T) {
	h := newFixture()
	g := gen.NewVariableUse(h, "x", nil, at(0))

	expr := g.BuildPostfixIncrement("+", gen.CompoundOptions{Pos: at(1), OperatorMember: plusOp})

	ev := semtree.NewEvaluator()
	ev.Vars["x"] = int64(5)

	value, err := ev.Eval(expr)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), value.(int64))
	assert.Equal(t, int64(6), ev.Vars["x"].(int64))
}

func TestVariablePrefixIncrementYieldsNewValue(t *testing.T) {
	h := newFixture()
	g := gen.NewVariableUse(h, "x", nil, at(0))

	expr := g.BuildPrefixIncrement("+", gen.CompoundOptions{Pos: at(1), OperatorMember: plusOp})

	ev := semtree.NewEvaluator()
	ev.Vars["x"] = int64(5)

	value, err := ev.Eval(expr)
	assert.NoError(t, err)
	assert.Equal(t, int64(6), value.(int64))
	assert.Equal(t, int64(6), ev.Vars["x"].(int64))
}

func TestVariableNullAwareAssignment(t *testing.T) {
	t.Run("assigns when null", func(t *testing.T) {
		h := newFixture()
		g := gen.NewVariableUse(h, "x", nil, at(0))
		expr := g.BuildNullAwareAssignment(h.forest.IntLiteral(3, at(5)), nil, at(2), false)

		ev := semtree.NewEvaluator()
		ev.Vars["x"] = nil

		value, err := ev.Eval(expr)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), value.(int64))
		assert.Equal(t, int64(3), ev.Vars["x"].(int64))
	})

	t.Run("keeps non-null value", func(t *testing.T) {
		h := newFixture()
		g := gen.NewVariableUse(h, "x", nil, at(0))
		expr := g.BuildNullAwareAssignment(h.forest.IntLiteral(3, at(5)), nil, at(2), false)

		ev := semtree.NewEvaluator()
		ev.Vars["x"] = int64(1)

		value, err := ev.Eval(expr)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), value.(int64))
		assert.Equal(t, int64(1), ev.Vars["x"].(int64))
	})
}

func TestIndexedCompoundEvaluatesReceiverAndIndexOnce(t *testing.T) {
	h := newFixture()
	f := h.forest

	g := gen.MakeIndexedAccess(h,
		f.VariableGet("a", nil, at(0)),
		f.VariableGet("i", nil, at(2)),
		member("runtime.[]"), member("runtime.[]="), at(1))

	expr := g.BuildCompoundAssignment("+", f.IntLiteral(1, at(8)), gen.CompoundOptions{Pos: at(5), OperatorMember: plusOp})

	ev := semtree.NewEvaluator()
	ev.Vars["a"] = &semtree.Object{Elems: []semtree.Value{int64(10), int64(20)}}
	ev.Vars["i"] = int64(1)

	value, err := ev.Eval(expr)
	assert.NoError(t, err)
	assert.Equal(t, int64(21), value.(int64))
	assert.Equal(t, []string{"get a", "get i", "get [1]", "set [1]"}, ev.Trace)
}

func TestIndexedPostfixYieldsOldValueWithSingleEvaluation(t *testing.T) {
	h := newFixture()
	f := h.forest

	g := gen.MakeIndexedAccess(h,
		f.VariableGet("a", nil, at(0)),
		f.VariableGet("i", nil, at(2)),
		member("runtime.[]"), member("runtime.[]="), at(1))

	expr := g.BuildPostfixIncrement("+", gen.CompoundOptions{Pos: at(4), OperatorMember: plusOp})

	ev := semtree.NewEvaluator()
	obj := &semtree.Object{Elems: []semtree.Value{int64(10), int64(20)}}
	ev.Vars["a"] = obj
	ev.Vars["i"] = int64(1)

	value, err := ev.Eval(expr)
	assert.NoError(t, err)
	assert.Equal(t, int64(20), value.(int64))
	assert.Equal(t, int64(21), obj.Elems[1].(int64))
	assert.Equal(t, 1, countEvents(ev.Trace, "get a"))
	assert.Equal(t, 1, countEvents(ev.Trace, "get i"))
	assert.Equal(t, 1, countEvents(ev.Trace, "get [1]"))
}

func TestMakeIndexedAccessCollapsesLiteralThis(t *testing.T) {
	h := newFixture()

	g := gen.MakeIndexedAccess(h, h.forest.This(at(0)), h.forest.IntLiteral(0, at(5)),
		member("runtime.[]"), member("runtime.[]="), at(4))

	assert.Equal(t, "ThisIndexedAccess", g.DebugName())
}

func TestMakePropertyAccessVariants(t *testing.T) {
	t.Run("plain receiver", func(t *testing.T) {
		h := newFixture()
		g := gen.MakePropertyAccess(h, h.forest.VariableGet("p", nil, at(0)), "name", nil, nil, false, at(1))
		assert.Equal(t, "PropertyAccess", g.DebugName())
	})

	t.Run("null aware", func(t *testing.T) {
		h := newFixture()
		g := gen.MakePropertyAccess(h, h.forest.VariableGet("p", nil, at(0)), "name", nil, nil, true, at(1))
		assert.Equal(t, "NullAwarePropertyAccess", g.DebugName())
	})

	t.Run("literal this receiver panics", func(t *testing.T) {
		h := newFixture()
		assert.Panics(t, func() {
			gen.MakePropertyAccess(h, h.forest.This(at(0)), "name", nil, nil, false, at(4))
		})
	})
}

func TestUnresolvedGetterSynthesizesNoSuchMethod(t *testing.T) {
	h := newFixture()
	g := gen.MakePropertyAccess(h, h.forest.VariableGet("p", nil, at(0)), "len", nil, nil, false, at(1))

	expr := g.BuildSimpleRead()

	ev := semtree.NewEvaluator()
	ev.Vars["p"] = &semtree.Object{}

	_, err := ev.Eval(expr)

	var nsm *semtree.NoSuchMethodError

	assert.True(t, errors.As(err, &nsm))
	assert.Equal(t, gen.Name("len"), nsm.Name)
	assert.True(t, nsm.IsGetter)

	// The synthesized throw is not a compile-time diagnostic.
	assert.Equal(t, 0, len(h.errors))
}

func TestNullAwareReadShortCircuits(t *testing.T) {
	h := newFixture()
	g := gen.MakePropertyAccess(h, h.forest.VariableGet("p", nil, at(0)), "name", nil, nil, true, at(1))

	expr := g.BuildSimpleRead()

	ev := semtree.NewEvaluator()
	ev.Vars["p"] = nil

	value, err := ev.Eval(expr)
	assert.NoError(t, err)
	assert.Equal(t, nil, value)
}

func TestGeneratorIsSingleUse(t *testing.T) {
	h := newFixture()
	g := gen.NewVariableUse(h, "x", nil, at(0))

	_ = g.BuildSimpleRead()

	assert.Panics(t, func() {
		_ = g.BuildSimpleRead()
	})
}

func TestLinkSendWithArgumentsBuildsInvocation(t *testing.T) {
	h := newFixture()
	g := gen.NewVariableUse(h, "x", nil, at(0))
	args := h.forest.Arguments(at(3))

	res := gen.LinkSend(h, gen.Generator[semtree.Expr, *semtree.Arguments, semtree.Initializer](g),
		gen.IncompleteSend[*semtree.Arguments]{Name: "f", Pos: at(2), Args: &args}, at(1), false)

	assert.Equal(t, gen.ResolvedExpression, res.Kind)
	assert.Equal(t, "x.f()", semtree.Render(res.Expr))
}

func TestLinkSendConstantContextAllowsOnlyLength(t *testing.T) {
	t.Run("length is allowed", func(t *testing.T) {
		h := newFixture()
		h.ctx = gen.ConstantContextRequired

		g := gen.NewVariableUse(h, "x", nil, at(0))
		res := gen.LinkSend[semtree.Expr, *semtree.Arguments, semtree.Initializer](h, g,
			gen.IncompleteSend[*semtree.Arguments]{Name: gen.LengthName, Pos: at(2)}, at(1), false)

		assert.Equal(t, gen.ResolvedGenerator, res.Kind)
		assert.Equal(t, 0, len(h.errors))
	})

	t.Run("other members are reported", func(t *testing.T) {
		h := newFixture()
		h.ctx = gen.ConstantContextRequired

		g := gen.NewVariableUse(h, "x", nil, at(0))
		res := gen.LinkSend[semtree.Expr, *semtree.Arguments, semtree.Initializer](h, g,
			gen.IncompleteSend[*semtree.Arguments]{Name: "size", Pos: at(2)}, at(1), false)

		assert.Equal(t, gen.ResolvedGenerator, res.Kind)
		assert.Equal(t, 1, len(h.errors))
		assert.True(t, strings.Contains(h.errors[0], "not a constant expression"))
	})
}

func TestThisPropertyFieldInitializer(t *testing.T) {
	t.Run("genuine initializer", func(t *testing.T) {
		h := newFixture()
		g := gen.NewThisPropertyAccess(h, "x", member("C.x"), member("C.x"), at(0), true)

		init := g.BuildFieldInitializer(h.forest.IntLiteral(1, at(9)), map[gen.Name]bool{})

		assert.Equal(t, "init(x = 1)", semtree.RenderInitializer(init))
		assert.Equal(t, 0, len(h.errors))
	})

	t.Run("duplicate initialization", func(t *testing.T) {
		h := newFixture()
		g := gen.NewThisPropertyAccess(h, "x", member("C.x"), member("C.x"), at(0), true)

		init := g.BuildFieldInitializer(h.forest.IntLiteral(1, at(9)), map[gen.Name]bool{"x": true})

		assert.True(t, strings.HasPrefix(semtree.RenderInitializer(init), "invalid-init"))
		assert.Equal(t, 1, len(h.errors))
		assert.True(t, strings.Contains(h.errors[0], "already initialized"))
	})

	t.Run("variable target is rejected", func(t *testing.T) {
		h := newFixture()
		g := gen.NewVariableUse(h, "x", nil, at(0))

		init := g.BuildFieldInitializer(h.forest.IntLiteral(1, at(4)), map[gen.Name]bool{})

		assert.True(t, strings.HasPrefix(semtree.RenderInitializer(init), "invalid-init"))
		assert.Equal(t, 1, len(h.errors))
	})
}

func TestMakeInvalidWriteKeepsValueEffects(t *testing.T) {
	h := newFixture()
	f := h.forest
	g := gen.NewThisPropertyAccess(h, "x", nil, nil, at(0), false)

	// The written value is a side-effecting expression.
	expr := g.MakeInvalidWrite(f.VariableSet("y", f.IntLiteral(9, at(6)), at(4)))

	ev := semtree.NewEvaluator()

	_, err := ev.Eval(expr)

	var invalid *semtree.InvalidExpressionError

	assert.True(t, errors.As(err, &invalid))
	assert.Equal(t, int64(9), ev.Vars["y"].(int64))
	assert.Equal(t, 1, len(h.errors))
}

func TestSuperInvocation(t *testing.T) {
	t.Run("resolved member", func(t *testing.T) {
		h := newFixture()
		g := gen.NewSuperPropertyAccess(h, "greet", member("Base.greet"), nil, at(0))

		res := g.DoInvocation(at(6), h.forest.Arguments(at(6)))

		assert.Equal(t, gen.ResolvedExpression, res.Kind)
		assert.Equal(t, "super.greet()", semtree.Render(res.Expr))
	})

	t.Run("unresolved member throws", func(t *testing.T) {
		h := newFixture()
		g := gen.NewSuperPropertyAccess(h, "greet", nil, nil, at(0))

		res := g.DoInvocation(at(6), h.forest.Arguments(at(6)))
		assert.Equal(t, gen.ResolvedExpression, res.Kind)

		ev := semtree.NewEvaluator()
		ev.This = &semtree.Object{}

		_, err := ev.Eval(res.Expr)

		var nsm *semtree.NoSuchMethodError

		assert.True(t, errors.As(err, &nsm))
		assert.True(t, nsm.IsSuper)
	})
}

func TestBuildTypeWithBuiltArgumentsReportsNotAType(t *testing.T) {
	h := newFixture()
	g := gen.NewVariableUse(h, "x", nil, at(0))

	ref := g.BuildTypeWithBuiltArguments(nil, false)

	assert.Equal(t, "<invalid-type>", ref.TypeName())
	assert.Equal(t, 1, len(h.errors))
	assert.True(t, strings.Contains(h.errors[0], "isn't a type"))
}

// namedType is a minimal promoted-type handle.
type namedType string

func (t namedType) TypeName() string { return string(t) }

func TestIndexedAccessReportsFixedSelectors(t *testing.T) {
	h := newFixture()
	f := h.forest

	// The selector pair is fixed even when neither operator resolved.
	generators := []gen.Generator[semtree.Expr, *semtree.Arguments, semtree.Initializer]{
		gen.NewIndexedAccess(h, f.VariableGet("a", nil, at(0)), f.IntLiteral(0, at(2)), nil, nil, at(1)),
		gen.NewThisIndexedAccess(h, f.IntLiteral(0, at(5)), nil, nil, at(4)),
		gen.NewSuperIndexedAccess(h, f.IntLiteral(0, at(6)), nil, nil, at(5)),
	}

	for _, g := range generators {
		t.Run(g.DebugName(), func(t *testing.T) {
			assert.Equal(t, gen.IndexGetName, g.PlainNameForRead())
			assert.Equal(t, gen.IndexSetName, g.PlainNameForWrite())
		})
	}
}

func TestWriteSelectorDefaultsToReadSelector(t *testing.T) {
	h := newFixture()

	v := gen.NewVariableUse(h, "x", nil, at(0))
	assert.Equal(t, gen.Name("x"), v.PlainNameForRead())
	assert.Equal(t, gen.Name("x"), v.PlainNameForWrite())

	p := gen.MakePropertyAccess(h, h.forest.VariableGet("x", nil, at(0)), "title", nil, nil, false, at(1))
	assert.Equal(t, gen.Name("title"), p.PlainNameForRead())
	assert.Equal(t, gen.Name("title"), p.PlainNameForWrite())
}

func TestGeneratorDescriptions(t *testing.T) {
	h := newFixture()

	tests := []struct {
		name      string
		generator interface{ String() string }
		expected  string
	}{
		{
			name:      "variable",
			generator: gen.NewVariableUse(h, "x", nil, at(3)),
			expected:  "VariableUse(offset: 3, name: x, promotedType: <none>)",
		},
		{
			name:      "promoted variable",
			generator: gen.NewVariableUse(h, "row", namedType("Row"), at(4)),
			expected:  "VariableUse(offset: 4, name: row, promotedType: Row)",
		},
		{
			name:      "this property",
			generator: gen.NewThisPropertyAccess(h, "count", member("C.count"), nil, at(7), false),
			expected:  "ThisPropertyAccess(offset: 7, name: count, getter: C.count, setter: <unresolved>)",
		},
		{
			name:      "super property",
			generator: gen.NewSuperPropertyAccess(h, "greet", member("Base.greet"), member("Base.greet"), at(9)),
			expected:  "SuperPropertyAccess(offset: 9, name: greet, getter: Base.greet, setter: Base.greet)",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.generator.String())
		})
	}
}
