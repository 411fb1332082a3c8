package semtree

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
	gen "github.com/yuzulang/yuzu/generator"
	tok "github.com/yuzulang/yuzu/tokenizer"
)

var noPos tok.Position

func TestBinaryOps(t *testing.T) {
	tests := []struct {
		name     string
		op       gen.Name
		left     Value
		right    Value
		expected Value
	}{
		{name: "add", op: "+", left: int64(2), right: int64(3), expected: int64(5)},
		{name: "subtract", op: "-", left: int64(2), right: int64(3), expected: int64(-1)},
		{name: "multiply", op: "*", left: int64(2), right: int64(3), expected: int64(6)},
		{name: "divide", op: "/", left: int64(7), right: int64(2), expected: int64(3)},
		{name: "int equality", op: "==", left: int64(2), right: int64(2), expected: true},
		{name: "int inequality", op: "!=", left: int64(2), right: int64(2), expected: false},
		{name: "string concat", op: "+", left: "a", right: "b", expected: "ab"},
		{name: "string equality", op: "==", left: "a", right: "a", expected: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			value, err := binaryOp(test.op, test.left, test.right)
			assert.NoError(t, err)
			assert.Equal(t, test.expected, value)
		})
	}
}

func TestBinaryOpErrors(t *testing.T) {
	_, err := binaryOp("/", int64(1), int64(0))
	assert.True(t, errors.Is(err, ErrDivisionByZero))

	_, err = binaryOp("+", int64(1), "a")
	assert.True(t, errors.Is(err, ErrUnsupportedOperand))

	_, err = binaryOp("*", "a", "b")
	assert.True(t, errors.Is(err, ErrUnsupportedOperand))
}

func TestLetBindsOnceAndReadsMany(t *testing.T) {
	f := NewForest()
	ev := NewEvaluator()
	ev.Vars["x"] = int64(4)

	// let t = x in t + t
	temp := f.DefineTemp(f.VariableGet("x", nil, noPos), noPos)
	body := f.BinaryOperation(f.ReadTemp(temp, noPos), "+", f.ReadTemp(temp, noPos), nil, noPos)

	value, err := ev.Eval(f.Let(temp, body, noPos))
	assert.NoError(t, err)
	assert.Equal(t, int64(8), value.(int64))
	assert.Equal(t, []string{"get x"}, ev.Trace)
}

func TestNullGuard(t *testing.T) {
	f := NewForest()

	t.Run("nil receiver short-circuits", func(t *testing.T) {
		ev := NewEvaluator()
		ev.Vars["x"] = nil

		temp := f.DefineTemp(f.VariableGet("x", nil, noPos), noPos)
		body := f.PropertyGet(f.ReadTemp(temp, noPos), "name", nil, noPos)

		value, err := ev.Eval(f.NullGuard(temp, body, noPos))
		assert.NoError(t, err)
		assert.Equal(t, nil, value)
	})

	t.Run("non-nil receiver evaluates the body", func(t *testing.T) {
		ev := NewEvaluator()
		ev.Vars["x"] = &Object{Fields: map[string]Value{"name": "yuzu"}}

		temp := f.DefineTemp(f.VariableGet("x", nil, noPos), noPos)
		body := f.PropertyGet(f.ReadTemp(temp, noPos), "name", nil, noPos)

		value, err := ev.Eval(f.NullGuard(temp, body, noPos))
		assert.NoError(t, err)
		assert.Equal(t, "yuzu", value.(string))
	})
}

func TestIfNull(t *testing.T) {
	f := NewForest()
	ev := NewEvaluator()
	ev.Vars["fallback"] = int64(7)

	value, err := ev.Eval(f.IfNull(f.NullLiteral(noPos), f.VariableGet("fallback", nil, noPos), nil, noPos))
	assert.NoError(t, err)
	assert.Equal(t, int64(7), value.(int64))

	// The right side must not run when the left side is non-null.
	value, err = ev.Eval(f.IfNull(f.IntLiteral(1, noPos), f.VariableGet("boom", nil, noPos), nil, noPos))
	assert.NoError(t, err)
	assert.Equal(t, int64(1), value.(int64))
	assert.Equal(t, []string{"get fallback"}, ev.Trace)
}

func TestMethodDispatch(t *testing.T) {
	f := NewForest()
	ev := NewEvaluator()

	obj := &Object{
		Methods: map[string]Func{
			"twice": func(args []Value) (Value, error) {
				return args[0].(int64) * 2, nil
			},
		},
	}
	ev.Vars["x"] = obj

	args := f.Arguments(noPos, f.IntLiteral(21, noPos))
	value, err := ev.Eval(f.MethodInvocation(f.VariableGet("x", nil, noPos), "twice", args, false, noPos))
	assert.NoError(t, err)
	assert.Equal(t, int64(42), value.(int64))

	_, err = ev.Eval(f.MethodInvocation(f.VariableGet("x", nil, noPos), "missing", f.Arguments(noPos), false, noPos))

	var nsm *NoSuchMethodError

	assert.True(t, errors.As(err, &nsm))
	assert.Equal(t, gen.Name("missing"), nsm.Name)
}

func TestClosureCall(t *testing.T) {
	f := NewForest()
	ev := NewEvaluator()
	ev.Vars["f"] = Func(func(args []Value) (Value, error) {
		return int64(len(args)), nil
	})

	args := f.Arguments(noPos, f.IntLiteral(1, noPos), f.IntLiteral(2, noPos))
	value, err := ev.Eval(f.MethodInvocation(f.VariableGet("f", nil, noPos), gen.CallName, args, false, noPos))
	assert.NoError(t, err)
	assert.Equal(t, int64(2), value.(int64))
	assert.Equal(t, []string{"get f", "call <closure>"}, ev.Trace)
}

func TestNoSuchMethodNodeKeepsSideEffects(t *testing.T) {
	f := NewForest()
	ev := NewEvaluator()
	ev.Vars["x"] = &Object{}

	receiver := f.VariableGet("x", nil, noPos)
	args := f.Arguments(noPos, f.VariableSet("observed", f.IntLiteral(1, noPos), noPos))
	expr := f.ThrowNoSuchMethod(receiver, "frob", args, gen.ThrowOptions{}, noPos)

	_, err := ev.Eval(expr)

	var nsm *NoSuchMethodError

	assert.True(t, errors.As(err, &nsm))
	assert.Equal(t, gen.Name("frob"), nsm.Name)
	// Receiver and arguments ran before the throw.
	assert.Equal(t, int64(1), ev.Vars["observed"].(int64))
}

func TestPropertyWrites(t *testing.T) {
	f := NewForest()

	t.Run("write creates the field map on demand", func(t *testing.T) {
		ev := NewEvaluator()
		obj := &Object{}
		ev.Vars["x"] = obj

		value, err := ev.Eval(f.PropertySet(f.VariableGet("x", nil, noPos), "name", f.IntLiteral(1, noPos), nil, noPos))
		assert.NoError(t, err)
		assert.Equal(t, int64(1), value.(int64))
		assert.Equal(t, int64(1), obj.Fields["name"].(int64))
	})

	t.Run("this write without an instance errors", func(t *testing.T) {
		ev := NewEvaluator()

		_, err := ev.Eval(f.ThisPropertySet("count", f.IntLiteral(1, noPos), nil, noPos))
		assert.True(t, errors.Is(err, ErrNotAnObject))
	})

	t.Run("super write without an instance errors", func(t *testing.T) {
		ev := NewEvaluator()

		_, err := ev.Eval(f.SuperPropertySet("count", f.IntLiteral(1, noPos), nil, noPos))
		assert.True(t, errors.Is(err, ErrNotAnObject))
	})

	t.Run("write through a non-object receiver errors", func(t *testing.T) {
		ev := NewEvaluator()
		ev.Vars["x"] = int64(3)

		_, err := ev.Eval(f.PropertySet(f.VariableGet("x", nil, noPos), "name", f.IntLiteral(1, noPos), nil, noPos))
		assert.True(t, errors.Is(err, ErrNotAnObject))
	})
}

func TestIndexAccessErrors(t *testing.T) {
	f := NewForest()
	ev := NewEvaluator()
	ev.Vars["a"] = &Object{Elems: []Value{int64(1)}}

	_, err := ev.Eval(f.IndexGet(f.VariableGet("a", nil, noPos), f.IntLiteral(5, noPos), nil, noPos))
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))

	_, err = ev.Eval(f.IndexGet(f.IntLiteral(1, noPos), f.IntLiteral(0, noPos), nil, noPos))
	assert.True(t, errors.Is(err, ErrNotAnObject))
}

func TestRender(t *testing.T) {
	f := NewForest()

	tests := []struct {
		name     string
		expr     Expr
		expected string
	}{
		{
			name:     "variable set",
			expr:     f.VariableSet("x", f.IntLiteral(1, noPos), noPos),
			expected: "(x = 1)",
		},
		{
			name:     "string literal",
			expr:     f.StringLiteral("hi", noPos),
			expected: `"hi"`,
		},
		{
			name:     "super index set",
			expr:     f.SuperIndexSet(f.IntLiteral(0, noPos), f.BoolLiteral(true, noPos), nil, noPos),
			expected: "(super[0] = true)",
		},
		{
			name:     "invocation",
			expr:     f.MethodInvocation(f.VariableGet("x", nil, noPos), "f", f.Arguments(noPos, f.NullLiteral(noPos)), true, noPos),
			expected: "x?.f(null)",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, Render(test.expr))
		})
	}
}
