package outline_test

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	gen "github.com/yuzulang/yuzu/generator"
	"github.com/yuzulang/yuzu/outline"
	"github.com/yuzulang/yuzu/parser"
	tok "github.com/yuzulang/yuzu/tokenizer"
)

func parse(t *testing.T, source string) *outline.Node {
	t.Helper()

	p := parser.New[*outline.Node, *outline.Node, *outline.Node](outline.NewForest(), parser.Options{
		URI:    "test.yz",
		Locals: []gen.Name{"a", "i"},
	})

	node := p.ParseExpression(source)
	assert.False(t, p.HasErrors(), "unexpected diagnostics: %v", p.Diagnostics())

	return node
}

func TestOutlineShapes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected outline.Kind
	}{
		{name: "variable read", input: "a", expected: outline.KindVarGet},
		{name: "binary operation", input: "a + 1", expected: outline.KindBinaryOp},
		{name: "assignment", input: "a = 1", expected: outline.KindVarSet},
		{name: "index read", input: "a[i]", expected: outline.KindIndexGet},
		{name: "index write", input: "a[i] = 1", expected: outline.KindIndexSet},
		{name: "unresolved member read", input: "a.title", expected: outline.KindNoSuchMethod},
		{name: "null-aware member read", input: "a?.title", expected: outline.KindNullGuard},
		{name: "method invocation", input: "a.f(1)", expected: outline.KindInvocation},
		{name: "compound index assignment", input: "a[i] += 1", expected: outline.KindLet},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, parse(t, test.input).Kind)
		})
	}
}

func TestOutlineChildren(t *testing.T) {
	node := parse(t, "a + 1")

	assert.Equal(t, "binary-op(+)", node.String())
	assert.Equal(t, 2, len(node.Children))
	assert.Equal(t, "var-get(a)", node.Children[0].String())
	assert.Equal(t, "int(1)", node.Children[1].String())
}

func TestOutlineNodeString(t *testing.T) {
	f := outline.NewForest()

	var pos tok.Position

	assert.Equal(t, "this", f.This(pos).String())
	assert.Equal(t, "var-set(x)", f.VariableSet("x", f.IntLiteral(1, pos), pos).String())
	assert.Equal(t, "null", f.NullLiteral(pos).String())
}
