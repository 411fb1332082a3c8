package yuzu

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/yuzulang/yuzu/semtree"
)

func TestCompile(t *testing.T) {
	f := NewFrontend(nil)

	result := f.Compile("test.yz", "let x = 1; x + 2")
	assert.False(t, result.HasErrors(), "unexpected diagnostics: %v", result.Diagnostics)
	assert.Equal(t, 2, len(result.Exprs))
	assert.Equal(t, "(x = 1)", semtree.Render(result.Exprs[0]))
	assert.Equal(t, "(x + 2)", semtree.Render(result.Exprs[1]))
}

func TestCompileCollectsDiagnostics(t *testing.T) {
	f := NewFrontend(nil)

	result := f.Compile("test.yz", "y + 1")
	assert.True(t, result.HasErrors())
	assert.Equal(t, "test.yz", result.Diagnostics[0].URI)
}

func TestCompileUsesConfiguredScope(t *testing.T) {
	config := getDefaultConfig()
	config.Scope.Locals = []string{"table"}
	config.Scope.InstanceContext = true
	config.Scope.Members = MemberScope{Holder: "Counter", Fields: []string{"count"}}

	f := NewFrontend(config)

	result := f.Compile("test.yz", "count = table")
	assert.False(t, result.HasErrors(), "unexpected diagnostics: %v", result.Diagnostics)
	assert.Equal(t, "(this.count = table)", semtree.Render(result.Exprs[0]))
}

func TestCompileOutline(t *testing.T) {
	f := NewFrontend(nil)

	result := f.CompileOutline("test.yz", "let x = 1; x")
	assert.Equal(t, 0, len(result.Diagnostics))
	assert.Equal(t, 2, len(result.Nodes))
	assert.Equal(t, "var-set(x)", result.Nodes[0].String())
}

func TestCompileInitializers(t *testing.T) {
	config := getDefaultConfig()
	config.Scope.InstanceContext = true
	config.Scope.Members = MemberScope{Holder: "Point", Fields: []string{"x", "y"}}

	f := NewFrontend(config)

	inits, diags := f.CompileInitializers("test.yz", "this.x = 1, y = 2")
	assert.Equal(t, 0, len(diags))
	assert.Equal(t, 2, len(inits))
	assert.Equal(t, "init(x = 1)", semtree.RenderInitializer(inits[0]))
	assert.Equal(t, "init(y = 2)", semtree.RenderInitializer(inits[1]))
}

func TestRun(t *testing.T) {
	f := NewFrontend(nil)

	result, err := f.Run("test.yz", "let a = 1; a += 2; a")
	assert.NoError(t, err)
	assert.Equal(t, []semtree.Value{int64(1), int64(3), int64(3)}, result.Values)
	assert.Equal(t, int64(3), result.Vars["a"].(int64))
	assert.NotZero(t, result.Trace)
}

func TestRunSeedsConfiguredVariables(t *testing.T) {
	config := getDefaultConfig()
	config.Scope.Locals = []string{"limit"}
	config.Eval.Variables = map[string]any{"limit": 10}

	f := NewFrontend(config)

	result, err := f.Run("test.yz", "limit * 2")
	assert.NoError(t, err)
	assert.Equal(t, int64(20), result.Values[0].(int64))
}

func TestRunAbortsOnCompileErrors(t *testing.T) {
	f := NewFrontend(nil)

	_, err := f.Run("test.yz", "missing + 1")
	assert.True(t, errors.Is(err, ErrCompileFailed))
}

func TestRunReportsUnsetInstanceReceiver(t *testing.T) {
	config := getDefaultConfig()
	config.Scope.InstanceContext = true
	config.Scope.Members = MemberScope{Holder: "Counter", Fields: []string{"count"}}

	f := NewFrontend(config)

	// The evaluator has no instance bound, so the implicit this-write must
	// surface as an error, not a crash.
	_, err := f.Run("test.yz", "count = 1")
	assert.True(t, errors.Is(err, semtree.ErrNotAnObject))
}

func TestRunSurfacesRuntimeErrors(t *testing.T) {
	f := NewFrontend(nil)

	_, err := f.Run("test.yz", "1 / 0")
	assert.True(t, errors.Is(err, semtree.ErrDivisionByZero))
}
