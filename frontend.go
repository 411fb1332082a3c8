// Package yuzu ties the tokenizer, the grammar driver and the tree backends
// together behind one front-end facade.
package yuzu

import (
	"fmt"

	gen "github.com/yuzulang/yuzu/generator"
	"github.com/yuzulang/yuzu/outline"
	"github.com/yuzulang/yuzu/parser"
	"github.com/yuzulang/yuzu/semtree"
)

// Frontend compiles Yuzu sources according to one configuration.
type Frontend struct {
	config *Config
}

// NewFrontend creates a front end. A nil config uses the defaults.
func NewFrontend(config *Config) *Frontend {
	if config == nil {
		config = getDefaultConfig()
	}

	return &Frontend{config: config}
}

// Config returns the active configuration.
func (f *Frontend) Config() *Config { return f.config }

// CompileResult is the outcome of compiling one source to the semantic tree.
type CompileResult struct {
	Exprs       []semtree.Expr
	Diagnostics []parser.Diagnostic
}

// HasErrors reports whether compilation produced any diagnostic.
func (r *CompileResult) HasErrors() bool { return len(r.Diagnostics) > 0 }

// OutlineResult is the outcome of compiling one source to the outline tree.
type OutlineResult struct {
	Nodes       []*outline.Node
	Diagnostics []parser.Diagnostic
}

func (f *Frontend) options(uri string) parser.Options {
	scope := &f.config.Scope

	locals := make([]gen.Name, 0, len(scope.Locals))
	for _, name := range scope.Locals {
		locals = append(locals, gen.Name(name))
	}

	promoted := make(map[gen.Name]gen.TypeRef, len(scope.PromotedTypes))
	for name, typeName := range scope.PromotedTypes {
		promoted[gen.Name(name)] = parser.NamedType(typeName)
	}

	return parser.Options{
		URI:             uri,
		Locals:          locals,
		PromotedTypes:   promoted,
		Members:         memberTable(&scope.Members),
		SuperMembers:    memberTable(&scope.SuperMembers),
		InstanceContext: scope.InstanceContext,
	}
}

// Compile parses source into semantic tree statements. Compile errors surface
// as diagnostics next to the recovered tree, never as a failed call.
func (f *Frontend) Compile(uri, source string) *CompileResult {
	p := parser.New[semtree.Expr, *semtree.Arguments, semtree.Initializer](semtree.NewForest(), f.options(uri))

	return &CompileResult{
		Exprs:       p.ParseProgram(source),
		Diagnostics: p.Diagnostics(),
	}
}

// CompileOutline parses source into the outline backend.
func (f *Frontend) CompileOutline(uri, source string) *OutlineResult {
	p := parser.New[*outline.Node, *outline.Node, *outline.Node](outline.NewForest(), f.options(uri))

	return &OutlineResult{
		Nodes:       p.ParseProgram(source),
		Diagnostics: p.Diagnostics(),
	}
}

// CompileInitializers parses source as a constructor initializer list.
func (f *Frontend) CompileInitializers(uri, source string) ([]semtree.Initializer, []parser.Diagnostic) {
	p := parser.New[semtree.Expr, *semtree.Arguments, semtree.Initializer](semtree.NewForest(), f.options(uri))

	return p.ParseInitializerList(source), p.Diagnostics()
}

// RunResult is the outcome of evaluating a compiled program.
type RunResult struct {
	// Values holds the value of every statement, in order.
	Values []semtree.Value
	// Trace is the evaluator's access trace.
	Trace []string
	// Vars is the final variable scope.
	Vars map[gen.Name]semtree.Value
}

// Run compiles and evaluates source with the reference evaluator. Compile
// diagnostics abort the run.
func (f *Frontend) Run(uri, source string) (*RunResult, error) {
	result := f.Compile(uri, source)
	if result.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrCompileFailed, result.Diagnostics[0])
	}

	ev := semtree.NewEvaluator()
	for name, value := range f.config.Eval.Variables {
		ev.Vars[gen.Name(name)] = evalValue(value)
	}

	run := &RunResult{}

	for _, expr := range result.Exprs {
		value, err := ev.Eval(expr)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", uri, err)
		}

		run.Values = append(run.Values, value)
	}

	run.Trace = ev.Trace
	run.Vars = ev.Vars

	return run, nil
}

func memberTable(scope *MemberScope) parser.MemberResolver {
	if !scope.HasMembers() {
		return nil
	}

	table := &parser.MemberTable{
		Holder:  scope.Holder,
		Getters: map[gen.Name]bool{},
		Setters: map[gen.Name]bool{},
	}

	for _, name := range scope.Fields {
		table.Getters[gen.Name(name)] = true
		table.Setters[gen.Name(name)] = true
	}

	for _, name := range scope.Getters {
		table.Getters[gen.Name(name)] = true
	}

	for _, name := range scope.Setters {
		table.Setters[gen.Name(name)] = true
	}

	return table
}

// evalValue converts a YAML-decoded configuration value to an evaluator
// value. Integers normalize to int64, the evaluator's only numeric type.
func evalValue(value any) semtree.Value {
	switch v := value.(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case uint64:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return v
	}
}
