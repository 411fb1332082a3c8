package parser

import (
	gen "github.com/yuzulang/yuzu/generator"
	tok "github.com/yuzulang/yuzu/tokenizer"
)

// helper wires the generator layer to the active forest and the diagnostics
// reporter. It is generic over the backend node types so the same driver
// serves the semantic tree and the outline tree.
type helper[E, A, I any] struct {
	forest   gen.Forest[E, A, I]
	reporter *Reporter
	constCtx gen.ConstantContext
}

var _ gen.Helper[any, any, any] = (*helper[any, any, any])(nil)

func newHelper[E, A, I any](forest gen.Forest[E, A, I], reporter *Reporter) *helper[E, A, I] {
	return &helper[E, A, I]{
		forest:   forest,
		reporter: reporter,
	}
}

func (h *helper[E, A, I]) Forest() gen.Forest[E, A, I] { return h.forest }

func (h *helper[E, A, I]) URI() string { return h.reporter.URI }

func (h *helper[E, A, I]) ConstantContext() gen.ConstantContext { return h.constCtx }

func (h *helper[E, A, I]) ReportCompileTimeError(message string, pos tok.Position) {
	h.reporter.Report(message, pos)
}

func (h *helper[E, A, I]) BuildMethodInvocation(receiver E, name gen.Name, args A, pos tok.Position, isNullAware bool) E {
	return h.forest.MethodInvocation(receiver, name, args, isNullAware, pos)
}

func (h *helper[E, A, I]) BuildInvalidInitializer(errorExpression E, pos tok.Position) I {
	return h.forest.InvalidInitializer(errorExpression, pos)
}

func (h *helper[E, A, I]) ThrowNoSuchMethodError(receiver E, name gen.Name, args A, pos tok.Position, opts gen.ThrowOptions) E {
	return h.forest.ThrowNoSuchMethod(receiver, name, args, opts, pos)
}
