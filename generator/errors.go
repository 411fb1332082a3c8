package generator

import "errors"

// Sentinel errors
var (
	// ErrInternal marks programming-contract violations in the grammar
	// driver. These abort via panic instead of becoming user diagnostics.
	ErrInternal = errors.New("internal error")
	// ErrGeneratorReused is the panic cause when a build method is called on
	// a generator that has already been resolved.
	ErrGeneratorReused = errors.New("generator already resolved")
)
