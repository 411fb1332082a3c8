package yuzu

import "errors"

// Common errors used throughout the Yuzu package
var (
	// ErrSourceNotFound indicates a source file could not be located.
	// Front-end errors
	ErrSourceNotFound = errors.New("source file not found")
	// ErrCompileFailed indicates the source produced compile-time diagnostics.
	ErrCompileFailed = errors.New("compilation failed")
	// ErrUnknownBackend indicates an unknown tree backend was requested.
	ErrUnknownBackend = errors.New("unknown tree backend")

	// ErrUnknownOutputFormat indicates an unsupported output format was selected.
	// Output errors
	ErrUnknownOutputFormat = errors.New("unknown output format")

	// ErrNoSourcesFound indicates no source files matched the watch patterns.
	// Watch errors
	ErrNoSourcesFound = errors.New("no source files found")
)
