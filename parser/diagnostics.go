package parser

import (
	"fmt"

	tok "github.com/yuzulang/yuzu/tokenizer"
)

// Diagnostic is a located compile-time error message. Diagnostics are
// collected, never thrown; the front end keeps building a tree so one broken
// statement does not hide later errors.
type Diagnostic struct {
	URI     string
	Message string
	Pos     tok.Position
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", d.URI, d.Pos.Line, d.Pos.Column, d.Message)
}

// Reporter collects diagnostics for one compilation.
type Reporter struct {
	URI         string
	Diagnostics []Diagnostic
}

// NewReporter creates a reporter for the given source URI.
func NewReporter(uri string) *Reporter {
	return &Reporter{URI: uri}
}

// Report records a located diagnostic.
func (r *Reporter) Report(message string, pos tok.Position) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{URI: r.URI, Message: message, Pos: pos})
}

// HasErrors reports whether any diagnostic was recorded.
func (r *Reporter) HasErrors() bool {
	return len(r.Diagnostics) > 0
}
