package generator

// Name is an identifier or synthetic operator selector. The index read and
// index write selectors are distinct names even though both originate from
// the same bracket syntax.
type Name string

const (
	// IndexGetName is the fixed read selector for index operations.
	IndexGetName Name = "[]"
	// IndexSetName is the fixed write selector for index operations.
	IndexSetName Name = "[]="
	// LengthName is the only member that may be read in a constant context.
	LengthName Name = "length"
	// CallName is the selector used when a non-method value is invoked.
	CallName Name = "call"
)

// MemberRef is an opaque handle to a resolved getter or setter declaration
// supplied by the symbol-resolution collaborator. A nil MemberRef means
// "unresolved", which drives no-such-method synthesis rather than being an
// error by itself.
type MemberRef interface {
	FullName() string
}

// TypeRef is an opaque handle to a static type used for backend annotation
// (flow-sensitive promotion, null-aware assignment value types). It never
// alters control flow inside this package.
type TypeRef interface {
	TypeName() string
}

// memberName renders a MemberRef for debug output.
func memberName(m MemberRef) string {
	if m == nil {
		return "<unresolved>"
	}

	return m.FullName()
}
