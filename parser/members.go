package parser

import (
	gen "github.com/yuzulang/yuzu/generator"
)

// Member is the concrete MemberRef handle the driver hands to generators.
type Member struct {
	Holder string
	Name   string
}

// FullName implements generator.MemberRef.
func (m *Member) FullName() string {
	if m.Holder != "" {
		return m.Holder + "." + m.Name
	}

	return m.Name
}

// MemberResolver supplies getter/setter handles for instance and super
// scopes at generator-construction time.
type MemberResolver interface {
	ResolveGetter(name gen.Name) gen.MemberRef
	ResolveSetter(name gen.Name) gen.MemberRef
}

// MemberTable is a map-backed MemberResolver.
type MemberTable struct {
	Holder  string
	Getters map[gen.Name]bool
	Setters map[gen.Name]bool
}

var _ MemberResolver = (*MemberTable)(nil)

func (t *MemberTable) ResolveGetter(name gen.Name) gen.MemberRef {
	if t == nil || !t.Getters[name] {
		return nil
	}

	return &Member{Holder: t.Holder, Name: string(name)}
}

func (t *MemberTable) ResolveSetter(name gen.Name) gen.MemberRef {
	if t == nil || !t.Setters[name] {
		return nil
	}

	return &Member{Holder: t.Holder, Name: string(name)}
}

// builtinOperator is the statically known runtime implementation of the
// language's built-in operators (arithmetic and indexing). Index operators
// are defined on every object, so indexed access always carries resolved
// handles even though property access on an explicit receiver is dynamic.
func builtinOperator(name gen.Name) gen.MemberRef {
	return &Member{Holder: "runtime", Name: string(name)}
}

// NamedType is a plain named TypeRef used for promoted variable types.
type NamedType string

// TypeName implements generator.TypeRef.
func (t NamedType) TypeName() string { return string(t) }
