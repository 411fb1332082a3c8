// Package semtree is the full semantic tree backend of the Yuzu front end.
// Its nodes keep enough structure for a reference evaluator to execute them,
// which is also how the front end's evaluation-order guarantees are tested.
package semtree

import (
	gen "github.com/yuzulang/yuzu/generator"
	tok "github.com/yuzulang/yuzu/tokenizer"
)

// Expr is a semantic tree expression node.
type Expr interface {
	Pos() tok.Position
	exprNode()
}

// Initializer is a constructor initializer-list entry.
type Initializer interface {
	Pos() tok.Position
	initNode()
}

type position struct {
	P tok.Position
}

func (p position) Pos() tok.Position { return p.P }

// This is a literal this-expression.
type This struct{ position }

// IntLit is an integer literal.
type IntLit struct {
	position
	Value int64
}

// StrLit is a string literal.
type StrLit struct {
	position
	Value string
}

// BoolLit is a boolean literal.
type BoolLit struct {
	position
	Value bool
}

// NullLit is the null literal.
type NullLit struct{ position }

// VarGet reads a local variable or parameter slot.
type VarGet struct {
	position
	Name     gen.Name
	Promoted gen.TypeRef
}

// VarSet writes a local variable and evaluates to the assigned value.
type VarSet struct {
	position
	Name  gen.Name
	Value Expr
}

// PropertyGet reads receiver.Name.
type PropertyGet struct {
	position
	Receiver Expr
	Name     gen.Name
	Getter   gen.MemberRef
}

// PropertySet writes receiver.Name and evaluates to the assigned value.
type PropertySet struct {
	position
	Receiver Expr
	Name     gen.Name
	Value    Expr
	Setter   gen.MemberRef
}

// ThisPropertyGet reads a property of the enclosing instance without
// materializing a this-expression.
type ThisPropertyGet struct {
	position
	Name   gen.Name
	Getter gen.MemberRef
}

// ThisPropertySet writes a property of the enclosing instance.
type ThisPropertySet struct {
	position
	Name   gen.Name
	Value  Expr
	Setter gen.MemberRef
}

// SuperPropertyGet reads a statically resolved superclass property.
type SuperPropertyGet struct {
	position
	Name   gen.Name
	Getter gen.MemberRef
}

// SuperPropertySet writes a statically resolved superclass property.
type SuperPropertySet struct {
	position
	Name   gen.Name
	Value  Expr
	Setter gen.MemberRef
}

// IndexGet reads receiver[index].
type IndexGet struct {
	position
	Receiver Expr
	Index    Expr
	Getter   gen.MemberRef
}

// IndexSet writes receiver[index] and evaluates to the assigned value.
type IndexSet struct {
	position
	Receiver Expr
	Index    Expr
	Value    Expr
	Setter   gen.MemberRef
}

// ThisIndexGet reads this[index] without materializing the receiver.
type ThisIndexGet struct {
	position
	Index  Expr
	Getter gen.MemberRef
}

// ThisIndexSet writes this[index].
type ThisIndexSet struct {
	position
	Index  Expr
	Value  Expr
	Setter gen.MemberRef
}

// SuperIndexGet reads super[index].
type SuperIndexGet struct {
	position
	Index  Expr
	Getter gen.MemberRef
}

// SuperIndexSet writes super[index].
type SuperIndexSet struct {
	position
	Index  Expr
	Value  Expr
	Setter gen.MemberRef
}

// BinaryOp invokes the binary operator Op on Left with Right.
type BinaryOp struct {
	position
	Left   Expr
	Op     gen.Name
	Right  Expr
	Member gen.MemberRef
}

// Invocation is a method call against an explicit receiver.
type Invocation struct {
	position
	Receiver  Expr
	Name      gen.Name
	Args      *Arguments
	NullAware bool
}

// SuperInvocation is a statically resolved superclass method call.
type SuperInvocation struct {
	position
	Name   gen.Name
	Member gen.MemberRef
	Args   *Arguments
}

// TempDecl is a backend temporary holding the value of a subexpression that
// must be evaluated exactly once. It is not itself an expression; it is
// introduced by Let and NullGuard.
type TempDecl struct {
	ID   int
	Init Expr
	P    tok.Position
}

// TempRead reads the value bound by a TempDecl.
type TempRead struct {
	position
	Decl *TempDecl
}

// Let evaluates the temp initializer once, then the body.
type Let struct {
	position
	Decl *TempDecl
	Body Expr
}

// NullGuard evaluates the temp initializer once; a null value short-circuits
// the whole expression to null without evaluating the body.
type NullGuard struct {
	position
	Decl *TempDecl
	Body Expr
}

// IfNull evaluates Left; if null, evaluates and yields Right, otherwise
// yields Left's value.
type IfNull struct {
	position
	Left       Expr
	Right      Expr
	StaticType gen.TypeRef
}

// NoSuchMethod throws a no-such-method error at run time. It stands in for a
// dynamic dispatch that static resolution already knows will fail.
type NoSuchMethod struct {
	position
	Receiver Expr
	Name     gen.Name
	Args     *Arguments
	IsSuper  bool
	IsGetter bool
	IsSetter bool
	IsStatic bool
	Extra    *gen.LocatedMessage
}

// Invalid is the compile-time error marker. At run time it throws with no
// other side effects.
type Invalid struct {
	position
	Message string
}

// Arguments bundles positional call arguments.
type Arguments struct {
	P          tok.Position
	Positional []Expr
}

// FieldInit is a genuine constructor field initializer.
type FieldInit struct {
	position
	Name  gen.Name
	Value Expr
}

// InvalidInit is the error-marker initializer entry.
type InvalidInit struct {
	position
	Err Expr
}

func (*This) exprNode()             {}
func (*IntLit) exprNode()           {}
func (*StrLit) exprNode()           {}
func (*BoolLit) exprNode()          {}
func (*NullLit) exprNode()          {}
func (*VarGet) exprNode()           {}
func (*VarSet) exprNode()           {}
func (*PropertyGet) exprNode()      {}
func (*PropertySet) exprNode()      {}
func (*ThisPropertyGet) exprNode()  {}
func (*ThisPropertySet) exprNode()  {}
func (*SuperPropertyGet) exprNode() {}
func (*SuperPropertySet) exprNode() {}
func (*IndexGet) exprNode()         {}
func (*IndexSet) exprNode()         {}
func (*ThisIndexGet) exprNode()     {}
func (*ThisIndexSet) exprNode()     {}
func (*SuperIndexGet) exprNode()    {}
func (*SuperIndexSet) exprNode()    {}
func (*BinaryOp) exprNode()         {}
func (*Invocation) exprNode()       {}
func (*SuperInvocation) exprNode()  {}
func (*TempRead) exprNode()         {}
func (*Let) exprNode()              {}
func (*NullGuard) exprNode()        {}
func (*IfNull) exprNode()           {}
func (*NoSuchMethod) exprNode()     {}
func (*Invalid) exprNode()          {}

func (*FieldInit) initNode()   {}
func (*InvalidInit) initNode() {}

// InvalidType is the designated invalid-type marker.
type InvalidType struct {
	P tok.Position
}

// TypeName implements generator.TypeRef.
func (t *InvalidType) TypeName() string { return "<invalid-type>" }
