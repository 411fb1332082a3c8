// Package outline is the lightweight tree backend of the Yuzu front end.
// Outline nodes record only the node kind, the source position and the
// accessed selector; they carry no evaluable structure. The backend exists
// for outline-only compilation passes and proves that the generator layer is
// independent of the node representation.
package outline

import (
	"fmt"

	gen "github.com/yuzulang/yuzu/generator"
	tok "github.com/yuzulang/yuzu/tokenizer"
)

// Kind identifies the shape of an outline node.
type Kind int

const (
	KindThis Kind = iota
	KindIntLit
	KindStrLit
	KindBoolLit
	KindNullLit
	KindVarGet
	KindVarSet
	KindPropertyGet
	KindPropertySet
	KindThisPropertyGet
	KindThisPropertySet
	KindSuperPropertyGet
	KindSuperPropertySet
	KindIndexGet
	KindIndexSet
	KindThisIndexGet
	KindThisIndexSet
	KindSuperIndexGet
	KindSuperIndexSet
	KindBinaryOp
	KindInvocation
	KindSuperInvocation
	KindArguments
	KindTempRead
	KindLet
	KindNullGuard
	KindIfNull
	KindNoSuchMethod
	KindInvalid
	KindFieldInit
	KindInvalidInit
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindThis:
		return "this"
	case KindIntLit:
		return "int"
	case KindStrLit:
		return "string"
	case KindBoolLit:
		return "bool"
	case KindNullLit:
		return "null"
	case KindVarGet:
		return "var-get"
	case KindVarSet:
		return "var-set"
	case KindPropertyGet:
		return "property-get"
	case KindPropertySet:
		return "property-set"
	case KindThisPropertyGet:
		return "this-property-get"
	case KindThisPropertySet:
		return "this-property-set"
	case KindSuperPropertyGet:
		return "super-property-get"
	case KindSuperPropertySet:
		return "super-property-set"
	case KindIndexGet:
		return "index-get"
	case KindIndexSet:
		return "index-set"
	case KindThisIndexGet:
		return "this-index-get"
	case KindThisIndexSet:
		return "this-index-set"
	case KindSuperIndexGet:
		return "super-index-get"
	case KindSuperIndexSet:
		return "super-index-set"
	case KindBinaryOp:
		return "binary-op"
	case KindInvocation:
		return "invocation"
	case KindSuperInvocation:
		return "super-invocation"
	case KindArguments:
		return "arguments"
	case KindTempRead:
		return "temp-read"
	case KindLet:
		return "let"
	case KindNullGuard:
		return "null-guard"
	case KindIfNull:
		return "if-null"
	case KindNoSuchMethod:
		return "no-such-method"
	case KindInvalid:
		return "invalid"
	case KindFieldInit:
		return "field-init"
	case KindInvalidInit:
		return "invalid-init"
	default:
		return "unknown"
	}
}

// Node is an outline tree node. Children preserve source order but carry no
// evaluation semantics.
type Node struct {
	Kind     Kind
	Name     gen.Name
	Pos      tok.Position
	Children []*Node
}

func (n *Node) String() string {
	if n.Name != "" {
		return fmt.Sprintf("%s(%s)", n.Kind, n.Name)
	}

	return n.Kind.String()
}

// InvalidType is the outline backend's invalid-type marker.
type InvalidType struct {
	Pos tok.Position
}

// TypeName implements generator.TypeRef.
func (t *InvalidType) TypeName() string { return "<invalid-type>" }

// Forest builds outline nodes for the generator layer.
type Forest struct{}

var _ gen.Forest[*Node, *Node, *Node] = (*Forest)(nil)

// NewForest creates an outline factory.
func NewForest() *Forest {
	return &Forest{}
}

func node(kind Kind, name gen.Name, pos tok.Position, children ...*Node) *Node {
	return &Node{Kind: kind, Name: name, Pos: pos, Children: children}
}

func (f *Forest) This(pos tok.Position) *Node { return node(KindThis, "", pos) }

func (f *Forest) IsThis(e *Node) bool { return e != nil && e.Kind == KindThis }

func (f *Forest) IntLiteral(value int64, pos tok.Position) *Node {
	return node(KindIntLit, gen.Name(fmt.Sprintf("%d", value)), pos)
}

func (f *Forest) StringLiteral(value string, pos tok.Position) *Node {
	return node(KindStrLit, gen.Name(value), pos)
}

func (f *Forest) BoolLiteral(value bool, pos tok.Position) *Node {
	return node(KindBoolLit, gen.Name(fmt.Sprintf("%t", value)), pos)
}

func (f *Forest) NullLiteral(pos tok.Position) *Node {
	return node(KindNullLit, "", pos)
}

func (f *Forest) VariableGet(name gen.Name, promotedType gen.TypeRef, pos tok.Position) *Node {
	return node(KindVarGet, name, pos)
}

func (f *Forest) VariableSet(name gen.Name, value *Node, pos tok.Position) *Node {
	return node(KindVarSet, name, pos, value)
}

func (f *Forest) PropertyGet(receiver *Node, name gen.Name, getter gen.MemberRef, pos tok.Position) *Node {
	return node(KindPropertyGet, name, pos, receiver)
}

func (f *Forest) PropertySet(receiver *Node, name gen.Name, value *Node, setter gen.MemberRef, pos tok.Position) *Node {
	return node(KindPropertySet, name, pos, receiver, value)
}

func (f *Forest) ThisPropertyGet(name gen.Name, getter gen.MemberRef, pos tok.Position) *Node {
	return node(KindThisPropertyGet, name, pos)
}

func (f *Forest) ThisPropertySet(name gen.Name, value *Node, setter gen.MemberRef, pos tok.Position) *Node {
	return node(KindThisPropertySet, name, pos, value)
}

func (f *Forest) SuperPropertyGet(name gen.Name, getter gen.MemberRef, pos tok.Position) *Node {
	return node(KindSuperPropertyGet, name, pos)
}

func (f *Forest) SuperPropertySet(name gen.Name, value *Node, setter gen.MemberRef, pos tok.Position) *Node {
	return node(KindSuperPropertySet, name, pos, value)
}

func (f *Forest) IndexGet(receiver, index *Node, getter gen.MemberRef, pos tok.Position) *Node {
	return node(KindIndexGet, gen.IndexGetName, pos, receiver, index)
}

func (f *Forest) IndexSet(receiver, index, value *Node, setter gen.MemberRef, pos tok.Position) *Node {
	return node(KindIndexSet, gen.IndexSetName, pos, receiver, index, value)
}

func (f *Forest) ThisIndexGet(index *Node, getter gen.MemberRef, pos tok.Position) *Node {
	return node(KindThisIndexGet, gen.IndexGetName, pos, index)
}

func (f *Forest) ThisIndexSet(index, value *Node, setter gen.MemberRef, pos tok.Position) *Node {
	return node(KindThisIndexSet, gen.IndexSetName, pos, index, value)
}

func (f *Forest) SuperIndexGet(index *Node, getter gen.MemberRef, pos tok.Position) *Node {
	return node(KindSuperIndexGet, gen.IndexGetName, pos, index)
}

func (f *Forest) SuperIndexSet(index, value *Node, setter gen.MemberRef, pos tok.Position) *Node {
	return node(KindSuperIndexSet, gen.IndexSetName, pos, index, value)
}

func (f *Forest) BinaryOperation(left *Node, op gen.Name, right *Node, member gen.MemberRef, pos tok.Position) *Node {
	return node(KindBinaryOp, op, pos, left, right)
}

func (f *Forest) MethodInvocation(receiver *Node, name gen.Name, args *Node, isNullAware bool, pos tok.Position) *Node {
	return node(KindInvocation, name, pos, receiver, args)
}

func (f *Forest) SuperMethodInvocation(name gen.Name, member gen.MemberRef, args *Node, pos tok.Position) *Node {
	return node(KindSuperInvocation, name, pos, args)
}

func (f *Forest) Arguments(pos tok.Position, positional ...*Node) *Node {
	return node(KindArguments, "", pos, positional...)
}

func (f *Forest) DefineTemp(init *Node, pos tok.Position) gen.Temp {
	return init
}

func (f *Forest) ReadTemp(t gen.Temp, pos tok.Position) *Node {
	return node(KindTempRead, "", pos)
}

func (f *Forest) Let(t gen.Temp, body *Node, pos tok.Position) *Node {
	return node(KindLet, "", pos, t.(*Node), body)
}

func (f *Forest) NullGuard(t gen.Temp, body *Node, pos tok.Position) *Node {
	return node(KindNullGuard, "", pos, t.(*Node), body)
}

func (f *Forest) IfNull(left, right *Node, staticType gen.TypeRef, pos tok.Position) *Node {
	return node(KindIfNull, "", pos, left, right)
}

func (f *Forest) ThrowNoSuchMethod(receiver *Node, name gen.Name, args *Node, opts gen.ThrowOptions, pos tok.Position) *Node {
	return node(KindNoSuchMethod, name, pos, receiver, args)
}

func (f *Forest) InvalidExpression(message string, pos tok.Position) *Node {
	return node(KindInvalid, gen.Name(message), pos)
}

func (f *Forest) InvalidType(pos tok.Position) gen.TypeRef {
	return &InvalidType{Pos: pos}
}

func (f *Forest) FieldInitializer(name gen.Name, value *Node, pos tok.Position) *Node {
	return node(KindFieldInit, name, pos, value)
}

func (f *Forest) InvalidInitializer(errorExpression *Node, pos tok.Position) *Node {
	return node(KindInvalidInit, "", pos, errorExpression)
}
