package semtree

import (
	"fmt"

	gen "github.com/yuzulang/yuzu/generator"
	tok "github.com/yuzulang/yuzu/tokenizer"
)

// Forest builds semantic tree nodes for the generator layer.
type Forest struct {
	nextTemp int
}

var _ gen.Forest[Expr, *Arguments, Initializer] = (*Forest)(nil)

// NewForest creates a semantic tree factory.
func NewForest() *Forest {
	return &Forest{}
}

func (f *Forest) This(pos tok.Position) Expr {
	return &This{position{pos}}
}

func (f *Forest) IsThis(e Expr) bool {
	_, ok := e.(*This)

	return ok
}

func (f *Forest) IntLiteral(value int64, pos tok.Position) Expr {
	return &IntLit{position{pos}, value}
}

func (f *Forest) StringLiteral(value string, pos tok.Position) Expr {
	return &StrLit{position{pos}, value}
}

func (f *Forest) BoolLiteral(value bool, pos tok.Position) Expr {
	return &BoolLit{position{pos}, value}
}

func (f *Forest) NullLiteral(pos tok.Position) Expr {
	return &NullLit{position{pos}}
}

func (f *Forest) VariableGet(name gen.Name, promotedType gen.TypeRef, pos tok.Position) Expr {
	return &VarGet{position{pos}, name, promotedType}
}

func (f *Forest) VariableSet(name gen.Name, value Expr, pos tok.Position) Expr {
	return &VarSet{position{pos}, name, value}
}

func (f *Forest) PropertyGet(receiver Expr, name gen.Name, getter gen.MemberRef, pos tok.Position) Expr {
	return &PropertyGet{position{pos}, receiver, name, getter}
}

func (f *Forest) PropertySet(receiver Expr, name gen.Name, value Expr, setter gen.MemberRef, pos tok.Position) Expr {
	return &PropertySet{position{pos}, receiver, name, value, setter}
}

func (f *Forest) ThisPropertyGet(name gen.Name, getter gen.MemberRef, pos tok.Position) Expr {
	return &ThisPropertyGet{position{pos}, name, getter}
}

func (f *Forest) ThisPropertySet(name gen.Name, value Expr, setter gen.MemberRef, pos tok.Position) Expr {
	return &ThisPropertySet{position{pos}, name, value, setter}
}

func (f *Forest) SuperPropertyGet(name gen.Name, getter gen.MemberRef, pos tok.Position) Expr {
	return &SuperPropertyGet{position{pos}, name, getter}
}

func (f *Forest) SuperPropertySet(name gen.Name, value Expr, setter gen.MemberRef, pos tok.Position) Expr {
	return &SuperPropertySet{position{pos}, name, value, setter}
}

func (f *Forest) IndexGet(receiver, index Expr, getter gen.MemberRef, pos tok.Position) Expr {
	return &IndexGet{position{pos}, receiver, index, getter}
}

func (f *Forest) IndexSet(receiver, index, value Expr, setter gen.MemberRef, pos tok.Position) Expr {
	return &IndexSet{position{pos}, receiver, index, value, setter}
}

func (f *Forest) ThisIndexGet(index Expr, getter gen.MemberRef, pos tok.Position) Expr {
	return &ThisIndexGet{position{pos}, index, getter}
}

func (f *Forest) ThisIndexSet(index, value Expr, setter gen.MemberRef, pos tok.Position) Expr {
	return &ThisIndexSet{position{pos}, index, value, setter}
}

func (f *Forest) SuperIndexGet(index Expr, getter gen.MemberRef, pos tok.Position) Expr {
	return &SuperIndexGet{position{pos}, index, getter}
}

func (f *Forest) SuperIndexSet(index, value Expr, setter gen.MemberRef, pos tok.Position) Expr {
	return &SuperIndexSet{position{pos}, index, value, setter}
}

func (f *Forest) BinaryOperation(left Expr, op gen.Name, right Expr, member gen.MemberRef, pos tok.Position) Expr {
	return &BinaryOp{position{pos}, left, op, right, member}
}

func (f *Forest) MethodInvocation(receiver Expr, name gen.Name, args *Arguments, isNullAware bool, pos tok.Position) Expr {
	return &Invocation{position{pos}, receiver, name, args, isNullAware}
}

func (f *Forest) SuperMethodInvocation(name gen.Name, member gen.MemberRef, args *Arguments, pos tok.Position) Expr {
	return &SuperInvocation{position{pos}, name, member, args}
}

func (f *Forest) Arguments(pos tok.Position, positional ...Expr) *Arguments {
	return &Arguments{P: pos, Positional: positional}
}

func (f *Forest) DefineTemp(init Expr, pos tok.Position) gen.Temp {
	f.nextTemp++

	return &TempDecl{ID: f.nextTemp, Init: init, P: pos}
}

func (f *Forest) ReadTemp(t gen.Temp, pos tok.Position) Expr {
	return &TempRead{position{pos}, mustTemp(t)}
}

func (f *Forest) Let(t gen.Temp, body Expr, pos tok.Position) Expr {
	return &Let{position{pos}, mustTemp(t), body}
}

func (f *Forest) NullGuard(t gen.Temp, body Expr, pos tok.Position) Expr {
	return &NullGuard{position{pos}, mustTemp(t), body}
}

func (f *Forest) IfNull(left, right Expr, staticType gen.TypeRef, pos tok.Position) Expr {
	return &IfNull{position{pos}, left, right, staticType}
}

func (f *Forest) ThrowNoSuchMethod(receiver Expr, name gen.Name, args *Arguments, opts gen.ThrowOptions, pos tok.Position) Expr {
	return &NoSuchMethod{
		position: position{pos},
		Receiver: receiver,
		Name:     name,
		Args:     args,
		IsSuper:  opts.IsSuper,
		IsGetter: opts.IsGetter,
		IsSetter: opts.IsSetter,
		IsStatic: opts.IsStatic,
		Extra:    opts.ExtraMessage,
	}
}

func (f *Forest) InvalidExpression(message string, pos tok.Position) Expr {
	return &Invalid{position{pos}, message}
}

func (f *Forest) InvalidType(pos tok.Position) gen.TypeRef {
	return &InvalidType{P: pos}
}

func (f *Forest) FieldInitializer(name gen.Name, value Expr, pos tok.Position) Initializer {
	return &FieldInit{position{pos}, name, value}
}

func (f *Forest) InvalidInitializer(errorExpression Expr, pos tok.Position) Initializer {
	return &InvalidInit{position{pos}, errorExpression}
}

func mustTemp(t gen.Temp) *TempDecl {
	decl, ok := t.(*TempDecl)
	if !ok {
		panic(fmt.Sprintf("semtree: foreign temp handle %T", t))
	}

	return decl
}
