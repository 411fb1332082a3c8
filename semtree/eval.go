package semtree

import (
	"errors"
	"fmt"

	gen "github.com/yuzulang/yuzu/generator"
)

// Sentinel errors
var (
	ErrDivisionByZero     = errors.New("division by zero")
	ErrUnsupportedOperand = errors.New("unsupported operand types")
	ErrNotAnObject        = errors.New("receiver is not an object")
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrNotInvocable       = errors.New("value is not invocable")
)

// Value is a runtime value of the reference evaluator: nil, int64, string,
// bool, *Object, or Func.
type Value any

// Func is an invocable runtime value.
type Func func(args []Value) (Value, error)

// Object is the evaluator's object model: named fields, indexable elements
// and callable methods.
type Object struct {
	Fields  map[string]Value
	Elems   []Value
	Methods map[string]Func
}

// NoSuchMethodError is the runtime error thrown by synthesized
// no-such-method nodes and by failed dynamic dispatch.
type NoSuchMethodError struct {
	Name     gen.Name
	IsSuper  bool
	IsGetter bool
	IsSetter bool
	IsStatic bool
	Extra    *gen.LocatedMessage
}

func (e *NoSuchMethodError) Error() string {
	kind := "method"

	switch {
	case e.IsGetter:
		kind = "getter"
	case e.IsSetter:
		kind = "setter"
	}

	if e.IsSuper {
		return fmt.Sprintf("NoSuchMethodError: no applicable super %s '%s'", kind, e.Name)
	}

	return fmt.Sprintf("NoSuchMethodError: no applicable %s '%s'", kind, e.Name)
}

// InvalidExpressionError is thrown when an invalid-expression marker is
// evaluated.
type InvalidExpressionError struct {
	Message string
}

func (e *InvalidExpressionError) Error() string {
	return "invalid expression: " + e.Message
}

// Evaluator executes semantic tree expressions. It records every variable,
// property and index access in Trace, in evaluation order, so tests can
// assert the exactly-once guarantees by observation.
type Evaluator struct {
	Vars  map[gen.Name]Value
	This  *Object
	Super *Object
	Trace []string

	temps map[*TempDecl]Value
}

// NewEvaluator creates an evaluator with an empty variable scope.
func NewEvaluator() *Evaluator {
	return &Evaluator{
		Vars:  map[gen.Name]Value{},
		temps: map[*TempDecl]Value{},
	}
}

func (ev *Evaluator) trace(format string, args ...any) {
	ev.Trace = append(ev.Trace, fmt.Sprintf(format, args...))
}

// Eval evaluates an expression. Runtime throws surface as errors.
func (ev *Evaluator) Eval(e Expr) (Value, error) {
	switch n := e.(type) {
	case *This:
		return ev.This, nil
	case *IntLit:
		return n.Value, nil
	case *StrLit:
		return n.Value, nil
	case *BoolLit:
		return n.Value, nil
	case *NullLit:
		return nil, nil
	case *VarGet:
		ev.trace("get %s", n.Name)

		return ev.Vars[n.Name], nil
	case *VarSet:
		value, err := ev.Eval(n.Value)
		if err != nil {
			return nil, err
		}

		ev.trace("set %s", n.Name)
		ev.Vars[n.Name] = value

		return value, nil
	case *PropertyGet:
		receiver, err := ev.object(n.Receiver)
		if err != nil {
			return nil, err
		}

		ev.trace("get .%s", n.Name)

		return ev.getField(receiver, n.Name)
	case *PropertySet:
		receiver, err := ev.object(n.Receiver)
		if err != nil {
			return nil, err
		}

		value, err := ev.Eval(n.Value)
		if err != nil {
			return nil, err
		}

		ev.trace("set .%s", n.Name)

		if err := ev.setField(receiver, n.Name, value); err != nil {
			return nil, err
		}

		return value, nil
	case *ThisPropertyGet:
		ev.trace("get this.%s", n.Name)

		return ev.getField(ev.This, n.Name)
	case *ThisPropertySet:
		value, err := ev.Eval(n.Value)
		if err != nil {
			return nil, err
		}

		ev.trace("set this.%s", n.Name)

		if err := ev.setField(ev.This, n.Name, value); err != nil {
			return nil, err
		}

		return value, nil
	case *SuperPropertyGet:
		ev.trace("get super.%s", n.Name)

		return ev.getField(ev.Super, n.Name)
	case *SuperPropertySet:
		value, err := ev.Eval(n.Value)
		if err != nil {
			return nil, err
		}

		ev.trace("set super.%s", n.Name)

		if err := ev.setField(ev.Super, n.Name, value); err != nil {
			return nil, err
		}

		return value, nil
	case *IndexGet:
		receiver, err := ev.object(n.Receiver)
		if err != nil {
			return nil, err
		}

		return ev.indexGet(receiver, n.Index)
	case *IndexSet:
		receiver, err := ev.object(n.Receiver)
		if err != nil {
			return nil, err
		}

		return ev.indexSet(receiver, n.Index, n.Value)
	case *ThisIndexGet:
		return ev.indexGet(ev.This, n.Index)
	case *ThisIndexSet:
		return ev.indexSet(ev.This, n.Index, n.Value)
	case *SuperIndexGet:
		return ev.indexGet(ev.Super, n.Index)
	case *SuperIndexSet:
		return ev.indexSet(ev.Super, n.Index, n.Value)
	case *BinaryOp:
		left, err := ev.Eval(n.Left)
		if err != nil {
			return nil, err
		}

		right, err := ev.Eval(n.Right)
		if err != nil {
			return nil, err
		}

		return binaryOp(n.Op, left, right)
	case *Invocation:
		return ev.invoke(n)
	case *SuperInvocation:
		method := ev.Super.Methods[string(n.Name)]
		if method == nil {
			return nil, &NoSuchMethodError{Name: n.Name, IsSuper: true}
		}

		args, err := ev.evalArgs(n.Args)
		if err != nil {
			return nil, err
		}

		ev.trace("call super.%s", n.Name)

		return method(args)
	case *TempRead:
		value, ok := ev.temps[n.Decl]
		if !ok {
			panic(fmt.Sprintf("semtree: temp t%d read before binding", n.Decl.ID))
		}

		return value, nil
	case *Let:
		if err := ev.bindTemp(n.Decl); err != nil {
			return nil, err
		}

		return ev.Eval(n.Body)
	case *NullGuard:
		if err := ev.bindTemp(n.Decl); err != nil {
			return nil, err
		}

		if ev.temps[n.Decl] == nil {
			return nil, nil
		}

		return ev.Eval(n.Body)
	case *IfNull:
		left, err := ev.Eval(n.Left)
		if err != nil {
			return nil, err
		}

		if left != nil {
			return left, nil
		}

		return ev.Eval(n.Right)
	case *NoSuchMethod:
		// Receiver and arguments are still evaluated for their side
		// effects before the throw.
		if _, err := ev.Eval(n.Receiver); err != nil {
			return nil, err
		}

		if _, err := ev.evalArgs(n.Args); err != nil {
			return nil, err
		}

		ev.trace("throw no-such-method %s", n.Name)

		return nil, &NoSuchMethodError{
			Name:     n.Name,
			IsSuper:  n.IsSuper,
			IsGetter: n.IsGetter,
			IsSetter: n.IsSetter,
			IsStatic: n.IsStatic,
			Extra:    n.Extra,
		}
	case *Invalid:
		return nil, &InvalidExpressionError{Message: n.Message}
	default:
		panic(fmt.Sprintf("semtree: unknown expression %T", e))
	}
}

func (ev *Evaluator) bindTemp(decl *TempDecl) error {
	value, err := ev.Eval(decl.Init)
	if err != nil {
		return err
	}

	ev.temps[decl] = value

	return nil
}

func (ev *Evaluator) object(e Expr) (*Object, error) {
	value, err := ev.Eval(e)
	if err != nil {
		return nil, err
	}

	obj, ok := value.(*Object)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotAnObject, value)
	}

	return obj, nil
}

func (ev *Evaluator) getField(obj *Object, name gen.Name) (Value, error) {
	if obj == nil {
		return nil, fmt.Errorf("%w: nil receiver", ErrNotAnObject)
	}

	if value, ok := obj.Fields[string(name)]; ok {
		return value, nil
	}

	if method, ok := obj.Methods[string(name)]; ok {
		return method, nil
	}

	return nil, &NoSuchMethodError{Name: name, IsGetter: true}
}

// setField writes a named field, guarding nil receivers the same way
// getField does. A write through an unset this/super scope is a runtime
// error, not a crash.
func (ev *Evaluator) setField(obj *Object, name gen.Name, value Value) error {
	if obj == nil {
		return fmt.Errorf("%w: nil receiver", ErrNotAnObject)
	}

	if obj.Fields == nil {
		obj.Fields = map[string]Value{}
	}

	obj.Fields[string(name)] = value

	return nil
}

func (ev *Evaluator) indexGet(obj *Object, index Expr) (Value, error) {
	i, err := ev.index(obj, index)
	if err != nil {
		return nil, err
	}

	ev.trace("get [%d]", i)

	return obj.Elems[i], nil
}

func (ev *Evaluator) indexSet(obj *Object, index, value Expr) (Value, error) {
	i, err := ev.index(obj, index)
	if err != nil {
		return nil, err
	}

	v, err := ev.Eval(value)
	if err != nil {
		return nil, err
	}

	ev.trace("set [%d]", i)
	obj.Elems[i] = v

	return v, nil
}

func (ev *Evaluator) index(obj *Object, index Expr) (int64, error) {
	if obj == nil {
		return 0, fmt.Errorf("%w: nil receiver", ErrNotAnObject)
	}

	value, err := ev.Eval(index)
	if err != nil {
		return 0, err
	}

	i, ok := value.(int64)
	if !ok {
		return 0, fmt.Errorf("%w: index %T", ErrUnsupportedOperand, value)
	}

	if i < 0 || int(i) >= len(obj.Elems) {
		return 0, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(obj.Elems))
	}

	return i, nil
}

func (ev *Evaluator) evalArgs(args *Arguments) ([]Value, error) {
	if args == nil {
		return nil, nil
	}

	values := make([]Value, 0, len(args.Positional))

	for _, a := range args.Positional {
		value, err := ev.Eval(a)
		if err != nil {
			return nil, err
		}

		values = append(values, value)
	}

	return values, nil
}

func (ev *Evaluator) invoke(n *Invocation) (Value, error) {
	receiver, err := ev.Eval(n.Receiver)
	if err != nil {
		return nil, err
	}

	if receiver == nil && n.NullAware {
		return nil, nil
	}

	// Invoking a bare function value through the call selector.
	if fn, ok := receiver.(Func); ok && n.Name == gen.CallName {
		args, err := ev.evalArgs(n.Args)
		if err != nil {
			return nil, err
		}

		ev.trace("call <closure>")

		return fn(args)
	}

	obj, ok := receiver.(*Object)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotInvocable, receiver)
	}

	method := obj.Methods[string(n.Name)]

	args, err := ev.evalArgs(n.Args)
	if err != nil {
		return nil, err
	}

	if method == nil {
		return nil, &NoSuchMethodError{Name: n.Name}
	}

	ev.trace("call .%s", n.Name)

	return method(args)
}

func binaryOp(op gen.Name, left, right Value) (Value, error) {
	if l, ok := left.(int64); ok {
		if r, ok := right.(int64); ok {
			switch op {
			case "+":
				return l + r, nil
			case "-":
				return l - r, nil
			case "*":
				return l * r, nil
			case "/":
				if r == 0 {
					return nil, ErrDivisionByZero
				}

				return l / r, nil
			case "==":
				return l == r, nil
			case "!=":
				return l != r, nil
			}
		}
	}

	if l, ok := left.(string); ok {
		if r, ok := right.(string); ok {
			switch op {
			case "+":
				return l + r, nil
			case "==":
				return l == r, nil
			case "!=":
				return l != r, nil
			}
		}
	}

	return nil, fmt.Errorf("%w: %T %s %T", ErrUnsupportedOperand, left, op, right)
}
