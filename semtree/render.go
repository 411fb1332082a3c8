package semtree

import (
	"fmt"
	"strings"
)

// Render returns a compact textual form of a semantic tree expression, used
// by diagnostics, the CLI dump command and test assertions.
func Render(e Expr) string {
	var sb strings.Builder

	render(&sb, e)

	return sb.String()
}

// RenderInitializer renders an initializer-list entry.
func RenderInitializer(init Initializer) string {
	switch n := init.(type) {
	case *FieldInit:
		return fmt.Sprintf("init(%s = %s)", n.Name, Render(n.Value))
	case *InvalidInit:
		return fmt.Sprintf("invalid-init(%s)", Render(n.Err))
	default:
		return fmt.Sprintf("<unknown initializer %T>", init)
	}
}

func render(sb *strings.Builder, e Expr) {
	switch n := e.(type) {
	case *This:
		sb.WriteString("this")
	case *IntLit:
		fmt.Fprintf(sb, "%d", n.Value)
	case *StrLit:
		fmt.Fprintf(sb, "%q", n.Value)
	case *BoolLit:
		fmt.Fprintf(sb, "%t", n.Value)
	case *NullLit:
		sb.WriteString("null")
	case *VarGet:
		fmt.Fprintf(sb, "%s", n.Name)
	case *VarSet:
		fmt.Fprintf(sb, "(%s = %s)", n.Name, Render(n.Value))
	case *PropertyGet:
		fmt.Fprintf(sb, "%s.%s", Render(n.Receiver), n.Name)
	case *PropertySet:
		fmt.Fprintf(sb, "(%s.%s = %s)", Render(n.Receiver), n.Name, Render(n.Value))
	case *ThisPropertyGet:
		fmt.Fprintf(sb, "this.%s", n.Name)
	case *ThisPropertySet:
		fmt.Fprintf(sb, "(this.%s = %s)", n.Name, Render(n.Value))
	case *SuperPropertyGet:
		fmt.Fprintf(sb, "super.%s", n.Name)
	case *SuperPropertySet:
		fmt.Fprintf(sb, "(super.%s = %s)", n.Name, Render(n.Value))
	case *IndexGet:
		fmt.Fprintf(sb, "%s[%s]", Render(n.Receiver), Render(n.Index))
	case *IndexSet:
		fmt.Fprintf(sb, "(%s[%s] = %s)", Render(n.Receiver), Render(n.Index), Render(n.Value))
	case *ThisIndexGet:
		fmt.Fprintf(sb, "this[%s]", Render(n.Index))
	case *ThisIndexSet:
		fmt.Fprintf(sb, "(this[%s] = %s)", Render(n.Index), Render(n.Value))
	case *SuperIndexGet:
		fmt.Fprintf(sb, "super[%s]", Render(n.Index))
	case *SuperIndexSet:
		fmt.Fprintf(sb, "(super[%s] = %s)", Render(n.Index), Render(n.Value))
	case *BinaryOp:
		fmt.Fprintf(sb, "(%s %s %s)", Render(n.Left), n.Op, Render(n.Right))
	case *Invocation:
		op := "."
		if n.NullAware {
			op = "?."
		}

		fmt.Fprintf(sb, "%s%s%s(%s)", Render(n.Receiver), op, n.Name, renderArgs(n.Args))
	case *SuperInvocation:
		fmt.Fprintf(sb, "super.%s(%s)", n.Name, renderArgs(n.Args))
	case *TempRead:
		fmt.Fprintf(sb, "t%d", n.Decl.ID)
	case *Let:
		fmt.Fprintf(sb, "(let t%d = %s in %s)", n.Decl.ID, Render(n.Decl.Init), Render(n.Body))
	case *NullGuard:
		fmt.Fprintf(sb, "(let t%d = %s in t%d == null ? null : %s)", n.Decl.ID, Render(n.Decl.Init), n.Decl.ID, Render(n.Body))
	case *IfNull:
		fmt.Fprintf(sb, "(%s ?? %s)", Render(n.Left), Render(n.Right))
	case *NoSuchMethod:
		fmt.Fprintf(sb, "throw-no-such-method(%s, %s, [%s])", Render(n.Receiver), n.Name, renderArgs(n.Args))
	case *Invalid:
		fmt.Fprintf(sb, "invalid(%q)", n.Message)
	default:
		fmt.Fprintf(sb, "<unknown %T>", e)
	}
}

func renderArgs(args *Arguments) string {
	if args == nil {
		return ""
	}

	parts := make([]string, len(args.Positional))
	for i, a := range args.Positional {
		parts[i] = Render(a)
	}

	return strings.Join(parts, ", ")
}
