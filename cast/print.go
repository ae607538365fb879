package cast

import (
	"fmt"
	"strings"
)

// SprintExpr renders expr as C source text. Used by the unparser and by
// diagnostics that need to show an expression inline.
func SprintExpr(expr Expr) string {
	var sb strings.Builder
	writeExpr(&sb, expr)
	return sb.String()
}

func writeExpr(sb *strings.Builder, expr Expr) {
	switch n := expr.(type) {
	case nil:
		return
	case *Ident:
		sb.WriteString(n.Name)
	case *Constant:
		sb.WriteString(n.Value)
	case *StringLiteral:
		fmt.Fprintf(sb, "%q", n.Value)
	case *ArrayRef:
		sb.WriteString(n.Name)
		sb.WriteByte('[')
		writeExpr(sb, n.Index)
		sb.WriteByte(']')
	case *BinaryOp:
		sb.WriteByte('(')
		writeExpr(sb, n.Left)
		sb.WriteByte(' ')
		sb.WriteString(n.Op)
		sb.WriteByte(' ')
		writeExpr(sb, n.Right)
		sb.WriteByte(')')
	case *UnaryOp:
		sb.WriteString(n.Op)
		writeExpr(sb, n.Operand)
	case *TernaryOp:
		sb.WriteByte('(')
		writeExpr(sb, n.Cond)
		sb.WriteString(" ? ")
		writeExpr(sb, n.IfTrue)
		sb.WriteString(" : ")
		writeExpr(sb, n.IfFalse)
		sb.WriteByte(')')
	case *Call:
		sb.WriteString(n.Name)
		sb.WriteByte('(')
		for i, a := range n.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeExpr(sb, a)
		}
		sb.WriteByte(')')
	}
}
