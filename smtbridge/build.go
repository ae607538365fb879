package smtbridge

import (
	"fmt"

	"github.com/shadowdp-go/shadowdp/cast"
)

// BuildTerm converts expr into an affine Term over real-valued atoms: an
// Ident becomes its own atom, an ArrayRef becomes an atom named by its
// rendered source text (`q[i]`, `__ALIGNED_DIST_q[i]`, ...),
// a Constant becomes a literal, and +, -, unary minus, and
// constant-scalar * combine affinely. Anything outside that fragment
// (atom*atom, /, comparisons, ternaries) makes BuildTerm fail — the
// transformer falls back to its conservative default (assume divergence,
// reject the sampling annotation) whenever that happens, exactly as it
// does when a shadow distance is already Star.
func BuildTerm(expr cast.Expr) (Term, error) {
	switch n := expr.(type) {
	case *cast.Constant:
		var v float64
		if _, err := fmt.Sscanf(n.Value, "%g", &v); err != nil {
			return Term{}, fmt.Errorf("smtbridge: malformed constant %q", n.Value)
		}
		return ConstTerm(v), nil

	case *cast.Ident:
		return VarTerm(Atom(n.Name)), nil

	case *cast.ArrayRef:
		return VarTerm(Atom(cast.SprintExpr(n))), nil

	case *cast.UnaryOp:
		inner, err := BuildTerm(n.Operand)
		if err != nil {
			return Term{}, err
		}
		switch n.Op {
		case "-":
			return inner.Scale(-1), nil
		case "+":
			return inner, nil
		default:
			return Term{}, fmt.Errorf("smtbridge: unsupported unary operator %q", n.Op)
		}

	case *cast.BinaryOp:
		left, err := BuildTerm(n.Left)
		if err != nil {
			return Term{}, err
		}
		right, err := BuildTerm(n.Right)
		if err != nil {
			return Term{}, err
		}
		switch n.Op {
		case "+":
			return left.Add(right), nil
		case "-":
			return left.Sub(right), nil
		case "*":
			if left.IsConstant() {
				return right.Scale(left.Const), nil
			}
			if right.IsConstant() {
				return left.Scale(right.Const), nil
			}
			return Term{}, fmt.Errorf("smtbridge: non-affine product of two non-constant terms")
		default:
			return Term{}, fmt.Errorf("smtbridge: unsupported binary operator %q in affine context", n.Op)
		}

	default:
		return Term{}, fmt.Errorf("smtbridge: unsupported expression shape %T", expr)
	}
}
