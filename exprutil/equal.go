// Package exprutil provides the structural building blocks the rest of the
// transformer shares when it manipulates distance expressions: equality,
// ternary-conditioned substitution, and a conservative algebraic
// simplifier (ternary-factoring, constant folding, absolute-value
// folding). Every transformation here is sound (result equivalent over the
// reals) and total (falls back to the original expression on failure),
// per §4.1.
package exprutil

import "github.com/shadowdp-go/shadowdp/cast"

// Equal reports whether two expression trees have identical shape and leaf
// values — the structural equality §4.1 requires for condition matching in
// typeenv.Apply and for the distance-dependence check in transform.
//
// Equal is reflexive, symmetric and transitive by construction (it is a
// straightforward recursive structural comparison), matching the
// round-trip property required by §8.
func Equal(a, b cast.Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *cast.Ident:
		y, ok := b.(*cast.Ident)
		return ok && x.Name == y.Name
	case *cast.Constant:
		y, ok := b.(*cast.Constant)
		return ok && x.Kind == y.Kind && x.Value == y.Value
	case *cast.StringLiteral:
		y, ok := b.(*cast.StringLiteral)
		return ok && x.Value == y.Value
	case *cast.ArrayRef:
		y, ok := b.(*cast.ArrayRef)
		return ok && x.Name == y.Name && Equal(x.Index, y.Index)
	case *cast.BinaryOp:
		y, ok := b.(*cast.BinaryOp)
		return ok && x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *cast.UnaryOp:
		y, ok := b.(*cast.UnaryOp)
		return ok && x.Op == y.Op && Equal(x.Operand, y.Operand)
	case *cast.TernaryOp:
		y, ok := b.(*cast.TernaryOp)
		return ok && Equal(x.Cond, y.Cond) && Equal(x.IfTrue, y.IfTrue) && Equal(x.IfFalse, y.IfFalse)
	case *cast.Call:
		y, ok := b.(*cast.Call)
		if !ok || x.Name != y.Name || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// IsZero reports whether expr is the constant literal 0.
func IsZero(expr cast.Expr) bool {
	c, ok := expr.(*cast.Constant)
	return ok && (c.Value == "0" || c.Value == "0.0")
}
