package exprutil

import "github.com/shadowdp-go/shadowdp/cast"

// ApplyCondition rewrites every ternary subtree of expr whose condition is
// structurally equal to cond, replacing it with its IfTrue branch when
// isTrue is true, or its IfFalse branch otherwise. This is the
// "condition-specialization" operation typeenv.Apply performs over every
// variable's distance after a branch is taken — e.g. a distance
// `q[i]+eta > best ? 2 : 0` recorded against the branch condition
// `q[i]+eta > best` simplifies to the constant `2` inside the true branch.
//
// Any variable whose distance does not mention cond is returned unchanged,
// matching the invariant §8 requires of typeenv.Apply.
func ApplyCondition(expr cast.Expr, cond cast.Expr, isTrue bool) cast.Expr {
	if expr == nil {
		return nil
	}
	if t, ok := expr.(*cast.TernaryOp); ok && Equal(t.Cond, cond) {
		if isTrue {
			return ApplyCondition(t.IfTrue, cond, isTrue)
		}
		return ApplyCondition(t.IfFalse, cond, isTrue)
	}

	switch n := expr.(type) {
	case *cast.Ident, *cast.Constant, *cast.StringLiteral:
		return expr
	case *cast.ArrayRef:
		return &cast.ArrayRef{Name: n.Name, Index: ApplyCondition(n.Index, cond, isTrue), Pos: n.Pos}
	case *cast.BinaryOp:
		return &cast.BinaryOp{
			Op:    n.Op,
			Left:  ApplyCondition(n.Left, cond, isTrue),
			Right: ApplyCondition(n.Right, cond, isTrue),
			Pos:   n.Pos,
		}
	case *cast.UnaryOp:
		return &cast.UnaryOp{Op: n.Op, Operand: ApplyCondition(n.Operand, cond, isTrue), Pos: n.Pos}
	case *cast.TernaryOp:
		return &cast.TernaryOp{
			Cond:    ApplyCondition(n.Cond, cond, isTrue),
			IfTrue:  ApplyCondition(n.IfTrue, cond, isTrue),
			IfFalse: ApplyCondition(n.IfFalse, cond, isTrue),
			Pos:     n.Pos,
		}
	case *cast.Call:
		args := make([]cast.Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = ApplyCondition(a, cond, isTrue)
		}
		return &cast.Call{Name: n.Name, Args: args, Pos: n.Pos}
	default:
		return expr
	}
}

// SubstituteVar replaces every occurrence of the identifier named name in
// expr with replacement. Used when materializing a sampled variable's
// η-distance annotation against the current environment (§4.7 Declaration
// rule, step (e)).
func SubstituteVar(expr cast.Expr, name string, replacement cast.Expr) cast.Expr {
	if expr == nil {
		return nil
	}
	switch n := expr.(type) {
	case *cast.Ident:
		if n.Name == name {
			return cast.CloneExpr(replacement)
		}
		return n
	case *cast.Constant, *cast.StringLiteral:
		return expr
	case *cast.ArrayRef:
		if n.Name == name {
			// Substituting the base of an array reference is not
			// meaningful in this grammar (arrays are never scalars);
			// leave it untouched and only substitute the subscript.
		}
		return &cast.ArrayRef{Name: n.Name, Index: SubstituteVar(n.Index, name, replacement), Pos: n.Pos}
	case *cast.BinaryOp:
		return &cast.BinaryOp{
			Op:    n.Op,
			Left:  SubstituteVar(n.Left, name, replacement),
			Right: SubstituteVar(n.Right, name, replacement),
			Pos:   n.Pos,
		}
	case *cast.UnaryOp:
		return &cast.UnaryOp{Op: n.Op, Operand: SubstituteVar(n.Operand, name, replacement), Pos: n.Pos}
	case *cast.TernaryOp:
		return &cast.TernaryOp{
			Cond:    SubstituteVar(n.Cond, name, replacement),
			IfTrue:  SubstituteVar(n.IfTrue, name, replacement),
			IfFalse: SubstituteVar(n.IfFalse, name, replacement),
			Pos:     n.Pos,
		}
	case *cast.Call:
		args := make([]cast.Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = SubstituteVar(a, name, replacement)
		}
		return &cast.Call{Name: n.Name, Args: args, Pos: n.Pos}
	default:
		return expr
	}
}
