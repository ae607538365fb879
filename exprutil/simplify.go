package exprutil

import "github.com/shadowdp-go/shadowdp/cast"

// Simplify applies the conservative algebraic simplifier to expr: constant
// folding and ternary-factoring
// (`cond?a:b op cond?c:d -> cond?(a op c):(b op d)`). It does not fold
// absolute values; an Abs call is simplified only in its arguments (the
// separate FoldAbs builds a folded absolute value). It recurses bottom-up
// so children are simplified before their parent is considered.
//
// Simplify never changes the value an expression denotes; when a rule
// doesn't apply it returns the (recursively simplified) input unchanged,
// so callers never need a fallback path of their own.
func Simplify(expr cast.Expr) cast.Expr {
	switch n := expr.(type) {
	case nil, *cast.Ident, *cast.Constant, *cast.StringLiteral:
		return expr
	case *cast.ArrayRef:
		return &cast.ArrayRef{Name: n.Name, Index: Simplify(n.Index), Pos: n.Pos}
	case *cast.UnaryOp:
		operand := Simplify(n.Operand)
		return simplifyUnary(n.Op, operand, n.Pos)
	case *cast.TernaryOp:
		return &cast.TernaryOp{
			Cond:    Simplify(n.Cond),
			IfTrue:  Simplify(n.IfTrue),
			IfFalse: Simplify(n.IfFalse),
			Pos:     n.Pos,
		}
	case *cast.BinaryOp:
		left := Simplify(n.Left)
		right := Simplify(n.Right)
		return simplifyBinary(n.Op, left, right, n.Pos)
	case *cast.Call:
		args := make([]cast.Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = Simplify(a)
		}
		return &cast.Call{Name: n.Name, Args: args, Pos: n.Pos}
	default:
		return expr
	}
}

// simplifyBinary folds constant arithmetic, drops additive/multiplicative
// identities, and factors two ternaries that share a structurally equal
// condition.
func simplifyBinary(op string, left, right cast.Expr, pos cast.Pos) cast.Expr {
	// Ternary factoring: cond?a:b OP cond?c:d -> cond?(a OP c):(b OP d).
	if lt, ok := left.(*cast.TernaryOp); ok {
		if rt, ok := right.(*cast.TernaryOp); ok && Equal(lt.Cond, rt.Cond) {
			return &cast.TernaryOp{
				Cond:    lt.Cond,
				IfTrue:  simplifyBinary(op, lt.IfTrue, rt.IfTrue, pos),
				IfFalse: simplifyBinary(op, lt.IfFalse, rt.IfFalse, pos),
				Pos:     pos,
			}
		}
	}

	if lc, lok := asNumber(left); lok {
		if rc, rok := asNumber(right); rok {
			if v, ok := foldConstant(op, lc, rc); ok {
				return numberExpr(v, pos)
			}
		}
	}

	switch op {
	case "+":
		if IsZero(left) {
			return right
		}
		if IsZero(right) {
			return left
		}
	case "-":
		if IsZero(right) {
			return left
		}
	case "*":
		if isOne(left) {
			return right
		}
		if isOne(right) {
			return left
		}
		if IsZero(left) || IsZero(right) {
			return &cast.Constant{Value: "0", Kind: "int", Pos: pos}
		}
	case "/":
		if isOne(right) {
			return left
		}
	}

	return &cast.BinaryOp{Op: op, Left: left, Right: right, Pos: pos}
}

func simplifyUnary(op string, operand cast.Expr, pos cast.Pos) cast.Expr {
	if op == "-" {
		if c, ok := asNumber(operand); ok {
			return numberExpr(-c, pos)
		}
		// double negation
		if u, ok := operand.(*cast.UnaryOp); ok && u.Op == "-" {
			return u.Operand
		}
	}
	return &cast.UnaryOp{Op: op, Operand: operand, Pos: pos}
}

func isOne(expr cast.Expr) bool {
	c, ok := expr.(*cast.Constant)
	return ok && (c.Value == "1" || c.Value == "1.0")
}
