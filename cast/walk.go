package cast

// Walk performs a pre-order traversal of expr, calling visit on every node
// including expr itself. If visit returns false for a node, that node's
// children are not visited (but traversal continues with siblings at the
// call site). This is the structural replacement for the original
// transformer's ad hoc `_NodeFinder` NodeVisitor subclasses: callers pass a
// predicate closure instead of subclassing a visitor.
func Walk(expr Expr, visit func(Expr) bool) {
	if expr == nil || !visit(expr) {
		return
	}
	switch n := expr.(type) {
	case *Ident, *Constant, *StringLiteral:
		// leaves
	case *ArrayRef:
		Walk(n.Index, visit)
	case *BinaryOp:
		Walk(n.Left, visit)
		Walk(n.Right, visit)
	case *UnaryOp:
		Walk(n.Operand, visit)
	case *TernaryOp:
		Walk(n.Cond, visit)
		Walk(n.IfTrue, visit)
		Walk(n.IfFalse, visit)
	case *Call:
		for _, a := range n.Args {
			Walk(a, visit)
		}
	}
}

// Find returns every subexpression of expr (including expr) for which
// match returns true. Matching subtrees are not descended into further.
func Find(expr Expr, match func(Expr) bool) []Expr {
	var found []Expr
	Walk(expr, func(n Expr) bool {
		if match(n) {
			found = append(found, n)
			return false
		}
		return true
	})
	return found
}

// Contains reports whether expr contains any subexpression matching match.
func Contains(expr Expr, match func(Expr) bool) bool {
	found := false
	Walk(expr, func(n Expr) bool {
		if found {
			return false
		}
		if match(n) {
			found = true
			return false
		}
		return true
	})
	return found
}
