package exprutil

import (
	"strconv"
	"strings"

	"github.com/shadowdp-go/shadowdp/cast"
)

// asNumber parses a *cast.Constant into a float64, reporting ok=false for
// anything else (including nil, meaning "no fold applies here").
func asNumber(expr cast.Expr) (float64, bool) {
	c, ok := expr.(*cast.Constant)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(c.Value, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// numberExpr renders v back to a *cast.Constant, preferring an integer
// literal when v has no fractional part.
func numberExpr(v float64, pos cast.Pos) cast.Expr {
	if v == float64(int64(v)) {
		return &cast.Constant{Value: strconv.FormatInt(int64(v), 10), Kind: "int", Pos: pos}
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return &cast.Constant{Value: s, Kind: "float", Pos: pos}
}

// foldConstant evaluates a binary arithmetic or comparison operator over
// two constants, matching the operator set §3 restricts expressions to.
func foldConstant(op string, l, r float64) (float64, bool) {
	switch op {
	case "+":
		return l + r, true
	case "-":
		return l - r, true
	case "*":
		return l * r, true
	case "/":
		if r == 0 {
			return 0, false
		}
		return l / r, true
	case ">":
		return boolAsNumber(l > r), true
	case ">=":
		return boolAsNumber(l >= r), true
	case "<":
		return boolAsNumber(l < r), true
	case "<=":
		return boolAsNumber(l <= r), true
	case "==":
		return boolAsNumber(l == r), true
	case "&&":
		return boolAsNumber(l != 0 && r != 0), true
	case "||":
		return boolAsNumber(l != 0 || r != 0), true
	default:
		return 0, false
	}
}

func boolAsNumber(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// FoldAbs simplifies `Abs(x)` (rendered by the transformer as
// `(x) < 0 ? -(x) : (x)`, matching the original's `#define Abs(x)` macro)
// to a constant when x is a numeric constant, and otherwise returns the
// literal ternary expansion, whatever the shape of x.
func FoldAbs(x cast.Expr, pos cast.Pos) cast.Expr {
	if v, ok := asNumber(x); ok {
		if v < 0 {
			v = -v
		}
		return numberExpr(v, pos)
	}
	neg := Simplify(&cast.UnaryOp{Op: "-", Operand: x, Pos: pos})
	cond := &cast.BinaryOp{Op: "<", Left: x, Right: &cast.Constant{Value: "0", Kind: "int", Pos: pos}, Pos: pos}
	return &cast.TernaryOp{Cond: cond, IfTrue: neg, IfFalse: x, Pos: pos}
}

// IsAbsCall reports whether name (case-insensitively) names the Abs helper
// the instrumented header defines, matching the original's `#define
// Abs(x) ((x) < 0 ? -(x) : (x))`.
func IsAbsCall(name string) bool {
	return strings.EqualFold(name, "Abs")
}
