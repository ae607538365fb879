// Package distgen computes the aligned and shadow distance of an
// arbitrary expression from the distances of its free variables, the
// core bookkeeping step behind T-Asgn and every variable's initializer.
//
// Grounded directly on _DistanceGenerator in core.py: a constant
// contributes no distance, an identifier's distance is looked up in Γ, and
// a binary operator's distance is the same operator applied pairwise to
// its operands' aligned and shadow distances, simplified afterward.
// sympy.simplify has no Go equivalent in the retrieval pack, so
// simplification goes through exprutil.Simplify's conservative algebraic
// rules instead — sound but less aggressive; anything it can't fold is
// left as a literal expression tree rather than a best-effort string.
package distgen

import (
	"fmt"

	"github.com/shadowdp-go/shadowdp/cast"
	"github.com/shadowdp-go/shadowdp/exprutil"
	"github.com/shadowdp-go/shadowdp/typeenv"
)

// AlignedPrefix and ShadowPrefix name the auxiliary tracking variables
// synthesized when a referenced variable's distance is Star — the
// materialized "unknown distance" placeholders, deterministically named
// `__ALIGNED_DIST_<name>` / `__SHADOW_DIST_<name>` per the star-variable
// naming rule (§3's DATA MODEL section), replacing real identifiers for
// the AST nodes the original templated as Python strings.
const (
	AlignedPrefix = "__ALIGNED_DIST_"
	ShadowPrefix  = "__SHADOW_DIST_"
)

// AlignedAuxName and ShadowAuxName build the synthetic identifier
// standing in for a variable's unknown distance.
func AlignedAuxName(name string) string { return AlignedPrefix + name }
func ShadowAuxName(name string) string  { return ShadowPrefix + name }

// Generate computes (aligned, shadow) for expr under env. It handles
// constants, identifiers, array references, binary and unary operators;
// any other shape, including a ternary conditional, a string literal or
// a function call, returns an error, as does a variable with no recorded
// distance.
func Generate(expr cast.Expr, env *typeenv.Env) (aligned, shadow cast.Expr, err error) {
	switch n := expr.(type) {
	case *cast.Constant:
		zero := &cast.Constant{Value: "0", Kind: "int", Pos: n.Pos}
		return zero, zero, nil

	case *cast.Ident:
		a, s, ok := env.Get(n.Name)
		if !ok {
			return nil, nil, fmt.Errorf("distgen: variable %q has no recorded distance", n.Name)
		}
		return resolveAux(a, AlignedAuxName(n.Name), n.Pos), resolveAux(s, ShadowAuxName(n.Name), n.Pos), nil

	case *cast.ArrayRef:
		a, s, ok := env.Get(n.Name)
		if !ok {
			return nil, nil, fmt.Errorf("distgen: array %q has no recorded distance", n.Name)
		}
		return resolveAuxArray(a, AlignedAuxName(n.Name), n.Index, n.Pos),
			resolveAuxArray(s, ShadowAuxName(n.Name), n.Index, n.Pos), nil

	case *cast.BinaryOp:
		leftAligned, leftShadow, err := Generate(n.Left, env)
		if err != nil {
			return nil, nil, err
		}
		rightAligned, rightShadow, err := Generate(n.Right, env)
		if err != nil {
			return nil, nil, err
		}
		aligned = exprutil.Simplify(&cast.BinaryOp{Op: n.Op, Left: leftAligned, Right: rightAligned, Pos: n.Pos})
		shadow = exprutil.Simplify(&cast.BinaryOp{Op: n.Op, Left: leftShadow, Right: rightShadow, Pos: n.Pos})
		return aligned, shadow, nil

	case *cast.UnaryOp:
		operandAligned, operandShadow, err := Generate(n.Operand, env)
		if err != nil {
			return nil, nil, err
		}
		aligned = exprutil.Simplify(&cast.UnaryOp{Op: n.Op, Operand: operandAligned, Pos: n.Pos})
		shadow = exprutil.Simplify(&cast.UnaryOp{Op: n.Op, Operand: operandShadow, Pos: n.Pos})
		return aligned, shadow, nil

	default:
		return nil, nil, fmt.Errorf("distgen: unsupported expression shape %T", expr)
	}
}

// resolveAux returns d's expression, or a synthetic identifier named aux
// when d is the Star sentinel.
func resolveAux(d typeenv.Distance, aux string, pos cast.Pos) cast.Expr {
	if d.Star {
		return &cast.Ident{Name: aux, Pos: pos}
	}
	return d.Expr
}

// resolveAuxArray returns d's expression, or a synthetic array reference
// aux[index] when d is the Star sentinel — mirroring the original's
// `__ALIGNED_DIST_name[subscript]` placeholder.
func resolveAuxArray(d typeenv.Distance, aux string, index cast.Expr, pos cast.Pos) cast.Expr {
	if d.Star {
		return &cast.ArrayRef{Name: aux, Index: index, Pos: pos}
	}
	return d.Expr
}
