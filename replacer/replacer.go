// Package replacer builds the aligned or shadow version of an expression
// — e^aligned or e^shadow in the paper's notation — by rewriting every
// leaf identifier and array reference into "itself plus its distance".
//
// Grounded directly on _ExpressionReplacer in core.py. The original
// mutates the AST in place and special-cases the "distance is the
// literal 0" case to skip the rewrite entirely, and the "distance is
// unknown (*)" case to reference a synthesized distance variable instead
// of a literal addend; this port keeps both optimizations but returns a
// new tree rather than mutating shared nodes, matching this module's
// cast package being built for structural sharing between Γ snapshots.
package replacer

import (
	"fmt"

	"github.com/shadowdp-go/shadowdp/cast"
	"github.com/shadowdp-go/shadowdp/distgen"
	"github.com/shadowdp-go/shadowdp/exprutil"
	"github.com/shadowdp-go/shadowdp/typeenv"
)

// Side selects which of a variable's two distances Replace projects.
type Side int

const (
	Aligned Side = iota
	Shadow
)

// Replace rewrites every free identifier and array reference in expr to
// "itself plus its distance" on the requested side, per the e^aligned /
// e^shadow projection the paper's shadow-branch synthesis and
// postcondition generation both need. An error is returned for leaf
// references to variables with no recorded distance, and for expression
// shapes other than identifiers, array references, constants, string
// literals, and unary, binary and ternary operators (for example a
// function call).
func Replace(expr cast.Expr, env *typeenv.Env, side Side) (cast.Expr, error) {
	switch n := expr.(type) {
	case *cast.Ident:
		return replaceLeaf(n, n.Name, env, side)
	case *cast.ArrayRef:
		return replaceLeaf(n, n.Name, env, side)
	case *cast.Constant, *cast.StringLiteral:
		return expr, nil
	case *cast.BinaryOp:
		left, err := Replace(n.Left, env, side)
		if err != nil {
			return nil, err
		}
		right, err := Replace(n.Right, env, side)
		if err != nil {
			return nil, err
		}
		return &cast.BinaryOp{Op: n.Op, Left: left, Right: right, Pos: n.Pos}, nil
	case *cast.UnaryOp:
		operand, err := Replace(n.Operand, env, side)
		if err != nil {
			return nil, err
		}
		return &cast.UnaryOp{Op: n.Op, Operand: operand, Pos: n.Pos}, nil
	case *cast.TernaryOp:
		cond, err := Replace(n.Cond, env, side)
		if err != nil {
			return nil, err
		}
		ifTrue, err := Replace(n.IfTrue, env, side)
		if err != nil {
			return nil, err
		}
		ifFalse, err := Replace(n.IfFalse, env, side)
		if err != nil {
			return nil, err
		}
		return &cast.TernaryOp{Cond: cond, IfTrue: ifTrue, IfFalse: ifFalse, Pos: n.Pos}, nil
	default:
		return nil, fmt.Errorf("replacer: unsupported expression shape %T", expr)
	}
}

// replaceLeaf implements _ExpressionReplacer._replace for a single
// identifier or array-reference leaf node.
func replaceLeaf(leaf cast.Expr, name string, env *typeenv.Env, side Side) (cast.Expr, error) {
	aligned, shadow, ok := env.Get(name)
	if !ok {
		return nil, fmt.Errorf("replacer: variable %q has no recorded distance", name)
	}
	distance := aligned
	if side == Shadow {
		distance = shadow
	}

	if !distance.Star && exprutil.IsZero(distance.Expr) {
		return leaf, nil
	}

	var addend cast.Expr
	if distance.Star {
		auxName := distgen.AlignedAuxName(name)
		if side == Shadow {
			auxName = distgen.ShadowAuxName(name)
		}
		if ref, isArray := leaf.(*cast.ArrayRef); isArray {
			addend = &cast.ArrayRef{Name: auxName, Index: ref.Index, Pos: ref.Pos}
		} else {
			addend = &cast.Ident{Name: auxName}
		}
	} else {
		addend = cast.CloneExpr(distance.Expr)
	}

	return &cast.BinaryOp{Op: "+", Left: leaf, Right: addend}, nil
}
