// Package typeenv implements the ordered type environment Γ the
// transformer threads through every statement visitor: for each in-scope
// variable it records an (aligned, shadow) distance pair, either an
// expression over the program's parameters or the "unknown" sentinel *
// produced when a loop's fixed-point analysis or a divergent branch merge
// can no longer state a precise bound.
//
// Grounded on typesystem.py's TypeSystem class, with the string-keyed
// OrderedDict replaced by an explicit insertion-ordered slice+map pair —
// the same pattern schema/catalog.go uses for its descriptor registry —
// since iteration order over Γ's variables must match declaration order
// for the generated preconditions to read the way §4.7 and the verifier
// backend expect.
package typeenv

import (
	"github.com/shadowdp-go/shadowdp/cast"
	"github.com/shadowdp-go/shadowdp/exprutil"
)

// Distance is a variable's aligned or shadow distance: either a concrete
// expression over the function's parameters, or Star, meaning "no useful
// bound is known" (rendered as `*` in diagnostics, matching the original).
type Distance struct {
	Star bool
	Expr cast.Expr
}

// Zero is the distance of a variable whose two runs are always identical.
var Zero = Distance{Expr: &cast.Constant{Value: "0", Kind: "int"}}

// StarDistance is the "unknown distance" sentinel.
var StarDistance = Distance{Star: true}

// Equal reports whether two distances denote the same bound: both Star,
// or both concrete expressions that are structurally equal.
func (d Distance) Equal(other Distance) bool {
	if d.Star || other.Star {
		return d.Star == other.Star
	}
	return exprutil.Equal(d.Expr, other.Expr)
}

// clone returns a deep copy of d, safe to store in an independently
// mutated environment.
func (d Distance) clone() Distance {
	if d.Star {
		return StarDistance
	}
	return Distance{Expr: cast.CloneExpr(d.Expr)}
}

// String renders d for diagnostics: "*" for Star, else the C source text
// of the underlying expression.
func (d Distance) String() string {
	if d.Star {
		return "*"
	}
	return cast.SprintExpr(d.Expr)
}
