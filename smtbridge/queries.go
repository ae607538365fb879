package smtbridge

import (
	"github.com/shadowdp-go/shadowdp/cast"
	"github.com/shadowdp-go/shadowdp/distgen"
)

// Mode selects which adjacency notion the query precondition encodes.
type Mode int

const (
	AllDiffer Mode = iota
	OneDiffer
)

// BuildPrecondition returns the constraints (and, for OneDiffer, the
// disjunctive ordering clauses) encoding §4.5's query-adjacency
// precondition for the given query-array indices, in the order they
// appear in the goal expression being checked. For AllDiffer every index
// independently satisfies -1 <= Δ^A(q[idx]) <= 1 and Δ^S(q[idx]) =
// Δ^A(q[idx]). OneDiffer adds the same base constraints plus, for every
// pair of indices in the supplied order, the clause "Δ^A(q[idx_i]) = 0
// or Δ^A(q[idx_j]) = 0" — the caller is expected to list indices in the
// order they are known to occur (the function's bound loop counter, most
// commonly), since comparing two arbitrary index expressions for a
// static order is undecidable in general. This is a deliberate
// simplification over the original's unconditional "for all j > i" —
// documented in DESIGN.md.
func BuildPrecondition(mode Mode, queryParam string, indices []cast.Expr) (base []Constraint, disjuncts [][]Constraint) {
	alignedAtoms := make([]Atom, len(indices))
	for i, idx := range indices {
		alignedRef := &cast.ArrayRef{Name: distgen.AlignedAuxName(queryParam), Index: idx}
		shadowRef := &cast.ArrayRef{Name: distgen.ShadowAuxName(queryParam), Index: idx}
		alignedAtom := VarTerm(Atom(cast.SprintExpr(alignedRef)))
		shadowAtom := VarTerm(Atom(cast.SprintExpr(shadowRef)))
		alignedAtoms[i] = Atom(cast.SprintExpr(alignedRef))

		base = append(base,
			LessEq(alignedAtom, ConstTerm(1)),
			GreaterEq(alignedAtom, ConstTerm(-1)),
			Eq(shadowAtom, alignedAtom),
		)
	}

	if mode == OneDiffer {
		for i := 0; i < len(alignedAtoms); i++ {
			for j := i + 1; j < len(alignedAtoms); j++ {
				disjuncts = append(disjuncts, []Constraint{
					Eq(VarTerm(alignedAtoms[i]), ConstTerm(0)),
					Eq(VarTerm(alignedAtoms[j]), ConstTerm(0)),
				})
			}
		}
	}
	return base, disjuncts
}

// QueryIndices returns every distinct index expression under which expr
// references the query-array parameter queryParam, in the order they
// first appear — used both to build a precondition's instantiation set
// and to decide which query-index assume statements the transformer must
// emit alongside a materializing assignment.
func QueryIndices(expr cast.Expr, queryParam string) []cast.Expr {
	var out []cast.Expr
	seen := map[string]bool{}
	cast.Walk(expr, func(e cast.Expr) bool {
		ref, ok := e.(*cast.ArrayRef)
		if !ok || ref.Name != queryParam {
			return true
		}
		key := cast.SprintExpr(ref.Index)
		if !seen[key] {
			seen[key] = true
			out = append(out, ref.Index)
		}
		return true
	})
	return out
}

// BranchDiverges decides whether a branch with condition cond diverges
// between the aligned and shadow runs: true unless the precondition
// provably implies cond equals its shadow-side value. If e itself (or
// its shadow projection) can't be expressed as an affine term — most
// commonly because some variable's shadow distance is already Star, per
// §4.5's "divergence is assumed without invoking the solver" rule — this
// returns true without attempting a query.
func BranchDiverges(mode Mode, queryParam string, original, shadow cast.Expr) bool {
	origTerm, err1 := BuildTerm(original)
	shadowTerm, err2 := BuildTerm(shadow)
	if err1 != nil || err2 != nil {
		return true
	}

	indices := append(QueryIndices(original, queryParam), QueryIndices(shadow, queryParam)...)
	base, disjuncts := BuildPrecondition(mode, queryParam, dedupeIndices(indices))

	goal := Eq(origTerm, shadowTerm)
	return !Implies(base, disjuncts, goal)
}

// SamplingInjective decides whether the η-distance function etaExpr
// (a function of the fresh sampling variable eta1 vs. eta2, already
// substituted by the caller into two copies distance1/distance2) is
// injective under the precondition: the precondition must imply that
// eta1 + distance1 = eta2 + distance2 forces eta1 = eta2. Returns false
// (reject) conservatively if the expressions aren't affine.
func SamplingInjective(mode Mode, queryParam string, eta1, eta2 Atom, distance1, distance2 cast.Expr) bool {
	d1, err1 := BuildTerm(distance1)
	d2, err2 := BuildTerm(distance2)
	if err1 != nil || err2 != nil {
		return false
	}

	indices := append(QueryIndices(distance1, queryParam), QueryIndices(distance2, queryParam)...)
	base, disjuncts := BuildPrecondition(mode, queryParam, dedupeIndices(indices))

	premise := Eq(VarTerm(eta1).Add(d1), VarTerm(eta2).Add(d2))
	goal := Eq(VarTerm(eta1), VarTerm(eta2))

	// precondition ⟹ (premise ⟹ goal), i.e. precondition ∧ premise ⟹ goal.
	baseWithPremise := append(append([]Constraint{}, base...), premise)
	return Implies(baseWithPremise, disjuncts, goal)
}

func dedupeIndices(indices []cast.Expr) []cast.Expr {
	var out []cast.Expr
	seen := map[string]bool{}
	for _, idx := range indices {
		key := cast.SprintExpr(idx)
		if !seen[key] {
			seen[key] = true
			out = append(out, idx)
		}
	}
	return out
}
