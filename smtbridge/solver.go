package smtbridge

import "math"

const epsilon = 1e-9

// Satisfiable reports whether the conjunction of constraints has a real
// solution, decided by Gaussian elimination of equalities followed by
// Fourier–Motzkin elimination of the remaining inequalities.
func Satisfiable(constraints []Constraint) bool {
	cs := make([]Constraint, len(constraints))
	copy(cs, constraints)

	cs = eliminateEqualities(cs)
	if cs == nil {
		return false // an equality reduced to a nonzero constant
	}

	atoms := collectAtoms(cs)
	for _, atom := range atoms {
		var next []Constraint
		var withAtom []Constraint
		for _, c := range cs {
			if c.Term.Coeffs[atom] == 0 {
				next = append(next, c)
			} else {
				withAtom = append(withAtom, c)
			}
		}
		combined, ok := eliminate(atom, withAtom)
		if !ok {
			return false
		}
		cs = append(next, combined...)
	}

	for _, c := range cs {
		if !c.Term.IsConstant() {
			continue
		}
		if !holds(c.Term.Const, c.Op) {
			return false
		}
	}
	return true
}

// eliminateEqualities repeatedly picks an equality with a nonzero
// coefficient on some atom, solves for that atom, and substitutes it
// throughout the remaining constraints. Returns nil if an equality
// collapses to a nonzero constant (immediate contradiction).
func eliminateEqualities(cs []Constraint) []Constraint {
	for {
		idx, atom, coeff := findEquality(cs)
		if idx < 0 {
			return cs
		}
		eq := cs[idx]
		rest := append(append([]Constraint{}, cs[:idx]...), cs[idx+1:]...)

		// atom = -(eq.Term - coeff*atom) / coeff
		residual := eq.Term.Sub(VarTerm(atom).Scale(coeff))
		substitution := residual.Scale(-1 / coeff)

		if residual.IsConstant() && coeff == 0 {
			if math.Abs(eq.Term.Const) > epsilon {
				return nil
			}
			cs = rest
			continue
		}

		next := make([]Constraint, len(rest))
		for i, c := range rest {
			k := c.Term.Coeffs[atom]
			if k == 0 {
				next[i] = c
				continue
			}
			replaced := c.Term.Sub(VarTerm(atom).Scale(k)).Add(substitution.Scale(k))
			next[i] = Constraint{Term: replaced, Op: c.Op}
		}
		cs = next
	}
}

func findEquality(cs []Constraint) (idx int, atom Atom, coeff float64) {
	for i, c := range cs {
		if c.Op != EQ {
			continue
		}
		for _, a := range c.Term.Atoms() {
			return i, a, c.Term.Coeffs[a]
		}
	}
	return -1, "", 0
}

func collectAtoms(cs []Constraint) []Atom {
	seen := map[Atom]bool{}
	var out []Atom
	for _, c := range cs {
		for _, a := range c.Term.Atoms() {
			if !seen[a] {
				seen[a] = true
				out = append(out, a)
			}
		}
	}
	return out
}

// eliminate removes atom from the constraint set withAtom via classic
// Fourier–Motzkin pairing of lower and upper bounds. It always returns
// ok=true; contradictions among the resulting constraints are left for
// the caller to detect.
func eliminate(atom Atom, withAtom []Constraint) ([]Constraint, bool) {
	var lower, upper []Constraint // coeff<0 (lower bound on atom), coeff>0 (upper bound)
	for _, c := range withAtom {
		coeff := c.Term.Coeffs[atom]
		switch {
		case coeff > 0:
			upper = append(upper, c)
		case coeff < 0:
			lower = append(lower, c)
		}
	}

	var out []Constraint
	for _, u := range upper {
		for _, l := range lower {
			uc := u.Term.Coeffs[atom]
			lc := l.Term.Coeffs[atom]
			// u: uc*atom + U <= 0  => atom <= -U/uc
			// l: lc*atom + L <= 0, lc<0 => atom >= -L/lc
			// combine: -L/lc <= atom <= -U/uc  => -L*uc >= -U*lc (uc>0, lc<0 scaling care)
			combinedTerm := u.Term.Scale(-lc).Add(l.Term.Scale(uc))
			op := LE
			if u.Op == LT || l.Op == LT {
				op = LT
			}
			if u.Op == EQ || l.Op == EQ {
				// equalities on this atom should have been removed by
				// eliminateEqualities already; defensive fallback only.
				op = u.Op
			}
			out = append(out, Constraint{Term: combinedTerm, Op: op})
		}
	}
	return out, true
}

func holds(v float64, op Op) bool {
	switch op {
	case LE:
		return v <= epsilon
	case LT:
		return v < -epsilon
	default:
		return math.Abs(v) <= epsilon
	}
}
