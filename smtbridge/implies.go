package smtbridge

// Implies reports whether base (a plain conjunction of constraints) together
// with every clause in disjuncts (each clause itself a disjunction of
// alternative constraints — used for the ONE_DIFFER ordering precondition,
// which is naturally an implication "if this index's aligned delta is
// nonzero then every later index's is zero", i.e. a disjunction once
// negated) together entail goal.
//
// Implied by: base ∧ disjuncts ∧ ¬goal is unsatisfiable. Since ¬goal may
// itself be a disjunction (the EQ case), it is folded into the clause list
// before the cartesian enumeration below, which is the standard way to
// decide entailment of a conjunction of OR-clauses via a conjunctive
// (here: linear arithmetic) decision procedure.
func Implies(base []Constraint, disjuncts [][]Constraint, goal Constraint) bool {
	clauses := append(append([][]Constraint{}, disjuncts...), negate(goal))
	return unsatAllCombinations(base, clauses, nil)
}

// unsatAllCombinations recursively picks one literal from each remaining
// clause and checks Satisfiable(base ∪ chosen) for every resulting
// combination; it returns true only if every combination is UNSAT.
func unsatAllCombinations(base []Constraint, clauses [][]Constraint, chosen []Constraint) bool {
	if len(clauses) == 0 {
		return !Satisfiable(append(append([]Constraint{}, base...), chosen...))
	}
	head, rest := clauses[0], clauses[1:]
	for _, literal := range head {
		if !unsatAllCombinations(base, rest, append(chosen, literal)) {
			return false
		}
	}
	return true
}
