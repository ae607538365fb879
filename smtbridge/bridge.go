package smtbridge

import "github.com/shadowdp-go/shadowdp/cast"

// Bridge is the narrow seam between the transformer and a decision
// procedure for linear real arithmetic over the query array, as the
// design notes call for: build a real-valued term, build an array
// reference's term, quantify over one bounded integer index, and decide
// implication. FourierMotzkinBridge is the one concrete implementation
// this module ships; tests substitute a StubBridge that hands back
// canned answers without running any elimination.
type Bridge interface {
	// BuildReal translates expr to a real-valued Term.
	BuildReal(expr cast.Expr) (Term, error)

	// BuildArray translates a reference to the named array at the given
	// index expression to a real-valued Term.
	BuildArray(name string, index cast.Expr) (Term, error)

	// Implies reports whether base (conjoined with disjuncts, each an
	// OR-clause) entails goal.
	Implies(base []Constraint, disjuncts [][]Constraint, goal Constraint) bool

	// ForAllIndex returns the base constraints and ordering disjuncts of
	// the query-adjacency precondition, universally instantiated over
	// the given index expressions, for the given adjacency mode.
	ForAllIndex(mode Mode, queryParam string, indices []cast.Expr) (base []Constraint, disjuncts [][]Constraint)
}

// FourierMotzkinBridge implements Bridge atop this package's
// Fourier–Motzkin elimination procedure.
type FourierMotzkinBridge struct{}

// NewFourierMotzkinBridge returns the default solver backend.
func NewFourierMotzkinBridge() *FourierMotzkinBridge {
	return &FourierMotzkinBridge{}
}

func (b *FourierMotzkinBridge) BuildReal(expr cast.Expr) (Term, error) {
	return BuildTerm(expr)
}

func (b *FourierMotzkinBridge) BuildArray(name string, index cast.Expr) (Term, error) {
	return BuildTerm(&cast.ArrayRef{Name: name, Index: index})
}

func (b *FourierMotzkinBridge) Implies(base []Constraint, disjuncts [][]Constraint, goal Constraint) bool {
	return Implies(base, disjuncts, goal)
}

func (b *FourierMotzkinBridge) ForAllIndex(mode Mode, queryParam string, indices []cast.Expr) ([]Constraint, [][]Constraint) {
	return BuildPrecondition(mode, queryParam, indices)
}
