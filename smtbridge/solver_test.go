package smtbridge

import (
	"testing"

	"github.com/shadowdp-go/shadowdp/cast"
	"github.com/stretchr/testify/assert"
)

func TestSatisfiableSimpleBounds(t *testing.T) {
	x := VarTerm("x")
	cs := []Constraint{GreaterEq(x, ConstTerm(0)), LessEq(x, ConstTerm(1))}
	assert.True(t, Satisfiable(cs))
}

func TestSatisfiableContradiction(t *testing.T) {
	x := VarTerm("x")
	cs := []Constraint{GreaterEq(x, ConstTerm(2)), LessEq(x, ConstTerm(1))}
	assert.False(t, Satisfiable(cs))
}

func TestSatisfiableEqualitySubstitution(t *testing.T) {
	x, y := VarTerm("x"), VarTerm("y")
	cs := []Constraint{
		Eq(x, ConstTerm(3)),
		Eq(y, x.Add(ConstTerm(1))),
		GreaterEq(y, ConstTerm(5)),
	}
	assert.False(t, Satisfiable(cs), "y must equal 4, which violates y>=5")
}

func TestImpliesTrivialEquality(t *testing.T) {
	x := VarTerm("x")
	base := []Constraint{Eq(x, ConstTerm(5))}
	goal := Eq(x, ConstTerm(5))
	assert.True(t, Implies(base, nil, goal))
}

func TestImpliesFailsWithoutPremise(t *testing.T) {
	x := VarTerm("x")
	goal := Eq(x, ConstTerm(5))
	assert.False(t, Implies(nil, nil, goal))
}

func TestBuildTermRejectsNonAffine(t *testing.T) {
	expr := &cast.BinaryOp{Op: "*", Left: &cast.Ident{Name: "a"}, Right: &cast.Ident{Name: "b"}}
	_, err := BuildTerm(expr)
	assert.Error(t, err)
}

func TestBranchDivergesWhenNotAffine(t *testing.T) {
	cond := &cast.Ident{Name: "x"}
	shadowCond := &cast.BinaryOp{Op: "*", Left: &cast.Ident{Name: "x"}, Right: &cast.Ident{Name: "y"}}
	assert.True(t, BranchDiverges(AllDiffer, "q", cond, shadowCond))
}

func TestBranchDoesNotDivergeWhenIdentical(t *testing.T) {
	cond := &cast.Ident{Name: "x"}
	assert.False(t, BranchDiverges(AllDiffer, "q", cond, cond))
}

func TestSamplingInjectiveIdentityDistance(t *testing.T) {
	zero := &cast.Constant{Value: "0", Kind: "int"}
	ok := SamplingInjective(AllDiffer, "q", "eta1", "eta2", zero, zero)
	assert.True(t, ok, "eta1+0 = eta2+0 implies eta1 = eta2")
}
