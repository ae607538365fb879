package typeenv

import (
	"testing"

	"github.com/shadowdp-go/shadowdp/cast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ident(name string) cast.Expr { return &cast.Ident{Name: name} }

func TestEnvSetGetOrder(t *testing.T) {
	env := New()
	env.Set("eps", Zero, Zero)
	env.Set("q", Distance{Expr: ident("eps")}, StarDistance)

	assert.Equal(t, []string{"eps", "q"}, env.Variables())

	aligned, shadow, ok := env.Get("q")
	require.True(t, ok)
	assert.False(t, aligned.Star)
	assert.True(t, shadow.Star)

	_, _, ok = env.Get("missing")
	assert.False(t, ok)
}

func TestEnvCopyIsIndependent(t *testing.T) {
	env := New()
	env.Set("x", Distance{Expr: ident("eta")}, Zero)

	clone := env.Copy()
	clone.Set("x", StarDistance, StarDistance)

	aligned, _, _ := env.Get("x")
	assert.False(t, aligned.Star, "mutating the clone must not affect the original")
}

func TestEnvMergeWidensDisagreement(t *testing.T) {
	left := New()
	left.Set("q", Zero, Zero)

	right := New()
	right.Set("q", Distance{Expr: ident("eta")}, Zero)

	left.Merge(right)

	aligned, shadow, ok := left.Get("q")
	require.True(t, ok)
	assert.True(t, aligned.Star, "disagreeing aligned distances must widen to *")
	assert.False(t, shadow.Star, "agreeing shadow distances stay precise")
}

func TestEnvMergeAdoptsMissingVariable(t *testing.T) {
	left := New()
	right := New()
	right.Set("only_right", Zero, Zero)

	left.Merge(right)

	assert.True(t, left.Contains("only_right"))
}

func TestEnvDiffReportsMissingOnBothSides(t *testing.T) {
	left := New()
	right := New()
	right.Set("q", Zero, Zero)

	diffs := left.Diff(right)
	assert.ElementsMatch(t, []VarSide{{Name: "q", Aligned: true}, {Name: "q", Aligned: false}}, diffs)
}

func TestEnvApplySpecializesTernary(t *testing.T) {
	env := New()
	cond := &cast.BinaryOp{Op: ">", Left: ident("q"), Right: ident("best")}
	distance := Distance{Expr: &cast.TernaryOp{
		Cond:    cond,
		IfTrue:  &cast.Constant{Value: "2", Kind: "int"},
		IfFalse: Zero.Expr,
	}}
	env.Set("out", distance, StarDistance)

	env.Apply(cond, true)

	aligned, _, _ := env.Get("out")
	c, ok := aligned.Expr.(*cast.Constant)
	require.True(t, ok)
	assert.Equal(t, "2", c.Value)
}

func TestDistanceStringRendersStar(t *testing.T) {
	assert.Equal(t, "*", StarDistance.String())
	assert.Equal(t, "0", Zero.String())
}
