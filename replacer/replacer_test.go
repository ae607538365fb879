package replacer

import (
	"testing"

	"github.com/shadowdp-go/shadowdp/cast"
	"github.com/shadowdp-go/shadowdp/distgen"
	"github.com/shadowdp-go/shadowdp/typeenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceZeroDistanceLeavesLeafUnchanged(t *testing.T) {
	env := typeenv.New()
	env.Set("q", typeenv.Zero, typeenv.Zero)

	out, err := Replace(&cast.Ident{Name: "q"}, env, Aligned)
	require.NoError(t, err)
	assert.Equal(t, "q", out.(*cast.Ident).Name)
}

func TestReplaceConcreteDistanceAddsIt(t *testing.T) {
	env := typeenv.New()
	env.Set("q", typeenv.Distance{Expr: &cast.Constant{Value: "2", Kind: "int"}}, typeenv.Zero)

	out, err := Replace(&cast.Ident{Name: "q"}, env, Aligned)
	require.NoError(t, err)
	bin, ok := out.(*cast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Op)
	assert.Equal(t, "q", bin.Left.(*cast.Ident).Name)
	assert.Equal(t, "2", bin.Right.(*cast.Constant).Value)
}

func TestReplaceStarDistanceReferencesAuxVariable(t *testing.T) {
	env := typeenv.New()
	env.Set("q", typeenv.StarDistance, typeenv.StarDistance)

	out, err := Replace(&cast.Ident{Name: "q"}, env, Shadow)
	require.NoError(t, err)
	bin, ok := out.(*cast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, distgen.ShadowAuxName("q"), bin.Right.(*cast.Ident).Name)
}

func TestReplaceArrayRefPreservesSubscript(t *testing.T) {
	env := typeenv.New()
	env.Set("q", typeenv.StarDistance, typeenv.Zero)
	idx := &cast.Ident{Name: "i"}

	out, err := Replace(&cast.ArrayRef{Name: "q", Index: idx}, env, Aligned)
	require.NoError(t, err)
	bin, ok := out.(*cast.BinaryOp)
	require.True(t, ok)
	ref := bin.Right.(*cast.ArrayRef)
	assert.Equal(t, distgen.AlignedAuxName("q"), ref.Name)
	assert.Same(t, idx, ref.Index)
}

func TestReplaceBinaryOpRecurses(t *testing.T) {
	env := typeenv.New()
	env.Set("a", typeenv.Distance{Expr: &cast.Constant{Value: "1", Kind: "int"}}, typeenv.Zero)
	env.Set("b", typeenv.Zero, typeenv.Zero)

	expr := &cast.BinaryOp{Op: "+", Left: &cast.Ident{Name: "a"}, Right: &cast.Ident{Name: "b"}}
	out, err := Replace(expr, env, Aligned)
	require.NoError(t, err)
	top := out.(*cast.BinaryOp)
	assert.Equal(t, "+", top.Op)
	_, leftIsSum := top.Left.(*cast.BinaryOp)
	assert.True(t, leftIsSum, "a's distance is nonzero so it should be rewritten to a+1")
	assert.Equal(t, "b", top.Right.(*cast.Ident).Name, "b's distance is zero so it is left unchanged")
}
