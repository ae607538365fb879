package distgen

import (
	"testing"

	"github.com/shadowdp-go/shadowdp/cast"
	"github.com/shadowdp-go/shadowdp/typeenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateConstantIsZero(t *testing.T) {
	env := typeenv.New()
	aligned, shadow, err := Generate(&cast.Constant{Value: "5", Kind: "int"}, env)
	require.NoError(t, err)
	assert.Equal(t, "0", aligned.(*cast.Constant).Value)
	assert.Equal(t, "0", shadow.(*cast.Constant).Value)
}

func TestGenerateIdentLooksUpEnvironment(t *testing.T) {
	env := typeenv.New()
	env.Set("q", typeenv.Distance{Expr: &cast.Constant{Value: "2", Kind: "int"}}, typeenv.Zero)

	aligned, shadow, err := Generate(&cast.Ident{Name: "q"}, env)
	require.NoError(t, err)
	assert.Equal(t, "2", aligned.(*cast.Constant).Value)
	assert.Equal(t, "0", shadow.(*cast.Constant).Value)
}

func TestGenerateIdentUnknownVariableErrors(t *testing.T) {
	env := typeenv.New()
	_, _, err := Generate(&cast.Ident{Name: "missing"}, env)
	assert.Error(t, err)
}

func TestGenerateStarProducesAuxIdentifier(t *testing.T) {
	env := typeenv.New()
	env.Set("q", typeenv.StarDistance, typeenv.Zero)

	aligned, _, err := Generate(&cast.Ident{Name: "q"}, env)
	require.NoError(t, err)
	assert.Equal(t, AlignedAuxName("q"), aligned.(*cast.Ident).Name)
}

func TestGenerateBinaryOpCombinesOperands(t *testing.T) {
	env := typeenv.New()
	env.Set("q", typeenv.Distance{Expr: &cast.Constant{Value: "2", Kind: "int"}}, typeenv.Zero)
	env.Set("best", typeenv.Distance{Expr: &cast.Constant{Value: "3", Kind: "int"}}, typeenv.Zero)

	expr := &cast.BinaryOp{Op: "+", Left: &cast.Ident{Name: "q"}, Right: &cast.Ident{Name: "best"}}
	aligned, shadow, err := Generate(expr, env)
	require.NoError(t, err)
	assert.Equal(t, "5", aligned.(*cast.Constant).Value)
	assert.Equal(t, "0", shadow.(*cast.Constant).Value)
}

func TestGenerateArrayRefStarProducesAuxArrayAccess(t *testing.T) {
	env := typeenv.New()
	env.Set("q", typeenv.StarDistance, typeenv.Zero)
	idx := &cast.Ident{Name: "i"}

	aligned, _, err := Generate(&cast.ArrayRef{Name: "q", Index: idx}, env)
	require.NoError(t, err)
	ref, ok := aligned.(*cast.ArrayRef)
	require.True(t, ok)
	assert.Equal(t, AlignedAuxName("q"), ref.Name)
}
