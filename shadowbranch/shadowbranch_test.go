package shadowbranch

import (
	"testing"

	"github.com/shadowdp-go/shadowdp/cast"
	"github.com/shadowdp-go/shadowdp/distgen"
	"github.com/shadowdp-go/shadowdp/typeenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFiltersToShadowTrackedAssignments(t *testing.T) {
	env := typeenv.New()
	env.Set("best", typeenv.StarDistance, typeenv.StarDistance)
	env.Set("untracked", typeenv.Zero, typeenv.Zero)

	body := &cast.Block{Stmts: []cast.Stmt{
		&cast.Assign{Lvalue: &cast.Ident{Name: "best"}, Rvalue: &cast.Ident{Name: "best"}},
		&cast.Assign{Lvalue: &cast.Ident{Name: "untracked"}, Rvalue: &cast.Constant{Value: "1", Kind: "int"}},
		&cast.ExprStmt{X: &cast.Call{Name: "assume"}},
	}}

	out, err := Generate(body, ShadowTrackedVariables(env), env)
	require.NoError(t, err)
	require.Len(t, out.Stmts, 1)

	assign := out.Stmts[0].(*cast.Assign)
	assert.Equal(t, distgen.ShadowAuxName("best"), assign.Lvalue.(*cast.Ident).Name)

	rhs := assign.Rvalue.(*cast.BinaryOp)
	assert.Equal(t, "-", rhs.Op)
	assert.Equal(t, "best", rhs.Right.(*cast.Ident).Name)
}

func TestShadowTrackedVariablesSelectsOnlyStarShadow(t *testing.T) {
	env := typeenv.New()
	env.Set("a", typeenv.StarDistance, typeenv.StarDistance)
	env.Set("b", typeenv.StarDistance, typeenv.Zero)

	tracked := ShadowTrackedVariables(env)
	assert.True(t, tracked["a"])
	assert.False(t, tracked["b"])
}

func TestGenerateNilBodyReturnsEmptyBlock(t *testing.T) {
	out, err := Generate(nil, map[string]bool{}, typeenv.New())
	require.NoError(t, err)
	assert.Empty(t, out.Stmts)
}
