package cparse

import (
	"testing"

	"github.com/shadowdp-go/shadowdp/cast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleFunction(t *testing.T) {
	src := `
float noisyMax(float epsilon, int size, float q[]) {
    "ALL_DIFFER";
    "q: <1, 1>";
    float best = q[0];
    if (q[1] > best) {
        best = q[1];
    }
    return best;
}
`
	p := NewReferenceParser()
	prog, err := p.Parse("test.c", src)
	require.NoError(t, err)
	require.Len(t, prog.Functions, 1)

	fn := prog.Functions[0]
	assert.Equal(t, "noisyMax", fn.Name)
	assert.Equal(t, "float", fn.Return)
	require.Len(t, fn.Params, 3)
	assert.True(t, fn.Params[2].IsArray)

	require.Len(t, fn.Body.Stmts, 5)
	_, ok := fn.Body.Stmts[0].(*cast.ExprStmt)
	assert.True(t, ok, "first statement should be the adjacency annotation")
}

func TestParseWhileAndArrayAssignment(t *testing.T) {
	src := `
void f(float q[]) {
    "ALL_DIFFER";
    "q: <1, 1>";
    int i = 0;
    while (i < 10) {
        q[i] = q[i] + 1;
        i = i + 1;
    }
}
`
	p := NewReferenceParser()
	prog, err := p.Parse("test.c", src)
	require.NoError(t, err)

	fn := prog.Functions[0]
	whileStmt, ok := fn.Body.Stmts[2].(*cast.While)
	require.True(t, ok)
	require.Len(t, whileStmt.Body.Stmts, 2)
	assign, ok := whileStmt.Body.Stmts[0].(*cast.Assign)
	require.True(t, ok)
	_, ok = assign.Lvalue.(*cast.ArrayRef)
	assert.True(t, ok)
}

func TestParseLapCallAndDecl(t *testing.T) {
	src := `
float f(float epsilon) {
    "ALL_DIFFER";
    "epsilon: <0, 0>";
    float noisy = Lap(1.0, "ALIGNED + 1; SHADOW - ALIGNED");
    return noisy;
}
`
	p := NewReferenceParser()
	prog, err := p.Parse("test.c", src)
	require.NoError(t, err)

	decl, ok := prog.Functions[0].Body.Stmts[2].(*cast.Decl)
	require.True(t, ok)
	call, ok := decl.Init.(*cast.Call)
	require.True(t, ok)
	assert.Equal(t, cast.CallLap, call.Name)
	require.Len(t, call.Args, 2)
}

func TestParseExprHandlesTernaryAndPrecedence(t *testing.T) {
	expr, err := ParseExpr("<annotation>", "a + b * c > 0 ? x : y")
	require.NoError(t, err)

	ternary, ok := expr.(*cast.TernaryOp)
	require.True(t, ok)
	cmp, ok := ternary.Cond.(*cast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, ">", cmp.Op)
}

func TestParseRejectsMalformedSource(t *testing.T) {
	p := NewReferenceParser()
	_, err := p.Parse("bad.c", "float f(")
	assert.Error(t, err)
}

func TestUnparseRoundTripsStructurally(t *testing.T) {
	src := `
float f(float epsilon) {
    "ALL_DIFFER";
    "epsilon: <0, 0>";
    float x = 0;
    return x;
}
`
	p := NewReferenceParser()
	prog, err := p.Parse("test.c", src)
	require.NoError(t, err)

	out, err := NewTextUnparser().Unparse(prog)
	require.NoError(t, err)
	assert.Contains(t, out, "float f(float epsilon)")
	assert.Contains(t, out, "return x;")

	reparsed, err := p.Parse("test.c", out)
	require.NoError(t, err)
	assert.Equal(t, prog.Functions[0].Name, reparsed.Functions[0].Name)
	assert.Len(t, reparsed.Functions[0].Body.Stmts, len(prog.Functions[0].Body.Stmts))
}
