package transform

import (
	"testing"

	"github.com/shadowdp-go/shadowdp/cast"
	"github.com/shadowdp-go/shadowdp/cparse"
	"github.com/shadowdp-go/shadowdp/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseProgram(t *testing.T, src string) *cast.Program {
	t.Helper()
	prog, err := cparse.NewReferenceParser().Parse("test.c", src)
	require.NoError(t, err)
	return prog
}

func TestTransformNoisyMax(t *testing.T) {
	src := `
float noisyMax(float epsilon, int size, float q[]) {
    "ALL_DIFFER";
    "q: <1, 1>";
    float best = q[0];
    int max = 0;
    if (q[1] > best) {
        best = q[1];
        max = 1;
    }
    return max;
}
`
	prog := parseProgram(t, src)
	err := Transform(prog, Options{})
	require.NoError(t, err)

	fn := prog.Functions[0]
	assert.Greater(t, len(fn.Body.Stmts), 3, "transformation should have inserted instrumentation")
}

func TestTransformRejectsMissingAnnotations(t *testing.T) {
	src := `
float f(float epsilon, int size, float q[]) {
    float best = q[0];
    return best;
}
`
	prog := parseProgram(t, src)
	err := Transform(prog, Options{})
	require.Error(t, err)
	var missing *diag.MissingParameterAnnotation
	assert.ErrorAs(t, err, &missing)
}

func TestTransformRejectsNonZeroReturnDistance(t *testing.T) {
	src := `
float f(float epsilon, int size, float q[]) {
    "ALL_DIFFER";
    "q: <*, *>";
    return q[0];
}
`
	prog := parseProgram(t, src)
	err := Transform(prog, Options{})
	require.Error(t, err)
	var rdnz *diag.ReturnDistanceNotZero
	assert.ErrorAs(t, err, &rdnz)
}

func TestTransformWhileLoopFixedPoint(t *testing.T) {
	src := `
float sum(float epsilon, int size, float q[]) {
    "ALL_DIFFER";
    "q: <1, 1>";
    int i = 0;
    float total = 0;
    while (i < size) {
        total = total + q[i];
        i = i + 1;
    }
    return total;
}
`
	prog := parseProgram(t, src)
	err := Transform(prog, Options{})
	require.Error(t, err, "total's distance never converges to the zero bound a bare return requires")
}
