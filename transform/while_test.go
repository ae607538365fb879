package transform

import (
	"testing"

	"github.com/shadowdp-go/shadowdp/cast"
	"github.com/shadowdp-go/shadowdp/typeenv"
	"github.com/stretchr/testify/assert"
)

func zeroExpr() cast.Expr { return &cast.Constant{Value: "0", Kind: "int"} }
func oneExpr() cast.Expr  { return &cast.Constant{Value: "1", Kind: "int"} }

func TestEnvEqualSameContents(t *testing.T) {
	a := typeenv.New()
	a.Set("i", typeenv.Distance{Expr: zeroExpr()}, typeenv.Distance{Expr: zeroExpr()})
	b := typeenv.New()
	b.Set("i", typeenv.Distance{Expr: zeroExpr()}, typeenv.Distance{Expr: zeroExpr()})
	assert.True(t, envEqual(a, b))
}

func TestEnvEqualDiffersOnDistance(t *testing.T) {
	a := typeenv.New()
	a.Set("i", typeenv.Distance{Expr: zeroExpr()}, typeenv.Distance{Expr: zeroExpr()})
	b := typeenv.New()
	b.Set("i", typeenv.Distance{Expr: oneExpr()}, typeenv.Distance{Expr: zeroExpr()})
	assert.False(t, envEqual(a, b))
}

func TestEnvEqualDiffersOnVariableSet(t *testing.T) {
	a := typeenv.New()
	a.Set("i", typeenv.Zero, typeenv.Zero)
	b := typeenv.New()
	b.Set("i", typeenv.Zero, typeenv.Zero)
	b.Set("j", typeenv.Zero, typeenv.Zero)
	assert.False(t, envEqual(a, b))
}

func TestEnvEqualBothStar(t *testing.T) {
	a := typeenv.New()
	a.Set("i", typeenv.StarDistance, typeenv.StarDistance)
	b := typeenv.New()
	b.Set("i", typeenv.StarDistance, typeenv.StarDistance)
	assert.True(t, envEqual(a, b))
}
