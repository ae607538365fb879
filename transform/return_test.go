package transform

import (
	"testing"

	"github.com/shadowdp-go/shadowdp/cast"
	"github.com/stretchr/testify/assert"
)

func TestIsZeroConst(t *testing.T) {
	assert.True(t, isZeroConst(&cast.Constant{Value: "0", Kind: "int"}))
	assert.False(t, isZeroConst(&cast.Constant{Value: "1", Kind: "int"}))
	assert.False(t, isZeroConst(&cast.Ident{Name: "x"}))
}
