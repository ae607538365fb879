package transform

import (
	"testing"

	"github.com/shadowdp-go/shadowdp/cast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAdjacencyAllDiffer(t *testing.T) {
	a, err := parseAdjacency("ALL_DIFFER", cast.Pos{})
	require.NoError(t, err)
	assert.False(t, a.oneDiffer)
	assert.Empty(t, a.assumes)
}

func TestParseAdjacencyOneDifferWithAssumes(t *testing.T) {
	a, err := parseAdjacency("ONE_DIFFER; assume(epsilon > 0); assume(size > 1)", cast.Pos{})
	require.NoError(t, err)
	assert.True(t, a.oneDiffer)
	require.Len(t, a.assumes, 2)
}

func TestParseAdjacencyIsCaseInsensitive(t *testing.T) {
	a, err := parseAdjacency("all_differ", cast.Pos{})
	require.NoError(t, err)
	assert.False(t, a.oneDiffer)
}

func TestParseAdjacencyRejectsUnknownModeWithSuggestion(t *testing.T) {
	_, err := parseAdjacency("ALL_DIFER", cast.Pos{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ALL_DIFFER")
}

func TestParseParamDistancesStarAndExpr(t *testing.T) {
	pds, err := parseParamDistances("epsilon: <0, 0>; q: <*, *>", cast.Pos{})
	require.NoError(t, err)
	require.Len(t, pds, 2)
	assert.False(t, pds[0].alignedIsStar)
	assert.True(t, pds[1].alignedIsStar)
	assert.True(t, pds[1].shadowIsStar)
}

func TestParseSamplingAnnotationSplitsSelectorAndEta(t *testing.T) {
	sa, err := parseSamplingAnnotation("ALIGNED + 1; SHADOW - ALIGNED", cast.Pos{})
	require.NoError(t, err)
	assert.NotNil(t, sa.selector)
	assert.NotNil(t, sa.etaDistance)
}

func TestMentionsShadowIsCaseInsensitive(t *testing.T) {
	assert.True(t, mentionsShadow("foo; shadow - aligned"))
	assert.False(t, mentionsShadow("foo; aligned + 1"))
}
