package exporters

import (
	"strings"
	"testing"

	"github.com/shadowdp-go/shadowdp/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNamePrefixesAndSnakeCases(t *testing.T) {
	e := NewPrometheusExporter(telemetry.NewRecorder(nil), &PrometheusConfig{Prefix: "shadowdp"})
	assert.Equal(t, "shadowdp_transform_statements_visited", e.formatName("transform.statements.visited"))
}

func TestFormatLabelsSortedDeterministically(t *testing.T) {
	e := NewPrometheusExporter(telemetry.NewRecorder(nil), nil)
	labels := e.formatLabels(map[string]string{"zeta": "1", "alpha": "2"})
	assert.Equal(t, `alpha="2",zeta="1"`, labels)
}

func TestWriteMetricsRendersCounterLine(t *testing.T) {
	source := telemetry.NewRecorder(nil)
	require.NoError(t, source.Counter("transform.asserts.emitted", 3, map[string]string{"func": "reportNoisyMax"}))

	e := NewPrometheusExporter(source, nil)
	var sb strings.Builder
	e.writeMetrics(&sb)

	out := sb.String()
	assert.Contains(t, out, "transform_asserts_emitted")
	assert.Contains(t, out, `func="reportNoisyMax"`)
	assert.Contains(t, out, "3")
}

func TestDefaultConfigValidateFillsZeroValues(t *testing.T) {
	c := &PrometheusConfig{}
	require.NoError(t, c.Validate())
	assert.Equal(t, ":9090", c.Endpoint)
	assert.Positive(t, c.ReadHeaderTimeout)
}
