package testing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFakeCollectorRecordsCounter(t *testing.T) {
	fc := NewFakeCollector()
	assert.NoError(t, fc.Counter("transform.asserts.emitted", 5, map[string]string{"func": "main"}))

	assert.True(t, fc.HasMetric("transform.asserts.emitted"))
	assert.Equal(t, 1, fc.CountMetricsByName("transform.asserts.emitted"))
}

func TestFakeCollectorRecordsHistogramInMilliseconds(t *testing.T) {
	fc := NewFakeCollector()
	assert.NoError(t, fc.Histogram("verifier.backend.duration_ms", 1500*time.Millisecond, nil))

	got := fc.GetMetricsByName("verifier.backend.duration_ms")
	assert.Len(t, got, 1)
	assert.Equal(t, float64(1500), got[0].Value)
	assert.Equal(t, MetricTypeHistogram, got[0].Type)
}

func TestFakeCollectorResetClearsHistory(t *testing.T) {
	fc := NewFakeCollector()
	assert.NoError(t, fc.Counter("x", 1, nil))
	fc.Reset()
	assert.False(t, fc.HasMetric("x"))
}
