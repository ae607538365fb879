package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounterAppendsEvent(t *testing.T) {
	r := NewRecorder(nil)
	require.NoError(t, r.Counter("transform.statements.visited", 1, map[string]string{"func": "main"}))

	events := r.Events()
	require.Len(t, events, 1)
	assert.Equal(t, TypeCounter, events[0].Type)
	assert.Equal(t, "transform.statements.visited", events[0].Name)
	assert.Equal(t, "main", events[0].Tags["func"])
}

func TestRecorderHistogramRecordsMilliseconds(t *testing.T) {
	r := NewRecorder(nil)
	require.NoError(t, r.Histogram("verifier.backend.duration_ms", 250*time.Millisecond, nil))

	events := r.Events()
	require.Len(t, events, 1)
	assert.Equal(t, TypeHistogram, events[0].Type)
	assert.Equal(t, float64(250), events[0].Value)
}

func TestRecorderInvokesSink(t *testing.T) {
	var seen []Event
	r := NewRecorder(func(e Event) { seen = append(seen, e) })

	require.NoError(t, r.Gauge("toolchain.cache.size", 42, nil))
	require.Len(t, seen, 1)
	assert.Equal(t, TypeGauge, seen[0].Type)
}

func TestMarshalEventsProducesOneLinePerEvent(t *testing.T) {
	r := NewRecorder(nil)
	require.NoError(t, r.Counter("a", 1, nil))
	require.NoError(t, r.Counter("b", 2, nil))

	out, err := r.MarshalEvents()
	require.NoError(t, err)
	assert.Contains(t, string(out), `"name":"a"`)
	assert.Contains(t, string(out), `"name":"b"`)
}

func TestNoopDiscardsEverything(t *testing.T) {
	n := Noop{}
	assert.NoError(t, n.Counter("x", 1, nil))
	assert.NoError(t, n.Histogram("x", time.Second, nil))
	assert.NoError(t, n.Gauge("x", 1, nil))
}
