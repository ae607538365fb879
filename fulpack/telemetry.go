package fulpack

import (
	"time"

	"github.com/shadowdp-go/shadowdp/telemetry"
)

// globalEmitter is the package-level telemetry sink archive operations
// report through; defaults to a no-op so fulpack never requires a caller
// to configure telemetry before using it.
//
// Grounded on the teacher's globalTelemetrySystem, trimmed from a
// lazily-initialized telemetry.System (with its own config/retry
// machinery) down to this module's plain telemetry.Emitter interface,
// which the verifier package already threads through from its own
// Options.Telemetry.
var globalEmitter telemetry.Emitter = telemetry.Noop{}

// SetTelemetryEmitter overrides the sink archive operations report
// through. cmd/shadowdp calls this once at startup with the same
// Recorder it hands to transform.Options and verifier.Options, so a
// run's archive counters (emitted when verifier.Race packs the winning
// backend's output directory) share one event log with the rest of the
// run instead of going to a package-global no-op.
func SetTelemetryEmitter(e telemetry.Emitter) {
	if e == nil {
		e = telemetry.Noop{}
	}
	globalEmitter = e
}

func emitOperationMetrics(operation Operation, format ArchiveFormat, duration time.Duration, entryCount int, bytesProcessed int64, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	tags := map[string]string{
		"operation": string(operation),
		"format":    string(format),
		"status":    status,
	}

	_ = globalEmitter.Counter("fulpack.operations_total", 1, tags)
	_ = globalEmitter.Histogram("fulpack.operation_ms", duration, tags)

	if bytesProcessed > 0 {
		_ = globalEmitter.Counter("fulpack.bytes_processed_total", float64(bytesProcessed), tags)
	}
	if entryCount > 0 {
		_ = globalEmitter.Counter("fulpack.entries_total", float64(entryCount), tags)
	}
	if err != nil {
		errorTags := map[string]string{"operation": string(operation), "format": string(format)}
		if ferr, ok := err.(*FulpackError); ok {
			errorTags["error_type"] = ferr.Code
		} else {
			errorTags["error_type"] = "unknown"
		}
		_ = globalEmitter.Counter("fulpack.errors_total", 1, errorTags)
	}
}
