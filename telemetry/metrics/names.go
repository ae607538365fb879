// Package metrics lists counter/gauge/histogram names. No package in this
// module imports it: transform and verifier spell their metric names as
// their own string literals, and toolchain emits no metrics.
//
// Grounded on the teacher's metrics/names.go (a flat const registry of
// metric names), trimmed from the teacher's cross-team "Crucible
// taxonomy" down to this module's own small set of names.
package metrics

// Transformer pass counters, emitted by package transform.
const (
	TransformStatementsVisited     = "transform.statements.visited"
	TransformSMTQueries            = "transform.smt.queries"
	TransformAssertsEmitted        = "transform.asserts.emitted"
	TransformLoopFixedPointRounds  = "transform.loop.fixedpoint.iterations"
	TransformFunctionsTransformed  = "transform.functions.transformed"
)

// Verifier race counters and histograms. Package verifier emits only
// verifier.backend.duration_ms of these (plus verifier.race.completed_total,
// which is not listed here).
const (
	VerifierBackendsLaunched = "verifier.backends.launched"
	VerifierBackendDuration  = "verifier.backend.duration_ms"
	VerifierBackendResult    = "verifier.backend.result"
	VerifierRaceDuration     = "verifier.race.duration_ms"
)

// Toolchain discovery counters. Package toolchain does not emit them.
const (
	ToolchainChecksumMismatches = "toolchain.checksum.mismatches"
	ToolchainBinaryResolved     = "toolchain.binary.resolved"
)

// Prometheus HTTP exposition counters, emitted by exporters.PrometheusExporter
// itself about its own request handling.
const (
	ExporterHTTPRequestsTotal = "telemetry.exporter.http.requests_total"
	ExporterHTTPErrorsTotal   = "telemetry.exporter.http.errors_total"
)

// Common tag keys.
const (
	TagBackend = "backend"
	TagResult  = "result"
	TagPath    = "path"
	TagClient  = "client"
	TagStatus  = "status"
)
