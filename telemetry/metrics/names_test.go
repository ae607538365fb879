package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricNamesAreNamespaced(t *testing.T) {
	names := []string{
		TransformStatementsVisited,
		TransformSMTQueries,
		TransformAssertsEmitted,
		TransformLoopFixedPointRounds,
		TransformFunctionsTransformed,
		VerifierBackendsLaunched,
		VerifierBackendDuration,
		VerifierBackendResult,
		VerifierRaceDuration,
		ToolchainChecksumMismatches,
		ToolchainBinaryResolved,
		ExporterHTTPRequestsTotal,
		ExporterHTTPErrorsTotal,
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		assert.NotEmpty(t, n)
		assert.False(t, seen[n], "duplicate metric name %q", n)
		seen[n] = true
	}
}
