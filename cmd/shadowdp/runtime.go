package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/shadowdp-go/shadowdp/config"
	"github.com/shadowdp-go/shadowdp/diag"
	"github.com/shadowdp-go/shadowdp/foundry"
	"github.com/shadowdp-go/shadowdp/fulpack"
	"github.com/shadowdp-go/shadowdp/logging"
	"github.com/shadowdp-go/shadowdp/telemetry"
)

// Re-exported under short names so the exit-code table below reads
// without the foundry. qualifier repeated on every line.
const (
	exitSuccess = foundry.ExitSuccess
	exitUsage   = foundry.ExitUsage
)

// newLogger builds the CLI's stderr logger and tags it with a fresh
// UUIDv7 correlation ID, so every line this run emits — and the
// summary check prints — can be tied back to one invocation.
func newLogger() (*logging.Logger, string, error) {
	correlationID := foundry.GenerateCorrelationID()
	l, err := logging.NewCLI("shadowdp")
	if err != nil {
		return nil, "", err
	}
	return l.WithCorrelation(correlationID), correlationID, nil
}

// newTelemetry builds one Recorder shared by the transformer, the
// verifier race, and fulpack's archive step, so a single run's counters
// and histograms land in one event log regardless of which package
// reported them. Each event is also surfaced as a debug log line.
func newTelemetry(logger *logging.Logger) *telemetry.Recorder {
	rec := telemetry.NewRecorder(func(e telemetry.Event) {
		logger.Debug(fmt.Sprintf("metric %s", e.Name))
	})
	fulpack.SetTelemetryEmitter(rec)
	return rec
}

// resolveConfig loads --config if given, otherwise falls back to
// config.Resolve's search of the XDG config paths, otherwise the zero
// Config (flag defaults apply).
func resolveConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.Resolve()
}

// expandInputs resolves a mix of literal paths and doublestar glob
// patterns (e.g. "testdata/**/*.c") into a deduplicated file list, in
// argument order, using the same doublestar glob vocabulary as fulpack's
// include/exclude patterns.
func expandInputs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "*?[{") {
			if _, err := os.Stat(pattern); err != nil {
				return nil, fmt.Errorf("input %s: %w", pattern, err)
			}
			if !seen[pattern] {
				seen[pattern] = true
				files = append(files, pattern)
			}
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("glob %s matched no files", pattern)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	return files, nil
}

// exitCodeFor maps a returned error to the exit-code band it belongs
// to, per SPEC_FULL §7. Unrecognized errors fall back to the generic
// data band rather than exitFailure, since nearly every error a run
// produces is a diagnosis of the input, not a crash.
func exitCodeFor(err error) foundry.ExitCode {
	if err == nil {
		return exitSuccess
	}
	switch err.(type) {
	case *diag.MissingParameterAnnotation, *diag.MissingSamplingAnnotation,
		*diag.SamplingMisplaced, *diag.AnnotationSyntaxError:
		return foundry.ExitDataInvalid
	case *diag.ReturnDistanceNotZero, *diag.NonInjectiveAnnotation:
		return foundry.ExitTransformationFailed
	case *diag.UnsupportedConstruct:
		return foundry.ExitParseError
	}
	switch {
	case os.IsNotExist(err):
		return foundry.ExitFileNotFound
	default:
		return foundry.ExitDataInvalid
	}
}
