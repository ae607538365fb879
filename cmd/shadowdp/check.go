package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shadowdp-go/shadowdp/ascii"
	"github.com/shadowdp-go/shadowdp/foundry"
	"github.com/shadowdp-go/shadowdp/transform"
	"github.com/shadowdp-go/shadowdp/verifier"
)

// runCheck transforms then verifies each input in turn, printing a
// box-drawn summary of the race per file (SPEC_FULL §6.4).
func runCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	solverHome := fs.String("solver-home", "", "CPAChecker installation root")
	extraArgsRaw := fs.String("extra-args", "", "comma-separated extra arguments appended to MathSat's and Z3's invocation")
	epsilon := fs.Bool("set-epsilon-to-one", false, "treat epsilon as the literal constant 1 during cost-term construction")
	goal := fs.Int("goal", 1, "goal multiplier k in assert(__v_epsilon <= epsilon * goal)")
	archive := fs.Bool("archive", false, "archive the winning backend's output directory as a .tar.gz")
	cfgPath := fs.String("config", "", "path to a YAML config file")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "check: at least one input file or glob pattern is required")
		return foundry.ExitMissingRequiredArgument
	}

	inputs, err := expandInputs(fs.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "check: %v\n", err)
		return foundry.ExitFileNotFound
	}

	logger, correlationID, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "check: %v\n", err)
		return foundry.ExitFailure
	}
	defer logger.Sync() //nolint:errcheck
	rec := newTelemetry(logger)

	worstCode := exitSuccess
	for _, input := range inputs {
		transformedPath := defaultOutPath(input)
		opts := transform.Options{
			SetEpsilonToOne: *epsilon,
			Goal:            *goal,
			Logger:          logger.WithComponent("transform"),
			Telemetry:       rec,
		}
		if err := transformOne(input, transformedPath, opts); err != nil {
			fmt.Fprintf(os.Stderr, "check %s: transform failed: %v\n", input, err)
			worstCode = exitCodeFor(err)
			continue
		}

		outcome, code := raceOne(transformedPath, *solverHome, splitCSV(*extraArgsRaw), *archive, *cfgPath, rec)
		if code != exitSuccess {
			worstCode = code
			continue
		}
		printSummary(input, correlationID, outcome)
		if !outcome.Verified {
			worstCode = foundry.ExitExternalServiceUnavailable
		}
	}
	return worstCode
}

func printSummary(input, correlationID string, outcome *verifier.Outcome) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "file:        %s\n", input)
	fmt.Fprintf(&sb, "correlation: %s\n", correlationID)
	if outcome.Verified {
		fmt.Fprintf(&sb, "result:      VERIFIED (%s)\n", outcome.Winner)
	} else {
		fmt.Fprintf(&sb, "result:      NOT VERIFIED\n")
	}
	for _, attempt := range outcome.Attempts {
		fmt.Fprintf(&sb, "  %-11s %-9s %s\n", attempt.Backend, verdict(attempt.Verified), attempt.Duration.Round(time.Millisecond))
	}
	if outcome.ArchivePath != "" {
		fmt.Fprintf(&sb, "archive:     %s\n", outcome.ArchivePath)
	}
	fmt.Println(ascii.DrawBox(strings.TrimRight(sb.String(), "\n"), 0))
}

func verdict(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}
