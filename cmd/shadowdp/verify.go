package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/shadowdp-go/shadowdp/foundry"
	"github.com/shadowdp-go/shadowdp/signals"
	"github.com/shadowdp-go/shadowdp/telemetry"
	"github.com/shadowdp-go/shadowdp/toolchain"
	"github.com/shadowdp-go/shadowdp/verifier"
)

func runVerify(args []string) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	solverHome := fs.String("solver-home", "", "CPAChecker installation root (falls back to $CPACHECKER_HOME, then PATH)")
	extraArgsRaw := fs.String("extra-args", "", "comma-separated extra arguments appended to MathSat's and Z3's invocation")
	archive := fs.Bool("archive", false, "archive the winning backend's output directory as a .tar.gz")
	cfgPath := fs.String("config", "", "path to a YAML config file")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "verify: exactly one transformed program is required")
		return foundry.ExitMissingRequiredArgument
	}

	logger, _, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "verify: %v\n", err)
		return foundry.ExitFailure
	}
	defer logger.Sync() //nolint:errcheck
	rec := newTelemetry(logger)

	outcome, code := raceOne(fs.Arg(0), *solverHome, splitCSV(*extraArgsRaw), *archive, *cfgPath, rec)
	if code != exitSuccess {
		return code
	}
	if outcome.Verified {
		fmt.Printf("verified by %s (%s)\n", outcome.Winner, outcome.WinnerDir)
		return exitSuccess
	}
	fmt.Fprintln(os.Stderr, "verify: no backend proved the program")
	return foundry.ExitExternalServiceUnavailable
}

// raceOne resolves the solver toolchain and runs the three-backend race
// against path, under a context canceled by signals.Listen so Ctrl+C
// stops the losing subprocesses instead of leaking them.
func raceOne(path, solverHome string, extraArgs []string, archive bool, cfgPath string, rec telemetry.Emitter) (*verifier.Outcome, foundry.ExitCode) {
	cfg, err := resolveConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "verify: %v\n", err)
		return nil, exitCodeFor(err)
	}
	if solverHome == "" {
		solverHome = cfg.SolverHome
	}
	if len(extraArgs) == 0 {
		extraArgs = cfg.ExtraArgs
	}

	solver, err := toolchain.Locate(solverHome, cfg.SolverChecksum)
	if err != nil {
		fmt.Fprintf(os.Stderr, "verify: %v\n", err)
		return nil, foundry.ExitExternalServiceUnavailable
	}

	ctx := signals.Listen(context.Background())
	outcome, err := verifier.Race(ctx, solver, path, verifier.Options{
		ExtraArgs: extraArgs,
		Archive:   archive,
		Telemetry: rec,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "verify: %v\n", err)
		return nil, foundry.ExitExternalServiceUnavailable
	}
	return outcome, exitSuccess
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
