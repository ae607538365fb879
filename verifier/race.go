package verifier

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/shadowdp-go/shadowdp/fulpack"
	"github.com/shadowdp-go/shadowdp/telemetry"
	"github.com/shadowdp-go/shadowdp/toolchain"
)

// Result is one backend's outcome in a Race.
type Result struct {
	Backend   string
	Verified  bool
	OutputDir string
	Duration  time.Duration
	Stdout    string
	Stderr    string
}

// Outcome is the overall result of racing every backend against one
// program.
type Outcome struct {
	Verified    bool
	Winner      string
	WinnerDir   string
	ArchivePath string // set only when archiving the winning dir succeeds
	Attempts    []Result
}

// Options configures a Race.
type Options struct {
	// WorkDir is the directory cpa.sh is run from; backend output
	// directories are created relative to it. Defaults to the current
	// directory.
	WorkDir string
	// ExtraArgs are appended to MathSat's and Z3's invocation only,
	// mirroring checker.py's `*args` which checker.py never threads
	// through to the SMTInterpol call either.
	ExtraArgs []string
	// Timeout overrides DefaultTimeout per backend.
	Timeout time.Duration
	// Archive, when true, packs the winning backend's output directory
	// into a tar.gz alongside it instead of leaving it as a bare
	// directory, for long-term report retention.
	Archive bool
	// Telemetry receives race counters/histograms; defaults to a no-op.
	Telemetry telemetry.Emitter
}

func (o Options) timeout() time.Duration {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return DefaultTimeout
}

func (o Options) emitter() telemetry.Emitter {
	if o.Telemetry == nil {
		return telemetry.Noop{}
	}
	return o.Telemetry
}

// Race runs the three backends concurrently against path (a transformed
// C program CPAChecker can consume) and returns once the first verifies
// it or all three have failed/timed out. The losing backends' output
// directories are removed; the winner's is kept (optionally archived).
func Race(ctx context.Context, solver *toolchain.Solver, path string, opts Options) (*Outcome, error) {
	funcName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	backends := Backends()

	results := make(chan Result, len(backends))
	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	for _, b := range backends {
		go runBackend(raceCtx, solver, b, path, funcName, opts, results)
	}

	attempts := make([]Result, 0, len(backends))
	outcome := &Outcome{}
	for range backends {
		r := <-results
		attempts = append(attempts, r)
		_ = opts.emitter().Histogram("verifier.backend.duration_ms", r.Duration, map[string]string{"backend": r.Backend})
		if r.Verified && !outcome.Verified {
			outcome.Verified = true
			outcome.Winner = r.Backend
			outcome.WinnerDir = r.OutputDir
			cancel() // stop the remaining backends immediately
		}
	}
	outcome.Attempts = attempts

	_ = opts.emitter().Counter("verifier.race.completed_total", 1, map[string]string{
		"verified": fmt.Sprintf("%t", outcome.Verified),
	})

	for _, r := range attempts {
		if outcome.Verified && r.Backend == outcome.Winner {
			continue
		}
		if r.OutputDir != "" {
			_ = os.RemoveAll(r.OutputDir)
		}
	}

	if outcome.Verified && opts.Archive && outcome.WinnerDir != "" {
		archivePath := outcome.WinnerDir + ".tar.gz"
		if _, err := fulpack.Create([]string{outcome.WinnerDir}, archivePath, fulpack.ArchiveFormatTARGZ, nil); err == nil {
			_ = os.RemoveAll(outcome.WinnerDir)
			outcome.ArchivePath = archivePath
		}
	}

	return outcome, nil
}

func runBackend(ctx context.Context, solver *toolchain.Solver, b Backend, path, funcName string, opts Options, results chan<- Result) {
	start := time.Now()
	outputDir := b.OutputPath(funcName)
	if opts.WorkDir != "" {
		outputDir = filepath.Join(opts.WorkDir, outputDir)
	}

	args := b.Args(path, outputDir)
	if b.Name != "SMTInterpol" {
		args = append(args, opts.ExtraArgs...)
	}

	backendCtx, cancel := context.WithTimeout(ctx, opts.timeout())
	defer cancel()

	cmd := exec.CommandContext(backendCtx, solver.ScriptPath, args...)
	if opts.WorkDir != "" {
		cmd.Dir = opts.WorkDir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	r := Result{
		Backend:   b.Name,
		OutputDir: outputDir,
		Duration:  time.Since(start),
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
	}
	switch {
	case backendCtx.Err() == context.DeadlineExceeded:
		r.Verified = false
	case ctx.Err() != nil && err != nil:
		// canceled because a sibling backend already won; not a failure.
		r.Verified = false
	case err != nil:
		r.Verified = false
	default:
		r.Verified = strings.Contains(stdout.String(), "Verification result: TRUE")
	}
	results <- r
}
