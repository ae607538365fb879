package verifier

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shadowdp-go/shadowdp/toolchain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSolver writes a stand-in cpa.sh that inspects its own arguments to
// decide what to print, so the race can be exercised without a real
// CPAChecker + MathSat/Z3/SMTInterpol installation.
func fakeSolver(t *testing.T, script string) *toolchain.Solver {
	t.Helper()
	dir := t.TempDir()
	scriptsDir := filepath.Join(dir, "scripts")
	require.NoError(t, os.MkdirAll(scriptsDir, 0o755))
	path := filepath.Join(scriptsDir, "cpa.sh")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return &toolchain.Solver{Home: dir, ScriptPath: path}
}

func TestRaceMathSatWins(t *testing.T) {
	solver := fakeSolver(t, "#!/bin/sh\ncase \"$*\" in\n  *MATHSAT5*) echo 'Verification result: TRUE' ;;\n  *) sleep 0.2 ;;\nesac\n")

	dir := t.TempDir()
	prog := filepath.Join(dir, "noisy_max.c")
	require.NoError(t, os.WriteFile(prog, []byte("int f(){return 0;}"), 0o644))

	outcome, err := Race(context.Background(), solver, prog, Options{WorkDir: dir, Timeout: 2 * time.Second})
	require.NoError(t, err)
	assert.True(t, outcome.Verified)
	assert.Equal(t, "MathSat", outcome.Winner)
	assert.Len(t, outcome.Attempts, 3)
}

func TestRaceAllFail(t *testing.T) {
	solver := fakeSolver(t, "#!/bin/sh\necho 'Verification result: UNKNOWN'\nexit 1\n")

	dir := t.TempDir()
	prog := filepath.Join(dir, "sparse_vector.c")
	require.NoError(t, os.WriteFile(prog, []byte("int f(){return 0;}"), 0o644))

	outcome, err := Race(context.Background(), solver, prog, Options{WorkDir: dir, Timeout: 2 * time.Second})
	require.NoError(t, err)
	assert.False(t, outcome.Verified)
	assert.Empty(t, outcome.Winner)
	assert.Len(t, outcome.Attempts, 3)
}

func TestRaceBackendTimeout(t *testing.T) {
	solver := fakeSolver(t, "#!/bin/sh\nsleep 5\necho 'Verification result: TRUE'\n")

	dir := t.TempDir()
	prog := filepath.Join(dir, "prefix_sum.c")
	require.NoError(t, os.WriteFile(prog, []byte("int f(){return 0;}"), 0o644))

	outcome, err := Race(context.Background(), solver, prog, Options{WorkDir: dir, Timeout: 100 * time.Millisecond})
	require.NoError(t, err)
	assert.False(t, outcome.Verified)
	for _, r := range outcome.Attempts {
		assert.False(t, r.Verified)
	}
}

func TestRaceDiscardsLoserOutputDirs(t *testing.T) {
	solver := fakeSolver(t, "#!/bin/sh\nout=\"\"\nfor a in \"$@\"; do\n  case \"$a\" in\n    output.path=*) out=\"${a#output.path=}\" ;;\n  esac\ndone\nmkdir -p \"$out\"\ncase \"$*\" in\n  *MATHSAT5*) echo 'Verification result: TRUE' ;;\nesac\n")

	dir := t.TempDir()
	prog := filepath.Join(dir, "gap_sparse_vector.c")
	require.NoError(t, os.WriteFile(prog, []byte("int f(){return 0;}"), 0o644))

	outcome, err := Race(context.Background(), solver, prog, Options{WorkDir: dir, Timeout: 2 * time.Second})
	require.NoError(t, err)
	require.True(t, outcome.Verified)

	_, err = os.Stat(outcome.WinnerDir)
	assert.NoError(t, err, "winner's output dir must survive")

	for _, r := range outcome.Attempts {
		if r.Backend == outcome.Winner {
			continue
		}
		_, statErr := os.Stat(r.OutputDir)
		assert.True(t, os.IsNotExist(statErr), "loser %s output dir must be removed", r.Backend)
	}
}
