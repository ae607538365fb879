// Package verifier races CPAChecker's three supported backend solvers
// (MathSat, Z3, SMTInterpol) against a transformed program and reports
// the first one to prove `Verification result: TRUE`.
//
// Grounded on original_source/shadowdp/checker.py's check()/
// _thread_wait_for(): the same three `cpa.sh` invocations, the same
// 30-second per-backend timeout, and the same "first TRUE wins, kill
// the rest" policy, ported from subprocess.Popen + threading.Thread +
// queue.Queue to os/exec + goroutines + a result channel gated by
// context.Context cancellation — the idiomatic Go shape for a
// first-response-wins race, per the teacher's own use of context
// cancellation for bounded subprocess work (signals/http.go's graceful
// shutdown deadline).
package verifier

import "time"

// Backend is one of the three solver configurations checker.py drives
// through CPAChecker's predicate analysis.
type Backend struct {
	Name string
	// Args are flags appended to `cpa.sh <path>`, before any caller-
	// supplied extra arguments. OutputPath is substituted with the
	// backend's own output directory.
	Args       func(path, outputPath string) []string
	OutputPath func(funcName string) string
}

// DefaultTimeout is the per-backend budget checker.py hard-codes as a
// 30-second subprocess.communicate(timeout=30).
const DefaultTimeout = 30 * time.Second

func outputDirFor(funcName, backend string) string {
	return "output-" + funcName + "-" + backend
}

// Backends is the fixed three-solver roster the race always runs;
// checker.py never makes this configurable, so neither does this port.
func Backends() []Backend {
	return []Backend{
		{
			Name: "MathSat",
			Args: func(path, outputPath string) []string {
				return []string{
					"-predicateAnalysis", path, "-preprocess",
					"-setprop", "cpa.predicate.encodeFloatAs=RATIONAL",
					"-setprop", "cpa.predicate.encodeBitvectorAs=INTEGER",
					"-setprop", "solver.nonLinearArithmetic=USE",
					"-setprop", "output.path=" + outputPath,
					"-setprop", "solver.solver=MATHSAT5",
				}
			},
			OutputPath: func(funcName string) string { return outputDirFor(funcName, "MathSat") },
		},
		{
			Name: "Z3",
			Args: func(path, outputPath string) []string {
				return []string{
					"-predicateAnalysis", path, "-preprocess",
					"-setprop", "cpa.predicate.encodeFloatAs=RATIONAL",
					"-setprop", "cpa.predicate.encodeBitvectorAs=INTEGER",
					"-setprop", "solver.nonLinearArithmetic=USE",
					"-setprop", "output.path=" + outputPath,
					"-setprop", "solver.solver=Z3",
				}
			},
			OutputPath: func(funcName string) string { return outputDirFor(funcName, "Z3") },
		},
		{
			Name: "SMTInterpol",
			Args: func(path, outputPath string) []string {
				return []string{
					"-predicateAnalysis-linear", path, "-preprocess",
					"-setprop", "solver.solver=smtinterpol",
					"-setprop", "output.path=" + outputPath,
				}
			},
			OutputPath: func(funcName string) string { return outputDirFor(funcName, "SMTInterpol") },
		},
	}
}
