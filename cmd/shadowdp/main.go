// Command shadowdp is the CLI surface over cparse/transform/verifier: it
// parses a restricted-grammar C program, instruments it per §4.7's
// typing rules, and optionally races it against CPAChecker's three
// backend solvers.
//
// Grounded on gofulmen-schema/main.go's top-level switch-on-os.Args[1]
// dispatch (no cobra/cli framework in the teacher's own cmd/ tree, so
// none is introduced here either) and bootstrap/main.go's exit-code
// discipline: every path out of main returns through a single
// foundry.ExitCode rather than scattering os.Exit calls.
package main

import (
	"fmt"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage()
		return exitUsage
	}

	cmd := args[0]
	rest := args[1:]

	switch cmd {
	case "transform":
		return runTransform(rest)
	case "verify":
		return runVerify(rest)
	case "check":
		return runCheck(rest)
	case "help", "-h", "--help":
		usage()
		return exitSuccess
	default:
		fmt.Fprintf(os.Stderr, "shadowdp: unknown command %q\n", cmd)
		usage()
		return exitUsage
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `shadowdp commands:
  transform <files...>  Instrument one or more programs for shadow execution.
  verify <file>         Race a transformed program against the solver toolchain.
  check <files...>      transform + verify each file, printing a summary.

Run 'shadowdp <command> -h' for command-specific flags.
`)
}
