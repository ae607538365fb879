// Package foundry provides the small set of operator-facing conventions
// cmd/shadowdp needs: standardized process exit codes and a UUIDv7
// correlation ID for tying a run's logs, telemetry, and verifier
// subprocess output together.
//
// Grounded on foundry/exit_codes.go, trimmed from a re-export of
// github.com/fulmenhq/crucible/foundry's full multi-team exit-code
// catalog down to the bands cmd/shadowdp actually returns — the
// crucible module is a private monorepo dependency this module cannot
// pull in (DESIGN.md), so the numeric values are inlined here instead
// of re-exported, keeping the same banding scheme (0-1 standard, 20-29
// config, 30-39 runtime, 40-49 usage, 50-59 file access, 60-69 data
// processing) the teacher's catalog uses.
package foundry

// ExitCode is a process exit status. It is an alias of int (not a
// distinct type), so it mixes freely with plain ints; the name only
// makes cmd/shadowdp's exit-code table read as intent, not magic numbers.
type ExitCode = int

const (
	ExitSuccess ExitCode = 0
	ExitFailure ExitCode = 1

	// Configuration & Validation (20-29)
	ExitConfigInvalid      ExitCode = 20
	ExitConfigFileNotFound ExitCode = 24

	// Runtime Errors (30-39)
	ExitExternalServiceUnavailable ExitCode = 32 // no solver backend could verify the program
	ExitOperationTimeout           ExitCode = 34 // every backend hit its 30s timeout

	// Command-Line Usage Errors (40-49)
	ExitInvalidArgument         ExitCode = 41
	ExitMissingRequiredArgument ExitCode = 42
	ExitUsage                   ExitCode = 49

	// Permissions & File Access (50-59)
	ExitFileNotFound   ExitCode = 52
	ExitFileWriteError ExitCode = 57

	// Data & Processing Errors (60-69)
	ExitDataInvalid          ExitCode = 60
	ExitParseError           ExitCode = 61
	ExitTransformationFailed ExitCode = 62
	ExitDataCorrupt          ExitCode = 63

	// Security & Authentication (70-79)
	ExitSecurityViolation ExitCode = 73

	// Resource limits, shared by decompression-bomb and solver-resource
	// exhaustion diagnostics.
	ExitResourceExhausted ExitCode = 81
)
