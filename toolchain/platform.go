// Package toolchain locates and validates the external solver binaries
// the verifier race shells out to (CPAChecker's cpa.sh driving MathSat,
// Z3, and SMTInterpol) — this module never bundles or downloads them,
// since the Non-goals exclude self-verification and the solvers are
// GPL/LGPL-licensed third-party installs the operator provides.
//
// Grounded on bootstrap/platform.go's Platform/normalizeOS/normalizeArch,
// trimmed from "download and install a tool for this platform" down to
// "describe the current platform for a diagnostic", since toolchain only
// ever locates binaries already on disk.
package toolchain

import (
	"fmt"
	"runtime"
)

// Platform is the operating system and architecture a solver binary was
// built for, reported in diagnostics when a located binary fails its
// checksum or a configured binary is missing.
type Platform struct {
	OS   string
	Arch string
}

// CurrentPlatform returns the platform this process is running on.
func CurrentPlatform() Platform {
	return Platform{OS: normalizeOS(runtime.GOOS), Arch: normalizeArch(runtime.GOARCH)}
}

func (p Platform) String() string { return fmt.Sprintf("%s-%s", p.OS, p.Arch) }

func normalizeOS(goos string) string {
	switch goos {
	case "darwin", "linux", "windows":
		return goos
	default:
		return goos
	}
}

func normalizeArch(goarch string) string {
	switch goarch {
	case "amd64", "arm64":
		return goarch
	default:
		return goarch
	}
}
