// Grounded on bootstrap/install_download.go's findBinary +
// bootstrap.go's manifest-driven "locate this tool" flow, trimmed from
// "download, verify, install" down to "locate and verify" — this module
// never fetches CPAChecker itself, it only resolves wherever the
// operator already installed it.
package toolchain

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// CPAScriptRelPath is CPAChecker's solver driver script, relative to its
// installation root, invoked once per backend by the verifier race.
const CPAScriptRelPath = "scripts/cpa.sh"

// envHomeVar is the environment variable an operator can point at a
// CPAChecker installation without editing a config file.
const envHomeVar = "CPACHECKER_HOME"

// Solver is a located, executable CPAChecker installation.
type Solver struct {
	Home       string // installation root
	ScriptPath string // Home/scripts/cpa.sh, absolute
}

// Locate resolves a CPAChecker installation. It tries, in order: an
// explicit home directory (from --config), the CPACHECKER_HOME
// environment variable, and cpa.sh on $PATH (as a symlink or wrapper
// script whose own directory's parent is the installation root).
// checksum, if non-empty, is verified against the resolved script.
func Locate(configuredHome, checksum string) (*Solver, error) {
	for _, home := range candidateHomes(configuredHome) {
		if home == "" {
			continue
		}
		script := filepath.Join(home, CPAScriptRelPath)
		if info, err := os.Stat(script); err == nil && !info.IsDir() {
			if err := VerifySHA256(script, checksum); err != nil {
				return nil, err
			}
			abs, err := filepath.Abs(script)
			if err != nil {
				return nil, fmt.Errorf("resolve absolute path for %s: %w", script, err)
			}
			return &Solver{Home: home, ScriptPath: abs}, nil
		}
	}
	return nil, fmt.Errorf("toolchain: could not locate %s under a CPAChecker installation "+
		"(checked --config solver home, $%s, and PATH)", CPAScriptRelPath, envHomeVar)
}

func candidateHomes(configuredHome string) []string {
	homes := []string{configuredHome, os.Getenv(envHomeVar)}
	if path, err := exec.LookPath("cpa.sh"); err == nil {
		// cpa.sh itself lives at <home>/scripts/cpa.sh.
		homes = append(homes, filepath.Dir(filepath.Dir(path)))
	}
	return homes
}
