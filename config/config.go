package config

import (
	"os"
	"path/filepath"
)

// GetConfigPaths returns the default config search paths for shadowdp.
func GetConfigPaths() []string {
	return GetAppConfigPaths("shadowdp")
}

// GetAppConfigPaths returns config search paths for a given app name
// Searches in order:
//  1. XDG config dir (e.g., ~/.config/appName/config.yaml)
//  2. Dot-directory in home (e.g., ~/.appName/config.yaml)
//  3. Dot-file in home (e.g., ~/.appName.yaml)
//  4. Current directory (e.g., ./appName.yaml)
//
// If legacyNames are provided, also searches those locations for backward compatibility
func GetAppConfigPaths(appName string, legacyNames ...string) []string {
	xdg := GetXDGBaseDirs()
	home := os.Getenv("HOME")

	var paths []string

	// 1. XDG config directory (preferred)
	paths = append(paths,
		filepath.Join(xdg.ConfigHome, appName, "config.yaml"),
		filepath.Join(xdg.ConfigHome, appName, "config.json"),
	)

	// 2. Dot-directory in home
	if home != "" {
		paths = append(paths,
			filepath.Join(home, "."+appName, "config.yaml"),
			filepath.Join(home, "."+appName, "config.json"),
		)
	}

	// 3. Dot-file in home (single file)
	if home != "" {
		paths = append(paths,
			filepath.Join(home, "."+appName+".yaml"),
			filepath.Join(home, "."+appName+".json"),
		)
	}

	// 4. Current directory
	paths = append(paths,
		"./"+appName+".yaml",
		"./"+appName+".json",
		"./."+appName+".yaml",
		"./."+appName+".json",
	)

	// 5. Legacy locations (if provided)
	for _, legacyName := range legacyNames {
		if legacyName != appName {
			paths = append(paths,
				filepath.Join(xdg.ConfigHome, legacyName, "config.json"),
			)
			if home != "" {
				paths = append(paths,
					filepath.Join(home, "."+legacyName+".json"),
				)
			}
		}
	}

	return paths
}
