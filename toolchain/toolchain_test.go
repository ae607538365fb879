package toolchain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateFindsConfiguredHome(t *testing.T) {
	dir := t.TempDir()
	scriptsDir := filepath.Join(dir, "scripts")
	require.NoError(t, os.MkdirAll(scriptsDir, 0o755))
	script := filepath.Join(scriptsDir, "cpa.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho ok\n"), 0o755))

	s, err := Locate(dir, "")
	require.NoError(t, err)
	assert.Equal(t, dir, s.Home)
	assert.Equal(t, script, s.ScriptPath)
}

func TestLocateRejectsChecksumMismatch(t *testing.T) {
	dir := t.TempDir()
	scriptsDir := filepath.Join(dir, "scripts")
	require.NoError(t, os.MkdirAll(scriptsDir, 0o755))
	script := filepath.Join(scriptsDir, "cpa.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho ok\n"), 0o755))

	_, err := Locate(dir, "deadbeef")
	require.Error(t, err)
	var mismatch *ChecksumMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestLocateErrorsWhenNotFound(t *testing.T) {
	_, err := Locate(t.TempDir(), "")
	require.Error(t, err)
}

func TestCurrentPlatformString(t *testing.T) {
	p := CurrentPlatform()
	assert.Contains(t, p.String(), "-")
}
