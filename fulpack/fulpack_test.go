package fulpack_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shadowdp-go/shadowdp/fulpack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests build their own fixture archives on the fly (the verifier
// package's only use of fulpack — packing a solver's winning output
// directory — never ships a reference corpus of pre-built archives, so
// there is nothing equivalent to adapt from the teacher's fixture tree).
func buildSourceTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Statistics.txt"), []byte("Verification result: TRUE\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "report.txt"), []byte("details"), 0o644))
	return dir
}

func TestCreateAndInfoTarGz(t *testing.T) {
	src := buildSourceTree(t)
	out := filepath.Join(t.TempDir(), "output.tar.gz")

	createInfo, err := fulpack.Create([]string{src}, out, fulpack.ArchiveFormatTARGZ, nil)
	require.NoError(t, err)
	assert.Equal(t, fulpack.ArchiveFormatTARGZ, createInfo.Format)
	assert.True(t, createInfo.HasChecksums)
	assert.Equal(t, "xxh3-128", createInfo.ChecksumAlgorithm)

	info, err := fulpack.Info(out)
	require.NoError(t, err)
	assert.Equal(t, fulpack.ArchiveFormatTARGZ, info.Format)
	assert.Greater(t, info.EntryCount, 0)
}

func TestCreateScanExtractRoundTrip(t *testing.T) {
	src := buildSourceTree(t)
	out := filepath.Join(t.TempDir(), "output.tar")

	_, err := fulpack.Create([]string{src}, out, fulpack.ArchiveFormatTAR, nil)
	require.NoError(t, err)

	entries, err := fulpack.Scan(out, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)

	destDir := t.TempDir()
	result, err := fulpack.Extract(out, destDir, nil)
	require.NoError(t, err)
	assert.Greater(t, result.ExtractedCount, 0)
	assert.Equal(t, 0, result.ErrorCount)
}

func TestCreateWithExcludePattern(t *testing.T) {
	src := buildSourceTree(t)
	out := filepath.Join(t.TempDir(), "output.tar")

	_, err := fulpack.Create([]string{src}, out, fulpack.ArchiveFormatTAR, &fulpack.CreateOptions{
		ExcludePatterns: []string{"**/nested/**"},
	})
	require.NoError(t, err)

	entries, err := fulpack.Scan(out, nil)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Path, "nested")
	}
}

func TestVerifyValidArchive(t *testing.T) {
	src := buildSourceTree(t)
	out := filepath.Join(t.TempDir(), "output.tar.gz")
	_, err := fulpack.Create([]string{src}, out, fulpack.ArchiveFormatTARGZ, nil)
	require.NoError(t, err)

	result, err := fulpack.Verify(out, nil)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}
