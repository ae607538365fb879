package fingerprint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfIsDeterministic(t *testing.T) {
	a := Of([]byte("int f(int x) { return x; }"))
	b := Of([]byte("int f(int x) { return x; }"))
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hex(), b.Hex())
}

func TestOfDiffersOnContentChange(t *testing.T) {
	a := Of([]byte("int f(int x) { return x; }"))
	b := Of([]byte("int f(int x) { return x + 1; }"))
	assert.False(t, a.Equal(b))
}

func TestOfStringMatchesOf(t *testing.T) {
	s := "some C source text"
	assert.True(t, Of([]byte(s)).Equal(OfString(s)))
}

func TestOfFileMatchesOf(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.c")
	content := []byte("double f(double eps) { return eps; }")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	got, err := OfFile(path)
	require.NoError(t, err)
	assert.True(t, got.Equal(Of(content)))
}

func TestUnchangedDetectsEdit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.c")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	before, err := OfFile(path)
	require.NoError(t, err)

	same, err := Unchanged(path, before)
	require.NoError(t, err)
	assert.True(t, same)

	require.NoError(t, os.WriteFile(path, []byte("b"), 0o644))
	same, err = Unchanged(path, before)
	require.NoError(t, err)
	assert.False(t, same)
}

func TestStringFormat(t *testing.T) {
	d := Of([]byte("x"))
	assert.Regexp(t, `^xxh3-128:[0-9a-f]{32}$`, d.String())
}
