package fingerprint

import (
	"fmt"
	"io"
	"os"

	"github.com/zeebo/xxh3"
)

// OfFile digests the contents of the file at path.
func OfFile(path string) (Digest, error) {
	// #nosec G304 -- path is an operator-supplied source/output file
	f, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("open %s for fingerprint: %w", path, err)
	}
	defer f.Close()
	return OfReader(f)
}

// OfReader digests a stream without buffering it into memory first.
func OfReader(r io.Reader) (Digest, error) {
	h := xxh3.New()
	if _, err := io.Copy(h, r); err != nil {
		return Digest{}, fmt.Errorf("read fingerprint source: %w", err)
	}
	return Digest{bytes: h.Sum128().Bytes()}, nil
}

// Unchanged reports whether the file at path still matches want.
func Unchanged(path string, want Digest) (bool, error) {
	got, err := OfFile(path)
	if err != nil {
		return false, err
	}
	return got.Equal(want), nil
}
