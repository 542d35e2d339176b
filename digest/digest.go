package digest

import (
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
)

// ErrUnknownAlgorithm is returned by Lookup for names that
// are not registered.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Digest is the raw output of a hash function.
type Digest []byte

// String returns the digest as lowercase hexadecimal.
func (d Digest) String() string {
	return hex.EncodeToString(d)
}

// Algorithm binds a command name to a hash constructor.
type Algorithm struct {
	// Name is the subcommand name, e.g. "sha2-256".
	Name string

	// Title is the human readable name, e.g. "SHA-2 256".
	Title string

	// New returns a fresh hash state.
	New func() hash.Hash
}

// Compute streams r into a fresh hash state and returns
// the resulting digest. It reads r until EOF and does not
// close it.
func (a Algorithm) Compute(r io.Reader) (Digest, error) {
	const errCtx = "computing digest"

	if a.New == nil {
		return nil, fmt.Errorf(
			"%s: %w: %q", errCtx, ErrUnknownAlgorithm, a.Name,
		)
	}

	ha := a.New()

	if _, err := io.Copy(ha, r); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return ha.Sum(nil), nil
}
