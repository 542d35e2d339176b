package digest

import (
	"crypto/md5"  //nolint:gosec // checksum tool, not a security boundary
	"crypto/sha1" //nolint:gosec // checksum tool, not a security boundary
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/sha3"
)

var registry = []Algorithm{
	{Name: "md5", Title: "MD5", New: md5.New},
	{Name: "sha1", Title: "SHA-1", New: sha1.New},
	{Name: "sha2-224", Title: "SHA-2 224", New: sha256.New224},
	{Name: "sha2-256", Title: "SHA-2 256", New: sha256.New},
	{Name: "sha2-384", Title: "SHA-2 384", New: sha512.New384},
	{Name: "sha2-512", Title: "SHA-2 512", New: sha512.New},
	{Name: "sha3-224", Title: "SHA-3 224", New: sha3.New224},
	{Name: "sha3-256", Title: "SHA-3 256", New: sha3.New256},
	{Name: "sha3-384", Title: "SHA-3 384", New: sha3.New384},
	{Name: "sha3-512", Title: "SHA-3 512", New: sha3.New512},
	{Name: "xxh3", Title: "XXH3 64", New: newXXH3},
}

// xxh3.New returns a concrete *Hasher; wrap it so it fits
// the registry signature.
func newXXH3() hash.Hash {
	return xxh3.New()
}

// Algorithms returns every registered algorithm in
// registration order. The returned slice is a copy.
func Algorithms() []Algorithm {
	out := make([]Algorithm, len(registry))
	copy(out, registry)

	return out
}

// Lookup returns the algorithm registered under name.
func Lookup(name string) (Algorithm, error) {
	for _, al := range registry {
		if al.Name == name {
			return al, nil
		}
	}

	return Algorithm{}, fmt.Errorf(
		"looking up algorithm: %w: %q", ErrUnknownAlgorithm, name,
	)
}
