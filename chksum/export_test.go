package chksum

import (
	"io"

	"github.com/byte4ever/chksum/source"
)

// Open exposes open to the external test package.
func (t Target) Open(
	stdin io.Reader,
	policy source.DirPolicy,
) (io.ReadCloser, error) {
	return t.open(stdin, policy)
}
