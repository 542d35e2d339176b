package chksum

import (
	"errors"
	"fmt"
	"io"

	"github.com/byte4ever/chksum/source"
)

// StdinDisplay is how the standard input target is shown.
const StdinDisplay = "<stdin>"

var errNoStdin = errors.New("standard input is not available")

// Target is one unit of work: a filesystem path or the
// standard input stream.
type Target struct {
	path  string
	stdin bool
}

// PathTarget returns a target for path.
func PathTarget(path string) Target {
	return Target{path: path}
}

// StdinTarget returns the standard input target.
func StdinTarget() Target {
	return Target{stdin: true}
}

// String returns the display form used in output lines.
func (t Target) String() string {
	if t.stdin {
		return StdinDisplay
	}

	return t.path
}

// open acquires the byte source for t. The stdin reader is
// shared and is never closed here.
func (t Target) open(
	stdin io.Reader,
	policy source.DirPolicy,
) (io.ReadCloser, error) {
	if t.stdin {
		if stdin == nil {
			return nil, errNoStdin
		}

		return io.NopCloser(stdin), nil
	}

	return source.Open(t.path, policy)
}

// Targets resolves CLI operands into the target sequence.
// stdin and paths are mutually exclusive and one of them
// is required. Paths are kept in order, duplicates
// included.
func Targets(paths []string, stdin bool) ([]Target, error) {
	const errCtx = "resolving targets"

	switch {
	case stdin && len(paths) > 0:
		return nil, fmt.Errorf(
			"%s: %w: --stdin cannot be combined with paths",
			errCtx, ErrUsage,
		)
	case stdin:
		return []Target{StdinTarget()}, nil
	case len(paths) == 0:
		return nil, fmt.Errorf(
			"%s: %w: at least one path or --stdin is required",
			errCtx, ErrUsage,
		)
	}

	targets := make([]Target, 0, len(paths))
	for _, pa := range paths {
		targets = append(targets, PathTarget(pa))
	}

	return targets, nil
}
