package chksum

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/byte4ever/chksum/digest"
)

// Kind classifies a failed outcome.
type Kind int

const (
	// KindNone is the kind of a successful outcome.
	KindNone Kind = iota

	// KindIO covers open, stat and read failures.
	KindIO

	// KindFormat covers any other error surfaced by the
	// digest provider.
	KindFormat
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindFormat:
		return "format"
	default:
		return "none"
	}
}

// Outcome is the result of digesting one target: either a
// digest or an error.
type Outcome struct {
	digest digest.Digest
	err    error
}

// Succeeded returns a successful outcome.
func Succeeded(d digest.Digest) Outcome {
	return Outcome{digest: d}
}

// Failed returns a failed outcome. A nil err is replaced
// by a generic one so that the outcome still fails.
func Failed(err error) Outcome {
	if err == nil {
		err = errors.New("unknown failure")
	}

	return Outcome{err: err}
}

// Failed reports whether the outcome is a failure.
func (o Outcome) Failed() bool {
	return o.err != nil
}

// Digest returns the digest of a successful outcome.
func (o Outcome) Digest() digest.Digest {
	return o.digest
}

// Err returns the failure cause, or nil.
func (o Outcome) Err() error {
	return o.err
}

// Kind classifies the failure.
func (o Outcome) Kind() Kind {
	if o.err == nil {
		return KindNone
	}

	var (
		pe *fs.PathError
		se *os.SyscallError
	)

	switch {
	case errors.As(o.err, &pe),
		errors.As(o.err, &se),
		errors.Is(o.err, io.ErrUnexpectedEOF):
		return KindIO
	default:
		return KindFormat
	}
}

// Message returns the lowercased failure text. Path errors
// contribute only their cause since the path is already
// shown as the target.
func (o Outcome) Message() string {
	if o.err == nil {
		return ""
	}

	cause := o.err

	var pe *fs.PathError
	if errors.As(cause, &pe) {
		cause = pe.Err
	}

	return strings.ToLower(cause.Error())
}

// Pair travels from a worker to the printer.
type Pair struct {
	Target  Target
	Outcome Outcome
}
