package chksum

import "sync/atomic"

// Exit codes, following sysexits.h.
const (
	ExitOK       = 0
	ExitUsage    = 64
	ExitSoftware = 70
	ExitIOErr    = 74
)

// Status summarizes a run.
type Status int

const (
	// StatusSuccess means every target succeeded. It is the
	// identity of Combine.
	StatusSuccess Status = iota

	// StatusFailure means at least one target failed.
	StatusFailure
)

func (s Status) String() string {
	if s == StatusFailure {
		return "failure"
	}

	return "success"
}

// Combine folds two statuses: failure absorbs, success is
// neutral. It is commutative, associative and idempotent.
func Combine(a, b Status) Status {
	if a == StatusFailure || b == StatusFailure {
		return StatusFailure
	}

	return StatusSuccess
}

// StatusOf classifies one outcome.
func StatusOf(o Outcome) Status {
	if o.Failed() {
		return StatusFailure
	}

	return StatusSuccess
}

// ExitCode maps the status to a process exit code.
func (s Status) ExitCode() int {
	if s == StatusFailure {
		return ExitIOErr
	}

	return ExitOK
}

// Fold accumulates outcomes from concurrent workers. The
// zero value is ready to use and reports success.
type Fold struct {
	status atomic.Int32
}

// Add records o.
func (f *Fold) Add(o Outcome) {
	st := StatusOf(o)

	for {
		old := f.Status()
		next := Combine(old, st)

		if next == old ||
			f.status.CompareAndSwap(int32(old), int32(next)) {
			return
		}
	}
}

// Status returns the folded status.
func (f *Fold) Status() Status {
	return Status(f.status.Load())
}
