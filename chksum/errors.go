package chksum

import "errors"

var (
	// ErrUsage marks invocations rejected before any target
	// is dispatched.
	ErrUsage = errors.New("usage error")

	// ErrInternal marks broken engine invariants: the printer
	// failed or a worker panicked. Output may be incomplete.
	ErrInternal = errors.New("internal error")
)
