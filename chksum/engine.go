package chksum

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/byte4ever/chksum/digest"
	"github.com/byte4ever/chksum/source"
)

// Engine digests targets concurrently and prints one line
// per target.
type Engine struct {
	// Algorithm is the digest provider.
	Algorithm digest.Algorithm

	// Stdin backs the standard input target.
	Stdin io.Reader

	// Printer serializes all output.
	Printer *Printer

	// Workers bounds concurrent digests. Zero or less
	// means runtime.GOMAXPROCS(0).
	Workers int

	// DirPolicy decides how directory targets are read.
	DirPolicy source.DirPolicy
}

func (en *Engine) workers() int {
	if en.Workers > 0 {
		return en.Workers
	}

	return max(runtime.GOMAXPROCS(0), 1)
}

// Run digests every target and returns the folded status.
// It returns only after the printer has drained. A non-nil
// error wraps ErrInternal; the status is then unreliable.
func (en *Engine) Run(targets []Target) (Status, error) {
	const errCtx = "running engine"

	if en.Printer == nil {
		return StatusFailure, fmt.Errorf(
			"%s: %w: no printer", errCtx, ErrInternal,
		)
	}

	var (
		fold  Fold
		pairs = make(chan Pair)
		done  = make(chan error, 1)
		grp   errgroup.Group
		start = time.Now()
	)

	go func() {
		done <- en.Printer.Drain(pairs)
	}()

	slog.Debug(
		"dispatching",
		"algorithm", en.Algorithm.Name,
		"targets", len(targets),
		"workers", en.workers(),
	)

	grp.SetLimit(en.workers())

	for _, tgt := range targets {
		grp.Go(func() error {
			return en.process(tgt, pairs, &fold)
		})
	}

	workErr := grp.Wait()

	close(pairs)

	printErr := <-done

	status := fold.Status()

	slog.Debug(
		"finished",
		"status", status.String(),
		"elapsed", time.Since(start),
	)

	if workErr != nil {
		return StatusFailure, fmt.Errorf("%s: %w", errCtx, workErr)
	}

	if printErr != nil {
		return StatusFailure, fmt.Errorf("%s: %w", errCtx, printErr)
	}

	return status, nil
}

// process digests one target and hands the pair to the
// printer. Target failures become outcomes; only a panic
// is returned as an error.
func (en *Engine) process(
	tgt Target,
	pairs chan<- Pair,
	fold *Fold,
) (retErr error) {
	defer func() {
		if rec := recover(); rec != nil {
			retErr = fmt.Errorf(
				"%w: worker panicked on %s: %v",
				ErrInternal, tgt, rec,
			)
		}
	}()

	out := en.evaluate(tgt)

	fold.Add(out)

	slog.Debug(
		"target done",
		"target", tgt.String(),
		"failed", out.Failed(),
		"kind", out.Kind().String(),
		"error", out.Err(),
	)

	pairs <- Pair{Target: tgt, Outcome: out}

	return nil
}

// evaluate calls the digest provider at most once.
func (en *Engine) evaluate(tgt Target) Outcome {
	rc, err := tgt.open(en.Stdin, en.DirPolicy)
	if err != nil {
		return Failed(err)
	}

	dg, err := en.Algorithm.Compute(rc)

	closeErr := rc.Close()

	switch {
	case err != nil:
		return Failed(err)
	case closeErr != nil:
		return Failed(closeErr)
	default:
		return Succeeded(dg)
	}
}
