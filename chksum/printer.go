package chksum

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/valyala/fasttemplate"

	"github.com/byte4ever/chksum/color"
)

// Default line templates.
const (
	DefaultSuccessFormat = "{target}: {digest}"
	DefaultFailureFormat = "{target}: {message}"
)

// Printer is the single consumer of result pairs. It owns
// both output streams for the duration of Drain.
type Printer struct {
	stdout    io.Writer
	stderr    io.Writer
	style     color.Styler
	algorithm string
	success   *fasttemplate.Template
	failure   *fasttemplate.Template
}

// PrinterOption customizes a Printer.
type PrinterOption func(*Printer) error

// WithStyle sets the styler applied to failure lines.
func WithStyle(st color.Styler) PrinterOption {
	return func(pr *Printer) error {
		pr.style = st

		return nil
	}
}

// WithAlgorithm sets the value of the {algorithm} tag.
func WithAlgorithm(name string) PrinterOption {
	return func(pr *Printer) error {
		pr.algorithm = name

		return nil
	}
}

// WithFormats overrides the success and failure line
// templates. Empty strings keep the default. Templates
// use {tag} placeholders: target, digest, message,
// algorithm and kind.
func WithFormats(success, failure string) PrinterOption {
	return func(pr *Printer) error {
		const errCtx = "setting formats"

		if success != "" {
			tpl, err := fasttemplate.NewTemplate(success, "{", "}")
			if err != nil {
				return fmt.Errorf("%s: success: %w", errCtx, err)
			}

			pr.success = tpl
		}

		if failure != "" {
			tpl, err := fasttemplate.NewTemplate(failure, "{", "}")
			if err != nil {
				return fmt.Errorf("%s: failure: %w", errCtx, err)
			}

			pr.failure = tpl
		}

		return nil
	}
}

// NewPrinter returns a printer writing digests to stdout
// and failures to stderr.
func NewPrinter(
	stdout, stderr io.Writer,
	opts ...PrinterOption,
) (*Printer, error) {
	const errCtx = "creating printer"

	pr := &Printer{
		stdout:  stdout,
		stderr:  stderr,
		success: fasttemplate.New(DefaultSuccessFormat, "{", "}"),
		failure: fasttemplate.New(DefaultFailureFormat, "{", "}"),
	}

	for _, opt := range opts {
		if err := opt(pr); err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	return pr, nil
}

// Drain prints every pair received from pairs until the
// channel is closed. After the first write error it keeps
// receiving without writing, so senders never block
// forever, and returns that error wrapped in ErrInternal.
func (pr *Printer) Drain(pairs <-chan Pair) (retErr error) {
	const errCtx = "printing results"

	defer func() {
		if rec := recover(); rec != nil {
			// Unblock remaining senders before reporting.
			for range pairs {
			}

			retErr = fmt.Errorf(
				"%s: %w: printer panicked: %v",
				errCtx, ErrInternal, rec,
			)
		}
	}()

	var writeErr error

	for pair := range pairs {
		if writeErr != nil {
			continue
		}

		if err := pr.print(pair); err != nil {
			writeErr = err

			slog.Error(
				"printer stopped writing",
				"target", pair.Target.String(),
				"error", err,
			)
		}
	}

	if writeErr != nil {
		return fmt.Errorf("%s: %w: %w", errCtx, ErrInternal, writeErr)
	}

	return nil
}

// print renders one line and writes it with a single
// Write call.
func (pr *Printer) print(pair Pair) error {
	out := pr.Line(pair)

	w := pr.stdout
	if pair.Outcome.Failed() {
		w = pr.stderr
	}

	n, err := io.WriteString(w, out)
	if err != nil {
		return err
	}

	if n != len(out) {
		return io.ErrShortWrite
	}

	return nil
}

// Line renders pair as it would be printed, including the
// trailing newline and, for failures, styling.
func (pr *Printer) Line(pair Pair) string {
	tags := map[string]interface{}{
		"target":    pair.Target.String(),
		"algorithm": pr.algorithm,
		"kind":      pair.Outcome.Kind().String(),
		"digest":    "",
		"message":   "",
	}

	if !pair.Outcome.Failed() {
		tags["digest"] = pair.Outcome.Digest().String()

		return pr.success.ExecuteString(tags) + "\n"
	}

	tags["message"] = pair.Outcome.Message()

	return pr.style.Failure(pr.failure.ExecuteString(tags)) + "\n"
}
