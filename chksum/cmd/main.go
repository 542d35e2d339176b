// Command chksum calculates MD5, SHA-1, SHA-2, SHA-3 or XXH3
// digests of files, directories or standard input, one
// subcommand per algorithm. Digests go to stdout, failures
// to stderr; the exit status follows sysexits.h.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/byte4ever/chksum/chksum"
)

// exitConfig is EX_CONFIG from sysexits.h.
const exitConfig = 78

var errConfig = errors.New("configuration error")

// version is set via ldflags.
var version = "dev"

func run(
	args []string,
	stdin io.Reader,
	stdout, stderr io.Writer,
) (int, error) {
	const errCtx = "chksum"

	ap := newApp(stdin, stdout, stderr)
	root := ap.command()
	// A nil slice makes cobra fall back to os.Args.
	root.SetArgs(append([]string{}, args...))

	cmd, err := root.ExecuteC()
	if cmd == nil {
		cmd = root
	}

	switch {
	case err == nil && ap.helpShown:
		return chksum.ExitUsage, nil
	case err == nil:
		return ap.code, nil
	case errors.Is(err, chksum.ErrInternal):
		return chksum.ExitSoftware, fmt.Errorf("%s: %w", errCtx, err)
	case errors.Is(err, errConfig):
		return exitConfig, fmt.Errorf("%s: %w", errCtx, err)
	default:
		_, _ = fmt.Fprint(stderr, cmd.UsageString())

		return chksum.ExitUsage, fmt.Errorf("%s: %w", errCtx, err)
	}
}

func main() {
	code, err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		slog.Error(err.Error())
	}

	os.Exit(code)
}
