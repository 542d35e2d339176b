package chksum_test

import (
	"bytes"
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/chksum/chksum"
	"github.com/byte4ever/chksum/color"
	"github.com/byte4ever/chksum/digest"
)

func missing(path string) chksum.Outcome {
	return chksum.Failed(&fs.PathError{
		Op: "open", Path: path, Err: fs.ErrNotExist,
	})
}

func TestPrinter_routes_lines(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	pr, err := chksum.NewPrinter(&stdout, &stderr)
	require.NoError(t, err)

	pairs := make(chan chksum.Pair)
	done := make(chan error, 1)

	go func() { done <- pr.Drain(pairs) }()

	pairs <- chksum.Pair{
		Target:  chksum.PathTarget("a.txt"),
		Outcome: chksum.Succeeded(digest.Digest{0xAB, 0x01}),
	}
	pairs <- chksum.Pair{
		Target:  chksum.PathTarget("gone"),
		Outcome: missing("gone"),
	}
	pairs <- chksum.Pair{
		Target:  chksum.StdinTarget(),
		Outcome: chksum.Succeeded(digest.Digest{0xFF}),
	}

	close(pairs)
	require.NoError(t, <-done)

	assert.Equal(t, "a.txt: ab01\n<stdin>: ff\n", stdout.String())
	assert.Equal(t, "gone: file does not exist\n", stderr.String())
}

func TestPrinter_styles_failures_only(t *testing.T) {
	t.Parallel()

	pr, err := chksum.NewPrinter(
		&bytes.Buffer{}, &bytes.Buffer{},
		chksum.WithStyle(color.NewStyler(color.ModeAlways, nil)),
	)
	require.NoError(t, err)

	assert.Equal(
		t,
		"ok: 01\n",
		pr.Line(chksum.Pair{
			Target:  chksum.PathTarget("ok"),
			Outcome: chksum.Succeeded(digest.Digest{0x01}),
		}),
	)
	assert.Equal(
		t,
		"\033[31mgone: file does not exist\033[0m\n",
		pr.Line(chksum.Pair{
			Target:  chksum.PathTarget("gone"),
			Outcome: missing("gone"),
		}),
	)
}

func TestPrinter_custom_formats(t *testing.T) {
	t.Parallel()

	pr, err := chksum.NewPrinter(
		&bytes.Buffer{}, &bytes.Buffer{},
		chksum.WithAlgorithm("md5"),
		chksum.WithFormats(
			"{algorithm} ({target}) = {digest}",
			"{target} [{kind}] {message}{unknown}",
		),
	)
	require.NoError(t, err)

	assert.Equal(
		t,
		"md5 (f) = 0a\n",
		pr.Line(chksum.Pair{
			Target:  chksum.PathTarget("f"),
			Outcome: chksum.Succeeded(digest.Digest{0x0A}),
		}),
	)
	assert.Equal(
		t,
		"g [io] file does not exist\n",
		pr.Line(chksum.Pair{
			Target:  chksum.PathTarget("g"),
			Outcome: missing("g"),
		}),
	)
}

func TestPrinter_bad_format(t *testing.T) {
	t.Parallel()

	_, err := chksum.NewPrinter(
		&bytes.Buffer{}, &bytes.Buffer{},
		chksum.WithFormats("{target", ""),
	)

	assert.Error(t, err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestPrinter_write_error_keeps_draining(t *testing.T) {
	t.Parallel()

	pr, err := chksum.NewPrinter(failingWriter{}, &bytes.Buffer{})
	require.NoError(t, err)

	pairs := make(chan chksum.Pair)
	done := make(chan error, 1)

	go func() { done <- pr.Drain(pairs) }()

	for range 10 {
		pairs <- chksum.Pair{
			Target:  chksum.PathTarget("x"),
			Outcome: chksum.Succeeded(digest.Digest{0x01}),
		}
	}

	close(pairs)

	err = <-done
	require.ErrorIs(t, err, chksum.ErrInternal)
	assert.ErrorContains(t, err, "disk full")
}
