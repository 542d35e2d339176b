package source

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrIsDirectory is the cause reported for directories
// under DirReject.
var ErrIsDirectory = errors.New("is a directory")

// Open returns the byte source for path. The caller owns
// the returned reader and must close it.
func Open(path string, policy DirPolicy) (io.ReadCloser, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		fi, err := os.Open(path) //nolint:gosec // path is caller-provided by design
		if err != nil {
			return nil, err
		}

		return fi, nil
	}

	if policy == DirReject {
		return nil, &fs.PathError{
			Op:   "open",
			Path: path,
			Err:  ErrIsDirectory,
		}
	}

	files, err := listFiles(path)
	if err != nil {
		return nil, err
	}

	return &dirReader{files: files}, nil
}

// listFiles walks root in lexical order and returns the
// regular files below it. A symlinked root is resolved
// first since WalkDir does not descend into it. Symlinks
// below root are kept when they resolve to a regular file.
func listFiles(root string) ([]string, error) {
	const errCtx = "listing directory"

	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	var files []string

	err = filepath.WalkDir(
		resolved,
		func(pa string, de fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			switch {
			case de.Type().IsRegular():
				files = append(files, pa)
			case de.Type()&fs.ModeSymlink != 0:
				info, statErr := os.Stat(pa)
				if statErr != nil {
					return statErr
				}

				if info.Mode().IsRegular() {
					files = append(files, pa)
				}
			}

			return nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return files, nil
}

// dirReader concatenates files, opening each one only when
// the previous one is exhausted.
type dirReader struct {
	files []string
	cur   *os.File
}

func (dr *dirReader) Read(p []byte) (int, error) {
	for {
		if dr.cur == nil {
			if len(dr.files) == 0 {
				return 0, io.EOF
			}

			fi, err := os.Open(dr.files[0]) //nolint:gosec // walked from caller path
			if err != nil {
				return 0, err
			}

			dr.files = dr.files[1:]
			dr.cur = fi
		}

		n, err := dr.cur.Read(p)
		if errors.Is(err, io.EOF) {
			closeErr := dr.cur.Close()
			dr.cur = nil

			if closeErr != nil {
				return n, closeErr
			}

			if n > 0 {
				return n, nil
			}

			continue
		}

		return n, err
	}
}

func (dr *dirReader) Close() error {
	dr.files = nil

	if dr.cur == nil {
		return nil
	}

	err := dr.cur.Close()
	dr.cur = nil

	return err
}
