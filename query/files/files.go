// Package files provides sequences read from the file system: text lines,
// CSV rows, JSON lines and directory walks.
//
// Path-based sequences open their file on the first advance of every
// traversal and close it when the cursor is closed. Reader-based
// sequences consume their reader, so only the first traversal sees the
// data; put a cache.Cached in front to replay it.
package files

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"

	"github.com/lguimbarda/min-query/query/core"
)

// fatal marks a decode error after which nothing more can be read.
type fatal struct{ err error }

func (f fatal) Error() string { return f.err.Error() }

// decoder returns the next item. io.EOF ends the sequence, a fatal error
// ends it after one fault, any other error is the fault of that item.
type decoder[T any] func() (T, error)

func decoded[T any](open func() (io.ReadCloser, error), newDecoder func(io.Reader) decoder[T]) core.Sequence[T] {
	return core.Generator[T](func(ctx context.Context) core.Cursor[T] {
		var rc io.ReadCloser
		var next decoder[T]
		done := false
		return core.NewSourceCursor(ctx, func() core.Result[T] {
			if done {
				return core.EndOfSequence[T]()
			}
			if next == nil {
				var err error
				if rc, err = open(); err != nil {
					done = true
					return core.Err[T](err)
				}
				next = newDecoder(rc)
			}
			v, err := next()
			if err == nil {
				return core.Ok(v)
			}
			if err == io.EOF {
				done = true
				return core.EndOfSequence[T]()
			}
			var f fatal
			if errors.As(err, &f) {
				done = true
				return core.Err[T](f.err)
			}
			return core.Err[T](err)
		}, func() {
			if rc != nil {
				rc.Close()
			}
		})
	})
}

func openFile(path string) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return os.Open(path)
	}
}

func reader(r io.Reader) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return io.NopCloser(r), nil
	}
}

func scanLines(r io.Reader) decoder[string] {
	sc := bufio.NewScanner(r)
	return func() (string, error) {
		if sc.Scan() {
			return sc.Text(), nil
		}
		if err := sc.Err(); err != nil {
			return "", fatal{err}
		}
		return "", io.EOF
	}
}

// Lines creates a Sequence of the lines of the file at path, without
// their line terminators.
func Lines(path string) core.Sequence[string] {
	return decoded(openFile(path), scanLines)
}

// LinesFrom creates a Sequence of the lines read from r.
func LinesFrom(r io.Reader) core.Sequence[string] {
	return decoded(reader(r), scanLines)
}
