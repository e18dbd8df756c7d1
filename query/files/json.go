package files

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/lguimbarda/min-query/query/core"
)

func jsonLines[T any](r io.Reader) decoder[T] {
	next := scanLines(r)
	return func() (T, error) {
		var v T
		for {
			line, err := next()
			if err != nil {
				return v, err
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			err = json.Unmarshal([]byte(line), &v)
			return v, err
		}
	}
}

// JSONLines creates a Sequence of the values decoded from the file at
// path, one JSON document per line. Blank lines are skipped. A line that
// does not decode is the fault of that line.
func JSONLines[T any](path string) core.Sequence[T] {
	return decoded(openFile(path), jsonLines[T])
}

// JSONLinesFrom creates a Sequence of the JSON documents read from r, one
// per line.
func JSONLinesFrom[T any](r io.Reader) core.Sequence[T] {
	return decoded(reader(r), jsonLines[T])
}

// WriteJSONLines writes every element of seq to w as one JSON document per
// line. It stops at the first fault or write error.
func WriteJSONLines[T any](ctx context.Context, w io.Writer, seq core.Sequence[T]) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for v, err := range core.All(ctx, seq) {
		if err != nil {
			return err
		}
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return bw.Flush()
}
