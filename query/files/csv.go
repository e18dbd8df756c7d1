package files

import (
	"encoding/csv"
	"errors"
	"io"

	"github.com/lguimbarda/min-query/query/core"
)

// CSVOption configures a CSV reader.
type CSVOption func(*csv.Reader)

// WithComma sets the field delimiter (default is ',').
func WithComma(comma rune) CSVOption {
	return func(r *csv.Reader) {
		r.Comma = comma
	}
}

// WithComment sets the comment character. Lines beginning with it are
// ignored.
func WithComment(comment rune) CSVOption {
	return func(r *csv.Reader) {
		r.Comment = comment
	}
}

// WithFieldsPerRecord sets the expected number of fields per record; see
// csv.Reader.FieldsPerRecord.
func WithFieldsPerRecord(n int) CSVOption {
	return func(r *csv.Reader) {
		r.FieldsPerRecord = n
	}
}

// WithLazyQuotes allows lazy quotes in quoted fields.
func WithLazyQuotes(lazy bool) CSVOption {
	return func(r *csv.Reader) {
		r.LazyQuotes = lazy
	}
}

// WithTrimLeadingSpace trims leading whitespace from fields.
func WithTrimLeadingSpace(trim bool) CSVOption {
	return func(r *csv.Reader) {
		r.TrimLeadingSpace = trim
	}
}

func newCSVReader(r io.Reader, opts []CSVOption) *csv.Reader {
	cr := csv.NewReader(r)
	for _, opt := range opts {
		opt(cr)
	}
	return cr
}

// readRecord treats a malformed row as the fault of that row; any other
// read error ends the sequence.
func readRecord(cr *csv.Reader) ([]string, error) {
	record, err := cr.Read()
	var perr *csv.ParseError
	switch {
	case err == nil, err == io.EOF:
		return record, err
	case errors.As(err, &perr):
		return nil, err
	}
	return nil, fatal{err}
}

func csvRows(opts []CSVOption) func(io.Reader) decoder[[]string] {
	return func(r io.Reader) decoder[[]string] {
		cr := newCSVReader(r, opts)
		return func() ([]string, error) {
			return readRecord(cr)
		}
	}
}

// CSV creates a Sequence of the rows of the CSV file at path. A malformed
// row is the fault of that row; reading continues with the next.
func CSV(path string, opts ...CSVOption) core.Sequence[[]string] {
	return decoded(openFile(path), csvRows(opts))
}

// CSVFrom creates a Sequence of the CSV rows read from r.
func CSVFrom(r io.Reader, opts ...CSVOption) core.Sequence[[]string] {
	return decoded(reader(r), csvRows(opts))
}

func csvMaps(opts []CSVOption) func(io.Reader) decoder[map[string]string] {
	return func(r io.Reader) decoder[map[string]string] {
		cr := newCSVReader(r, opts)
		var header []string
		return func() (map[string]string, error) {
			if header == nil {
				h, err := cr.Read()
				if err != nil {
					if err == io.EOF {
						return nil, io.EOF
					}
					return nil, fatal{err}
				}
				header = h
			}
			record, err := readRecord(cr)
			if err != nil {
				return nil, err
			}
			row := make(map[string]string, len(header))
			for i, name := range header {
				if i < len(record) {
					row[name] = record[i]
				}
			}
			return row, nil
		}
	}
}

// CSVMaps creates a Sequence of the rows of the CSV file at path keyed by
// the names in its first row. A file with no rows is empty; a bad header
// ends the sequence after one fault.
func CSVMaps(path string, opts ...CSVOption) core.Sequence[map[string]string] {
	return decoded(openFile(path), csvMaps(opts))
}
