package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // The query faulted while running
	ExitCommandError = 2 // Bad flags, query file or source
)

// ExitError carries the exit code a failed command should end with.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps err with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// RecordWriter writes records in one of the output formats: "text" puts
// one record per line as sorted key=value pairs, "json" one JSON object
// per line.
type RecordWriter struct {
	Format string
	Writer io.Writer

	enc *json.Encoder
}

// Write writes one record.
func (w *RecordWriter) Write(r Record) error {
	if w.Format == "json" {
		if w.enc == nil {
			w.enc = json.NewEncoder(w.Writer)
		}
		return w.enc.Encode(r)
	}

	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(formatValue(r[k]))
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w.Writer, b.String())
	return err
}
