package faults

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/lguimbarda/min-query/query/core"
)

// Fault is an element fault and the position it held in the traversal
// that produced it. Positions count values and faults alike, from zero.
type Fault struct {
	Position int
	Err      error
}

func (f Fault) Error() string {
	return fmt.Sprintf("position %d: %v", f.Position, f.Err)
}

func (f Fault) Unwrap() error {
	return f.Err
}

// Log accumulates the faults seen by Record. It may be shared by
// concurrent traversals.
type Log struct {
	mu     sync.Mutex
	faults []Fault
	seen   int
	match  func(error) bool
	limit  int // 0 = unlimited
}

// LogOption configures a Log.
type LogOption func(*Log)

// Matching restricts the log to faults for which predicate returns true.
func Matching(predicate func(error) bool) LogOption {
	return func(l *Log) {
		l.match = predicate
	}
}

// Limit keeps only the first n matching faults. Later ones are still
// counted by Seen.
func Limit(n int) LogOption {
	return func(l *Log) {
		l.limit = n
	}
}

// NewLog creates an empty Log.
func NewLog(opts ...LogOption) *Log {
	l := &Log{match: func(error) bool { return true }}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Log) add(pos int, err error) {
	if !l.match(err) {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seen++
	if l.limit > 0 && len(l.faults) >= l.limit {
		return
	}
	l.faults = append(l.faults, Fault{Position: pos, Err: err})
}

// Faults returns a copy of the kept faults in the order they were seen.
func (l *Log) Faults() []Fault {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Fault, len(l.faults))
	copy(out, l.faults)
	return out
}

// Seen returns the number of matching faults, including those dropped by
// Limit.
func (l *Log) Seen() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seen
}

// Err joins the kept faults into one error, or returns nil if there are
// none. errors.Is and errors.As see through to each fault.
func (l *Log) Err() error {
	faults := l.Faults()
	errs := make([]error, len(faults))
	for i, f := range faults {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// Record creates a Transformer that passes its input through unchanged and
// adds every fault to l with its position. Positions restart with each
// traversal.
func Record[T any](l *Log) core.Transformer[T, T] {
	return core.Transform[T, T](func(seq core.Sequence[T]) core.Sequence[T] {
		return core.Generator[T](func(ctx context.Context) core.Cursor[T] {
			in := seq.Iterate(ctx)
			pos := 0
			return core.NewCursor(func() core.Result[T] {
				res := in.Advance()
				if core.IsEnd(res) {
					return res
				}
				if res.IsError() {
					l.add(pos, res.Error())
				}
				pos++
				return res
			}, in.Close)
		})
	})
}
