// Package cache provides Cached, a sequence that traverses its source at
// most once no matter how many cursors read it, and hands every element it
// has seen to later cursors from a shared buffer.
//
// Cached is the one concurrency primitive of the query library. Cursors may
// be advanced from different goroutines: pulls from the source are
// serialized, so the source only needs to tolerate being advanced from
// different goroutines one step at a time, never concurrently. Reads of
// already-buffered positions take no lock.
package cache

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lguimbarda/min-query/query/core"
	"github.com/lguimbarda/min-query/query/observe"
)

// Cached wraps a sequence so that each of its elements is produced once and
// replayed to every cursor. The buffer is an append-only prefix of the
// source: elements are never reordered or removed.
type Cached[T any] struct {
	source core.Sequence[T]

	// buf is the published prefix. The slice behind the pointer is never
	// modified within its length; appends publish a new header.
	buf  atomic.Pointer[[]T]
	done atomic.Bool

	mu     sync.Mutex // guards the append path and the fields below
	cursor core.Cursor[T]
	closed bool
	pulls  int64
}

// New wraps source. Nothing is pulled until a cursor needs an element the
// buffer does not hold yet.
func New[T any](source core.Sequence[T]) *Cached[T] {
	c := &Cached[T]{source: source}
	empty := make([]T, 0)
	c.buf.Store(&empty)
	return c
}

// Memoize returns a Transformer that wraps its input with New.
func Memoize[T any]() core.Transformer[T, T] {
	return core.Transform[T, T](func(seq core.Sequence[T]) core.Sequence[T] {
		return New(seq)
	})
}

// Iterate returns a cursor positioned at the start of the shared buffer.
func (c *Cached[T]) Iterate(ctx context.Context) core.Cursor[T] {
	pos := 0
	return core.NewSourceCursor(ctx, func() core.Result[T] {
		// done is stored after the last append, so it must be loaded
		// before buf: a buffer loaded afterwards then holds every element.
		done := c.done.Load()
		if buf := *c.buf.Load(); pos < len(buf) {
			v := buf[pos]
			pos++
			return core.Ok(v)
		}
		if done {
			return core.EndOfSequence[T]()
		}
		res := c.fill(ctx, pos)
		if res.IsValue() {
			pos++
		}
		return res
	}, nil)
}

// fill returns the element at pos, pulling it from the source if no other
// cursor has done so yet. A fault is returned to this caller only; the
// buffer keeps its length so a later advance pulls again.
func (c *Cached[T]) fill(ctx context.Context, pos int) core.Result[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Another cursor may have appended while we waited for the lock.
	buf := *c.buf.Load()
	if pos < len(buf) {
		return core.Ok(buf[pos])
	}
	if c.done.Load() || c.closed {
		return core.EndOfSequence[T]()
	}

	if c.cursor == nil {
		// The source outlives the cursor that happened to start it.
		c.cursor = c.source.Iterate(context.WithoutCancel(ctx))
	}

	c.pulls++
	res := c.cursor.Advance()
	switch {
	case res.IsValue():
		next := append(buf, res.Value())
		c.buf.Store(&next)
	case res.IsError():
		observe.Logger(ctx).Debug("cached source fault",
			zap.Int("position", pos),
			zap.Error(res.Error()),
		)
	default:
		c.done.Store(true)
		c.cursor.Close()
		c.cursor = nil
	}
	return res
}

// Len returns the number of buffered elements.
func (c *Cached[T]) Len() int {
	return len(*c.buf.Load())
}

// Complete reports whether the source has been exhausted.
func (c *Cached[T]) Complete() bool {
	return c.done.Load()
}

// Pulls returns how many times the source cursor has been advanced,
// faults and the final end-of-sequence step included.
func (c *Cached[T]) Pulls() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pulls
}

// Close releases the shared source cursor. Buffered elements stay
// readable; cursors reaching the end of the buffer afterwards see the end
// of the sequence.
func (c *Cached[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.cursor != nil {
		c.cursor.Close()
		c.cursor = nil
	}
}
