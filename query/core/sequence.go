// Package core defines the deferred-iteration contract of the query
// library: sequences, cursors, results, sources, and terminal operations.
// Every other query package builds on these abstractions.
//
// It imports only the standard library.
package core

import (
	"context"
	"errors"
	"iter"
)

// Sequence is a reusable producer of an ordered run of elements.
// Each call to Iterate returns a fresh, independent cursor; two cursors
// never share mutable state. Nothing is computed until a cursor is advanced.
// Sequence answers the question: "Which elements, in which order?".
type Sequence[T any] interface {
	Iterate(context.Context) Cursor[T]
}

// Cursor is the transient state of one traversal of a Sequence.
//
// Advance returns the next element, an element fault, or the end-of-sequence
// sentinel. Once a cursor has reported the end it keeps reporting it.
// Close releases whatever the cursor holds; it may be called at any time,
// more than once, and abandoning a cursor without exhausting it is legal.
type Cursor[T any] interface {
	Advance() Result[T]
	Close()
}

// Generator is a function that produces a fresh cursor; it implements Sequence.
type Generator[T any] func(context.Context) Cursor[T]

// Iterate implements Sequence.
func (g Generator[T]) Iterate(ctx context.Context) Cursor[T] {
	return g(ctx)
}

// Generate wraps a cursor factory as a Sequence.
func Generate[T any](factory func(context.Context) Cursor[T]) Generator[T] {
	return Generator[T](factory)
}

// stepCursor adapts a step function into a Cursor. The step function
// reports the end by returning EndOfSequence; after that, and after Close,
// the step function is never called again.
type stepCursor[T any] struct {
	step    func() Result[T]
	release func()
	done    bool
}

// NewCursor builds a Cursor from a step function and an optional release
// function. release runs exactly once: when the step function reports the
// end, or on the first Close, whichever comes first.
func NewCursor[T any](step func() Result[T], release func()) Cursor[T] {
	return &stepCursor[T]{step: step, release: release}
}

func (c *stepCursor[T]) Advance() Result[T] {
	if c.done {
		return EndOfSequence[T]()
	}
	res := c.step()
	if IsEnd(res) {
		c.finish()
	}
	return res
}

func (c *stepCursor[T]) Close() {
	c.finish()
}

func (c *stepCursor[T]) finish() {
	if c.done {
		return
	}
	c.done = true
	if c.release != nil {
		c.release()
	}
}

// IsEnd reports whether r is the end-of-sequence sentinel.
func IsEnd[T any](r Result[T]) bool {
	return r.IsSentinel() && errors.Is(r.Sentinel(), ErrEndOfSequence)
}

// NewSourceCursor builds a cursor for a leaf source. In addition to what
// NewCursor does, it checks ctx before every step (unless disabled through
// TraversalConfig) and reports a cancelled context as a single fault
// followed by the end of the sequence.
func NewSourceCursor[T any](ctx context.Context, step func() Result[T], release func()) Cursor[T] {
	if !traversalConfig(ctx).CheckContext {
		return NewCursor(step, release)
	}
	cancelled := false
	return NewCursor(func() Result[T] {
		if cancelled {
			return EndOfSequence[T]()
		}
		if err := ctx.Err(); err != nil {
			cancelled = true
			return Err[T](err)
		}
		return step()
	}, release)
}

// emptyCursor is shared by every empty traversal; it holds no state.
type emptyCursor[T any] struct{}

func (emptyCursor[T]) Advance() Result[T] { return EndOfSequence[T]() }
func (emptyCursor[T]) Close()             {}

// EmptyCursor returns a cursor that is already exhausted.
func EmptyCursor[T any]() Cursor[T] {
	return emptyCursor[T]{}
}

// All returns an iterator over the elements of seq paired with element
// faults. Iteration continues past faults; breaking out of the loop closes
// the underlying cursor. Hooks registered for T fire once per traversal.
func All[T any](ctx context.Context, seq Sequence[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		cur := Open(ctx, seq)
		defer cur.Close()
		for {
			res := cur.Advance()
			if res.IsSentinel() {
				return
			}
			if !yield(res.Unwrap()) {
				return
			}
		}
	}
}

// Collect gathers every Result of one traversal, faults included.
func Collect[T any](ctx context.Context, seq Sequence[T]) []Result[T] {
	var results []Result[T]
	cur := Open(ctx, seq)
	defer cur.Close()
	for {
		res := cur.Advance()
		if res.IsSentinel() {
			return results
		}
		results = append(results, res)
	}
}

// Open starts a consumer-facing traversal of seq: the cursor is wrapped
// with the hooks registered for T in ctx, if any.
func Open[T any](ctx context.Context, seq Sequence[T]) Cursor[T] {
	return observe(ctx, seq.Iterate(ctx))
}
