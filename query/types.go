// Package query provides deferred, composable queries over sequences in
// the style of LINQ.
//
// This package is the primary user-facing API. Most users should only
// need to import this package; the subpackages hold the operators by
// family and the core contract they share.
package query

import (
	"context"
	"iter"

	"github.com/lguimbarda/min-query/query/core"
)

// Type aliases for the core abstractions.
type (
	// Result is the outcome of advancing a cursor: an element, an element
	// fault, or the end-of-sequence sentinel.
	Result[T any] = core.Result[T]

	// Sequence is a reusable producer of an ordered run of elements.
	Sequence[T any] = core.Sequence[T]

	// Cursor is the transient state of one traversal of a Sequence.
	Cursor[T any] = core.Cursor[T]

	// Transformer turns a Sequence of IN into a Sequence of OUT.
	Transformer[IN, OUT any] = core.Transformer[IN, OUT]

	// Hooks holds observation callbacks for traversals of sequences of T.
	Hooks[T any] = core.Hooks[T]

	// TraversalConfig controls per-traversal behavior through the context.
	TraversalConfig = core.TraversalConfig
)

// Sentinel errors.
var (
	ErrEndOfSequence   = core.ErrEndOfSequence
	ErrEmptySequence   = core.ErrEmptySequence
	ErrMultipleMatch   = core.ErrMultipleMatch
	ErrIndexOutOfRange = core.ErrIndexOutOfRange
	ErrBufferLimit     = core.ErrBufferLimit
)

// Sources.

// FromSlice creates a Sequence over the elements of items.
func FromSlice[T any](items []T) Enumerable[T] {
	return From(core.FromSlice(items))
}

// Of creates a Sequence over the given values.
func Of[T any](values ...T) Enumerable[T] {
	return From(core.FromSlice(values))
}

// FromIter creates a Sequence from an iterator. Each traversal ranges
// over seq again.
func FromIter[T any](seq iter.Seq[T]) Enumerable[T] {
	return From(core.FromIter(seq))
}

// Range creates a Sequence of integers from start to end (exclusive).
func Range(start, end int) Enumerable[int] {
	return From(core.Range(start, end))
}

// Repeat creates a Sequence that yields value n times; forever if n < 0.
func Repeat[T any](value T, n int) Enumerable[T] {
	return From(core.Repeat(value, n))
}

// Empty creates a Sequence with no elements.
func Empty[T any]() Enumerable[T] {
	return From(core.Empty[T]())
}

// WithHooks attaches typed hooks to the context.
func WithHooks[T any](ctx context.Context, hooks Hooks[T]) context.Context {
	return core.WithHooks(ctx, hooks)
}

// WithTraversalConfig attaches cfg to the context after validating it.
func WithTraversalConfig(ctx context.Context, cfg TraversalConfig) (context.Context, error) {
	if err := cfg.Validate(); err != nil {
		return ctx, err
	}
	return core.WithConfig(ctx, &cfg), nil
}
