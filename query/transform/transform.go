// Package transform provides element-wise and structural transformers:
// projections, concatenation, zipping, reversing, and friends.
package transform

import (
	"context"

	"github.com/lguimbarda/min-query/query/core"
)

// Select creates a Transformer that projects every element through fn.
// An error from fn becomes the fault of that element.
func Select[IN, OUT any](fn func(IN) (OUT, error)) core.Transformer[IN, OUT] {
	return core.Map(fn)
}

// SelectIndexed is Select with the element's position passed to fn.
func SelectIndexed[IN, OUT any](fn func(IN, int) (OUT, error)) core.Transformer[IN, OUT] {
	return core.Transform[IN, OUT](func(seq core.Sequence[IN]) core.Sequence[OUT] {
		return core.Generator[OUT](func(ctx context.Context) core.Cursor[OUT] {
			i := 0
			return core.Map(func(v IN) (OUT, error) {
				out, err := fn(v, i)
				i++
				return out, err
			}).Apply(seq).Iterate(ctx)
		})
	})
}

// SelectMany creates a Transformer that projects every element to a
// sequence and flattens the results, lazily.
func SelectMany[IN, OUT any](fn func(IN) (core.Sequence[OUT], error)) core.Transformer[IN, OUT] {
	return core.FlatMap(fn)
}

// SelectManyResult is SelectMany with a result selector that sees both the
// source element and each element of its projection.
func SelectManyResult[IN, MID, OUT any](fn func(IN) (core.Sequence[MID], error), result func(IN, MID) OUT) core.Transformer[IN, OUT] {
	return core.FlatMap(func(v IN) (core.Sequence[OUT], error) {
		nested, err := fn(v)
		if err != nil || nested == nil {
			return nil, err
		}
		return core.Map(func(m MID) (OUT, error) { return result(v, m), nil }).Apply(nested), nil
	})
}

// Concat joins sequences end to end. Each is started only once the
// previous one is exhausted.
func Concat[T any](seqs ...core.Sequence[T]) core.Sequence[T] {
	return core.FlatMap(func(s core.Sequence[T]) (core.Sequence[T], error) {
		return s, nil
	}).Apply(core.FromSlice(seqs))
}

// Append creates a Transformer that yields the given values after the source.
func Append[T any](values ...T) core.Transformer[T, T] {
	return core.Transform[T, T](func(seq core.Sequence[T]) core.Sequence[T] {
		return Concat(seq, core.FromSlice(values))
	})
}

// Prepend creates a Transformer that yields the given values before the source.
func Prepend[T any](values ...T) core.Transformer[T, T] {
	return core.Transform[T, T](func(seq core.Sequence[T]) core.Sequence[T] {
		return Concat(core.FromSlice(values), seq)
	})
}

// DefaultIfEmpty creates a Transformer that yields defaultValue when the
// source has no elements. A source holding only faults is not empty.
func DefaultIfEmpty[T any](defaultValue T) core.Transformer[T, T] {
	return core.Transform[T, T](func(seq core.Sequence[T]) core.Sequence[T] {
		return core.Generator[T](func(ctx context.Context) core.Cursor[T] {
			in := seq.Iterate(ctx)
			seen, defaulted := false, false
			return core.NewCursor(func() core.Result[T] {
				res := in.Advance()
				if !core.IsEnd(res) {
					seen = true
					return res
				}
				if !seen && !defaulted {
					defaulted = true
					return core.Ok(defaultValue)
				}
				return res
			}, in.Close)
		})
	})
}

// Reverse creates a Transformer that yields the source back to front. The
// source is traversed in full on the first advance.
func Reverse[T any]() core.Transformer[T, T] {
	return core.Transform[T, T](func(seq core.Sequence[T]) core.Sequence[T] {
		return core.Deferred(func(ctx context.Context) ([]T, error) {
			items, err := core.Materialize(ctx, seq)
			if err != nil {
				return nil, err
			}
			for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
				items[i], items[j] = items[j], items[i]
			}
			return items, nil
		})
	})
}

// Indexed pairs an element with its 0-based position.
type Indexed[T any] struct {
	Index int
	Value T
}

// WithIndex creates a Transformer that wraps each element with its position.
// Faults do not take a position.
func WithIndex[T any]() core.Transformer[T, Indexed[T]] {
	return SelectIndexed(func(v T, i int) (Indexed[T], error) {
		return Indexed[T]{Index: i, Value: v}, nil
	})
}

// Pairwise creates a Transformer that yields each element together with
// the one before it, starting from the second element.
func Pairwise[T any]() core.Transformer[T, [2]T] {
	return core.Transform[T, [2]T](func(seq core.Sequence[T]) core.Sequence[[2]T] {
		return core.Generator[[2]T](func(ctx context.Context) core.Cursor[[2]T] {
			in := seq.Iterate(ctx)
			var prev T
			hasPrev := false
			return core.NewCursor(func() core.Result[[2]T] {
				for {
					res := in.Advance()
					if !res.IsValue() {
						return core.Retype[[2]T](res)
					}
					if !hasPrev {
						prev, hasPrev = res.Value(), true
						continue
					}
					pair := [2]T{prev, res.Value()}
					prev = res.Value()
					return core.Ok(pair)
				}
			}, in.Close)
		})
	})
}

// Scan creates a Transformer that yields every intermediate accumulator of
// a running fold. The initial value itself is not emitted.
func Scan[T, R any](initial R, fn func(acc R, item T) R) core.Transformer[T, R] {
	return core.Transform[T, R](func(seq core.Sequence[T]) core.Sequence[R] {
		return core.Generator[R](func(ctx context.Context) core.Cursor[R] {
			acc := initial
			return core.Map(func(v T) (R, error) {
				acc = fn(acc, v)
				return acc, nil
			}).Apply(seq).Iterate(ctx)
		})
	})
}

// Chunk creates a Transformer that groups consecutive elements into slices
// of size elements; the last chunk may be shorter. A fault ends the chunk
// being built, which is emitted before the fault.
func Chunk[T any](size int) core.Transformer[T, []T] {
	if size < 1 {
		panic("transform: chunk size must be positive")
	}
	return core.Transform[T, []T](func(seq core.Sequence[T]) core.Sequence[[]T] {
		return core.Generator[[]T](func(ctx context.Context) core.Cursor[[]T] {
			in := seq.Iterate(ctx)
			var pending *core.Result[[]T]
			return core.NewCursor(func() core.Result[[]T] {
				if pending != nil {
					res := *pending
					pending = nil
					return res
				}
				var chunk []T
				for len(chunk) < size {
					res := in.Advance()
					if res.IsValue() {
						chunk = append(chunk, res.Value())
						continue
					}
					if len(chunk) == 0 {
						return core.Retype[[]T](res)
					}
					held := core.Retype[[]T](res)
					pending = &held
					break
				}
				return core.Ok(chunk)
			}, in.Close)
		})
	})
}
