package filter

import (
	"context"

	"github.com/lguimbarda/min-query/query/core"
)

// Take creates a Transformer that passes through only the first n elements.
// The source is not advanced past the nth element. If n <= 0 the result is
// empty and the source is never advanced.
func Take[T any](n int) core.Transformer[T, T] {
	return core.Transform[T, T](func(seq core.Sequence[T]) core.Sequence[T] {
		return core.Generator[T](func(ctx context.Context) core.Cursor[T] {
			if n <= 0 {
				return core.EmptyCursor[T]()
			}
			in := seq.Iterate(ctx)
			count := 0
			return core.NewCursor(func() core.Result[T] {
				if count >= n {
					return core.EndOfSequence[T]()
				}
				res := in.Advance()
				// Only count values, not faults
				if res.IsValue() {
					count++
				}
				return res
			}, in.Close)
		})
	})
}

// TakeWhile creates a Transformer that passes through elements while the
// predicate holds. The first element failing it ends the sequence.
func TakeWhile[T any](predicate func(T) bool) core.Transformer[T, T] {
	return stateful(func() func(core.Result[T]) (core.Result[T], bool) {
		return func(res core.Result[T]) (core.Result[T], bool) {
			if res.IsValue() && !predicate(res.Value()) {
				return core.EndOfSequence[T](), true
			}
			return res, true
		}
	})
}

// Skip creates a Transformer that drops the first n elements.
func Skip[T any](n int) core.Transformer[T, T] {
	return stateful(func() func(core.Result[T]) (core.Result[T], bool) {
		skipped := 0
		return func(res core.Result[T]) (core.Result[T], bool) {
			if res.IsValue() && skipped < n {
				skipped++
				return res, false
			}
			return res, true
		}
	})
}

// SkipWhile creates a Transformer that drops elements while the predicate
// holds, then passes through everything from the first failing element on.
func SkipWhile[T any](predicate func(T) bool) core.Transformer[T, T] {
	return stateful(func() func(core.Result[T]) (core.Result[T], bool) {
		skipping := true
		return func(res core.Result[T]) (core.Result[T], bool) {
			if skipping && res.IsValue() {
				if predicate(res.Value()) {
					return res, false
				}
				skipping = false
			}
			return res, true
		}
	})
}

// TakeLast creates a Transformer that yields the last n elements. The
// source is traversed in full on the first advance, keeping only a window
// of n elements; a fault ends the traversal.
func TakeLast[T any](n int) core.Transformer[T, T] {
	return core.Transform[T, T](func(seq core.Sequence[T]) core.Sequence[T] {
		return core.Deferred(func(ctx context.Context) ([]T, error) {
			if n <= 0 {
				return nil, nil
			}
			cur := seq.Iterate(ctx)
			defer cur.Close()

			window := make([]T, 0, n)
			for {
				res := cur.Advance()
				switch {
				case res.IsSentinel():
					return window, nil
				case res.IsError():
					return nil, res.Error()
				}
				if len(window) == n {
					copy(window, window[1:])
					window = window[:n-1]
				}
				window = append(window, res.Value())
			}
		})
	})
}

// SkipLast creates a Transformer that drops the last n elements. It
// streams with a delay of n elements, so it works on unbounded sources.
func SkipLast[T any](n int) core.Transformer[T, T] {
	if n <= 0 {
		return core.Transform[T, T](func(seq core.Sequence[T]) core.Sequence[T] { return seq })
	}
	return stateful(func() func(core.Result[T]) (core.Result[T], bool) {
		pending := make([]T, 0, n+1)
		return func(res core.Result[T]) (core.Result[T], bool) {
			if !res.IsValue() {
				return res, true
			}
			pending = append(pending, res.Value())
			if len(pending) <= n {
				return res, false
			}
			head := pending[0]
			pending = pending[1:]
			return core.Ok(head), true
		}
	})
}
