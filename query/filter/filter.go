// Package filter provides transformers that select a subset of a
// sequence's elements without changing them. Element faults always pass
// through in position and never count as elements.
package filter

import (
	"context"

	"github.com/lguimbarda/min-query/query/core"
)

// stateful builds a transformer whose per-traversal state is created by
// open. step receives the next upstream result and returns the result to
// emit and whether to emit it; returning the end sentinel stops the cursor.
func stateful[IN, OUT any](open func() func(core.Result[IN]) (core.Result[OUT], bool)) core.Transformer[IN, OUT] {
	return core.Transform[IN, OUT](func(seq core.Sequence[IN]) core.Sequence[OUT] {
		return core.Generator[OUT](func(ctx context.Context) core.Cursor[OUT] {
			in := seq.Iterate(ctx)
			step := open()
			return core.NewCursor(func() core.Result[OUT] {
				for {
					res := in.Advance()
					if core.IsEnd(res) {
						return core.Retype[OUT](res)
					}
					if out, emit := step(res); emit {
						return out
					}
				}
			}, in.Close)
		})
	})
}

// Where creates a Transformer that keeps the elements satisfying predicate.
func Where[T any](predicate func(T) bool) core.Transformer[T, T] {
	return WhereIndexed(func(v T, _ int) bool { return predicate(v) })
}

// WhereIndexed is Where with the element's position passed to predicate.
func WhereIndexed[T any](predicate func(T, int) bool) core.Transformer[T, T] {
	return stateful(func() func(core.Result[T]) (core.Result[T], bool) {
		i := 0
		return func(res core.Result[T]) (core.Result[T], bool) {
			if !res.IsValue() {
				return res, true
			}
			keep := predicate(res.Value(), i)
			i++
			return res, keep
		}
	})
}

// Exclude creates a Transformer that drops the elements satisfying predicate.
func Exclude[T any](predicate func(T) bool) core.Transformer[T, T] {
	return Where(func(v T) bool { return !predicate(v) })
}

// OfType creates a Transformer that keeps the elements whose dynamic type
// is OUT, converted to OUT.
func OfType[OUT, IN any]() core.Transformer[IN, OUT] {
	return stateful(func() func(core.Result[IN]) (core.Result[OUT], bool) {
		return func(res core.Result[IN]) (core.Result[OUT], bool) {
			if !res.IsValue() {
				return core.Retype[OUT](res), true
			}
			v, ok := any(res.Value()).(OUT)
			return core.Ok(v), ok
		}
	})
}
