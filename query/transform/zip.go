package transform

import (
	"context"

	"github.com/lguimbarda/min-query/query/core"
)

// Pair holds one element from each of two zipped sequences.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Zip pairs the elements of a and b by position, stopping at the end of
// the shorter sequence.
func Zip[A, B any](a core.Sequence[A], b core.Sequence[B]) core.Sequence[Pair[A, B]] {
	return ZipWith(a, b, func(x A, y B) Pair[A, B] { return Pair[A, B]{First: x, Second: y} })
}

// ZipWith combines the elements of a and b by position. A fault from either
// side is yielded as the fault of that position.
func ZipWith[A, B, C any](a core.Sequence[A], b core.Sequence[B], combine func(A, B) C) core.Sequence[C] {
	return core.Generator[C](func(ctx context.Context) core.Cursor[C] {
		left := a.Iterate(ctx)
		right := b.Iterate(ctx)
		return core.NewCursor(func() core.Result[C] {
			l := left.Advance()
			if core.IsEnd(l) {
				return core.Retype[C](l)
			}
			r := right.Advance()
			switch {
			case core.IsEnd(r):
				return core.Retype[C](r)
			case l.IsError():
				return core.Retype[C](l)
			case r.IsError():
				return core.Retype[C](r)
			}
			return core.Ok(combine(l.Value(), r.Value()))
		}, func() {
			left.Close()
			right.Close()
		})
	})
}
