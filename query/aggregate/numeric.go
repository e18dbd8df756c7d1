package aggregate

import (
	"cmp"
	"context"

	"github.com/lguimbarda/min-query/query/core"
)

// Sum returns the sum of the elements of seq; zero for an empty sequence.
func Sum[T Numeric](ctx context.Context, seq core.Sequence[T]) (T, error) {
	return AggregateSeed(ctx, seq, T(0), func(acc, v T) T { return acc + v })
}

// SumBy returns the sum of selector applied to each element.
func SumBy[T any, N Numeric](ctx context.Context, seq core.Sequence[T], selector func(T) N) (N, error) {
	return AggregateSeed(ctx, seq, N(0), func(acc N, v T) N { return acc + selector(v) })
}

// Average returns the arithmetic mean of the elements of seq as a float64.
// An empty sequence yields core.ErrEmptySequence.
func Average[T Numeric](ctx context.Context, seq core.Sequence[T]) (float64, error) {
	return AverageBy(ctx, seq, func(v T) T { return v })
}

// AverageBy returns the mean of selector applied to each element.
func AverageBy[T any, N Numeric](ctx context.Context, seq core.Sequence[T], selector func(T) N) (float64, error) {
	var sum float64
	n := 0
	err := each(core.Open(ctx, seq), func(v T) bool {
		sum += float64(selector(v))
		n++
		return true
	})
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, core.ErrEmptySequence
	}
	return sum / float64(n), nil
}

// Min returns the smallest element of seq. Among equal elements the first
// wins. An empty sequence yields core.ErrEmptySequence.
func Min[T cmp.Ordered](ctx context.Context, seq core.Sequence[T]) (T, error) {
	return MinFunc(ctx, seq, cmp.Compare[T])
}

// Max returns the largest element of seq. Among equal elements the first
// wins. An empty sequence yields core.ErrEmptySequence.
func Max[T cmp.Ordered](ctx context.Context, seq core.Sequence[T]) (T, error) {
	return MaxFunc(ctx, seq, cmp.Compare[T])
}

// MinFunc is Min with a custom comparison.
func MinFunc[T any](ctx context.Context, seq core.Sequence[T], compare func(a, b T) int) (T, error) {
	return Aggregate(ctx, seq, func(acc, v T) T {
		if compare(v, acc) < 0 {
			return v
		}
		return acc
	})
}

// MaxFunc is Max with a custom comparison.
func MaxFunc[T any](ctx context.Context, seq core.Sequence[T], compare func(a, b T) int) (T, error) {
	return Aggregate(ctx, seq, func(acc, v T) T {
		if compare(v, acc) > 0 {
			return v
		}
		return acc
	})
}
