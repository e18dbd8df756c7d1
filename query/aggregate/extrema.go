package aggregate

import (
	"cmp"
	"context"

	"github.com/lguimbarda/min-query/query/core"
)

// MinBy creates a Transformer yielding every element whose key is the
// smallest, in source order. The source is traversed in full on the first
// advance; the first fault becomes the only result.
func MinBy[T any, K cmp.Ordered](key func(T) K) core.Transformer[T, T] {
	return ExtremaBy(key, func(a, b K) int { return cmp.Compare(b, a) })
}

// MaxBy creates a Transformer yielding every element whose key is the
// largest, in source order.
func MaxBy[T any, K cmp.Ordered](key func(T) K) core.Transformer[T, T] {
	return ExtremaBy(key, cmp.Compare[K])
}

// ExtremaBy creates a Transformer yielding every element whose key ranks
// highest under compare, in source order. Keys are computed once per element.
func ExtremaBy[T, K any](key func(T) K, compare func(a, b K) int) core.Transformer[T, T] {
	return core.Transform[T, T](func(seq core.Sequence[T]) core.Sequence[T] {
		return core.Deferred(func(ctx context.Context) ([]T, error) {
			var (
				best    K
				extrema []T
			)
			err := each(seq.Iterate(ctx), func(v T) bool {
				k := key(v)
				if len(extrema) > 0 {
					c := compare(k, best)
					if c < 0 {
						return true
					}
					if c == 0 {
						extrema = append(extrema, v)
						return true
					}
				}
				best = k
				extrema = append(extrema[:0], v)
				return true
			})
			if err != nil {
				return nil, err
			}
			return extrema, nil
		})
	})
}
