package group

import (
	"context"

	"github.com/lguimbarda/min-query/query/core"
)

// keyFilter streams source, keeping the elements accepted by a predicate
// created once per traversal by prepare. prepare runs on the first advance;
// its error is the traversal's single fault.
func keyFilter[T any](source core.Sequence[T], prepare func(ctx context.Context) (func(T) bool, error)) core.Sequence[T] {
	return core.Generator[T](func(ctx context.Context) core.Cursor[T] {
		var keep func(T) bool
		var in core.Cursor[T]
		failed := false
		return core.NewCursor(func() core.Result[T] {
			if failed {
				return core.EndOfSequence[T]()
			}
			if keep == nil {
				k, err := prepare(ctx)
				if err != nil {
					failed = true
					return core.Err[T](err)
				}
				keep = k
				in = source.Iterate(ctx)
			}
			for {
				res := in.Advance()
				if !res.IsValue() || keep(res.Value()) {
					return res
				}
			}
		}, func() {
			if in != nil {
				in.Close()
			}
		})
	})
}

// collectKeys traverses seq once into a key set.
func collectKeys[T any, K any](ctx context.Context, set *keySet[K], seq core.Sequence[T], key func(T) K) (*keySet[K], error) {
	items, err := core.Materialize(ctx, seq)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		set.add(key(item))
	}
	return set, nil
}

func concat[T any](first, second core.Sequence[T]) core.Sequence[T] {
	return core.FlatMap(func(s core.Sequence[T]) (core.Sequence[T], error) {
		return s, nil
	}).Apply(core.Of(first, second))
}

// Distinct yields the first occurrence of every element, lazily.
func Distinct[T comparable](source core.Sequence[T]) core.Sequence[T] {
	return DistinctBy(source, identity[T])
}

// DistinctBy yields the first element seen for every key, lazily.
func DistinctBy[T any, K comparable](source core.Sequence[T], key func(T) K) core.Sequence[T] {
	return keyFilter(source, func(context.Context) (func(T) bool, error) {
		seen := newKeySet[K]()
		return func(v T) bool { return seen.add(key(v)) }, nil
	})
}

// DistinctByHashed is DistinctBy for keys compared through a Hasher.
func DistinctByHashed[T any, K any](source core.Sequence[T], key func(T) K, hasher Hasher[K]) core.Sequence[T] {
	return keyFilter(source, func(context.Context) (func(T) bool, error) {
		seen := newHashedKeySet(hasher)
		return func(v T) bool { return seen.add(key(v)) }, nil
	})
}

// Except yields the distinct elements of first that do not occur in second.
func Except[T comparable](first, second core.Sequence[T]) core.Sequence[T] {
	return ExceptBy(first, second, identity[T])
}

// ExceptBy yields the elements of first whose key occurs neither in second
// nor earlier in first. second is traversed in full on the first advance.
func ExceptBy[T any, K comparable](first, second core.Sequence[T], key func(T) K) core.Sequence[T] {
	return keyFilter(first, func(ctx context.Context) (func(T) bool, error) {
		seen, err := collectKeys(ctx, newKeySet[K](), second, key)
		if err != nil {
			return nil, err
		}
		return func(v T) bool { return seen.add(key(v)) }, nil
	})
}

// Intersect yields the distinct elements of first that also occur in second.
func Intersect[T comparable](first, second core.Sequence[T]) core.Sequence[T] {
	return IntersectBy(first, second, identity[T])
}

// IntersectBy yields the first element of first for every key that also
// occurs in second.
func IntersectBy[T any, K comparable](first, second core.Sequence[T], key func(T) K) core.Sequence[T] {
	return keyFilter(first, func(ctx context.Context) (func(T) bool, error) {
		wanted, err := collectKeys(ctx, newKeySet[K](), second, key)
		if err != nil {
			return nil, err
		}
		yielded := newKeySet[K]()
		return func(v T) bool {
			k := key(v)
			return wanted.contains(k) && yielded.add(k)
		}, nil
	})
}

// Union yields the distinct elements of first followed by those of second.
func Union[T comparable](first, second core.Sequence[T]) core.Sequence[T] {
	return Distinct(concat(first, second))
}

// UnionBy yields the first element of first, then second, for every key.
func UnionBy[T any, K comparable](first, second core.Sequence[T], key func(T) K) core.Sequence[T] {
	return DistinctBy(concat(first, second), key)
}
