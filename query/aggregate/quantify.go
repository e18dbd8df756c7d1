package aggregate

import (
	"context"

	"github.com/lguimbarda/min-query/query/core"
)

// Count returns the number of elements of seq.
func Count[T any](ctx context.Context, seq core.Sequence[T]) (int, error) {
	return core.Count(ctx, seq)
}

// CountBy returns how many elements fall under each key, keyed in no
// particular order.
func CountBy[T any, K comparable](ctx context.Context, seq core.Sequence[T], key func(T) K) (map[K]int, error) {
	return AggregateSeed(ctx, seq, map[K]int{}, func(acc map[K]int, v T) map[K]int {
		acc[key(v)]++
		return acc
	})
}

// Any reports whether seq has at least one element. It stops after the
// first element.
func Any[T any](ctx context.Context, seq core.Sequence[T]) (bool, error) {
	return AnyWhere(ctx, seq, func(T) bool { return true })
}

// AnyWhere reports whether some element satisfies predicate, stopping at
// the first that does.
func AnyWhere[T any](ctx context.Context, seq core.Sequence[T], predicate func(T) bool) (bool, error) {
	found := false
	err := each(core.Open(ctx, seq), func(v T) bool {
		found = predicate(v)
		return !found
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// All reports whether every element satisfies predicate, stopping at the
// first that does not. An empty sequence yields true.
func All[T any](ctx context.Context, seq core.Sequence[T], predicate func(T) bool) (bool, error) {
	failed, err := AnyWhere(ctx, seq, func(v T) bool { return !predicate(v) })
	return !failed && err == nil, err
}

// None reports whether no element satisfies predicate.
func None[T any](ctx context.Context, seq core.Sequence[T], predicate func(T) bool) (bool, error) {
	found, err := AnyWhere(ctx, seq, predicate)
	return !found && err == nil, err
}

// Contains reports whether seq holds an element equal to value.
func Contains[T comparable](ctx context.Context, seq core.Sequence[T], value T) (bool, error) {
	return AnyWhere(ctx, seq, func(v T) bool { return v == value })
}

// ContainsFunc reports whether seq holds an element equal to value
// according to equal.
func ContainsFunc[T any](ctx context.Context, seq core.Sequence[T], value T, equal func(a, b T) bool) (bool, error) {
	return AnyWhere(ctx, seq, func(v T) bool { return equal(v, value) })
}

// SequenceEqual reports whether a and b hold equal elements in the same
// order. Both are traversed in lockstep and the comparison stops at the
// first difference.
func SequenceEqual[T comparable](ctx context.Context, a, b core.Sequence[T]) (bool, error) {
	return SequenceEqualFunc(ctx, a, b, func(x, y T) bool { return x == y })
}

// SequenceEqualFunc is SequenceEqual with a custom equality.
func SequenceEqualFunc[T any](ctx context.Context, a, b core.Sequence[T], equal func(x, y T) bool) (bool, error) {
	left := core.Open(ctx, a)
	defer left.Close()
	right := core.Open(ctx, b)
	defer right.Close()

	for {
		l := left.Advance()
		if l.IsError() {
			return false, l.Error()
		}
		r := right.Advance()
		if r.IsError() {
			return false, r.Error()
		}
		lEnd, rEnd := l.IsSentinel(), r.IsSentinel()
		switch {
		case lEnd && rEnd:
			return true, nil
		case lEnd != rEnd:
			return false, nil
		case !equal(l.Value(), r.Value()):
			return false, nil
		}
	}
}
