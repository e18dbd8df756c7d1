// Package aggregate provides operations that consume a sequence into a
// single value: folds, numeric reductions, quantifiers, and comparisons.
//
// Terminal functions take a context and a sequence, perform one traversal,
// and stop at the first element fault, returning it unchanged.
package aggregate

import (
	"context"

	"github.com/lguimbarda/min-query/query/core"
)

// Numeric is a constraint for numeric types that support arithmetic operations.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// each advances cur and calls visit for every element until visit returns
// false. The first fault ends the traversal. cur is closed on return.
func each[T any](cur core.Cursor[T], visit func(T) bool) error {
	defer cur.Close()

	for {
		res := cur.Advance()
		switch {
		case res.IsSentinel():
			return nil
		case res.IsError():
			return res.Error()
		}
		if !visit(res.Value()) {
			return nil
		}
	}
}

// Aggregate folds seq with fn, using the first element as the initial
// accumulator. An empty sequence yields core.ErrEmptySequence.
func Aggregate[T any](ctx context.Context, seq core.Sequence[T], fn func(acc, item T) T) (T, error) {
	return aggregate(core.Open(ctx, seq), fn)
}

func aggregate[T any](cur core.Cursor[T], fn func(acc, item T) T) (T, error) {
	var acc T
	seeded := false
	err := each(cur, func(v T) bool {
		if !seeded {
			acc, seeded = v, true
			return true
		}
		acc = fn(acc, v)
		return true
	})
	if err != nil {
		var zero T
		return zero, err
	}
	if !seeded {
		return acc, core.ErrEmptySequence
	}
	return acc, nil
}

// AggregateSeed folds seq with fn starting from seed. An empty sequence
// yields seed.
func AggregateSeed[T, R any](ctx context.Context, seq core.Sequence[T], seed R, fn func(acc R, item T) R) (R, error) {
	return aggregateSeed(core.Open(ctx, seq), seed, fn)
}

func aggregateSeed[T, R any](cur core.Cursor[T], seed R, fn func(acc R, item T) R) (R, error) {
	acc := seed
	err := each(cur, func(v T) bool {
		acc = fn(acc, v)
		return true
	})
	if err != nil {
		var zero R
		return zero, err
	}
	return acc, nil
}

// AggregateSeedResult is AggregateSeed followed by a projection of the
// final accumulator.
func AggregateSeedResult[T, R, V any](ctx context.Context, seq core.Sequence[T], seed R, fn func(acc R, item T) R, result func(R) V) (V, error) {
	acc, err := AggregateSeed(ctx, seq, seed, fn)
	if err != nil {
		var zero V
		return zero, err
	}
	return result(acc), nil
}

// AggregateRight folds seq from the last element to the first, using the
// last element as the initial accumulator. An empty sequence yields
// core.ErrEmptySequence.
func AggregateRight[T any](ctx context.Context, seq core.Sequence[T], fn func(item, acc T) T) (T, error) {
	items, err := core.ToSlice(ctx, seq)
	if err != nil {
		var zero T
		return zero, err
	}
	if len(items) == 0 {
		var zero T
		return zero, core.ErrEmptySequence
	}
	acc := items[len(items)-1]
	for i := len(items) - 2; i >= 0; i-- {
		acc = fn(items[i], acc)
	}
	return acc, nil
}

// AggregateRightSeed folds seq from the last element to the first,
// starting from seed.
func AggregateRightSeed[T, R any](ctx context.Context, seq core.Sequence[T], seed R, fn func(item T, acc R) R) (R, error) {
	items, err := core.ToSlice(ctx, seq)
	if err != nil {
		var zero R
		return zero, err
	}
	acc := seed
	for i := len(items) - 1; i >= 0; i-- {
		acc = fn(items[i], acc)
	}
	return acc, nil
}

// Reduce creates a Transformer that reduces all elements to a single value.
// The first element becomes the initial accumulator; an empty source yields
// nothing. The first fault becomes the only result.
func Reduce[T any](reducer func(acc, item T) T) core.Transformer[T, T] {
	return core.Transform[T, T](func(seq core.Sequence[T]) core.Sequence[T] {
		return core.Deferred(func(ctx context.Context) ([]T, error) {
			acc, err := aggregate(seq.Iterate(ctx), reducer)
			switch {
			case err == core.ErrEmptySequence:
				return nil, nil
			case err != nil:
				return nil, err
			}
			return []T{acc}, nil
		})
	})
}

// Fold creates a Transformer that folds all elements into a single value.
// Unlike Reduce, Fold always yields a value (initial if the source is empty).
func Fold[T, R any](initial R, folder func(acc R, item T) R) core.Transformer[T, R] {
	return core.Transform[T, R](func(seq core.Sequence[T]) core.Sequence[R] {
		return core.Deferred(func(ctx context.Context) ([]R, error) {
			acc, err := aggregateSeed(seq.Iterate(ctx), initial, folder)
			if err != nil {
				return nil, err
			}
			return []R{acc}, nil
		})
	})
}
