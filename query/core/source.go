package core

import (
	"context"
	"iter"
)

// FromSlice creates a Sequence over the elements of items.
// The slice is read lazily on every traversal, so later changes to its
// elements are visible to traversals that have not yet reached them.
func FromSlice[T any](items []T) Sequence[T] {
	return Generator[T](func(ctx context.Context) Cursor[T] {
		i := 0
		return NewSourceCursor(ctx, func() Result[T] {
			if i >= len(items) {
				return EndOfSequence[T]()
			}
			item := items[i]
			i++
			return Ok(item)
		}, nil)
	})
}

// Of creates a Sequence over the given values.
func Of[T any](values ...T) Sequence[T] {
	return FromSlice(values)
}

// FromIter creates a Sequence from a Go iterator. The iterator is pulled
// with iter.Pull, so it must be safe to start more than once if the
// sequence is traversed more than once.
func FromIter[T any](seq iter.Seq[T]) Sequence[T] {
	return Generator[T](func(ctx context.Context) Cursor[T] {
		var next func() (T, bool)
		var stop func()
		return NewSourceCursor(ctx, func() Result[T] {
			if next == nil {
				next, stop = iter.Pull(seq)
			}
			v, ok := next()
			if !ok {
				return EndOfSequence[T]()
			}
			return Ok(v)
		}, func() {
			if stop != nil {
				stop()
			}
		})
	})
}

// FromIter2 creates a Sequence from an iterator of (element, fault) pairs.
// Non-nil faults become element faults; iteration continues after them.
func FromIter2[T any](seq iter.Seq2[T, error]) Sequence[T] {
	return Generator[T](func(ctx context.Context) Cursor[T] {
		var next func() (T, error, bool)
		var stop func()
		return NewSourceCursor(ctx, func() Result[T] {
			if next == nil {
				next, stop = iter.Pull2(seq)
			}
			v, err, ok := next()
			switch {
			case !ok:
				return EndOfSequence[T]()
			case err != nil:
				return Err[T](err)
			default:
				return Ok(v)
			}
		}, func() {
			if stop != nil {
				stop()
			}
		})
	})
}

// FromFunc creates a Sequence from a factory of pull functions. The factory
// runs once per traversal; its pull function returns (value, true, nil) for
// an element, (_, false, nil) at the end, and a non-nil error for a fault.
func FromFunc[T any](factory func() func() (T, bool, error)) Sequence[T] {
	return Generator[T](func(ctx context.Context) Cursor[T] {
		var pull func() (T, bool, error)
		return NewSourceCursor(ctx, func() Result[T] {
			if pull == nil {
				pull = factory()
			}
			v, ok, err := pull()
			switch {
			case err != nil:
				return Err[T](err)
			case !ok:
				return EndOfSequence[T]()
			default:
				return Ok(v)
			}
		}, nil)
	})
}

// KeyValue is a key-value pair emitted by FromMap.
type KeyValue[K comparable, V any] struct {
	Key   K
	Value V
}

// FromMap creates a Sequence over the entries of m.
// Entry order follows Go map iteration and differs between traversals.
func FromMap[K comparable, V any](m map[K]V) Sequence[KeyValue[K, V]] {
	return FromIter(func(yield func(KeyValue[K, V]) bool) {
		for k, v := range m {
			if !yield(KeyValue[K, V]{Key: k, Value: v}) {
				return
			}
		}
	})
}

// Empty creates a Sequence with no elements.
func Empty[T any]() Sequence[T] {
	return Generator[T](func(context.Context) Cursor[T] {
		return EmptyCursor[T]()
	})
}

// Once creates a Sequence with a single element.
func Once[T any](value T) Sequence[T] {
	return Repeat(value, 1)
}

// Repeat creates a Sequence that yields value n times.
// A negative n repeats forever.
func Repeat[T any](value T, n int) Sequence[T] {
	return Generator[T](func(ctx context.Context) Cursor[T] {
		i := 0
		return NewSourceCursor(ctx, func() Result[T] {
			if n >= 0 && i >= n {
				return EndOfSequence[T]()
			}
			i++
			return Ok(value)
		}, nil)
	})
}

// Range creates a Sequence of integers from start to end (exclusive).
func Range(start, end int) Sequence[int] {
	return RangeStep(start, end, 1)
}

// RangeStep creates a Sequence of integers from start towards end
// (exclusive) with the given step. A zero step yields nothing.
func RangeStep(start, end, step int) Sequence[int] {
	return Generator[int](func(ctx context.Context) Cursor[int] {
		i := start
		return NewSourceCursor(ctx, func() Result[int] {
			if step == 0 || (step > 0 && i >= end) || (step < 0 && i <= end) {
				return EndOfSequence[int]()
			}
			v := i
			i += step
			return Ok(v)
		}, nil)
	})
}

// Defer creates a Sequence whose underlying sequence is built by factory
// at the start of every traversal.
func Defer[T any](factory func() Sequence[T]) Sequence[T] {
	return Generator[T](func(ctx context.Context) Cursor[T] {
		return factory().Iterate(ctx)
	})
}

// FromError creates a Sequence that yields a single fault.
func FromError[T any](err error) Sequence[T] {
	return Generator[T](func(context.Context) Cursor[T] {
		sent := false
		return NewCursor(func() Result[T] {
			if sent {
				return EndOfSequence[T]()
			}
			sent = true
			return Err[T](err)
		}, nil)
	})
}

// Unfold creates a Sequence by repeatedly applying fn to a state, starting
// from seed. fn returns the element, the next state, and whether to continue.
func Unfold[T, S any](seed S, fn func(S) (T, S, bool)) Sequence[T] {
	return Generator[T](func(ctx context.Context) Cursor[T] {
		state := seed
		return NewSourceCursor(ctx, func() Result[T] {
			v, next, ok := fn(state)
			if !ok {
				return EndOfSequence[T]()
			}
			state = next
			return Ok(v)
		}, nil)
	})
}
