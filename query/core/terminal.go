package core

import (
	"context"
)

// Terminal functions consume a sequence and produce a final value. Each
// performs one traversal, stops at the first element fault, and returns
// that fault unchanged.

// ToSlice materializes seq into a slice.
func ToSlice[T any](ctx context.Context, seq Sequence[T]) ([]T, error) {
	cur := Open(ctx, seq)
	defer cur.Close()

	result := []T{}
	for {
		res := cur.Advance()
		switch {
		case res.IsSentinel():
			return result, nil
		case res.IsError():
			return nil, res.Error()
		}
		result = append(result, res.Value())
	}
}

// Run traverses seq for its side effects.
func Run[T any](ctx context.Context, seq Sequence[T]) error {
	cur := Open(ctx, seq)
	defer cur.Close()

	for {
		res := cur.Advance()
		switch {
		case res.IsSentinel():
			return nil
		case res.IsError():
			return res.Error()
		}
	}
}

// Count returns the number of elements in seq.
func Count[T any](ctx context.Context, seq Sequence[T]) (int, error) {
	return CountWhere(ctx, seq, nil)
}

// CountWhere returns the number of elements satisfying predicate.
// A nil predicate counts every element.
func CountWhere[T any](ctx context.Context, seq Sequence[T], predicate func(T) bool) (int, error) {
	cur := Open(ctx, seq)
	defer cur.Close()

	n := 0
	for {
		res := cur.Advance()
		switch {
		case res.IsSentinel():
			return n, nil
		case res.IsError():
			return 0, res.Error()
		}
		if predicate == nil || predicate(res.Value()) {
			n++
		}
	}
}

// find returns the first element satisfying predicate (nil matches all).
func find[T any](ctx context.Context, seq Sequence[T], predicate func(T) bool) (T, bool, error) {
	var zero T
	cur := Open(ctx, seq)
	defer cur.Close()

	for {
		res := cur.Advance()
		switch {
		case res.IsSentinel():
			return zero, false, nil
		case res.IsError():
			return zero, false, res.Error()
		}
		if predicate == nil || predicate(res.Value()) {
			return res.Value(), true, nil
		}
	}
}

// First returns the first element of seq, or ErrEmptySequence.
func First[T any](ctx context.Context, seq Sequence[T]) (T, error) {
	return FirstWhere(ctx, seq, nil)
}

// FirstWhere returns the first element satisfying predicate, or
// ErrEmptySequence when none does.
func FirstWhere[T any](ctx context.Context, seq Sequence[T], predicate func(T) bool) (T, error) {
	v, ok, err := find(ctx, seq, predicate)
	if err != nil {
		return v, err
	}
	if !ok {
		return v, ErrEmptySequence
	}
	return v, nil
}

// FirstOrDefault returns the first element of seq, or def when seq is empty.
func FirstOrDefault[T any](ctx context.Context, seq Sequence[T], def T) (T, error) {
	return FirstWhereOrDefault(ctx, seq, nil, def)
}

// FirstWhereOrDefault returns the first element satisfying predicate, or def.
func FirstWhereOrDefault[T any](ctx context.Context, seq Sequence[T], predicate func(T) bool, def T) (T, error) {
	v, ok, err := find(ctx, seq, predicate)
	if err != nil {
		return v, err
	}
	if !ok {
		return def, nil
	}
	return v, nil
}

// findLast returns the last element satisfying predicate (nil matches all).
func findLast[T any](ctx context.Context, seq Sequence[T], predicate func(T) bool) (T, bool, error) {
	var last T
	found := false
	cur := Open(ctx, seq)
	defer cur.Close()

	for {
		res := cur.Advance()
		switch {
		case res.IsSentinel():
			return last, found, nil
		case res.IsError():
			var zero T
			return zero, false, res.Error()
		}
		if predicate == nil || predicate(res.Value()) {
			last, found = res.Value(), true
		}
	}
}

// Last returns the last element of seq, or ErrEmptySequence.
func Last[T any](ctx context.Context, seq Sequence[T]) (T, error) {
	return LastWhere(ctx, seq, nil)
}

// LastWhere returns the last element satisfying predicate, or
// ErrEmptySequence when none does.
func LastWhere[T any](ctx context.Context, seq Sequence[T], predicate func(T) bool) (T, error) {
	v, ok, err := findLast(ctx, seq, predicate)
	if err != nil {
		return v, err
	}
	if !ok {
		return v, ErrEmptySequence
	}
	return v, nil
}

// LastOrDefault returns the last element of seq, or def when seq is empty.
func LastOrDefault[T any](ctx context.Context, seq Sequence[T], def T) (T, error) {
	v, ok, err := findLast(ctx, seq, nil)
	if err != nil {
		return v, err
	}
	if !ok {
		return def, nil
	}
	return v, nil
}

// findSingle returns the only element satisfying predicate. It stops as
// soon as a second match is seen.
func findSingle[T any](ctx context.Context, seq Sequence[T], predicate func(T) bool) (T, bool, error) {
	var zero, match T
	found := false
	cur := Open(ctx, seq)
	defer cur.Close()

	for {
		res := cur.Advance()
		switch {
		case res.IsSentinel():
			return match, found, nil
		case res.IsError():
			return zero, false, res.Error()
		}
		if predicate != nil && !predicate(res.Value()) {
			continue
		}
		if found {
			return zero, false, ErrMultipleMatch
		}
		match, found = res.Value(), true
	}
}

// Single returns the only element of seq. It returns ErrEmptySequence when
// seq is empty and ErrMultipleMatch when it has more than one element.
func Single[T any](ctx context.Context, seq Sequence[T]) (T, error) {
	return SingleWhere(ctx, seq, nil)
}

// SingleWhere returns the only element satisfying predicate.
func SingleWhere[T any](ctx context.Context, seq Sequence[T], predicate func(T) bool) (T, error) {
	v, ok, err := findSingle(ctx, seq, predicate)
	if err != nil {
		return v, err
	}
	if !ok {
		return v, ErrEmptySequence
	}
	return v, nil
}

// SingleOrDefault returns the only element of seq, or def when seq is empty.
// More than one element is still ErrMultipleMatch.
func SingleOrDefault[T any](ctx context.Context, seq Sequence[T], def T) (T, error) {
	v, ok, err := findSingle(ctx, seq, nil)
	if err != nil {
		return v, err
	}
	if !ok {
		return def, nil
	}
	return v, nil
}

// ElementAt returns the element at index, or ErrIndexOutOfRange.
func ElementAt[T any](ctx context.Context, seq Sequence[T], index int) (T, error) {
	v, ok, err := elementAt(ctx, seq, index)
	if err != nil {
		return v, err
	}
	if !ok {
		return v, ErrIndexOutOfRange
	}
	return v, nil
}

// ElementAtOrDefault returns the element at index, or def when out of range.
func ElementAtOrDefault[T any](ctx context.Context, seq Sequence[T], index int, def T) (T, error) {
	v, ok, err := elementAt(ctx, seq, index)
	if err != nil {
		return v, err
	}
	if !ok {
		return def, nil
	}
	return v, nil
}

func elementAt[T any](ctx context.Context, seq Sequence[T], index int) (T, bool, error) {
	var zero T
	if index < 0 {
		return zero, false, nil
	}
	i := 0
	return find(ctx, seq, func(T) bool {
		hit := i == index
		i++
		return hit
	})
}
