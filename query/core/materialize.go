package core

import (
	"context"
)

// Materialize fully traverses seq into a slice for operators that need the
// whole source before producing their first element. It stops at the first
// element fault and enforces TraversalConfig.MaxBuffered.
//
// Unlike ToSlice it does not fire hooks: it is an operator's internal
// traversal, not a consumer's.
func Materialize[T any](ctx context.Context, seq Sequence[T]) ([]T, error) {
	limit := traversalConfig(ctx).MaxBuffered

	cur := seq.Iterate(ctx)
	defer cur.Close()

	var items []T
	for {
		res := cur.Advance()
		switch {
		case res.IsSentinel():
			return items, nil
		case res.IsError():
			return nil, res.Error()
		}
		if limit > 0 && len(items) >= limit {
			return nil, ErrBufferLimit
		}
		items = append(items, res.Value())
	}
}

// Deferred builds a sequence whose traversal first runs prepare (typically
// a full materialization of some source) and then walks the slice it
// returns. A prepare error becomes the single fault of that traversal.
// prepare runs on the first Advance, never when Iterate is called.
func Deferred[T any](prepare func(ctx context.Context) ([]T, error)) Sequence[T] {
	return Generator[T](func(ctx context.Context) Cursor[T] {
		var items []T
		prepared, failed := false, false
		i := 0
		return NewCursor(func() Result[T] {
			if failed {
				return EndOfSequence[T]()
			}
			if !prepared {
				prepared = true
				var err error
				items, err = prepare(ctx)
				if err != nil {
					failed = true
					return Err[T](err)
				}
			}
			if i >= len(items) {
				return EndOfSequence[T]()
			}
			item := items[i]
			i++
			return Ok(item)
		}, func() {
			items = nil
		})
	})
}
