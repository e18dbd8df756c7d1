// Package more provides less common operators: recursive flattening,
// round-robin interleaving, tree traversals, and side-effecting loops.
package more

import (
	"context"

	"github.com/lguimbarda/min-query/query/core"
)

// FlattenFunc creates a Transformer that recursively expands elements.
// selector returns the nested sequence of an element, or nil if the element
// is a leaf and should be yielded as is. Nested sequences are walked with an
// explicit stack of cursors, so depth is bounded by memory, not the call stack.
func FlattenFunc[T any](selector func(T) core.Sequence[T]) core.Transformer[T, T] {
	return core.Transform[T, T](func(seq core.Sequence[T]) core.Sequence[T] {
		return core.Generator[T](func(ctx context.Context) core.Cursor[T] {
			stack := []core.Cursor[T]{seq.Iterate(ctx)}
			return core.NewCursor(func() core.Result[T] {
				for len(stack) > 0 {
					top := stack[len(stack)-1]
					res := top.Advance()
					if core.IsEnd(res) {
						top.Close()
						stack = stack[:len(stack)-1]
						continue
					}
					if !res.IsValue() {
						return res
					}
					if nested := selector(res.Value()); nested != nil {
						stack = append(stack, nested.Iterate(ctx))
						continue
					}
					return res
				}
				return core.EndOfSequence[T]()
			}, func() {
				for _, cur := range stack {
					cur.Close()
				}
				stack = nil
			})
		})
	})
}

// Flatten creates a Transformer that recursively expands nested
// core.Sequence[any] and []any elements accepted by predicate. A nil
// predicate accepts every nested element.
func Flatten(predicate func(any) bool) core.Transformer[any, any] {
	return FlattenFunc(func(v any) core.Sequence[any] {
		var nested core.Sequence[any]
		switch x := v.(type) {
		case core.Sequence[any]:
			nested = x
		case []any:
			nested = core.FromSlice(x)
		default:
			return nil
		}
		if predicate != nil && !predicate(v) {
			return nil
		}
		return nested
	})
}

// Interleave yields the first element of each sequence in turn, then the
// second of each, and so on. Exhausted sequences drop out of the rotation
// while the rest continue. A fault takes its sequence's turn.
func Interleave[T any](seqs ...core.Sequence[T]) core.Sequence[T] {
	return core.Generator[T](func(ctx context.Context) core.Cursor[T] {
		cursors := make([]core.Cursor[T], len(seqs))
		for i, s := range seqs {
			cursors[i] = s.Iterate(ctx)
		}
		i := 0
		return core.NewCursor(func() core.Result[T] {
			for len(cursors) > 0 {
				if i >= len(cursors) {
					i = 0
				}
				res := cursors[i].Advance()
				if core.IsEnd(res) {
					cursors[i].Close()
					cursors = append(cursors[:i], cursors[i+1:]...)
					continue
				}
				i++
				return res
			}
			return core.EndOfSequence[T]()
		}, func() {
			for _, cur := range cursors {
				cur.Close()
			}
			cursors = nil
		})
	})
}
