package more

import (
	"context"

	"github.com/eapache/queue"

	"github.com/lguimbarda/min-query/query/core"
)

// children expands node through selector. A nil sequence means no children.
// A fault in the children sequence is returned and the node is treated as
// a leaf.
func children[T any](ctx context.Context, node T, selector func(T) core.Sequence[T]) ([]T, error) {
	seq := selector(node)
	if seq == nil {
		return nil, nil
	}
	return core.Materialize(ctx, seq)
}

// TraverseBreadthFirst yields root and then its descendants level by level.
// The children of an element are requested only when the cursor advances
// past it, so the tree may be infinite.
func TraverseBreadthFirst[T any](root T, selector func(T) core.Sequence[T]) core.Sequence[T] {
	return core.Generator[T](func(ctx context.Context) core.Cursor[T] {
		pending := queue.New()
		pending.Add(root)
		var (
			last   T
			expand bool
		)
		return core.NewSourceCursor(ctx, func() core.Result[T] {
			if expand {
				expand = false
				kids, err := children(ctx, last, selector)
				if err != nil {
					return core.Err[T](err)
				}
				for _, k := range kids {
					pending.Add(k)
				}
			}
			if pending.Length() == 0 {
				return core.EndOfSequence[T]()
			}
			last, _ = pending.Remove().(T)
			expand = true
			return core.Ok(last)
		}, nil)
	})
}

// TraverseDepthFirst yields root and then its descendants in pre-order,
// visiting children in the order selector returns them.
func TraverseDepthFirst[T any](root T, selector func(T) core.Sequence[T]) core.Sequence[T] {
	return core.Generator[T](func(ctx context.Context) core.Cursor[T] {
		stack := []T{root}
		var (
			last   T
			expand bool
		)
		return core.NewSourceCursor(ctx, func() core.Result[T] {
			if expand {
				expand = false
				kids, err := children(ctx, last, selector)
				if err != nil {
					return core.Err[T](err)
				}
				for i := len(kids) - 1; i >= 0; i-- {
					stack = append(stack, kids[i])
				}
			}
			if len(stack) == 0 {
				return core.EndOfSequence[T]()
			}
			last = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			expand = true
			return core.Ok(last)
		}, nil)
	})
}
