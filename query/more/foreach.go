package more

import (
	"context"

	"github.com/lguimbarda/min-query/query/core"
)

// ForEach calls action for every element of seq. It stops at the first
// element fault or the first error returned by action, and returns it.
func ForEach[T any](ctx context.Context, seq core.Sequence[T], action func(T) error) error {
	return ForEachIndexed(ctx, seq, func(v T, _ int) error { return action(v) })
}

// ForEachIndexed is ForEach with the element's position passed to action.
func ForEachIndexed[T any](ctx context.Context, seq core.Sequence[T], action func(T, int) error) error {
	i := 0
	for v, err := range core.All(ctx, seq) {
		if err != nil {
			return err
		}
		if err := action(v, i); err != nil {
			return err
		}
		i++
	}
	return nil
}
