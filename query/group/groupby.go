package group

import (
	"context"

	"github.com/lguimbarda/min-query/query/core"
)

// GroupBy returns a sequence of groupings of source by key. Each traversal
// builds its own store on the first advance; a fault in source becomes the
// traversal's single fault.
func GroupBy[K comparable, T any](source core.Sequence[T], key func(T) K) core.Sequence[*Grouping[K, T]] {
	return core.Deferred(func(ctx context.Context) ([]*Grouping[K, T], error) {
		l, err := Build(ctx, source, key)
		if err != nil {
			return nil, err
		}
		return l.groups, nil
	})
}

// GroupByElements groups elem(x) by key(x).
func GroupByElements[K comparable, T, E any](source core.Sequence[T], key func(T) K, elem func(T) E) core.Sequence[*Grouping[K, E]] {
	return core.Deferred(func(ctx context.Context) ([]*Grouping[K, E], error) {
		l, err := BuildElements(ctx, source, key, elem)
		if err != nil {
			return nil, err
		}
		return l.groups, nil
	})
}

// GroupByResult groups source by key and projects each group through result.
func GroupByResult[K comparable, T, R any](source core.Sequence[T], key func(T) K, result func(K, core.Sequence[T]) R) core.Sequence[R] {
	return core.Map(func(g *Grouping[K, T]) (R, error) {
		return result(g.key, g), nil
	}).Apply(GroupBy(source, key))
}

// GroupByHashed is GroupBy for keys compared through a Hasher.
func GroupByHashed[K any, T any](source core.Sequence[T], key func(T) K, hasher Hasher[K]) core.Sequence[*Grouping[K, T]] {
	return core.Deferred(func(ctx context.Context) ([]*Grouping[K, T], error) {
		l, err := BuildHashed(ctx, source, key, hasher)
		if err != nil {
			return nil, err
		}
		return l.groups, nil
	})
}

// ToLookup materializes source into a Lookup for direct querying.
func ToLookup[K comparable, T any](ctx context.Context, source core.Sequence[T], key func(T) K) (*Lookup[K, T], error) {
	return Build(ctx, source, key)
}
