// Package order provides Ordered, a sequence sorted by one or more keys.
//
// Criteria are applied lexicographically: each one breaks ties left by the
// criteria before it, and elements equal under every criterion keep their
// source order. Sorting happens when a traversal starts, never when the
// ordering is built, and every traversal sorts a fresh copy of the source.
package order

import (
	"cmp"
	"context"
	"slices"

	"github.com/lguimbarda/min-query/query/core"
)

// criterion is one (key selector, comparator, direction) triple with the
// key type erased. bind computes the key of every element once and returns
// a comparison over element positions.
type criterion[T any] interface {
	bind(items []T) func(i, j int) int
}

type keySpec[T, K any] struct {
	key        func(T) K
	compare    func(a, b K) int
	descending bool
}

func (s keySpec[T, K]) bind(items []T) func(i, j int) int {
	keys := make([]K, len(items))
	for i, item := range items {
		keys[i] = s.key(item)
	}
	if s.descending {
		return func(i, j int) int { return -s.compare(keys[i], keys[j]) }
	}
	return func(i, j int) int { return s.compare(keys[i], keys[j]) }
}

// Ordered is a sequence sorted by an ordered list of criteria, most
// significant first. It is immutable: ThenBy returns a new Ordered.
type Ordered[T any] struct {
	source   core.Sequence[T]
	criteria []criterion[T]
}

func (o *Ordered[T]) with(c criterion[T]) *Ordered[T] {
	criteria := make([]criterion[T], len(o.criteria), len(o.criteria)+1)
	copy(criteria, o.criteria)
	return &Ordered[T]{source: o.source, criteria: append(criteria, c)}
}

// Iterate implements core.Sequence. On the first advance the source is
// traversed in full, keys are computed, and the elements are sorted; a
// fault in the source is the traversal's single fault.
func (o *Ordered[T]) Iterate(ctx context.Context) core.Cursor[T] {
	return core.Deferred(o.sorted).Iterate(ctx)
}

// Sorted materializes the ordering once.
func (o *Ordered[T]) Sorted(ctx context.Context) ([]T, error) {
	return o.sorted(ctx)
}

func (o *Ordered[T]) sorted(ctx context.Context) ([]T, error) {
	items, err := core.Materialize(ctx, o.source)
	if err != nil {
		return nil, err
	}

	compares := make([]func(i, j int) int, len(o.criteria))
	for n, c := range o.criteria {
		compares[n] = c.bind(items)
	}

	perm := make([]int, len(items))
	for i := range perm {
		perm[i] = i
	}
	// The position tie-break makes the order total, so the result is stable
	// whatever the sort algorithm.
	slices.SortFunc(perm, func(i, j int) int {
		for _, compare := range compares {
			if c := compare(i, j); c != 0 {
				return c
			}
		}
		return cmp.Compare(i, j)
	})

	out := make([]T, len(items))
	for n, i := range perm {
		out[n] = items[i]
	}
	return out, nil
}

// By orders source ascending by key.
func By[T any, K cmp.Ordered](source core.Sequence[T], key func(T) K) *Ordered[T] {
	return ByFunc(source, key, cmp.Compare[K], false)
}

// ByDescending orders source descending by key.
func ByDescending[T any, K cmp.Ordered](source core.Sequence[T], key func(T) K) *Ordered[T] {
	return ByFunc(source, key, cmp.Compare[K], true)
}

// ByFunc orders source by key using compare, which returns a negative
// number, zero, or a positive number like cmp.Compare.
func ByFunc[T, K any](source core.Sequence[T], key func(T) K, compare func(a, b K) int, descending bool) *Ordered[T] {
	o := &Ordered[T]{source: source}
	return o.with(keySpec[T, K]{key: key, compare: compare, descending: descending})
}

// Ascending orders values by their natural order.
func Ascending[T cmp.Ordered](source core.Sequence[T]) *Ordered[T] {
	return By(source, func(v T) T { return v })
}

// Descending orders values by their natural order, largest first.
func Descending[T cmp.Ordered](source core.Sequence[T]) *Ordered[T] {
	return ByDescending(source, func(v T) T { return v })
}

// ThenBy adds an ascending tie-break criterion to o.
func ThenBy[T any, K cmp.Ordered](o *Ordered[T], key func(T) K) *Ordered[T] {
	return ThenByFunc(o, key, cmp.Compare[K], false)
}

// ThenByDescending adds a descending tie-break criterion to o.
func ThenByDescending[T any, K cmp.Ordered](o *Ordered[T], key func(T) K) *Ordered[T] {
	return ThenByFunc(o, key, cmp.Compare[K], true)
}

// ThenByFunc adds a tie-break criterion with a custom comparator to o.
// o itself is left unchanged.
func ThenByFunc[T, K any](o *Ordered[T], key func(T) K, compare func(a, b K) int, descending bool) *Ordered[T] {
	return o.with(keySpec[T, K]{key: key, compare: compare, descending: descending})
}
