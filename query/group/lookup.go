// Package group implements the grouping store: a hash-indexed,
// insertion-ordered multimap built by one full traversal of a sequence.
// Grouping, joins, lookups, and the set operations are all built on it.
//
// Groups are ordered by the first appearance of their key in the source;
// elements within a group keep source order.
package group

import (
	"context"

	"github.com/lguimbarda/min-query/query/core"
)

// Grouping is a key together with the elements first observed with it.
// It is itself a Sequence over those elements.
type Grouping[K any, T any] struct {
	key      K
	elements []T
}

// Key returns the grouping's key.
func (g *Grouping[K, T]) Key() K { return g.key }

// Len returns the number of elements in the grouping.
func (g *Grouping[K, T]) Len() int { return len(g.elements) }

// Elements returns a copy of the grouping's elements.
func (g *Grouping[K, T]) Elements() []T {
	out := make([]T, len(g.elements))
	copy(out, g.elements)
	return out
}

// Iterate implements core.Sequence.
func (g *Grouping[K, T]) Iterate(ctx context.Context) core.Cursor[T] {
	return core.FromSlice(g.elements).Iterate(ctx)
}

// Lookup is the grouping store. It is immutable once built and safe for
// concurrent reads.
type Lookup[K any, T any] struct {
	idx    index[K]
	groups []*Grouping[K, T]
}

func newLookup[K comparable, T any]() *Lookup[K, T] {
	return &Lookup[K, T]{idx: mapIndex[K]{}}
}

func newHashedLookup[K any, T any](hasher Hasher[K]) *Lookup[K, T] {
	l := &Lookup[K, T]{}
	l.idx = newHashIndex(hasher, func(pos int) K { return l.groups[pos].key })
	return l
}

// add appends elem to the group for key, creating the group on first sight.
func (l *Lookup[K, T]) add(key K, elem T) {
	if pos, ok := l.idx.find(key); ok {
		g := l.groups[pos]
		g.elements = append(g.elements, elem)
		return
	}
	l.idx.add(key, len(l.groups))
	l.groups = append(l.groups, &Grouping[K, T]{key: key, elements: []T{elem}})
}

// fill traverses source once into l. It stops at the first element fault.
func fill[K any, T, E any](ctx context.Context, l *Lookup[K, E], source core.Sequence[T], key func(T) K, elem func(T) E) (*Lookup[K, E], error) {
	items, err := core.Materialize(ctx, source)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		l.add(key(item), elem(item))
	}
	return l, nil
}

func identity[T any](v T) T { return v }

// Build traverses source once and groups its elements by key.
func Build[K comparable, T any](ctx context.Context, source core.Sequence[T], key func(T) K) (*Lookup[K, T], error) {
	return fill(ctx, newLookup[K, T](), source, key, identity[T])
}

// BuildElements traverses source once and groups elem(x) by key(x).
func BuildElements[K comparable, T, E any](ctx context.Context, source core.Sequence[T], key func(T) K, elem func(T) E) (*Lookup[K, E], error) {
	return fill(ctx, newLookup[K, E](), source, key, elem)
}

// BuildHashed is Build for keys compared through a Hasher.
func BuildHashed[K any, T any](ctx context.Context, source core.Sequence[T], key func(T) K, hasher Hasher[K]) (*Lookup[K, T], error) {
	return fill(ctx, newHashedLookup[K, T](hasher), source, key, identity[T])
}

// Get returns the elements grouped under key, or an empty sequence.
func (l *Lookup[K, T]) Get(key K) core.Sequence[T] {
	if g, ok := l.Grouping(key); ok {
		return g
	}
	return core.Empty[T]()
}

// Grouping returns the group for key.
func (l *Lookup[K, T]) Grouping(key K) (*Grouping[K, T], bool) {
	pos, ok := l.idx.find(key)
	if !ok {
		return nil, false
	}
	return l.groups[pos], true
}

// Contains reports whether key was observed.
func (l *Lookup[K, T]) Contains(key K) bool {
	_, ok := l.idx.find(key)
	return ok
}

// Count returns the number of distinct keys.
func (l *Lookup[K, T]) Count() int {
	return len(l.groups)
}

// Groupings returns the groups in first-seen key order.
func (l *Lookup[K, T]) Groupings() []*Grouping[K, T] {
	out := make([]*Grouping[K, T], len(l.groups))
	copy(out, l.groups)
	return out
}

// Iterate implements core.Sequence over the groups in first-seen key order.
func (l *Lookup[K, T]) Iterate(ctx context.Context) core.Cursor[*Grouping[K, T]] {
	return core.FromSlice(l.groups).Iterate(ctx)
}

// ApplyResultSelector projects every group through result, in group order.
func ApplyResultSelector[K any, T, R any](l *Lookup[K, T], result func(K, core.Sequence[T]) R) core.Sequence[R] {
	return core.Map(func(g *Grouping[K, T]) (R, error) {
		return result(g.key, g), nil
	}).Apply(l)
}
