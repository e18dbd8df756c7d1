package query

import (
	"cmp"
	"context"
	"iter"

	"github.com/lguimbarda/min-query/query/aggregate"
	"github.com/lguimbarda/min-query/query/cache"
	"github.com/lguimbarda/min-query/query/core"
	"github.com/lguimbarda/min-query/query/filter"
	"github.com/lguimbarda/min-query/query/group"
	"github.com/lguimbarda/min-query/query/observe"
	"github.com/lguimbarda/min-query/query/order"
	"github.com/lguimbarda/min-query/query/transform"
)

// Enumerable wraps a Sequence with chainable methods for the steps that
// keep the element type. Type-changing steps (Select, GroupBy, Join...)
// are package functions, since Go methods cannot add type parameters.
// Every method is deferred: it builds a new sequence and runs nothing.
type Enumerable[T any] struct {
	seq core.Sequence[T]
}

// From wraps seq. Wrapping an Enumerable returns it unchanged.
func From[T any](seq core.Sequence[T]) Enumerable[T] {
	if e, ok := seq.(Enumerable[T]); ok {
		return e
	}
	return Enumerable[T]{seq: seq}
}

// Iterate implements Sequence.
func (e Enumerable[T]) Iterate(ctx context.Context) core.Cursor[T] {
	return e.seq.Iterate(ctx)
}

// Unwrap returns the wrapped sequence.
func (e Enumerable[T]) Unwrap() core.Sequence[T] {
	return e.seq
}

// Through applies transformers in order.
func (e Enumerable[T]) Through(transformers ...core.Transformer[T, T]) Enumerable[T] {
	return From(core.Pipe(e.seq, transformers...))
}

func (e Enumerable[T]) Where(predicate func(T) bool) Enumerable[T] {
	return e.Through(filter.Where(predicate))
}

func (e Enumerable[T]) WhereIndexed(predicate func(T, int) bool) Enumerable[T] {
	return e.Through(filter.WhereIndexed(predicate))
}

func (e Enumerable[T]) Take(n int) Enumerable[T] {
	return e.Through(filter.Take[T](n))
}

func (e Enumerable[T]) Skip(n int) Enumerable[T] {
	return e.Through(filter.Skip[T](n))
}

func (e Enumerable[T]) TakeWhile(predicate func(T) bool) Enumerable[T] {
	return e.Through(filter.TakeWhile(predicate))
}

func (e Enumerable[T]) SkipWhile(predicate func(T) bool) Enumerable[T] {
	return e.Through(filter.SkipWhile(predicate))
}

func (e Enumerable[T]) TakeLast(n int) Enumerable[T] {
	return e.Through(filter.TakeLast[T](n))
}

func (e Enumerable[T]) SkipLast(n int) Enumerable[T] {
	return e.Through(filter.SkipLast[T](n))
}

// Concat yields e followed by each of others.
func (e Enumerable[T]) Concat(others ...core.Sequence[T]) Enumerable[T] {
	return From(transform.Concat(append([]core.Sequence[T]{e.seq}, others...)...))
}

func (e Enumerable[T]) Append(values ...T) Enumerable[T] {
	return e.Through(transform.Append(values...))
}

func (e Enumerable[T]) Prepend(values ...T) Enumerable[T] {
	return e.Through(transform.Prepend(values...))
}

func (e Enumerable[T]) Reverse() Enumerable[T] {
	return e.Through(transform.Reverse[T]())
}

func (e Enumerable[T]) DefaultIfEmpty(value T) Enumerable[T] {
	return e.Through(transform.DefaultIfEmpty(value))
}

// Cached puts a fresh shared buffer in front of e: the source is pulled at
// most once per position, however many traversals run.
func (e Enumerable[T]) Cached() Enumerable[T] {
	return From[T](cache.New(e.seq))
}

// Logged logs every traversal through the context logger under name.
func (e Enumerable[T]) Logged(name string) Enumerable[T] {
	return From(observe.Logged(e.seq, name))
}

// Terminal methods. Each runs one traversal and stops at the first fault.

func (e Enumerable[T]) ToSlice(ctx context.Context) ([]T, error) {
	return core.ToSlice(ctx, e.seq)
}

func (e Enumerable[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return core.All(ctx, e.seq)
}

func (e Enumerable[T]) Count(ctx context.Context) (int, error) {
	return core.Count(ctx, e.seq)
}

func (e Enumerable[T]) First(ctx context.Context) (T, error) {
	return core.First(ctx, e.seq)
}

func (e Enumerable[T]) FirstOrDefault(ctx context.Context, def T) (T, error) {
	return core.FirstOrDefault(ctx, e.seq, def)
}

func (e Enumerable[T]) Last(ctx context.Context) (T, error) {
	return core.Last(ctx, e.seq)
}

func (e Enumerable[T]) Single(ctx context.Context) (T, error) {
	return core.Single(ctx, e.seq)
}

func (e Enumerable[T]) ElementAt(ctx context.Context, index int) (T, error) {
	return core.ElementAt(ctx, e.seq, index)
}

func (e Enumerable[T]) Any(ctx context.Context) (bool, error) {
	return aggregate.Any(ctx, e.seq)
}

func (e Enumerable[T]) AllMatch(ctx context.Context, predicate func(T) bool) (bool, error) {
	return aggregate.All(ctx, e.seq, predicate)
}

func (e Enumerable[T]) Aggregate(ctx context.Context, fn func(acc, item T) T) (T, error) {
	return aggregate.Aggregate(ctx, e.seq, fn)
}

// Type-changing steps.

// Select projects every element through fn.
func Select[T, U any](seq core.Sequence[T], fn func(T) U) Enumerable[U] {
	return From(transform.Select(func(v T) (U, error) { return fn(v), nil }).Apply(seq))
}

// SelectErr projects every element through fn; an error becomes the fault
// of that element.
func SelectErr[T, U any](seq core.Sequence[T], fn func(T) (U, error)) Enumerable[U] {
	return From(transform.Select(fn).Apply(seq))
}

// SelectMany projects every element to a sequence and flattens the results.
func SelectMany[T, U any](seq core.Sequence[T], fn func(T) core.Sequence[U]) Enumerable[U] {
	return From(transform.SelectMany(func(v T) (core.Sequence[U], error) { return fn(v), nil }).Apply(seq))
}

// OrderBy sorts by key, ascending and stable. Refine with ThenBy.
func OrderBy[T any, K cmp.Ordered](seq core.Sequence[T], key func(T) K) *order.Ordered[T] {
	return order.By(seq, key)
}

// OrderByDescending sorts by key, descending and stable.
func OrderByDescending[T any, K cmp.Ordered](seq core.Sequence[T], key func(T) K) *order.Ordered[T] {
	return order.ByDescending(seq, key)
}

// ThenBy breaks ties of o by key, ascending.
func ThenBy[T any, K cmp.Ordered](o *order.Ordered[T], key func(T) K) *order.Ordered[T] {
	return order.ThenBy(o, key)
}

// ThenByDescending breaks ties of o by key, descending.
func ThenByDescending[T any, K cmp.Ordered](o *order.Ordered[T], key func(T) K) *order.Ordered[T] {
	return order.ThenByDescending(o, key)
}

// GroupBy groups elements by key, in order of first appearance.
func GroupBy[T any, K comparable](seq core.Sequence[T], key func(T) K) Enumerable[*group.Grouping[K, T]] {
	return From(group.GroupBy(seq, key))
}

// Join correlates outer and inner elements with equal keys.
func Join[O, I any, K comparable, R any](outer core.Sequence[O], inner core.Sequence[I], outerKey func(O) K, innerKey func(I) K, result func(O, I) R) Enumerable[R] {
	return From(group.Join(outer, inner, outerKey, innerKey, result))
}

// GroupJoin correlates each outer element with the sequence of inner
// elements sharing its key.
func GroupJoin[O, I any, K comparable, R any](outer core.Sequence[O], inner core.Sequence[I], outerKey func(O) K, innerKey func(I) K, result func(O, core.Sequence[I]) R) Enumerable[R] {
	return From(group.GroupJoin(outer, inner, outerKey, innerKey, result))
}

// Distinct drops repeated elements, keeping first occurrences.
func Distinct[T comparable](seq core.Sequence[T]) Enumerable[T] {
	return From(group.Distinct(seq))
}

// Zip pairs the elements of a and b by position.
func Zip[A, B any](a core.Sequence[A], b core.Sequence[B]) Enumerable[transform.Pair[A, B]] {
	return From(transform.Zip(a, b))
}

// Sum returns the sum of the elements of seq.
func Sum[T aggregate.Numeric](ctx context.Context, seq core.Sequence[T]) (T, error) {
	return aggregate.Sum(ctx, seq)
}

// ToLookup builds a lookup of seq by key.
func ToLookup[T any, K comparable](ctx context.Context, seq core.Sequence[T], key func(T) K) (*group.Lookup[K, T], error) {
	return group.ToLookup(ctx, seq, key)
}
