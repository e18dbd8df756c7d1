package group

import (
	"context"

	"github.com/lguimbarda/min-query/query/core"
)

// Join correlates outer and inner elements with equal keys. The inner
// sequence is grouped once per traversal, on the first advance; outer is
// then streamed and probed one element at a time. Results follow outer
// order, and inner order within one outer element. Faults in outer pass
// through in position; a fault while grouping inner is the traversal's
// single fault.
func Join[K comparable, O, I, R any](
	outer core.Sequence[O],
	inner core.Sequence[I],
	outerKey func(O) K,
	innerKey func(I) K,
	result func(O, I) R,
) core.Sequence[R] {
	return core.Generator[R](func(ctx context.Context) core.Cursor[R] {
		var lookup *Lookup[K, I]
		var out core.Cursor[O]
		failed := false

		var current O
		var matches []I
		return core.NewCursor(func() core.Result[R] {
			if failed {
				return core.EndOfSequence[R]()
			}
			if lookup == nil {
				l, err := Build(ctx, inner, innerKey)
				if err != nil {
					failed = true
					return core.Err[R](err)
				}
				lookup = l
				out = outer.Iterate(ctx)
			}
			for len(matches) == 0 {
				res := out.Advance()
				if !res.IsValue() {
					return core.Retype[R](res)
				}
				current = res.Value()
				if g, ok := lookup.Grouping(outerKey(current)); ok {
					matches = g.elements
				}
			}
			m := matches[0]
			matches = matches[1:]
			return core.Ok(result(current, m))
		}, func() {
			if out != nil {
				out.Close()
			}
		})
	})
}

// GroupJoin correlates each outer element with the (possibly empty)
// sequence of inner elements sharing its key. Every outer element produces
// exactly one result.
func GroupJoin[K comparable, O, I, R any](
	outer core.Sequence[O],
	inner core.Sequence[I],
	outerKey func(O) K,
	innerKey func(I) K,
	result func(O, core.Sequence[I]) R,
) core.Sequence[R] {
	return core.Generator[R](func(ctx context.Context) core.Cursor[R] {
		var lookup *Lookup[K, I]
		var out core.Cursor[O]
		failed := false
		return core.NewCursor(func() core.Result[R] {
			if failed {
				return core.EndOfSequence[R]()
			}
			if lookup == nil {
				l, err := Build(ctx, inner, innerKey)
				if err != nil {
					failed = true
					return core.Err[R](err)
				}
				lookup = l
				out = outer.Iterate(ctx)
			}
			res := out.Advance()
			if !res.IsValue() {
				return core.Retype[R](res)
			}
			return core.Ok(result(res.Value(), lookup.Get(outerKey(res.Value()))))
		}, func() {
			if out != nil {
				out.Close()
			}
		})
	})
}
