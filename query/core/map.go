package core

import (
	"context"
)

// Mapper transforms individual elements (1:1 cardinality) and implements
// Transformer. It answers the question: "What is done to each element?"
type Mapper[IN, OUT any] func(IN) (OUT, error)

// Map creates a Mapper from a transformation function. An error returned by
// mapFunc becomes the fault of that element, unwrapped; faults already in
// the source pass through in position.
func Map[IN, OUT any](mapFunc func(IN) (OUT, error)) Mapper[IN, OUT] {
	return Mapper[IN, OUT](mapFunc)
}

// Apply implements Transformer.
func (m Mapper[IN, OUT]) Apply(seq Sequence[IN]) Sequence[OUT] {
	return Generator[OUT](func(ctx context.Context) Cursor[OUT] {
		in := seq.Iterate(ctx)
		return NewCursor(func() Result[OUT] {
			res := in.Advance()
			if !res.IsValue() {
				return Retype[OUT](res)
			}
			out, err := m(res.Value())
			if err != nil {
				return Err[OUT](err)
			}
			return Ok(out)
		}, in.Close)
	})
}

// FlatMapper transforms individual elements into zero or more elements
// (1:N cardinality) and implements Transformer.
type FlatMapper[IN, OUT any] func(IN) (Sequence[OUT], error)

// FlatMap creates a FlatMapper from a function returning a nested sequence.
// Each nested sequence is traversed lazily when the outer cursor reaches it.
func FlatMap[IN, OUT any](flatMapFunc func(IN) (Sequence[OUT], error)) FlatMapper[IN, OUT] {
	return FlatMapper[IN, OUT](flatMapFunc)
}

// Apply implements Transformer.
func (fm FlatMapper[IN, OUT]) Apply(seq Sequence[IN]) Sequence[OUT] {
	return Generator[OUT](func(ctx context.Context) Cursor[OUT] {
		outer := seq.Iterate(ctx)
		var inner Cursor[OUT]
		return NewCursor(func() Result[OUT] {
			for {
				if inner != nil {
					res := inner.Advance()
					if !IsEnd(res) {
						return res
					}
					inner.Close()
					inner = nil
				}
				res := outer.Advance()
				if !res.IsValue() {
					return Retype[OUT](res)
				}
				nested, err := fm(res.Value())
				if err != nil {
					return Err[OUT](err)
				}
				if nested != nil {
					inner = nested.Iterate(ctx)
				}
			}
		}, func() {
			if inner != nil {
				inner.Close()
			}
			outer.Close()
		})
	})
}
