// Package faults provides opt-in handling of element faults: observing,
// replacing, dropping, and rewriting them. Nothing in the rest of the
// library swallows a fault; these transformers are the explicit way to.
package faults

import (
	"context"

	"github.com/lguimbarda/min-query/query/core"
)

// rewrite builds a transformer that passes every non-end result through
// step. step returns the result to emit and whether to emit it.
func rewrite[IN, OUT any](step func(core.Result[IN]) (core.Result[OUT], bool)) core.Transformer[IN, OUT] {
	return core.Transform[IN, OUT](func(seq core.Sequence[IN]) core.Sequence[OUT] {
		return core.Generator[OUT](func(ctx context.Context) core.Cursor[OUT] {
			in := seq.Iterate(ctx)
			return core.NewCursor(func() core.Result[OUT] {
				for {
					res := in.Advance()
					if core.IsEnd(res) {
						return core.Retype[OUT](res)
					}
					if out, emit := step(res); emit {
						return out
					}
				}
			}, in.Close)
		})
	})
}

// OnError creates a Transformer that calls handler for every fault.
// The fault still passes through.
func OnError[T any](handler func(error)) core.Transformer[T, T] {
	return rewrite(func(res core.Result[T]) (core.Result[T], bool) {
		if res.IsError() {
			handler(res.Error())
		}
		return res, true
	})
}

// CatchError creates a Transformer that handles faults matching predicate.
// If handler returns a value it replaces the fault; if it returns an error,
// that error becomes the fault. Non-matching faults pass through unchanged.
func CatchError[T any](predicate func(error) bool, handler func(error) (T, error)) core.Transformer[T, T] {
	return rewrite(func(res core.Result[T]) (core.Result[T], bool) {
		if !res.IsError() || !predicate(res.Error()) {
			return res, true
		}
		value, err := handler(res.Error())
		if err != nil {
			return core.Err[T](err), true
		}
		return core.Ok(value), true
	})
}

// FilterErrors creates a Transformer that drops faults matching predicate.
func FilterErrors[T any](predicate func(error) bool) core.Transformer[T, T] {
	return rewrite(func(res core.Result[T]) (core.Result[T], bool) {
		return res, !res.IsError() || !predicate(res.Error())
	})
}

// IgnoreErrors creates a Transformer that drops every fault.
func IgnoreErrors[T any]() core.Transformer[T, T] {
	return FilterErrors[T](func(error) bool { return true })
}

// MapErrors creates a Transformer that rewrites every fault through mapper.
// Values pass through unchanged.
func MapErrors[T any](mapper func(error) error) core.Transformer[T, T] {
	return rewrite(func(res core.Result[T]) (core.Result[T], bool) {
		if res.IsError() {
			return core.Err[T](mapper(res.Error())), true
		}
		return res, true
	})
}

// ErrorsOnly creates a Transformer that drops every value, keeping only
// the faults.
func ErrorsOnly[T any]() core.Transformer[T, T] {
	return rewrite(func(res core.Result[T]) (core.Result[T], bool) {
		return res, res.IsError()
	})
}

// StopOnError creates a Transformer that ends the sequence right after the
// first fault, which is still yielded.
func StopOnError[T any]() core.Transformer[T, T] {
	return core.Transform[T, T](func(seq core.Sequence[T]) core.Sequence[T] {
		return core.Generator[T](func(ctx context.Context) core.Cursor[T] {
			in := seq.Iterate(ctx)
			failed := false
			return core.NewCursor(func() core.Result[T] {
				if failed {
					return core.EndOfSequence[T]()
				}
				res := in.Advance()
				failed = res.IsError()
				return res
			}, in.Close)
		})
	})
}

// Materialized holds either a value or the fault that took its place.
type Materialized[T any] struct {
	Value   T
	Err     error
	IsValue bool
}

// Materialize creates a Transformer that turns every value and fault into
// a Materialized value, so downstream operators see faults as data.
func Materialize[T any]() core.Transformer[T, Materialized[T]] {
	return rewrite(func(res core.Result[T]) (core.Result[Materialized[T]], bool) {
		if res.IsError() {
			return core.Ok(Materialized[T]{Err: res.Error()}), true
		}
		return core.Ok(Materialized[T]{Value: res.Value(), IsValue: true}), true
	})
}

// Dematerialize creates a Transformer that reverses Materialize.
func Dematerialize[T any]() core.Transformer[Materialized[T], T] {
	return rewrite(func(res core.Result[Materialized[T]]) (core.Result[T], bool) {
		if res.IsError() {
			return core.Retype[T](res), true
		}
		m := res.Value()
		if !m.IsValue {
			return core.Err[T](m.Err), true
		}
		return core.Ok(m.Value), true
	})
}

// Retry creates a Transformer that applies operation to every value,
// calling it again up to maxRetries times while it fails. The last error
// becomes the fault of that element. Faults already in the source pass
// through without retrying.
func Retry[T, U any](maxRetries int, operation func(T) (U, error)) core.Transformer[T, U] {
	return core.Map(func(v T) (U, error) {
		var (
			out U
			err error
		)
		for attempt := 0; attempt <= maxRetries; attempt++ {
			if out, err = operation(v); err == nil {
				return out, nil
			}
		}
		return out, err
	})
}
