// Package observe provides traversal observation: hook registration
// helpers, per-traversal metrics, zap logging, and OpenTelemetry
// instruments. None of it changes the elements of a sequence.
package observe

import (
	"context"
	"sync/atomic"

	"github.com/lguimbarda/min-query/query/core"
)

// WithValueHook registers a callback for every element of a traversal of
// sequences of T.
func WithValueHook[T any](ctx context.Context, callback func(T)) context.Context {
	return core.WithHooks(ctx, core.Hooks[T]{OnValue: callback})
}

// WithErrorHook registers a callback for every element fault.
func WithErrorHook[T any](ctx context.Context, callback func(error)) context.Context {
	return core.WithHooks(ctx, core.Hooks[T]{OnError: callback})
}

// WithStartHook registers a callback for the first advance of a traversal.
func WithStartHook[T any](ctx context.Context, callback func()) context.Context {
	return core.WithHooks(ctx, core.Hooks[T]{OnStart: callback})
}

// WithCompleteHook registers a callback for the end of a traversal,
// whether exhausted or closed early.
func WithCompleteHook[T any](ctx context.Context, callback func()) context.Context {
	return core.WithHooks(ctx, core.Hooks[T]{OnComplete: callback})
}

// Counter counts elements and faults across traversals.
type Counter struct {
	values atomic.Int64
	errors atomic.Int64
}

// Values returns the number of elements seen.
func (c *Counter) Values() int64 { return c.values.Load() }

// Errors returns the number of faults seen.
func (c *Counter) Errors() int64 { return c.errors.Load() }

// Total returns elements plus faults.
func (c *Counter) Total() int64 { return c.values.Load() + c.errors.Load() }

// WithCounter registers a Counter for traversals of sequences of T.
func WithCounter[T any](ctx context.Context) (context.Context, *Counter) {
	counter := &Counter{}
	ctx = core.WithHooks(ctx, core.Hooks[T]{
		OnValue: func(T) { counter.values.Add(1) },
		OnError: func(error) { counter.errors.Add(1) },
	})
	return ctx, counter
}
