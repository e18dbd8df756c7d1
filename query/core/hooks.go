package core

import (
	"context"
)

// Hooks holds typed observation callbacks for traversals of sequences of T.
// All fields are optional - nil means no observation for that event.
// Hooks fire for consumer-facing traversals only (terminal operations,
// All, Collect, Open), never for the internal cursors of chained operators,
// so a chain of ten operators is observed once. They run synchronously on
// the goroutine advancing the cursor and should be fast.
type Hooks[T any] struct {
	OnStart    func()      // First advance of the traversal
	OnValue    func(T)     // Element produced
	OnError    func(error) // Element fault produced
	OnComplete func()      // Traversal ended or was closed
}

// hooksKey is unexported to prevent collisions with user context keys.
type hooksKey[T any] struct{}

// hooksContainer holds multiple hook sets for FIFO invocation.
type hooksContainer[T any] struct {
	hookSets []*Hooks[T]
}

// WithHooks attaches typed hooks to the context.
// Multiple calls to WithHooks compose in FIFO order - hooks from earlier
// calls are invoked before hooks from later calls.
//
// Example:
//
//	ctx := core.WithHooks(ctx, core.Hooks[int]{
//	    OnValue: func(v int) { log.Printf("Value: %d", v) },
//	})
func WithHooks[T any](ctx context.Context, hooks Hooks[T]) context.Context {
	if ctx == nil {
		panic("nil context")
	}

	existing := getHooksContainer[T](ctx)
	if existing == nil {
		return context.WithValue(ctx, hooksKey[T]{}, &hooksContainer[T]{
			hookSets: []*Hooks[T]{&hooks},
		})
	}

	// Copy so contexts derived earlier keep their own hook list.
	container := &hooksContainer[T]{
		hookSets: make([]*Hooks[T], len(existing.hookSets)+1),
	}
	copy(container.hookSets, existing.hookSets)
	container.hookSets[len(existing.hookSets)] = &hooks

	return context.WithValue(ctx, hooksKey[T]{}, container)
}

// getHooksContainer retrieves the hooks container from context.
// Returns nil if no hooks are registered for type T.
func getHooksContainer[T any](ctx context.Context) *hooksContainer[T] {
	if ctx == nil {
		return nil
	}
	if c, ok := ctx.Value(hooksKey[T]{}).(*hooksContainer[T]); ok {
		return c
	}
	return nil
}

// hookedCursor invokes the registered hooks around an inner cursor.
type hookedCursor[T any] struct {
	inner     Cursor[T]
	hooks     []*Hooks[T]
	started   bool
	completed bool
}

// observe wraps cur with the hooks registered for T, if any.
func observe[T any](ctx context.Context, cur Cursor[T]) Cursor[T] {
	container := getHooksContainer[T](ctx)
	if container == nil {
		return cur
	}
	return &hookedCursor[T]{inner: cur, hooks: container.hookSets}
}

func (c *hookedCursor[T]) Advance() Result[T] {
	if !c.started {
		c.started = true
		for _, h := range c.hooks {
			if h.OnStart != nil {
				h.OnStart()
			}
		}
	}
	res := c.inner.Advance()
	switch {
	case res.IsValue():
		for _, h := range c.hooks {
			if h.OnValue != nil {
				h.OnValue(res.Value())
			}
		}
	case res.IsError():
		for _, h := range c.hooks {
			if h.OnError != nil {
				h.OnError(res.Error())
			}
		}
	default:
		c.complete()
	}
	return res
}

func (c *hookedCursor[T]) Close() {
	c.inner.Close()
	c.complete()
}

func (c *hookedCursor[T]) complete() {
	if c.completed {
		return
	}
	c.completed = true
	for _, h := range c.hooks {
		if h.OnComplete != nil {
			h.OnComplete()
		}
	}
}
