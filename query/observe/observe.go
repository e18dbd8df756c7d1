package observe

import (
	"context"
	"time"

	"github.com/lguimbarda/min-query/query/core"
)

// TraversalMetrics holds statistics about one traversal.
type TraversalMetrics struct {
	Values int64
	Errors int64

	StartTime     time.Time
	EndTime       time.Time
	FirstItemTime time.Time

	// Exhausted is false when the cursor was closed before the end.
	Exhausted bool
}

// Duration returns the time from the first advance to the end.
func (m TraversalMetrics) Duration() time.Duration {
	return m.EndTime.Sub(m.StartTime)
}

// watch wraps a cursor and reports its first advance to onStart, its
// results to onResult, and its end, once, to onEnd. Nothing is reported
// for a cursor that was never advanced.
func watch[T any](in core.Cursor[T], onStart func(), onResult func(core.Result[T]), onEnd func(exhausted bool)) core.Cursor[T] {
	started, ended := false, false
	end := func(exhausted bool) {
		if ended || !started {
			return
		}
		ended = true
		onEnd(exhausted)
	}
	return core.NewCursor(func() core.Result[T] {
		if !started {
			started = true
			onStart()
		}
		res := in.Advance()
		if core.IsEnd(res) {
			end(true)
			return res
		}
		onResult(res)
		return res
	}, func() {
		in.Close()
		end(false)
	})
}

// Meter creates a Transformer that measures each traversal and passes the
// metrics to onComplete when the traversal ends or is closed.
func Meter[T any](onComplete func(TraversalMetrics)) core.Transformer[T, T] {
	return core.Transform[T, T](func(seq core.Sequence[T]) core.Sequence[T] {
		return core.Generator[T](func(ctx context.Context) core.Cursor[T] {
			var m TraversalMetrics
			return watch(seq.Iterate(ctx), func() {
				m.StartTime = time.Now()
			}, func(res core.Result[T]) {
				if m.FirstItemTime.IsZero() {
					m.FirstItemTime = time.Now()
				}
				if res.IsError() {
					m.Errors++
				} else {
					m.Values++
				}
			}, func(exhausted bool) {
				m.EndTime = time.Now()
				m.Exhausted = exhausted
				if onComplete != nil {
					onComplete(m)
				}
			})
		})
	})
}

// Spy creates a Transformer that shows every element and fault to
// inspector without changing them.
func Spy[T any](inspector func(core.Result[T])) core.Transformer[T, T] {
	return core.Transform[T, T](func(seq core.Sequence[T]) core.Sequence[T] {
		return core.Generator[T](func(ctx context.Context) core.Cursor[T] {
			return watch(seq.Iterate(ctx), func() {}, inspector, func(bool) {})
		})
	})
}
