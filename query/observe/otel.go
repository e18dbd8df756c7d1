package observe

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/lguimbarda/min-query/query/core"
)

// instruments are the OpenTelemetry instruments recorded by Metered.
type instruments struct {
	traversals metric.Int64Counter
	items      metric.Int64Counter
	faults     metric.Int64Counter
	duration   metric.Int64Histogram
	attrs      metric.MeasurementOption
}

func newInstruments(meter metric.Meter, name string) (*instruments, error) {
	traversals, err := meter.Int64Counter("query.traversals", metric.WithDescription("traversals started"))
	if err != nil {
		return nil, fmt.Errorf("create traversals counter: %w", err)
	}
	items, err := meter.Int64Counter("query.items", metric.WithDescription("elements produced"))
	if err != nil {
		return nil, fmt.Errorf("create items counter: %w", err)
	}
	faults, err := meter.Int64Counter("query.faults", metric.WithDescription("element faults produced"))
	if err != nil {
		return nil, fmt.Errorf("create faults counter: %w", err)
	}
	duration, err := meter.Int64Histogram("query.traversal.duration",
		metric.WithDescription("time from first advance to end of traversal"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}
	return &instruments{
		traversals: traversals,
		items:      items,
		faults:     faults,
		duration:   duration,
		attrs:      metric.WithAttributes(attribute.String("sequence", name)),
	}, nil
}

// Metered wraps seq so that every traversal records OpenTelemetry metrics
// through meter: traversal and element counters, a fault counter, and a
// duration histogram, all tagged with the sequence name.
func Metered[T any](seq core.Sequence[T], meter metric.Meter, name string) (core.Sequence[T], error) {
	inst, err := newInstruments(meter, name)
	if err != nil {
		return nil, err
	}
	return core.Generator[T](func(ctx context.Context) core.Cursor[T] {
		var start time.Time
		return watch(seq.Iterate(ctx), func() {
			start = time.Now()
			inst.traversals.Add(ctx, 1, inst.attrs)
		}, func(res core.Result[T]) {
			if res.IsError() {
				inst.faults.Add(ctx, 1, inst.attrs)
				return
			}
			inst.items.Add(ctx, 1, inst.attrs)
		}, func(bool) {
			inst.duration.Record(ctx, time.Since(start).Milliseconds(), inst.attrs)
		})
	}), nil
}
