package observe

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lguimbarda/min-query/query/core"
)

// loggerConfig wraps the logger so it gets its own config key.
type loggerConfig struct {
	logger *zap.Logger
}

// WithLogger attaches a zap logger to the context. Operators that log
// (Logged, the cache's fault reporting) pick it up from there.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return core.WithConfig(ctx, loggerConfig{logger: logger})
}

// Logger returns the logger attached to ctx, or a no-op logger.
func Logger(ctx context.Context) *zap.Logger {
	if cfg, ok := core.GetConfig[loggerConfig](ctx); ok && cfg.logger != nil {
		return cfg.logger
	}
	return zap.NewNop()
}

// Logged wraps seq so that each traversal is logged with the context
// logger: start and completion at debug level, element faults at warn.
// Every traversal gets its own id so interleaved traversals can be told apart.
func Logged[T any](seq core.Sequence[T], name string) core.Sequence[T] {
	return core.Generator[T](func(ctx context.Context) core.Cursor[T] {
		logger := Logger(ctx).With(
			zap.String("sequence", name),
			zap.String("traversal", uuid.NewString()),
		)

		var (
			items, faults int
			start         time.Time
		)
		return watch(seq.Iterate(ctx), func() {
			start = time.Now()
			logger.Debug("traversal started")
		}, func(res core.Result[T]) {
			if res.IsValue() {
				items++
				return
			}
			faults++
			logger.Warn("element fault", zap.Int("position", items+faults-1), zap.Error(res.Error()))
		}, func(exhausted bool) {
			reason := "closed"
			if exhausted {
				reason = "exhausted"
			}
			logger.Debug("traversal finished",
				zap.String("reason", reason),
				zap.Int("items", items),
				zap.Int("faults", faults),
				zap.Duration("elapsed", time.Since(start)),
			)
		})
	})
}
