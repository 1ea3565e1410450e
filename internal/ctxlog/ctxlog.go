// Package ctxlog passes a request-scoped *slog.Logger through
// context.Context so library code logs through whatever handler the
// entrypoint configured.
package ctxlog

import (
	"context"
	"log/slog"
)

// ctxKey is unexported so no other package can collide with it.
type ctxKey struct{}

// WithLogger embeds logger in a derived context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger stored in ctx. It falls back to the
// process-wide default so callers never need a nil check.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
