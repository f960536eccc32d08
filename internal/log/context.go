package log

import (
	"context"
	"log/slog"
)

type contextKey struct{}

var loggerKey contextKey

// WithContext returns a context carrying the logger. The HTTP middleware
// uses it to hand request-scoped loggers to handlers.
func WithContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from the context, falling back to a
// default-backed logger when none was injected.
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(loggerKey).(*Logger); ok {
		return logger
	}
	return &Logger{
		Logger:    slog.Default(),
		component: ComponentApp,
	}
}
