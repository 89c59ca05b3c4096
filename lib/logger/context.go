package logger

import (
	"context"
	"log/slog"
)

type contextKey string

const loggerKey contextKey = "_log"

func InjectLoggerIntoCtx(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in ctx, falling back to [slog.Default].
func FromContext(ctx context.Context) *slog.Logger {
	logger, isOk := ctx.Value(loggerKey).(*slog.Logger)
	if !isOk || logger == nil {
		return slog.Default()
	}

	return logger
}
