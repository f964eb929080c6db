// Package logging configures slog and carries an operation-scoped logger
// through context.Context.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const loggerKey = contextKey("logger")

// NewLogger builds the process logger: JSON in production, text otherwise.
func NewLogger(w io.Writer, level string, production bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if production {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel maps a LOG_LEVEL value to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in ctx, or nil when there is none.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return nil
	}
	logger, ok := ctx.Value(loggerKey).(*slog.Logger)
	if !ok {
		return nil
	}
	return logger
}

// StartOperation derives a logger tagged with a fresh operation id and the
// operation name, stores it in ctx and returns a func that logs completion.
func StartOperation(ctx context.Context, base *slog.Logger, name string) (context.Context, func(err error)) {
	start := time.Now()
	opLogger := base.With(
		slog.String("operation_id", uuid.NewString()),
		slog.String("operation", name),
	)
	done := func(err error) {
		if err != nil {
			opLogger.Error("Operation failed",
				slog.String("error", err.Error()),
				slog.Duration("latency", time.Since(start)))
			return
		}
		opLogger.Info("Operation completed", slog.Duration("latency", time.Since(start)))
	}
	return WithLogger(ctx, opLogger), done
}
