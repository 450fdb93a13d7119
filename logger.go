package colmem

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/colmem/memory"
)

// Logger wraps slog.Logger with colmem-specific context.
// This provides structured logging with consistent field names.
//
// A Logger is a memory.Observer: pass it to memory.WithObserver to log every
// construction.
type Logger struct {
	*slog.Logger
}

var _ memory.Observer = (*Logger)(nil)

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithKind adds a kind field to the logger.
func (l *Logger) WithKind(kind string) *Logger {
	return &Logger{
		Logger: l.Logger.With("kind", kind),
	}
}

// WithAllocator adds the allocator type to the logger.
func (l *Logger) WithAllocator(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("allocator", name),
	}
}

// LogBuild logs a completed or failed construction.
func (l *Logger) LogBuild(ctx context.Context, ev memory.BuildEvent) {
	if ev.Err != nil {
		l.ErrorContext(ctx, "build failed",
			"kind", ev.Kind,
			"duration", ev.Duration,
			"error", ev.Err,
		)
	} else {
		l.DebugContext(ctx, "build completed",
			"kind", ev.Kind,
			"len", ev.Len,
			"bytes", ev.Bytes,
			"duration", ev.Duration,
		)
	}
}

// ObserveBuild implements memory.Observer.
func (l *Logger) ObserveBuild(ev memory.BuildEvent) {
	l.LogBuild(context.Background(), ev)
}
