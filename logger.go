package geochrono

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/geochrono/core"
)

// Logger wraps slog.Logger with geochrono-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

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
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// debugEnabled reports whether debug records would be emitted.
// Hot paths check it before building attributes.
func (l *Logger) debugEnabled() bool {
	return l.Enabled(context.Background(), slog.LevelDebug)
}

// LogInsert logs an insert operation.
func (l *Logger) LogInsert(h core.Handle, err error) {
	if err != nil {
		l.Warn("insert rejected",
			"error", err,
		)
		return
	}
	if l.debugEnabled() {
		l.Debug("insert completed",
			"handle", uint32(h),
		)
	}
}

// LogBulkLoad logs a bulk load.
func (l *Logger) LogBulkLoad(count int, elapsed time.Duration) {
	l.Info("bulk load completed",
		"count", count,
		"elapsed", elapsed,
	)
}

// LogQuery logs a query.
func (l *Logger) LogQuery(kind QueryKind, results int, elapsed time.Duration) {
	if l.debugEnabled() {
		l.Debug("query completed",
			"kind", kind.String(),
			"results", results,
			"elapsed", elapsed,
		)
	}
}
