package docset

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with docset-specific context.
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

// WithIndexInterval adds an index_interval field to the logger.
func (l *Logger) WithIndexInterval(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("index_interval", n),
	}
}

// LogBuild logs the completion of a builder.
func (l *Logger) LogBuild(cardinality uint64, sizeBytes, sequences, indexEntries int) {
	l.Debug("build completed",
		"cardinality", cardinality,
		"size_bytes", sizeBytes,
		"sequences", sequences,
		"index_entries", indexEntries,
	)
}

// LogIntersect logs an intersection.
func (l *Logger) LogIntersect(inputs int, cardinality uint64, err error) {
	if err != nil {
		l.Error("intersect failed",
			"inputs", inputs,
			"error", err,
		)
	} else {
		l.Debug("intersect completed",
			"inputs", inputs,
			"cardinality", cardinality,
		)
	}
}

// LogUnion logs a union.
func (l *Logger) LogUnion(inputs int, cardinality uint64, err error) {
	if err != nil {
		l.Error("union failed",
			"inputs", inputs,
			"error", err,
		)
	} else {
		l.Debug("union completed",
			"inputs", inputs,
			"cardinality", cardinality,
		)
	}
}

// LogDecode logs decoding of a serialized set.
func (l *Logger) LogDecode(sizeBytes int, err error) {
	if err != nil {
		l.Error("decode failed",
			"size_bytes", sizeBytes,
			"error", err,
		)
	} else {
		l.Debug("decode completed",
			"size_bytes", sizeBytes,
		)
	}
}

// LogBuildAll logs a bulk build.
func (l *Logger) LogBuildAll(ctx context.Context, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "bulk build failed",
			"count", count,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "bulk build completed",
			"count", count,
		)
	}
}
