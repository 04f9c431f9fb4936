package docidx

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with docidx-specific context.
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithID adds a document id field to the logger.
func (l *Logger) WithID(id uint32) *Logger {
	return &Logger{
		Logger: l.Logger.With("id", id),
	}
}

// WithField adds a field name to the logger.
func (l *Logger) WithField(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("field", name),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogAdd logs an add operation.
func (l *Logger) LogAdd(id uint32, err error) {
	if err != nil {
		l.Error("add failed",
			"error", err,
		)
	} else {
		l.Debug("add completed",
			"id", id,
		)
	}
}

// LogUpdate logs an update operation.
func (l *Logger) LogUpdate(id uint32, err error) {
	if err != nil {
		l.Error("update failed",
			"id", id,
			"error", err,
		)
	} else {
		l.Debug("update completed",
			"id", id,
		)
	}
}

// LogRemove logs a remove operation.
func (l *Logger) LogRemove(id uint32, err error) {
	if err != nil {
		l.Error("remove failed",
			"id", id,
			"error", err,
		)
	} else {
		l.Debug("remove completed",
			"id", id,
		)
	}
}

// LogRemoveMatched logs a remove-by-query operation.
func (l *Logger) LogRemoveMatched(clauses, removed int, err error) {
	if err != nil {
		l.Error("remove matched failed",
			"clauses", clauses,
			"error", err,
		)
	} else {
		l.Debug("remove matched completed",
			"clauses", clauses,
			"removed", removed,
		)
	}
}

// LogFind logs a query.
func (l *Logger) LogFind(clauses, matched int, err error) {
	if err != nil {
		l.Error("find failed",
			"clauses", clauses,
			"error", err,
		)
	} else {
		l.Debug("find completed",
			"clauses", clauses,
			"matched", matched,
		)
	}
}

// LogImport logs a snapshot import.
func (l *Logger) LogImport(documents, indexes int, err error) {
	if err != nil {
		l.Error("import failed",
			"error", err,
		)
	} else {
		l.Info("import completed",
			"documents", documents,
			"indexes", indexes,
		)
	}
}
