package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Logger provides a concurrency-safe simplified logging interface.
// The zero value is valid and discards every record.
type Logger struct {
	logger *slog.Logger
	level  Level
}

// Make creates a new [Logger] that writes to the specified writer.
// The default configuration is [DefaultFormat], [DefaultLevel], and
// [DefaultTimeLayout].
//
// Optional configuration can be applied using functional options like
// [WithFormat], [WithLevel], and [WithTimeLayout].
func Make(w io.Writer, opts ...Option) Logger {
	cfg := makeConfig(w, opts...)

	return Logger{
		logger: slog.New(cfg.handler()),
		level:  cfg.level,
	}
}

// Private singleton shared by every caller of [Default].
//
//nolint:gochecknoglobals
var (
	defaultOnce   sync.Once
	defaultLogger Logger
)

// Default returns the shared process-wide logger: text records on
// standard error, filtered to [LevelWarn] and above.
func Default() Logger {
	defaultOnce.Do(func() {
		defaultLogger = Make(os.Stderr, WithLevel(LevelWarn))
	})

	return defaultLogger
}

// With returns a new [Logger] that includes the given attributes in
// each log message.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.logger == nil {
		return l
	}

	return Logger{
		logger: slog.New(l.logger.Handler().WithAttrs(attrs)),
		level:  l.level,
	}
}

// Level returns the current minimum log level.
func (l Logger) Level() Level {
	if l.logger == nil {
		return DefaultLevel
	}

	return l.level
}

// Trace logs a message at Trace level.
func (l Logger) Trace(msg string, attrs ...slog.Attr) {
	l.log(LevelTrace, msg, attrs...)
}

// Debug logs a message at Debug level.
func (l Logger) Debug(msg string, attrs ...slog.Attr) {
	l.log(LevelDebug, msg, attrs...)
}

// Info logs a message at Info level.
func (l Logger) Info(msg string, attrs ...slog.Attr) {
	l.log(LevelInfo, msg, attrs...)
}

// Warn logs a message at Warn level.
func (l Logger) Warn(msg string, attrs ...slog.Attr) {
	l.log(LevelWarn, msg, attrs...)
}

// Error logs a message at Error level.
func (l Logger) Error(msg string, attrs ...slog.Attr) {
	l.log(LevelError, msg, attrs...)
}

// log writes a log message at the specified level.
func (l Logger) log(level Level, msg string, attrs ...slog.Attr) {
	// Silently return for zero value loggers
	if l.logger == nil {
		return
	}

	ctx := context.Background()
	if !l.logger.Enabled(ctx, slog.Level(level)) {
		return
	}

	l.logger.LogAttrs(ctx, slog.Level(level), msg, attrs...)
}
