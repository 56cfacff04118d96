// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Output format, minimum level, and time formatting are applied at
// logger creation time using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON))
//	logger.Info("store loaded", slog.Int("count", n))
//
// The zero value of [Logger] is valid and discards every record, which
// lets callers silence an optional logging channel without nil checks.
//
// Attributes can be attached to all subsequent records with
// [Logger.With]:
//
//	logger = logger.With(slog.String("component", "envvars"))
//
// Five levels are supported: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn], and [LevelError]. Records below the configured level are
// discarded.
package log
