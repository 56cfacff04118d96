package log

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// Level identifies the minimum severity of records a [Logger] emits.
type Level int

// Supported log levels in increasing severity. LevelTrace sits below
// [slog.LevelDebug] so that standard handlers discard it by default.
const (
	LevelTrace = Level(slog.LevelDebug) - 4
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

// String returns the lowercase name of the level.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return slog.Level(l).String()
	}
}

// ParseLevel returns the Level named by s, case-insensitively.
// Unrecognized names return [DefaultLevel].
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return DefaultLevel
	}
}

// Format selects the encoding of emitted records.
type Format int

// Supported output formats.
const (
	FormatText Format = iota
	FormatJSON
)

// String returns the lowercase name of the format.
func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}

	return "text"
}

// ParseFormat returns the Format named by s, case-insensitively.
// Unrecognized names return [DefaultFormat].
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), "json") {
		return FormatJSON
	}

	return DefaultFormat
}

// Default configuration applied by [Make] before options.
const (
	DefaultLevel      = LevelInfo
	DefaultFormat     = FormatText
	DefaultTimeLayout = time.RFC3339
)

// config holds the complete configuration of a [Logger].
type config struct {
	w          io.Writer
	level      Level
	format     Format
	timeLayout string
}

// makeConfig returns the default configuration for w with opts applied.
func makeConfig(w io.Writer, opts ...Option) config {
	return apply(config{
		w:          w,
		level:      DefaultLevel,
		format:     DefaultFormat,
		timeLayout: DefaultTimeLayout,
	}, opts...)
}

// WithLevel sets the minimum level of emitted records.
func WithLevel(level Level) Option {
	return func(cfg config) config {
		cfg.level = level

		return cfg
	}
}

// WithFormat sets the encoding of emitted records.
func WithFormat(format Format) Option {
	return func(cfg config) config {
		cfg.format = format

		return cfg
	}
}

// WithTimeLayout sets the layout used to render record timestamps.
// An empty layout suppresses the timestamp entirely.
func WithTimeLayout(layout string) Option {
	return func(cfg config) config {
		cfg.timeLayout = layout

		return cfg
	}
}

// handler constructs the slog handler described by the configuration.
func (c config) handler() slog.Handler {
	opts := &slog.HandlerOptions{
		Level:       slog.Level(c.level),
		ReplaceAttr: c.replaceAttr,
	}

	if c.format == FormatJSON {
		return slog.NewJSONHandler(c.w, opts)
	}

	return slog.NewTextHandler(c.w, opts)
}

// replaceAttr names the trace level and applies the configured time
// layout, since neither is known to the standard slog handlers.
func (c config) replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}

	switch a.Key {
	case slog.LevelKey:
		if level, ok := a.Value.Any().(slog.Level); ok &&
			level == slog.Level(LevelTrace) {
			a.Value = slog.StringValue("TRACE")
		}

	case slog.TimeKey:
		if c.timeLayout == "" {
			return slog.Attr{}
		}

		if t, ok := a.Value.Any().(time.Time); ok {
			a.Value = slog.StringValue(t.Format(c.timeLayout))
		}
	}

	return a
}
