package trace

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger is a thin, field-structured wrapper over log/slog for ordinary
// human-readable diagnostics about the compiler's own operation (file
// loads, cache hits, config resolution) — distinct from the Tracer/Span
// machinery above, which records structured pass/module timing events for
// machine consumption (text or NDJSON).
type Logger struct {
	sl *slog.Logger
}

// NewLogger returns a Logger writing leveled text to w. verbose raises the
// level to Debug; otherwise only Info and above are emitted.
func NewLogger(w io.Writer, verbose bool) *Logger {
	if w == nil {
		w = os.Stderr
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{sl: slog.New(h)}
}

// With returns a Logger that attaches the given key-value pairs to every
// subsequent record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{sl: l.sl.With(args...)}
}

func (l *Logger) Debug(msg string, args ...any) { l.sl.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.sl.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.sl.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.sl.Error(msg, args...) }

type loggerCtxKey struct{}

// WithLogger attaches l to ctx.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	if l == nil {
		l = NewLogger(os.Stderr, false)
	}
	return context.WithValue(ctx, loggerCtxKey{}, l)
}

// LoggerFromContext returns the Logger carried by ctx, or a default
// stderr/Info-level Logger if none was attached.
func LoggerFromContext(ctx context.Context) *Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerCtxKey{}).(*Logger); ok {
			return l
		}
	}
	return NewLogger(os.Stderr, false)
}
