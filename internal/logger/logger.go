package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type contextKey string

// SessionIDKey carries the session id through context into log entries.
const SessionIDKey contextKey = "session_id"

type implLogger struct {
	zl zerolog.Logger
}

// New creates a console Logger on stdout at the given level.
func New(level string) Logger {
	return NewWithWriter(level, "text", os.Stdout)
}

// NewWithWriter creates a Logger writing to w. Format "json" emits one JSON
// object per line, anything else is human readable.
func NewWithWriter(level, format string, w io.Writer) Logger {
	var out io.Writer = w
	if strings.ToLower(format) != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	zl := zerolog.New(out).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()

	return &implLogger{zl: zl}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return &implLogger{zl: zerolog.Nop()}
}

// WithSessionID stores the session id in ctx for later log entries.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, SessionIDKey, id)
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel // default to info
	}
}

func (l *implLogger) shouldLog(level zerolog.Level) bool {
	return level >= l.zl.GetLevel()
}

func (l *implLogger) log(ctx context.Context, ev *zerolog.Event, msg string, args []interface{}) {
	if ctx != nil {
		if id, ok := ctx.Value(SessionIDKey).(string); ok && id != "" {
			ev = ev.Str("session_id", id)
		}
	}
	ev.Msgf(msg, args...)
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.log(ctx, l.zl.Debug(), msg, args)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.log(ctx, l.zl.Info(), msg, args)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.log(ctx, l.zl.Warn(), msg, args)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.log(ctx, l.zl.Error(), msg, args)
}

func (l *implLogger) With(key string, value interface{}) Logger {
	return &implLogger{zl: l.zl.With().Interface(key, value).Logger()}
}

// Helper to format error messages
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%v", err)
}
