package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger writes JSON lines through zerolog while keeping the printf-style
// call sites used across the services.
type Logger struct {
	zl    zerolog.Logger
	debug func() *zerolog.Event
	info  func() *zerolog.Event
	warn  func() *zerolog.Event
	error func() *zerolog.Event
}

// New returns a logger writing to stdout at the level named by LOG_LEVEL.
func New() *Logger {
	return NewWithWriter(os.Stdout, os.Getenv("LOG_LEVEL"))
}

// NewWithWriter returns a logger writing to w. Unknown or empty levels fall back to info.
func NewWithWriter(w io.Writer, level string) *Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return wrap(zerolog.New(w).Level(lvl).With().Timestamp().Logger())
}

func wrap(zl zerolog.Logger) *Logger {
	l := &Logger{zl: zl}
	l.debug = l.zl.Debug
	l.info = l.zl.Info
	l.warn = l.zl.Warn
	l.error = l.zl.Error
	return l
}

// With returns a child logger that adds key=value to every line.
func (l *Logger) With(key string, value interface{}) *Logger {
	return wrap(l.zl.With().Interface(key, value).Logger())
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.debug().Msg(fmt.Sprintf(format, args...))
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.info().Msg(fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.warn().Msg(fmt.Sprintf(format, args...))
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.error().Msg(fmt.Sprintf(format, args...))
}

// Zerolog exposes the underlying logger for callers that build events field by field.
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zl
}
