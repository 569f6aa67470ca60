package logger

import (
	"io"
	"log"
	"os"
)

type LogLevel int

const (
	LevelInfo LogLevel = iota
	LevelDebug
	LevelTrace
)

type Logger struct {
	*log.Logger
	level LogLevel
}

type Option func(*Logger)

func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.Logger = log.New(w, l.Logger.Prefix(), l.Logger.Flags())
	}
}

func WithPrefix(prefix string) Option {
	return func(l *Logger) {
		l.Logger = log.New(l.Logger.Writer(), prefix, l.Logger.Flags())
	}
}

func WithFlags(flags int) Option {
	return func(l *Logger) {
		l.Logger = log.New(l.Logger.Writer(), l.Logger.Prefix(), flags)
	}
}

func WithLevel(level LogLevel) Option {
	return func(l *Logger) {
		l.level = level
	}
}

func New(options ...Option) *Logger {
	l := &Logger{
		Logger: log.New(os.Stdout, "", log.LstdFlags),
		level:  LevelInfo,
	}

	for _, opt := range options {
		opt(l)
	}

	return l
}

func (l *Logger) SetLevel(level LogLevel) {
	l.level = level
}

// SetVerbose is shorthand for raising the level to Debug.
func (l *Logger) SetVerbose(verbose bool) {
	if verbose && l.level < LevelDebug {
		l.level = LevelDebug
	}
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.Printf("INFO: "+format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.Printf("WARN: "+format, args...)
}

func (l *Logger) Debug(format string, args ...interface{}) {
	if l.level >= LevelDebug {
		l.Printf("DEBUG: "+format, args...)
	}
}

func (l *Logger) Trace(format string, args ...interface{}) {
	if l.level >= LevelTrace {
		l.Printf("TRACE: "+format, args...)
	}
}

func (l *Logger) Fatal(format string, args ...interface{}) {
	l.Fatalf("FATAL: "+format, args...)
}
