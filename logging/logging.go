// Package logging is the structured event sink used across pubmux.
// It wraps hclog and adds key/value pair validation: a call whose
// arguments do not come in pairs is never dropped silently and never
// panics, it is reported at error level together with the raw arguments.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// Level is a logging verbosity level.
type Level = hclog.Level

const (
	Trace = hclog.Trace
	Debug = hclog.Debug
	Info  = hclog.Info
	Warn  = hclog.Warn
	Error = hclog.Error
)

// Logger emits leveled messages with structured fields.
//
// The variadic methods take alternating keys and values:
//
//	logger.Info("publisher connected", "exchange", "orders", "index", 2)
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// Log emits msg with typed fields, which cannot be malformed.
	Log(level Level, msg string, fields ...Field)

	// Named returns a sub-logger whose name is extended with name.
	Named(name string) Logger

	Name() string
}

// Options configures New.
type Options struct {
	Name string
	// Level is one of trace, debug, info, warn, error. Defaults to info.
	Level  string
	Output io.Writer
	JSON   bool
}

// New returns an hclog-backed Logger.
func New(o Options) Logger {
	if o.Output == nil {
		o.Output = os.Stderr
	}
	return Wrap(hclog.New(&hclog.LoggerOptions{
		Name:       o.Name,
		Level:      ParseLevel(o.Level),
		Output:     o.Output,
		JSONFormat: o.JSON,
	}))
}

// Wrap adapts an existing hclog.Logger.
func Wrap(hl hclog.Logger) Logger {
	if hl == nil {
		hl = hclog.NewNullLogger()
	}
	return &logger{hl: hl}
}

// Default returns an info-level logger writing to stderr.
func Default() Logger {
	return New(Options{Name: "pubmux"})
}

// Discard returns a Logger that drops everything.
func Discard() Logger {
	return Wrap(hclog.NewNullLogger())
}

// ParseLevel maps a level name to a Level, falling back to Info.
func ParseLevel(s string) Level {
	lvl := hclog.LevelFromString(s)
	if lvl == hclog.NoLevel {
		return hclog.Info
	}
	return lvl
}

type logger struct {
	hl hclog.Logger
}

func (l *logger) Trace(msg string, args ...any) { l.logPairs(Trace, msg, args) }
func (l *logger) Debug(msg string, args ...any) { l.logPairs(Debug, msg, args) }
func (l *logger) Info(msg string, args ...any)  { l.logPairs(Info, msg, args) }
func (l *logger) Warn(msg string, args ...any)  { l.logPairs(Warn, msg, args) }
func (l *logger) Error(msg string, args ...any) { l.logPairs(Error, msg, args) }

func (l *logger) Log(level Level, msg string, fields ...Field) {
	if !l.enabled(level) {
		return
	}
	l.hl.Log(level, msg, flatten(fields)...)
}

func (l *logger) Named(name string) Logger {
	return &logger{hl: l.hl.Named(name)}
}

func (l *logger) Name() string {
	return l.hl.Name()
}

func (l *logger) logPairs(level Level, msg string, args []any) {
	if !l.enabled(level) {
		return
	}
	fields, err := Pairs(args...)
	if err != nil {
		l.assemblyFailure(msg, args)
		return
	}
	l.hl.Log(level, msg, flatten(fields)...)
}

// assemblyFailure records a call whose arguments could not be paired.
func (l *logger) assemblyFailure(msg string, args []any) {
	l.hl.Error("failed to assemble log message: arguments must be declared in pairs",
		"logger", l.hl.Name(),
		"message", msg,
		"arguments", fmt.Sprint(args),
	)
}

func (l *logger) enabled(level Level) bool {
	switch level {
	case Trace:
		return l.hl.IsTrace()
	case Debug:
		return l.hl.IsDebug()
	case Info:
		return l.hl.IsInfo()
	case Warn:
		return l.hl.IsWarn()
	default:
		return l.hl.IsError()
	}
}
