// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package log provides a high level logger abstraction, scoped down to the
// handful of calls this module actually makes: flagging a mode change at
// debug level, and reporting a non-fatal close error.
package log

// LoggerLevel defines level markers for log entries.
type LoggerLevel int

const (
	// UnsetLevel should not be output by logger implementation.
	UnsetLevel = iota - 2
	// DebugLevel marks detailed output for design purposes.
	DebugLevel
	// InfoLevel is the default log output marker.
	InfoLevel
	// ErrorLevel marks an error output.
	ErrorLevel
)

// Factory defines a utility to create new loggers.
type Factory interface {
	// New creates a new logger.
	New() Logger
}

// Logger describes logger feature interface.
type Logger interface {
	Level(lvl LoggerLevel) Logger
	Error(err error) Logger
	Message(msg string)
	Messagef(format string, v ...any)
}

// noop implements Factory and Logger as a default no-op sink, so the
// abstraction works out of the box without a caller wiring in a real one.
type noop struct{}

var (
	_ Factory = (*noop)(nil)
	_ Logger  = (*noop)(nil)
)

func (n *noop) New() Logger                  { return n }
func (n *noop) Level(lvl LoggerLevel) Logger { return n }
func (n *noop) Error(err error) Logger       { return n }
func (n *noop) Message(_ string)             {}
func (n *noop) Messagef(_ string, _ ...any)  {}

var factory Factory = &noop{}

// SetFactory sets the static logger factory.
func SetFactory(f Factory) {
	factory = f
}

// New returns a new logger instance from the static factory.
func New() Logger {
	return factory.New()
}

// Level returns a new logger instance from the factory setting its log level to the value supplied.
func Level(lvl LoggerLevel) Logger {
	return factory.New().Level(lvl)
}

// Error returns a new logger instance from the factory setting the error as supplied.
func Error(err error) Logger {
	return factory.New().Error(err)
}
