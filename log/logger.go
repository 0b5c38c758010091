// Package log provides named, leveled loggers for the benchmark harness.
// It is a thin wrapper over go-logging so packages can hold a module
// logger without caring about backend setup.
package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

// Level controls logger verbosity.
type Level int

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var format = logging.MustStringFormatter(
	`%{color}%{time:15:04:05.000} %{module} %{level:.4s}%{color:reset} %{message}`,
)

var backend logging.LeveledBackend

// Logger is the subset of go-logging used by the harness.
type Logger interface {
	Debugf(format string, v ...interface{})
	Infof(format string, v ...interface{})
	Noticef(format string, v ...interface{})
	Warningf(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

// New returns a named module logger.
func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// SetSink redirects all logger output to the given writer.
func SetSink(sink io.Writer) {
	formatted := logging.NewBackendFormatter(logging.NewLogBackend(sink, "", 0), format)
	backend = logging.AddModuleLevel(formatted)
	backend.SetLevel(logging.NOTICE, "")
	logging.SetBackend(backend)
}

// SetLevel adjusts verbosity for all module loggers.
func SetLevel(level Level) {
	switch level {
	case Debug:
		backend.SetLevel(logging.DEBUG, "")
	case Info:
		backend.SetLevel(logging.INFO, "")
	case Notice:
		backend.SetLevel(logging.NOTICE, "")
	case Warning:
		backend.SetLevel(logging.WARNING, "")
	case Error:
		backend.SetLevel(logging.ERROR, "")
	}
}

func init() {
	SetSink(os.Stdout)
}
