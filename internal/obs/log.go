// Package obs provides the small logging surface the command-line front
// end writes through. It is a Logger value wrapping a *logrus.Logger, not
// a package singleton: callers obtain one with New and pass it explicitly.
package obs

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger wraps a *logrus.Logger with four levels: Debug, Info, Warn and
// Error.
type Logger struct {
	l *logrus.Logger
}

// New returns a Logger writing structured (text) output to stderr at Info
// level by default.
func New() Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	return Logger{l: l}
}

// SetDebug raises the logger to Debug level, used by --verbose.
func (g Logger) SetDebug() { g.l.SetLevel(logrus.DebugLevel) }

func (g Logger) Debug(msg string, fields logrus.Fields) { g.l.WithFields(fields).Debug(msg) }
func (g Logger) Info(msg string, fields logrus.Fields)  { g.l.WithFields(fields).Info(msg) }
func (g Logger) Warn(msg string, fields logrus.Fields)  { g.l.WithFields(fields).Warn(msg) }
func (g Logger) Error(msg string, fields logrus.Fields) { g.l.WithFields(fields).Error(msg) }

// Noop returns a Logger discarding all output, for tests that don't care
// to assert on log lines.
func Noop() Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return Logger{l: l}
}
