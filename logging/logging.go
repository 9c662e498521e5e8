// Package logging is the logger used by schedulers and operators.
//
// Logger has the same method set as *slog.Logger, so any slog logger can be
// plugged in with SetDefault. The default is backed by logrus and configured
// from the environment:
//
//	RX_LOG_LEVEL   DEBUG | INFO | WARN | ERROR   (default INFO)
//	RX_LOG_FORMAT  text | json                  (default text)
package logging

import (
	"os"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Logger receives key/value pairs after the message, slog style.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var current atomic.Pointer[holder]

type holder struct{ Logger }

func init() {
	SetDefault(NewLogrus(configured()))
}

// Default returns the process-wide logger.
func Default() Logger {
	return current.Load().Logger
}

// SetDefault replaces the process-wide logger. A nil logger discards everything.
func SetDefault(l Logger) {
	if l == nil {
		l = Discard
	}
	current.Store(&holder{l})
}

// Discard drops all messages.
var Discard Logger = discard{}

type discard struct{}

func (discard) Debug(string, ...any) {}
func (discard) Info(string, ...any)  {}
func (discard) Warn(string, ...any)  {}
func (discard) Error(string, ...any) {}

func configured() *logrus.Logger {
	l := logrus.New()

	switch strings.ToUpper(os.Getenv("RX_LOG_LEVEL")) {
	case "DEBUG":
		l.SetLevel(logrus.DebugLevel)
	case "WARN":
		l.SetLevel(logrus.WarnLevel)
	case "ERROR":
		l.SetLevel(logrus.ErrorLevel)
	default:
		l.SetLevel(logrus.InfoLevel)
	}

	switch os.Getenv("RX_LOG_FORMAT") {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	default:
		l.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FullTimestamp:   true,
		})
	}

	return l
}
