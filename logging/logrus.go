package logging

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// NewLogrus adapts a logrus logger to Logger.
// Odd trailing args are logged under the "!BADKEY" field, like slog does.
func NewLogrus(l *logrus.Logger) Logger {
	return &logrusLogger{l}
}

type logrusLogger struct {
	*logrus.Logger
}

func (l *logrusLogger) Debug(msg string, args ...any) {
	if l.IsLevelEnabled(logrus.DebugLevel) {
		l.WithFields(fields(args)).Debug(msg)
	}
}

func (l *logrusLogger) Info(msg string, args ...any) {
	l.WithFields(fields(args)).Info(msg)
}

func (l *logrusLogger) Warn(msg string, args ...any) {
	l.WithFields(fields(args)).Warn(msg)
}

func (l *logrusLogger) Error(msg string, args ...any) {
	l.WithFields(fields(args)).Error(msg)
}

func fields(args []any) logrus.Fields {
	f := make(logrus.Fields, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		if i+1 == len(args) {
			f["!BADKEY"] = args[i]
			break
		}
		f[fmt.Sprint(args[i])] = args[i+1]
	}
	return f
}
