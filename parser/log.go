package parser

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger is the package logger used when no logger is passed in. Parse errors
// are logged at debug level, so it stays quiet by default.
var Logger = func() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return l
}()

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// levelEnabled reports whether logger would output at level. Loggers other
// than logrus' own types are assumed to output everything.
func levelEnabled(logger logrus.FieldLogger, level logrus.Level) bool {
	switch l := logger.(type) {
	case *logrus.Logger:
		return l.IsLevelEnabled(level)
	case *logrus.Entry:
		return l.Logger.IsLevelEnabled(level)
	}
	return true
}
