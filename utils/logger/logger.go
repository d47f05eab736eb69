package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the logging contract used across the application
type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
}

type logrusLogger struct {
	l *logrus.Logger
}

// NewLogger builds a logrus-backed logger for the given level and format
// ("json" or "text").
func NewLogger(level, format string) Logger {
	l := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	l.SetOutput(os.Stdout)
	return &logrusLogger{l: l}
}

// NewSilentLogger discards all output; used by tests.
func NewSilentLogger() Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &logrusLogger{l: l}
}

func (g *logrusLogger) Debug(args ...interface{})                 { g.l.Debug(args...) }
func (g *logrusLogger) Debugf(format string, args ...interface{}) { g.l.Debugf(format, args...) }
func (g *logrusLogger) Info(args ...interface{})                  { g.l.Info(args...) }
func (g *logrusLogger) Infof(format string, args ...interface{})  { g.l.Infof(format, args...) }
func (g *logrusLogger) Warn(args ...interface{})                  { g.l.Warn(args...) }
func (g *logrusLogger) Warnf(format string, args ...interface{})  { g.l.Warnf(format, args...) }
func (g *logrusLogger) Error(args ...interface{})                 { g.l.Error(args...) }
func (g *logrusLogger) Errorf(format string, args ...interface{}) { g.l.Errorf(format, args...) }
func (g *logrusLogger) Fatal(args ...interface{})                 { g.l.Fatal(args...) }
func (g *logrusLogger) Fatalf(format string, args ...interface{}) { g.l.Fatalf(format, args...) }
