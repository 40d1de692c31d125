// Package logger provides context-scoped logrus loggers. Diagnostics go to
// stderr so command output on stdout stays machine readable.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// FormatText renders human readable log lines
	FormatText = "fmt"
	// FormatJSON renders one JSON object per log line
	FormatJSON = "json"
)

var (
	// G returns the logger attached to a context
	G = GetLogger
	// L is the process-wide logger used when the context carries none
	L = logrus.NewEntry(newLogger())
)

type loggerKey struct{}

// WithLogger returns a context carrying logger
func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger.WithContext(ctx))
}

// GetLogger returns the logger stored in ctx, or L bound to ctx
func GetLogger(ctx context.Context) *logrus.Entry {
	if logger, ok := ctx.Value(loggerKey{}).(*logrus.Entry); ok {
		return logger
	}
	return L.WithContext(ctx)
}

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	setFormat(l, FormatText)
	return l
}

func setFormat(l *logrus.Logger, format string) {
	if format == FormatJSON {
		l.Formatter = &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "logLevel",
				logrus.FieldKeyMsg:   "message",
			},
			TimestampFormat: time.RFC3339Nano,
		}
		return
	}
	l.Formatter = &logrus.TextFormatter{
		TimestampFormat: time.RFC3339Nano,
		FullTimestamp:   true,
	}
}

// SetLogLevel sets the level of the global logger
func SetLogLevel(level string) error {
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", level)
	}
	L.Logger.SetLevel(logLevel)
	return nil
}

// SetLogFormat sets the format of the global logger. Unknown formats fall
// back to FormatText.
func SetLogFormat(format string) {
	setFormat(L.Logger, format)
}

// SetLogOutput redirects the global logger
func SetLogOutput(w io.Writer) {
	L.Logger.SetOutput(w)
}

// Configure applies level and format to the global logger
func Configure(level, format string) error {
	if err := SetLogLevel(level); err != nil {
		return err
	}
	SetLogFormat(format)
	return nil
}
