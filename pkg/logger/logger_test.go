package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	l := newLogger()

	formatter, ok := l.Formatter.(*logrus.TextFormatter)
	require.True(t, ok)
	assert.Equal(t, time.RFC3339Nano, formatter.TimestampFormat)
	assert.True(t, formatter.FullTimestamp)
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
}

func TestGetLogger(t *testing.T) {
	t.Run("falls back to global logger", func(t *testing.T) {
		entry := G(context.Background())
		assert.Equal(t, L.Logger, entry.Logger)
	})

	t.Run("returns context logger", func(t *testing.T) {
		custom := logrus.NewEntry(logrus.New()).WithField("provider", "nextjs")
		ctx := WithLogger(context.Background(), custom)

		entry := G(ctx)
		assert.Equal(t, custom.Logger, entry.Logger)
		assert.Equal(t, "nextjs", entry.Data["provider"])
	})

	t.Run("nested contexts keep the innermost logger", func(t *testing.T) {
		outer := WithLogger(context.Background(), logrus.NewEntry(logrus.New()).WithField("level", "outer"))
		inner := WithLogger(outer, G(outer).WithField("level", "inner"))

		assert.Equal(t, "outer", G(outer).Data["level"])
		assert.Equal(t, "inner", G(inner).Data["level"])
	})
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	setFormat(l, FormatJSON)

	ctx := WithLogger(context.Background(), logrus.NewEntry(l))
	G(ctx).WithField("file", "AGENTS.md").Info("updated host file")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["logLevel"])
	assert.Equal(t, "updated host file", line["message"])
	assert.Equal(t, "AGENTS.md", line["file"])

	timestamp, ok := line["timestamp"].(string)
	require.True(t, ok)
	_, err := time.Parse(time.RFC3339Nano, timestamp)
	assert.NoError(t, err)
}

func TestConfigure(t *testing.T) {
	original := L.Logger.GetLevel()
	originalFormatter := L.Logger.Formatter
	t.Cleanup(func() {
		L.Logger.SetLevel(original)
		L.Logger.Formatter = originalFormatter
	})

	require.NoError(t, Configure("debug", FormatJSON))
	assert.Equal(t, logrus.DebugLevel, L.Logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, L.Logger.Formatter)

	require.NoError(t, Configure("warn", "unknown"))
	assert.Equal(t, logrus.WarnLevel, L.Logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, L.Logger.Formatter)

	err := Configure("loud", FormatText)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid log level "loud"`)
	assert.Equal(t, logrus.WarnLevel, L.Logger.GetLevel())
}

func TestSetLogOutput(t *testing.T) {
	var buf bytes.Buffer
	t.Cleanup(func() { SetLogOutput(os.Stderr) })
	SetLogOutput(&buf)

	L.Warn("redirected")
	assert.Contains(t, buf.String(), "redirected")
}
