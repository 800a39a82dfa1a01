package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestLoggerSplitsStreamsByLevel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := newLogger(zap.NewAtomicLevelAt(zapcore.InfoLevel), zapcore.AddSync(&stdout), zapcore.AddSync(&stderr))

	logger.Debug("hidden")
	logger.Info("to stdout", zap.String("k", "v"))
	logger.Warn("to stderr")
	require.NoError(t, logger.Sync())

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(stdout.Bytes()), &line))
	assert.Equal(t, "to stdout", line["message"])
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "v", line["k"])

	assert.Contains(t, stderr.String(), `"message":"to stderr"`)
	assert.NotContains(t, stdout.String(), "hidden")
	assert.NotContains(t, stdout.String(), "to stderr")
}
