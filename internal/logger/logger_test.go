package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"WARNING": zapcore.WarnLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"panic":   zapcore.PanicLevel,
		"fatal":   zapcore.FatalLevel,
	}

	for name, want := range tests {
		l, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, l, name)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestApplyLogConfig(t *testing.T) {
	cfg := DefaultLoggerConfig(zapcore.InfoLevel)
	require.NoError(t, ApplyLogConfig(&cfg, "console"))
	assert.Equal(t, "console", cfg.Encoding)

	cfg = DefaultLoggerConfig(zapcore.DebugLevel)
	require.NoError(t, ApplyLogConfig(&cfg, "json"))
	assert.Equal(t, "json", cfg.Encoding)
	assert.Equal(t, zapcore.DebugLevel, cfg.Level.Level())
	assert.Equal(t, []string{"stderr"}, cfg.OutputPaths)

	cfg = DefaultLoggerConfig(zapcore.InfoLevel)
	require.NoError(t, ApplyLogConfig(&cfg, "minimal"))
	assert.Empty(t, cfg.EncoderConfig.TimeKey)
	assert.Equal(t, "message", cfg.EncoderConfig.MessageKey)

	_, err := cfg.Build()
	require.NoError(t, err)

	assert.Error(t, ApplyLogConfig(new(zap.Config), "xml"))
}

func TestAdditionalComponentCallerEncoder(t *testing.T) {
	caller := zapcore.NewEntryCaller(0, "/home/user/go/src/github.com/magnetde/starlark-grep/engine/engine.go", 42, true)

	enc := &stringArrayEncoder{}
	AdditionalComponentCallerEncoder(caller, enc)

	assert.Equal(t, []string{"starlark-grep/engine/engine.go:42"}, enc.values)
}

// stringArrayEncoder collects the strings appended by an encoder.
type stringArrayEncoder struct {
	zapcore.PrimitiveArrayEncoder
	values []string
}

func (e *stringArrayEncoder) AppendString(s string) {
	e.values = append(e.values, s)
}
