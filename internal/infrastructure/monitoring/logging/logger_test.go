package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(level zapcore.Level) (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return NewLoggerFromCore(core), logs
}

func TestLoggerLevels(t *testing.T) {
	log, logs := newObserved(zapcore.DebugLevel)

	log.Debug("d")
	log.Info("i")
	log.Warn("w")
	log.Error("e")

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}

func TestLoggerFields(t *testing.T) {
	log, logs := newObserved(zapcore.InfoLevel)

	log.Info("rebuild complete",
		String("track", "abc"),
		Int("edges", 12),
		Float64("radius", 25.0),
		Bool("scaled", true),
		Duration("took", time.Second),
		Err(errors.New("boom")),
	)

	entries := logs.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "abc", ctx["track"])
	assert.Equal(t, int64(12), ctx["edges"])
	assert.Equal(t, 25.0, ctx["radius"])
	assert.Equal(t, true, ctx["scaled"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestErrNil(t *testing.T) {
	f := Err(nil)
	assert.Equal(t, "error", f.Key)
	assert.Equal(t, "<nil>", f.Value)
}

func TestWithAndNamed(t *testing.T) {
	log, logs := newObserved(zapcore.InfoLevel)

	child := log.With(String("component", "space")).Named("atlas")
	child.Info("hello")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "space", entries[0].ContextMap()["component"])
	assert.Equal(t, "atlas", entries[0].LoggerName)
}

func TestNewLoggerDefaults(t *testing.T) {
	log, err := NewLogger(LogConfig{})
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestNopLogger(t *testing.T) {
	log := NewNopLogger()
	// Must not panic and must swallow everything.
	log.Debug("x")
	log.Info("x")
	log.Warn("x")
	log.Error("x")
	assert.Equal(t, log, log.With(String("a", "b")))
	assert.Equal(t, log, log.Named("n"))
}

func TestDefaultLogger(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	log, logs := newObserved(zapcore.InfoLevel)
	SetDefault(log)
	Default().Info("via default")
	require.Len(t, logs.All(), 1)

	// nil is ignored
	SetDefault(nil)
	assert.Equal(t, log, Default())
}
