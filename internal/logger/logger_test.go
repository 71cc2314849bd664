package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_FormatsAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewWithCore(core)

	l.Info("invested %d in %s", 25000, "Barbie")
	l.With(zap.String("session_id", "s-1")).Warn("checkout %s", "failed")

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, "invested 25000 in Barbie", entries[0].Message)
	require.Equal(t, zapcore.InfoLevel, entries[0].Level)
	require.Equal(t, "checkout failed", entries[1].Message)
	require.Equal(t, "s-1", entries[1].ContextMap()["session_id"])
}

func TestLogger_PackageLevelUsesDefault(t *testing.T) {
	prev := Default()
	defer SetDefault(prev)

	core, logs := observer.New(zapcore.InfoLevel)
	SetDefault(NewWithCore(core))

	Debug("hidden")
	Error("boom: %v", "disk full")

	require.Equal(t, 1, logs.Len())
	require.Equal(t, "boom: disk full", logs.All()[0].Message)
}

func TestNew_FileOutput(t *testing.T) {
	l, err := New(Config{Level: "warn", Output: "file", File: filepath.Join(t.TempDir(), "app.log")})
	require.NoError(t, err)
	l.Warn("written to %s", "file")
	l.Sync()

	_, err = New(Config{Output: "file"})
	require.Error(t, err)
}
