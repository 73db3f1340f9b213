package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLoggerDefaultConfig(t *testing.T) {
	l := NewLogger(nil)
	require.NotNil(t, l)
}

func TestLoggerLevelGating(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&Config{Level: LevelWarn, Output: &buf})

	l.Debug("should not appear")
	l.Info("should not appear either")
	require.Empty(t, buf.String())

	l.Warn("a warning", "k", "v")
	require.Contains(t, buf.String(), "[WARN] a warning k=v")
}

func TestLoggerTrace(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&Config{Level: LevelInfo, Output: &buf})

	l.Trace("FAULT 3 ZERO")
	require.Equal(t, "FAULT 3 ZERO\n", buf.String())

	buf.Reset()
	silent := NewLogger(&Config{Level: LevelSilent, Output: &buf})
	silent.Trace("should be suppressed")
	require.Empty(t, buf.String())
}

func TestDefaultLoggerRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(NewLogger(&Config{Level: LevelDebug, Output: &buf}))

	Info("hello", "n", 1)
	require.Contains(t, buf.String(), "hello n=1")
}
