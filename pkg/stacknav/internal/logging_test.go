package internal

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for raw, want := range cases {
		got, ok := ParseLevel(raw)
		require.True(t, ok, raw)
		require.Equal(t, want, got, raw)
	}

	got, ok := ParseLevel("loud")
	require.False(t, ok)
	require.Equal(t, slog.LevelInfo, got)
}

func TestLoggersAreSingletons(t *testing.T) {
	require.Same(t, GetLogger(), GetLogger())
	require.Same(t, GetTraceLogger(), GetTraceLogger())

	SetTraceLevel(slog.LevelDebug)
	require.True(t, GetTraceLogger().Enabled(t.Context(), slog.LevelDebug))
	SetTraceLevel(slog.LevelError)
	require.False(t, GetTraceLogger().Enabled(t.Context(), slog.LevelDebug))
}
