package render

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogBuffer_Wraps(t *testing.T) {
	lb := NewLogBuffer(3)
	for _, msg := range []string{"one", "two", "three", "four"} {
		lb.Add(LogEntry{Message: msg})
	}

	recent := lb.Recent(0)
	require.Len(t, recent, 3)
	assert.Equal(t, "four", recent[0].Message)
	assert.Equal(t, "three", recent[1].Message)
	assert.Equal(t, "two", recent[2].Message)

	assert.Len(t, lb.Recent(2), 2)
	assert.Equal(t, 3, lb.Len())

	lb.Clear()
	assert.Empty(t, lb.Recent(0))
}

func TestHandler(t *testing.T) {
	lb := NewLogBuffer(10)
	logger := slog.New(NewHandler(lb, slog.LevelInfo))

	logger.Debug("hidden")
	logger.Info("cycle", "n", 3)
	logger.With("backend", "terminal").WithGroup("row").Warn("bits", "ah", "0xff")

	recent := lb.Recent(0)
	require.Len(t, recent, 2)
	assert.Equal(t, "bits backend=terminal row.ah=0xff", recent[0].Message)
	assert.Equal(t, slog.LevelWarn, recent[0].Level)
	assert.Equal(t, "cycle n=3", recent[1].Message)
}

func TestFormatEntry(t *testing.T) {
	ts := time.Date(2024, 1, 1, 12, 30, 45, 0, time.UTC)

	tests := []struct {
		level    slog.Level
		expected string
	}{
		{slog.LevelDebug, "12:30:45 [DBG] hello"},
		{slog.LevelInfo, "12:30:45 [INF] hello"},
		{slog.LevelWarn, "12:30:45 [WRN] hello"},
		{slog.LevelError, "12:30:45 [ERR] hello"},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatEntry(LogEntry{Time: ts, Level: tt.level, Message: "hello"}))
		})
	}
}
