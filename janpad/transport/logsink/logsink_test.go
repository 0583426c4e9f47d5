package logsink

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-janpad/janpad/keymap"
)

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := New(WithLogger(logger), WithLevel(slog.LevelDebug))

	require.NoError(t, s.Press(keymap.LeftShift))
	require.NoError(t, s.Press(keymap.Char('z')))
	require.NoError(t, s.ReleaseAll())

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, `msg="key down" key=left-shift`)
	assert.Contains(t, out, `msg="key down" key=z`)
	assert.Contains(t, out, `msg="keys up" keys=left-shift+z`)
	assert.Empty(t, s.held)
}

func TestLogSink_Defaults(t *testing.T) {
	s := New()
	assert.Equal(t, slog.Default(), s.logger)
	assert.Equal(t, slog.LevelInfo, s.level)
}
