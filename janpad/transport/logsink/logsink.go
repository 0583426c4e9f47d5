package logsink

import (
	"context"
	"log/slog"
	"strings"

	"github.com/valerio/go-janpad/janpad/keymap"
)

// LogSink is a dummy keyboard that just logs the keys it would have sent.
// Handy for bringing up the wiring before the USB gadget is configured.
type LogSink struct {
	logger *slog.Logger
	level  slog.Level

	// keys pressed since the last release, for the summary line
	held []keymap.KeyCode
}

type Option func(*LogSink)

// WithLogger sends output to logger instead of slog.Default().
func WithLogger(logger *slog.Logger) Option { return func(s *LogSink) { s.logger = logger } }

// WithLevel logs key events at level instead of Info.
func WithLevel(level slog.Level) Option { return func(s *LogSink) { s.level = level } }

func New(opts ...Option) *LogSink {
	s := &LogSink{
		logger: slog.Default(),
		level:  slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *LogSink) Press(key keymap.KeyCode) error {
	s.held = append(s.held, key)
	s.logger.Log(context.Background(), s.level, "key down", "key", key.String())
	return nil
}

func (s *LogSink) ReleaseAll() error {
	names := make([]string, len(s.held))
	for i, k := range s.held {
		names[i] = k.String()
	}
	s.logger.Log(context.Background(), s.level, "keys up", "keys", strings.Join(names, "+"))
	s.held = s.held[:0]
	return nil
}
