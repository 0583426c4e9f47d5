package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/valerio/go-janpad/janpad"
	"github.com/valerio/go-janpad/janpad/emitter"
	"github.com/valerio/go-janpad/janpad/gpio"
	"github.com/valerio/go-janpad/janpad/timing"
)

// ErrUnknownBackend is returned by the CLI for an unsupported --backend value.
var ErrUnknownBackend = errors.New("unknown backend")

// Backend represents a complete runtime environment for the pad.
// Backends are responsible for:
// - Providing the GPIO port the controller is read through
// - Providing the transport key events are delivered to
// - Observing every polling cycle (rendering, logging, scripted input)
type Backend interface {
	// Init configures the backend with the provided configuration.
	// This is a required step before calling Port, Transport or Update.
	Init(config Config) error

	// Port returns the lines the controller is wired to.
	Port() gpio.Port

	// Transport returns where key events go.
	Transport() emitter.Transport

	// Update is called after every polling cycle. Returning false stops
	// polling.
	Update(status janpad.Status) (bool, error)

	// Cleanup resources when shutting down
	Cleanup() error
}

// Config holds configuration shared by all backends
type Config struct {
	Title     string
	ShowDebug bool // Backends may ignore unsupported features
}

// Run initialises b, polls the controller through it until the context is
// done or the backend asks to stop, then cleans up.
func Run(ctx context.Context, b Backend, config Config, limiter timing.Limiter, opts ...janpad.Option) (err error) {
	if err := b.Init(config); err != nil {
		return fmt.Errorf("failed to initialize backend: %w", err)
	}
	defer func() {
		if cerr := b.Cleanup(); cerr != nil {
			slog.Error("Backend cleanup failed", "error", cerr)
			err = errors.Join(err, cerr)
		}
	}()

	pad := janpad.New(b.Port(), b.Transport(), opts...)
	return pad.Run(ctx, limiter, b.Update)
}
