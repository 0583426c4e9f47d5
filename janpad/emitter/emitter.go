// Package emitter is the boundary between the controller core and the
// keyboard emulation transport.
package emitter

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/valerio/go-janpad/janpad/button"
	"github.com/valerio/go-janpad/janpad/keymap"
)

// ErrUnmapped is returned when a button has no key bound to it.
var ErrUnmapped = errors.New("emitter: button has no key")

// Transport delivers key codes to the host.
type Transport interface {
	Press(key keymap.KeyCode) error
	ReleaseAll() error
}

// Emitter translates buttons to keys and forwards them to a Transport.
type Emitter struct {
	transport Transport
	keys      keymap.Keymap
}

func New(transport Transport, keys keymap.Keymap) *Emitter {
	return &Emitter{transport: transport, keys: keys}
}

// Press sends the key bound to b.
func (e *Emitter) Press(b button.Button) error {
	key, ok := e.keys.Lookup(b)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnmapped, b)
	}
	slog.Debug("Key press", "button", b, "key", key)
	if err := e.transport.Press(key); err != nil {
		return fmt.Errorf("emitter: press %s (%s): %w", b, key, err)
	}
	return nil
}

// ReleaseAll releases every key held on the host.
func (e *Emitter) ReleaseAll() error {
	slog.Debug("Key release all")
	if err := e.transport.ReleaseAll(); err != nil {
		return fmt.Errorf("emitter: release all: %w", err)
	}
	return nil
}
