// Package janpad polls a three row mahjong controller and turns its buttons
// into keyboard events.
package janpad

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/valerio/go-janpad/janpad/button"
	"github.com/valerio/go-janpad/janpad/emitter"
	"github.com/valerio/go-janpad/janpad/gpio"
	"github.com/valerio/go-janpad/janpad/input"
	"github.com/valerio/go-janpad/janpad/keymap"
	"github.com/valerio/go-janpad/janpad/shiftreg"
	"github.com/valerio/go-janpad/janpad/timing"
)

// ErrTransport marks cycle errors that came from delivering keys rather than
// from reading the controller. The polling loop logs them and keeps going.
var ErrTransport = errors.New("janpad: transport")

// Status describes one completed polling cycle.
type Status struct {
	Cycle      uint64
	Rows       [len(button.Rows)]button.Bits
	Snapshot   button.Set // buttons read as pressed this cycle
	Active     button.Set // buttons pressed on the host after this cycle
	Transition input.Transition
}

// Observer is called after every cycle. Returning false stops the loop.
type Observer func(Status) (bool, error)

// Pad owns the acquisition pipeline and the press state.
type Pad struct {
	reader  *shiftreg.Reader
	machine *input.Machine
	emitter *emitter.Emitter

	bounceGuard time.Duration
	sleeper     timing.Sleeper
	pulseWidth  time.Duration
	keys        keymap.Keymap

	cycles uint64
}

type Option func(*Pad)

// WithBounceGuard sets the pause after each cycle that reads a held button.
func WithBounceGuard(d time.Duration) Option { return func(p *Pad) { p.bounceGuard = d } }

// WithSleeper replaces the wall clock used for the bounce guard.
func WithSleeper(s timing.Sleeper) Option { return func(p *Pad) { p.sleeper = s } }

// WithPulseWidth sets the latch and clock pulse width of the shift register.
func WithPulseWidth(d time.Duration) Option { return func(p *Pad) { p.pulseWidth = d } }

// WithKeymap replaces the default button to key mapping.
func WithKeymap(keys keymap.Keymap) Option { return func(p *Pad) { p.keys = keys } }

// New wires a pad to a GPIO port and a keyboard transport.
func New(port gpio.Port, transport emitter.Transport, opts ...Option) *Pad {
	p := &Pad{
		machine:     input.NewMachine(),
		bounceGuard: timing.DefaultBounceGuard,
		sleeper:     timing.RealSleeper,
		pulseWidth:  shiftreg.DefaultPulseWidth,
		keys:        keymap.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.reader = shiftreg.New(port, shiftreg.WithPulseWidth(p.pulseWidth))
	p.emitter = emitter.New(transport, p.keys)
	return p
}

// Cycle reads the three rows in order, advances the press state and sends
// the resulting key events. While anything is held it then blocks for the
// bounce guard.
func (p *Pad) Cycle() (Status, error) {
	p.cycles++
	status := Status{Cycle: p.cycles}

	for i, row := range button.Rows {
		bits, err := p.reader.ReadRow(row)
		if err != nil {
			return status, err
		}
		status.Rows[i] = bits
		status.Snapshot = status.Snapshot.Union(button.Decode(row, bits))
	}

	tr := p.machine.Advance(status.Snapshot)
	status.Transition = tr
	status.Active = p.machine.Active()

	var errs []error
	for _, b := range tr.Pressed.Buttons() {
		if err := p.emitter.Press(b); err != nil {
			errs = append(errs, err)
		}
	}
	if tr.ReleaseAll() {
		slog.Debug("All buttons clear", "released", tr.Released.String())
		if err := p.emitter.ReleaseAll(); err != nil {
			errs = append(errs, err)
		}
	}

	if tr.Guard && p.bounceGuard > 0 {
		p.sleeper.Sleep(p.bounceGuard)
	}

	if len(errs) > 0 {
		return status, fmt.Errorf("%w: %w", ErrTransport, errors.Join(errs...))
	}
	return status, nil
}

// Run polls until ctx is done, observe returns false, or reading the
// controller fails. Keys still held on the host are released on the way out.
func (p *Pad) Run(ctx context.Context, limiter timing.Limiter, observe Observer) (err error) {
	defer func() {
		if cerr := p.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	slog.Info("Polling controller", "bounce_guard", p.bounceGuard, "pulse_width", p.pulseWidth)

	for {
		status, err := p.Cycle()
		if err != nil {
			if !errors.Is(err, ErrTransport) {
				slog.Error("Polling cycle failed", "cycle", status.Cycle, "error", err)
				return err
			}
			slog.Warn("Key delivery failed", "cycle", status.Cycle, "error", err)
		}

		if observe != nil {
			running, err := observe(status)
			if err != nil {
				return err
			}
			if !running {
				slog.Info("Polling stopped", "cycles", status.Cycle)
				return nil
			}
		}

		if err := limiter.WaitForNextPoll(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				slog.Info("Polling stopped", "cycles", status.Cycle, "reason", err)
				return nil
			}
			return err
		}
	}
}

// Close releases any keys still held on the host.
func (p *Pad) Close() error {
	if p.machine.Active().Empty() {
		return nil
	}
	p.machine.Reset()
	return p.emitter.ReleaseAll()
}

// Active returns the buttons currently pressed on the host.
func (p *Pad) Active() button.Set {
	return p.machine.Active()
}

// Cycles returns how many polling cycles have run.
func (p *Pad) Cycles() uint64 {
	return p.cycles
}
