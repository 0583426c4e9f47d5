package hardware

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/valerio/go-janpad/janpad"
	"github.com/valerio/go-janpad/janpad/backend"
	"github.com/valerio/go-janpad/janpad/emitter"
	"github.com/valerio/go-janpad/janpad/gpio"
	"github.com/valerio/go-janpad/janpad/gpio/periph"
	"github.com/valerio/go-janpad/janpad/gpio/rpio"
	"github.com/valerio/go-janpad/janpad/sim"
	"github.com/valerio/go-janpad/janpad/transport/hidg"
	"github.com/valerio/go-janpad/janpad/transport/logsink"
)

var (
	ErrUnknownDriver    = errors.New("unknown gpio driver")
	ErrUnknownTransport = errors.New("unknown transport")
)

// GPIO drivers
const (
	DriverPeriph = "periph"
	DriverRpio   = "rpio"
	DriverSim    = "sim" // virtual controller, for bench runs without wiring
)

// Transports
const (
	TransportHIDG = "hidg"
	TransportLog  = "log"
)

// Options selects the line driver and key transport.
type Options struct {
	Driver    string
	Pins      gpio.Pins
	Transport string
	Device    string // HID gadget path for TransportHIDG
	MaxCycles int    // 0 polls until stopped
}

// Backend reads a physical controller and sends keys to the host.
type Backend struct {
	opts Options

	port      gpio.Port
	transport emitter.Transport
	closers   []func() error

	cycleCount int
}

func New(opts Options) *Backend {
	if opts.Pins == nil {
		opts.Pins = gpio.DefaultPins()
	}
	if opts.Device == "" {
		opts.Device = hidg.DefaultDevice
	}
	return &Backend{opts: opts}
}

func (h *Backend) Init(config backend.Config) error {
	if err := h.openPort(); err != nil {
		return err
	}
	if err := h.openTransport(); err != nil {
		return errors.Join(err, h.Cleanup())
	}

	slog.Info("Hardware backend initialized",
		"driver", h.opts.Driver,
		"transport", h.opts.Transport,
		"pins", fmt.Sprint(h.opts.Pins))
	return nil
}

func (h *Backend) openPort() error {
	switch h.opts.Driver {
	case DriverPeriph:
		p, err := periph.Open(h.opts.Pins)
		if err != nil {
			return err
		}
		h.port = p
		h.closers = append(h.closers, p.Halt)
	case DriverRpio:
		p, err := rpio.Open(h.opts.Pins)
		if err != nil {
			return err
		}
		h.port = p
		h.closers = append(h.closers, p.Close)
	case DriverSim:
		h.port = sim.NewController()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, h.opts.Driver)
	}
	return nil
}

func (h *Backend) openTransport() error {
	switch h.opts.Transport {
	case TransportHIDG:
		kb, closer, err := hidg.Open(h.opts.Device)
		if err != nil {
			return err
		}
		h.transport = kb
		h.closers = append(h.closers, closer.Close)
	case TransportLog:
		h.transport = logsink.New(logsink.WithLevel(slog.LevelInfo))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTransport, h.opts.Transport)
	}
	return nil
}

func (h *Backend) Port() gpio.Port { return h.port }

func (h *Backend) Transport() emitter.Transport { return h.transport }

func (h *Backend) Update(status janpad.Status) (bool, error) {
	h.cycleCount++
	for _, ev := range status.Transition.Events() {
		slog.Debug("Key event", "cycle", status.Cycle, "event", ev.String())
	}
	if h.opts.MaxCycles > 0 && h.cycleCount >= h.opts.MaxCycles {
		slog.Info("Cycle limit reached", "cycles", h.cycleCount)
		return false, nil
	}
	return true, nil
}

// Cleanup releases the transport and GPIO lines, last opened first.
func (h *Backend) Cleanup() error {
	var errs []error
	for i := len(h.closers) - 1; i >= 0; i-- {
		if err := h.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	h.closers = nil
	return errors.Join(errs...)
}
