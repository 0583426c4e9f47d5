// Package periph drives the controller lines through periph.io, which works on
// any Linux board with a sysfs or memory mapped GPIO driver.
package periph

import (
	"fmt"
	"log/slog"

	"github.com/valerio/go-janpad/janpad/gpio"
	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Port implements gpio.Port on top of periph.io pins.
type Port struct {
	pins map[gpio.Line]pgpio.PinIO
}

// Open initialises the periph host drivers, resolves every line by name and
// configures its direction. Select lines start HIGH, latch and clock LOW, and
// the data line is an input with a pull-up so an unplugged controller reads
// as "nothing pressed".
func Open(pins gpio.Pins) (*Port, error) {
	// host.Init can safely be called multiple times.
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph: host init: %w", err)
	}
	return newPort(pins, func(name string) pgpio.PinIO { return gpioreg.ByName(name) })
}

func newPort(pins gpio.Pins, lookup func(string) pgpio.PinIO) (*Port, error) {
	p := &Port{pins: make(map[gpio.Line]pgpio.PinIO, len(gpio.Lines))}
	for _, line := range gpio.Lines {
		name, ok := pins[line]
		if !ok {
			return nil, fmt.Errorf("%w: no pin configured for %s", gpio.ErrUnknownPin, line)
		}
		pin := lookup(name)
		if pin == nil {
			return nil, fmt.Errorf("%w: %q (%s)", gpio.ErrUnknownPin, name, line)
		}

		var err error
		if line.IsOutput() {
			err = pin.Out(toPeriph(initialLevel(line)))
		} else {
			err = pin.In(pgpio.PullUp, pgpio.NoEdge)
		}
		if err != nil {
			return nil, fmt.Errorf("periph: configure %s on %s: %w", line, name, err)
		}
		slog.Debug("Configured GPIO line", "line", line, "pin", pin.Name())
		p.pins[line] = pin
	}
	return p, nil
}

func initialLevel(line gpio.Line) gpio.Level {
	switch line {
	case gpio.SelectAH, gpio.SelectIN:
		return gpio.High
	default:
		return gpio.Low
	}
}

func (p *Port) SetOutput(line gpio.Line, level gpio.Level) error {
	if !line.IsOutput() {
		return fmt.Errorf("%w: %s is an input", gpio.ErrDirection, line)
	}
	return p.pins[line].Out(toPeriph(level))
}

func (p *Port) ReadInput(line gpio.Line) (gpio.Level, error) {
	if line.IsOutput() {
		return gpio.Low, fmt.Errorf("%w: %s is an output", gpio.ErrDirection, line)
	}
	return p.pins[line].Read() == pgpio.High, nil
}

// Halt drives the outputs back to their idle levels.
func (p *Port) Halt() error {
	for line, pin := range p.pins {
		if !line.IsOutput() {
			continue
		}
		if err := pin.Out(toPeriph(initialLevel(line))); err != nil {
			return fmt.Errorf("periph: halt %s: %w", line, err)
		}
	}
	return nil
}

func toPeriph(level gpio.Level) pgpio.Level {
	if level == gpio.High {
		return pgpio.High
	}
	return pgpio.Low
}
