// Package rpio drives the controller lines through go-rpio, which maps
// /dev/gpiomem directly on Raspberry Pi boards. It is faster than the sysfs
// path, which matters when bit-banging the shift register.
package rpio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stianeikeland/go-rpio/v4"
	"github.com/valerio/go-janpad/janpad/gpio"
)

// Port implements gpio.Port with go-rpio pins.
type Port struct {
	pins map[gpio.Line]rpio.Pin
}

// Open maps the GPIO memory and configures every line. Call Close when done.
func Open(pins gpio.Pins) (*Port, error) {
	numbers, err := ParsePins(pins)
	if err != nil {
		return nil, err
	}
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("rpio: open: %w", err)
	}

	p := &Port{pins: make(map[gpio.Line]rpio.Pin, len(numbers))}
	for line, n := range numbers {
		pin := rpio.Pin(n)
		if line.IsOutput() {
			pin.Output()
			pin.Write(toState(idleLevel(line)))
		} else {
			pin.Input()
			pin.PullUp()
		}
		p.pins[line] = pin
	}
	return p, nil
}

// ParsePins converts pin names to BCM numbers. Both "17" and "GPIO17" are
// accepted.
func ParsePins(pins gpio.Pins) (map[gpio.Line]uint8, error) {
	out := make(map[gpio.Line]uint8, len(gpio.Lines))
	for _, line := range gpio.Lines {
		name, ok := pins[line]
		if !ok {
			return nil, fmt.Errorf("%w: no pin configured for %s", gpio.ErrUnknownPin, line)
		}
		n, err := strconv.ParseUint(strings.TrimPrefix(strings.ToUpper(name), "GPIO"), 10, 8)
		if err != nil || n > 53 {
			return nil, fmt.Errorf("%w: %q (%s)", gpio.ErrUnknownPin, name, line)
		}
		out[line] = uint8(n)
	}
	return out, nil
}

func idleLevel(line gpio.Line) gpio.Level {
	return line == gpio.SelectAH || line == gpio.SelectIN
}

func (p *Port) SetOutput(line gpio.Line, level gpio.Level) error {
	if !line.IsOutput() {
		return fmt.Errorf("%w: %s is an input", gpio.ErrDirection, line)
	}
	p.pins[line].Write(toState(level))
	return nil
}

func (p *Port) ReadInput(line gpio.Line) (gpio.Level, error) {
	if line.IsOutput() {
		return gpio.Low, fmt.Errorf("%w: %s is an output", gpio.ErrDirection, line)
	}
	return p.pins[line].Read() == rpio.High, nil
}

// Close restores idle output levels and unmaps the GPIO memory.
func (p *Port) Close() error {
	for line, pin := range p.pins {
		if line.IsOutput() {
			pin.Write(toState(idleLevel(line)))
		}
	}
	return rpio.Close()
}

func toState(level gpio.Level) rpio.State {
	if level == gpio.High {
		return rpio.High
	}
	return rpio.Low
}
