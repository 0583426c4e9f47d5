// Package gpio describes the digital lines the controller is wired to and the
// Port capability used to drive and sample them.
package gpio

import "errors"

// Level is the logical level of a digital line.
type Level bool

const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l {
		return "HIGH"
	}
	return "LOW"
}

// Line identifies one of the controller's wires.
type Line uint8

const (
	SelectAH Line = iota // output, first row select line
	SelectIN             // output, second row select line
	Latch                // output, parallel load of the shift register
	Clock                // output, advances the shift register by one bit
	Data                 // input, serial output of the shift register
)

// Lines lists every line in declaration order.
var Lines = [...]Line{SelectAH, SelectIN, Latch, Clock, Data}

var lineNames = [...]string{
	SelectAH: "select-ah",
	SelectIN: "select-in",
	Latch:    "latch",
	Clock:    "clock",
	Data:     "data",
}

func (l Line) String() string {
	if int(l) < len(lineNames) {
		return lineNames[l]
	}
	return "unknown"
}

// IsOutput reports whether the line is driven by the host.
func (l Line) IsOutput() bool {
	return l != Data
}

var (
	// ErrUnknownPin is returned when a pin name cannot be resolved by a backend.
	ErrUnknownPin = errors.New("gpio: unknown pin")
	// ErrDirection is returned when writing an input line or reading an output line.
	ErrDirection = errors.New("gpio: wrong line direction")
)

// Port is the digital I/O capability. Implementations are not required to be
// safe for concurrent use.
type Port interface {
	SetOutput(line Line, level Level) error
	ReadInput(line Line) (Level, error)
}

// Pins maps each line to a backend specific pin name (e.g. "GPIO17" for
// periph.io, "17" for go-rpio).
type Pins map[Line]string

// DefaultPins is a Raspberry Pi header layout using BCM numbering.
func DefaultPins() Pins {
	return Pins{
		SelectAH: "GPIO17",
		SelectIN: "GPIO27",
		Latch:    "GPIO22",
		Clock:    "GPIO23",
		Data:     "GPIO24",
	}
}
