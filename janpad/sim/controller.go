// Package sim is a software model of the controller hardware. It implements
// gpio.Port by emulating the row select decoder and the shift register, so
// the real acquisition code can run without a board attached.
package sim

import (
	"fmt"
	"sync"

	"github.com/valerio/go-janpad/janpad/button"
	"github.com/valerio/go-janpad/janpad/gpio"
)

// Controller emulates the controller as seen from its five lines.
type Controller struct {
	mu sync.Mutex

	held   button.Set
	bounce map[button.Button]int

	selAH, selIN gpio.Level
	latch, clock gpio.Level
	register     uint8

	latches int
}

var _ gpio.Port = (*Controller)(nil)

func NewController() *Controller {
	return &Controller{
		bounce:   make(map[button.Button]int),
		selAH:    gpio.High,
		selIN:    gpio.High,
		register: uint8(button.Released),
	}
}

// Press holds b down until Release.
func (c *Controller) Press(b button.Button) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.held = c.held.With(b)
}

// Release lets go of b.
func (c *Controller) Release(b button.Button) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.held = c.held.Minus(button.NewSet(b))
}

// Hold replaces the set of held buttons.
func (c *Controller) Hold(s button.Set) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.held = s
}

// Held returns the buttons currently held.
func (c *Controller) Held() button.Set {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.held
}

// Bounce makes b read inverted for the next n latches of its row, as a
// chattering contact would.
func (c *Controller) Bounce(b button.Button, n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bounce[b] = n
}

// Latches returns how many times the register has been loaded.
func (c *Controller) Latches() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latches
}

func (c *Controller) SetOutput(line gpio.Line, level gpio.Level) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch line {
	case gpio.SelectAH:
		c.selAH = level
	case gpio.SelectIN:
		c.selIN = level
	case gpio.Latch:
		if c.latch == gpio.Low && level == gpio.High {
			c.load()
		}
		c.latch = level
	case gpio.Clock:
		if c.clock == gpio.Low && level == gpio.High {
			// serial input is tied high
			c.register = c.register>>1 | 0x80
		}
		c.clock = level
	default:
		return fmt.Errorf("%w: %s is an input", gpio.ErrDirection, line)
	}
	return nil
}

func (c *Controller) ReadInput(line gpio.Line) (gpio.Level, error) {
	if line != gpio.Data {
		return gpio.Low, fmt.Errorf("%w: %s is an output", gpio.ErrDirection, line)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.register&1 == 1, nil
}

// load captures the selected row into the register. With no row selected
// every input floats high.
func (c *Controller) load() {
	c.latches++

	row, err := button.RowFromLevels(c.selAH, c.selIN)
	if err != nil {
		c.register = uint8(button.Released)
		return
	}

	reading := c.held
	for _, b := range button.RowButtons(row) {
		if c.bounce[b] <= 0 {
			continue
		}
		c.bounce[b]--
		if reading.Has(b) {
			reading = reading.Minus(button.NewSet(b))
		} else {
			reading = reading.With(b)
		}
	}
	c.register = uint8(button.Encode(row, reading))
}
