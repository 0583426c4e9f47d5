// Package shiftreg bit-bangs the controller's parallel-in/serial-out shift
// register: select a row, latch it, then clock out eight bits.
package shiftreg

import (
	"fmt"
	"sync"
	"time"

	"github.com/valerio/go-janpad/janpad/bit"
	"github.com/valerio/go-janpad/janpad/button"
	"github.com/valerio/go-janpad/janpad/gpio"
)

// DefaultPulseWidth is how long latch and clock are held at each level.
const DefaultPulseWidth = time.Microsecond

// bitsPerRow is the register width. Every row is clocked in full, including
// positions that carry no button.
const bitsPerRow = 8

// Reader reads rows from the shift register. It is safe for concurrent use;
// reads are serialized because the select, latch and clock lines are shared.
type Reader struct {
	mu         sync.Mutex
	port       gpio.Port
	pulseWidth time.Duration
	sleep      func(time.Duration)
}

type Option func(*Reader)

// WithPulseWidth sets how long latch and clock pulses are held. Zero disables
// the delay.
func WithPulseWidth(d time.Duration) Option { return func(r *Reader) { r.pulseWidth = d } }

// WithSleep replaces time.Sleep for pulse timing.
func WithSleep(sleep func(time.Duration)) Option { return func(r *Reader) { r.sleep = sleep } }

func New(port gpio.Port, opts ...Option) *Reader {
	r := &Reader{
		port:       port,
		pulseWidth: DefaultPulseWidth,
		sleep:      time.Sleep,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadRow selects row, latches the button states and shifts out eight bits,
// bit 0 first.
func (r *Reader) ReadRow(row button.Row) (button.Bits, error) {
	selAH, selIN, err := row.Levels()
	if err != nil {
		return button.Released, fmt.Errorf("shiftreg: read row %d: %w", row, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.port.SetOutput(gpio.SelectAH, selAH); err != nil {
		return button.Released, fmt.Errorf("shiftreg: select row %s: %w", row, err)
	}
	if err := r.port.SetOutput(gpio.SelectIN, selIN); err != nil {
		return button.Released, fmt.Errorf("shiftreg: select row %s: %w", row, err)
	}

	// Capture the parallel inputs. Bit 0 is presented on the data line
	// immediately after the latch pulse.
	if err := r.pulse(gpio.Latch); err != nil {
		return button.Released, fmt.Errorf("shiftreg: latch row %s: %w", row, err)
	}

	var value uint8
	for pos := uint8(0); pos < bitsPerRow; pos++ {
		if pos > 0 {
			if err := r.pulse(gpio.Clock); err != nil {
				return button.Released, fmt.Errorf("shiftreg: clock row %s bit %d: %w", row, pos, err)
			}
		}
		level, err := r.port.ReadInput(gpio.Data)
		if err != nil {
			return button.Released, fmt.Errorf("shiftreg: sample row %s bit %d: %w", row, pos, err)
		}
		value = bit.Assign(pos, value, level == gpio.High)
	}

	return button.Bits(value), nil
}

// pulse drives line high, then low.
func (r *Reader) pulse(line gpio.Line) error {
	if err := r.port.SetOutput(line, gpio.High); err != nil {
		return err
	}
	r.wait()
	if err := r.port.SetOutput(line, gpio.Low); err != nil {
		return err
	}
	r.wait()
	return nil
}

func (r *Reader) wait() {
	if r.pulseWidth > 0 {
		r.sleep(r.pulseWidth)
	}
}
