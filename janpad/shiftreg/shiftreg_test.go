package shiftreg

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-janpad/janpad/button"
	"github.com/valerio/go-janpad/janpad/gpio"
	"github.com/valerio/go-janpad/janpad/sim"
)

func TestReadRow_Values(t *testing.T) {
	c := sim.NewController()
	c.Hold(button.NewSet(button.H, button.A, button.Ron, button.N))
	r := New(c, WithPulseWidth(0))

	tests := []struct {
		row  button.Row
		want button.Bits
	}{
		{button.RowAH, 0b01111110},
		{button.RowIN, 0b11111011},
		{button.RowCmd, 0b11111101},
	}

	for _, tt := range tests {
		t.Run(tt.row.String(), func(t *testing.T) {
			got, err := r.ReadRow(tt.row)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadRow_LineSequence(t *testing.T) {
	for _, row := range button.Rows {
		t.Run(row.String(), func(t *testing.T) {
			rec := gpio.NewRecorder(sim.NewController())
			r := New(rec, WithPulseWidth(0))

			_, err := r.ReadRow(row)
			require.NoError(t, err)

			ah, in, err := row.Levels()
			require.NoError(t, err)

			want := []gpio.Op{
				{Kind: gpio.OpWrite, Line: gpio.SelectAH, Level: ah},
				{Kind: gpio.OpWrite, Line: gpio.SelectIN, Level: in},
				{Kind: gpio.OpWrite, Line: gpio.Latch, Level: gpio.High},
				{Kind: gpio.OpWrite, Line: gpio.Latch, Level: gpio.Low},
				{Kind: gpio.OpRead, Line: gpio.Data, Level: gpio.High},
			}
			for i := 1; i < 8; i++ {
				want = append(want,
					gpio.Op{Kind: gpio.OpWrite, Line: gpio.Clock, Level: gpio.High},
					gpio.Op{Kind: gpio.OpWrite, Line: gpio.Clock, Level: gpio.Low},
					gpio.Op{Kind: gpio.OpRead, Line: gpio.Data, Level: gpio.High},
				)
			}
			assert.Equal(t, want, rec.Ops())
		})
	}
}

func TestReadRow_InvalidRowDrivesNothing(t *testing.T) {
	rec := gpio.NewRecorder(sim.NewController())
	r := New(rec, WithPulseWidth(0))

	bits, err := r.ReadRow(button.Row(3))
	assert.ErrorIs(t, err, button.ErrInvalidSelector)
	assert.Equal(t, button.Released, bits)
	assert.Empty(t, rec.Ops())
}

func TestReadRow_PulseTiming(t *testing.T) {
	var sleeps []time.Duration
	r := New(sim.NewController(),
		WithPulseWidth(2*time.Microsecond),
		WithSleep(func(d time.Duration) { sleeps = append(sleeps, d) }))

	_, err := r.ReadRow(button.RowAH)
	require.NoError(t, err)

	// latch high/low plus seven clock high/low
	assert.Len(t, sleeps, 16)
	for _, d := range sleeps {
		assert.Equal(t, 2*time.Microsecond, d)
	}
}

type failingPort struct {
	failLine gpio.Line
	readErr  bool
}

var errBus = errors.New("bus fault")

func (f failingPort) SetOutput(line gpio.Line, level gpio.Level) error {
	if line == f.failLine && !f.readErr {
		return errBus
	}
	return nil
}

func (f failingPort) ReadInput(line gpio.Line) (gpio.Level, error) {
	if f.readErr {
		return gpio.Low, errBus
	}
	return gpio.High, nil
}

func TestReadRow_PortErrors(t *testing.T) {
	tests := []struct {
		name string
		port failingPort
	}{
		{"select", failingPort{failLine: gpio.SelectIN}},
		{"latch", failingPort{failLine: gpio.Latch}},
		{"clock", failingPort{failLine: gpio.Clock}},
		{"sample", failingPort{readErr: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(tt.port, WithPulseWidth(0))
			bits, err := r.ReadRow(button.RowCmd)
			assert.ErrorIs(t, err, errBus)
			assert.Equal(t, button.Released, bits)
		})
	}
}

func TestReadRow_DefaultPulseWidth(t *testing.T) {
	r := New(sim.NewController())
	assert.Equal(t, DefaultPulseWidth, r.pulseWidth)
}
