package hardware

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-janpad/janpad"
	"github.com/valerio/go-janpad/janpad/backend"
	"github.com/valerio/go-janpad/janpad/transport/logsink"
)

var _ backend.Backend = (*Backend)(nil)

func TestInit_UnknownDriver(t *testing.T) {
	b := New(Options{Driver: "parport", Transport: TransportLog})
	err := b.Init(backend.Config{})
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestInit_UnknownTransport(t *testing.T) {
	b := New(Options{Driver: DriverSim, Transport: "bluetooth"})
	err := b.Init(backend.Config{})
	assert.ErrorIs(t, err, ErrUnknownTransport)
}

func TestInit_MissingGadget(t *testing.T) {
	b := New(Options{
		Driver:    DriverSim,
		Transport: TransportHIDG,
		Device:    filepath.Join(t.TempDir(), "missing"),
	})
	err := b.Init(backend.Config{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLogTransport(t *testing.T) {
	b := New(Options{Driver: DriverSim, Transport: TransportLog})
	require.NoError(t, b.Init(backend.Config{}))
	defer b.Cleanup()

	assert.IsType(t, &logsink.LogSink{}, b.Transport())
	assert.NotNil(t, b.Port())
}

func TestHIDGTransportWritesReports(t *testing.T) {
	device := filepath.Join(t.TempDir(), "hidg0")
	require.NoError(t, os.WriteFile(device, nil, 0o600))

	b := New(Options{Driver: DriverSim, Transport: TransportHIDG, Device: device})
	require.NoError(t, b.Init(backend.Config{}))

	require.NoError(t, b.Transport().Press('a'))
	require.NoError(t, b.Transport().ReleaseAll())
	require.NoError(t, b.Cleanup())

	data, err := os.ReadFile(device)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0x00, 0x00, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}, data)
}

func TestUpdate_MaxCycles(t *testing.T) {
	tests := []struct {
		name      string
		maxCycles int
		updates   int
		expected  bool
	}{
		{"unlimited", 0, 50, true},
		{"below limit", 5, 4, true},
		{"at limit", 5, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(Options{Driver: DriverSim, Transport: TransportLog, MaxCycles: tt.maxCycles})
			require.NoError(t, b.Init(backend.Config{}))
			defer b.Cleanup()

			var cont bool
			for i := 0; i < tt.updates; i++ {
				var err error
				cont, err = b.Update(janpad.Status{})
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expected, cont)
		})
	}
}
