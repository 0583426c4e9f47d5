package terminal

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-janpad/janpad"
	"github.com/valerio/go-janpad/janpad/backend"
	"github.com/valerio/go-janpad/janpad/button"
)

var _ backend.Backend = (*Backend)(nil)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBackend(t *testing.T) (*Backend, tcell.SimulationScreen, *fakeClock) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")

	clock := &fakeClock{t: time.Unix(0, 0)}
	b := NewWithScreen(screen)
	b.now = clock.now
	require.NoError(t, b.Init(backend.Config{Title: "test pad"}))
	screen.SetSize(100, 40)
	t.Cleanup(func() { _ = b.Cleanup() })
	return b, screen, clock
}

func screenText(screen tcell.SimulationScreen) string {
	cells, w, _ := screen.GetContents()
	var sb strings.Builder
	for i, c := range cells {
		if len(c.Runes) > 0 {
			sb.WriteRune(c.Runes[0])
		} else {
			sb.WriteRune(' ')
		}
		if (i+1)%w == 0 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

func TestKeyHoldExpires(t *testing.T) {
	b, screen, clock := newTestBackend(t)

	screen.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, '1', tcell.ModNone)
	cont, err := b.Update(janpad.Status{})
	require.NoError(t, err)
	assert.True(t, cont)
	assert.Equal(t, button.NewSet(button.A, button.Ron), b.controller.Held())

	clock.advance(keyTimeout / 2)
	screen.InjectKey(tcell.KeyRune, 'a', tcell.ModNone) // auto-repeat
	_, err = b.Update(janpad.Status{})
	require.NoError(t, err)
	assert.Equal(t, button.NewSet(button.A, button.Ron), b.controller.Held())

	clock.advance(keyTimeout/2 + time.Millisecond)
	_, err = b.Update(janpad.Status{})
	require.NoError(t, err)
	assert.Equal(t, button.NewSet(button.A), b.controller.Held())

	clock.advance(keyTimeout)
	_, err = b.Update(janpad.Status{})
	require.NoError(t, err)
	assert.True(t, b.controller.Held().Empty())
}

func TestStickyMode(t *testing.T) {
	b, screen, clock := newTestBackend(t)

	screen.InjectKey(tcell.KeyTab, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'N', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, '7', tcell.ModNone)
	_, err := b.Update(janpad.Status{})
	require.NoError(t, err)

	clock.advance(time.Second)
	_, err = b.Update(janpad.Status{})
	require.NoError(t, err)
	assert.Equal(t, button.NewSet(button.N, button.Select), b.controller.Held())

	screen.InjectKey(tcell.KeyRune, 'n', tcell.ModNone)
	_, err = b.Update(janpad.Status{})
	require.NoError(t, err)
	assert.Equal(t, button.NewSet(button.Select), b.controller.Held())

	screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	_, err = b.Update(janpad.Status{})
	require.NoError(t, err)
	assert.True(t, b.controller.Held().Empty())
}

func TestQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
	}{
		{"escape", tcell.KeyEscape, 0},
		{"ctrl-c", tcell.KeyCtrlC, 0},
		{"q", tcell.KeyRune, 'q'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, screen, _ := newTestBackend(t)
			screen.InjectKey(tt.key, tt.r, tcell.ModNone)

			cont, err := b.Update(janpad.Status{})
			require.NoError(t, err)
			assert.False(t, cont)
		})
	}
}

func TestDraw(t *testing.T) {
	b, screen, _ := newTestBackend(t)

	require.NoError(t, b.recorder.Press('a'))
	status := janpad.Status{
		Cycle:    7,
		Rows:     [3]button.Bits{0x7F, 0xFF, 0xFF},
		Snapshot: button.NewSet(button.A),
		Active:   button.NewSet(button.A),
	}
	_, err := b.Update(status)
	require.NoError(t, err)

	text := screenText(screen)
	assert.Contains(t, text, "test pad  cycle 7")
	assert.Contains(t, text, "AH   01111111")
	assert.Contains(t, text, "active: {A}")
	assert.Contains(t, text, "host keys: a")
	assert.Contains(t, text, "press a")
	assert.Contains(t, text, "Terminal backend initialized")
}
