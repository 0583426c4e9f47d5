package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-janpad/janpad/keymap"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()

	require.NoError(t, r.Press(keymap.Char('a')))
	require.NoError(t, r.Press(keymap.LeftShift))
	require.NoError(t, r.Press(keymap.Char('a')))
	assert.Equal(t, []keymap.KeyCode{keymap.Char('a'), keymap.LeftShift}, r.Held())

	require.NoError(t, r.ReleaseAll())
	assert.Empty(t, r.Held())

	assert.Len(t, r.Sent(), 4)
	assert.Equal(t, "press a, press left-shift, press a, release-all", r.Log())
}
