package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-janpad/janpad/button"
)

func TestDefault(t *testing.T) {
	m := Default()

	tests := []struct {
		button button.Button
		want   KeyCode
	}{
		{button.A, Char('a')},
		{button.H, Char('h')},
		{button.I, Char('i')},
		{button.N, Char('n')},
		{button.Ron, Char('z')},
		{button.Riichi, LeftShift},
		{button.Chi, Char(' ')},
		{button.Pon, LeftAlt},
		{button.Kan, LeftCtrl},
		{button.Start, Char('1')},
		{button.Select, Char('5')},
	}

	for _, tt := range tests {
		t.Run(tt.button.String(), func(t *testing.T) {
			got, ok := m.Lookup(tt.button)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefault_EveryButtonMapped(t *testing.T) {
	m := Default()
	seen := make(map[KeyCode]button.Button)
	for _, b := range button.All() {
		k, ok := m.Lookup(b)
		assert.True(t, ok, "%s unmapped", b)
		if other, dup := seen[k]; dup {
			t.Errorf("%s and %s both map to %s", b, other, k)
		}
		seen[k] = b
	}
}

func TestLookup_Unmapped(t *testing.T) {
	var m Keymap
	_, ok := m.Lookup(button.A)
	assert.False(t, ok)

	d := Default()
	_, ok = d.Lookup(button.Button(99))
	assert.False(t, ok)
}

func TestKeyCode(t *testing.T) {
	assert.Equal(t, None, Char('\n'))
	assert.Equal(t, None, Char(0x7F))
	assert.True(t, LeftAlt.IsModifier())
	assert.False(t, Char('z').IsModifier())

	r, ok := Char('q').Rune()
	assert.True(t, ok)
	assert.Equal(t, 'q', r)
	_, ok = LeftShift.Rune()
	assert.False(t, ok)

	assert.Equal(t, "z", Char('z').String())
	assert.Equal(t, "space", Char(' ').String())
	assert.Equal(t, "left-shift", LeftShift.String())
	assert.Equal(t, "none", None.String())
	assert.Equal(t, "key(0x200)", KeyCode(0x200).String())
}
