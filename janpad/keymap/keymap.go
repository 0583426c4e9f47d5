// Package keymap maps controller buttons to the keys sent to the host.
package keymap

import (
	"fmt"

	"github.com/valerio/go-janpad/janpad/button"
)

// KeyCode is a key the transport knows how to send: either a printable ASCII
// character or one of the named modifier keys.
type KeyCode uint16

const (
	// None is the zero KeyCode and never sent.
	None KeyCode = 0

	modifierBase KeyCode = 0x100
)

// Modifier keys live above the ASCII range.
const (
	LeftCtrl KeyCode = modifierBase + iota
	LeftShift
	LeftAlt
)

// Char returns the KeyCode for a printable ASCII character.
func Char(r rune) KeyCode {
	if r < 0x20 || r > 0x7E {
		return None
	}
	return KeyCode(r)
}

// IsModifier reports whether k is a named modifier key.
func (k KeyCode) IsModifier() bool {
	return k >= LeftCtrl && k <= LeftAlt
}

// Rune returns the character of a printable key.
func (k KeyCode) Rune() (rune, bool) {
	if k >= 0x20 && k <= 0x7E {
		return rune(k), true
	}
	return 0, false
}

func (k KeyCode) String() string {
	switch k {
	case None:
		return "none"
	case LeftCtrl:
		return "left-ctrl"
	case LeftShift:
		return "left-shift"
	case LeftAlt:
		return "left-alt"
	case ' ':
		return "space"
	}
	if r, ok := k.Rune(); ok {
		return string(r)
	}
	return fmt.Sprintf("key(0x%x)", uint16(k))
}

// Keymap assigns a KeyCode to each button.
type Keymap [button.Count]KeyCode

// Default is the mahjong layout: tile buttons type their own letter and the
// command buttons land on the keys most mahjong clients bind by default.
func Default() Keymap {
	var m Keymap
	for b := button.A; b <= button.N; b++ {
		m[b] = Char(rune('a' + int(b-button.A)))
	}
	m[button.Ron] = Char('z')
	m[button.Riichi] = LeftShift
	m[button.Chi] = Char(' ')
	m[button.Pon] = LeftAlt
	m[button.Kan] = LeftCtrl
	m[button.Start] = Char('1')
	m[button.Select] = Char('5')
	return m
}

// Lookup returns the key bound to b.
func (m *Keymap) Lookup(b button.Button) (KeyCode, bool) {
	if !b.Valid() || m[b] == None {
		return None, false
	}
	return m[b], true
}
