package hidg

import (
	"errors"
	"fmt"

	"github.com/valerio/go-janpad/janpad/keymap"
)

// ReportSize is the length of a boot protocol keyboard input report:
// [modifiers, reserved, key1, key2, key3, key4, key5, key6].
const ReportSize = 8

const maxKeys = ReportSize - 2

// Modifier bits of the first report byte.
const (
	ModLeftCtrl  = 1 << 0
	ModLeftShift = 1 << 1
	ModLeftAlt   = 1 << 2
)

// Usage IDs from the HID keyboard/keypad page.
const (
	usageA     = 0x04
	usage1     = 0x1E
	usage0     = 0x27
	usageSpace = 0x2C
	usageMinus = 0x2D
	usageEqual = 0x2E
	usageComma = 0x36
	usageDot   = 0x37
	usageSlash = 0x38
)

var (
	// ErrUnsupportedKey is returned for keys with no boot keyboard usage.
	ErrUnsupportedKey = errors.New("hidg: key has no HID usage")
	// ErrRollover is returned when more than six non-modifier keys are held.
	ErrRollover = errors.New("hidg: more than six keys held")
)

// Report is the state of the emulated keyboard.
type Report struct {
	modifiers byte
	keys      []byte
}

// Add presses key in the report. Pressing a key that is already down is a
// no-op.
func (r *Report) Add(key keymap.KeyCode) error {
	if key.IsModifier() {
		r.modifiers |= modifierBit(key)
		return nil
	}

	usage, err := Usage(key)
	if err != nil {
		return err
	}
	for _, k := range r.keys {
		if k == usage {
			return nil
		}
	}
	if len(r.keys) == maxKeys {
		return fmt.Errorf("%w: cannot press %s", ErrRollover, key)
	}
	r.keys = append(r.keys, usage)
	return nil
}

// Clear releases everything.
func (r *Report) Clear() {
	r.modifiers = 0
	r.keys = r.keys[:0]
}

// Bytes encodes the report.
func (r *Report) Bytes() [ReportSize]byte {
	var out [ReportSize]byte
	out[0] = r.modifiers
	copy(out[2:], r.keys)
	return out
}

func modifierBit(key keymap.KeyCode) byte {
	switch key {
	case keymap.LeftCtrl:
		return ModLeftCtrl
	case keymap.LeftShift:
		return ModLeftShift
	case keymap.LeftAlt:
		return ModLeftAlt
	default:
		return 0
	}
}

// Usage returns the HID usage ID for a printable key. Upper case letters map
// to the same usage as lower case; shift is the caller's business.
func Usage(key keymap.KeyCode) (byte, error) {
	ch, ok := key.Rune()
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedKey, key)
	}
	switch {
	case ch >= 'a' && ch <= 'z':
		return usageA + byte(ch-'a'), nil
	case ch >= 'A' && ch <= 'Z':
		return usageA + byte(ch-'A'), nil
	case ch >= '1' && ch <= '9':
		return usage1 + byte(ch-'1'), nil
	case ch == '0':
		return usage0, nil
	case ch == ' ':
		return usageSpace, nil
	case ch == '-':
		return usageMinus, nil
	case ch == '=':
		return usageEqual, nil
	case ch == ',':
		return usageComma, nil
	case ch == '.':
		return usageDot, nil
	case ch == '/':
		return usageSlash, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedKey, key)
	}
}
