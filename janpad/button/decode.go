package button

import "github.com/valerio/go-janpad/janpad/bit"

// Bits is the raw value shifted out of the register for one row. Bit 0 is
// the first bit received. Bits are active low: 0 means pressed.
type Bits uint8

// Released is the raw value of a row with nothing pressed.
const Released Bits = 0xFF

// none marks a bit position that carries no button.
const none Button = 0xFF

// layout maps (row, bit position) to the button wired there.
var layout = [len(Rows)][8]Button{
	RowAH:  {H, G, F, E, D, C, B, A},
	RowIN:  {none, none, N, M, L, K, J, I},
	RowCmd: {none, Ron, Riichi, Chi, Pon, Kan, Start, Select},
}

// Decode returns the buttons of row that read as pressed in bits. Positions
// that carry no button are ignored. An invalid row decodes to the empty set.
func Decode(row Row, bits Bits) Set {
	var s Set
	if !row.Valid() {
		return s
	}
	for pos, b := range layout[row] {
		if b == none {
			continue
		}
		if !bit.IsSet(uint8(pos), uint8(bits)) {
			s = s.With(b)
		}
	}
	return s
}

// Encode is the inverse of Decode: it returns the raw value the register
// holds for row when the buttons in s are held. Unused positions read 1.
func Encode(row Row, s Set) Bits {
	raw := uint8(Released)
	if !row.Valid() {
		return Released
	}
	for pos, b := range layout[row] {
		if b != none && s.Has(b) {
			raw = bit.Reset(uint8(pos), raw)
		}
	}
	return Bits(raw)
}

// Position returns the row and bit position b is wired to.
func (b Button) Position() (Row, uint8) {
	for _, row := range Rows {
		for pos, candidate := range layout[row] {
			if candidate == b {
				return row, uint8(pos)
			}
		}
	}
	return 0, 0
}

// RowButtons returns the buttons wired to row, ordered by bit position.
func RowButtons(row Row) []Button {
	if !row.Valid() {
		return nil
	}
	var out []Button
	for _, b := range layout[row] {
		if b != none {
			out = append(out, b)
		}
	}
	return out
}

// RowMask returns the set of every button wired to row.
func RowMask(row Row) Set {
	return NewSet(RowButtons(row)...)
}
