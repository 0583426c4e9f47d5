// Package button defines the controller's logical buttons, the three
// multiplexed rows they are wired to, and the fixed bit layout that decodes a
// row's raw shift register value.
package button

import (
	"errors"
	"strings"

	"github.com/valerio/go-janpad/janpad/gpio"
)

// Button is a logical button on the controller.
type Button uint8

const (
	// Row AH, tile buttons
	A Button = iota
	B
	C
	D
	E
	F
	G
	H

	// Row IN, tile buttons
	I
	J
	K
	L
	M
	N

	// Command row
	Ron
	Riichi
	Chi
	Pon
	Kan
	Start
	Select

	// Count is the number of buttons.
	Count = iota
)

var buttonNames = [Count]string{
	A: "A", B: "B", C: "C", D: "D", E: "E", F: "F", G: "G", H: "H",
	I: "I", J: "J", K: "K", L: "L", M: "M", N: "N",
	Ron:    "RON",
	Riichi: "RIICHI",
	Chi:    "CHI",
	Pon:    "PON",
	Kan:    "KAN",
	Start:  "ST",
	Select: "SEL",
}

func (b Button) String() string {
	if b < Count {
		return buttonNames[b]
	}
	return "?"
}

// Valid reports whether b names a real button.
func (b Button) Valid() bool {
	return b < Count
}

// Parse returns the button with the given name, case-insensitively.
func Parse(name string) (Button, bool) {
	for b, n := range buttonNames {
		if strings.EqualFold(n, name) {
			return Button(b), true
		}
	}
	return 0, false
}

// All returns every button in row read order.
func All() []Button {
	out := make([]Button, Count)
	for i := range out {
		out[i] = Button(i)
	}
	return out
}

// Row is one of the three groups of buttons sharing a shift register read.
// Only the three declared values are valid.
type Row uint8

const (
	RowAH Row = iota
	RowIN
	RowCmd
)

// Rows lists the rows in the order they are read every polling cycle.
var Rows = [...]Row{RowAH, RowIN, RowCmd}

// ErrInvalidSelector is returned for the unused select combination (both
// lines LOW) or for a Row value outside the declared constants.
var ErrInvalidSelector = errors.New("button: invalid row selector")

func (r Row) String() string {
	switch r {
	case RowAH:
		return "AH"
	case RowIN:
		return "IN"
	case RowCmd:
		return "CMD"
	default:
		return "invalid"
	}
}

// Valid reports whether r is one of RowAH, RowIN or RowCmd.
func (r Row) Valid() bool {
	return r <= RowCmd
}

// Levels returns the levels to drive on the select-AH and select-IN lines to
// address the row. Each select line is active low; the command row is
// addressed with both lines HIGH.
func (r Row) Levels() (selectAH, selectIN gpio.Level, err error) {
	switch r {
	case RowAH:
		return gpio.Low, gpio.High, nil
	case RowIN:
		return gpio.High, gpio.Low, nil
	case RowCmd:
		return gpio.High, gpio.High, nil
	default:
		return gpio.High, gpio.High, ErrInvalidSelector
	}
}

// RowFromLevels maps a select line pair back to its row. Both lines LOW is
// rejected.
func RowFromLevels(selectAH, selectIN gpio.Level) (Row, error) {
	switch {
	case selectAH == gpio.Low && selectIN == gpio.High:
		return RowAH, nil
	case selectAH == gpio.High && selectIN == gpio.Low:
		return RowIN, nil
	case selectAH == gpio.High && selectIN == gpio.High:
		return RowCmd, nil
	default:
		return 0, ErrInvalidSelector
	}
}
