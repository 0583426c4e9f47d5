// Package input turns the per-cycle snapshot of pressed buttons into discrete
// press and release events.
//
// The machine treats the controller as having two states: something is held,
// or nothing is. While anything is held, newly seen buttons produce a press
// and nothing is ever released, so contact chatter on a held button cannot
// produce duplicate presses. Once a cycle reads fully clear, every active
// button is released together. A button released while another is still held
// stays active until everything clears.
package input

import (
	"github.com/valerio/go-janpad/janpad/button"
	"github.com/valerio/go-janpad/janpad/input/event"
)

// Transition is the outcome of one polling cycle.
type Transition struct {
	Pressed  button.Set // buttons to send a press for
	Released button.Set // buttons covered by a release-all
	Guard    bool       // hold the bounce guard delay before the next cycle
}

// ReleaseAll reports whether a release-all should be sent.
func (t Transition) ReleaseAll() bool {
	return !t.Released.Empty()
}

// Events flattens the transition into the order the host should see it.
func (t Transition) Events() []event.Event {
	var out []event.Event
	for _, b := range t.Pressed.Buttons() {
		out = append(out, event.Event{Type: event.Press, Button: b})
	}
	if t.ReleaseAll() {
		out = append(out, event.Event{Type: event.ReleaseAll})
	}
	return out
}

// Machine holds the press state across polling cycles. It is not safe for
// concurrent use; it belongs to the polling loop.
type Machine struct {
	active    button.Set
	anyActive bool
}

func NewMachine() *Machine {
	return &Machine{}
}

// Advance consumes the snapshot of one full polling cycle.
func (m *Machine) Advance(snapshot button.Set) Transition {
	if !snapshot.Empty() {
		pressed := snapshot.Minus(m.active)
		m.active = m.active.Union(snapshot)
		m.anyActive = true
		return Transition{Pressed: pressed, Guard: true}
	}

	if !m.anyActive {
		return Transition{}
	}

	released := m.active
	m.active = 0
	m.anyActive = false
	return Transition{Released: released}
}

// Active returns the buttons whose press has been sent and not yet released.
func (m *Machine) Active() button.Set {
	return m.active
}

// Reset forgets all state without producing events.
func (m *Machine) Reset() {
	m.active = 0
	m.anyActive = false
}
