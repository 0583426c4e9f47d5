package event

import (
	"fmt"

	"github.com/valerio/go-janpad/janpad/button"
)

// Type represents the type of key event sent to the host
type Type int

const (
	Press      Type = iota // Button newly seen as pressed
	ReleaseAll             // Every active button released at once
)

func (t Type) String() string {
	switch t {
	case Press:
		return "press"
	case ReleaseAll:
		return "release-all"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// Event is one key event produced by a polling cycle. Button is only
// meaningful for Press.
type Event struct {
	Type   Type
	Button button.Button
}

func (e Event) String() string {
	if e.Type == Press {
		return fmt.Sprintf("press %s", e.Button)
	}
	return e.Type.String()
}
