package headless

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/valerio/go-janpad/janpad/button"
)

// ErrBadScript is returned when a button script cannot be parsed.
var ErrBadScript = errors.New("bad script")

// Script is the sequence of held buttons, one entry per polling cycle.
type Script []button.Set

// ParseScript reads a comma separated list of steps. A step is either "-"
// (nothing held) or buttons joined with "+", optionally followed by "*N" to
// hold them for N cycles:
//
//	A,A,-,RON+RIICHI*3,-
func ParseScript(s string) (Script, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var script Script
	for _, step := range strings.Split(s, ",") {
		step = strings.TrimSpace(step)

		repeat := 1
		if body, count, ok := strings.Cut(step, "*"); ok {
			n, err := strconv.Atoi(strings.TrimSpace(count))
			if err != nil || n < 1 {
				return nil, fmt.Errorf("%w: invalid repeat in %q", ErrBadScript, step)
			}
			step, repeat = strings.TrimSpace(body), n
		}

		held, err := parseStep(step)
		if err != nil {
			return nil, err
		}
		for i := 0; i < repeat; i++ {
			script = append(script, held)
		}
	}
	return script, nil
}

func parseStep(step string) (button.Set, error) {
	if step == "-" {
		return 0, nil
	}
	if step == "" {
		return 0, fmt.Errorf("%w: empty step", ErrBadScript)
	}

	var held button.Set
	for _, name := range strings.Split(step, "+") {
		b, ok := button.Parse(strings.TrimSpace(name))
		if !ok {
			return 0, fmt.Errorf("%w: unknown button %q", ErrBadScript, name)
		}
		held = held.With(b)
	}
	return held, nil
}

// At returns what is held on the given cycle. Past the end of the script
// nothing is held.
func (s Script) At(cycle int) button.Set {
	if cycle < 0 || cycle >= len(s) {
		return 0
	}
	return s[cycle]
}
