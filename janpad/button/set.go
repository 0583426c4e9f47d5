package button

import "strings"

// Set is an immutable set of buttons. The zero value is the empty set.
type Set uint32

// NewSet returns a set holding the given buttons. Invalid buttons are ignored.
func NewSet(buttons ...Button) Set {
	var s Set
	for _, b := range buttons {
		s = s.With(b)
	}
	return s
}

// With returns a copy of s that also contains b.
func (s Set) With(b Button) Set {
	if !b.Valid() {
		return s
	}
	return s | 1<<b
}

// Has reports whether b is in s.
func (s Set) Has(b Button) bool {
	return b.Valid() && s&(1<<b) != 0
}

func (s Set) Union(o Set) Set     { return s | o }
func (s Set) Intersect(o Set) Set { return s & o }

// Minus returns the buttons of s that are not in o.
func (s Set) Minus(o Set) Set { return s &^ o }

func (s Set) Empty() bool { return s == 0 }

// Len returns the number of buttons in s.
func (s Set) Len() int {
	n := 0
	for v := s; v != 0; v &= v - 1 {
		n++
	}
	return n
}

// Buttons returns the members of s in ascending order, which is also the
// order their rows are read in.
func (s Set) Buttons() []Button {
	out := make([]Button, 0, s.Len())
	for b := Button(0); b < Count; b++ {
		if s.Has(b) {
			out = append(out, b)
		}
	}
	return out
}

func (s Set) String() string {
	names := make([]string, 0, s.Len())
	for _, b := range s.Buttons() {
		names = append(names, b.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}
