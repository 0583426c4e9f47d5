// Package transport holds helpers shared by the keyboard transports.
package transport

import (
	"strings"
	"sync"

	"github.com/valerio/go-janpad/janpad/keymap"
)

// Sent is one call received by a transport.
type Sent struct {
	ReleaseAll bool
	Key        keymap.KeyCode
}

func (s Sent) String() string {
	if s.ReleaseAll {
		return "release-all"
	}
	return "press " + s.Key.String()
}

// Recorder is an in-memory transport. It keeps every call in order and the
// set of keys currently held, which is what the terminal and headless
// backends display.
type Recorder struct {
	mu   sync.Mutex
	sent []Sent
	held []keymap.KeyCode
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Press(key keymap.KeyCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, Sent{Key: key})
	for _, k := range r.held {
		if k == key {
			return nil
		}
	}
	r.held = append(r.held, key)
	return nil
}

func (r *Recorder) ReleaseAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, Sent{ReleaseAll: true})
	r.held = r.held[:0]
	return nil
}

// Sent returns a copy of every call received so far.
func (r *Recorder) Sent() []Sent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Sent, len(r.sent))
	copy(out, r.sent)
	return out
}

// Held returns the keys pressed since the last release-all, in press order.
func (r *Recorder) Held() []keymap.KeyCode {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]keymap.KeyCode, len(r.held))
	copy(out, r.held)
	return out
}

// Log renders the call history as "press a, press z, release-all".
func (r *Recorder) Log() string {
	sent := r.Sent()
	parts := make([]string, len(sent))
	for i, s := range sent {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}
