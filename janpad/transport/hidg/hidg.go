// Package hidg sends key events to a USB host through the Linux USB gadget
// HID function (/dev/hidgN), so the board enumerates as a keyboard.
package hidg

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/valerio/go-janpad/janpad/keymap"
)

// DefaultDevice is the first HID gadget function.
const DefaultDevice = "/dev/hidg0"

// Keyboard writes boot keyboard reports to w. Every Press and ReleaseAll
// writes one full report.
type Keyboard struct {
	mu     sync.Mutex
	w      io.Writer
	report Report
}

func New(w io.Writer) *Keyboard {
	return &Keyboard{w: w}
}

// Open opens a HID gadget device for writing.
func Open(path string) (*Keyboard, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("hidg: open %s: %w", path, err)
	}
	slog.Info("Opened HID gadget", "device", path)
	return New(f), f, nil
}

func (k *Keyboard) Press(key keymap.KeyCode) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if err := k.report.Add(key); err != nil {
		return err
	}
	return k.send()
}

func (k *Keyboard) ReleaseAll() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.report.Clear()
	return k.send()
}

func (k *Keyboard) send() error {
	buf := k.report.Bytes()
	if _, err := k.w.Write(buf[:]); err != nil {
		return fmt.Errorf("hidg: write report: %w", err)
	}
	return nil
}
