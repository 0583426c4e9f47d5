package headless

import (
	"log/slog"
	"os"

	"github.com/valerio/go-janpad/janpad"
	"github.com/valerio/go-janpad/janpad/backend"
	"github.com/valerio/go-janpad/janpad/emitter"
	"github.com/valerio/go-janpad/janpad/gpio"
	"github.com/valerio/go-janpad/janpad/sim"
	"github.com/valerio/go-janpad/janpad/transport"
)

// Backend implements the Backend interface for smoke runs and scripted checks.
// It plays a Script on a virtual controller and records what the host would
// have received.
type Backend struct {
	config     backend.Config
	script     Script
	maxCycles  int
	cycleCount int

	controller *sim.Controller
	recorder   *transport.Recorder
}

// New creates a headless backend. With maxCycles <= 0 it runs exactly as many
// cycles as the script has steps.
func New(maxCycles int, script Script) *Backend {
	if maxCycles <= 0 {
		maxCycles = max(len(script), 1)
	}
	return &Backend{
		script:    script,
		maxCycles: maxCycles,
	}
}

func (h *Backend) Init(config backend.Config) error {
	h.config = config
	h.cycleCount = 0
	h.controller = sim.NewController()
	h.recorder = transport.NewRecorder()
	h.controller.Hold(h.script.At(0))

	if config.ShowDebug {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
		slog.SetDefault(slog.New(handler))
	}

	slog.Info("Running headless mode", "cycles", h.maxCycles, "script_steps", len(h.script))
	return nil
}

func (h *Backend) Port() gpio.Port { return h.controller }

func (h *Backend) Transport() emitter.Transport { return h.recorder }

// Recorder exposes every key event sent so far.
func (h *Backend) Recorder() *transport.Recorder { return h.recorder }

// Update advances the script by one step
func (h *Backend) Update(status janpad.Status) (bool, error) {
	h.cycleCount++

	for _, ev := range status.Transition.Events() {
		slog.Debug("Key event", "cycle", status.Cycle, "event", ev.String())
	}

	if h.cycleCount%100 == 0 {
		slog.Info("Cycle progress", "completed", h.cycleCount, "total", h.maxCycles)
	}

	if h.cycleCount >= h.maxCycles {
		slog.Info("Headless execution completed", "cycles", h.cycleCount, "sent", len(h.recorder.Sent()))
		return false, nil
	}

	h.controller.Hold(h.script.At(h.cycleCount))
	return true, nil
}

func (h *Backend) Cleanup() error {
	slog.Info("Headless transport log", "events", h.recorder.Log())
	return nil
}
