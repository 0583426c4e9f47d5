package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli"
	"github.com/valerio/go-janpad/janpad"
	"github.com/valerio/go-janpad/janpad/backend"
	"github.com/valerio/go-janpad/janpad/backend/hardware"
	"github.com/valerio/go-janpad/janpad/backend/headless"
	"github.com/valerio/go-janpad/janpad/backend/terminal"
	"github.com/valerio/go-janpad/janpad/gpio"
	"github.com/valerio/go-janpad/janpad/shiftreg"
	"github.com/valerio/go-janpad/janpad/timing"
	"github.com/valerio/go-janpad/janpad/transport/hidg"
)

var pinFlags = map[gpio.Line]string{
	gpio.SelectAH: "pin-select-ah",
	gpio.SelectIN: "pin-select-in",
	gpio.Latch:    "pin-latch",
	gpio.Clock:    "pin-clock",
	gpio.Data:     "pin-data",
}

func main() {
	app := cli.NewApp()
	app.Name = "janpad"
	app.Description = "Turns a three row mahjong controller into a USB keyboard"
	app.Usage = "janpad [options]"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "backend",
			Usage: "Runtime backend: hardware, terminal or headless",
			Value: "hardware",
		},
		cli.StringFlag{
			Name:  "gpio",
			Usage: "GPIO driver for the hardware backend: periph, rpio or sim",
			Value: hardware.DriverPeriph,
		},
		cli.StringFlag{
			Name:  "transport",
			Usage: "Key transport for the hardware backend: hidg or log",
			Value: hardware.TransportHIDG,
		},
		cli.StringFlag{
			Name:  "hidg-device",
			Usage: "HID gadget device the keyboard reports are written to",
			Value: hidg.DefaultDevice,
		},
		cli.DurationFlag{
			Name:  "poll-interval",
			Usage: "Time between polling cycles (0 = poll as fast as possible)",
			Value: timing.DefaultPollInterval,
		},
		cli.DurationFlag{
			Name:  "bounce-guard",
			Usage: "Pause after a cycle that reads a pressed button",
			Value: timing.DefaultBounceGuard,
		},
		cli.DurationFlag{
			Name:  "pulse-width",
			Usage: "Latch and clock pulse width",
			Value: shiftreg.DefaultPulseWidth,
		},
		cli.IntFlag{
			Name:  "cycles",
			Usage: "Stop after N polling cycles (0 = run until interrupted, or the script length in headless mode)",
		},
		cli.StringFlag{
			Name:  "script",
			Usage: "Button script for the headless backend, e.g. \"A,A,-,RON+RIICHI*3,-\"",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, warn or error",
			Value: "info",
		},
	}
	defaults := gpio.DefaultPins()
	for _, line := range gpio.Lines {
		app.Flags = append(app.Flags, cli.StringFlag{
			Name:  pinFlags[line],
			Usage: fmt.Sprintf("Pin for the %s line", line),
			Value: defaults[line],
		})
	}
	app.Action = runPad

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running janpad", "error", err)
		os.Exit(1)
	}
}

func runPad(c *cli.Context) error {
	level, err := parseLevel(c.String("log-level"))
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	b, err := newBackend(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var limiter timing.Limiter = timing.NewNoOpLimiter()
	if interval := c.Duration("poll-interval"); interval > 0 {
		ticker := timing.NewTickerLimiter(interval)
		defer ticker.Stop()
		limiter = ticker
	}

	config := backend.Config{
		Title:     "janpad",
		ShowDebug: level <= slog.LevelDebug,
	}
	return backend.Run(ctx, b, config, limiter,
		janpad.WithBounceGuard(c.Duration("bounce-guard")),
		janpad.WithPulseWidth(c.Duration("pulse-width")),
	)
}

func newBackend(c *cli.Context) (backend.Backend, error) {
	switch name := c.String("backend"); name {
	case "hardware":
		pins := make(gpio.Pins, len(gpio.Lines))
		for _, line := range gpio.Lines {
			pins[line] = c.String(pinFlags[line])
		}
		return hardware.New(hardware.Options{
			Driver:    c.String("gpio"),
			Pins:      pins,
			Transport: c.String("transport"),
			Device:    c.String("hidg-device"),
			MaxCycles: c.Int("cycles"),
		}), nil
	case "terminal":
		return terminal.New(), nil
	case "headless":
		script, err := headless.ParseScript(c.String("script"))
		if err != nil {
			return nil, err
		}
		return headless.New(c.Int("cycles"), script), nil
	default:
		return nil, fmt.Errorf("%w: %q", backend.ErrUnknownBackend, name)
	}
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}
