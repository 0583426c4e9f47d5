package terminal

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/go-janpad/janpad"
	"github.com/valerio/go-janpad/janpad/backend"
	"github.com/valerio/go-janpad/janpad/backend/terminal/render"
	"github.com/valerio/go-janpad/janpad/button"
	"github.com/valerio/go-janpad/janpad/emitter"
	"github.com/valerio/go-janpad/janpad/gpio"
	"github.com/valerio/go-janpad/janpad/sim"
	"github.com/valerio/go-janpad/janpad/transport"
)

// Terminals only report key presses (plus auto-repeat), never releases, so a
// button counts as held for keyTimeout after its key was last seen.
const keyTimeout = 150 * time.Millisecond

const (
	sentLines = 8
	logLines  = 10
)

// Key bindings: a-n for the tile buttons, 1-7 for the command row.
var runeButtons = map[rune]button.Button{
	'1': button.Ron,
	'2': button.Riichi,
	'3': button.Chi,
	'4': button.Pon,
	'5': button.Kan,
	'6': button.Start,
	'7': button.Select,
}

func init() {
	for b := button.A; b <= button.N; b++ {
		runeButtons[rune('a'+int(b-button.A))] = b
	}
}

// Backend drives a virtual controller from the keyboard and draws what the
// pad reads and sends, using tcell.
type Backend struct {
	screen  tcell.Screen
	running bool
	config  backend.Config

	controller *sim.Controller
	recorder   *transport.Recorder
	logBuffer  *render.LogBuffer
	prevLogger *slog.Logger

	now       func() time.Time
	lastSeen  map[button.Button]time.Time
	sticky    bool
	stickySet button.Set
}

// New creates a terminal backend on the process terminal.
func New() *Backend {
	return &Backend{now: time.Now}
}

// NewWithScreen creates a terminal backend drawing on the given screen.
func NewWithScreen(screen tcell.Screen) *Backend {
	return &Backend{screen: screen, now: time.Now}
}

func (t *Backend) Init(config backend.Config) error {
	t.config = config
	t.controller = sim.NewController()
	t.recorder = transport.NewRecorder()
	t.lastSeen = make(map[button.Button]time.Time)

	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to initialize terminal: %w", err)
		}
		t.screen = screen
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	t.running = true

	level := slog.LevelInfo
	if config.ShowDebug {
		level = slog.LevelDebug
	}
	t.logBuffer = render.NewLogBuffer(100)
	t.prevLogger = slog.Default()
	slog.SetDefault(slog.New(render.NewHandler(t.logBuffer, level)))

	slog.Info("Terminal backend initialized")

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()
	return nil
}

func (t *Backend) Port() gpio.Port { return t.controller }

func (t *Backend) Transport() emitter.Transport { return t.recorder }

// Update handles pending keys, sets what the virtual controller holds for the
// next cycle and redraws the screen.
func (t *Backend) Update(status janpad.Status) (bool, error) {
	now := t.now()

	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.processKeyEvent(ev, now)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	if !t.running {
		return false, nil
	}

	t.controller.Hold(t.held(now))
	t.draw(status)
	return true, nil
}

func (t *Backend) processKeyEvent(ev *tcell.EventKey, now time.Time) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		slog.Info("Quit requested")
		t.running = false
		return
	case tcell.KeyTab:
		t.sticky = !t.sticky
		t.stickySet = 0
		slog.Info("Sticky mode", "enabled", t.sticky)
		return
	case tcell.KeyRune:
	default:
		return
	}

	r := unicode.ToLower(ev.Rune())
	switch r {
	case 'q':
		t.running = false
		return
	case ' ':
		t.stickySet = 0
		return
	}

	b, ok := runeButtons[r]
	if !ok {
		return
	}
	if t.sticky {
		if t.stickySet.Has(b) {
			t.stickySet = t.stickySet.Minus(button.NewSet(b))
		} else {
			t.stickySet = t.stickySet.With(b)
		}
		return
	}
	t.lastSeen[b] = now
}

func (t *Backend) held(now time.Time) button.Set {
	held := t.stickySet
	for b, seen := range t.lastSeen {
		if now.Sub(seen) < keyTimeout {
			held = held.With(b)
		} else {
			delete(t.lastSeen, b)
		}
	}
	return held
}

var (
	styleDefault = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleTitle   = styleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleDim     = styleDefault.Foreground(tcell.ColorGray)
	stylePressed = styleDefault.Background(tcell.ColorGreen).Foreground(tcell.ColorBlack)
)

func (t *Backend) draw(status janpad.Status) {
	t.screen.Clear()

	title := t.config.Title
	if title == "" {
		title = "janpad"
	}
	mode := "hold"
	if t.sticky {
		mode = "sticky"
	}
	y := 0
	t.drawText(0, y, styleTitle, fmt.Sprintf("%s  cycle %d  mode %s", title, status.Cycle, mode))
	y += 2

	for i, row := range button.Rows {
		x := t.drawText(0, y, styleDefault, fmt.Sprintf("%-4s %08b  ", row, status.Rows[i]))
		for _, b := range button.RowButtons(row) {
			style := styleDim
			if status.Snapshot.Has(b) {
				style = stylePressed
			}
			x = t.drawText(x, y, style, b.String()) + 1
		}
		y++
	}
	y++

	t.drawText(0, y, styleDefault, "active: "+status.Active.String())
	y++
	held := t.recorder.Held()
	keys := make([]string, len(held))
	for i, k := range held {
		keys[i] = k.String()
	}
	t.drawText(0, y, styleDefault, "host keys: "+strings.Join(keys, " "))
	y += 2

	t.drawText(0, y, styleTitle, "sent")
	y++
	sent := t.recorder.Sent()
	for i := max(len(sent)-sentLines, 0); i < len(sent); i++ {
		t.drawText(2, y, styleDefault, sent[i].String())
		y++
	}
	y++

	t.drawText(0, y, styleTitle, "log")
	y++
	for _, entry := range t.logBuffer.Recent(logLines) {
		t.drawText(2, y, styleDim, render.FormatEntry(entry))
		y++
	}

	_, h := t.screen.Size()
	t.drawText(0, h-1, styleDim, "a-n tiles  1-7 RON RIICHI CHI PON KAN ST SEL  tab sticky  space clear  esc quit")
	t.screen.Show()
}

func (t *Backend) drawText(x, y int, style tcell.Style, text string) int {
	for _, r := range text {
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

func (t *Backend) Cleanup() error {
	if t.screen != nil {
		t.screen.Fini()
	}
	if t.prevLogger != nil {
		slog.SetDefault(t.prevLogger)
	}
	return nil
}
