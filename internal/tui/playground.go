package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/ja-he/touchkey/internal/config"
	"github.com/ja-he/touchkey/internal/detect"
	"github.com/ja-he/touchkey/internal/eventlog"
	"github.com/ja-he/touchkey/internal/keyboard"
	"github.com/ja-he/touchkey/internal/pointer"
	"github.com/ja-he/touchkey/internal/replay"
	"github.com/ja-he/touchkey/internal/styling"
)

// MousePointer is the pointer id the mouse acts as.
const MousePointer pointer.PointerID = 0

const maxLogHeight = 8

// ConfigReloadEvent carries a reloaded configuration into the playground's
// event loop.
type ConfigReloadEvent struct {
	tcell.EventTime
	Config config.Config
}

// Playground renders a keyboard layout on a terminal and feeds mouse input
// through a pointer dispatcher, as if the mouse were a finger on a touch
// screen.
//
// All state is owned by the goroutine calling Run (or HandleEvent and Draw);
// other goroutines communicate with it only via NotifyConfigChanged.
type Playground struct {
	screen *ScreenHandler
	logs   eventlog.Reader
	logger zerolog.Logger

	layout     *keyboard.Layout
	detector   detect.Detector
	dispatcher *pointer.Dispatcher
	transcript *replay.Transcript
	stylesheet *styling.Stylesheet

	mouseDown      bool
	touched        bool
	touchX, touchY int
	cellX, cellY   int
}

// NewPlayground returns a playground for the given configuration.
// The log reader may be nil.
func NewPlayground(screen *ScreenHandler, c config.Config, logs eventlog.Reader, logger zerolog.Logger) (*Playground, error) {
	p := &Playground{
		screen:     screen,
		logs:       logs,
		logger:     logger,
		transcript: &replay.Transcript{},
	}
	if err := p.applyConfig(c); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Playground) applyConfig(c config.Config) error {
	layout, err := c.BuildLayout()
	if err != nil {
		return fmt.Errorf("could not build layout (%w)", err)
	}
	stylesheet, err := styling.NewStylesheetFromConfig(c.Stylesheet)
	if err != nil {
		return fmt.Errorf("could not build stylesheet (%w)", err)
	}

	p.layout = layout
	p.stylesheet = stylesheet
	p.detector = detect.NewProximityDetector(c.DetectorConfig(), p.logger)
	// gestures in progress do not survive a reload
	p.dispatcher = pointer.NewDispatcher(p.detector, layout, p.transcript, c.TrackerConfig(), p.logger)
	p.mouseDown = false

	p.logger.Info().
		Int("keys", layout.Len()).
		Int("width", layout.Width()).
		Int("height", layout.Height()).
		Msg("applied layout")
	return nil
}

// NotifyConfigChanged hands a reloaded configuration to the event loop.
// Safe to call from any goroutine.
func (p *Playground) NotifyConfigChanged(c config.Config) {
	ev := &ConfigReloadEvent{Config: c}
	ev.SetEventNow()
	if err := p.screen.PostEvent(ev); err != nil {
		p.logger.Warn().Err(err).Msg("could not post config reload")
	}
}

// Run draws and handles events until the user quits or the screen is
// finalized.
func (p *Playground) Run() {
	for {
		p.Draw()
		ev := p.screen.PollEvent()
		if ev == nil {
			return
		}
		if p.HandleEvent(ev) {
			return
		}
	}
}

// Transcript returns the key actions observed so far.
func (p *Playground) Transcript() []string { return p.transcript.Lines() }

// Layout returns the current layout.
func (p *Playground) Layout() *keyboard.Layout { return p.layout }

// HandleEvent handles a single event and reports whether the playground
// should quit.
func (p *Playground) HandleEvent(ev tcell.Event) (quit bool) {
	switch e := ev.(type) {

	case *tcell.EventKey:
		switch {
		case e.Key() == tcell.KeyEscape, e.Key() == tcell.KeyCtrlC:
			return true
		case e.Key() == tcell.KeyRune && e.Rune() == 'q':
			return true
		case e.Key() == tcell.KeyRune && e.Rune() == 'c':
			p.transcript.Reset()
		}

	case *tcell.EventResize:
		p.screen.NeedsSync()

	case *tcell.EventMouse:
		p.handleMouse(e)

	case *ConfigReloadEvent:
		if err := p.applyConfig(e.Config); err != nil {
			p.logger.Error().Err(err).Msg("could not apply reloaded config, keeping previous one")
		}
	}
	return false
}

func (p *Playground) handleMouse(e *tcell.EventMouse) {
	cx, cy := e.Position()
	pressed := e.Buttons()&tcell.Button1 != 0
	x, y := p.mapping().toLayout(cx, cy)
	t := e.When().UnixMilli()

	var phase pointer.Phase
	switch {
	case pressed && !p.mouseDown:
		phase = pointer.Down
	case pressed && p.mouseDown:
		if x == p.touchX && y == p.touchY {
			return
		}
		phase = pointer.Move
	case !pressed && p.mouseDown:
		phase = pointer.Up
	default:
		return
	}

	p.mouseDown = pressed
	p.touched = true
	p.touchX, p.touchY = x, y
	p.cellX, p.cellY = cx, cy

	p.logger.Debug().Stringer("phase", phase).Int("x", x).Int("y", y).Msg("mouse as touch")
	p.dispatcher.HandleEvent(pointer.Event{Pointer: MousePointer, X: x, Y: y, Time: t, Phase: phase})
}

func (p *Playground) areas() (keys, status, log Area) {
	_, _, w, h := p.screen.Dimensions()
	logHeight := min(maxLogHeight, h/3)
	keysHeight := max(h-1-logHeight, 0)
	return Area{0, 0, w, keysHeight},
		Area{0, keysHeight, w, 1},
		Area{0, keysHeight + 1, w, logHeight}
}

func (p *Playground) mapping() cellMapping {
	keys, _, _ := p.areas()
	return newCellMapping(keys, p.layout)
}

// Draw renders the keyboard, the status line and the log.
func (p *Playground) Draw() {
	p.screen.Clear()
	keysArea, statusArea, logArea := p.areas()
	_, _, w, h := p.screen.Dimensions()
	p.screen.DrawBox(0, 0, w, h, p.stylesheet.Normal)

	var result detect.Result
	if p.touched {
		result = p.detector.Resolve(p.layout, p.touchX, p.touchY, true)
	}
	p.drawKeys(keysArea, result)
	p.drawStatus(statusArea, result)
	p.drawLog(logArea)

	p.screen.Show()
}

func (p *Playground) drawKeys(area Area, result detect.Result) {
	m := newCellMapping(area, p.layout)
	candidates := result.Candidates.Candidates()
	pressed := keyboard.NoKey
	if t, ok := p.dispatcher.Tracker(MousePointer); ok && p.mouseDown {
		pressed = t.Key()
	}

	for i := 0; i < p.layout.Len(); i++ {
		k := p.layout.Key(keyboard.KeyIndex(i))
		style := p.stylesheet.KeyStyle(&k)
		for rank, c := range candidates {
			if c.Key == keyboard.KeyIndex(i) {
				style = p.stylesheet.CandidateStyle(&k, rank, len(candidates))
				break
			}
		}
		if pressed == keyboard.SomeKey(keyboard.KeyIndex(i)) {
			style = p.stylesheet.KeyPressed
		}

		a := m.keyArea(&k)
		// leave a gap to the neighboring keys where there is room for one
		if a.W > 2 {
			a.W--
		}
		if a.H > 2 {
			a.H--
		}
		p.screen.DrawBox(a.X, a.Y, a.W, a.H, style)

		label := []rune(k.Label)
		if len(label) > a.W {
			label = label[:a.W]
		}
		p.screen.DrawText(a.X+(a.W-len(label))/2, a.Y+a.H/2, len(label), 1, style, string(label))
	}

	if p.touched && area.Contains(p.cellX, p.cellY) {
		p.screen.DrawText(p.cellX, p.cellY, 1, 1, p.stylesheet.Touch, "+")
	}
}

func (p *Playground) drawStatus(area Area, result detect.Result) {
	text := "touch the keyboard with the mouse, 'c' clears, 'q' quits"
	if p.touched {
		primary := "-"
		if k, ok := p.layout.Lookup(result.Key); ok {
			primary = keyboard.ToCodeSpec(k.Code)
		}
		text = fmt.Sprintf("x:%d y:%d  key:%s  nearby:[%s]", p.touchX, p.touchY, primary, replay.FormatCodes(result.Nearby))
	}
	p.screen.DrawText(area.X, area.Y, area.W, area.H, p.stylesheet.Status, text)
}

func (p *Playground) drawLog(area Area) {
	if area.H <= 0 {
		return
	}
	half := area.W / 2

	lines := p.transcript.Lines()
	lines = lines[max(0, len(lines)-area.H):]
	for i, line := range lines {
		p.screen.DrawText(area.X, area.Y+i, half, 1, p.stylesheet.LogDefault, line)
	}

	if p.logs == nil {
		return
	}
	for i, entry := range p.logs.Tail(area.H) {
		level, _ := entry["level"].(string)
		p.screen.DrawText(area.X+half, area.Y+i, area.W-half, 1, p.stylesheet.LogEntryType(level), eventlog.Format(entry))
	}
}
