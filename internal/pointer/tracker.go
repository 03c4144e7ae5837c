package pointer

import (
	"github.com/rs/zerolog"

	"github.com/ja-he/touchkey/internal/detect"
	"github.com/ja-he/touchkey/internal/keyboard"
)

// TrackerConfig configures the gesture handling of a Tracker.
type TrackerConfig struct {
	// SlidingKeyInput allows sliding from key to key for every pointer.
	SlidingKeyInput bool

	// A down event within TouchNoiseThresholdMillis of the previous up and
	// within TouchNoiseThresholdDistance of its position is taken for noise
	// and its gesture ignored.
	TouchNoiseThresholdMillis   int64
	TouchNoiseThresholdDistance float64
}

// Tracker follows one pointer through its gestures and reports key actions
// to a Listener.
//
// A Tracker outlives single gestures (so that it can filter touch noise
// between them), but its key state is reset on every down event.
type Tracker struct {
	id       PointerID
	state    *KeyState
	detector detect.Detector
	layout   *keyboard.Layout
	listener Listener
	config   TrackerConfig
	logger   zerolog.Logger

	hysteresisSquared    int
	quarterWidthSquared  int
	noiseDistanceSquared int

	hasBeenUp           bool
	alreadyProcessed    bool
	inSlidingKeyInput   bool
	allowedSlidingInput bool
}

// NewTracker returns a tracker for the given pointer.
func NewTracker(id PointerID, detector detect.Detector, layout *keyboard.Layout, listener Listener, config TrackerConfig, logger zerolog.Logger) *Tracker {
	if listener == nil {
		listener = NopListener{}
	}
	t := &Tracker{
		id:                   id,
		state:                NewKeyState(detector, layout),
		detector:             detector,
		listener:             listener,
		config:               config,
		logger:               logger.With().Int("pointer", int(id)).Logger(),
		hysteresisSquared:    detector.Config().HysteresisDistanceSquared(),
		noiseDistanceSquared: int(config.TouchNoiseThresholdDistance * config.TouchNoiseThresholdDistance),
	}
	t.SetLayout(layout)
	return t
}

// SetLayout replaces the layout the pointer is tracked on.
func (t *Tracker) SetLayout(layout *keyboard.Layout) {
	t.state.SetLayout(layout)
	t.layout = layout
	quarterWidth := layout.MostCommonKeyWidth() / 4
	t.quarterWidthSquared = quarterWidth * quarterWidth
}

// ID returns the id of the tracked pointer.
func (t *Tracker) ID() PointerID { return t.id }

// Key returns the currently tracked key.
func (t *Tracker) Key() keyboard.MaybeKey { return t.state.Key() }

// LastX returns the last observed x-coordinate of the pointer.
func (t *Tracker) LastX() int { return t.state.LastX() }

// LastY returns the last observed y-coordinate of the pointer.
func (t *Tracker) LastY() int { return t.state.LastY() }

// DownTime returns the time of the pointer's last down event.
func (t *Tracker) DownTime() int64 { return t.state.DownTime() }

// IsInSlidingKeyInput reports whether the pointer has slid off the key it
// went down on during the current gesture.
func (t *Tracker) IsInSlidingKeyInput() bool { return t.inSlidingKeyInput }

// IsModifier reports whether the pointer tracks a modifier key.
func (t *Tracker) IsModifier() bool {
	return t.isModifierKey(t.state.Key())
}

func (t *Tracker) isModifierKey(m keyboard.MaybeKey) bool {
	k, ok := t.layout.Lookup(m)
	return ok && k.Code.IsModifierCode()
}

// IsOnModifierKey reports whether the given point resolves to a modifier
// key.
func (t *Tracker) IsOnModifierKey(x, y int) bool {
	return t.isModifierKey(t.detector.Resolve(t.layout, x, y, false).Key)
}

// OnDownEvent handles the pointer touching down.
func (t *Tracker) OnDownEvent(x, y int, eventTime int64) {
	t.logger.Debug().Int("x", x).Int("y", y).Int64("t", eventTime).Msg("down")

	if t.IsTouchNoise(x, y, eventTime) {
		t.logger.Debug().Int64("dt", eventTime-t.state.UpTime()).Msg("ignoring potential touch noise")
		t.alreadyProcessed = true
		return
	}

	t.onDownEventInternal(x, y, eventTime)
}

// IsTouchNoise reports whether a down event at the point would be taken for
// noise, i.e. it comes too soon after and too close to the pointer's last
// reported release.
func (t *Tracker) IsTouchNoise(x, y int, eventTime int64) bool {
	if !t.hasBeenUp || eventTime-t.state.UpTime() >= t.config.TouchNoiseThresholdMillis {
		return false
	}
	dx := x - t.state.LastX()
	dy := y - t.state.LastY()
	return dx*dx+dy*dy < t.noiseDistanceSquared
}

func (t *Tracker) onDownEventInternal(x, y int, eventTime int64) {
	key := t.state.OnDown(x, y, eventTime)
	t.allowedSlidingInput = t.config.SlidingKeyInput || t.isModifierKey(key) || t.detector.AllowsSlidingInput()
	t.alreadyProcessed = false
	t.inSlidingKeyInput = false
	if !key.IsNone() {
		t.callListenerOnPress(key, false)
	}
}

// OnMoveEvent handles the pointer moving.
func (t *Tracker) OnMoveEvent(x, y int, eventTime int64) {
	t.logger.Trace().Int("x", x).Int("y", y).Int64("t", eventTime).Msg("move")
	if t.alreadyProcessed {
		return
	}

	lastX, lastY := t.state.LastX(), t.state.LastY()
	key := t.state.OnMove(x, y)
	oldKey := t.state.Key()

	switch {
	case !key.IsNone() && oldKey.IsNone():
		// slid onto a key from off any key
		t.callListenerOnPress(key, false)
		t.state.OnMoveToNewKey(key, x, y)

	case !key.IsNone() && !t.isMinorMoveBounce(x, y, key):
		// slid from one key onto another
		t.inSlidingKeyInput = true
		t.callListenerOnRelease(oldKey, true)
		if t.allowedSlidingInput {
			t.callListenerOnPress(key, true)
			t.state.OnMoveToNewKey(key, x, y)
			return
		}
		// some touch panels report quick successive touches as a sudden move
		dx, dy := x-lastX, y-lastY
		if dx*dx+dy*dy >= t.quarterWidthSquared {
			t.logger.Debug().
				Int("fromX", lastX).Int("fromY", lastY).Int("toX", x).Int("toY", y).
				Msg("translating sudden move to up and down")
			t.onUpEventInternal(lastX, lastY, eventTime)
			t.onDownEventInternal(x, y, eventTime)
		} else {
			t.alreadyProcessed = true
		}

	case key.IsNone() && !oldKey.IsNone() && !t.isMinorMoveBounce(x, y, key):
		// slid off a key onto no key
		t.inSlidingKeyInput = true
		t.callListenerOnRelease(oldKey, true)
		if t.allowedSlidingInput {
			t.state.OnMoveToNewKey(keyboard.NoKey, x, y)
		} else {
			t.alreadyProcessed = true
		}
	}
}

// OnUpEvent handles the pointer being lifted.
func (t *Tracker) OnUpEvent(x, y int, eventTime int64) {
	t.logger.Debug().Int("x", x).Int("y", y).Int64("t", eventTime).Msg("up")
	t.onUpEventInternal(x, y, eventTime)
}

// OnUpEventForRelease lifts the pointer on behalf of another pointer, e.g.
// when a newer pointer's release finishes all older gestures.
func (t *Tracker) OnUpEventForRelease(x, y int, eventTime int64) {
	t.logger.Debug().Int("x", x).Int("y", y).Int64("t", eventTime).Msg("released by other pointer")
	t.onUpEventInternal(x, y, eventTime)
}

func (t *Tracker) onUpEventInternal(x, y int, eventTime int64) {
	t.inSlidingKeyInput = false
	if t.alreadyProcessed {
		return
	}

	t.hasBeenUp = true
	key := t.state.OnUp(x, y, eventTime)
	// the up stops tracking, so this only holds for a release off all keys
	if t.isMinorMoveBounce(x, y, key) {
		key, x, y = t.state.Key(), t.state.KeyX(), t.state.KeyY()
	}
	t.detectAndSendKey(key, x, y)
}

// OnCancelEvent abandons the pointer's gesture without reporting anything.
func (t *Tracker) OnCancelEvent() {
	t.logger.Debug().Msg("cancel")
	t.inSlidingKeyInput = false
	t.alreadyProcessed = true
	t.state.OnMoveToNewKey(keyboard.NoKey, t.state.LastX(), t.state.LastY())
}

// isMinorMoveBounce reports whether a move to newKey at the point is too
// small to leave the tracked key.
func (t *Tracker) isMinorMoveBounce(x, y int, newKey keyboard.MaybeKey) bool {
	current := t.state.Key()
	if newKey == current {
		return true
	}
	k, ok := t.layout.Lookup(current)
	if !ok {
		return false
	}
	return k.SquaredDistanceToEdge(x, y) < t.hysteresisSquared
}

func (t *Tracker) detectAndSendKey(m keyboard.MaybeKey, x, y int) {
	k, ok := t.layout.Lookup(m)
	if !ok {
		t.logger.Trace().Msg("cancel input")
		t.listener.OnCancelInput()
		return
	}
	if k.Disabled {
		return
	}

	if k.OutputText != "" {
		t.logger.Trace().Str("text", k.OutputText).Msg("text input")
		t.listener.OnTextInput(k.OutputText)
		t.listener.OnRelease(k.Code, false)
		return
	}

	code := k.Code
	codes := t.detector.Resolve(t.layout, x, y, true).Nearby
	// the primary code may rank second if the pointer bounced back onto its
	// key
	if len(codes) >= 2 && codes[0] != code && codes[1] == code {
		codes[0], codes[1] = code, codes[0]
	}
	t.logger.Trace().Stringer("code", code).Int("nearby", len(codes)).Msg("code input")
	t.listener.OnCodeInput(code, codes, x, y)
	t.listener.OnRelease(code, false)
}

func (t *Tracker) callListenerOnPress(m keyboard.MaybeKey, withSliding bool) {
	k, ok := t.layout.Lookup(m)
	if !ok || k.Disabled {
		return
	}
	t.logger.Trace().Stringer("code", k.Code).Bool("sliding", withSliding).Msg("press")
	t.listener.OnPress(k.Code, withSliding)
}

func (t *Tracker) callListenerOnRelease(m keyboard.MaybeKey, withSliding bool) {
	k, ok := t.layout.Lookup(m)
	if !ok || k.Disabled {
		return
	}
	t.logger.Trace().Stringer("code", k.Code).Bool("sliding", withSliding).Msg("release")
	t.listener.OnRelease(k.Code, withSliding)
}
