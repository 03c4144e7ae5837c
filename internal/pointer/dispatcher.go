package pointer

import (
	"github.com/rs/zerolog"

	"github.com/ja-he/touchkey/internal/detect"
	"github.com/ja-he/touchkey/internal/keyboard"
)

// Dispatcher routes touch events to the Trackers of their pointers and
// orders the gestures of concurrently active pointers.
//
// Pressing a modifier key finishes all other active gestures, as does
// lifting a pointer tracking a modifier key; lifting any other pointer
// finishes all older gestures, except those holding a modifier key.
//
// A Dispatcher is driven from a single goroutine.
type Dispatcher struct {
	detector detect.Detector
	layout   *keyboard.Layout
	listener Listener
	config   TrackerConfig
	logger   zerolog.Logger

	trackers map[PointerID]*Tracker
	// active pointers, oldest first
	queue []*Tracker
}

// NewDispatcher returns a dispatcher creating trackers with the given
// parameters.
func NewDispatcher(detector detect.Detector, layout *keyboard.Layout, listener Listener, config TrackerConfig, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		detector: detector,
		layout:   layout,
		listener: listener,
		config:   config,
		logger:   logger,
		trackers: map[PointerID]*Tracker{},
	}
}

// SetLayout replaces the layout for all current and future pointers.
func (d *Dispatcher) SetLayout(layout *keyboard.Layout) {
	d.layout = layout
	for _, t := range d.trackers {
		t.SetLayout(layout)
	}
}

// Layout returns the current layout.
func (d *Dispatcher) Layout() *keyboard.Layout { return d.layout }

// Tracker returns the tracker of the given pointer, if one was created.
func (d *Dispatcher) Tracker(id PointerID) (*Tracker, bool) {
	t, ok := d.trackers[id]
	return t, ok
}

// ActivePointers returns the ids of the pointers currently down, oldest
// first.
func (d *Dispatcher) ActivePointers() []PointerID {
	ids := make([]PointerID, 0, len(d.queue))
	for _, t := range d.queue {
		ids = append(ids, t.ID())
	}
	return ids
}

// HandleEvent processes a single touch event.
func (d *Dispatcher) HandleEvent(e Event) {
	switch e.Phase {

	case Down:
		t := d.tracker(e.Pointer)
		d.remove(t)
		// a gesture taken for noise neither joins nor finishes other gestures
		if !t.IsTouchNoise(e.X, e.Y, e.Time) {
			if t.IsOnModifierKey(e.X, e.Y) {
				d.releaseAllExcept(nil, e.Time)
			}
			d.queue = append(d.queue, t)
		}
		t.OnDownEvent(e.X, e.Y, e.Time)

	case Move:
		t, ok := d.active(e.Pointer)
		if !ok {
			d.logger.Debug().Int("pointer", int(e.Pointer)).Msg("ignoring move of inactive pointer")
			return
		}
		t.OnMoveEvent(e.X, e.Y, e.Time)

	case Up:
		t, ok := d.active(e.Pointer)
		if !ok {
			d.logger.Debug().Int("pointer", int(e.Pointer)).Msg("ignoring up of inactive pointer")
			return
		}
		if t.IsModifier() {
			d.releaseAllExcept(t, e.Time)
		} else {
			d.releaseAllOlderThan(t, e.Time)
		}
		d.remove(t)
		t.OnUpEvent(e.X, e.Y, e.Time)

	case Cancel:
		t, ok := d.active(e.Pointer)
		if !ok {
			return
		}
		d.remove(t)
		t.OnCancelEvent()

	default:
		d.logger.Warn().Int("phase", int(e.Phase)).Msg("ignoring event of unknown phase")
	}
}

func (d *Dispatcher) tracker(id PointerID) *Tracker {
	t, ok := d.trackers[id]
	if !ok {
		t = NewTracker(id, d.detector, d.layout, d.listener, d.config, d.logger)
		d.trackers[id] = t
	}
	return t
}

func (d *Dispatcher) active(id PointerID) (*Tracker, bool) {
	for _, t := range d.queue {
		if t.ID() == id {
			return t, true
		}
	}
	return nil, false
}

func (d *Dispatcher) remove(t *Tracker) {
	for i := range d.queue {
		if d.queue[i] == t {
			d.queue = append(d.queue[:i], d.queue[i+1:]...)
			return
		}
	}
}

// releaseAllExcept lifts every active pointer other than the given one.
func (d *Dispatcher) releaseAllExcept(except *Tracker, eventTime int64) {
	remaining := d.queue[:0]
	for _, t := range d.queue {
		if t == except {
			remaining = append(remaining, t)
			continue
		}
		t.OnUpEventForRelease(t.LastX(), t.LastY(), eventTime)
	}
	d.queue = remaining
}

// releaseAllOlderThan lifts every pointer that went down before the given
// one, except those tracking a modifier key.
func (d *Dispatcher) releaseAllOlderThan(tracker *Tracker, eventTime int64) {
	remaining := d.queue[:0]
	older := true
	for _, t := range d.queue {
		if t == tracker {
			older = false
		}
		if !older || t.IsModifier() {
			remaining = append(remaining, t)
			continue
		}
		t.OnUpEventForRelease(t.LastX(), t.LastY(), eventTime)
	}
	d.queue = remaining
}
