package replay

import (
	"github.com/rs/zerolog"

	"github.com/ja-he/touchkey/internal/detect"
	"github.com/ja-he/touchkey/internal/keyboard"
	"github.com/ja-he/touchkey/internal/pointer"
)

// Run feeds the events, in order, to the dispatcher.
func Run(d *pointer.Dispatcher, events []pointer.Event, logger zerolog.Logger) {
	for i, e := range events {
		logger.Trace().
			Int("index", i).
			Int("pointer", int(e.Pointer)).
			Stringer("phase", e.Phase).
			Int("x", e.X).Int("y", e.Y).Int64("t", e.Time).
			Msg("replaying event")
		d.HandleEvent(e)
	}
}

// Replay runs the events against a fresh dispatcher on the given layout and
// returns the transcript of the resulting key actions.
func Replay(events []pointer.Event, layout *keyboard.Layout, detector detect.Detector, config pointer.TrackerConfig, logger zerolog.Logger) []string {
	transcript := &Transcript{}
	d := pointer.NewDispatcher(detector, layout, transcript, config, logger)
	Run(d, events, logger)
	if active := d.ActivePointers(); len(active) > 0 {
		logger.Warn().Interface("pointers", active).Msg("script ended with pointers still down")
	}
	return transcript.Lines()
}
