package detect

import (
	"github.com/rs/zerolog"

	"github.com/ja-he/touchkey/internal/keyboard"
)

// DefaultMaxNearbyKeys is the number of candidates a ProximityDetector
// ranks.
const DefaultMaxNearbyKeys = MaxCapacity

// ProximityDetector is the default detector. It resolves the key under the
// touch point and ranks the keys around it for correction.
type ProximityDetector struct {
	base
}

// NewProximityDetector returns a ProximityDetector with the given
// configuration, logging to the given logger.
func NewProximityDetector(config Config, logger zerolog.Logger) *ProximityDetector {
	return &ProximityDetector{base{
		config: config,
		logger: logger.With().Str("detector", "proximity").Logger(),
	}}
}

// MaxNearbyKeys returns the capacity of the candidate ranking.
func (d *ProximityDetector) MaxNearbyKeys() int { return DefaultMaxNearbyKeys }

// AllowsSlidingInput returns false; sliding is governed by the pointer's
// configuration.
func (d *ProximityDetector) AllowsSlidingInput() bool { return false }

// Resolve ranks every key the layout's index lists for the touch point.
//
// A key qualifies if the point is on it or, with proximity correction, if it
// is within the threshold. The resolved key is the one that took the first
// rank while the point was on it: a key that is merely near ranks in the
// nearby list but never becomes the resolved key.
func (d *ProximityDetector) Resolve(l *keyboard.Layout, x, y int, wantNearby bool) Result {
	tx, ty := d.touchPoint(l, x, y)
	threshold := d.thresholdSquared(l)

	result := Result{
		Key:        keyboard.NoKey,
		Candidates: NewCandidateBuffer(DefaultMaxNearbyKeys),
	}
	for _, i := range l.NearestKeys(tx, ty) {
		k := l.Key(i)
		onKey := k.IsOnKey(tx, ty)
		distance := k.SquaredDistanceToEdge(tx, ty)
		if !onKey && !(d.config.ProximityCorrection && distance < threshold) {
			continue
		}
		pos := result.Candidates.Insert(Candidate{Key: i, Distance: distance, Inside: onKey})
		if pos == 0 && onKey {
			result.Key = keyboard.SomeKey(i)
		}
	}

	if wantNearby {
		result.Nearby = nearbyCodes(l, &result.Candidates)
	}

	d.logger.Trace().
		Int("x", x).Int("y", y).
		Str("key", result.Key.String()).
		Int("candidates", result.Candidates.Len()).
		Msg("resolved")
	return result
}

func (d *ProximityDetector) thresholdSquared(l *keyboard.Layout) int {
	if d.config.ProximityThreshold > 0 {
		return int(d.config.ProximityThreshold * d.config.ProximityThreshold)
	}
	return l.SearchThreshold()
}
