package detect

import (
	"github.com/rs/zerolog"

	"github.com/ja-he/touchkey/internal/keyboard"
)

// MoreKeysDetector resolves touch points on secondary key panels (e.g. the
// panel of alternative characters shown on long press), where only the
// single nearest key matters and sliding is always allowed.
type MoreKeysDetector struct {
	base
	slideAllowanceSquared    int
	slideAllowanceSquaredTop int
}

// NewMoreKeysDetector returns a MoreKeysDetector accepting keys within the
// given slide allowance.
func NewMoreKeysDetector(config Config, slideAllowance float64, logger zerolog.Logger) *MoreKeysDetector {
	allowanceSquared := int(slideAllowance * slideAllowance)
	return &MoreKeysDetector{
		base: base{
			config: config,
			logger: logger.With().Str("detector", "more-keys").Logger(),
		},
		slideAllowanceSquared: allowanceSquared,
		// the top allowance is sqrt(2) times as long as the other edges'
		slideAllowanceSquaredTop: allowanceSquared * 2,
	}
}

// MaxNearbyKeys returns 1.
func (d *MoreKeysDetector) MaxNearbyKeys() int { return 1 }

// AllowsSlidingInput returns true.
func (d *MoreKeysDetector) AllowsSlidingInput() bool { return true }

// Resolve returns the key nearest to the touch point within the slide
// allowance. Above the panel's top edge (y < 0) the squared allowance is
// doubled.
func (d *MoreKeysDetector) Resolve(l *keyboard.Layout, x, y int, wantNearby bool) Result {
	tx, ty := d.touchPoint(l, x, y)

	nearest := keyboard.NoKey
	nearestDistance := d.slideAllowanceSquared
	if y < 0 {
		nearestDistance = d.slideAllowanceSquaredTop
	}
	for i := 0; i < l.Len(); i++ {
		k := l.Key(keyboard.KeyIndex(i))
		if distance := k.SquaredDistanceToEdge(tx, ty); distance < nearestDistance {
			nearest = keyboard.SomeKey(keyboard.KeyIndex(i))
			nearestDistance = distance
		}
	}

	result := Result{Key: nearest, Candidates: NewCandidateBuffer(1)}
	if i, ok := nearest.Get(); ok {
		k := l.Key(i)
		result.Candidates.Insert(Candidate{Key: i, Distance: nearestDistance, Inside: k.IsOnKey(tx, ty)})
	}
	if wantNearby {
		result.Nearby = nearbyCodes(l, &result.Candidates)
	}

	d.logger.Trace().
		Int("x", x).Int("y", y).
		Str("key", nearest.String()).
		Msg("resolved")
	return result
}
