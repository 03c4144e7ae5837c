// Package detect resolves touch points to the keys of a keyboard layout.
package detect

import (
	"github.com/rs/zerolog"

	"github.com/ja-he/touchkey/internal/keyboard"
)

// Detector maps keyboard-local touch coordinates to a key of a layout.
//
// Implementations are pure: the result depends only on the layout, the
// coordinates and the detector's configuration, so a detector may be shared
// by any number of pointers.
type Detector interface {

	// Resolve returns the key at the given point (or NoKey) and, if requested,
	// the codes of nearby keys ranked by distance.
	// It is total over all coordinates; points off the layout simply resolve
	// to no key.
	Resolve(l *keyboard.Layout, x, y int, wantNearby bool) Result

	// MaxNearbyKeys returns the capacity of the detector's candidate ranking.
	MaxNearbyKeys() int

	// AllowsSlidingInput returns whether a pointer resolved by this detector
	// may always slide from key to key regardless of other settings.
	AllowsSlidingInput() bool

	// Config returns the configuration the detector was built with.
	Config() Config
}

// Config holds the scalars configuring a detector.
type Config struct {
	// HysteresisDistance is the distance a pointer has to move away from the
	// edge of its current key before another key is considered. Zero or
	// negative values make every move re-evaluate the key.
	HysteresisDistance float64

	// ProximityCorrection enables accepting keys near, but not under, the
	// touch point as candidates.
	ProximityCorrection bool

	// ProximityThreshold is the distance within which proximity correction
	// accepts a key. Zero selects the layout's search threshold.
	ProximityThreshold float64

	// CorrectionX and CorrectionY are added to every touch point before
	// resolution.
	CorrectionX, CorrectionY int

	// ClampToLayout moves corrected touch points into the layout bounds.
	ClampToLayout bool
}

// HysteresisDistanceSquared returns the squared hysteresis distance, or zero
// if it is not positive.
func (c Config) HysteresisDistanceSquared() int {
	if c.HysteresisDistance <= 0 {
		return 0
	}
	return int(c.HysteresisDistance * c.HysteresisDistance)
}

// Result is the outcome of resolving a touch point.
type Result struct {
	// Key is the key under the touch point, if any.
	Key keyboard.MaybeKey

	// Nearby holds the codes of the ranked candidates when requested.
	// The first slot always carries a code, NoCode if nothing qualified; later
	// slots only carry printable codes.
	Nearby []keyboard.Code

	// Candidates is the full ranking the result was derived from.
	Candidates CandidateBuffer
}

// base holds what all detectors share: their configuration and the
// correction and clamping of touch points.
type base struct {
	config Config
	logger zerolog.Logger
}

func (b *base) Config() Config { return b.config }

// touchPoint applies the configured correction (and clamping) to a raw
// point.
func (b *base) touchPoint(l *keyboard.Layout, x, y int) (int, int) {
	tx := x + b.config.CorrectionX
	ty := y + b.config.CorrectionY
	if b.config.ClampToLayout {
		tx, ty = l.Clamp(tx, ty)
	}
	return tx, ty
}

// nearbyCodes lists the codes of the buffered candidates in rank order.
// The first candidate's code is always listed, later non-printable codes
// are skipped.
func nearbyCodes(l *keyboard.Layout, buf *CandidateBuffer) []keyboard.Code {
	if buf.Len() == 0 {
		return []keyboard.Code{keyboard.NoCode}
	}
	codes := make([]keyboard.Code, 0, buf.Len())
	for pos := 0; pos < buf.Len(); pos++ {
		c, _ := buf.At(pos)
		code := l.Key(c.Key).Code
		if pos > 0 && !code.IsPrintable() {
			continue
		}
		codes = append(codes, code)
	}
	return codes
}
