// Package styling provides the styles the playground renders with.
package styling

import (
	"fmt"

	"github.com/ja-he/touchkey/internal/config"
	"github.com/ja-he/touchkey/internal/keyboard"
)

// Stylesheet represents all styles used by the playground for rendering.
type Stylesheet struct {
	Normal DrawStyling

	Key         DrawStyling
	KeyModifier DrawStyling
	KeyDisabled DrawStyling
	KeyPressed  DrawStyling
	Candidate   DrawStyling
	Touch       DrawStyling

	Status DrawStyling

	LogDefault        DrawStyling
	LogEntryTypeError DrawStyling
	LogEntryTypeWarn  DrawStyling
	LogEntryTypeInfo  DrawStyling
	LogEntryTypeDebug DrawStyling
	LogEntryTypeTrace DrawStyling
}

// NewStylesheetFromConfig constructs a new stylesheet from a given config
// stylesheet.
func NewStylesheetFromConfig(c config.Stylesheet) (*Stylesheet, error) {
	stylesheet := Stylesheet{}

	for _, s := range []struct {
		name string
		dst  *DrawStyling
		src  config.Styling
	}{
		{"normal", &stylesheet.Normal, c.Normal},
		{"key", &stylesheet.Key, c.Key},
		{"key-modifier", &stylesheet.KeyModifier, c.KeyModifier},
		{"key-disabled", &stylesheet.KeyDisabled, c.KeyDisabled},
		{"key-pressed", &stylesheet.KeyPressed, c.KeyPressed},
		{"candidate", &stylesheet.Candidate, c.Candidate},
		{"touch", &stylesheet.Touch, c.Touch},
		{"status", &stylesheet.Status, c.Status},
		{"log-default", &stylesheet.LogDefault, c.LogDefault},
		{"log-entry-type-error", &stylesheet.LogEntryTypeError, c.LogEntryTypeError},
		{"log-entry-type-warn", &stylesheet.LogEntryTypeWarn, c.LogEntryTypeWarn},
		{"log-entry-type-info", &stylesheet.LogEntryTypeInfo, c.LogEntryTypeInfo},
		{"log-entry-type-debug", &stylesheet.LogEntryTypeDebug, c.LogEntryTypeDebug},
		{"log-entry-type-trace", &stylesheet.LogEntryTypeTrace, c.LogEntryTypeTrace},
	} {
		style, err := StyleFromConfig(s.src)
		if err != nil {
			return nil, fmt.Errorf("invalid styling '%s' (%w)", s.name, err)
		}
		*s.dst = style
	}

	return &stylesheet, nil
}

// KeyStyle returns the resting style of the given key.
func (s *Stylesheet) KeyStyle(k *keyboard.Key) DrawStyling {
	switch {
	case k.Disabled:
		return s.KeyDisabled
	case k.Modifier || k.Code.IsModifierCode():
		return s.KeyModifier
	default:
		return s.Key
	}
}

// CandidateStyle returns the style of the key at the given rank among count
// correction candidates: the first candidate in the full candidate style,
// later ones fading towards the resting key style.
func (s *Stylesheet) CandidateStyle(k *keyboard.Key, rank, count int) DrawStyling {
	base := s.KeyStyle(k)
	if rank < 0 || rank >= count {
		return base
	}
	return s.Candidate.BlendedWith(base, float64(rank)/float64(count))
}

// LogEntryType returns the style for a log entry of the given level.
func (s *Stylesheet) LogEntryType(level string) DrawStyling {
	switch level {
	case "error", "fatal", "panic":
		return s.LogEntryTypeError
	case "warn":
		return s.LogEntryTypeWarn
	case "info":
		return s.LogEntryTypeInfo
	case "debug":
		return s.LogEntryTypeDebug
	case "trace":
		return s.LogEntryTypeTrace
	default:
		return s.LogDefault
	}
}
