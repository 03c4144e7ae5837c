package styling

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ja-he/touchkey/internal/config"
	"github.com/ja-he/touchkey/internal/keyboard"
)

func TestLighten(t *testing.T) {
	gray := colorful.Color{R: float64(0x80) / 255.0, G: float64(0x80) / 255.0, B: float64(0x80) / 255.0}
	navy := colorful.Color{R: float64(0x12) / 255.0, G: float64(0x34) / 255.0, B: float64(0x56) / 255.0}

	for _, tc := range []struct {
		name     string
		input    colorful.Color
		pct      int
		expected colorful.Color
	}{
		{"0% -> no change", navy, 0, navy},
		{"100% -> white", navy, 100, colorful.Color{R: 1, G: 1, B: 1}},
		{"50% -> 50% lighter", gray, 50, colorful.Color{R: float64(0xc0) / 255.0, G: float64(0xc0) / 255.0, B: float64(0xc0) / 255.0}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			result := lightenColorfulColor(tc.input, tc.pct)
			if !result.AlmostEqualRgb(tc.expected) {
				t.Errorf("%s instead of %s", result.Hex(), tc.expected.Hex())
			}
		})
	}

	t.Run("75% lighter <=> 50% lighter then 50% lighter again", func(t *testing.T) {
		a := lightenColorfulColor(gray, 75)
		b := lightenColorfulColor(lightenColorfulColor(gray, 50), 50)
		if !a.AlmostEqualRgb(b) {
			t.Errorf("%s != %s (dist: %f)", a.Hex(), b.Hex(), a.DistanceRgb(b))
		}
	})

	t.Run("100% darker -> black", func(t *testing.T) {
		result := darkenColorfulColor(navy, 100)
		if !result.AlmostEqualRgb(colorful.Color{}) {
			t.Errorf("%s instead of black", result.Hex())
		}
	})
}

func TestStyleFromConfig(t *testing.T) {
	s, err := StyleFromConfig(config.Styling{Fg: "#ff0000", Bg: "#fff", Style: &config.FontStyle{Bold: true}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fg, bg, attrs := s.AsTcell().Decompose()
	if fg != tcell.NewHexColor(0xff0000) || bg != tcell.NewHexColor(0xffffff) {
		t.Errorf("unexpected colors %v / %v", fg, bg)
	}
	if attrs&tcell.AttrBold == 0 {
		t.Error("not bold")
	}

	if _, err := StyleFromConfig(config.Styling{Fg: "red", Bg: "#000000"}); err == nil {
		t.Error("no error for invalid color")
	}
}

func TestStylesheet(t *testing.T) {
	for _, theme := range []config.ColorschemeType{config.Dark, config.Light} {
		if _, err := NewStylesheetFromConfig(config.Default(theme).Stylesheet); err != nil {
			t.Errorf("default stylesheet %d invalid: %v", theme, err)
		}
	}

	c := config.Default(config.Dark).Stylesheet
	c.Touch.Bg = "#zzzzzz"
	if _, err := NewStylesheetFromConfig(c); err == nil {
		t.Error("no error for invalid stylesheet")
	}

	s, _ := NewStylesheetFromConfig(config.Default(config.Dark).Stylesheet)

	t.Run("key styles", func(t *testing.T) {
		if s.KeyStyle(&keyboard.Key{Code: 'a'}) != s.Key {
			t.Error("plain key not in key style")
		}
		if s.KeyStyle(&keyboard.Key{Code: keyboard.CodeShift}) != s.KeyModifier {
			t.Error("shift key not in modifier style")
		}
		if s.KeyStyle(&keyboard.Key{Code: keyboard.CodeShift, Disabled: true}) != s.KeyDisabled {
			t.Error("disabled key not in disabled style")
		}
	})

	t.Run("candidate styles fade with rank", func(t *testing.T) {
		k := &keyboard.Key{Code: 'a'}
		if s.CandidateStyle(k, 0, 3) != s.Candidate {
			t.Error("first candidate not in candidate style")
		}
		if s.CandidateStyle(k, 3, 3) != s.Key {
			t.Error("non-candidate not in key style")
		}
		first := s.CandidateStyle(k, 1, 3).bg.DistanceLab(s.Key.bg)
		second := s.CandidateStyle(k, 2, 3).bg.DistanceLab(s.Key.bg)
		if !(second < first) {
			t.Errorf("later candidate not closer to key style (%f >= %f)", second, first)
		}
	})

	t.Run("log levels", func(t *testing.T) {
		if s.LogEntryType("warn") != s.LogEntryTypeWarn || s.LogEntryType("fatal") != s.LogEntryTypeError || s.LogEntryType("") != s.LogDefault {
			t.Error("unexpected log entry styles")
		}
	})
}
