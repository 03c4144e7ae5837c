package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/ja-he/touchkey/internal/config"
	"github.com/ja-he/touchkey/internal/detect"
	"github.com/ja-he/touchkey/internal/keyboard"
	"github.com/ja-he/touchkey/internal/pointer"
)

func TestParseConfigAugmentDefaults(t *testing.T) {

	t.Run("empty input yields defaults", func(t *testing.T) {
		c, err := config.ParseConfigAugmentDefaults(config.Dark, []byte{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		expected := detect.Config{HysteresisDistance: 6, ProximityCorrection: true}
		if diff := cmp.Diff(expected, c.DetectorConfig()); diff != "" {
			t.Errorf("unexpected detector config (-want +got):\n%s", diff)
		}
		expectedTracker := pointer.TrackerConfig{SlidingKeyInput: true, TouchNoiseThresholdMillis: 40, TouchNoiseThresholdDistance: 12}
		if diff := cmp.Diff(expectedTracker, c.TrackerConfig()); diff != "" {
			t.Errorf("unexpected tracker config (-want +got):\n%s", diff)
		}
		if c.SlideAllowance() != 20 {
			t.Errorf("slide allowance %f", c.SlideAllowance())
		}
	})

	t.Run("detector values override individually", func(t *testing.T) {
		c, err := config.ParseConfigAugmentDefaults(config.Dark, []byte(`
detector:
  hysteresis-distance: 0
  correction-y: -4
  sliding-key-input: false
`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		d := c.DetectorConfig()
		if d.HysteresisDistance != 0 || d.CorrectionY != -4 || !d.ProximityCorrection {
			t.Errorf("unexpected detector config %+v", d)
		}
		if c.TrackerConfig().SlidingKeyInput {
			t.Error("sliding key input not overridden")
		}
		if c.TrackerConfig().TouchNoiseThresholdMillis != 40 {
			t.Error("unset value lost its default")
		}
	})

	t.Run("defaults are not aliased", func(t *testing.T) {
		a, _ := config.ParseConfigAugmentDefaults(config.Dark, []byte("detector: {hysteresis-distance: 1}"))
		b, _ := config.ParseConfigAugmentDefaults(config.Dark, []byte{})
		if a.DetectorConfig().HysteresisDistance != 1 || b.DetectorConfig().HysteresisDistance != 6 {
			t.Error("augmenting one config changed another")
		}
	})

	t.Run("stylesheet", func(t *testing.T) {
		c, err := config.ParseConfigAugmentDefaults(config.Light, []byte(`
stylesheet:
  key: {fg: "#111111", bg: "#eeeeee"}
  candidate: {fg: "#000000"}
  touch: {style: {italic: true}}
`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Stylesheet.Key.Fg != "#111111" || c.Stylesheet.Key.Bg != "#eeeeee" {
			t.Errorf("key styling not overridden: %+v", c.Stylesheet.Key)
		}
		if c.Stylesheet.Candidate.Bg != config.Default(config.Light).Stylesheet.Candidate.Bg {
			t.Error("incomplete color pair overrode defaults")
		}
		if !c.Stylesheet.Touch.Style.Italic || c.Stylesheet.Touch.Style.Bold {
			t.Errorf("font style not overridden: %+v", *c.Stylesheet.Touch.Style)
		}
		if config.Default(config.Light).Stylesheet.Touch.Style.Italic {
			t.Error("default font style modified")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := config.ParseConfigAugmentDefaults(config.Dark, []byte("detector: ["))
		if err == nil {
			t.Error("no error for invalid yaml")
		}
	})
}

func TestBuildLayout(t *testing.T) {

	t.Run("default layout", func(t *testing.T) {
		c := config.Default(config.Dark)
		l, err := c.BuildLayout()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if l.Len() != 33 {
			t.Errorf("expected 33 keys, got %d", l.Len())
		}
		if l.Width() != 300 || l.Height() != 160 {
			t.Errorf("unexpected bounds %dx%d", l.Width(), l.Height())
		}
		if l.MostCommonKeyWidth() != 30 {
			t.Errorf("unexpected most common key width %d", l.MostCommonKeyWidth())
		}

		q := l.Key(0)
		if q.Code != 'q' || q.Label != "q" || q.Edges != keyboard.EdgeLeft|keyboard.EdgeTop {
			t.Errorf("unexpected first key %+v", q)
		}
		p := l.Key(9)
		if p.Code != 'p' || p.Edges != keyboard.EdgeRight|keyboard.EdgeTop {
			t.Errorf("unexpected last key of first row %+v", p)
		}
		a := l.Key(10)
		if a.Code != 'a' || a.X != 15 || a.Edges != 0 {
			t.Errorf("unexpected first key of second row %+v", a)
		}

		shift := l.Key(26)
		if shift.Code != keyboard.CodeShift || !shift.Modifier || !shift.Sticky || shift.Label != "shift" {
			t.Errorf("unexpected shift key %+v", shift)
		}
		space := l.Key(30)
		if space.Code != keyboard.CodeSpace || space.Label != "space" || space.Edges != keyboard.EdgeBottom {
			t.Errorf("unexpected space key %+v", space)
		}
	})

	t.Run("explicit keys", func(t *testing.T) {
		c, err := config.ParseConfigAugmentDefaults(config.Dark, []byte(`
layout:
  grid-width: 4
  grid-height: 2
  keys:
    - {x: 0, y: 0, width: 10, height: 10, code: "a", edges: []}
    - {x: 10, y: 0, width: 20, height: 10, code: "<-20>", text: ".com", disabled: true}
    - {x: 0, y: 10, width: 30, height: 10, code: "<enter>", label: "ret", edges: [bottom]}
`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		l, err := c.BuildLayout()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		expected := []keyboard.Key{
			{X: 0, Y: 0, Width: 10, Height: 10, Code: 'a', Label: "a"},
			{X: 10, Y: 0, Width: 20, Height: 10, Code: -20, Label: ".com", OutputText: ".com", Disabled: true, Edges: keyboard.EdgeTop | keyboard.EdgeRight},
			{X: 0, Y: 10, Width: 30, Height: 10, Code: keyboard.CodeEnter, Label: "ret", Edges: keyboard.EdgeBottom},
		}
		if diff := cmp.Diff(expected, l.Keys()); diff != "" {
			t.Errorf("unexpected keys (-want +got):\n%s", diff)
		}
	})

	t.Run("explicit bounds", func(t *testing.T) {
		layout := config.Layout{
			Width: 100, Height: 50,
			Keys: []config.KeySpec{{X: 0, Y: 0, Width: 10, Height: 10, Code: "x"}},
		}
		l, err := layout.Build()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if l.Width() != 100 || l.Height() != 50 {
			t.Errorf("unexpected bounds %dx%d", l.Width(), l.Height())
		}
		if l.Key(0).Edges != keyboard.EdgeLeft|keyboard.EdgeTop {
			t.Errorf("unexpected edges %v", l.Key(0).Edges)
		}
	})

	for _, tc := range []struct {
		name   string
		layout config.Layout
	}{
		{"no keys", config.Layout{}},
		{"bad code", config.Layout{Keys: []config.KeySpec{{Width: 1, Height: 1, Code: "<nope>"}}}},
		{"empty code", config.Layout{Keys: []config.KeySpec{{Width: 1, Height: 1}}}},
		{"negative extent", config.Layout{Keys: []config.KeySpec{{Width: -1, Height: 1, Code: "a"}}}},
		{"bad edge", config.Layout{Keys: []config.KeySpec{{Width: 1, Height: 1, Code: "a", Edges: []string{"middle"}}}}},
		{"row without extent", config.Layout{Rows: []config.Row{{Keys: "abc"}}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.layout.Build(); err == nil {
				t.Error("no error for invalid layout")
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("TOUCHKEY_HOME", "/tmp/touchkey/")
	if p := config.DefaultPath(); p != "/tmp/touchkey/config.yaml" {
		t.Errorf("unexpected path '%s'", p)
	}
	t.Setenv("TOUCHKEY_HOME", "")
	t.Setenv("HOME", "/home/someone")
	if p := config.DefaultPath(); p != "/home/someone/.config/touchkey/config.yaml" {
		t.Errorf("unexpected path '%s'", p)
	}
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("detector: {hysteresis-distance: 1}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w := config.NewWatcher(path, config.Dark, zerolog.Nop())
	w.SetDebounceDelay(10 * time.Millisecond)
	reloaded := make(chan config.Config, 1)
	w.OnChange(func(c config.Config) {
		select {
		case reloaded <- c:
		default:
		}
	})
	if err := w.Watch(); err != nil {
		t.Fatalf("could not watch: %v", err)
	}
	defer w.Close()

	// unrelated files in the same directory are ignored
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("detector: {hysteresis-distance: 2}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-reloaded:
		if c.DetectorConfig().HysteresisDistance != 2 {
			t.Errorf("reloaded stale config %+v", c.DetectorConfig())
		}
	case err := <-w.Errors():
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("config not reloaded")
	}
}
