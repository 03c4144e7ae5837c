package config

// Default returns the default configuration, with the default stylesheet for
// the given colorscheme type (light or dark).
func Default(colorschemeType ColorschemeType) Config {
	return Config{
		Detector:   defaultDetector(),
		Layout:     defaultLayout(),
		Stylesheet: defaultStylesheet(colorschemeType),
	}
}

func defaultDetector() Detector {
	return Detector{
		HysteresisDistance:          ptr(6.0),
		ProximityCorrection:         ptr(true),
		ProximityThreshold:          ptr(0.0),
		CorrectionX:                 ptr(0),
		CorrectionY:                 ptr(0),
		ClampToLayout:               ptr(false),
		SlideAllowance:              ptr(20.0),
		SlidingKeyInput:             ptr(true),
		TouchNoiseThresholdMillis:   ptr(int64(40)),
		TouchNoiseThresholdDistance: ptr(12.0),
	}
}

func ptr[T any](v T) *T { return &v }

// defaultLayout is a small qwerty layout of 30x40 keys.
func defaultLayout() Layout {
	return Layout{
		Rows: []Row{
			{X: 0, Y: 0, Height: 40, KeyWidth: 30, Keys: "qwertyuiop"},
			{X: 15, Y: 40, Height: 40, KeyWidth: 30, Keys: "asdfghjkl"},
			{X: 45, Y: 80, Height: 40, KeyWidth: 30, Keys: "zxcvbnm"},
		},
		Keys: []KeySpec{
			{X: 0, Y: 80, Width: 45, Height: 40, Code: "<shift>", Modifier: true, Sticky: true},
			{X: 255, Y: 80, Width: 45, Height: 40, Code: "<delete>", Repeatable: true},
			{X: 0, Y: 120, Width: 45, Height: 40, Code: "<symbol>", Modifier: true},
			{X: 45, Y: 120, Width: 30, Height: 40, Code: ","},
			{X: 75, Y: 120, Width: 150, Height: 40, Code: "<space>", Repeatable: true},
			{X: 225, Y: 120, Width: 30, Height: 40, Code: "."},
			{X: 255, Y: 120, Width: 45, Height: 40, Code: "<enter>"},
		},
	}
}

func defaultStylesheet(colorschemeType ColorschemeType) Stylesheet {
	if colorschemeType == Light {
		return Stylesheet{
			Normal:            Styling{Fg: "#000000", Bg: "#ffffff", Style: &FontStyle{}},
			Key:               Styling{Fg: "#000000", Bg: "#f0f0f0", Style: &FontStyle{}},
			KeyModifier:       Styling{Fg: "#000000", Bg: "#cccccc", Style: &FontStyle{Bold: true}},
			KeyDisabled:       Styling{Fg: "#c0c0c0", Bg: "#f0f0f0", Style: &FontStyle{Italic: true}},
			KeyPressed:        Styling{Fg: "#ffffff", Bg: "#3a751a", Style: &FontStyle{Bold: true}},
			Candidate:         Styling{Fg: "#000000", Bg: "#c2edab", Style: &FontStyle{}},
			Touch:             Styling{Fg: "#ffffff", Bg: "#ff0000", Style: &FontStyle{Bold: true}},
			Status:            Styling{Fg: "#000000", Bg: "#f0f0f0", Style: &FontStyle{}},
			LogDefault:        Styling{Fg: "#000000", Bg: "#ffffff", Style: &FontStyle{}},
			LogEntryTypeError: Styling{Fg: "#882222", Bg: "#ffaaaa", Style: &FontStyle{Bold: true}},
			LogEntryTypeWarn:  Styling{Fg: "#cc8f00", Bg: "#fff0cc", Style: &FontStyle{Bold: true}},
			LogEntryTypeInfo:  Styling{Fg: "#3a751a", Bg: "#c2edab", Style: &FontStyle{Bold: true}},
			LogEntryTypeDebug: Styling{Fg: "#0065a3", Bg: "#ccebff", Style: &FontStyle{Bold: true}},
			LogEntryTypeTrace: Styling{Fg: "#a3008b", Bg: "#ffccf7", Style: &FontStyle{Bold: true}},
		}
	}
	return Stylesheet{
		Normal:            Styling{Fg: "#ffffff", Bg: "#000000", Style: &FontStyle{}},
		Key:               Styling{Fg: "#ffffff", Bg: "#303030", Style: &FontStyle{}},
		KeyModifier:       Styling{Fg: "#ffffff", Bg: "#505050", Style: &FontStyle{Bold: true}},
		KeyDisabled:       Styling{Fg: "#808080", Bg: "#202020", Style: &FontStyle{Italic: true}},
		KeyPressed:        Styling{Fg: "#ffffff", Bg: "#3a751a", Style: &FontStyle{Bold: true}},
		Candidate:         Styling{Fg: "#ffffff", Bg: "#0065a3", Style: &FontStyle{}},
		Touch:             Styling{Fg: "#ffffff", Bg: "#cc0000", Style: &FontStyle{Bold: true}},
		Status:            Styling{Fg: "#f0f0f0", Bg: "#000000", Style: &FontStyle{}},
		LogDefault:        Styling{Fg: "#ffffff", Bg: "#000000", Style: &FontStyle{}},
		LogEntryTypeError: Styling{Fg: "#ffaaaa", Bg: "#882222", Style: &FontStyle{Bold: true}},
		LogEntryTypeWarn:  Styling{Fg: "#fff0cc", Bg: "#cc8f00", Style: &FontStyle{Bold: true}},
		LogEntryTypeInfo:  Styling{Fg: "#c2edab", Bg: "#3a751a", Style: &FontStyle{Bold: true}},
		LogEntryTypeDebug: Styling{Fg: "#ccebff", Bg: "#0065a3", Style: &FontStyle{Bold: true}},
		LogEntryTypeTrace: Styling{Fg: "#ffccf7", Bg: "#a3008b", Style: &FontStyle{Bold: true}},
	}
}
