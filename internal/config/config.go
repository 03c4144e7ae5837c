// Package config provides the configuration of touchkey: detector tuning,
// the keyboard layout and the playground's stylesheet, as present in a
// config file at '${TOUCHKEY_HOME}/config.yaml'.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ja-he/touchkey/internal/detect"
	"github.com/ja-he/touchkey/internal/pointer"
)

// Config is the configuration data as present in a config file.
type Config struct {
	Detector   Detector   `yaml:"detector"`
	Layout     Layout     `yaml:"layout"`
	Stylesheet Stylesheet `yaml:"stylesheet"`
}

// Detector is the detector and pointer tracking tuning defined in a config
// file.
//
// Fields are pointers so that a file can set any of them to zero while
// leaving the others at their defaults.
type Detector struct {
	HysteresisDistance  *float64 `yaml:"hysteresis-distance,omitempty"`
	ProximityCorrection *bool    `yaml:"proximity-correction,omitempty"`
	ProximityThreshold  *float64 `yaml:"proximity-threshold,omitempty"`
	CorrectionX         *int     `yaml:"correction-x,omitempty"`
	CorrectionY         *int     `yaml:"correction-y,omitempty"`
	ClampToLayout       *bool    `yaml:"clamp-to-layout,omitempty"`

	// SlideAllowance is the distance a pointer may leave a more-keys panel
	// without losing its key.
	SlideAllowance *float64 `yaml:"slide-allowance,omitempty"`

	SlidingKeyInput             *bool    `yaml:"sliding-key-input,omitempty"`
	TouchNoiseThresholdMillis   *int64   `yaml:"touch-noise-threshold-millis,omitempty"`
	TouchNoiseThresholdDistance *float64 `yaml:"touch-noise-threshold-distance,omitempty"`
}

// A Stylesheet is the stylesheet contents defined in a config file.
type Stylesheet struct {
	Normal      Styling `yaml:"normal"`
	Key         Styling `yaml:"key"`
	KeyModifier Styling `yaml:"key-modifier"`
	KeyDisabled Styling `yaml:"key-disabled"`
	KeyPressed  Styling `yaml:"key-pressed"`
	Candidate   Styling `yaml:"candidate"`
	Touch       Styling `yaml:"touch"`
	Status      Styling `yaml:"status"`

	LogDefault        Styling `yaml:"log-default"`
	LogEntryTypeError Styling `yaml:"log-entry-type-error"`
	LogEntryTypeWarn  Styling `yaml:"log-entry-type-warn"`
	LogEntryTypeInfo  Styling `yaml:"log-entry-type-info"`
	LogEntryTypeDebug Styling `yaml:"log-entry-type-debug"`
	LogEntryTypeTrace Styling `yaml:"log-entry-type-trace"`
}

// A Styling is a styling as defined in a config file.
// It must contain fore- and background colors and can optionally specify font
// style (bold, italic, underlined).
type Styling struct {
	Fg    string     `yaml:"fg"`
	Bg    string     `yaml:"bg"`
	Style *FontStyle `yaml:"style"`
}

// A FontStyle can be any combination of bold, italic, and underlined.
type FontStyle struct {
	Bold       bool `yaml:"bold,omitempty"`
	Italic     bool `yaml:"italic,omitempty"`
	Underlined bool `yaml:"underlined,omitempty"`
}

// ParseConfigAugmentDefaults parses the configuration specified in
// YAML-formatted data and uses it to augment a given default configuration.
func ParseConfigAugmentDefaults(defaultTheme ColorschemeType, yamlData []byte) (Config, error) {
	defaultConfig := Default(defaultTheme)

	parsedConfig := Config{}
	err := yaml.Unmarshal(yamlData, &parsedConfig)
	if err != nil {
		return defaultConfig, fmt.Errorf("error unmarshaling yaml (%s)", err)
	}

	result := defaultConfig.augmentWith(parsedConfig)

	return result, nil
}

// Load reads the config file at the given path and augments the defaults
// with it.
func Load(defaultTheme ColorschemeType, path string) (Config, error) {
	yamlData, err := os.ReadFile(path)
	if err != nil {
		return Default(defaultTheme), fmt.Errorf("could not read config file '%s' (%w)", path, err)
	}
	return ParseConfigAugmentDefaults(defaultTheme, yamlData)
}

// DefaultPath returns the path of the config file, i.e.
// '${TOUCHKEY_HOME}/config.yaml', where TOUCHKEY_HOME defaults to
// '~/.config/touchkey'.
func DefaultPath() string {
	home := os.Getenv("TOUCHKEY_HOME")
	if home == "" {
		home = filepath.Join(os.Getenv("HOME"), ".config", "touchkey")
	} else {
		home = strings.TrimRight(home, "/")
	}
	return filepath.Join(home, "config.yaml")
}

func (base Config) augmentWith(augment Config) Config {
	result := base

	result.Detector = base.Detector.augmentWith(augment.Detector)
	result.Layout = base.Layout.augmentWith(augment.Layout)
	result.Stylesheet = base.Stylesheet.augmentWith(augment.Stylesheet)

	return result
}

func (base Detector) augmentWith(augment Detector) Detector {
	result := base

	overwriteIfDefined(&result.HysteresisDistance, augment.HysteresisDistance)
	overwriteIfDefined(&result.ProximityCorrection, augment.ProximityCorrection)
	overwriteIfDefined(&result.ProximityThreshold, augment.ProximityThreshold)
	overwriteIfDefined(&result.CorrectionX, augment.CorrectionX)
	overwriteIfDefined(&result.CorrectionY, augment.CorrectionY)
	overwriteIfDefined(&result.ClampToLayout, augment.ClampToLayout)
	overwriteIfDefined(&result.SlideAllowance, augment.SlideAllowance)
	overwriteIfDefined(&result.SlidingKeyInput, augment.SlidingKeyInput)
	overwriteIfDefined(&result.TouchNoiseThresholdMillis, augment.TouchNoiseThresholdMillis)
	overwriteIfDefined(&result.TouchNoiseThresholdDistance, augment.TouchNoiseThresholdDistance)

	return result
}

func overwriteIfDefined[T any](dst **T, augment *T) {
	if augment != nil {
		v := *augment
		*dst = &v
	}
}

func (base Stylesheet) augmentWith(augment Stylesheet) Stylesheet {
	result := base

	result.Normal.overwriteIfDefined(augment.Normal)
	result.Key.overwriteIfDefined(augment.Key)
	result.KeyModifier.overwriteIfDefined(augment.KeyModifier)
	result.KeyDisabled.overwriteIfDefined(augment.KeyDisabled)
	result.KeyPressed.overwriteIfDefined(augment.KeyPressed)
	result.Candidate.overwriteIfDefined(augment.Candidate)
	result.Touch.overwriteIfDefined(augment.Touch)
	result.Status.overwriteIfDefined(augment.Status)
	result.LogDefault.overwriteIfDefined(augment.LogDefault)
	result.LogEntryTypeError.overwriteIfDefined(augment.LogEntryTypeError)
	result.LogEntryTypeWarn.overwriteIfDefined(augment.LogEntryTypeWarn)
	result.LogEntryTypeInfo.overwriteIfDefined(augment.LogEntryTypeInfo)
	result.LogEntryTypeDebug.overwriteIfDefined(augment.LogEntryTypeDebug)
	result.LogEntryTypeTrace.overwriteIfDefined(augment.LogEntryTypeTrace)

	return result
}

func (s *Styling) overwriteIfDefined(augment Styling) {
	if augment.Fg != "" && augment.Bg != "" {
		s.Fg = augment.Fg
		s.Bg = augment.Bg
	}
	if augment.Style != nil {
		s.Style = &FontStyle{
			Bold:       augment.Style.Bold,
			Italic:     augment.Style.Italic,
			Underlined: augment.Style.Underlined,
		}
	}
}

// DetectorConfig returns the configuration for the detectors.
func (c *Config) DetectorConfig() detect.Config {
	d := c.Detector
	return detect.Config{
		HysteresisDistance:  valueOr(d.HysteresisDistance, 0),
		ProximityCorrection: valueOr(d.ProximityCorrection, false),
		ProximityThreshold:  valueOr(d.ProximityThreshold, 0),
		CorrectionX:         valueOr(d.CorrectionX, 0),
		CorrectionY:         valueOr(d.CorrectionY, 0),
		ClampToLayout:       valueOr(d.ClampToLayout, false),
	}
}

// SlideAllowance returns the slide allowance for more-keys detectors.
func (c *Config) SlideAllowance() float64 {
	return valueOr(c.Detector.SlideAllowance, 0)
}

// TrackerConfig returns the configuration for pointer trackers.
func (c *Config) TrackerConfig() pointer.TrackerConfig {
	d := c.Detector
	return pointer.TrackerConfig{
		SlidingKeyInput:             valueOr(d.SlidingKeyInput, false),
		TouchNoiseThresholdMillis:   valueOr(d.TouchNoiseThresholdMillis, 0),
		TouchNoiseThresholdDistance: valueOr(d.TouchNoiseThresholdDistance, 0),
	}
}

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

// A ColorschemeType can either be light or dark.
type ColorschemeType = int

const (
	_ ColorschemeType = iota
	Dark
	Light
)
