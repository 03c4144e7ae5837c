// Package cli provides the command-line interface for touchkey.
package cli

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/touchkey/internal/config"
	"github.com/ja-he/touchkey/internal/detect"
	"github.com/ja-he/touchkey/internal/keyboard"
)

type CommandLineOpts struct {
	Version bool `short:"v" long:"version" description:"Show the program version"`

	ResolveCommand ResolveCommand `command:"resolve" description:"Resolve a touch point to a key and its nearby keys"`
	ReplayCommand  ReplayCommand  `command:"replay" description:"Replay a touch event script and print the resulting key actions"`
	TuiCommand     TuiCommand     `command:"tui" description:"Try a layout in a terminal playground, with the mouse as the finger"`
	VersionCommand VersionCommand `command:"version" subcommands-optional:"true"`
}

var Opts CommandLineOpts

// stdout is where commands print their results.
var stdout io.Writer = os.Stdout

// ConfigOpts are the flags shared by commands operating on a layout.
type ConfigOpts struct {
	Config string `short:"c" long:"config" description:"Specify the config file (default: ${TOUCHKEY_HOME}/config.yaml)" value-name:"<file>"`
	Theme  string `short:"t" long:"theme" choice:"light" choice:"dark" description:"Select a 'dark' or a 'light' default theme (note: only sets defaults, which are individually overridden by settings in the config file)"`
}

func (o *ConfigOpts) theme() config.ColorschemeType {
	switch o.Theme {
	case "light":
		return config.Light
	default:
		return config.Dark
	}
}

// path returns the config file path and whether it was explicitly given.
func (o *ConfigOpts) path() (string, bool) {
	if o.Config != "" {
		return o.Config, true
	}
	return config.DefaultPath(), false
}

// load reads the config file, falling back to the defaults if no file was
// given and none exists at the default path.
func (o *ConfigOpts) load() (config.Config, error) {
	path, explicit := o.path()
	c, err := config.Load(o.theme(), path)
	if err != nil && !explicit && errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("file", path).Msg("no config file, using defaults")
		return config.Default(o.theme()), nil
	}
	return c, err
}

// MoreKeysOpts select the detector.
type MoreKeysOpts struct {
	MoreKeys bool `long:"more-keys" description:"Resolve as on a more-keys panel (nearest key only, with slide allowance)"`
}

func (o *MoreKeysOpts) detector(c *config.Config) detect.Detector {
	if o.MoreKeys {
		return detect.NewMoreKeysDetector(c.DetectorConfig(), c.SlideAllowance(), log.Logger)
	}
	return detect.NewProximityDetector(c.DetectorConfig(), log.Logger)
}

func loadLayout(opts *ConfigOpts) (config.Config, *keyboard.Layout, error) {
	c, err := opts.load()
	if err != nil {
		return c, nil, err
	}
	l, err := c.BuildLayout()
	if err != nil {
		return c, nil, err
	}
	return c, l, nil
}
