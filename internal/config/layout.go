package config

import (
	"fmt"
	"strings"

	"github.com/ja-he/touchkey/internal/keyboard"
)

// Layout is a keyboard layout as defined in a config file.
//
// Keys can be given as uniform rows, where every character of a row's keys
// string is one key, or explicitly.
// Row keys come first, in the order of the rows, followed by the explicit
// keys.
type Layout struct {
	// Width and Height are the layout bounds; if unset (or too small), the
	// union of the keys' rectangles is used.
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`

	GridWidth      int     `yaml:"grid-width,omitempty"`
	GridHeight     int     `yaml:"grid-height,omitempty"`
	SearchDistance float64 `yaml:"search-distance,omitempty"`

	Rows []Row     `yaml:"rows,omitempty"`
	Keys []KeySpec `yaml:"keys,omitempty"`
}

// Row is a row of equally sized, adjacent keys.
type Row struct {
	X        int    `yaml:"x,omitempty"`
	Y        int    `yaml:"y"`
	Height   int    `yaml:"height"`
	KeyWidth int    `yaml:"key-width"`
	Keys     string `yaml:"keys"`
}

// KeySpec is a single key as defined in a config file.
type KeySpec struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Code is a code spec, e.g. 'a' or '<shift>'.
	Code  keyboard.CodeSpec `yaml:"code"`
	Label string            `yaml:"label,omitempty"`
	Text  string            `yaml:"text,omitempty"`

	Modifier   bool `yaml:"modifier,omitempty"`
	Sticky     bool `yaml:"sticky,omitempty"`
	Repeatable bool `yaml:"repeatable,omitempty"`
	Disabled   bool `yaml:"disabled,omitempty"`

	// Edges lists the keyboard edges ('left', 'right', 'top', 'bottom') the
	// key lies on. If absent, they are derived from the layout bounds.
	Edges []string `yaml:"edges,omitempty"`
}

func (base Layout) augmentWith(augment Layout) Layout {
	result := base

	if augment.Width > 0 {
		result.Width = augment.Width
	}
	if augment.Height > 0 {
		result.Height = augment.Height
	}
	if augment.GridWidth > 0 {
		result.GridWidth = augment.GridWidth
	}
	if augment.GridHeight > 0 {
		result.GridHeight = augment.GridHeight
	}
	if augment.SearchDistance > 0 {
		result.SearchDistance = augment.SearchDistance
	}

	// keys replace the default keys as a whole
	if len(augment.Rows) > 0 || len(augment.Keys) > 0 {
		result.Rows = augment.Rows
		result.Keys = augment.Keys
	}

	return result
}

// BuildLayout builds the keyboard layout defined by the config.
func (c *Config) BuildLayout() (*keyboard.Layout, error) {
	return c.Layout.Build()
}

// Build builds the keyboard layout.
func (l *Layout) Build() (*keyboard.Layout, error) {
	type pending struct {
		key   keyboard.Key
		edges []string
	}
	var keys []pending

	for i, row := range l.Rows {
		if row.KeyWidth <= 0 || row.Height <= 0 {
			return nil, fmt.Errorf("row %d has no extent (key-width %d, height %d)", i, row.KeyWidth, row.Height)
		}
		x := row.X
		for _, r := range row.Keys {
			keys = append(keys, pending{key: keyboard.Key{
				X:      x,
				Y:      row.Y,
				Width:  row.KeyWidth,
				Height: row.Height,
				Code:   keyboard.Code(r),
				Label:  string(r),
			}})
			x += row.KeyWidth
		}
	}

	for i, spec := range l.Keys {
		code, err := keyboard.ParseCodeSpec(spec.Code)
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
		if spec.Width < 0 || spec.Height < 0 {
			return nil, fmt.Errorf("key %d ('%s') has negative extent", i, spec.Code)
		}
		label := spec.Label
		if label == "" {
			label = defaultLabel(code, spec.Text)
		}
		keys = append(keys, pending{
			key: keyboard.Key{
				X:          spec.X,
				Y:          spec.Y,
				Width:      spec.Width,
				Height:     spec.Height,
				Code:       code,
				Label:      label,
				OutputText: spec.Text,
				Modifier:   spec.Modifier,
				Sticky:     spec.Sticky,
				Repeatable: spec.Repeatable,
				Disabled:   spec.Disabled,
			},
			edges: spec.Edges,
		})
	}

	if len(keys) == 0 {
		return nil, fmt.Errorf("layout has no keys")
	}

	width, height := l.Width, l.Height
	for _, p := range keys {
		width = max(width, p.key.Right())
		height = max(height, p.key.Bottom())
	}

	result := make([]keyboard.Key, 0, len(keys))
	for i, p := range keys {
		k := p.key
		if p.edges != nil {
			edges, err := parseEdges(p.edges)
			if err != nil {
				return nil, fmt.Errorf("key %d: %w", i, err)
			}
			k.Edges = edges
		} else {
			k.Edges = deriveEdges(&k, width, height)
		}
		result = append(result, k)
	}

	return keyboard.NewLayout(result, keyboard.LayoutOptions{
		Width:          width,
		Height:         height,
		GridWidth:      l.GridWidth,
		GridHeight:     l.GridHeight,
		SearchDistance: l.SearchDistance,
	}), nil
}

func defaultLabel(code keyboard.Code, text string) string {
	switch {
	case text != "":
		return text
	case code.IsPrintable() && code != keyboard.CodeSpace:
		return string(rune(code))
	default:
		return strings.Trim(keyboard.ToCodeSpec(code), "<>")
	}
}

func deriveEdges(k *keyboard.Key, width, height int) keyboard.EdgeFlags {
	var edges keyboard.EdgeFlags
	if k.X <= 0 {
		edges |= keyboard.EdgeLeft
	}
	if k.Right() >= width {
		edges |= keyboard.EdgeRight
	}
	if k.Y <= 0 {
		edges |= keyboard.EdgeTop
	}
	if k.Bottom() >= height {
		edges |= keyboard.EdgeBottom
	}
	return edges
}

func parseEdges(names []string) (keyboard.EdgeFlags, error) {
	var edges keyboard.EdgeFlags
	for _, name := range names {
		switch strings.ToLower(name) {
		case "left":
			edges |= keyboard.EdgeLeft
		case "right":
			edges |= keyboard.EdgeRight
		case "top":
			edges |= keyboard.EdgeTop
		case "bottom":
			edges |= keyboard.EdgeBottom
		default:
			return 0, fmt.Errorf("unknown edge '%s'", name)
		}
	}
	return edges, nil
}
