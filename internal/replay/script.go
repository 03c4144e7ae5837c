// Package replay feeds scripted touch events through a pointer dispatcher
// and records the resulting key actions.
package replay

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ja-he/touchkey/internal/pointer"
)

// Script is a sequence of touch events as defined in a script file.
type Script struct {
	Events []ScriptEvent `yaml:"events"`
}

// ScriptEvent is a single touch event as defined in a script file.
type ScriptEvent struct {
	Pointer int    `yaml:"pointer"`
	Phase   string `yaml:"phase"`
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	T       int64  `yaml:"t"`
}

// ParseScript parses a YAML-formatted script and converts it to touch events.
// Events of each pointer must be in chronological order.
func ParseScript(yamlData []byte) ([]pointer.Event, error) {
	var script Script
	if err := yaml.Unmarshal(yamlData, &script); err != nil {
		return nil, fmt.Errorf("error unmarshaling yaml (%s)", err)
	}

	events := make([]pointer.Event, 0, len(script.Events))
	lastTime := map[int]int64{}
	for i, e := range script.Events {
		phase, err := pointer.ParsePhase(e.Phase)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		if last, ok := lastTime[e.Pointer]; ok && e.T < last {
			return nil, fmt.Errorf("event %d: time %d of pointer %d precedes its previous event (%d)", i, e.T, e.Pointer, last)
		}
		lastTime[e.Pointer] = e.T
		events = append(events, pointer.Event{
			Pointer: pointer.PointerID(e.Pointer),
			X:       e.X,
			Y:       e.Y,
			Time:    e.T,
			Phase:   phase,
		})
	}
	return events, nil
}

// LoadScript reads and parses the script file at the given path.
func LoadScript(path string) ([]pointer.Event, error) {
	yamlData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read script '%s' (%w)", path, err)
	}
	return ParseScript(yamlData)
}
