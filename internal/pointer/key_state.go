package pointer

import (
	"github.com/ja-he/touchkey/internal/detect"
	"github.com/ja-he/touchkey/internal/keyboard"
)

// KeyState is the key state of a single pointer: the key it currently
// tracks, where that key was first recognized, where the pointer was last
// seen, and when it went down and up.
//
// A KeyState is owned by exactly one pointer and is not safe for concurrent
// use.
type KeyState struct {
	detector detect.Detector
	layout   *keyboard.Layout

	key        keyboard.MaybeKey
	keyX, keyY int

	lastX, lastY int

	downTime, upTime int64
}

// NewKeyState returns an idle key state resolving via the given detector and
// layout.
func NewKeyState(detector detect.Detector, layout *keyboard.Layout) *KeyState {
	if detector == nil || layout == nil {
		panic("key state needs a detector and a layout")
	}
	return &KeyState{detector: detector, layout: layout}
}

// SetLayout replaces the layout keys are resolved against.
func (s *KeyState) SetLayout(layout *keyboard.Layout) {
	if layout == nil {
		panic("key state needs a layout")
	}
	s.layout = layout
}

// Key returns the tracked key.
func (s *KeyState) Key() keyboard.MaybeKey { return s.key }

// KeyX returns the x-coordinate at which the tracked key was recognized.
func (s *KeyState) KeyX() int { return s.keyX }

// KeyY returns the y-coordinate at which the tracked key was recognized.
func (s *KeyState) KeyY() int { return s.keyY }

// LastX returns the last observed x-coordinate.
func (s *KeyState) LastX() int { return s.lastX }

// LastY returns the last observed y-coordinate.
func (s *KeyState) LastY() int { return s.lastY }

// DownTime returns the time of the last down event.
func (s *KeyState) DownTime() int64 { return s.downTime }

// UpTime returns the time of the last up event.
func (s *KeyState) UpTime() int64 { return s.upTime }

// OnDown records the down time and starts tracking the key at the point.
func (s *KeyState) OnDown(x, y int, t int64) keyboard.MaybeKey {
	s.downTime = t
	return s.OnMoveToNewKey(s.resolve(x, y), x, y)
}

// OnMove resolves the key at the point without changing the tracked key.
// Callers detect key boundary crossings by comparing against Key.
func (s *KeyState) OnMove(x, y int) keyboard.MaybeKey {
	return s.resolve(x, y)
}

// OnMoveToNewKey starts tracking the given key as recognized at the point.
func (s *KeyState) OnMoveToNewKey(key keyboard.MaybeKey, x, y int) keyboard.MaybeKey {
	s.key = key
	s.keyX = x
	s.keyY = y
	return key
}

// OnUp records the up time, stops tracking any key and resolves the key at
// the release point.
func (s *KeyState) OnUp(x, y int, t int64) keyboard.MaybeKey {
	s.upTime = t
	s.key = keyboard.NoKey
	return s.resolve(x, y)
}

func (s *KeyState) resolve(x, y int) keyboard.MaybeKey {
	s.lastX = x
	s.lastY = y
	return s.detector.Resolve(s.layout, x, y, false).Key
}
