// Package pointer tracks touch pointers across their down, move and up
// events and reports the resulting key presses.
package pointer

import (
	"fmt"
	"strings"
)

// PointerID identifies a touch pointer.
type PointerID int

// Phase is the phase of a touch event.
type Phase int

const (
	_ Phase = iota
	// Down is the first contact of a pointer.
	Down
	// Move is a movement of a pointer in contact.
	Move
	// Up is the lifting of a pointer.
	Up
	// Cancel abandons a pointer's gesture.
	Cancel
)

// String returns the name of the phase.
func (p Phase) String() string {
	switch p {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	case Cancel:
		return "cancel"
	}
	return "[UNKNOWN]"
}

// ParsePhase converts a phase name to a Phase (or an error, if invalid).
func ParsePhase(s string) (Phase, error) {
	switch strings.ToLower(s) {
	case "down":
		return Down, nil
	case "move":
		return Move, nil
	case "up":
		return Up, nil
	case "cancel":
		return Cancel, nil
	}
	return 0, fmt.Errorf("unknown phase '%s'", s)
}

// Event is a single touch event of one pointer.
// Events of a pointer arrive in chronological order.
type Event struct {
	Pointer PointerID
	X, Y    int
	// Time is the event timestamp in milliseconds.
	Time  int64
	Phase Phase
}
