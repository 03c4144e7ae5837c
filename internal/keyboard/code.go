package keyboard

import "fmt"

// Code is the character or action code produced by a key.
//
// Printable keys carry their Unicode code point, functional keys (shift,
// delete, ...) carry negative codes.
type Code int32

const (
	// NoCode represents the absence of a code, e.g. in the first slot of a
	// nearby-codes list when no key is near the touch point.
	NoCode Code = -1 << 31

	CodeShift             Code = -1
	CodeSwitchAlphaSymbol Code = -2
	CodeDelete            Code = -5
	CodeSettings          Code = -100

	CodeTab   Code = '\t'
	CodeEnter Code = '\n'
	CodeSpace Code = ' '
)

// IsPrintable reports whether the code is at or above the space character,
// i.e. whether it is eligible as a correction candidate.
func (c Code) IsPrintable() bool {
	return c >= CodeSpace
}

// IsModifierCode reports whether the code belongs to a key that changes the
// state of the keyboard rather than producing input.
func (c Code) IsModifierCode() bool {
	return c == CodeShift || c == CodeSwitchAlphaSymbol
}

// String returns a printable representation of the code, mostly for
// logging.
func (c Code) String() string {
	switch {
	case c == NoCode:
		return "----"
	case c < 0:
		return fmt.Sprintf("%4d", int32(c))
	case c < CodeSpace:
		return fmt.Sprintf("0x%02x", int32(c))
	default:
		return string(rune(c))
	}
}

// KeyIndex identifies a key by its position within a Layout.
type KeyIndex int

// MaybeKey is a KeyIndex that may be absent.
//
// The zero value is NoKey.
type MaybeKey struct {
	index KeyIndex
	valid bool
}

// NoKey is the absent key.
var NoKey = MaybeKey{}

// SomeKey wraps the given index as a present key.
func SomeKey(i KeyIndex) MaybeKey {
	return MaybeKey{index: i, valid: true}
}

// Get returns the index and whether it is present.
func (m MaybeKey) Get() (KeyIndex, bool) {
	return m.index, m.valid
}

// IsNone reports whether no key is present.
func (m MaybeKey) IsNone() bool {
	return !m.valid
}

// String returns the index or "none".
func (m MaybeKey) String() string {
	if !m.valid {
		return "none"
	}
	return fmt.Sprintf("%d", m.index)
}
