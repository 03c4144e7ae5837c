package pointer

import "github.com/ja-he/touchkey/internal/keyboard"

// Listener receives the key actions resulting from pointer gestures.
type Listener interface {

	// OnPress is called when a key is pressed, withSliding telling whether the
	// pointer slid onto it from another key.
	OnPress(code keyboard.Code, withSliding bool)

	// OnRelease is called when a key is released, withSliding telling whether
	// the pointer slid off it rather than being lifted.
	OnRelease(code keyboard.Code, withSliding bool)

	// OnCodeInput is called with the code of a struck key, the ranked codes
	// of the keys near the release point and the release point itself.
	OnCodeInput(code keyboard.Code, nearby []keyboard.Code, x, y int)

	// OnTextInput is called when a key producing text is struck.
	OnTextInput(text string)

	// OnCancelInput is called when a pointer is lifted off all keys.
	OnCancelInput()
}

// NopListener is a Listener ignoring everything.
type NopListener struct{}

func (NopListener) OnPress(keyboard.Code, bool) {}
func (NopListener) OnRelease(keyboard.Code, bool) {}
func (NopListener) OnCodeInput(keyboard.Code, []keyboard.Code, int, int) {}
func (NopListener) OnTextInput(string) {}
func (NopListener) OnCancelInput() {}
