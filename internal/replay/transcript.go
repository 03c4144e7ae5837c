package replay

import (
	"fmt"
	"strings"

	"github.com/ja-he/touchkey/internal/keyboard"
	"github.com/ja-he/touchkey/internal/pointer"
)

// Transcript is a pointer.Listener recording every notification as a line of
// text, e.g. 'press a', 'release <shift> sliding' or 'code a [a s] at 12,8'.
type Transcript struct {
	lines []string
}

var _ pointer.Listener = &Transcript{}

// Lines returns the recorded lines.
func (t *Transcript) Lines() []string { return t.lines }

// Reset discards all recorded lines.
func (t *Transcript) Reset() { t.lines = nil }

func (t *Transcript) OnPress(code keyboard.Code, withSliding bool) {
	t.lines = append(t.lines, "press "+keyboard.ToCodeSpec(code)+slidingSuffix(withSliding))
}

func (t *Transcript) OnRelease(code keyboard.Code, withSliding bool) {
	t.lines = append(t.lines, "release "+keyboard.ToCodeSpec(code)+slidingSuffix(withSliding))
}

func (t *Transcript) OnCodeInput(code keyboard.Code, nearby []keyboard.Code, x, y int) {
	t.lines = append(t.lines, fmt.Sprintf("code %s [%s] at %d,%d", keyboard.ToCodeSpec(code), FormatCodes(nearby), x, y))
}

func (t *Transcript) OnTextInput(text string) {
	t.lines = append(t.lines, "text "+text)
}

func (t *Transcript) OnCancelInput() {
	t.lines = append(t.lines, "cancel")
}

// FormatCodes joins the code specs of the given codes with spaces; NoCode is
// rendered as '-'.
func FormatCodes(codes []keyboard.Code) string {
	specs := make([]string, 0, len(codes))
	for _, c := range codes {
		if c == keyboard.NoCode {
			specs = append(specs, "-")
			continue
		}
		specs = append(specs, keyboard.ToCodeSpec(c))
	}
	return strings.Join(specs, " ")
}

func slidingSuffix(withSliding bool) string {
	if withSliding {
		return " sliding"
	}
	return ""
}
