package keyboard

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// CodeSpec is a textual key code specification as used in layout files.
// It is either a single character (e.g. "a") or a special identifier in
// angle brackets (e.g. "<shift>").
type CodeSpec = string

var identifierCodes = map[string]Code{
	"space":    CodeSpace,
	"enter":    CodeEnter,
	"cr":       CodeEnter,
	"tab":      CodeTab,
	"shift":    CodeShift,
	"symbol":   CodeSwitchAlphaSymbol,
	"delete":   CodeDelete,
	"bs":       CodeDelete,
	"settings": CodeSettings,
}

var codeIdentifiers = map[Code]string{
	CodeSpace:             "space",
	CodeEnter:             "enter",
	CodeTab:               "tab",
	CodeShift:             "shift",
	CodeSwitchAlphaSymbol: "symbol",
	CodeDelete:            "delete",
	CodeSettings:          "settings",
}

// ParseCodeSpec converts a code specification to its Code (or an error, if
// invalid).
func ParseCodeSpec(spec CodeSpec) (Code, error) {
	if spec == "" {
		return NoCode, fmt.Errorf("empty code spec")
	}

	if spec[0] == '<' && len(spec) > 1 {
		if !strings.HasSuffix(spec, ">") {
			return NoCode, fmt.Errorf("unclosed special context in code spec '%s'", spec)
		}
		return CodeIdentifierToCode(spec[1 : len(spec)-1])
	}

	r, size := utf8.DecodeRuneInString(spec)
	if r == utf8.RuneError {
		return NoCode, fmt.Errorf("invalid utf-8 in code spec '%s'", spec)
	}
	if size != len(spec) {
		return NoCode, fmt.Errorf("code spec '%s' is neither a single character nor a <special> identifier", spec)
	}
	return Code(r), nil
}

// CodeIdentifierToCode converts the given special identifier to the
// appropriate code (or an error, if invalid).
// Numeric identifiers (e.g. "-7") are taken as raw codes.
func CodeIdentifierToCode(identifier string) (Code, error) {
	identifier = strings.ToLower(identifier)
	if n, err := strconv.ParseInt(identifier, 10, 32); err == nil {
		return Code(n), nil
	}
	for _, r := range identifier {
		if !unicode.IsLetter(r) && r != '-' {
			return NoCode, fmt.Errorf("illegal character '%c' in identifier '%s'", r, identifier)
		}
	}
	code, ok := identifierCodes[identifier]
	if !ok {
		return NoCode, fmt.Errorf("no mapping present for identifier '%s'", identifier)
	}
	return code, nil
}

// ToCodeSpec converts the given code to its specification string.
func ToCodeSpec(c Code) CodeSpec {
	if identifier, ok := codeIdentifiers[c]; ok {
		return "<" + identifier + ">"
	}
	if c < 0 || !utf8.ValidRune(rune(c)) {
		return fmt.Sprintf("<%d>", int32(c))
	}
	return string(rune(c))
}
